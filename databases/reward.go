package databases

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/forkline/restaurant-admin-api/models"
)

const rewardCollectionName = "rewards"

// RewardDatabase contains the methods to use with the reward catalog database
type RewardDatabase interface {
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.Reward, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Reward, error)
	InsertOne(ctx context.Context, reward models.Reward) (InsertOneResultHelper, error)
	UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error)
	DeleteByID(ctx context.Context, id primitive.ObjectID) (int64, error)
}

type rewardDatabase struct {
	db DatabaseHelper
}

// NewRewardDatabase initializes a new instance of reward database with the provided db connection
func NewRewardDatabase(db DatabaseHelper) RewardDatabase {
	return &rewardDatabase{
		db: db,
	}
}

func (rd *rewardDatabase) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.Reward, error) {
	reward := &models.Reward{}
	err := rd.db.Collection(rewardCollectionName).FindOne(ctx, filter, opts...).Decode(reward)
	if err != nil {
		return nil, err
	}
	return reward, nil
}

func (rd *rewardDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Reward, error) {
	var rewards []models.Reward
	cur, err := rd.db.Collection(rewardCollectionName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	err = cur.Decode(&rewards)
	if err != nil {
		return nil, err
	}
	return rewards, nil
}

func (rd *rewardDatabase) InsertOne(ctx context.Context, reward models.Reward) (InsertOneResultHelper, error) {
	return rd.db.Collection(rewardCollectionName).InsertOne(ctx, reward)
}

func (rd *rewardDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error) {
	return rd.db.Collection(rewardCollectionName).UpdateOne(ctx, filter, update, opts...)
}

func (rd *rewardDatabase) DeleteByID(ctx context.Context, id primitive.ObjectID) (int64, error) {
	return rd.db.Collection(rewardCollectionName).DeleteOne(ctx, map[string]interface{}{"_id": id})
}
