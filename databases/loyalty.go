package databases

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/forkline/restaurant-admin-api/models"
)

const (
	loyaltyConfigCollectionName = "loyaltyconfig"
	loyaltySyncCollectionName   = "loyaltysyncs"
)

// LoyaltyDatabase contains the methods to use with the loyalty config and sync-history database
type LoyaltyDatabase interface {
	FindConfig(ctx context.Context, brand string) (*models.LoyaltyConfig, error)
	UpsertConfig(ctx context.Context, brand string, req models.UpdateLoyaltyConfigRequest) error
	InsertSync(ctx context.Context, sync models.LoyaltySync) (InsertOneResultHelper, error)
	FindSyncs(ctx context.Context, brand string, opts ...*options.FindOptions) ([]models.LoyaltySync, error)
}

type loyaltyDatabase struct {
	db DatabaseHelper
}

// NewLoyaltyDatabase initializes a new instance of loyalty database with the provided db connection
func NewLoyaltyDatabase(db DatabaseHelper) LoyaltyDatabase {
	return &loyaltyDatabase{
		db: db,
	}
}

func (l *loyaltyDatabase) FindConfig(ctx context.Context, brand string) (*models.LoyaltyConfig, error) {
	cfg := &models.LoyaltyConfig{}
	err := l.db.Collection(loyaltyConfigCollectionName).FindOne(ctx, bson.M{"brand": brand}).Decode(cfg)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

func (l *loyaltyDatabase) UpsertConfig(ctx context.Context, brand string, req models.UpdateLoyaltyConfigRequest) error {
	update := bson.M{
		"$set": bson.M{
			"pointsPerDollar":   req.PointsPerDollar,
			"welcomeBonus":      req.WelcomeBonus,
			"redemptionMinimum": req.RedemptionMinimum,
			"isActive":          req.IsActive,
			"updatedAt":         primitive.NewDateTimeFromTime(time.Now()),
		},
		"$setOnInsert": bson.M{"brand": brand},
	}
	_, err := l.db.Collection(loyaltyConfigCollectionName).UpdateOne(ctx,
		bson.M{"brand": brand}, update, options.Update().SetUpsert(true))
	return err
}

func (l *loyaltyDatabase) InsertSync(ctx context.Context, sync models.LoyaltySync) (InsertOneResultHelper, error) {
	return l.db.Collection(loyaltySyncCollectionName).InsertOne(ctx, sync)
}

func (l *loyaltyDatabase) FindSyncs(ctx context.Context, brand string, opts ...*options.FindOptions) ([]models.LoyaltySync, error) {
	var syncs []models.LoyaltySync
	cur, err := l.db.Collection(loyaltySyncCollectionName).Find(ctx, bson.M{"brand": brand}, opts...)
	if err != nil {
		return nil, err
	}
	err = cur.Decode(&syncs)
	if err != nil {
		return nil, err
	}
	return syncs, nil
}
