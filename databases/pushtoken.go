package databases

// go generate: mockery --name PushTokenDatabase

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/forkline/restaurant-admin-api/models"
)

const pushTokenCollectionName = "pushtokens"

// PushTokenDatabase contains the methods to use with the push token database
type PushTokenDatabase interface {
	FindByUserID(ctx context.Context, userID string) (*models.PushToken, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.PushToken, error)
	FindEnabled(ctx context.Context, roles []string) ([]models.PushToken, error)
	Upsert(ctx context.Context, token models.PushToken) error
	SetEnabled(ctx context.Context, userID string, enabled bool) error
	SetRoleForUser(ctx context.Context, userID string, role string) error
	Delete(ctx context.Context, userID string) (int64, error)
}

type pushTokenDatabase struct {
	db DatabaseHelper
}

// NewPushTokenDatabase initializes a new instance of push token database with the provided db connection
func NewPushTokenDatabase(db DatabaseHelper) PushTokenDatabase {
	return &pushTokenDatabase{
		db: db,
	}
}

func (pt *pushTokenDatabase) FindByUserID(ctx context.Context, userID string) (*models.PushToken, error) {
	token := &models.PushToken{}
	err := pt.db.Collection(pushTokenCollectionName).FindOne(ctx, bson.M{"userId": userID}).Decode(token)
	if err != nil {
		return nil, err
	}
	return token, nil
}

func (pt *pushTokenDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.PushToken, error) {
	var tokens []models.PushToken
	cur, err := pt.db.Collection(pushTokenCollectionName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	err = cur.Decode(&tokens)
	if err != nil {
		return nil, err
	}
	return tokens, nil
}

// FindEnabled returns every notification-enabled token whose role is in roles.
// An empty roles slice means no role filter.
func (pt *pushTokenDatabase) FindEnabled(ctx context.Context, roles []string) ([]models.PushToken, error) {
	filter := bson.M{"notificationEnabled": true}
	if len(roles) > 0 {
		filter["role"] = bson.M{"$in": roles}
	}
	return pt.Find(ctx, filter)
}

// Upsert writes the token record for token.UserID, overwriting any existing one.
// Keeps the one-active-token-per-user invariant.
func (pt *pushTokenDatabase) Upsert(ctx context.Context, token models.PushToken) error {
	now := primitive.NewDateTimeFromTime(time.Now())
	update := bson.M{
		"$set": bson.M{
			"token":               token.Token,
			"role":                token.Role,
			"platform":            token.Platform,
			"notificationEnabled": token.NotificationEnabled,
			"updatedAt":           now,
		},
		"$setOnInsert": bson.M{
			"userId":    token.UserID,
			"createdAt": now,
		},
	}
	_, err := pt.db.Collection(pushTokenCollectionName).UpdateOne(ctx,
		bson.M{"userId": token.UserID}, update, options.Update().SetUpsert(true))
	return err
}

func (pt *pushTokenDatabase) SetEnabled(ctx context.Context, userID string, enabled bool) error {
	_, err := pt.db.Collection(pushTokenCollectionName).UpdateOne(ctx,
		bson.M{"userId": userID},
		bson.M{"$set": bson.M{
			"notificationEnabled": enabled,
			"updatedAt":           primitive.NewDateTimeFromTime(time.Now()),
		}})
	return err
}

// SetRoleForUser keeps the token row's role copy in sync when a user's role changes
func (pt *pushTokenDatabase) SetRoleForUser(ctx context.Context, userID string, role string) error {
	_, err := pt.db.Collection(pushTokenCollectionName).UpdateOne(ctx,
		bson.M{"userId": userID},
		bson.M{"$set": bson.M{
			"role":      role,
			"updatedAt": primitive.NewDateTimeFromTime(time.Now()),
		}})
	return err
}

func (pt *pushTokenDatabase) Delete(ctx context.Context, userID string) (int64, error) {
	return pt.db.Collection(pushTokenCollectionName).DeleteOne(ctx, bson.M{"userId": userID})
}
