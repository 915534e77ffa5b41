package databases

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/forkline/restaurant-admin-api/models"
)

const notificationCollectionName = "notifications"

// NotificationDatabase contains the methods to use with the notification audit database
type NotificationDatabase interface {
	InsertOne(ctx context.Context, notification models.Notification) (InsertOneResultHelper, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Notification, error)
	CountDocuments(ctx context.Context, filter interface{}) (int64, error)
	ClaimDueScheduled(ctx context.Context, now time.Time) (*models.Notification, error)
	MarkDelivered(ctx context.Context, id primitive.ObjectID, summary models.SendNotificationResponse) error
	FindSentBetween(ctx context.Context, from, to time.Time) ([]models.Notification, error)
}

type notificationDatabase struct {
	db DatabaseHelper
}

// NewNotificationDatabase initializes a new instance of notification database with the provided db connection
func NewNotificationDatabase(db DatabaseHelper) NotificationDatabase {
	return &notificationDatabase{
		db: db,
	}
}

func (n *notificationDatabase) InsertOne(ctx context.Context, notification models.Notification) (InsertOneResultHelper, error) {
	return n.db.Collection(notificationCollectionName).InsertOne(ctx, notification)
}

func (n *notificationDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Notification, error) {
	var notifications []models.Notification
	cur, err := n.db.Collection(notificationCollectionName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	err = cur.Decode(&notifications)
	if err != nil {
		return nil, err
	}
	return notifications, nil
}

func (n *notificationDatabase) CountDocuments(ctx context.Context, filter interface{}) (int64, error) {
	return n.db.Collection(notificationCollectionName).CountDocuments(ctx, filter)
}

// ClaimDueScheduled atomically claims one scheduled notification whose sendAt has
// passed, flipping its status to sending so no other worker can claim it again.
// Returns mongo.ErrNoDocuments when nothing is due.
func (n *notificationDatabase) ClaimDueScheduled(ctx context.Context, now time.Time) (*models.Notification, error) {
	filter := bson.M{
		"status": models.NotificationStatusScheduled,
		"sendAt": bson.M{"$lte": primitive.NewDateTimeFromTime(now)},
	}
	update := bson.M{"$set": bson.M{
		"status":    models.NotificationStatusSending,
		"updatedAt": primitive.NewDateTimeFromTime(time.Now()),
	}}

	row := &models.Notification{}
	err := n.db.Collection(notificationCollectionName).FindOneAndUpdate(ctx, filter, update).Decode(row)
	if err != nil {
		return nil, err
	}
	return row, nil
}

// MarkDelivered finalizes a scheduled row with the dispatch outcome
func (n *notificationDatabase) MarkDelivered(ctx context.Context, id primitive.ObjectID, summary models.SendNotificationResponse) error {
	status := models.NotificationStatusSent
	if !summary.Success {
		status = models.NotificationStatusFailed
	}
	_, err := n.db.Collection(notificationCollectionName).UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"status":         status,
			"success":        summary.Success,
			"message":        summary.Message,
			"tokensSent":     summary.TokensSent,
			"totalAttempted": summary.TotalAttempted,
			"excluded":       summary.Excluded,
			"updatedAt":      primitive.NewDateTimeFromTime(time.Now()),
		}})
	return err
}

// FindSentBetween returns finalized (non-scheduled) rows created in [from, to)
func (n *notificationDatabase) FindSentBetween(ctx context.Context, from, to time.Time) ([]models.Notification, error) {
	filter := bson.M{
		"status": bson.M{"$ne": models.NotificationStatusScheduled},
		"createdAt": bson.M{
			"$gte": primitive.NewDateTimeFromTime(from),
			"$lt":  primitive.NewDateTimeFromTime(to),
		},
	}
	return n.Find(ctx, filter)
}
