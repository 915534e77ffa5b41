package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/forkline/restaurant-admin-api/api"
	"github.com/forkline/restaurant-admin-api/config"
	"github.com/forkline/restaurant-admin-api/databases"
	"github.com/forkline/restaurant-admin-api/models"
	"github.com/forkline/restaurant-admin-api/push"
)

// AudienceResolver is the audience-resolution surface consumed by the handler,
// implemented by push.Resolver
type AudienceResolver interface {
	Resolve(ctx context.Context, audience push.Audience) (push.Resolution, error)
}

// Dispatcher is the delivery surface consumed by the handler, implemented by
// push.Dispatcher
type Dispatcher interface {
	Dispatch(ctx context.Context, tokens []string, msg push.Message) push.Summary
}

// Notification struct for handling notification dispatch and history operations
type Notification struct {
	NDB        databases.NotificationDatabase
	Resolver   AudienceResolver
	Dispatcher Dispatcher
	Brand      string
}

// sendNotificationResult is the send endpoint's response body
type sendNotificationResult struct {
	models.SendNotificationResponse
	Receipts []push.Receipt `json:"receipts,omitempty"`
}

// SendNotificationHandler resolves the target audience, dispatches the push
// message, and records the outcome in the notification history
func (n Notification) SendNotificationHandler(w http.ResponseWriter, r *http.Request) {
	var req models.SendNotificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode notification request", http.StatusBadRequest, w, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		config.ErrorStatus("invalid notification request", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	res, err := n.Resolver.Resolve(ctx, push.Audience(req.TargetAudience))
	if err != nil {
		// audience could not be computed, delivery must not be attempted
		config.ErrorStatus("failed to resolve notification audience", http.StatusInternalServerError, w, err)
		return
	}

	var result sendNotificationResult
	if len(res.Tokens) == 0 {
		result.Success = false
		result.Message = "no push tokens found for the selected audience"
		result.Excluded = res.ExcludedCount
	} else {
		summary := n.Dispatcher.Dispatch(r.Context(), res.Tokens, push.Message{
			Title:    req.Title,
			Body:     req.Message,
			DeepLink: req.DeepLink,
			Data:     req.Data,
		})
		result.Success = summary.Success
		result.Message = summary.Message
		result.TokensSent = summary.TokensSent
		result.TotalAttempted = summary.TotalAttempted
		result.Excluded = res.ExcludedCount
		result.Receipts = summary.Receipts
	}

	n.record(req, result.SendNotificationResponse)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(result)
}

// record persists the audit row; a failed write is logged but never fails the send
func (n Notification) record(req models.SendNotificationRequest, summary models.SendNotificationResponse) {
	ctx, cancel := api.WithQueryTimeout(context.Background())
	defer cancel()

	status := models.NotificationStatusSent
	if !summary.Success {
		status = models.NotificationStatusFailed
	}
	now := primitive.NewDateTimeFromTime(time.Now())
	_, err := n.NDB.InsertOne(ctx, models.Notification{
		Brand:          n.Brand,
		Title:          req.Title,
		Body:           req.Message,
		TargetAudience: req.TargetAudience,
		DeepLink:       req.DeepLink,
		Data:           req.Data,
		Status:         status,
		Success:        summary.Success,
		Message:        summary.Message,
		TokensSent:     summary.TokensSent,
		TotalAttempted: summary.TotalAttempted,
		Excluded:       summary.Excluded,
		SentBy:         req.SentBy,
		CreatedAt:      now,
		UpdatedAt:      now,
	})
	if err != nil {
		zap.S().Errorw("failed to record notification history", "error", err)
	}
}

// ScheduleNotificationHandler stores a notification for later delivery by the scheduler
func (n Notification) ScheduleNotificationHandler(w http.ResponseWriter, r *http.Request) {
	var req models.ScheduleNotificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode schedule request", http.StatusBadRequest, w, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		config.ErrorStatus("invalid schedule request", http.StatusBadRequest, w, err)
		return
	}
	if req.SendAt.Time().Before(time.Now()) {
		config.ErrorStatus("sendAt must be in the future", http.StatusBadRequest, w, nil)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	now := primitive.NewDateTimeFromTime(time.Now())
	result, err := n.NDB.InsertOne(ctx, models.Notification{
		Brand:          n.Brand,
		Title:          req.Title,
		Body:           req.Message,
		TargetAudience: req.TargetAudience,
		DeepLink:       req.DeepLink,
		Data:           req.Data,
		Status:         models.NotificationStatusScheduled,
		SentBy:         req.SentBy,
		SendAt:         &req.SendAt,
		CreatedAt:      now,
		UpdatedAt:      now,
	})
	if err != nil {
		config.ErrorStatus("failed to schedule notification", http.StatusInternalServerError, w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"id":      result.Decode(),
	})
}

// GetNotificationsHandler returns the paginated notification history, newest first
func (n Notification) GetNotificationsHandler(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 || limit > 100 {
		limit = 20
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	filter := bson.M{"brand": n.Brand}
	skip := (page - 1) * limit
	opts := options.Find().
		SetSort(bson.M{"createdAt": -1}).
		SetSkip(int64(skip)).
		SetLimit(int64(limit))

	notifications, err := n.NDB.Find(ctx, filter, opts)
	if err != nil {
		config.ErrorStatus("failed to get notification history", http.StatusInternalServerError, w, err)
		return
	}
	if notifications == nil {
		notifications = []models.Notification{}
	}

	totalCount, err := n.NDB.CountDocuments(ctx, filter)
	if err != nil {
		config.ErrorStatus("failed to count notifications", http.StatusInternalServerError, w, err)
		return
	}

	totalPages := int((totalCount + int64(limit) - 1) / int64(limit))
	response := models.PaginatedNotificationsResponse{
		Success:       true,
		Notifications: notifications,
		Pagination: models.PaginationInfo{
			CurrentPage: page,
			TotalPages:  totalPages,
			TotalItems:  int(totalCount),
			HasNextPage: page < totalPages,
			HasPrevPage: page > 1,
		},
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}
