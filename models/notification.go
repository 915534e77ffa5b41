package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Notification statuses for the notifications collection. A scheduled row is
// claimed (flipped to sending) before dispatch so no two workers deliver it.
const (
	NotificationStatusSent      = "sent"
	NotificationStatusFailed    = "failed"
	NotificationStatusScheduled = "scheduled"
	NotificationStatusSending   = "sending"
)

// Notification holds the structure for the notifications collection in mongo.
// Every dispatch attempt (immediate or scheduled) is recorded here.
type Notification struct {
	ID             primitive.ObjectID     `json:"_id" bson:"_id,omitempty"`
	Brand          string                 `json:"brand" bson:"brand"`
	Title          string                 `json:"title" bson:"title"`
	Body           string                 `json:"body" bson:"body"`
	TargetAudience string                 `json:"targetAudience" bson:"targetAudience"`
	DeepLink       string                 `json:"deepLink,omitempty" bson:"deepLink,omitempty"`
	Data           map[string]interface{} `json:"data,omitempty" bson:"data,omitempty"`
	Status         string                 `json:"status" bson:"status"`
	Success        bool                   `json:"success" bson:"success"`
	Message        string                 `json:"message" bson:"message"`
	TokensSent     int                    `json:"tokensSent" bson:"tokensSent"`
	TotalAttempted int                    `json:"totalAttempted" bson:"totalAttempted"`
	Excluded       int                    `json:"excluded" bson:"excluded"`
	SentBy         string                 `json:"sentBy,omitempty" bson:"sentBy,omitempty"`
	SendAt         *primitive.DateTime    `json:"sendAt,omitempty" bson:"sendAt,omitempty"`
	CreatedAt      primitive.DateTime     `json:"createdAt" bson:"createdAt"`
	UpdatedAt      primitive.DateTime     `json:"updatedAt" bson:"updatedAt"`
}

// SendNotificationRequest holds the structure for sending a push notification
type SendNotificationRequest struct {
	Title          string                 `json:"title" validate:"required,min=1,max=200"`
	Message        string                 `json:"message" validate:"required,min=1"`
	TargetAudience string                 `json:"targetAudience" validate:"required,oneof=all admins users system_admin"`
	DeepLink       string                 `json:"deep_link,omitempty"`
	Data           map[string]interface{} `json:"data,omitempty"`
	SentBy         string                 `json:"sentBy,omitempty"`
}

// ScheduleNotificationRequest holds the structure for scheduling a push notification
type ScheduleNotificationRequest struct {
	SendNotificationRequest
	SendAt primitive.DateTime `json:"sendAt" validate:"required"`
}

// SendNotificationResponse is returned by the send endpoint
type SendNotificationResponse struct {
	Success        bool   `json:"success"`
	Message        string `json:"message"`
	TokensSent     int    `json:"tokensSent"`
	TotalAttempted int    `json:"totalAttempted"`
	Excluded       int    `json:"excluded"`
}

// PaginatedNotificationsResponse holds the structure for paginated notification history
type PaginatedNotificationsResponse struct {
	Success       bool           `json:"success"`
	Notifications []Notification `json:"notifications"`
	Pagination    PaginationInfo `json:"pagination"`
}

// PaginationInfo holds pagination metadata
type PaginationInfo struct {
	CurrentPage int  `json:"currentPage"`
	TotalPages  int  `json:"totalPages"`
	TotalItems  int  `json:"totalItems"`
	HasNextPage bool `json:"hasNextPage"`
	HasPrevPage bool `json:"hasPrevPage"`
}

// HealthCheckResponse returns the health check response duh
type HealthCheckResponse struct {
	Alive bool `json:"alive"`
}
