package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Roles assigned to app accounts, copied onto their token record so audience
// resolution is a single collection read.
const (
	RoleUser        = "user"
	RoleAdmin       = "admin"
	RoleSystemAdmin = "system_admin"
)

// PushToken holds the structure for the pushtokens collection in mongo
type PushToken struct {
	ID                  primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	UserID              string             `json:"userId" bson:"userId"`
	Token               string             `json:"token" bson:"token"` // Expo push token (e.g., "ExponentPushToken[xxx]")
	Role                string             `json:"role" bson:"role"`
	Platform            string             `json:"platform" bson:"platform"` // "ios" or "android"
	NotificationEnabled bool               `json:"notificationEnabled" bson:"notificationEnabled"`
	CreatedAt           primitive.DateTime `json:"createdAt" bson:"createdAt"`
	UpdatedAt           primitive.DateTime `json:"updatedAt" bson:"updatedAt"`
}

// RegisterPushTokenRequest holds the structure for registering a device token.
// Re-registration for the same user overwrites the existing record.
type RegisterPushTokenRequest struct {
	UserID              string `json:"userId" validate:"required"`
	Token               string `json:"token" validate:"required"`
	Role                string `json:"role" validate:"required,oneof=user admin system_admin"`
	Platform            string `json:"platform" validate:"required,oneof=ios android"`
	NotificationEnabled bool   `json:"notificationEnabled"`
}

// SetTokenEnabledRequest toggles the notificationEnabled flag for a user's token
type SetTokenEnabledRequest struct {
	NotificationEnabled bool `json:"notificationEnabled"`
}
