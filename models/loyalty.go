package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// LoyaltyConfig holds the structure for the loyaltyconfig collection in mongo.
// One document per brand.
type LoyaltyConfig struct {
	ID                primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Brand             string             `json:"brand" bson:"brand"`
	PointsPerDollar   float64            `json:"pointsPerDollar" bson:"pointsPerDollar"`
	WelcomeBonus      int                `json:"welcomeBonus" bson:"welcomeBonus"`
	RedemptionMinimum int                `json:"redemptionMinimum" bson:"redemptionMinimum"`
	IsActive          bool               `json:"isActive" bson:"isActive"`
	UpdatedAt         primitive.DateTime `json:"updatedAt" bson:"updatedAt"`
}

// UpdateLoyaltyConfigRequest holds the structure for updating the loyalty config
type UpdateLoyaltyConfigRequest struct {
	PointsPerDollar   float64 `json:"pointsPerDollar" validate:"required,gt=0"`
	WelcomeBonus      int     `json:"welcomeBonus" validate:"gte=0"`
	RedemptionMinimum int     `json:"redemptionMinimum" validate:"gte=0"`
	IsActive          bool    `json:"isActive"`
}

// LoyaltySync holds the structure for the loyaltysyncs collection in mongo.
// One row per POS order-sync run; the points matching itself happens in the
// external award function.
type LoyaltySync struct {
	ID              primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	RunID           string             `json:"runId" bson:"runId"`
	Brand           string             `json:"brand" bson:"brand"`
	WindowStart     primitive.DateTime `json:"windowStart" bson:"windowStart"`
	WindowEnd       primitive.DateTime `json:"windowEnd" bson:"windowEnd"`
	OrdersProcessed int                `json:"ordersProcessed" bson:"ordersProcessed"`
	PointsAwarded   int                `json:"pointsAwarded" bson:"pointsAwarded"`
	Success         bool               `json:"success" bson:"success"`
	Detail          string             `json:"detail,omitempty" bson:"detail,omitempty"`
	CreatedAt       primitive.DateTime `json:"createdAt" bson:"createdAt"`
}

// LoyaltySyncRequest holds the structure for triggering a POS order sync
type LoyaltySyncRequest struct {
	WindowStart primitive.DateTime `json:"windowStart" validate:"required"`
	WindowEnd   primitive.DateTime `json:"windowEnd" validate:"required"`
}

// LoyaltySyncResult is the summary returned by the external award function
type LoyaltySyncResult struct {
	OrdersProcessed int    `json:"ordersProcessed"`
	PointsAwarded   int    `json:"pointsAwarded"`
	Detail          string `json:"detail,omitempty"`
}
