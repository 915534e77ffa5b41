package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Reward holds the structure for the rewards collection in mongo
type Reward struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Brand       string             `json:"brand" bson:"brand"`
	Name        string             `json:"name" bson:"name"`
	Description string             `json:"description" bson:"description"`
	PointsCost  int                `json:"pointsCost" bson:"pointsCost"`
	ImageURL    string             `json:"imageUrl,omitempty" bson:"imageUrl,omitempty"`
	IsActive    bool               `json:"isActive" bson:"isActive"`
	SortOrder   int                `json:"sortOrder" bson:"sortOrder"`
	CreatedAt   primitive.DateTime `json:"createdAt" bson:"createdAt"`
	UpdatedAt   primitive.DateTime `json:"updatedAt" bson:"updatedAt"`
}

// CreateRewardRequest holds the structure for creating a new reward
type CreateRewardRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"required,min=1"`
	PointsCost  int    `json:"pointsCost" validate:"required,gt=0"`
	ImageURL    string `json:"imageUrl,omitempty" validate:"omitempty,url"`
	IsActive    bool   `json:"isActive"`
	SortOrder   int    `json:"sortOrder"`
}

// UpdateRewardRequest holds the structure for updating a reward
type UpdateRewardRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description,omitempty" validate:"omitempty,min=1"`
	PointsCost  *int    `json:"pointsCost,omitempty" validate:"omitempty,gt=0"`
	ImageURL    *string `json:"imageUrl,omitempty" validate:"omitempty,url"`
	IsActive    *bool   `json:"isActive,omitempty"`
	SortOrder   *int    `json:"sortOrder,omitempty"`
}
