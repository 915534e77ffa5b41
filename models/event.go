package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Event holds the structure for the events collection in mongo
type Event struct {
	ID          primitive.ObjectID  `json:"_id" bson:"_id,omitempty"`
	Brand       string              `json:"brand" bson:"brand"`
	Title       string              `json:"title" bson:"title"`
	Description string              `json:"description" bson:"description"`
	ImageURL    string              `json:"imageUrl,omitempty" bson:"imageUrl,omitempty"`
	StartsAt    primitive.DateTime  `json:"startsAt" bson:"startsAt"`
	EndsAt      *primitive.DateTime `json:"endsAt,omitempty" bson:"endsAt,omitempty"`
	IsActive    bool                `json:"isActive" bson:"isActive"`
	CreatedAt   primitive.DateTime  `json:"createdAt" bson:"createdAt"`
	UpdatedAt   primitive.DateTime  `json:"updatedAt" bson:"updatedAt"`
}

// CreateEventRequest holds the structure for creating a new event
type CreateEventRequest struct {
	Title       string              `json:"title" validate:"required,min=1,max=200"`
	Description string              `json:"description" validate:"required,min=1"`
	ImageURL    string              `json:"imageUrl,omitempty" validate:"omitempty,url"`
	StartsAt    primitive.DateTime  `json:"startsAt" validate:"required"`
	EndsAt      *primitive.DateTime `json:"endsAt,omitempty"`
	IsActive    bool                `json:"isActive"`
}

// UpdateEventRequest holds the structure for updating an event
type UpdateEventRequest struct {
	Title       *string             `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Description *string             `json:"description,omitempty" validate:"omitempty,min=1"`
	ImageURL    *string             `json:"imageUrl,omitempty" validate:"omitempty,url"`
	StartsAt    *primitive.DateTime `json:"startsAt,omitempty"`
	EndsAt      *primitive.DateTime `json:"endsAt,omitempty"`
	IsActive    *bool               `json:"isActive,omitempty"`
}
