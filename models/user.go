package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// User holds the structure for the users collection in mongo. Credentials and
// sessions are handled by the identity provider, not this API.
type User struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	Email     string             `json:"email" bson:"email"`
	Role      string             `json:"role" bson:"role"`
	Brand     string             `json:"brand" bson:"brand"`
	CreatedAt primitive.DateTime `json:"createdAt" bson:"createdAt"`
	UpdatedAt primitive.DateTime `json:"updatedAt" bson:"updatedAt"`
}

// UpdateUserRoleRequest holds the structure for changing a user's role
type UpdateUserRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=user admin system_admin"`
}
