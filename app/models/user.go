package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Roles a user document can carry.
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// User is an account document in the users collection.
// Email uniqueness is enforced by an existence check before insert,
// not by a store-level constraint.
type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name     string             `bson:"name" json:"name" validate:"required"`
	Email    string             `bson:"email" json:"email" validate:"required,email"`
	Photo    string             `bson:"photo,omitempty" json:"photo,omitempty"`
	Password string             `bson:"password,omitempty" json:"-"` // bcrypt hash, never serialised
	Role     string             `bson:"role" json:"role"`
}

// IsAdmin reports whether the user holds the admin role.
func (u User) IsAdmin() bool { return u.Role == RoleAdmin }
