package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartEntry links a menu item a customer intends to purchase to their email.
// Entries are deleted individually or in bulk after checkout.
type CartEntry struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	MenuID        primitive.ObjectID `bson:"menuId" json:"menuId"`
	CustomerEmail string             `bson:"customer_email" json:"customer_email" validate:"required,email"`
}

// PaymentRecord is written at checkout completion and is immutable afterwards.
// A successfully recorded payment implies its source cart entries were removed.
type PaymentRecord struct {
	ID         primitive.ObjectID   `bson:"_id,omitempty" json:"_id,omitempty"`
	Email      string               `bson:"email" json:"email" validate:"required,email"`
	CartIDs    []primitive.ObjectID `bson:"cartIds" json:"cartIds"`
	MenuIDs    []primitive.ObjectID `bson:"menuIds" json:"menuIds"`
	TotalPrice float64              `bson:"total_price" json:"total_price" validate:"gte=0"`
	Date       time.Time            `bson:"date" json:"date"`
	Status     string               `bson:"status,omitempty" json:"status,omitempty"`
}
