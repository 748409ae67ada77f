package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Customer is a registered storefront account. Phone is the login identity
// (digits only, unique index). Points is the server-side loyalty balance;
// anonymous customers keep their balance client-side instead.
type Customer struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name,omitempty" json:"name,omitempty"`
	Phone        string             `bson:"phone" json:"phone"`
	PasswordHash string             `bson:"passwordHash" json:"-"`
	Neighborhood string             `bson:"neighborhood" json:"neighborhood"`
	Street       string             `bson:"street" json:"street"`
	AddressLine  string             `bson:"addressLine" json:"addressLine"`
	Reference    string             `bson:"reference,omitempty" json:"reference,omitempty"`
	Points       int                `bson:"points" json:"points"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}
