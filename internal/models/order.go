package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderExtra is an add-on snapshot frozen into an order line.
type OrderExtra struct {
	OptionID   string     `bson:"optionId" json:"optionId"`
	Type       OptionType `bson:"type" json:"type"`
	Name       string     `bson:"name" json:"name"`
	PriceCents int        `bson:"priceCents" json:"priceCents"`
}

// OrderItem is a single cart line frozen into an order. Prices are the
// server-computed values, not whatever the client submitted.
type OrderItem struct {
	ProductID      primitive.ObjectID `bson:"productId" json:"productId"`
	Title          string             `bson:"title" json:"title"`
	Kind           ProductKind        `bson:"kind" json:"kind"`
	VariantID      string             `bson:"variantId,omitempty" json:"variantId,omitempty"`
	VariantLabel   string             `bson:"variantLabel,omitempty" json:"variantLabel,omitempty"`
	UnitPriceCents int                `bson:"unitPriceCents" json:"unitPriceCents"`
	Quantity       int                `bson:"quantity" json:"quantity"`
	Extras         []OrderExtra       `bson:"extras,omitempty" json:"extras,omitempty"`
	TotalCents     int                `bson:"totalCents" json:"totalCents"`
}

// OrderCustomer captures the delivery contact for an order.
type OrderCustomer struct {
	Name         string `bson:"name,omitempty" json:"name,omitempty"`
	Phone        string `bson:"phone" json:"phone"`
	Neighborhood string `bson:"neighborhood" json:"neighborhood"`
	Street       string `bson:"street" json:"street"`
	AddressLine  string `bson:"addressLine" json:"addressLine"`
	Reference    string `bson:"reference,omitempty" json:"reference,omitempty"`
}

// Order is the persisted order document. Message holds the exact WhatsApp
// text handed to the customer so the admin feed shows what was sent.
type Order struct {
	ID               primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	CustomerID       *primitive.ObjectID `bson:"customerId,omitempty" json:"customerId,omitempty"`
	Items            []OrderItem         `bson:"items" json:"items"`
	SubtotalCents    int                 `bson:"subtotalCents" json:"subtotalCents"`
	DeliveryFeeCents int                 `bson:"deliveryFeeCents" json:"deliveryFeeCents"`
	TotalCents       int                 `bson:"totalCents" json:"totalCents"`
	RedeemApplied    bool                `bson:"redeemApplied" json:"redeemApplied"`
	PointsEarned     int                 `bson:"pointsEarned" json:"pointsEarned"`
	PaymentMethod    string              `bson:"paymentMethod" json:"paymentMethod"`
	ChangeFor        string              `bson:"changeFor,omitempty" json:"changeFor,omitempty"`
	Notes            string              `bson:"notes,omitempty" json:"notes,omitempty"`
	Customer         OrderCustomer       `bson:"customer" json:"customer"`
	Message          string              `bson:"message" json:"message"`
	Status           string              `bson:"status" json:"status"`
	CreatedAt        time.Time           `bson:"createdAt" json:"createdAt"`
}
