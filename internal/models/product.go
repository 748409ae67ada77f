package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductKind selects how a product is priced and customized.
type ProductKind string

const (
	// KindSimple is a fixed-price product with no variants (pudim, doces).
	KindSimple ProductKind = "SIMPLE"
	// KindAcai is a sized product that accepts free and paid add-ons.
	KindAcai ProductKind = "ACAI"
	// KindCopo is a sized product with free flavor choices.
	KindCopo ProductKind = "COPO"
)

// ParseProductKind normalizes a raw kind string. Unknown values fall back to
// ACAI, which is what the menu always assumed for untyped products.
func ParseProductKind(raw string) ProductKind {
	switch ProductKind(normalizeUpper(raw)) {
	case KindSimple:
		return KindSimple
	case KindCopo:
		return KindCopo
	default:
		return KindAcai
	}
}

// Valid reports whether k is one of the three known kinds.
func (k ProductKind) Valid() bool {
	return k == KindSimple || k == KindAcai || k == KindCopo
}

// Variant is a purchasable size/price tier of an ACAI or COPO product.
// SizeML is optional; when present it is the authoritative size used by the
// loyalty redemption rules instead of sniffing the label text.
type Variant struct {
	ID         string `bson:"id" json:"id"`
	Label      string `bson:"label" json:"label"`
	PriceCents int    `bson:"priceCents" json:"priceCents"`
	SizeML     int    `bson:"sizeMl,omitempty" json:"sizeMl,omitempty"`
	SortOrder  int    `bson:"sortOrder" json:"sortOrder"`
}

// Choice is a free flavor selection, COPO products only.
type Choice struct {
	ID        string `bson:"id" json:"id"`
	Name      string `bson:"name" json:"name"`
	IsActive  bool   `bson:"isActive" json:"isActive"`
	SortOrder int    `bson:"sortOrder" json:"sortOrder"`
}

// Product is the persisted catalog document.
//
// Invariants enforced at the admin boundary: SIMPLE has no variants and a
// positive BasePriceCents; ACAI/COPO have at least one variant and their
// unit price always comes from the chosen variant, never from BasePriceCents.
type Product struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Category       string             `bson:"category" json:"category"`
	Title          string             `bson:"title" json:"title"`
	Description    string             `bson:"description,omitempty" json:"description,omitempty"`
	ImageURL       string             `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	Kind           ProductKind        `bson:"kind" json:"kind"`
	BasePriceCents int                `bson:"basePriceCents" json:"basePriceCents"`
	Variants       []Variant          `bson:"variants" json:"variants"`
	Choices        []Choice           `bson:"choices,omitempty" json:"choices,omitempty"`
	IsActive       bool               `bson:"isActive" json:"isActive"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
}

// VariantByID returns the variant with the given id, or nil.
func (p *Product) VariantByID(id string) *Variant {
	for i := range p.Variants {
		if p.Variants[i].ID == id {
			return &p.Variants[i]
		}
	}
	return nil
}

// ChoiceByID returns the active choice with the given id, or nil.
func (p *Product) ChoiceByID(id string) *Choice {
	for i := range p.Choices {
		if p.Choices[i].ID == id && p.Choices[i].IsActive {
			return &p.Choices[i]
		}
	}
	return nil
}
