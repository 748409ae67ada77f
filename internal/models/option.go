package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OptionType groups add-ons on the menu. The grouping is semantic: adicionais
// and caldas are the typically-free categories, sabores is reserved for COPO
// flavor choices materialized into cart items, and everything else is a paid
// extra bucket.
type OptionType string

const (
	TypeAdicionais OptionType = "adicionais"
	TypeCaldas     OptionType = "caldas"
	TypeCremes     OptionType = "cremes"
	TypeFrutas     OptionType = "frutas"
	TypeToppings   OptionType = "toppings"
	TypeSabores    OptionType = "sabores"
	TypeOutros     OptionType = "outros"
)

// NormalizeOptionType lowercases and trims a raw type tag. Empty tags land in
// outros so the grouping never silently loses an option.
func NormalizeOptionType(raw string) OptionType {
	t := strings.ToLower(strings.TrimSpace(raw))
	if t == "" {
		return TypeOutros
	}
	return OptionType(t)
}

func normalizeUpper(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// Option is an add-on selectable on a cart line item.
type Option struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Type       OptionType         `bson:"type" json:"type"`
	Name       string             `bson:"name" json:"name"`
	PriceCents int                `bson:"priceCents" json:"priceCents"`
	IsActive   bool               `bson:"isActive" json:"isActive"`
	SortOrder  int                `bson:"sortOrder" json:"sortOrder"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}
