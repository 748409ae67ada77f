package cart

import (
	"sort"
	"strings"

	"backend/internal/models"
)

// SimpleVariantID is the placeholder variant id carried by SIMPLE products,
// which have no real size tiers.
const SimpleVariantID = "simple"

// Extra is an add-on attached to a cart line item. COPO flavor choices are
// materialized as free extras of type sabores.
type Extra struct {
	ID         string            `json:"id"`
	Type       models.OptionType `json:"type"`
	Name       string            `json:"name"`
	PriceCents int               `json:"priceCents"`
}

// Item is one cart line: a product + variant + extra-set combination and its
// quantity. Key is the merge identity (see ItemKey).
type Item struct {
	Key            string             `json:"key"`
	ProductID      string             `json:"productId"`
	Title          string             `json:"title"`
	Kind           models.ProductKind `json:"kind"`
	VariantID      string             `json:"variantId"`
	VariantLabel   string             `json:"variantLabel"`
	VariantSizeML  int                `json:"variantSizeMl,omitempty"`
	UnitPriceCents int                `json:"unitPriceCents"`
	Qty            int                `json:"qty"`
	Extras         []Extra            `json:"extras"`
}

// ItemKey builds the merge identity for a line item: adding the same
// product+variant+extra-set again bumps quantity instead of duplicating the
// line. Extra ids are sorted so selection order never splits a line.
func ItemKey(productID, variantID string, extraIDs []string) string {
	sorted := append([]string(nil), extraIDs...)
	sort.Strings(sorted)
	return productID + "::" + variantID + "::" + strings.Join(sorted, ",")
}

// TotalCents is (unit price + extras) * qty, integer cents throughout.
func (it Item) TotalCents() int {
	extras := 0
	for _, e := range it.Extras {
		extras += e.PriceCents
	}
	return (it.UnitPriceCents + extras) * it.Qty
}

func (it Item) extraIDs() []string {
	ids := make([]string, 0, len(it.Extras))
	for _, e := range it.Extras {
		ids = append(ids, e.ID)
	}
	return ids
}

func (it Item) caldasCount() int {
	n := 0
	for _, e := range it.Extras {
		if models.NormalizeOptionType(string(e.Type)) == models.TypeCaldas {
			n++
		}
	}
	return n
}

// Cart is the in-progress order: an ordered sequence of line items plus the
// loyalty redemption flag. Redeem100 may only stay true while the cart keeps
// satisfying the redemption eligibility predicate; Rules.Normalize enforces
// that after every mutation.
type Cart struct {
	Items     []Item `json:"items"`
	Redeem100 bool   `json:"redeem100"`
}

// Add merges the item into the cart by key, incrementing quantity when the
// same product+variant+extra-set is already present. A missing key is derived
// from the item fields; a quantity below 1 is lifted to 1.
func (c *Cart) Add(item Item) {
	if item.Qty < 1 {
		item.Qty = 1
	}
	if item.Key == "" {
		item.Key = ItemKey(item.ProductID, item.VariantID, item.extraIDs())
	}
	for i := range c.Items {
		if c.Items[i].Key == item.Key {
			c.Items[i].Qty += item.Qty
			return
		}
	}
	c.Items = append(c.Items, item)
}

// Remove deletes the line with the given key. Returns false when absent.
func (c *Cart) Remove(key string) bool {
	for i := range c.Items {
		if c.Items[i].Key == key {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return true
		}
	}
	return false
}

// Increment bumps the line's quantity by one.
func (c *Cart) Increment(key string) bool {
	for i := range c.Items {
		if c.Items[i].Key == key {
			c.Items[i].Qty++
			return true
		}
	}
	return false
}

// Decrement lowers the line's quantity by one, never below 1. Dropping a line
// entirely goes through Remove.
func (c *Cart) Decrement(key string) bool {
	for i := range c.Items {
		if c.Items[i].Key == key {
			if c.Items[i].Qty > 1 {
				c.Items[i].Qty--
			}
			return true
		}
	}
	return false
}

// Clear empties the cart and drops the redemption flag.
func (c *Cart) Clear() {
	c.Items = nil
	c.Redeem100 = false
}

// SubtotalCents sums every line's total.
func (c Cart) SubtotalCents() int {
	sum := 0
	for _, it := range c.Items {
		sum += it.TotalCents()
	}
	return sum
}

// TotalQty sums line quantities, for the cart badge.
func (c Cart) TotalQty() int {
	n := 0
	for _, it := range c.Items {
		n += it.Qty
	}
	return n
}

// Empty reports whether the cart has no lines.
func (c Cart) Empty() bool {
	return len(c.Items) == 0
}
