package cart

import (
	"strings"

	"backend/internal/models"
)

// Rules carries the pricing constants so the engine stays pure and the
// handlers can inject config-driven values.
type Rules struct {
	// DeliveryFeeCents is the flat fee added to every non-empty cart unless
	// a redemption is active.
	DeliveryFeeCents int
	// RedeemCostPoints is the loyalty price of the free-item promotion.
	RedeemCostPoints int
	// CentsPerPoint is how much spend earns one loyalty point (floor).
	CentsPerPoint int
	// RedeemSizeML is the variant size the promotion applies to.
	RedeemSizeML int
}

// DefaultRules are the storefront's production values: R$6,00 delivery,
// 100 points for a free 300ml açaí, one point per R$3,00 spent.
func DefaultRules() Rules {
	return Rules{
		DeliveryFeeCents: 600,
		RedeemCostPoints: 100,
		CentsPerPoint:    300,
		RedeemSizeML:     300,
	}
}

// Totals is the computed order summary for a cart + loyalty balance.
type Totals struct {
	SubtotalCents    int  `json:"subtotalCents"`
	DiscountCents    int  `json:"discountCents"`
	DeliveryFeeCents int  `json:"deliveryFeeCents"`
	TotalCents       int  `json:"totalCents"`
	EligibleRedeem   bool `json:"eligibleRedeem"`
	RedeemApplied    bool `json:"redeemApplied"`
	PointsEarned     int  `json:"pointsEarned"`
	PointsAfter      int  `json:"pointsAfter"`
}

// EligibleRedeem evaluates the redemption predicate: every condition must
// hold at once or the promotion is off the table.
//
//   - balance >= RedeemCostPoints
//   - exactly one line item, kind ACAI, quantity 1
//   - the chosen variant is the promotion size
//   - at most 2 caldas extras
//   - every extra is a free adicionais or caldas
func (r Rules) EligibleRedeem(c Cart, balance int) bool {
	if balance < r.RedeemCostPoints {
		return false
	}
	if len(c.Items) != 1 {
		return false
	}

	it := c.Items[0]
	if models.ParseProductKind(string(it.Kind)) != models.KindAcai {
		return false
	}
	if !r.variantMatchesRedeemSize(it) {
		return false
	}
	if it.Qty != 1 {
		return false
	}
	if it.caldasCount() > 2 {
		return false
	}
	for _, e := range it.Extras {
		t := models.NormalizeOptionType(string(e.Type))
		if t != models.TypeAdicionais && t != models.TypeCaldas {
			return false
		}
		if e.PriceCents > 0 {
			return false
		}
	}
	return true
}

// variantMatchesRedeemSize prefers the structured size when the catalog
// provides one; legacy variants without it fall back to the historical
// label-substring convention ("300" anywhere in the label).
func (r Rules) variantMatchesRedeemSize(it Item) bool {
	if it.VariantSizeML > 0 {
		return it.VariantSizeML == r.RedeemSizeML
	}
	needle := "300"
	return strings.Contains(strings.ToLower(it.VariantLabel), needle)
}

// Normalize re-checks the redemption invariant after a mutation: a cart that
// no longer qualifies has its Redeem100 flag forced off. Returns true when
// the flag was dropped.
func (r Rules) Normalize(c *Cart, balance int) bool {
	if c.Redeem100 && !r.EligibleRedeem(*c, balance) {
		c.Redeem100 = false
		return true
	}
	return false
}

// Totals computes the full order summary. When the redemption is both
// requested and eligible the subtotal is discounted to zero, the delivery
// fee is waived, and no points are earned on the order.
func (r Rules) Totals(c Cart, balance int) Totals {
	eligible := r.EligibleRedeem(c, balance)
	redeem := c.Redeem100 && eligible

	subtotal := c.SubtotalCents()
	discount := 0
	if redeem {
		discount = subtotal
	}
	afterDiscount := subtotal - discount
	if afterDiscount < 0 {
		afterDiscount = 0
	}

	fee := 0
	if !c.Empty() && !redeem {
		fee = r.DeliveryFeeCents
	}

	total := afterDiscount + fee

	earned := 0
	if !redeem {
		earned = total / r.CentsPerPoint
	}

	spent := 0
	if redeem {
		spent = r.RedeemCostPoints
	}
	after := balance - spent
	if after < 0 {
		// Guards inconsistent state; the eligibility gate normally makes
		// this unreachable.
		after = 0
	}
	after += earned

	return Totals{
		SubtotalCents:    subtotal,
		DiscountCents:    discount,
		DeliveryFeeCents: fee,
		TotalCents:       total,
		EligibleRedeem:   eligible,
		RedeemApplied:    redeem,
		PointsEarned:     earned,
		PointsAfter:      after,
	}
}
