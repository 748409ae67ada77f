package cart

import (
	"errors"
	"strconv"
	"strings"

	"backend/internal/models"
)

var (
	// ErrEmptyCart blocks checkout with nothing in the cart.
	ErrEmptyCart = errors.New("seu carrinho está vazio")
	// ErrInvalidPayment rejects payment methods outside the known set.
	ErrInvalidPayment = errors.New("forma de pagamento inválida")
	// ErrChangeAmountRequired fires when cash change is requested without an
	// amount to break.
	ErrChangeAmountRequired = errors.New("informe o valor para troco")
	// ErrRedeemNotEligible fires when the redemption flag is set but the
	// cart no longer qualifies.
	ErrRedeemNotEligible = errors.New("carrinho não qualifica para o resgate de 100 pontos")
)

// PaymentMethod is the closed set of payment options at checkout.
type PaymentMethod string

const (
	PaymentPix      PaymentMethod = "pix"
	PaymentDinheiro PaymentMethod = "dinheiro"
	PaymentCredito  PaymentMethod = "credito"
	PaymentDebito   PaymentMethod = "debito"
)

// ParsePaymentMethod validates a raw payment id.
func ParsePaymentMethod(raw string) (PaymentMethod, error) {
	switch PaymentMethod(strings.ToLower(strings.TrimSpace(raw))) {
	case PaymentPix:
		return PaymentPix, nil
	case PaymentDinheiro:
		return PaymentDinheiro, nil
	case PaymentCredito:
		return PaymentCredito, nil
	case PaymentDebito:
		return PaymentDebito, nil
	}
	return "", ErrInvalidPayment
}

// Label is the human label used in the checkout message.
func (m PaymentMethod) Label() string {
	switch m {
	case PaymentDinheiro:
		return "Dinheiro"
	case PaymentCredito:
		return "Cartão de Crédito"
	case PaymentDebito:
		return "Cartão de Débito"
	default:
		return "PIX"
	}
}

// Checkout gathers everything beyond the cart needed to finalize an order.
type Checkout struct {
	Profile    Profile
	Payment    PaymentMethod
	NeedChange bool
	ChangeFor  string
	Notes      string
}

// Validate applies the synchronous checkout gate: profile complete, cart
// non-empty, cash change amount present when requested, and the redemption
// flag only set while eligible. Nothing is mutated on failure.
func (r Rules) Validate(c Cart, balance int, co Checkout) error {
	if err := co.Profile.Validate(); err != nil {
		return err
	}
	if c.Empty() {
		return ErrEmptyCart
	}
	if co.Payment == PaymentDinheiro && co.NeedChange && strings.TrimSpace(co.ChangeFor) == "" {
		return ErrChangeAmountRequired
	}
	if c.Redeem100 && !r.EligibleRedeem(c, balance) {
		return ErrRedeemNotEligible
	}
	return nil
}

const storeName = "Açaí Point"

// Message renders the checkout summary handed to WhatsApp: one block per
// line item, order totals, payment, delivery address and the loyalty
// summary. Pure function of its inputs; the same text is persisted on the
// order document.
func (r Rules) Message(c Cart, balance int, co Checkout) string {
	t := r.Totals(c, balance)
	p := co.Profile.Normalized()

	var lines []string
	push := func(s string) { lines = append(lines, s) }

	push("🛒 *Pedido — " + storeName + "*")
	if p.Name != "" {
		push("👤 Cliente: *" + p.Name + "*")
	}
	push("")

	if t.RedeemApplied {
		push("🎁 *RESGATE:* 100 pontos por *Açaí 300ml grátis*")
		push("✅ Permitido: adicionais grátis + até 2 caldas grátis")
		push("❌ Não permitido: cremes/frutas/toppings/extras pagos")
		push("")
	}

	for i, it := range c.Items {
		push("*" + strconv.Itoa(i+1) + ") " + it.Title + "*")
		if models.ParseProductKind(string(it.Kind)) != models.KindSimple {
			push("• Tamanho: " + it.VariantLabel)
		}
		push("• Qtd: " + strconv.Itoa(it.Qty))

		if len(it.Extras) > 0 {
			parts := make([]string, 0, len(it.Extras))
			for _, e := range it.Extras {
				txt := e.Name
				if e.PriceCents > 0 {
					txt += " (+" + FormatBRL(e.PriceCents) + ")"
				}
				parts = append(parts, txt)
			}
			push("• Itens: " + strings.Join(parts, ", "))
		} else {
			push("• Itens: nenhum")
		}

		shown := it.TotalCents()
		if t.RedeemApplied {
			shown = 0
		}
		push("• Subtotal: *" + FormatBRL(shown) + "*")
		push("")
	}

	push("📦 Subtotal: " + FormatBRL(t.SubtotalCents-t.DiscountCents))
	push("🚚 Taxa de entrega: " + FormatBRL(t.DeliveryFeeCents))
	push("")
	push("💰 *Total: " + FormatBRL(t.TotalCents) + "*")
	push("")

	push("💳 Pagamento: *" + co.Payment.Label() + "*")
	if co.Payment == PaymentDinheiro {
		if co.NeedChange {
			amount := strings.TrimSpace(co.ChangeFor)
			if amount == "" {
				amount = "?"
			}
			push("🪙 Troco: SIM (para " + amount + ")")
		} else {
			push("🪙 Troco: NÃO")
		}
	}

	push("")
	if p.Neighborhood != "" {
		push("🏘️ Bairro: *" + p.Neighborhood + "*")
	}
	if p.Street != "" {
		push("📍 Rua: *" + p.Street + "*")
	}
	if p.AddressLine != "" {
		push("🏠 Número / Complemento: *" + p.AddressLine + "*")
	}
	if p.Reference != "" {
		push("📌 Referência: " + p.Reference)
	}

	if notes := strings.TrimSpace(co.Notes); notes != "" {
		push("")
		push("📝 Obs: " + notes)
	}

	push("")
	push("⭐ Pontos ganhos: *" + strconv.Itoa(t.PointsEarned) + "*")
	push("⭐ Pontos após pedido: *" + strconv.Itoa(t.PointsAfter) + "*")

	return strings.Join(lines, "\n")
}
