package cart

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backend/internal/models"
)

func validProfile() Profile {
	return Profile{
		Name:         "Maria",
		Phone:        "(32) 99821-2071",
		Neighborhood: "Centro",
		Street:       "Rua das Flores",
		AddressLine:  "123, apt 2",
		Reference:    "perto da praça",
	}
}

func TestValidateCheckout(t *testing.T) {
	r := DefaultRules()
	c := Cart{Items: []Item{acai300()}}
	co := Checkout{Profile: validProfile(), Payment: PaymentPix}

	require.NoError(t, r.Validate(c, 0, co))

	t.Run("missing profile field", func(t *testing.T) {
		bad := co
		bad.Profile.Street = "  "
		assert.ErrorIs(t, r.Validate(c, 0, bad), ErrProfileIncomplete)
	})

	t.Run("empty cart", func(t *testing.T) {
		assert.ErrorIs(t, r.Validate(Cart{}, 0, co), ErrEmptyCart)
	})

	t.Run("cash change without amount", func(t *testing.T) {
		cash := co
		cash.Payment = PaymentDinheiro
		cash.NeedChange = true
		assert.ErrorIs(t, r.Validate(c, 0, cash), ErrChangeAmountRequired)

		cash.ChangeFor = "50,00"
		assert.NoError(t, r.Validate(c, 0, cash))
	})

	t.Run("redeem while ineligible", func(t *testing.T) {
		bad := Cart{Items: []Item{acai300()}, Redeem100: true}
		assert.ErrorIs(t, r.Validate(bad, 10, co), ErrRedeemNotEligible)
		assert.NoError(t, r.Validate(bad, 150, co))
	})
}

func TestParsePaymentMethod(t *testing.T) {
	for _, raw := range []string{"pix", "Dinheiro", " CREDITO ", "debito"} {
		m, err := ParsePaymentMethod(raw)
		require.NoError(t, err, raw)
		assert.NotEmpty(t, m.Label())
	}
	_, err := ParsePaymentMethod("cheque")
	assert.ErrorIs(t, err, ErrInvalidPayment)
}

func TestMessageRegularOrder(t *testing.T) {
	r := DefaultRules()
	it := acai300(Extra{ID: "nutella", Type: models.TypeCremes, Name: "Nutella", PriceCents: 300})
	c := Cart{Items: []Item{it}}
	co := Checkout{
		Profile:    validProfile(),
		Payment:    PaymentDinheiro,
		NeedChange: true,
		ChangeFor:  "50,00",
		Notes:      "sem granola",
	}

	msg := r.Message(c, 0, co)

	assert.Contains(t, msg, "🛒 *Pedido — Açaí Point*")
	assert.Contains(t, msg, "👤 Cliente: *Maria*")
	assert.Contains(t, msg, "*1) Açaí Tradicional*")
	assert.Contains(t, msg, "• Tamanho: 300ml")
	assert.Contains(t, msg, "• Qtd: 1")
	assert.Contains(t, msg, "Nutella (+R$ 3,00)")
	assert.Contains(t, msg, "• Subtotal: *R$ 18,00*")
	assert.Contains(t, msg, "📦 Subtotal: R$ 18,00")
	assert.Contains(t, msg, "🚚 Taxa de entrega: R$ 6,00")
	assert.Contains(t, msg, "💰 *Total: R$ 24,00*")
	assert.Contains(t, msg, "💳 Pagamento: *Dinheiro*")
	assert.Contains(t, msg, "🪙 Troco: SIM (para 50,00)")
	assert.Contains(t, msg, "🏘️ Bairro: *Centro*")
	assert.Contains(t, msg, "📍 Rua: *Rua das Flores*")
	assert.Contains(t, msg, "🏠 Número / Complemento: *123, apt 2*")
	assert.Contains(t, msg, "📌 Referência: perto da praça")
	assert.Contains(t, msg, "📝 Obs: sem granola")
	// total 2400 -> floor(2400/300) = 8 points
	assert.Contains(t, msg, "⭐ Pontos ganhos: *8*")
	assert.Contains(t, msg, "⭐ Pontos após pedido: *8*")
}

func TestMessageRedeemedOrder(t *testing.T) {
	r := DefaultRules()
	c := Cart{
		Items:     []Item{acai300(freeExtra("granola", models.TypeAdicionais))},
		Redeem100: true,
	}
	co := Checkout{Profile: validProfile(), Payment: PaymentPix}

	msg := r.Message(c, 150, co)

	assert.Contains(t, msg, "🎁 *RESGATE:* 100 pontos por *Açaí 300ml grátis*")
	assert.Contains(t, msg, "• Subtotal: *R$ 0,00*")
	assert.Contains(t, msg, "📦 Subtotal: R$ 0,00")
	assert.Contains(t, msg, "🚚 Taxa de entrega: R$ 0,00")
	assert.Contains(t, msg, "💰 *Total: R$ 0,00*")
	assert.Contains(t, msg, "⭐ Pontos ganhos: *0*")
	assert.Contains(t, msg, "⭐ Pontos após pedido: *50*")
}

func TestMessageOmitsOptionalSections(t *testing.T) {
	r := DefaultRules()
	p := validProfile()
	p.Name = ""
	p.Reference = ""
	c := Cart{Items: []Item{acai300()}}
	msg := r.Message(c, 0, Checkout{Profile: p, Payment: PaymentPix})

	assert.NotContains(t, msg, "👤 Cliente")
	assert.NotContains(t, msg, "📌 Referência")
	assert.NotContains(t, msg, "🪙 Troco")
	assert.NotContains(t, msg, "📝 Obs")
	assert.Contains(t, msg, "• Itens: nenhum")
}

func TestMessageSimpleItemSkipsSizeLine(t *testing.T) {
	r := DefaultRules()
	it := Item{
		ProductID:      "p2",
		Title:          "Pudim",
		Kind:           models.KindSimple,
		VariantID:      SimpleVariantID,
		UnitPriceCents: 800,
		Qty:            1,
		Extras:         []Extra{},
	}
	c := Cart{Items: []Item{it}}
	msg := r.Message(c, 0, Checkout{Profile: validProfile(), Payment: PaymentPix})
	assert.NotContains(t, msg, "• Tamanho:")
	assert.Contains(t, msg, "*1) Pudim*")
}

func TestFormatBRL(t *testing.T) {
	cases := map[int]string{
		0:       "R$ 0,00",
		5:       "R$ 0,05",
		600:     "R$ 6,00",
		1850:    "R$ 18,50",
		123456:  "R$ 1.234,56",
		-600:    "-R$ 6,00",
		1000000: "R$ 10.000,00",
	}
	for cents, want := range cases {
		assert.Equal(t, want, FormatBRL(cents), "cents=%d", cents)
	}
}

func TestMessageLineOrder(t *testing.T) {
	r := DefaultRules()
	c := Cart{Items: []Item{acai300()}}
	msg := r.Message(c, 0, Checkout{Profile: validProfile(), Payment: PaymentPix})

	header := strings.Index(msg, "🛒")
	item := strings.Index(msg, "*1)")
	total := strings.Index(msg, "💰")
	points := strings.Index(msg, "⭐")
	require.True(t, header < item && item < total && total < points)
}
