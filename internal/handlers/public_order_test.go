package handlers

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"backend/internal/cart"
	"backend/internal/models"
)

func testCheckout() cart.Checkout {
	return cart.Checkout{
		Profile: cart.Profile{
			Name:         "  Maria  ",
			Phone:        "(11) 98888-7777",
			Neighborhood: "Centro",
			Street:       "Rua das Flores",
			AddressLine:  "123",
		},
		Payment: cart.PaymentDinheiro,
	}
}

func TestBuildOrderDocumentSnapshotsItems(t *testing.T) {
	productID := primitive.NewObjectID()
	built := cart.Cart{Items: []cart.Item{{
		ProductID:      productID.Hex(),
		Title:          "Açaí 300ml",
		Kind:           models.KindAcai,
		VariantID:      "v1",
		VariantLabel:   "300ml",
		UnitPriceCents: 1500,
		Qty:            2,
		Extras: []cart.Extra{
			{ID: "e1", Type: models.TypeAdicionais, Name: "Granola", PriceCents: 0},
			{ID: "e2", Type: models.TypeCremes, Name: "Nutella", PriceCents: 400},
		},
	}}}
	rules := cart.DefaultRules()
	totals := rules.Totals(built, 0)

	co := testCheckout()
	co.NeedChange = true
	co.ChangeFor = " 100 "

	order := buildOrderDocument(built, totals, co, nil)

	require.Len(t, order.Items, 1)
	item := order.Items[0]
	assert.Equal(t, productID, item.ProductID)
	assert.Equal(t, 1500, item.UnitPriceCents)
	assert.Equal(t, 2, item.Quantity)
	assert.Equal(t, (1500+400)*2, item.TotalCents)
	require.Len(t, item.Extras, 2)
	assert.Equal(t, "Granola", item.Extras[0].Name)

	assert.Equal(t, totals.SubtotalCents, order.SubtotalCents)
	assert.Equal(t, totals.TotalCents, order.TotalCents)
	assert.Equal(t, "pending", order.Status)
	assert.Nil(t, order.CustomerID)
	assert.Equal(t, "Maria", order.Customer.Name)
	assert.Equal(t, "100", order.ChangeFor)
}

func TestBuildOrderDocumentChangeForOnlyForCash(t *testing.T) {
	built := cart.Cart{Items: []cart.Item{{
		ProductID:      primitive.NewObjectID().Hex(),
		Title:          "Açaí 300ml",
		Kind:           models.KindAcai,
		VariantID:      "v1",
		VariantLabel:   "300ml",
		UnitPriceCents: 1500,
		Qty:            1,
	}}}
	rules := cart.DefaultRules()
	totals := rules.Totals(built, 0)

	co := testCheckout()
	co.Payment = cart.PaymentPix
	co.NeedChange = true
	co.ChangeFor = "100"

	order := buildOrderDocument(built, totals, co, nil)
	assert.Empty(t, order.ChangeFor)
	assert.Equal(t, string(cart.PaymentPix), order.PaymentMethod)
}

func TestCustomerIDFromHeader(t *testing.T) {
	const secret = "test-secret"

	id, err := customerIDFromHeader("", secret)
	require.NoError(t, err)
	assert.Nil(t, id)

	_, err = customerIDFromHeader("Bearer garbage", secret)
	assert.Error(t, err)

	_, err = customerIDFromHeader("Basic abc", secret)
	assert.Error(t, err)

	want := primitive.NewObjectID()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"customerId": want.Hex(),
		"role":       "customer",
		"exp":        time.Now().Add(time.Minute).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)

	id, err = customerIDFromHeader("Bearer "+signed, secret)
	require.NoError(t, err)
	require.NotNil(t, id)
	assert.Equal(t, want, *id)
}

func TestCartErrorStatus(t *testing.T) {
	for _, err := range []error{
		cart.ErrVariantRequired,
		cart.ErrUnknownVariant,
		cart.ErrUnknownChoice,
		cart.ErrTooManyCaldas,
		cart.ErrEmptyCart,
		cart.ErrInvalidPayment,
		cart.ErrChangeAmountRequired,
		cart.ErrRedeemNotEligible,
		productNotFoundError{ProductID: "x"},
		extraNotFoundError{ExtraID: "y"},
	} {
		status, ok := cartErrorStatus(err)
		assert.True(t, ok, "%v", err)
		assert.Equal(t, http.StatusBadRequest, status, "%v", err)
	}

	profileErr := cart.Profile{}.Validate()
	status, ok := cartErrorStatus(profileErr)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, status)

	_, ok = cartErrorStatus(errors.New("connection reset"))
	assert.False(t, ok)
}
