package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"backend/internal/models"
)

func acaiProduct() models.Product {
	return models.Product{
		ID:    primitive.NewObjectID(),
		Title: "Açaí Tradicional",
		Kind:  models.KindAcai,
		Variants: []models.Variant{
			{ID: "v300", Label: "300ml", PriceCents: 1500, SizeML: 300, SortOrder: 0},
			{ID: "v500", Label: "500ml", PriceCents: 2000, SizeML: 500, SortOrder: 1},
		},
		IsActive: true,
	}
}

func caldaOption(name string) models.Option {
	return models.Option{
		ID:       primitive.NewObjectID(),
		Type:     models.TypeCaldas,
		Name:     name,
		IsActive: true,
	}
}

func TestToggleExtraCaldasCap(t *testing.T) {
	s := NewSelection(acaiProduct())

	c1, c2, c3 := caldaOption("Morango"), caldaOption("Chocolate"), caldaOption("Caramelo")
	require.NoError(t, s.ToggleExtra(c1))
	require.NoError(t, s.ToggleExtra(c2))

	err := s.ToggleExtra(c3)
	assert.ErrorIs(t, err, ErrTooManyCaldas)

	item, err := s.Item()
	require.NoError(t, err)
	assert.Len(t, item.Extras, 2)

	// Toggling one off always works and frees a slot.
	require.NoError(t, s.ToggleExtra(c1))
	require.NoError(t, s.ToggleExtra(c3))
	item, err = s.Item()
	require.NoError(t, err)
	assert.Len(t, item.Extras, 2)
}

func TestToggleExtraTypeNormalization(t *testing.T) {
	s := NewSelection(acaiProduct())
	opt := caldaOption("Morango")
	opt.Type = models.OptionType("  Caldas ")
	require.NoError(t, s.ToggleExtra(opt))
	require.NoError(t, s.ToggleExtra(caldaOption("Chocolate")))
	assert.ErrorIs(t, s.ToggleExtra(caldaOption("Caramelo")), ErrTooManyCaldas)
}

func TestUncappedExtraTypes(t *testing.T) {
	s := NewSelection(acaiProduct())
	for i := 0; i < 5; i++ {
		opt := models.Option{
			ID:         primitive.NewObjectID(),
			Type:       models.TypeAdicionais,
			Name:       "extra",
			PriceCents: 0,
			IsActive:   true,
		}
		require.NoError(t, s.ToggleExtra(opt))
	}
	item, err := s.Item()
	require.NoError(t, err)
	assert.Len(t, item.Extras, 5)
}

func TestVariantRequiredForSizedKinds(t *testing.T) {
	p := acaiProduct()
	p.Variants = nil
	s := NewSelection(p)
	_, err := s.Item()
	assert.ErrorIs(t, err, ErrVariantRequired)

	assert.ErrorIs(t, s.SelectVariant("nope"), ErrUnknownVariant)
}

func TestSimpleProductNeedsNoVariant(t *testing.T) {
	p := models.Product{
		ID:             primitive.NewObjectID(),
		Title:          "Pudim",
		Kind:           models.KindSimple,
		BasePriceCents: 800,
		IsActive:       true,
	}
	s := NewSelection(p)
	s.SetQuantity(2)

	item, err := s.Item()
	require.NoError(t, err)
	assert.Equal(t, SimpleVariantID, item.VariantID)
	assert.Empty(t, item.VariantLabel)
	assert.Equal(t, 800, item.UnitPriceCents)
	assert.Equal(t, 1600, item.TotalCents())
}

func TestCopoChoicesBecomeSaboresExtras(t *testing.T) {
	p := models.Product{
		ID:    primitive.NewObjectID(),
		Title: "Copo da Casa",
		Kind:  models.KindCopo,
		Variants: []models.Variant{
			{ID: "v400", Label: "400ml", PriceCents: 1200, SortOrder: 0},
		},
		Choices: []models.Choice{
			{ID: "c1", Name: "Maracujá", IsActive: true, SortOrder: 0},
			{ID: "c2", Name: "Ninho", IsActive: true, SortOrder: 1},
			{ID: "c3", Name: "Desativado", IsActive: false, SortOrder: 2},
		},
		IsActive: true,
	}
	s := NewSelection(p)
	require.NoError(t, s.ToggleChoice(p.Choices[0]))
	require.NoError(t, s.ToggleChoice(p.Choices[1]))
	assert.ErrorIs(t, s.ToggleChoice(p.Choices[2]), ErrUnknownChoice)

	item, err := s.Item()
	require.NoError(t, err)
	require.Len(t, item.Extras, 2)
	for _, e := range item.Extras {
		assert.Equal(t, models.TypeSabores, e.Type)
		assert.Zero(t, e.PriceCents)
	}
	assert.Equal(t, 1200, item.TotalCents())
}

func TestFirstVariantPreselected(t *testing.T) {
	s := NewSelection(acaiProduct())
	item, err := s.Item()
	require.NoError(t, err)
	assert.Equal(t, "v300", item.VariantID)
	assert.Equal(t, 1500, item.UnitPriceCents)

	require.NoError(t, s.SelectVariant("v500"))
	item, err = s.Item()
	require.NoError(t, err)
	assert.Equal(t, 2000, item.UnitPriceCents)
	assert.Equal(t, 500, item.VariantSizeML)
}
