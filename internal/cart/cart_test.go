package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backend/internal/models"
)

func TestItemKeySortsExtraIDs(t *testing.T) {
	a := ItemKey("p1", "v1", []string{"b", "a"})
	b := ItemKey("p1", "v1", []string{"a", "b"})
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, ItemKey("p1", "v1", []string{"a"}))
	assert.NotEqual(t, a, ItemKey("p1", "v2", []string{"a", "b"}))
}

func TestAddMergesSameCombination(t *testing.T) {
	var c Cart
	first := acai300(freeExtra("granola", models.TypeAdicionais))
	c.Add(first)

	again := acai300(freeExtra("granola", models.TypeAdicionais))
	again.Qty = 2
	c.Add(again)

	require.Len(t, c.Items, 1)
	assert.Equal(t, 3, c.Items[0].Qty)

	// A different extra set is a distinct line.
	other := acai300(freeExtra("leite-po", models.TypeAdicionais))
	c.Add(other)
	require.Len(t, c.Items, 2)
}

func TestQuantityMutations(t *testing.T) {
	var c Cart
	it := acai300()
	c.Add(it)
	key := c.Items[0].Key

	assert.True(t, c.Increment(key))
	assert.Equal(t, 2, c.Items[0].Qty)

	assert.True(t, c.Decrement(key))
	assert.True(t, c.Decrement(key)) // floors at 1
	assert.Equal(t, 1, c.Items[0].Qty)

	assert.False(t, c.Increment("missing"))
	assert.True(t, c.Remove(key))
	assert.True(t, c.Empty())
	assert.False(t, c.Remove(key))
}

func TestClearResetsItemsAndRedeemFlag(t *testing.T) {
	c := Cart{Items: []Item{acai300()}, Redeem100: true}
	c.Clear()
	assert.True(t, c.Empty())
	assert.False(t, c.Redeem100)
	assert.Equal(t, 0, c.SubtotalCents())
}

func TestTotalQty(t *testing.T) {
	var c Cart
	a := acai300()
	a.Qty = 2
	c.Add(a)
	b := acai300(freeExtra("granola", models.TypeAdicionais))
	b.Qty = 3
	c.Add(b)
	assert.Equal(t, 5, c.TotalQty())
}
