package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backend/internal/models"
)

func TestSessionCartRoundTrip(t *testing.T) {
	s := NewSession(NewMemoryStore())

	c := Cart{Items: []Item{acai300(freeExtra("granola", models.TypeAdicionais))}, Redeem100: true}
	s.SaveCart(c)

	got := s.Cart()
	require.Len(t, got.Items, 1)
	assert.Equal(t, c.Items[0].Key, got.Items[0].Key)
	assert.True(t, got.Redeem100)
}

func TestSessionCorruptDataIsAbsence(t *testing.T) {
	ms := NewMemoryStore()
	ms.Set(cartKey, []byte("{not json"))
	ms.Set(profileKey, []byte("[]garbage"))
	ms.Set(pointsKey, []byte("many"))

	s := NewSession(ms)
	assert.True(t, s.Cart().Empty())
	_, ok := s.Profile()
	assert.False(t, ok)
	assert.Zero(t, s.Points())
}

func TestSessionPointsClamp(t *testing.T) {
	s := NewSession(NewMemoryStore())
	s.SavePoints(-5)
	assert.Zero(t, s.Points())
	s.SavePoints(42)
	assert.Equal(t, 42, s.Points())
}

func TestSessionProfileNormalizedOnSave(t *testing.T) {
	s := NewSession(NewMemoryStore())
	s.SaveProfile(Profile{
		Name:         "  Maria ",
		Phone:        "(32) 99821-2071",
		Neighborhood: "Centro",
		Street:       "Rua das Flores",
		AddressLine:  "123",
	})

	p, ok := s.Profile()
	require.True(t, ok)
	assert.Equal(t, "Maria", p.Name)
	assert.Equal(t, "32998212071", CleanPhone(p.Phone))
}

func TestPrefixedSessionsAreIsolated(t *testing.T) {
	ms := NewMemoryStore()
	a := NewPrefixedSession(ms, "sess-a")
	b := NewPrefixedSession(ms, "sess-b")

	a.SavePoints(120)
	a.SaveCart(Cart{Items: []Item{acai300()}})

	assert.Zero(t, b.Points())
	assert.True(t, b.Cart().Empty())
	assert.Equal(t, 120, a.Points())
}

func TestClearKeepsProfileAndPoints(t *testing.T) {
	s := NewSession(NewMemoryStore())
	s.SaveCart(Cart{Items: []Item{acai300()}, Redeem100: true})
	s.SaveProfile(validProfile())
	s.SavePoints(30)

	s.Clear()

	assert.True(t, s.Cart().Empty())
	_, ok := s.Profile()
	assert.True(t, ok)
	assert.Equal(t, 30, s.Points())
}
