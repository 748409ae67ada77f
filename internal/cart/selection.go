package cart

import (
	"errors"

	"backend/internal/models"
)

var (
	// ErrVariantRequired means a sized product was added without choosing a
	// size tier.
	ErrVariantRequired = errors.New("selecione um tamanho antes de adicionar")
	// ErrUnknownVariant means the requested variant id is not on the product.
	ErrUnknownVariant = errors.New("tamanho não encontrado")
	// ErrUnknownChoice means the requested flavor is missing or inactive.
	ErrUnknownChoice = errors.New("sabor não encontrado")
	// ErrTooManyCaldas rejects selecting a third caldas-type extra.
	ErrTooManyCaldas = errors.New("você pode escolher no máximo 2 caldas")
)

// Selection is the in-progress customization of one product before it turns
// into a cart line: chosen variant, toggled extras/flavors and quantity.
// Toggle rules live here so the caldas cap is enforced at selection time,
// before the cart ever sees the item.
type Selection struct {
	product models.Product
	variant string
	qty     int
	extras  map[string]models.Option
	choices map[string]models.Choice
	order   []string
}

// NewSelection starts a selection with quantity 1 and, for sized products,
// the first variant preselected the way the product modal does.
func NewSelection(p models.Product) *Selection {
	s := &Selection{
		product: p,
		qty:     1,
		extras:  make(map[string]models.Option),
		choices: make(map[string]models.Choice),
	}
	if p.Kind != models.KindSimple && len(p.Variants) > 0 {
		s.variant = p.Variants[0].ID
	}
	return s
}

// SelectVariant picks a size tier by id.
func (s *Selection) SelectVariant(id string) error {
	if s.product.Kind == models.KindSimple {
		return nil
	}
	if s.product.VariantByID(id) == nil {
		return ErrUnknownVariant
	}
	s.variant = id
	return nil
}

// SetQuantity sets the line quantity, floored at 1.
func (s *Selection) SetQuantity(q int) {
	if q < 1 {
		q = 1
	}
	s.qty = q
}

// ToggleExtra flips an add-on on or off. Turning a caldas-type option on is
// rejected once two caldas are already selected; turning off always works.
func (s *Selection) ToggleExtra(opt models.Option) error {
	id := opt.ID.Hex()
	if _, on := s.extras[id]; on {
		delete(s.extras, id)
		s.dropOrder(id)
		return nil
	}

	if models.NormalizeOptionType(string(opt.Type)) == models.TypeCaldas {
		caldas := 0
		for _, sel := range s.extras {
			if models.NormalizeOptionType(string(sel.Type)) == models.TypeCaldas {
				caldas++
			}
		}
		if caldas >= 2 {
			return ErrTooManyCaldas
		}
	}

	s.extras[id] = opt
	s.order = append(s.order, id)
	return nil
}

// ToggleChoice flips a COPO flavor on or off. Flavors are free and uncapped.
func (s *Selection) ToggleChoice(ch models.Choice) error {
	if s.product.ChoiceByID(ch.ID) == nil {
		return ErrUnknownChoice
	}
	if _, on := s.choices[ch.ID]; on {
		delete(s.choices, ch.ID)
		s.dropOrder(ch.ID)
		return nil
	}
	s.choices[ch.ID] = ch
	s.order = append(s.order, ch.ID)
	return nil
}

func (s *Selection) dropOrder(id string) {
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			return
		}
	}
}

// Item materializes the selection into a cart line. SIMPLE products price
// from the base price with no variant; sized products require a variant and
// price from it. ACAI carries the toggled options as extras; COPO carries
// its flavors as free sabores extras.
func (s *Selection) Item() (Item, error) {
	p := s.product

	if p.Kind == models.KindSimple {
		return Item{
			Key:            ItemKey(p.ID.Hex(), SimpleVariantID, nil),
			ProductID:      p.ID.Hex(),
			Title:          p.Title,
			Kind:           models.KindSimple,
			VariantID:      SimpleVariantID,
			UnitPriceCents: p.BasePriceCents,
			Qty:            s.qty,
			Extras:         []Extra{},
		}, nil
	}

	if s.variant == "" {
		return Item{}, ErrVariantRequired
	}
	v := p.VariantByID(s.variant)
	if v == nil {
		return Item{}, ErrUnknownVariant
	}

	var extras []Extra
	switch p.Kind {
	case models.KindAcai:
		for _, id := range s.order {
			opt, ok := s.extras[id]
			if !ok {
				continue
			}
			extras = append(extras, Extra{
				ID:         id,
				Type:       models.NormalizeOptionType(string(opt.Type)),
				Name:       opt.Name,
				PriceCents: opt.PriceCents,
			})
		}
	case models.KindCopo:
		for _, id := range s.order {
			ch, ok := s.choices[id]
			if !ok {
				continue
			}
			extras = append(extras, Extra{
				ID:         id,
				Type:       models.TypeSabores,
				Name:       ch.Name,
				PriceCents: 0,
			})
		}
	}
	if extras == nil {
		extras = []Extra{}
	}

	item := Item{
		ProductID:      p.ID.Hex(),
		Title:          p.Title,
		Kind:           p.Kind,
		VariantID:      v.ID,
		VariantLabel:   v.Label,
		VariantSizeML:  v.SizeML,
		UnitPriceCents: v.PriceCents,
		Qty:            s.qty,
		Extras:         extras,
	}
	item.Key = ItemKey(item.ProductID, item.VariantID, item.extraIDs())
	return item, nil
}
