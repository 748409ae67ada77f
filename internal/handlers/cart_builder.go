package handlers

import (
	"context"
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"backend/internal/cart"
	"backend/internal/models"
)

type cartItemRequest struct {
	ProductID string   `json:"productId" binding:"required"`
	VariantID string   `json:"variantId"`
	Quantity  int      `json:"quantity"`
	ExtraIDs  []string `json:"extraIds"`
}

type productNotFoundError struct {
	ProductID string
}

func (e productNotFoundError) Error() string {
	return "product not found"
}

type extraNotFoundError struct {
	ExtraID string
}

func (e extraNotFoundError) Error() string {
	return "option not found"
}

// buildCartFromRequest rebuilds a cart server-side: every product, variant
// and extra is resolved from the catalog and re-priced through a Selection,
// so client-submitted prices never reach an order.
func buildCartFromRequest(ctx context.Context, db *mongo.Database, items []cartItemRequest, redeem bool) (cart.Cart, error) {
	optionByID, err := loadActiveOptions(ctx, db, items)
	if err != nil {
		return cart.Cart{}, err
	}

	var built cart.Cart
	for _, item := range items {
		productID, err := primitive.ObjectIDFromHex(item.ProductID)
		if err != nil {
			return cart.Cart{}, productNotFoundError{ProductID: item.ProductID}
		}

		var product models.Product
		err = db.Collection("products").FindOne(ctx, bson.M{
			"_id":      productID,
			"isActive": true,
		}).Decode(&product)
		if err == mongo.ErrNoDocuments {
			return cart.Cart{}, productNotFoundError{ProductID: item.ProductID}
		}
		if err != nil {
			return cart.Cart{}, err
		}

		sel := cart.NewSelection(product)
		if item.VariantID != "" {
			if err := sel.SelectVariant(item.VariantID); err != nil {
				return cart.Cart{}, err
			}
		}
		sel.SetQuantity(item.Quantity)

		for _, extraID := range item.ExtraIDs {
			switch product.Kind {
			case models.KindCopo:
				ch := product.ChoiceByID(extraID)
				if ch == nil {
					return cart.Cart{}, cart.ErrUnknownChoice
				}
				if err := sel.ToggleChoice(*ch); err != nil {
					return cart.Cart{}, err
				}
			case models.KindAcai:
				opt, ok := optionByID[extraID]
				if !ok {
					return cart.Cart{}, extraNotFoundError{ExtraID: extraID}
				}
				if err := sel.ToggleExtra(opt); err != nil {
					return cart.Cart{}, err
				}
			}
		}

		line, err := sel.Item()
		if err != nil {
			return cart.Cart{}, err
		}
		built.Add(line)
	}

	built.Redeem100 = redeem
	return built, nil
}

// loadActiveOptions fetches every referenced add-on in one query. Ids that
// are not ObjectIDs are skipped here; COPO choice ids resolve against the
// product instead.
func loadActiveOptions(ctx context.Context, db *mongo.Database, items []cartItemRequest) (map[string]models.Option, error) {
	ids := make([]primitive.ObjectID, 0)
	seen := make(map[string]struct{})
	for _, item := range items {
		for _, raw := range item.ExtraIDs {
			if _, ok := seen[raw]; ok {
				continue
			}
			seen[raw] = struct{}{}
			if id, err := primitive.ObjectIDFromHex(raw); err == nil {
				ids = append(ids, id)
			}
		}
	}

	result := make(map[string]models.Option, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	cursor, err := db.Collection("options").Find(ctx, bson.M{
		"_id":      bson.M{"$in": ids},
		"isActive": true,
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var opts []models.Option
	if err := cursor.All(ctx, &opts); err != nil {
		return nil, err
	}
	for _, opt := range opts {
		result[opt.ID.Hex()] = opt
	}
	return result, nil
}

// cartErrorStatus maps engine errors to HTTP statuses: selection and
// checkout validation failures are client errors, anything else bubbles up
// as a server error.
func cartErrorStatus(err error) (int, bool) {
	switch {
	case errors.Is(err, cart.ErrVariantRequired),
		errors.Is(err, cart.ErrUnknownVariant),
		errors.Is(err, cart.ErrUnknownChoice),
		errors.Is(err, cart.ErrTooManyCaldas),
		errors.Is(err, cart.ErrEmptyCart),
		errors.Is(err, cart.ErrInvalidPayment),
		errors.Is(err, cart.ErrChangeAmountRequired),
		errors.Is(err, cart.ErrRedeemNotEligible),
		errors.Is(err, cart.ErrProfileIncomplete):
		return http.StatusBadRequest, true
	}

	var notFound productNotFoundError
	if errors.As(err, &notFound) {
		return http.StatusBadRequest, true
	}
	var missingExtra extraNotFoundError
	if errors.As(err, &missingExtra) {
		return http.StatusBadRequest, true
	}
	return 0, false
}
