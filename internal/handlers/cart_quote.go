package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"backend/internal/cart"
	"backend/internal/models"
)

type quoteRequest struct {
	Items  []cartItemRequest `json:"items" binding:"required"`
	Points int               `json:"points"`
	Redeem bool              `json:"redeem"`
}

type quoteItemResponse struct {
	Key            string       `json:"key"`
	ProductID      string       `json:"productId"`
	Title          string       `json:"title"`
	VariantID      string       `json:"variantId"`
	VariantLabel   string       `json:"variantLabel,omitempty"`
	UnitPriceCents int          `json:"unitPriceCents"`
	Quantity       int          `json:"quantity"`
	Extras         []cart.Extra `json:"extras"`
	TotalCents     int          `json:"totalCents"`
}

/*
POST /cart/quote
- authoritative totals for a client-held cart
- loyalty balance: the token's customer when authenticated, body points
  otherwise
*/
func Quote(db *mongo.Database, jwtSecret string, rules cart.Rules) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /cart/quote"
		defer handlePanic(c, route)

		if err := ensureDBConnection(c.Request.Context(), db); err != nil {
			respondWithError(c, http.StatusServiceUnavailable, route, "database unavailable")
			return
		}

		var req quoteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		balance := req.Points
		if balance < 0 {
			balance = 0
		}
		if customerID, err := customerIDFromHeader(c.GetHeader("Authorization"), jwtSecret); err == nil && customerID != nil {
			var customer models.Customer
			if err := db.Collection("customers").FindOne(ctx, bson.M{"_id": customerID}).Decode(&customer); err == nil {
				balance = customer.Points
			}
		}

		built, err := buildCartFromRequest(ctx, db, req.Items, req.Redeem)
		if err != nil {
			if status, ok := cartErrorStatus(err); ok {
				respondWithError(c, status, route, err.Error())
				return
			}
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		// A redeem flag that no longer qualifies is dropped, not rejected:
		// the quote answers "what would this cost", checkout enforces.
		rules.Normalize(&built, balance)
		totals := rules.Totals(built, balance)

		items := make([]quoteItemResponse, 0, len(built.Items))
		for _, it := range built.Items {
			items = append(items, quoteItemResponse{
				Key:            it.Key,
				ProductID:      it.ProductID,
				Title:          it.Title,
				VariantID:      it.VariantID,
				VariantLabel:   it.VariantLabel,
				UnitPriceCents: it.UnitPriceCents,
				Quantity:       it.Qty,
				Extras:         it.Extras,
				TotalCents:     it.TotalCents(),
			})
		}

		c.JSON(http.StatusOK, gin.H{
			"items":         items,
			"totals":        totals,
			"redeemApplied": built.Redeem100,
		})
	}
}
