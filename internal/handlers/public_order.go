package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"backend/internal/cart"
	"backend/internal/models"
	"backend/internal/whatsapp"
)

/* =========================
   REQUEST DTOs
========================= */

type checkoutCustomerRequest struct {
	Name         string `json:"name"`
	Phone        string `json:"phone" binding:"required"`
	Neighborhood string `json:"neighborhood" binding:"required"`
	Street       string `json:"street" binding:"required"`
	AddressLine  string `json:"addressLine" binding:"required"`
	Reference    string `json:"reference"`
}

type checkoutRequest struct {
	Items      []cartItemRequest       `json:"items" binding:"required"`
	Customer   checkoutCustomerRequest `json:"customer" binding:"required"`
	Payment    string                  `json:"payment" binding:"required"`
	NeedChange bool                    `json:"needChange"`
	ChangeFor  string                  `json:"changeFor"`
	Notes      string                  `json:"notes"`
	Redeem     bool                    `json:"redeem"`
	Points     int                     `json:"points"`
}

var errStoreClosed = errors.New("a loja está fechada no momento")

/* =========================
   CREATE ORDER (checkout)
========================= */

func CreateOrder(db *mongo.Database, jwtSecret, waNumber string, rules cart.Rules) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /orders"
		defer handlePanic(c, route)

		if err := ensureDBConnection(c.Request.Context(), db); err != nil {
			respondWithError(c, http.StatusServiceUnavailable, route, "database unavailable")
			return
		}

		var req checkoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		payment, err := cart.ParsePaymentMethod(req.Payment)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		customerID, err := customerIDFromHeader(c.GetHeader("Authorization"), jwtSecret)
		if err != nil {
			log.Warn().Err(err).Str("route", route).Msg("token validation failed")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		settings, err := loadStoreSettings(ctx, db)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if !settings.IsOpen {
			respondWithError(c, http.StatusConflict, route, errStoreClosed.Error())
			return
		}

		co := cart.Checkout{
			Profile: cart.Profile{
				Name:         req.Customer.Name,
				Phone:        req.Customer.Phone,
				Neighborhood: req.Customer.Neighborhood,
				Street:       req.Customer.Street,
				AddressLine:  req.Customer.AddressLine,
				Reference:    req.Customer.Reference,
			},
			Payment:    payment,
			NeedChange: req.NeedChange,
			ChangeFor:  req.ChangeFor,
			Notes:      req.Notes,
		}

		session, err := db.Client().StartSession()
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer session.EndSession(ctx)

		var (
			order   models.Order
			totals  cart.Totals
			message string
		)
		_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
			balance := req.Points
			if balance < 0 {
				balance = 0
			}
			if customerID != nil {
				var customer models.Customer
				if err := db.Collection("customers").FindOne(sessCtx, bson.M{"_id": customerID}).Decode(&customer); err != nil {
					return nil, err
				}
				balance = customer.Points
			}

			built, err := buildCartFromRequest(sessCtx, db, req.Items, req.Redeem)
			if err != nil {
				return nil, err
			}

			if err := rules.Validate(built, balance, co); err != nil {
				return nil, err
			}

			totals = rules.Totals(built, balance)
			message = rules.Message(built, balance, co)

			order = buildOrderDocument(built, totals, co, customerID)
			order.Message = message

			res, err := db.Collection("orders").InsertOne(sessCtx, order)
			if err != nil {
				return nil, err
			}
			if id, ok := res.InsertedID.(primitive.ObjectID); ok {
				order.ID = id
			}

			if customerID != nil {
				_, err = db.Collection("customers").UpdateByID(sessCtx, *customerID, bson.M{
					"$set": bson.M{
						"points":    totals.PointsAfter,
						"updatedAt": time.Now(),
					},
				})
				if err != nil {
					return nil, err
				}
			}
			return nil, nil
		})
		if err != nil {
			if status, ok := cartErrorStatus(err); ok {
				respondWithError(c, status, route, err.Error())
				return
			}
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		if customerID != nil {
			log.Info().Str("orderId", order.ID.Hex()).Str("customerId", customerID.Hex()).Msg("order created")
		} else {
			log.Info().Str("orderId", order.ID.Hex()).Msg("guest order created")
		}

		c.JSON(http.StatusCreated, gin.H{
			"order":        order,
			"message":      message,
			"whatsappUrl":  whatsapp.Link(waNumber, message),
			"pointsEarned": totals.PointsEarned,
			"pointsAfter":  totals.PointsAfter,
		})
	}
}

/* =========================
   GET ORDERS (customer history)
========================= */

func GetOrders(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /orders"
		defer handlePanic(c, route)

		customerID, ok := c.Get("customerId")
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		findOptions := options.Find().
			SetSort(bson.D{{Key: "createdAt", Value: -1}}).
			SetLimit(20)

		cursor, err := db.Collection("orders").Find(ctx, bson.M{"customerId": customerID}, findOptions)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer cursor.Close(ctx)

		orders := make([]models.Order, 0)
		if err := cursor.All(ctx, &orders); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "decode error")
			return
		}

		c.JSON(http.StatusOK, orders)
	}
}

/* =========================
   BUILD ORDER
========================= */

func buildOrderDocument(built cart.Cart, totals cart.Totals, co cart.Checkout, customerID *primitive.ObjectID) models.Order {
	items := make([]models.OrderItem, 0, len(built.Items))
	for _, it := range built.Items {
		extras := make([]models.OrderExtra, 0, len(it.Extras))
		for _, e := range it.Extras {
			extras = append(extras, models.OrderExtra{
				OptionID:   e.ID,
				Type:       e.Type,
				Name:       e.Name,
				PriceCents: e.PriceCents,
			})
		}

		productID, _ := primitive.ObjectIDFromHex(it.ProductID)
		items = append(items, models.OrderItem{
			ProductID:      productID,
			Title:          it.Title,
			Kind:           it.Kind,
			VariantID:      it.VariantID,
			VariantLabel:   it.VariantLabel,
			UnitPriceCents: it.UnitPriceCents,
			Quantity:       it.Qty,
			Extras:         extras,
			TotalCents:     it.TotalCents(),
		})
	}

	p := co.Profile.Normalized()
	changeFor := ""
	if co.Payment == cart.PaymentDinheiro && co.NeedChange {
		changeFor = strings.TrimSpace(co.ChangeFor)
	}

	return models.Order{
		CustomerID:       customerID,
		Items:            items,
		SubtotalCents:    totals.SubtotalCents,
		DeliveryFeeCents: totals.DeliveryFeeCents,
		TotalCents:       totals.TotalCents,
		RedeemApplied:    totals.RedeemApplied,
		PointsEarned:     totals.PointsEarned,
		PaymentMethod:    string(co.Payment),
		ChangeFor:        changeFor,
		Notes:            strings.TrimSpace(co.Notes),
		Customer: models.OrderCustomer{
			Name:         p.Name,
			Phone:        p.Phone,
			Neighborhood: p.Neighborhood,
			Street:       p.Street,
			AddressLine:  p.AddressLine,
			Reference:    p.Reference,
		},
		Status:    "pending",
		CreatedAt: time.Now(),
	}
}

// customerIDFromHeader parses an optional Bearer token. A missing header is
// a guest checkout, not an error; a present but invalid token is rejected.
func customerIDFromHeader(header, secret string) (*primitive.ObjectID, error) {
	raw := strings.TrimSpace(header)
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, errors.New("invalid token format")
	}

	token, err := jwt.Parse(parts[1], func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	idValue, ok := claims["customerId"].(string)
	if !ok || strings.TrimSpace(idValue) == "" {
		return nil, errors.New("customerId claim missing")
	}

	customerID, err := primitive.ObjectIDFromHex(idValue)
	if err != nil {
		return nil, errors.New("invalid customerId")
	}

	return &customerID, nil
}
