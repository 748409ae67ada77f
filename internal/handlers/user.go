package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"backend/internal/cart"
	"backend/internal/models"
)

type profileUpdateRequest struct {
	Name         string `json:"name"`
	Phone        string `json:"phone" binding:"required"`
	Neighborhood string `json:"neighborhood" binding:"required"`
	Street       string `json:"street" binding:"required"`
	AddressLine  string `json:"addressLine" binding:"required"`
	Reference    string `json:"reference"`
}

/*
PUT /user/profile
- delivery profile update, validated by the same rules checkout uses
*/
func UpdateProfile(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		customerIDValue, ok := c.Get("customerId")
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		customerID := customerIDValue.(primitive.ObjectID)

		var req profileUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		profile := cart.Profile{
			Name:         req.Name,
			Phone:        req.Phone,
			Neighborhood: req.Neighborhood,
			Street:       req.Street,
			AddressLine:  req.AddressLine,
			Reference:    req.Reference,
		}
		if err := profile.Validate(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		normalized := profile.Normalized()

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var updated models.Customer
		err := db.Collection("customers").FindOneAndUpdate(
			ctx,
			bson.M{"_id": customerID},
			bson.M{"$set": bson.M{
				"name":         normalized.Name,
				"phone":        normalized.Phone,
				"neighborhood": normalized.Neighborhood,
				"street":       normalized.Street,
				"addressLine":  normalized.AddressLine,
				"reference":    normalized.Reference,
				"updatedAt":    time.Now(),
			}},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&updated)

		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "customer not found"})
			return
		}
		if err != nil {
			if mongo.IsDuplicateKeyError(err) {
				c.JSON(http.StatusConflict, gin.H{"error": "este WhatsApp já está cadastrado"})
				return
			}
			log.Error().Err(err).Msg("profile update failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		c.JSON(http.StatusOK, toCustomerResponse(updated))
	}
}

/*
GET /user/points
*/
func GetPoints(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		customerID, ok := c.Get("customerId")
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var customer models.Customer
		if err := db.Collection("customers").FindOne(ctx, bson.M{"_id": customerID}).Decode(&customer); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "customer not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"points": customer.Points})
	}
}
