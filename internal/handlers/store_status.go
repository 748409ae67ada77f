package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"backend/internal/models"
)

type storeStatusRequest struct {
	IsOpen *bool `json:"isOpen" binding:"required"`
}

// loadStoreSettings reads the singleton settings document, creating it as
// open on first access.
func loadStoreSettings(ctx context.Context, db *mongo.Database) (models.StoreSettings, error) {
	var settings models.StoreSettings
	err := db.Collection("store_settings").
		FindOneAndUpdate(
			ctx,
			bson.M{"_id": models.StoreSettingsID},
			bson.M{"$setOnInsert": bson.M{
				"isOpen":    true,
				"updatedAt": time.Now(),
			}},
			options.FindOneAndUpdate().
				SetUpsert(true).
				SetReturnDocument(options.After),
		).
		Decode(&settings)
	return settings, err
}

/*
GET /store/status
*/
func GetStoreStatus(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /store/status"
		defer handlePanic(c, route)

		if err := ensureDBConnection(c.Request.Context(), db); err != nil {
			respondWithError(c, http.StatusServiceUnavailable, route, "database unavailable")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		settings, err := loadStoreSettings(ctx, db)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, gin.H{"isOpen": settings.IsOpen})
	}
}

/*
POST /admin/api/store/status
*/
func SetStoreStatus(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /admin/api/store/status"
		defer handlePanic(c, route)

		var req storeStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.IsOpen == nil {
			respondWithError(c, http.StatusBadRequest, route, "isOpen required")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		_, err := db.Collection("store_settings").UpdateByID(
			ctx,
			models.StoreSettingsID,
			bson.M{"$set": bson.M{
				"isOpen":    *req.IsOpen,
				"updatedAt": time.Now(),
			}},
			options.Update().SetUpsert(true),
		)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		log.Info().Bool("isOpen", *req.IsOpen).Msg("store status changed")
		c.JSON(http.StatusOK, gin.H{"isOpen": *req.IsOpen})
	}
}
