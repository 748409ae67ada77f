package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"backend/internal/models"
)

type OptionCreateRequest struct {
	Type       string `json:"type" binding:"required"`
	Name       string `json:"name" binding:"required"`
	PriceCents int    `json:"priceCents"`
	IsActive   *bool  `json:"isActive"`
	SortOrder  int    `json:"sortOrder"`
}

type OptionUpdateRequest struct {
	Type       *string `json:"type"`
	Name       *string `json:"name"`
	PriceCents *int    `json:"priceCents"`
	IsActive   *bool   `json:"isActive"`
	SortOrder  *int    `json:"sortOrder"`
}

/*
GET /admin/api/options
- all add-ons, active and inactive
*/
func GetAllOptions(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := bson.M{}

		if t := strings.TrimSpace(c.Query("type")); t != "" {
			filter["type"] = string(models.NormalizeOptionType(t))
		}
		if v := strings.TrimSpace(c.Query("isActive")); v != "" {
			filter["isActive"] = v == "true"
		}

		opts := options.Find().
			SetSort(bson.D{
				{Key: "type", Value: 1},
				{Key: "sortOrder", Value: 1},
				{Key: "name", Value: 1},
			})

		cursor, err := db.Collection("options").
			Find(context.Background(), filter, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		defer cursor.Close(context.Background())

		list := make([]models.Option, 0)
		if err := cursor.All(context.Background(), &list); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "decode error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"data": list})
	}
}

/*
POST /admin/api/options
- same type+name pair cannot repeat
*/
func CreateOption(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req OptionCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}

		name := strings.TrimSpace(req.Name)
		if name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name required"})
			return
		}
		if req.PriceCents < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "priceCents must be zero or greater"})
			return
		}
		optType := models.NormalizeOptionType(req.Type)

		count, err := db.Collection("options").CountDocuments(
			context.Background(),
			bson.M{"type": optType, "name": name},
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		if count > 0 {
			c.JSON(http.StatusConflict, gin.H{"error": "option already exists"})
			return
		}

		isActive := true
		if req.IsActive != nil {
			isActive = *req.IsActive
		}

		option := models.Option{
			Type:       optType,
			Name:       name,
			PriceCents: req.PriceCents,
			IsActive:   isActive,
			SortOrder:  req.SortOrder,
			CreatedAt:  time.Now(),
		}

		result, err := db.Collection("options").
			InsertOne(context.Background(), option)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		option.ID = result.InsertedID.(primitive.ObjectID)

		c.JSON(http.StatusCreated, option)
	}
}

/*
PUT /admin/api/options/:id
*/
func UpdateOption(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		var req OptionUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}

		update := bson.M{}

		if req.Type != nil {
			update["type"] = string(models.NormalizeOptionType(*req.Type))
		}
		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			if name == "" {
				c.JSON(http.StatusBadRequest, gin.H{"error": "name cannot be empty"})
				return
			}
			update["name"] = name
		}
		if req.PriceCents != nil {
			if *req.PriceCents < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "priceCents must be zero or greater"})
				return
			}
			update["priceCents"] = *req.PriceCents
		}
		if req.IsActive != nil {
			update["isActive"] = *req.IsActive
		}
		if req.SortOrder != nil {
			update["sortOrder"] = *req.SortOrder
		}

		if len(update) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no fields to update"})
			return
		}

		var updated models.Option
		err = db.Collection("options").
			FindOneAndUpdate(
				context.Background(),
				bson.M{"_id": id},
				bson.M{"$set": update},
				options.FindOneAndUpdate().SetReturnDocument(options.After),
			).
			Decode(&updated)

		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "option not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		c.JSON(http.StatusOK, updated)
	}
}

/*
PATCH /admin/api/options/:id/toggle
- flips IsActive
*/
func ToggleOption(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		ctx := context.Background()

		var existing models.Option
		if err := db.Collection("options").FindOne(ctx, bson.M{"_id": id}).Decode(&existing); err != nil {
			if err == mongo.ErrNoDocuments {
				c.JSON(http.StatusNotFound, gin.H{"error": "option not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		var updated models.Option
		err = db.Collection("options").
			FindOneAndUpdate(
				ctx,
				bson.M{"_id": id},
				bson.M{"$set": bson.M{"isActive": !existing.IsActive}},
				options.FindOneAndUpdate().SetReturnDocument(options.After),
			).
			Decode(&updated)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		c.JSON(http.StatusOK, updated)
	}
}

/*
DELETE /admin/api/options/:id
- hard delete; past orders keep their own extra snapshots
*/
func DeleteOption(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		result, err := db.Collection("options").DeleteOne(
			context.Background(),
			bson.M{"_id": id},
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		if result.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "option not found"})
			return
		}

		c.Status(http.StatusNoContent)
	}
}
