package handlers

import (
	"context"
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"backend/internal/models"
)

/* =======================
   REQUEST MODELS
======================= */

type VariantRequest struct {
	ID         string `json:"id"`
	Label      string `json:"label"`
	PriceCents int    `json:"priceCents"`
	SizeML     int    `json:"sizeMl"`
	SortOrder  int    `json:"sortOrder"`
}

type ChoiceRequest struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	IsActive  *bool  `json:"isActive"`
	SortOrder int    `json:"sortOrder"`
}

type ProductCreateRequest struct {
	Category       string           `json:"category" binding:"required"`
	Title          string           `json:"title" binding:"required"`
	Description    string           `json:"description"`
	Kind           string           `json:"kind" binding:"required"`
	BasePriceCents int              `json:"basePriceCents"`
	Variants       []VariantRequest `json:"variants"`
	Choices        []ChoiceRequest  `json:"choices"`
	IsActive       *bool            `json:"isActive"`
}

type ProductUpdateRequest struct {
	Category       *string           `json:"category"`
	Title          *string           `json:"title"`
	Description    *string           `json:"description"`
	Kind           *string           `json:"kind"`
	BasePriceCents *int              `json:"basePriceCents"`
	Variants       *[]VariantRequest `json:"variants"`
	Choices        *[]ChoiceRequest  `json:"choices"`
	IsActive       *bool             `json:"isActive"`
}

/* =======================
   HELPERS
======================= */

// deriveSizeML pulls a structured size out of labels like "300ml" or
// "Copo 500 ML". Labels without an ml marker yield 0.
func deriveSizeML(label string) int {
	lower := strings.ToLower(label)
	if !strings.Contains(lower, "ml") {
		return 0
	}
	start := -1
	for i, r := range lower {
		if r >= '0' && r <= '9' {
			if start == -1 {
				start = i
			}
			continue
		}
		if start != -1 {
			n, err := strconv.Atoi(lower[start:i])
			if err != nil {
				return 0
			}
			return n
		}
	}
	if start != -1 {
		if n, err := strconv.Atoi(lower[start:]); err == nil {
			return n
		}
	}
	return 0
}

func buildVariants(reqs []VariantRequest) ([]models.Variant, error) {
	variants := make([]models.Variant, 0, len(reqs))
	for _, v := range reqs {
		label := strings.TrimSpace(v.Label)
		if label == "" {
			return nil, errors.New("variant label required")
		}
		if v.PriceCents <= 0 {
			return nil, errors.New("variant priceCents must be greater than zero")
		}
		id := strings.TrimSpace(v.ID)
		if id == "" {
			id = uuid.NewString()
		}
		size := v.SizeML
		if size == 0 {
			size = deriveSizeML(label)
		}
		variants = append(variants, models.Variant{
			ID:         id,
			Label:      label,
			PriceCents: v.PriceCents,
			SizeML:     size,
			SortOrder:  v.SortOrder,
		})
	}
	return variants, nil
}

func buildChoices(reqs []ChoiceRequest) ([]models.Choice, error) {
	choices := make([]models.Choice, 0, len(reqs))
	for _, ch := range reqs {
		name := strings.TrimSpace(ch.Name)
		if name == "" {
			return nil, errors.New("choice name required")
		}
		id := strings.TrimSpace(ch.ID)
		if id == "" {
			id = uuid.NewString()
		}
		isActive := true
		if ch.IsActive != nil {
			isActive = *ch.IsActive
		}
		choices = append(choices, models.Choice{
			ID:        id,
			Name:      name,
			IsActive:  isActive,
			SortOrder: ch.SortOrder,
		})
	}
	return choices, nil
}

// validateProductShape enforces the per-kind catalog invariants: SIMPLE has
// a base price and no variants, sized kinds have at least one variant and no
// base price, choices belong to COPO only.
func validateProductShape(kind models.ProductKind, basePriceCents int, variants []models.Variant, choices []models.Choice) error {
	switch kind {
	case models.KindSimple:
		if basePriceCents <= 0 {
			return errors.New("basePriceCents must be greater than zero for SIMPLE products")
		}
		if len(variants) > 0 {
			return errors.New("SIMPLE products cannot have variants")
		}
		if len(choices) > 0 {
			return errors.New("SIMPLE products cannot have choices")
		}
	case models.KindAcai:
		if len(variants) == 0 {
			return errors.New("at least one variant is required")
		}
		if len(choices) > 0 {
			return errors.New("choices are only valid on COPO products")
		}
	case models.KindCopo:
		if len(variants) == 0 {
			return errors.New("at least one variant is required")
		}
	default:
		return errors.New("invalid kind")
	}
	return nil
}

/* =======================
   GET (ADMIN) – LIST
======================= */

func GetAllProducts(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, limit, err := parsePaginationParams(
			c.Query("page"),
			c.Query("limit"),
		)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		filter := bson.M{}

		if category := strings.TrimSpace(c.Query("category")); category != "" {
			filter["category"] = category
		}

		if search := strings.TrimSpace(c.Query("search")); search != "" {
			filter["$or"] = []bson.M{
				{"title": bson.M{"$regex": search, "$options": "i"}},
				{"description": bson.M{"$regex": search, "$options": "i"}},
			}
		}

		if isActive := strings.TrimSpace(c.Query("isActive")); isActive != "" {
			filter["isActive"] = strings.EqualFold(isActive, "true")
		}

		ctx := context.Background()

		total, err := db.Collection("products").CountDocuments(ctx, filter)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		totalPages := int64(0)
		if total > 0 {
			totalPages = int64(math.Ceil(float64(total) / float64(limit)))
		}

		opts := options.Find().
			SetSkip((page - 1) * limit).
			SetLimit(limit).
			SetSort(bson.D{{Key: "createdAt", Value: -1}})

		cursor, err := db.Collection("products").Find(ctx, filter, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		defer cursor.Close(ctx)

		products := make([]models.Product, 0)
		if err := cursor.All(ctx, &products); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "decode error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"data": products,
			"pagination": gin.H{
				"page":       page,
				"limit":      limit,
				"total":      total,
				"totalPages": totalPages,
			},
		})
	}
}

/* =======================
   CREATE
======================= */

func CreateProduct(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ProductCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		title := strings.TrimSpace(req.Title)
		category := strings.TrimSpace(req.Category)
		if title == "" || category == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "title and category required"})
			return
		}

		kind := models.ProductKind(strings.ToUpper(strings.TrimSpace(req.Kind)))
		if !kind.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid kind"})
			return
		}

		variants, err := buildVariants(req.Variants)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		choices, err := buildChoices(req.Choices)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if err := validateProductShape(kind, req.BasePriceCents, variants, choices); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		isActive := true
		if req.IsActive != nil {
			isActive = *req.IsActive
		}

		product := models.Product{
			Category:       category,
			Title:          title,
			Description:    strings.TrimSpace(req.Description),
			Kind:           kind,
			BasePriceCents: req.BasePriceCents,
			Variants:       variants,
			Choices:        choices,
			IsActive:       isActive,
			CreatedAt:      time.Now(),
		}

		res, err := db.Collection("products").InsertOne(context.Background(), product)
		if err != nil {
			log.Error().Err(err).Msg("CreateProduct insert error")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		product.ID = res.InsertedID.(primitive.ObjectID)
		c.JSON(http.StatusCreated, product)
	}
}

/* =======================
   UPDATE
======================= */

func UpdateProduct(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		var req ProductUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}

		var existing models.Product
		err = db.Collection("products").FindOne(
			context.Background(),
			bson.M{"_id": id},
		).Decode(&existing)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		updateSet := bson.M{}

		kind := existing.Kind
		if req.Kind != nil {
			kind = models.ProductKind(strings.ToUpper(strings.TrimSpace(*req.Kind)))
			if !kind.Valid() {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid kind"})
				return
			}
			updateSet["kind"] = kind
		}

		if req.Title != nil {
			title := strings.TrimSpace(*req.Title)
			if title == "" {
				c.JSON(http.StatusBadRequest, gin.H{"error": "title required"})
				return
			}
			updateSet["title"] = title
		}
		if req.Category != nil {
			category := strings.TrimSpace(*req.Category)
			if category == "" {
				c.JSON(http.StatusBadRequest, gin.H{"error": "category required"})
				return
			}
			updateSet["category"] = category
		}
		if req.Description != nil {
			updateSet["description"] = strings.TrimSpace(*req.Description)
		}

		basePrice := existing.BasePriceCents
		if req.BasePriceCents != nil {
			basePrice = *req.BasePriceCents
			updateSet["basePriceCents"] = basePrice
		}

		variants := existing.Variants
		if req.Variants != nil {
			variants, err = buildVariants(*req.Variants)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			updateSet["variants"] = variants
		}

		choices := existing.Choices
		if req.Choices != nil {
			choices, err = buildChoices(*req.Choices)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			updateSet["choices"] = choices
		}

		if err := validateProductShape(kind, basePrice, variants, choices); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if req.IsActive != nil {
			updateSet["isActive"] = *req.IsActive
		}

		if len(updateSet) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no fields to update"})
			return
		}

		var updated models.Product
		err = db.Collection("products").
			FindOneAndUpdate(
				context.Background(),
				bson.M{"_id": id},
				bson.M{"$set": updateSet},
				options.FindOneAndUpdate().SetReturnDocument(options.After),
			).
			Decode(&updated)

		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		if err != nil {
			log.Error().Err(err).Msg("UpdateProduct update error")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		c.JSON(http.StatusOK, updated)
	}
}

/* =======================
   DELETE
======================= */

func DeleteProduct(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		var existing models.Product
		err = db.Collection("products").FindOne(
			context.Background(),
			bson.M{"_id": id},
		).Decode(&existing)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		res, err := db.Collection("products").DeleteOne(context.Background(), bson.M{"_id": id})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		if res.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}

		if err := safeDeleteUpload(existing.ImageURL); err != nil {
			log.Warn().Err(err).Msg("DeleteProduct image delete failed")
		}

		c.JSON(http.StatusOK, gin.H{"message": "product deleted"})
	}
}
