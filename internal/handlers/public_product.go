package handlers

import (
	"context"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"backend/internal/models"
)

type menuSection struct {
	Category string           `json:"category"`
	Products []models.Product `json:"products"`
}

/*
GET /products
- active products grouped into menu sections by category
- ?category= filters to a single section
*/
func GetProducts(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /products"
		defer handlePanic(c, route)

		if err := ensureDBConnection(c.Request.Context(), db); err != nil {
			respondWithError(c, http.StatusServiceUnavailable, route, "database unavailable")
			return
		}

		filter := bson.M{"isActive": true}
		if category := strings.TrimSpace(c.Query("category")); category != "" {
			filter["category"] = category
		}

		findOptions := options.Find().
			SetSort(bson.D{
				{Key: "category", Value: 1},
				{Key: "createdAt", Value: 1},
			})

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		cursor, err := db.Collection("products").Find(ctx, filter, findOptions)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer cursor.Close(ctx)

		var products []models.Product
		if err := cursor.All(ctx, &products); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "decode error")
			return
		}

		sections := make([]menuSection, 0)
		index := make(map[string]int)
		for _, p := range products {
			sortProductLists(&p)
			i, ok := index[p.Category]
			if !ok {
				i = len(sections)
				index[p.Category] = i
				sections = append(sections, menuSection{Category: p.Category, Products: []models.Product{}})
			}
			sections[i].Products = append(sections[i].Products, p)
		}

		log.Debug().Str("route", route).Int("sections", len(sections)).Msg("menu served")
		c.JSON(http.StatusOK, gin.H{"sections": sections})
	}
}

/*
GET /products/:id
- single active product, variants sorted, inactive choices stripped
*/
func GetProduct(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /products/:id"
		defer handlePanic(c, route)

		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		if err := ensureDBConnection(c.Request.Context(), db); err != nil {
			respondWithError(c, http.StatusServiceUnavailable, route, "database unavailable")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var product models.Product
		err = db.Collection("products").FindOne(ctx, bson.M{
			"_id":      id,
			"isActive": true,
		}).Decode(&product)
		if err == mongo.ErrNoDocuments {
			respondWithError(c, http.StatusNotFound, route, "product not found")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		sortProductLists(&product)

		active := make([]models.Choice, 0, len(product.Choices))
		for _, ch := range product.Choices {
			if ch.IsActive {
				active = append(active, ch)
			}
		}
		product.Choices = active

		c.JSON(http.StatusOK, product)
	}
}

func sortProductLists(p *models.Product) {
	sort.SliceStable(p.Variants, func(i, j int) bool {
		return p.Variants[i].SortOrder < p.Variants[j].SortOrder
	})
	sort.SliceStable(p.Choices, func(i, j int) bool {
		return p.Choices[i].SortOrder < p.Choices[j].SortOrder
	})
}
