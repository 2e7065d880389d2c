package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"tantawan/internal/models"
)

type createMenuItemRequest struct {
	Category    string  `json:"category" binding:"required"`
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"min=0"`
	Image       string  `json:"image"`
	Available   *bool   `json:"available"`
}

func GetMenu(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /menu"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		cursor, err := db.Collection("menu_items").Find(ctx, bson.M{"available": true})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "failed to fetch menu items")
			return
		}
		defer cursor.Close(ctx)

		items := []models.MenuItem{}
		if err := cursor.All(ctx, &items); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "failed to parse menu items")
			return
		}

		c.JSON(http.StatusOK, items)
	}
}

func GetMenuByCategory(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /menu/:category"
		defer handlePanic(c, route)

		category, ok := models.ParseCategory(c.Param("category"))
		if !ok {
			respondWithError(c, http.StatusBadRequest, route, "unknown category")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		cursor, err := db.Collection("menu_items").Find(ctx, bson.M{
			"category":  category,
			"available": true,
		})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "failed to fetch menu items")
			return
		}
		defer cursor.Close(ctx)

		items := []models.MenuItem{}
		if err := cursor.All(ctx, &items); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "failed to parse menu items")
			return
		}

		if len(items) == 0 {
			respondWithError(c, http.StatusNotFound, route, "no menu items found for category")
			return
		}

		c.JSON(http.StatusOK, items)
	}
}

func GetMenuItem(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /menu/item/:id"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var item models.MenuItem
		err := db.Collection("menu_items").FindOne(ctx, bson.M{"_id": c.Param("id")}).Decode(&item)
		if err == mongo.ErrNoDocuments {
			respondWithError(c, http.StatusNotFound, route, "menu item not found")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "failed to fetch menu item")
			return
		}

		c.JSON(http.StatusOK, item)
	}
}

func CreateMenuItem(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /admin/api/menu"
		defer handlePanic(c, route)

		if err := ensureDBConnection(c.Request.Context(), db); err != nil {
			respondWithError(c, http.StatusServiceUnavailable, route, "database unavailable")
			return
		}

		var req createMenuItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		category, ok := models.ParseCategory(req.Category)
		if !ok {
			respondWithError(c, http.StatusBadRequest, route, "unknown category")
			return
		}

		available := true
		if req.Available != nil {
			available = *req.Available
		}

		now := time.Now().UTC()
		item := models.MenuItem{
			ID:          uuid.NewString(),
			Category:    category,
			Name:        strings.TrimSpace(req.Name),
			Description: strings.TrimSpace(req.Description),
			Price:       req.Price,
			Image:       req.Image,
			Available:   available,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		if _, err := db.Collection("menu_items").InsertOne(ctx, item); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "failed to create menu item")
			return
		}

		c.JSON(http.StatusCreated, item)
	}
}
