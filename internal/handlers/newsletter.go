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
	"go.mongodb.org/mongo-driver/mongo/options"

	"tantawan/internal/models"
)

type subscribeRequest struct {
	Email string `json:"email" binding:"required,email"`
}

func SubscribeNewsletter(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /newsletter/subscribe"
		defer handlePanic(c, route)

		var req subscribeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "a valid email is required")
			return
		}
		email := strings.ToLower(strings.TrimSpace(req.Email))

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		collection := db.Collection("newsletter_subscriptions")

		var existing models.NewsletterSubscription
		err := collection.FindOne(ctx, bson.M{"email": email}).Decode(&existing)
		switch {
		case err == nil && existing.IsActive:
			respondWithError(c, http.StatusBadRequest, route, "email is already subscribed")
			return

		case err == nil:
			// Reactivate a previously unsubscribed address.
			now := time.Now().UTC()
			_, err := collection.UpdateOne(ctx, bson.M{"email": email}, bson.M{
				"$set": bson.M{
					"is_active":     true,
					"subscribed_at": now,
				},
				"$unset": bson.M{"unsubscribed_at": ""},
			})
			if err != nil {
				respondWithError(c, http.StatusInternalServerError, route, "failed to subscribe")
				return
			}
			c.JSON(http.StatusOK, gin.H{
				"message": "successfully resubscribed to newsletter",
				"subscription": gin.H{
					"id":            existing.ID,
					"email":         email,
					"subscribed_at": now,
				},
			})
			return

		case err == mongo.ErrNoDocuments:
			subscription := models.NewsletterSubscription{
				ID:           uuid.NewString(),
				Email:        email,
				IsActive:     true,
				SubscribedAt: time.Now().UTC(),
			}
			if _, err := collection.InsertOne(ctx, subscription); err != nil {
				// Lost a race with a concurrent subscribe of the same email.
				if mongo.IsDuplicateKeyError(err) {
					respondWithError(c, http.StatusBadRequest, route, "email is already subscribed")
					return
				}
				respondWithError(c, http.StatusInternalServerError, route, "failed to subscribe")
				return
			}
			c.JSON(http.StatusCreated, gin.H{
				"message": "successfully subscribed to newsletter",
				"subscription": gin.H{
					"id":            subscription.ID,
					"email":         subscription.Email,
					"subscribed_at": subscription.SubscribedAt,
				},
			})
			return

		default:
			respondWithError(c, http.StatusInternalServerError, route, "failed to subscribe")
			return
		}
	}
}

func UnsubscribeNewsletter(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /newsletter/subscribe/:email"
		defer handlePanic(c, route)

		email := strings.ToLower(strings.TrimSpace(c.Param("email")))

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		collection := db.Collection("newsletter_subscriptions")

		var subscription models.NewsletterSubscription
		err := collection.FindOne(ctx, bson.M{"email": email}).Decode(&subscription)
		if err == mongo.ErrNoDocuments {
			respondWithError(c, http.StatusNotFound, route, "email not found in newsletter subscriptions")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "failed to unsubscribe")
			return
		}

		if !subscription.IsActive {
			respondWithError(c, http.StatusBadRequest, route, "email is already unsubscribed")
			return
		}

		now := time.Now().UTC()
		res, err := collection.UpdateOne(ctx, bson.M{"email": email}, bson.M{
			"$set": bson.M{
				"is_active":       false,
				"unsubscribed_at": now,
			},
		})
		if err != nil || res.ModifiedCount == 0 {
			respondWithError(c, http.StatusInternalServerError, route, "failed to unsubscribe")
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "successfully unsubscribed from newsletter"})
	}
}

func NewsletterSubscriptionCount(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /newsletter/subscriptions/count"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		count, err := db.Collection("newsletter_subscriptions").CountDocuments(ctx, bson.M{"is_active": true})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "failed to count subscriptions")
			return
		}

		c.JSON(http.StatusOK, gin.H{"active_subscriptions": count})
	}
}

func ListNewsletterSubscriptions(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /admin/api/newsletter/subscriptions"
		defer handlePanic(c, route)

		limit, skip, err := parseLimitSkip(c.Query("limit"), c.Query("skip"), 100, 500)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid pagination params")
			return
		}

		query := bson.M{}
		if c.DefaultQuery("active_only", "true") == "true" {
			query["is_active"] = true
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		cursor, err := db.Collection("newsletter_subscriptions").Find(ctx, query,
			optionsFindSubscriptions(limit, skip))
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "failed to fetch subscriptions")
			return
		}
		defer cursor.Close(ctx)

		subscriptions := []models.NewsletterSubscription{}
		if err := cursor.All(ctx, &subscriptions); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "failed to parse subscriptions")
			return
		}

		c.JSON(http.StatusOK, subscriptions)
	}
}

func optionsFindSubscriptions(limit, skip int64) *options.FindOptions {
	return options.Find().
		SetSort(bson.D{{Key: "subscribed_at", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)
}
