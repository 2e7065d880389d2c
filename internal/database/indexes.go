package database

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureOrderIndexes creates the order collection indexes. The unique index
// on order_number is the correctness backstop for number allocation; the rest
// back the admin filter queries.
func EnsureOrderIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("orders").Indexes()

	log.Println("EnsureOrderIndexes: creating order indexes")
	_, err := indexes.CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "order_number", Value: 1}},
			Options: options.Index().
				SetName("order_number_unique").
				SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "status", Value: 1}},
			Options: options.Index().SetName("status_index"),
		},
		{
			Keys:    bson.D{{Key: "created_at", Value: -1}},
			Options: options.Index().SetName("created_at_index"),
		},
		{
			Keys:    bson.D{{Key: "customer.phone", Value: 1}},
			Options: options.Index().SetName("customer_phone_index"),
		},
	})
	if err != nil {
		log.Println("EnsureOrderIndexes: order index error:", err)
		return err
	}
	log.Println("EnsureOrderIndexes: order indexes created")
	return nil
}

func EnsureMenuIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("menu_items").Indexes()

	log.Println("EnsureMenuIndexes: creating menu indexes")
	_, err := indexes.CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "category", Value: 1}},
			Options: options.Index().SetName("category_index"),
		},
		{
			Keys:    bson.D{{Key: "available", Value: 1}},
			Options: options.Index().SetName("available_index"),
		},
	})
	if err != nil {
		log.Println("EnsureMenuIndexes: menu index error:", err)
		return err
	}
	log.Println("EnsureMenuIndexes: menu indexes created")
	return nil
}

func EnsureNewsletterIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("newsletter_subscriptions").Indexes()

	log.Println("EnsureNewsletterIndexes: creating newsletter indexes")
	_, err := indexes.CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "email", Value: 1}},
			Options: options.Index().
				SetName("email_unique").
				SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "is_active", Value: 1}},
			Options: options.Index().SetName("is_active_index"),
		},
	})
	if err != nil {
		log.Println("EnsureNewsletterIndexes: newsletter index error:", err)
		return err
	}
	log.Println("EnsureNewsletterIndexes: newsletter indexes created")
	return nil
}
