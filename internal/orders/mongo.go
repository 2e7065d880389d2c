package orders

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"tantawan/internal/models"
)

// MongoStore persists orders in the "orders" collection. Uniqueness of
// order_number is enforced by the index created in internal/database.
type MongoStore struct {
	collection *mongo.Collection
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{collection: db.Collection("orders")}
}

func (s *MongoStore) Insert(ctx context.Context, order models.Order) error {
	_, err := s.collection.InsertOne(ctx, order)
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: %s", ErrDuplicateOrderNumber, order.OrderNumber)
	}
	return err
}

func (s *MongoStore) GetByID(ctx context.Context, id string) (models.Order, error) {
	return s.getOne(ctx, bson.M{"_id": id})
}

func (s *MongoStore) GetByNumber(ctx context.Context, number string) (models.Order, error) {
	return s.getOne(ctx, bson.M{"order_number": number})
}

func (s *MongoStore) getOne(ctx context.Context, filter bson.M) (models.Order, error) {
	var order models.Order
	err := s.collection.FindOne(ctx, filter).Decode(&order)
	if err == mongo.ErrNoDocuments {
		return models.Order{}, ErrNotFound
	}
	if err != nil {
		return models.Order{}, err
	}
	return order, nil
}

func (s *MongoStore) List(ctx context.Context, filter ListFilter) ([]models.Order, error) {
	query := bson.M{}

	if len(filter.Statuses) > 0 {
		query["status"] = bson.M{"$in": filter.Statuses}
	} else if filter.Status != nil {
		query["status"] = *filter.Status
	}

	if filter.DateFrom != nil || filter.DateTo != nil {
		createdAt := bson.M{}
		if filter.DateFrom != nil {
			createdAt["$gte"] = *filter.DateFrom
		}
		if filter.DateTo != nil {
			// Include the entire end day.
			createdAt["$lt"] = filter.DateTo.Add(24 * time.Hour)
		}
		query["created_at"] = createdAt
	}

	sortDir := -1
	if filter.OldestFirst {
		sortDir = 1
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: sortDir}})
	if filter.Skip > 0 {
		findOptions.SetSkip(filter.Skip)
	}
	if filter.Limit > 0 {
		findOptions.SetLimit(filter.Limit)
	}

	return s.find(ctx, query, findOptions)
}

func (s *MongoStore) ListByPhone(ctx context.Context, phone string) ([]models.Order, error) {
	findOptions := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}})
	return s.find(ctx, bson.M{"customer.phone": phone}, findOptions)
}

func (s *MongoStore) Search(ctx context.Context, query string, limit int64) ([]models.Order, error) {
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}
	searchQuery := bson.M{
		"$or": []bson.M{
			{"order_number": pattern},
			{"customer.name": pattern},
			{"customer.phone": pattern},
		},
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)

	return s.find(ctx, searchQuery, findOptions)
}

func (s *MongoStore) find(ctx context.Context, query bson.M, findOptions *options.FindOptions) ([]models.Order, error) {
	cursor, err := s.collection.Find(ctx, query, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *MongoStore) UpdateStatus(ctx context.Context, id string, status models.OrderStatus, now time.Time) (int64, error) {
	res, err := s.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status, "updated_at": now}},
	)
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

func (s *MongoStore) Delete(ctx context.Context, id string) error {
	res, err := s.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) CountNumbersWithPrefix(ctx context.Context, prefix string) (int64, error) {
	return s.collection.CountDocuments(ctx, bson.M{
		"order_number": primitive.Regex{Pattern: "^" + regexp.QuoteMeta(prefix)},
	})
}

// openStatuses are the states the kitchen still has work for.
var openStatuses = []models.OrderStatus{
	models.StatusPending,
	models.StatusConfirmed,
	models.StatusPreparing,
}

func (s *MongoStore) Stats(ctx context.Context) (Stats, error) {
	stats := Stats{StatusCounts: map[string]int64{}}

	dayStart := time.Now().UTC().Truncate(24 * time.Hour)
	todayMatch := bson.M{"created_at": bson.M{"$gte": dayStart, "$lt": dayStart.Add(24 * time.Hour)}}

	todayOrders, err := s.collection.CountDocuments(ctx, todayMatch)
	if err != nil {
		return Stats{}, err
	}
	stats.TodayOrders = todayOrders

	revenuePipeline := mongo.Pipeline{
		{{Key: "$match", Value: todayMatch}},
		{{Key: "$group", Value: bson.M{"_id": nil, "revenue": bson.M{"$sum": "$total"}}}},
	}
	cursor, err := s.collection.Aggregate(ctx, revenuePipeline)
	if err != nil {
		return Stats{}, err
	}
	var revenueRows []struct {
		Revenue float64 `bson:"revenue"`
	}
	if err := cursor.All(ctx, &revenueRows); err != nil {
		return Stats{}, err
	}
	if len(revenueRows) > 0 {
		stats.TodayRevenue = revenueRows[0].Revenue
	}

	statusPipeline := mongo.Pipeline{
		{{Key: "$match", Value: todayMatch}},
		{{Key: "$group", Value: bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}}},
	}
	cursor, err = s.collection.Aggregate(ctx, statusPipeline)
	if err != nil {
		return Stats{}, err
	}
	var statusRows []struct {
		Status string `bson:"_id"`
		Count  int64  `bson:"count"`
	}
	if err := cursor.All(ctx, &statusRows); err != nil {
		return Stats{}, err
	}
	for _, row := range statusRows {
		stats.StatusCounts[row.Status] = row.Count
	}

	openOrders, err := s.collection.CountDocuments(ctx, bson.M{"status": bson.M{"$in": openStatuses}})
	if err != nil {
		return Stats{}, err
	}
	stats.OpenOrders = openOrders

	return stats, nil
}
