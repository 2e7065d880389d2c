package orders

import (
	"context"
	"time"

	"tantawan/internal/models"
)

// ListFilter narrows a List query. DateTo is inclusive of the whole calendar
// day it names. Statuses, when set, takes precedence over Status.
type ListFilter struct {
	Status      *models.OrderStatus
	Statuses    []models.OrderStatus
	DateFrom    *time.Time
	DateTo      *time.Time
	OldestFirst bool
	Limit       int64
	Skip        int64
}

// Stats summarizes today's order activity for the admin dashboard.
type Stats struct {
	TodayOrders  int64            `json:"today_orders"`
	TodayRevenue float64          `json:"today_revenue"`
	StatusCounts map[string]int64 `json:"status_counts"`
	OpenOrders   int64            `json:"open_orders"`
}

// Store is the persistence boundary for orders. Insert must fail with
// ErrDuplicateOrderNumber when the order number is already taken; that
// constraint is the correctness backstop for number allocation.
type Store interface {
	Insert(ctx context.Context, order models.Order) error
	GetByID(ctx context.Context, id string) (models.Order, error)
	GetByNumber(ctx context.Context, number string) (models.Order, error)
	List(ctx context.Context, filter ListFilter) ([]models.Order, error)
	ListByPhone(ctx context.Context, phone string) ([]models.Order, error)
	Search(ctx context.Context, query string, limit int64) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id string, status models.OrderStatus, now time.Time) (int64, error)
	Delete(ctx context.Context, id string) error
	CountNumbersWithPrefix(ctx context.Context, prefix string) (int64, error)
	Stats(ctx context.Context) (Stats, error)
}
