package orders

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"

	"tantawan/internal/models"
)

// maxAllocationAttempts bounds the allocate-insert retry loop. Two requests
// racing on the same count can produce the same number; the unique index
// rejects one of them and it re-allocates.
const maxAllocationAttempts = 5

// Notifier receives durably stored orders for best-effort side effects.
type Notifier interface {
	Dispatch(order models.Order)
}

// ItemInput is one cart line as submitted by the client. Prices are trusted
// menu snapshots, not re-checked against the live catalog.
type ItemInput struct {
	MenuItemID string
	Name       string
	Price      float64
	Quantity   int
}

type CustomerInput struct {
	Name  string
	Phone string
	Notes string
}

// CreateRequest is a validated-on-entry cart.
type CreateRequest struct {
	Items      []ItemInput
	Customer   CustomerInput
	PickupTime time.Time
}

// Service orchestrates the order lifecycle: validation, pricing, number
// allocation, persistence and notification dispatch.
type Service struct {
	store    Store
	seq      *Sequencer
	notifier Notifier
}

func NewService(store Store, notifier Notifier) *Service {
	return &Service{
		store:    store,
		seq:      NewSequencer(store),
		notifier: notifier,
	}
}

// Create turns a cart into a stored, uniquely numbered order. Notifications
// are dispatched after the insert succeeds and never block or fail the call.
func (s *Service) Create(ctx context.Context, req CreateRequest) (models.Order, error) {
	customer, err := validateRequest(req)
	if err != nil {
		return models.Order{}, err
	}

	now := time.Now().UTC()
	order := models.Order{
		ID:         uuid.NewString(),
		Items:      buildItems(req.Items),
		Customer:   customer,
		PickupTime: req.PickupTime.UTC(),
		Total:      cartTotal(req.Items),
		Status:     models.StatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	for attempt := 1; attempt <= maxAllocationAttempts; attempt++ {
		number, err := s.seq.Next(ctx)
		if err != nil {
			return models.Order{}, err
		}
		order.OrderNumber = number

		err = s.store.Insert(ctx, order)
		if err == nil {
			s.notifier.Dispatch(order)
			return order, nil
		}
		if !errors.Is(err, ErrDuplicateOrderNumber) {
			return models.Order{}, err
		}
		log.Printf("[ORDER] [WARN] number %s already taken, reallocating (attempt %d/%d)",
			number, attempt, maxAllocationAttempts)
	}

	return models.Order{}, fmt.Errorf("%w after %d attempts", ErrNumberAllocationExhausted, maxAllocationAttempts)
}

func (s *Service) GetByID(ctx context.Context, id string) (models.Order, error) {
	return s.store.GetByID(ctx, id)
}

func (s *Service) GetByNumber(ctx context.Context, number string) (models.Order, error) {
	return s.store.GetByNumber(ctx, number)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]models.Order, error) {
	return s.store.List(ctx, filter)
}

func (s *Service) ListByPhone(ctx context.Context, phone string) ([]models.Order, error) {
	return s.store.ListByPhone(ctx, phone)
}

func (s *Service) Search(ctx context.Context, query string, limit int64) ([]models.Order, error) {
	return s.store.Search(ctx, query, limit)
}

func (s *Service) Stats(ctx context.Context) (Stats, error) {
	return s.store.Stats(ctx)
}

// UpdateStatus applies a workflow transition. Jumps outside the transition
// graph, including any move out of a terminal state, are rejected.
func (s *Service) UpdateStatus(ctx context.Context, id string, next models.OrderStatus) (models.Order, error) {
	order, err := s.store.GetByID(ctx, id)
	if err != nil {
		return models.Order{}, err
	}

	if !CanTransition(order.Status, next) {
		return models.Order{}, InvalidTransitionError{From: order.Status, To: next}
	}

	return s.applyStatus(ctx, order, next)
}

// ForceStatus bypasses the transition graph for administrative corrections.
// The status value must still be a known one and the order must exist.
func (s *Service) ForceStatus(ctx context.Context, id string, next models.OrderStatus) (models.Order, error) {
	order, err := s.store.GetByID(ctx, id)
	if err != nil {
		return models.Order{}, err
	}

	log.Printf("[ORDER] [WARN] forcing status of %s: %s -> %s", order.OrderNumber, order.Status, next)
	return s.applyStatus(ctx, order, next)
}

func (s *Service) applyStatus(ctx context.Context, order models.Order, next models.OrderStatus) (models.Order, error) {
	now := time.Now().UTC()
	matched, err := s.store.UpdateStatus(ctx, order.ID, next, now)
	if err != nil {
		return models.Order{}, err
	}
	if matched == 0 {
		return models.Order{}, ErrNotFound
	}

	order.Status = next
	order.UpdatedAt = now
	return order, nil
}

// Delete hard-removes an order. Administrative escape hatch outside the
// status workflow; the log line is its only audit trail.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	log.Printf("[ORDER] [WARN] order %s hard-deleted by admin", id)
	return nil
}

func validateRequest(req CreateRequest) (models.Customer, error) {
	if len(req.Items) == 0 {
		return models.Customer{}, ValidationError{Field: "items", Message: "order must contain at least one item"}
	}
	for i, item := range req.Items {
		if item.Quantity < 1 {
			return models.Customer{}, ValidationError{
				Field:   fmt.Sprintf("items[%d].quantity", i),
				Message: "quantity must be at least 1",
			}
		}
		if item.Price < 0 {
			return models.Customer{}, ValidationError{
				Field:   fmt.Sprintf("items[%d].price", i),
				Message: "price must not be negative",
			}
		}
		if strings.TrimSpace(item.Name) == "" {
			return models.Customer{}, ValidationError{
				Field:   fmt.Sprintf("items[%d].name", i),
				Message: "name is required",
			}
		}
	}

	customer, err := validateCustomer(req.Customer)
	if err != nil {
		return models.Customer{}, err
	}

	if !req.PickupTime.UTC().After(time.Now().UTC()) {
		return models.Customer{}, ValidationError{Field: "pickup_time", Message: "pickup time must be in the future"}
	}

	return customer, nil
}

func validateCustomer(input CustomerInput) (models.Customer, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return models.Customer{}, ValidationError{Field: "customer.name", Message: "name is required"}
	}
	if len(name) > 100 {
		return models.Customer{}, ValidationError{Field: "customer.name", Message: "name must be at most 100 characters"}
	}

	phone := strings.TrimSpace(input.Phone)
	if digitCount(phone) < 10 {
		return models.Customer{}, ValidationError{Field: "customer.phone", Message: "phone number too short"}
	}

	notes := strings.TrimSpace(input.Notes)
	if len(notes) > 500 {
		return models.Customer{}, ValidationError{Field: "customer.notes", Message: "notes must be at most 500 characters"}
	}

	return models.Customer{Name: name, Phone: phone, Notes: notes}, nil
}

func digitCount(s string) int {
	count := 0
	for _, r := range s {
		if unicode.IsDigit(r) {
			count++
		}
	}
	return count
}

func buildItems(inputs []ItemInput) []models.OrderItem {
	items := make([]models.OrderItem, 0, len(inputs))
	for _, input := range inputs {
		items = append(items, models.OrderItem{
			MenuItemID: input.MenuItemID,
			Name:       strings.TrimSpace(input.Name),
			Price:      round2(input.Price),
			Quantity:   input.Quantity,
		})
	}
	return items
}

func cartTotal(inputs []ItemInput) float64 {
	total := 0.0
	for _, input := range inputs {
		total += round2(input.Price) * float64(input.Quantity)
	}
	return round2(total)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
