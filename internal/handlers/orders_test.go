package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"tantawan/internal/models"
	"tantawan/internal/orders"
)

/* =========================
   FAKES
========================= */

// fakeStore implements the slice of orders.Store the order routes touch.
// The embedded interface panics on anything else, which is what we want in a
// handler test.
type fakeStore struct {
	orders.Store
	mu   sync.Mutex
	list []models.Order
}

func (f *fakeStore) Insert(ctx context.Context, order models.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.list {
		if existing.OrderNumber == order.OrderNumber {
			return fmt.Errorf("%w: %s", orders.ErrDuplicateOrderNumber, order.OrderNumber)
		}
	}
	f.list = append(f.list, order)
	return nil
}

func (f *fakeStore) GetByID(ctx context.Context, id string) (models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, order := range f.list {
		if order.ID == id {
			return order, nil
		}
	}
	return models.Order{}, orders.ErrNotFound
}

func (f *fakeStore) GetByNumber(ctx context.Context, number string) (models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, order := range f.list {
		if order.OrderNumber == number {
			return order, nil
		}
	}
	return models.Order{}, orders.ErrNotFound
}

func (f *fakeStore) List(ctx context.Context, filter orders.ListFilter) ([]models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	matches := []models.Order{}
	for _, order := range f.list {
		if filter.Status != nil && order.Status != *filter.Status {
			continue
		}
		matches = append(matches, order)
	}
	return matches, nil
}

func (f *fakeStore) UpdateStatus(ctx context.Context, id string, status models.OrderStatus, now time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.list {
		if f.list[i].ID == id {
			f.list[i].Status = status
			f.list[i].UpdatedAt = now
			return 1, nil
		}
	}
	return 0, nil
}

func (f *fakeStore) CountNumbersWithPrefix(ctx context.Context, prefix string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := int64(0)
	for _, order := range f.list {
		if strings.HasPrefix(order.OrderNumber, prefix) {
			count++
		}
	}
	return count, nil
}

type nopNotifier struct{}

func (nopNotifier) Dispatch(models.Order) {}

func newTestRouter() (*gin.Engine, *fakeStore) {
	gin.SetMode(gin.TestMode)
	store := &fakeStore{}
	svc := orders.NewService(store, nopNotifier{})

	r := gin.New()
	r.POST("/orders", CreateOrder(svc))
	r.GET("/orders", GetOrders(svc))
	r.GET("/orders/number/:number", GetOrderByNumber(svc))
	r.GET("/orders/:id", GetOrder(svc))
	r.PUT("/orders/:id/status", UpdateOrderStatus(svc))
	r.PUT("/admin/api/orders/:id/status", AdminForceOrderStatus(svc))
	return r, store
}

func postJSON(t *testing.T, r *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func putJSON(t *testing.T, r *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPut, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func validOrderBody() map[string]interface{} {
	return map[string]interface{}{
		"items": []map[string]interface{}{
			{"menu_item_id": "pad-thai", "name": "Pad Thai", "price": 16.50, "quantity": 2},
		},
		"customer": map[string]interface{}{
			"name":  "Anna Müller",
			"phone": "0791234567",
		},
		"pickup_time": time.Now().UTC().Add(time.Hour).Format(time.RFC3339),
	}
}

/* =========================
   TESTS
========================= */

func TestCreateOrderRoute(t *testing.T) {
	r, _ := newTestRouter()

	w := postJSON(t, r, "/orders", validOrderBody())
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var order models.Order
	if err := json.Unmarshal(w.Body.Bytes(), &order); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}

	today := time.Now().UTC().Format("20060102")
	if want := fmt.Sprintf("TW-%s-0001", today); order.OrderNumber != want {
		t.Fatalf("expected order number %s, got %s", want, order.OrderNumber)
	}
	if order.Total != 33.00 {
		t.Fatalf("expected total 33.00, got %v", order.Total)
	}
	if order.Status != models.StatusPending {
		t.Fatalf("expected pending, got %s", order.Status)
	}
}

func TestCreateOrderRouteRejectsEmptyCart(t *testing.T) {
	r, store := newTestRouter()

	body := validOrderBody()
	body["items"] = []map[string]interface{}{}

	w := postJSON(t, r, "/orders", body)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if len(store.list) != 0 {
		t.Fatal("nothing may be persisted for an invalid cart")
	}
}

func TestCreateOrderRouteRejectsPastPickup(t *testing.T) {
	r, _ := newTestRouter()

	body := validOrderBody()
	body["pickup_time"] = time.Now().UTC().Add(-time.Hour).Format(time.RFC3339)

	w := postJSON(t, r, "/orders", body)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "pickup_time") {
		t.Fatalf("expected pickup_time in error message, got %s", w.Body.String())
	}
}

func TestGetOrderRoute(t *testing.T) {
	r, _ := newTestRouter()

	created := postJSON(t, r, "/orders", validOrderBody())
	var order models.Order
	if err := json.Unmarshal(created.Body.Bytes(), &order); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/orders/"+order.ID, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/orders/number/"+order.OrderNumber, nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 by number, got %d", w.Code)
	}
}

func TestGetOrderRouteNotFound(t *testing.T) {
	r, _ := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/orders/does-not-exist", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestGetOrdersRouteRejectsUnknownStatus(t *testing.T) {
	r, _ := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/orders?status=sleeping", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestUpdateStatusRouteEnforcesWorkflow(t *testing.T) {
	r, _ := newTestRouter()

	created := postJSON(t, r, "/orders", validOrderBody())
	var order models.Order
	if err := json.Unmarshal(created.Body.Bytes(), &order); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}

	// pending -> ready skips confirmed/preparing and must be rejected.
	w := putJSON(t, r, "/orders/"+order.ID+"/status", gin.H{"status": "ready"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid transition, got %d", w.Code)
	}

	w = putJSON(t, r, "/orders/"+order.ID+"/status", gin.H{"status": "confirmed"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = putJSON(t, r, "/orders/"+order.ID+"/status", gin.H{"status": "banana"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown status, got %d", w.Code)
	}
}

func TestAdminForceStatusRoute(t *testing.T) {
	r, _ := newTestRouter()

	created := postJSON(t, r, "/orders", validOrderBody())
	var order models.Order
	if err := json.Unmarshal(created.Body.Bytes(), &order); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}

	// The admin route bypasses the graph entirely.
	w := putJSON(t, r, "/admin/api/orders/"+order.ID+"/status", gin.H{"status": "ready"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for forced status, got %d: %s", w.Code, w.Body.String())
	}

	var forced models.Order
	if err := json.Unmarshal(w.Body.Bytes(), &forced); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if forced.Status != models.StatusReady {
		t.Fatalf("expected ready, got %s", forced.Status)
	}
}
