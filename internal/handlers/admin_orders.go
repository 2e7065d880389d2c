package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"tantawan/internal/models"
	"tantawan/internal/orders"
)

// kitchenStatuses are the orders the kitchen display shows, oldest first.
var kitchenStatuses = []models.OrderStatus{
	models.StatusPending,
	models.StatusConfirmed,
	models.StatusPreparing,
}

func AdminListOrders(svc *orders.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /admin/api/orders"
		defer handlePanic(c, route)

		limit, skip, err := parseLimitSkip(c.Query("limit"), c.Query("skip"), 50, 200)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid pagination params")
			return
		}

		filter := orders.ListFilter{Limit: limit, Skip: skip}

		if statusStr := c.Query("status"); statusStr != "" {
			status, ok := models.ParseStatus(statusStr)
			if !ok {
				respondWithError(c, http.StatusBadRequest, route, "unknown status")
				return
			}
			filter.Status = &status
		}

		if from := c.Query("date_from"); from != "" {
			parsed, err := time.Parse("2006-01-02", from)
			if err != nil {
				respondWithError(c, http.StatusBadRequest, route, "invalid date_from, expected YYYY-MM-DD")
				return
			}
			filter.DateFrom = &parsed
		}
		if to := c.Query("date_to"); to != "" {
			parsed, err := time.Parse("2006-01-02", to)
			if err != nil {
				respondWithError(c, http.StatusBadRequest, route, "invalid date_to, expected YYYY-MM-DD")
				return
			}
			filter.DateTo = &parsed
		}

		list, err := svc.List(c.Request.Context(), filter)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "failed to fetch orders")
			return
		}

		c.JSON(http.StatusOK, list)
	}
}

// AdminPendingOrders returns the kitchen queue: every order that still needs
// work, oldest first.
func AdminPendingOrders(svc *orders.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /admin/api/orders/pending"
		defer handlePanic(c, route)

		list, err := svc.List(c.Request.Context(), orders.ListFilter{
			Statuses:    kitchenStatuses,
			OldestFirst: true,
		})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "failed to fetch pending orders")
			return
		}

		c.JSON(http.StatusOK, list)
	}
}

func AdminTodayOrders(svc *orders.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /admin/api/orders/today"
		defer handlePanic(c, route)

		dayStart := time.Now().UTC().Truncate(24 * time.Hour)
		list, err := svc.List(c.Request.Context(), orders.ListFilter{
			DateFrom: &dayStart,
			DateTo:   &dayStart,
		})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "failed to fetch today's orders")
			return
		}

		c.JSON(http.StatusOK, list)
	}
}

func AdminSearchOrders(svc *orders.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /admin/api/orders/search"
		defer handlePanic(c, route)

		query := strings.TrimSpace(c.Query("q"))
		if query == "" {
			respondWithError(c, http.StatusBadRequest, route, "query parameter q is required")
			return
		}

		limit, _, err := parseLimitSkip(c.Query("limit"), "", 20, 100)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid limit")
			return
		}

		list, err := svc.Search(c.Request.Context(), query, limit)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "failed to search orders")
			return
		}

		c.JSON(http.StatusOK, list)
	}
}

func AdminOrderStats(svc *orders.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /admin/api/orders/stats"
		defer handlePanic(c, route)

		stats, err := svc.Stats(c.Request.Context())
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "failed to fetch order stats")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"today": gin.H{
				"orders":  stats.TodayOrders,
				"revenue": stats.TodayRevenue,
			},
			"status_counts": stats.StatusCounts,
			"open_orders":   stats.OpenOrders,
			"timestamp":     time.Now().UTC(),
		})
	}
}

// AdminForceOrderStatus overrides the status workflow. Correcting a mis-set
// status is the intended use; the service logs every forced change.
func AdminForceOrderStatus(svc *orders.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /admin/api/orders/:id/status"
		defer handlePanic(c, route)

		var req statusUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		status, ok := models.ParseStatus(req.Status)
		if !ok {
			respondWithError(c, http.StatusBadRequest, route, "unknown status")
			return
		}

		order, err := svc.ForceStatus(c.Request.Context(), c.Param("id"), status)
		if err != nil {
			if errors.Is(err, orders.ErrNotFound) {
				respondWithError(c, http.StatusNotFound, route, "order not found")
				return
			}
			respondWithError(c, http.StatusInternalServerError, route, "failed to update order status")
			return
		}

		c.JSON(http.StatusOK, order)
	}
}

func AdminDeleteOrder(svc *orders.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /admin/api/orders/:id"
		defer handlePanic(c, route)

		if err := svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
			if errors.Is(err, orders.ErrNotFound) {
				respondWithError(c, http.StatusNotFound, route, "order not found")
				return
			}
			respondWithError(c, http.StatusInternalServerError, route, "failed to delete order")
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "order deleted"})
	}
}
