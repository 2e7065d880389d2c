package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tantawan/internal/models"
	"tantawan/internal/orders"
)

/* =========================
   REQUEST DTOs
========================= */

type orderItemRequest struct {
	MenuItemID string  `json:"menu_item_id" binding:"required"`
	Name       string  `json:"name" binding:"required"`
	Price      float64 `json:"price"`
	Quantity   int     `json:"quantity" binding:"required"`
}

type orderCustomerRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone" binding:"required"`
	Notes string `json:"notes"`
}

type createOrderRequest struct {
	Items      []orderItemRequest   `json:"items" binding:"required"`
	Customer   orderCustomerRequest `json:"customer" binding:"required"`
	PickupTime time.Time            `json:"pickup_time" binding:"required"`
}

type statusUpdateRequest struct {
	Status string `json:"status" binding:"required"`
}

/* =========================
   CREATE ORDER
========================= */

func CreateOrder(svc *orders.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /orders"
		defer handlePanic(c, route)

		var req createOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		order, err := svc.Create(c.Request.Context(), toCreateRequest(req))
		if err != nil {
			var validationErr orders.ValidationError
			if errors.As(err, &validationErr) {
				respondWithError(c, http.StatusBadRequest, route, validationErr.Error())
				return
			}
			if errors.Is(err, orders.ErrNumberAllocationExhausted) {
				respondWithError(c, http.StatusInternalServerError, route, "could not allocate order number")
				return
			}
			respondWithError(c, http.StatusInternalServerError, route, "failed to create order")
			return
		}

		c.JSON(http.StatusCreated, order)
	}
}

func toCreateRequest(req createOrderRequest) orders.CreateRequest {
	items := make([]orders.ItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, orders.ItemInput{
			MenuItemID: item.MenuItemID,
			Name:       item.Name,
			Price:      item.Price,
			Quantity:   item.Quantity,
		})
	}
	return orders.CreateRequest{
		Items: items,
		Customer: orders.CustomerInput{
			Name:  req.Customer.Name,
			Phone: req.Customer.Phone,
			Notes: req.Customer.Notes,
		},
		PickupTime: req.PickupTime,
	}
}

/* =========================
   LOOKUPS
========================= */

func GetOrder(svc *orders.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /orders/:id"
		defer handlePanic(c, route)

		order, err := svc.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			if errors.Is(err, orders.ErrNotFound) {
				respondWithError(c, http.StatusNotFound, route, "order not found")
				return
			}
			respondWithError(c, http.StatusInternalServerError, route, "failed to fetch order")
			return
		}

		c.JSON(http.StatusOK, order)
	}
}

func GetOrderByNumber(svc *orders.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /orders/number/:number"
		defer handlePanic(c, route)

		order, err := svc.GetByNumber(c.Request.Context(), c.Param("number"))
		if err != nil {
			if errors.Is(err, orders.ErrNotFound) {
				respondWithError(c, http.StatusNotFound, route, "order not found")
				return
			}
			respondWithError(c, http.StatusInternalServerError, route, "failed to fetch order")
			return
		}

		c.JSON(http.StatusOK, order)
	}
}

func GetOrders(svc *orders.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /orders"
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

		list, err := svc.List(c.Request.Context(), filter)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "failed to fetch orders")
			return
		}

		c.JSON(http.StatusOK, list)
	}
}

func GetCustomerOrders(svc *orders.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /orders/customer/:phone"
		defer handlePanic(c, route)

		list, err := svc.ListByPhone(c.Request.Context(), c.Param("phone"))
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "failed to fetch customer orders")
			return
		}

		c.JSON(http.StatusOK, list)
	}
}

/* =========================
   STATUS UPDATE
========================= */

func UpdateOrderStatus(svc *orders.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /orders/:id/status"
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

		order, err := svc.UpdateStatus(c.Request.Context(), c.Param("id"), status)
		if err != nil {
			if errors.Is(err, orders.ErrNotFound) {
				respondWithError(c, http.StatusNotFound, route, "order not found")
				return
			}
			var transitionErr orders.InvalidTransitionError
			if errors.As(err, &transitionErr) {
				respondWithError(c, http.StatusBadRequest, route, transitionErr.Error())
				return
			}
			respondWithError(c, http.StatusInternalServerError, route, "failed to update order status")
			return
		}

		c.JSON(http.StatusOK, order)
	}
}
