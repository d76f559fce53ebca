package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/campusmerch/store/internal/model"
	"github.com/campusmerch/store/internal/queue"
	"github.com/campusmerch/store/internal/repository"
	queue_publisher "github.com/campusmerch/store/internal/service"
)

// OrderHandler serves order placement and lookups. Placement requires a
// student bearer token; the read endpoints are open like the rest of the
// browse surface.
type OrderHandler struct {
	Orders *repository.OrderRepo

	// PublishEvents toggles the order.confirmed event on creation.
	PublishEvents bool
}

func NewOrderHandler(orders *repository.OrderRepo, publishEvents bool) *OrderHandler {
	return &OrderHandler{Orders: orders, PublishEvents: publishEvents}
}

type orderReq struct {
	StudentID     string            `json:"studentId"`
	StoreKeeperID string            `json:"storeKeeperId"`
	Items         []model.OrderItem `json:"items"`
	TotalAmount   float64           `json:"totalAmount"`
}

// Create handles POST /api/orders (student only). The buyer is the
// authenticated identity; a body studentId naming someone else is rejected.
func (h *OrderHandler) Create(c echo.Context) error {
	uid, err := currentUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "error": "unauthorized"})
	}
	var req orderReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "invalid request body"})
	}
	if req.StudentID != "" && req.StudentID != uid {
		return c.JSON(http.StatusForbidden, echo.Map{"success": false, "error": "You can only place orders for yourself"})
	}
	if req.StoreKeeperID == "" || len(req.Items) == 0 || req.TotalAmount <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "Store keeper ID, items, and total amount are required"})
	}
	for _, item := range req.Items {
		if item.ProductID == "" || item.Quantity <= 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "Each item needs a product ID and a positive quantity"})
		}
	}

	o := model.Order{
		StudentID:     uid,
		StoreKeeperID: req.StoreKeeperID,
		Items:         req.Items,
		TotalAmount:   req.TotalAmount,
	}
	if err := h.Orders.Create(c.Request().Context(), &o); err != nil {
		if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrWrongStore) {
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": err.Error()})
		}
		c.Logger().Errorf("create order: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "Failed to place order"})
	}

	if h.PublishEvents {
		// Best effort: a broker outage must not fail the purchase.
		go func(o model.Order) {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			_ = queue_publisher.PublishOrderConfirmed(ctx, queue.NewOrderConfirmedEvent(o))
		}(o)
	}

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "message": "Order placed successfully", "order": o})
}

// List handles GET /api/orders.
func (h *OrderHandler) List(c echo.Context) error {
	orders, err := h.Orders.List(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("list orders: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "Failed to fetch orders"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "orders": orders, "count": len(orders)})
}

// GetByID handles GET /api/orders/:id.
func (h *OrderHandler) GetByID(c echo.Context) error {
	o, err := h.Orders.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "error": "Order not found"})
		}
		c.Logger().Errorf("get order: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "Failed to fetch order"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "order": o})
}

// ListByStudent handles GET /api/orders/student/:studentId.
func (h *OrderHandler) ListByStudent(c echo.Context) error {
	orders, err := h.Orders.ListByStudent(c.Request().Context(), c.Param("studentId"))
	if err != nil {
		c.Logger().Errorf("list student orders: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "Failed to fetch orders"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "orders": orders, "count": len(orders)})
}

// ListByStoreKeeper handles GET /api/orders/storekeeper/:storeKeeperId.
func (h *OrderHandler) ListByStoreKeeper(c echo.Context) error {
	orders, err := h.Orders.ListByStoreKeeper(c.Request().Context(), c.Param("storeKeeperId"))
	if err != nil {
		c.Logger().Errorf("list store orders: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "Failed to fetch orders"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "orders": orders, "count": len(orders)})
}
