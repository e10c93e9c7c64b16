package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tailormate/tailormate-api/internal/api/metrics"
	"github.com/tailormate/tailormate-api/internal/core/domain"
	"github.com/tailormate/tailormate-api/internal/core/ports"
)

// OrderHandler manages tailoring orders, including the Pending/Completed
// status toggle.
type OrderHandler struct {
	orderService ports.OrderService
}

func NewOrderHandler(orderService ports.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

type createOrdersRequest struct {
	ClientID string         `json:"clientId" validate:"required"`
	Orders   []orderRequest `json:"orders" validate:"required,min=1,dive"`
}

type updateOrderRequest struct {
	Items      *string    `json:"items"`
	Status     *string    `json:"status" validate:"omitempty,oneof=Pending Completed Cancelled"`
	FinishDate *time.Time `json:"finishDate"`
}

type ordersResponse struct {
	Orders []domain.Order `json:"orders"`
}

// Create registers a batch of orders for one client.
//
// @Summary      Create orders
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createOrdersRequest  true  "Order batch"
// @Success      201   {object}  ordersResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /orders [post]
func (h *OrderHandler) Create(c echo.Context) error {
	var req createOrdersRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	orders, err := h.orderService.CreateBatch(c.Request().Context(), ports.CreateOrdersInput{
		ClientID: req.ClientID,
		Orders:   toOrderInputs(req.Orders),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, ordersResponse{Orders: orders})
}

// List returns the orders belonging to a client.
//
// @Summary      List orders by client
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        clientId  query     string  true  "Client ID"
// @Success      200       {object}  ordersResponse
// @Failure      400       {object}  map[string]string
// @Router       /orders [get]
func (h *OrderHandler) List(c echo.Context) error {
	clientID := c.QueryParam("clientId")
	if clientID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "clientId is required")
	}

	orders, err := h.orderService.ListByClient(c.Request().Context(), clientID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ordersResponse{Orders: orders})
}

// Get returns a single order.
//
// @Summary      Get an order
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        orderId  path      string  true  "Order ID"
// @Success      200      {object}  domain.Order
// @Failure      404      {object}  map[string]string
// @Router       /orders/{orderId} [get]
func (h *OrderHandler) Get(c echo.Context) error {
	order, err := h.orderService.Get(c.Request().Context(), c.Param("orderId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, order)
}

// Update modifies an order. This is the only path that can reach the
// Cancelled status.
//
// @Summary      Update an order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        orderId  path      string              true  "Order ID"
// @Param        body     body      updateOrderRequest  true  "Fields to change"
// @Success      200      {object}  domain.Order
// @Failure      400      {object}  map[string]string
// @Failure      404      {object}  map[string]string
// @Router       /orders/{orderId} [put]
func (h *OrderHandler) Update(c echo.Context) error {
	var req updateOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var status *domain.OrderStatus
	if req.Status != nil {
		s := domain.OrderStatus(*req.Status)
		status = &s
	}

	order, err := h.orderService.Update(c.Request().Context(), c.Param("orderId"), ports.UpdateOrderInput{
		Items:      req.Items,
		Status:     status,
		FinishDate: req.FinishDate,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, order)
}

// ToggleStatus flips an order between Pending and Completed.
//
// @Summary      Toggle order status
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        orderId  path      string  true  "Order ID"
// @Success      200      {object}  domain.Order
// @Failure      400      {object}  map[string]string
// @Failure      404      {object}  map[string]string
// @Router       /orders/{orderId}/status [patch]
func (h *OrderHandler) ToggleStatus(c echo.Context) error {
	order, err := h.orderService.ToggleStatus(c.Request().Context(), c.Param("orderId"))
	if err != nil {
		return err
	}

	metrics.OrderTogglesTotal.WithLabelValues(string(order.Status)).Inc()
	return c.JSON(http.StatusOK, order)
}

// Delete removes an order.
//
// @Summary      Delete an order
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        orderId  path      string  true  "Order ID"
// @Success      200      {object}  messageResponse
// @Failure      404      {object}  map[string]string
// @Router       /orders/{orderId} [delete]
func (h *OrderHandler) Delete(c echo.Context) error {
	if err := h.orderService.Delete(c.Request().Context(), c.Param("orderId")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "order deleted"})
}
