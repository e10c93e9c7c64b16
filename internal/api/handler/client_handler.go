package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tailormate/tailormate-api/internal/core/domain"
	"github.com/tailormate/tailormate-api/internal/core/ports"
)

// ClientHandler manages a tailor's client records, including the nested
// measurements and orders a client can be created with.
type ClientHandler struct {
	clientService ports.ClientService
}

func NewClientHandler(clientService ports.ClientService) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

type measurementRequest struct {
	Height    float64 `json:"height" validate:"required,gt=0"`
	Weight    float64 `json:"weight" validate:"required,gt=0"`
	ChestSize float64 `json:"chestSize" validate:"required,gt=0"`
	WaistSize float64 `json:"waistSize" validate:"required,gt=0"`
	HipSize   float64 `json:"hipSize" validate:"required,gt=0"`
}

type orderRequest struct {
	Items      string     `json:"items" validate:"required"`
	Status     string     `json:"status" validate:"omitempty,oneof=Pending Completed Cancelled"`
	FinishDate *time.Time `json:"finishDate"`
}

type createClientRequest struct {
	Name         string               `json:"name" validate:"required"`
	Measurements []measurementRequest `json:"measurements" validate:"omitempty,dive"`
	Orders       []orderRequest       `json:"orders" validate:"omitempty,dive"`
}

type clientResponse struct {
	Client       *domain.Client       `json:"client"`
	Measurements []domain.Measurement `json:"measurements,omitempty"`
	Orders       []domain.Order       `json:"orders,omitempty"`
}

type clientsResponse struct {
	Clients []domain.Client `json:"clients"`
}

func toMeasurementInputs(reqs []measurementRequest) []ports.MeasurementInput {
	ins := make([]ports.MeasurementInput, 0, len(reqs))
	for _, m := range reqs {
		ins = append(ins, ports.MeasurementInput{
			Height:    m.Height,
			Weight:    m.Weight,
			ChestSize: m.ChestSize,
			WaistSize: m.WaistSize,
			HipSize:   m.HipSize,
		})
	}
	return ins
}

func toOrderInputs(reqs []orderRequest) []ports.OrderInput {
	ins := make([]ports.OrderInput, 0, len(reqs))
	for _, o := range reqs {
		ins = append(ins, ports.OrderInput{
			Items:      o.Items,
			Status:     domain.OrderStatus(o.Status),
			FinishDate: o.FinishDate,
		})
	}
	return ins
}

// Create registers a client, optionally seeding measurements and orders.
//
// @Summary      Create a client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createClientRequest  true  "Client details"
// @Success      201   {object}  clientResponse
// @Failure      400   {object}  map[string]string
// @Router       /clients [post]
func (h *ClientHandler) Create(c echo.Context) error {
	var req createClientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	result, err := h.clientService.Create(c.Request().Context(), ports.CreateClientInput{
		UserID:       userID,
		Name:         req.Name,
		Measurements: toMeasurementInputs(req.Measurements),
		Orders:       toOrderInputs(req.Orders),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, clientResponse{
		Client:       result.Client,
		Measurements: result.Measurements,
		Orders:       result.Orders,
	})
}

// Get returns a single client.
//
// @Summary      Get a client
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Client ID"
// @Success      200  {object}  domain.Client
// @Failure      404  {object}  map[string]string
// @Router       /clients/{id} [get]
func (h *ClientHandler) Get(c echo.Context) error {
	client, err := h.clientService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, client)
}

// List returns all clients.
//
// @Summary      List clients
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  clientsResponse
// @Router       /clients [get]
func (h *ClientHandler) List(c echo.Context) error {
	clients, err := h.clientService.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, clientsResponse{Clients: clients})
}

// Delete removes a client.
//
// @Summary      Delete a client
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Client ID"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  map[string]string
// @Router       /clients/{id} [delete]
func (h *ClientHandler) Delete(c echo.Context) error {
	if err := h.clientService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "client deleted"})
}
