package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tailormate/tailormate-api/internal/core/domain"
	"github.com/tailormate/tailormate-api/internal/core/ports"
)

// MeasurementHandler manages body-measurement records.
type MeasurementHandler struct {
	measurementService ports.MeasurementService
}

func NewMeasurementHandler(measurementService ports.MeasurementService) *MeasurementHandler {
	return &MeasurementHandler{measurementService: measurementService}
}

type createMeasurementsRequest struct {
	ClientID     string               `json:"clientId" validate:"required"`
	Measurements []measurementRequest `json:"measurements" validate:"required,min=1,dive"`
}

type measurementsResponse struct {
	Measurements []domain.Measurement `json:"measurements"`
}

// Create records a batch of measurements for one client.
//
// @Summary      Create measurements
// @Tags         measurements
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createMeasurementsRequest  true  "Measurement batch"
// @Success      201   {object}  measurementsResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /measurements [post]
func (h *MeasurementHandler) Create(c echo.Context) error {
	var req createMeasurementsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	measurements, err := h.measurementService.CreateBatch(c.Request().Context(), ports.CreateMeasurementsInput{
		ClientID:     req.ClientID,
		Measurements: toMeasurementInputs(req.Measurements),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, measurementsResponse{Measurements: measurements})
}

// List returns the measurements recorded for a client.
//
// @Summary      List measurements by client
// @Tags         measurements
// @Produce      json
// @Security     BearerAuth
// @Param        clientId  query     string  true  "Client ID"
// @Success      200       {object}  measurementsResponse
// @Failure      400       {object}  map[string]string
// @Router       /measurements [get]
func (h *MeasurementHandler) List(c echo.Context) error {
	clientID := c.QueryParam("clientId")
	if clientID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "clientId is required")
	}

	measurements, err := h.measurementService.ListByClient(c.Request().Context(), clientID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, measurementsResponse{Measurements: measurements})
}

// Get returns a single measurement record.
//
// @Summary      Get a measurement
// @Tags         measurements
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Measurement ID"
// @Success      200  {object}  domain.Measurement
// @Failure      404  {object}  map[string]string
// @Router       /measurements/{id} [get]
func (h *MeasurementHandler) Get(c echo.Context) error {
	m, err := h.measurementService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, m)
}

// Update replaces a measurement record.
//
// @Summary      Update a measurement
// @Tags         measurements
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Measurement ID"
// @Param        body  body      measurementRequest  true  "New values"
// @Success      200   {object}  domain.Measurement
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /measurements/{id} [put]
func (h *MeasurementHandler) Update(c echo.Context) error {
	var req measurementRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	m, err := h.measurementService.Update(c.Request().Context(), c.Param("id"), ports.MeasurementInput{
		Height:    req.Height,
		Weight:    req.Weight,
		ChestSize: req.ChestSize,
		WaistSize: req.WaistSize,
		HipSize:   req.HipSize,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, m)
}

// Delete removes a measurement record.
//
// @Summary      Delete a measurement
// @Tags         measurements
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Measurement ID"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  map[string]string
// @Router       /measurements/{id} [delete]
func (h *MeasurementHandler) Delete(c echo.Context) error {
	if err := h.measurementService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "measurement deleted"})
}
