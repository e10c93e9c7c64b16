package handler

import (
	"mime/multipart"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tailormate/tailormate-api/internal/api/metrics"
	"github.com/tailormate/tailormate-api/internal/core/domain"
	"github.com/tailormate/tailormate-api/internal/core/ports"
)

// FileStore persists an uploaded file and returns its stored path.
type FileStore interface {
	Save(file *multipart.FileHeader) (string, error)
}

// AppointmentHandler manages fitting appointments, their confirmation and
// the optional reference image upload.
type AppointmentHandler struct {
	appointmentService ports.AppointmentService
	uploads            FileStore
}

func NewAppointmentHandler(appointmentService ports.AppointmentService, uploads FileStore) *AppointmentHandler {
	return &AppointmentHandler{appointmentService: appointmentService, uploads: uploads}
}

type createAppointmentRequest struct {
	Date    string `json:"date" validate:"required"`
	Time    string `json:"time" validate:"required"`
	Details string `json:"details"`
}

type updateAppointmentRequest struct {
	Date    *string `json:"date"`
	Time    *string `json:"time"`
	Details *string `json:"details"`
	Status  *string `json:"status" validate:"omitempty,oneof=pending confirmed completed"`
}

type appointmentsResponse struct {
	Appointments []domain.Appointment `json:"appointments"`
}

// Create books a new appointment for the authenticated user.
//
// @Summary      Create an appointment
// @Tags         appointments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createAppointmentRequest  true  "Appointment details"
// @Success      201   {object}  domain.Appointment
// @Failure      400   {object}  map[string]string
// @Router       /appointments [post]
func (h *AppointmentHandler) Create(c echo.Context) error {
	var req createAppointmentRequest
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

	apt, err := h.appointmentService.Create(c.Request().Context(), ports.AppointmentInput{
		UserID:  userID,
		Date:    req.Date,
		Time:    req.Time,
		Details: req.Details,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, apt)
}

// Get returns a single appointment.
//
// @Summary      Get an appointment
// @Tags         appointments
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Appointment ID"
// @Success      200  {object}  domain.Appointment
// @Failure      404  {object}  map[string]string
// @Router       /appointments/{id} [get]
func (h *AppointmentHandler) Get(c echo.Context) error {
	apt, err := h.appointmentService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, apt)
}

// List returns appointments, optionally scoped to one user.
//
// @Summary      List appointments
// @Tags         appointments
// @Produce      json
// @Security     BearerAuth
// @Param        userId  query     string  false  "Filter by user"
// @Success      200     {object}  appointmentsResponse
// @Router       /appointments [get]
func (h *AppointmentHandler) List(c echo.Context) error {
	apts, err := h.appointmentService.List(c.Request().Context(), c.QueryParam("userId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, appointmentsResponse{Appointments: apts})
}

// Update modifies an appointment. The validated flag is untouchable here.
//
// @Summary      Update an appointment
// @Tags         appointments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                    true  "Appointment ID"
// @Param        body  body      updateAppointmentRequest  true  "Fields to change"
// @Success      200   {object}  domain.Appointment
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /appointments/{id} [put]
func (h *AppointmentHandler) Update(c echo.Context) error {
	var req updateAppointmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var status *domain.AppointmentStatus
	if req.Status != nil {
		s := domain.AppointmentStatus(*req.Status)
		status = &s
	}

	apt, err := h.appointmentService.Update(c.Request().Context(), c.Param("id"), ports.UpdateAppointmentInput{
		Date:    req.Date,
		Time:    req.Time,
		Details: req.Details,
		Status:  status,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, apt)
}

// Validate confirms an appointment.
//
// @Summary      Validate an appointment
// @Tags         appointments
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Appointment ID"
// @Success      200  {object}  domain.Appointment
// @Failure      404  {object}  map[string]string
// @Router       /appointments/{id}/validate [patch]
func (h *AppointmentHandler) Validate(c echo.Context) error {
	apt, err := h.appointmentService.Validate(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	metrics.AppointmentValidationsTotal.Inc()
	return c.JSON(http.StatusOK, apt)
}

// UploadImage attaches a reference image to an appointment.
//
// @Summary      Upload an appointment image
// @Tags         appointments
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id     path      string  true  "Appointment ID"
// @Param        image  formData  file    true  "Reference image"
// @Success      200    {object}  domain.Appointment
// @Failure      400    {object}  map[string]string
// @Failure      404    {object}  map[string]string
// @Router       /appointments/{id}/image [post]
func (h *AppointmentHandler) UploadImage(c echo.Context) error {
	file, err := c.FormFile("image")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "image file is required")
	}

	path, err := h.uploads.Save(file)
	if err != nil {
		return err
	}

	apt, err := h.appointmentService.AttachImage(c.Request().Context(), c.Param("id"), path)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, apt)
}

// Delete removes an appointment.
//
// @Summary      Delete an appointment
// @Tags         appointments
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Appointment ID"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  map[string]string
// @Router       /appointments/{id} [delete]
func (h *AppointmentHandler) Delete(c echo.Context) error {
	if err := h.appointmentService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "appointment deleted"})
}
