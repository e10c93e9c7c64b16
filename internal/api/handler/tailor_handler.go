package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tailormate/tailormate-api/internal/core/domain"
	"github.com/tailormate/tailormate-api/internal/core/ports"
)

// TailorHandler exposes the tailor directory browsed by customers.
type TailorHandler struct {
	tailorService ports.TailorService
}

func NewTailorHandler(tailorService ports.TailorService) *TailorHandler {
	return &TailorHandler{tailorService: tailorService}
}

type tailorsResponse struct {
	Tailors []domain.TailorProfile `json:"tailors"`
}

// List returns every registered tailor business.
//
// @Summary      List tailors
// @Tags         tailors
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  tailorsResponse
// @Router       /tailors [get]
func (h *TailorHandler) List(c echo.Context) error {
	tailors, err := h.tailorService.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tailorsResponse{Tailors: tailors})
}

// Get returns a single tailor profile.
//
// @Summary      Get a tailor
// @Tags         tailors
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Tailor ID"
// @Success      200  {object}  domain.TailorProfile
// @Failure      404  {object}  map[string]string
// @Router       /tailors/{id} [get]
func (h *TailorHandler) Get(c echo.Context) error {
	tailor, err := h.tailorService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tailor)
}

// Delete removes a tailor profile.
//
// @Summary      Delete a tailor
// @Tags         tailors
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Tailor ID"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  map[string]string
// @Router       /tailors/{id} [delete]
func (h *TailorHandler) Delete(c echo.Context) error {
	if err := h.tailorService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "tailor deleted"})
}
