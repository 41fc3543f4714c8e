package quality

import (
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/labstack/echo/v4"

	"github.com/vikbht/provider-mdm-graph/pkg/models"
	"github.com/vikbht/provider-mdm-graph/pkg/quality"
)

// Handler serves data quality endpoints
type Handler struct {
	validator *quality.Validator
}

// NewHandler creates a new quality handler
func NewHandler(validator *quality.Validator) *Handler {
	return &Handler{validator: validator}
}

// Register registers quality routes
func (h *Handler) Register(g *echo.Group) {
	g.POST("/check", h.CheckProvider)
}

// CheckProvider evaluates a provider record against the data quality rules
// and returns the accumulated issues and quality score.
func (h *Handler) CheckProvider(c echo.Context) error {
	ctx := c.Request().Context()

	var provider models.Provider
	if err := c.Bind(&provider); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	result := h.validator.Validate(ctx, &provider)
	return c.JSON(http.StatusOK, result)
}
