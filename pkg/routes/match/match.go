package match

import (
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/labstack/echo/v4"

	"github.com/vikbht/provider-mdm-graph/pkg/matching"
	"github.com/vikbht/provider-mdm-graph/pkg/models"
)

// Handler serves matching endpoints
type Handler struct {
	engine *matching.Engine
}

// NewHandler creates a new match handler
func NewHandler(engine *matching.Engine) *Handler {
	return &Handler{engine: engine}
}

// Register registers matching routes
func (h *Handler) Register(g *echo.Group) {
	g.POST("/find", h.FindMatches)
}

// FindMatchesResponse is the response body for a match search
type FindMatchesResponse struct {
	TargetNPI string               `json:"target_npi"`
	Matches   []models.MatchResult `json:"matches"`
}

// FindMatches scores the given provider against every stored record and
// returns the classified candidates, best first.
func (h *Handler) FindMatches(c echo.Context) error {
	ctx := c.Request().Context()

	var provider models.Provider
	if err := c.Bind(&provider); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := provider.Validate(); err != nil {
		return err
	}

	matches, err := h.engine.FindMatches(ctx, &provider)
	if err != nil {
		return err
	}
	if matches == nil {
		matches = []models.MatchResult{}
	}

	return c.JSON(http.StatusOK, FindMatchesResponse{
		TargetNPI: provider.NPI,
		Matches:   matches,
	})
}
