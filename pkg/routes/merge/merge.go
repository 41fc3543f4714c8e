package merge

import (
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/labstack/echo/v4"

	"github.com/vikbht/provider-mdm-graph/pkg/graph"
	"github.com/vikbht/provider-mdm-graph/pkg/merging"
	"github.com/vikbht/provider-mdm-graph/pkg/models"
)

// Handler serves merge endpoints
type Handler struct {
	coordinator *merging.Coordinator
	store       *graph.ProviderStore
}

// NewHandler creates a new merge handler
func NewHandler(coordinator *merging.Coordinator, store *graph.ProviderStore) *Handler {
	return &Handler{coordinator: coordinator, store: store}
}

// Register registers merge routes
func (h *Handler) Register(g *echo.Group) {
	g.POST("", h.MergeProviders)
	g.GET("/history/:npi", h.GetMergeHistory)
}

// MergeRequest is the request body for merging two provider records
type MergeRequest struct {
	SourceNPI string `json:"source_npi" validate:"required"`
	TargetNPI string `json:"target_npi" validate:"required"`
	MergedBy  string `json:"merged_by"`
	Reason    string `json:"reason"`
}

// MergeProviders combines the source record into the target, marks the result
// as the golden record, and returns the audit entry.
func (h *Handler) MergeProviders(c echo.Context) error {
	ctx := c.Request().Context()

	var req MergeRequest
	if err := c.Bind(&req); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if req.SourceNPI == req.TargetNPI {
		return httperror.NewHTTPError(http.StatusBadRequest, "source and target must differ")
	}

	history, err := h.coordinator.Merge(ctx, req.SourceNPI, req.TargetNPI, req.MergedBy, req.Reason)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, history)
}

// GetMergeHistory lists merge audit entries touching the given NPI
func (h *Handler) GetMergeHistory(c echo.Context) error {
	ctx := c.Request().Context()
	npi := c.Param("npi")

	entries, err := h.store.ListMergeHistory(ctx, npi)
	if err != nil {
		return err
	}
	if entries == nil {
		entries = []models.MergeHistory{}
	}

	return c.JSON(http.StatusOK, entries)
}
