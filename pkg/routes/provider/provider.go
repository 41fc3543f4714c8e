package provider

import (
	"fmt"
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/labstack/echo/v4"

	"github.com/vikbht/provider-mdm-graph/pkg/apperrors"
	"github.com/vikbht/provider-mdm-graph/pkg/graph"
	"github.com/vikbht/provider-mdm-graph/pkg/models"
)

// Handler serves provider record endpoints
type Handler struct {
	store *graph.ProviderStore
}

// NewHandler creates a new provider handler
func NewHandler(store *graph.ProviderStore) *Handler {
	return &Handler{store: store}
}

// Register registers provider routes
func (h *Handler) Register(g *echo.Group) {
	g.POST("", h.UpsertProvider)
	g.GET("/search", h.SearchProviders)
	g.GET("/:npi", h.GetProvider)
	g.POST("/:npi/locations", h.AddLocation)
	g.POST("/:npi/specialties", h.AddSpecialty)
	g.POST("/:npi/credentials", h.AddCredential)
	g.POST("/:npi/affiliations", h.AddAffiliation)
}

// UpsertProvider creates or updates a provider record
func (h *Handler) UpsertProvider(c echo.Context) error {
	ctx := c.Request().Context()

	var provider models.Provider
	if err := c.Bind(&provider); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := provider.Validate(); err != nil {
		return err
	}

	if err := h.store.UpsertProvider(ctx, &provider); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{"npi": provider.NPI, "status": "upserted"})
}

// GetProvider gets a provider record by NPI
func (h *Handler) GetProvider(c echo.Context) error {
	ctx := c.Request().Context()
	npi := c.Param("npi")

	props, err := h.store.GetProvider(ctx, npi)
	if err != nil {
		return err
	}
	if props == nil {
		return fmt.Errorf("provider %s: %w", npi, apperrors.ErrNotFound)
	}

	return c.JSON(http.StatusOK, props)
}

// SearchProviders searches providers by name or email substring
func (h *Handler) SearchProviders(c echo.Context) error {
	ctx := c.Request().Context()

	text := c.QueryParam("q")
	if text == "" {
		return httperror.NewHTTPError(http.StatusBadRequest, "q query parameter is required")
	}

	results, err := h.store.Search(ctx, text)
	if err != nil {
		return err
	}
	if results == nil {
		results = []map[string]any{}
	}

	return c.JSON(http.StatusOK, results)
}

// AddLocation attaches a practice location to a provider
func (h *Handler) AddLocation(c echo.Context) error {
	ctx := c.Request().Context()
	npi := c.Param("npi")

	var loc models.Location
	if err := c.Bind(&loc); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := loc.Validate(); err != nil {
		return err
	}

	if err := h.requireProvider(c, npi); err != nil {
		return err
	}
	if err := h.store.UpsertLocation(ctx, &loc); err != nil {
		return err
	}
	if err := h.store.Relate(ctx, graph.RelateInput{
		FromLabel: "Provider", FromKeyProp: "npi", FromKey: npi,
		ToLabel: "Location", ToKeyProp: "location_id", ToKey: loc.LocationID,
		Type: "PRACTICES_AT",
	}); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{"npi": npi, "location_id": loc.LocationID, "status": "linked"})
}

// AddSpecialty attaches a medical specialty to a provider
func (h *Handler) AddSpecialty(c echo.Context) error {
	ctx := c.Request().Context()
	npi := c.Param("npi")

	var sp models.Specialty
	if err := c.Bind(&sp); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := sp.Validate(); err != nil {
		return err
	}

	if err := h.requireProvider(c, npi); err != nil {
		return err
	}
	if err := h.store.UpsertSpecialty(ctx, &sp); err != nil {
		return err
	}
	if err := h.store.Relate(ctx, graph.RelateInput{
		FromLabel: "Provider", FromKeyProp: "npi", FromKey: npi,
		ToLabel: "Specialty", ToKeyProp: "specialty_code", ToKey: sp.SpecialtyCode,
		Type: "HAS_SPECIALTY",
	}); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{"npi": npi, "specialty_code": sp.SpecialtyCode, "status": "linked"})
}

// AddCredential attaches a license credential to a provider
func (h *Handler) AddCredential(c echo.Context) error {
	ctx := c.Request().Context()
	npi := c.Param("npi")

	var cr models.Credential
	if err := c.Bind(&cr); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := cr.Validate(); err != nil {
		return err
	}

	if err := h.requireProvider(c, npi); err != nil {
		return err
	}
	if err := h.store.UpsertCredential(ctx, &cr); err != nil {
		return err
	}
	if err := h.store.Relate(ctx, graph.RelateInput{
		FromLabel: "Provider", FromKeyProp: "npi", FromKey: npi,
		ToLabel: "Credential", ToKeyProp: "credential_id", ToKey: cr.CredentialID,
		Type: "HOLDS_CREDENTIAL",
	}); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{"npi": npi, "credential_id": cr.CredentialID, "status": "linked"})
}

// AddAffiliation attaches an organization affiliation to a provider
func (h *Handler) AddAffiliation(c echo.Context) error {
	ctx := c.Request().Context()
	npi := c.Param("npi")

	var af models.Affiliation
	if err := c.Bind(&af); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := af.Validate(); err != nil {
		return err
	}

	if err := h.requireProvider(c, npi); err != nil {
		return err
	}
	if err := h.store.UpsertAffiliation(ctx, &af); err != nil {
		return err
	}
	if err := h.store.Relate(ctx, graph.RelateInput{
		FromLabel: "Provider", FromKeyProp: "npi", FromKey: npi,
		ToLabel: "Affiliation", ToKeyProp: "affiliation_id", ToKey: af.AffiliationID,
		Type: "AFFILIATED_WITH",
	}); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{"npi": npi, "affiliation_id": af.AffiliationID, "status": "linked"})
}

func (h *Handler) requireProvider(c echo.Context, npi string) error {
	props, err := h.store.GetProvider(c.Request().Context(), npi)
	if err != nil {
		return err
	}
	if props == nil {
		return fmt.Errorf("provider %s: %w", npi, apperrors.ErrNotFound)
	}
	return nil
}
