package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vikbht/provider-mdm-graph/pkg/apperrors"
)

func performRequest(t *testing.T, err error) (*httptest.ResponseRecorder, ErrorResponse) {
	t.Helper()

	e := echo.New()
	e.HTTPErrorHandler = ErrorHandler(zap.NewNop())
	e.GET("/boom", func(c echo.Context) error { return err })

	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestErrorHandler(t *testing.T) {
	t.Run("validation error maps to 400", func(t *testing.T) {
		rec, body := performRequest(t, apperrors.NewValidationError("npi", "must be exactly 10 digits"))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "npi: must be exactly 10 digits", body.Message)
	})

	t.Run("configuration error maps to 400", func(t *testing.T) {
		rec, _ := performRequest(t, apperrors.NewConfigurationError("matching_weights", "weights sum exceeds 1.0"))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("not found maps to 404", func(t *testing.T) {
		rec, body := performRequest(t, fmt.Errorf("provider 1234567890: %w", apperrors.ErrNotFound))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, body.Message, "1234567890")
	})

	t.Run("store unavailable maps to 503", func(t *testing.T) {
		rec, body := performRequest(t, fmt.Errorf("failed to search providers: %w", apperrors.ErrStoreUnavailable))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Equal(t, "record store unavailable", body.Message)
	})

	t.Run("http error keeps its status", func(t *testing.T) {
		rec, body := performRequest(t, httperror.NewHTTPError(http.StatusConflict, "merge already in flight"))

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, body.Message, "merge already in flight")
	})

	t.Run("unknown errors stay internal", func(t *testing.T) {
		rec, body := performRequest(t, fmt.Errorf("cypher syntax error"))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "Internal Server Error", body.Message)
	})
}
