package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "marketplace/pkg/errors"
)

func TestResult(t *testing.T) {
	ok := Result(true, nil, "")
	assert.Equal(t, true, ok.Data)
	assert.Nil(t, ok.Error)

	failed := Result(nil, apperrors.NotFound("Listing", nil), "")
	assert.Nil(t, failed.Data)
	require.NotNil(t, failed.Error)
	assert.Equal(t, "Listing not found", *failed.Error)
	assert.Equal(t, apperrors.CodeNotFound, failed.Code)
}

func TestErrorUsesAppErrorStatus(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	require.NoError(t, Error(c, apperrors.Validation("Price must be greater than 0")))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Nil(t, body["data"])
	assert.Equal(t, "Price must be greater than 0", body["error"])
	assert.Equal(t, apperrors.CodeValidation, body["code"])
}

func TestErrorHTTPError(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	require.NoError(t, Error(c, echo.NewHTTPError(http.StatusUnsupportedMediaType)))

	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	assert.Contains(t, rec.Body.String(), "Unsupported Media Type")
}

func TestSuccessEnvelope(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	require.NoError(t, Success(c, map[string]string{"id": "1"}))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"error":null`)
	assert.Contains(t, rec.Body.String(), `"id":"1"`)
}
