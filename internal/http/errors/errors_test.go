package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteError_Envelope(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, Unauthorized("invalid credentials"))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))

	var body struct {
		StatusCode int      `json:"statusCode"`
		Message    string   `json:"message"`
		Errors     []string `json:"errors"`
		Success    bool     `json:"success"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, http.StatusUnauthorized, body.StatusCode)
	assert.Equal(t, "invalid credentials", body.Message)
	assert.NotNil(t, body.Errors)
	assert.Empty(t, body.Errors)
	assert.False(t, body.Success)
}

func TestWriteError_UnclassifiedBecomes500(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, fmt.Errorf("raw internal cause"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	// La causa cruda nunca llega al cliente.
	assert.NotContains(t, rec.Body.String(), "raw internal cause")
}

func TestWithErrors_DoesNotMutateBase(t *testing.T) {
	base := BadRequest("all fields are required")
	withDetails := base.WithErrors("fullName is empty")

	assert.Empty(t, base.Errors)
	assert.Equal(t, []string{"fullName is empty"}, withDetails.Errors)
}

func TestWithCause_KeptOutOfJSON(t *testing.T) {
	e := InternalError("token generation failed").WithCause(fmt.Errorf("db down"))
	b, err := json.Marshal(e)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "db down")
	assert.ErrorContains(t, e, "db down") // pero sí en Error() para logs
}
