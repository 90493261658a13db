package apperrors

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapPreservesChain(t *testing.T) {
	base := errors.New("connection refused")
	wrapped := Wrap(base, CodeExternalServiceError, "payment", "provider unreachable", http.StatusInternalServerError)

	assert.ErrorIs(t, wrapped, base)
	assert.Contains(t, wrapped.Error(), "connection refused")
}

func TestAsAppError(t *testing.T) {
	appErr, ok := AsAppError(ErrPremiumRequired)
	require.True(t, ok)
	assert.Equal(t, http.StatusForbidden, appErr.HTTPCode)

	_, ok = AsAppError(errors.New("plain"))
	assert.False(t, ok)
}

func TestMarshalHidesInternals(t *testing.T) {
	wrapped := Wrap(errors.New("secret detail"), CodeInternalError, "system",
		"Internal server error", http.StatusInternalServerError)

	data, err := json.Marshal(wrapped)
	require.NoError(t, err)

	assert.NotContains(t, string(data), "secret detail")
	assert.NotContains(t, string(data), "500")
	assert.Contains(t, string(data), "INTERNAL_ERROR")
}

func TestWithDetails(t *testing.T) {
	err := ValidationError(map[string]string{"email": "must be a valid email"})

	data, jsonErr := json.Marshal(err)
	require.NoError(t, jsonErr)
	assert.Contains(t, string(data), "must be a valid email")
}

func TestIllegalTransitionMessage(t *testing.T) {
	err := ErrIllegalTransition("completed", "pending")

	assert.Equal(t, http.StatusBadRequest, err.HTTPCode)
	assert.Contains(t, err.Message, "completed -> pending")
}
