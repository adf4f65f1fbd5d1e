// internal/common/errors/errors_test.go
package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPStatusMapping(t *testing.T) {
	cases := []struct {
		code   ErrorCode
		status int
	}{
		{ErrCodeActivityNotFound, http.StatusNotFound},
		{ErrCodeAlreadyRegistered, http.StatusBadRequest},
		{ErrCodeNotRegistered, http.StatusBadRequest},
		{ErrCodeActivityFull, http.StatusBadRequest},
		{ErrCodeInvalidEmail, http.StatusBadRequest},
		{ErrCodeStoreUnavailable, http.StatusServiceUnavailable},
		{ErrCodeInternal, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.status, HTTPStatus(tc.code), "code %s", tc.code)
	}
}

func TestClientFacingMessages(t *testing.T) {
	// The web client matches on these phrases; they are part of the API
	// contract.
	assert.Equal(t, "Activity not found", NewActivityNotFoundError("X").Message)
	assert.Contains(t, NewAlreadyRegisteredError("X", "a@b.edu").Message, "already signed up")
	assert.Contains(t, NewNotRegisteredError("X", "a@b.edu").Message, "not signed up")
}

func TestAsStandard_PassesThroughStandardErrors(t *testing.T) {
	orig := NewActivityNotFoundError("Chess Club")
	wrapped := fmt.Errorf("store: %w", orig)

	stdErr := AsStandard(wrapped)
	assert.Equal(t, ErrCodeActivityNotFound, stdErr.Code)
}

func TestAsStandard_WrapsUnknownErrors(t *testing.T) {
	stdErr := AsStandard(fmt.Errorf("boom"))
	require.NotNil(t, stdErr)
	assert.Equal(t, ErrCodeInternal, stdErr.Code)
	assert.Equal(t, "boom", stdErr.Details)
}

func TestIs_MatchesByCode(t *testing.T) {
	err := NewAlreadyRegisteredError("Chess Club", "a@b.edu")
	target := NewAlreadyRegisteredError("Other", "c@d.edu")
	assert.ErrorIs(t, err, target)

	other := NewNotRegisteredError("Chess Club", "a@b.edu")
	assert.NotErrorIs(t, err, other)
}

func TestRetryableFlags(t *testing.T) {
	assert.False(t, NewActivityNotFoundError("X").Retryable)
	assert.True(t, NewStoreUnavailableError("redis down").Retryable)
}
