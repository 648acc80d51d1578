package model

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackendError_Matching(t *testing.T) {
	base := &BackendError{Op: "fetch items", StatusCode: 500, Status: "500 Internal Server Error"}
	wrapped := fmt.Errorf("load: %w", base)

	assert.True(t, errors.Is(wrapped, ErrBackend))

	var be *BackendError
	require.True(t, errors.As(wrapped, &be))
	assert.Equal(t, 500, be.StatusCode)
	assert.Equal(t, "fetch items: remote store answered 500 Internal Server Error", be.Error())
}

func TestBackendError_Transport(t *testing.T) {
	cause := errors.New("connection refused")
	err := &BackendError{Op: "add item", Err: cause}

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "add item: connection refused", err.Error())
}
