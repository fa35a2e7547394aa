package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOfWrappedError(t *testing.T) {
	err := fmt.Errorf("outer context: %w", NotFound("partner doesn't exist"))
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.Equal(t, "partner doesn't exist", MessageOf(err))
}

func TestKindOfPlainError(t *testing.T) {
	err := errors.New("driver: bad connection")
	assert.Equal(t, KindUnknown, KindOf(err))
	assert.Equal(t, "driver: bad connection", MessageOf(err))
}

func TestExternalWrapsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := External("facebook api unreachable", cause)

	assert.Equal(t, KindExternal, KindOf(err))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection refused")
}
