package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueryError(t *testing.T) {
	base := errors.New("connection refused")
	err := NewQueryError("list_appointments", base)

	assert.True(t, IsQueryError(err))
	assert.ErrorIs(t, err, base)
	assert.Equal(t, "list_appointments: connection refused", err.Error())
	assert.Nil(t, NewQueryError("noop", nil))

	wrapped := fmt.Errorf("page fetch: %w", err)
	assert.True(t, IsQueryError(wrapped))
}

func TestValidationSentinels(t *testing.T) {
	assert.True(t, IsValidationError(ErrEmptyMessage))
	assert.True(t, IsValidationError(ErrEmptyTargets))
	assert.False(t, errors.Is(ErrEmptyMessage, ErrEmptyTargets))

	assert.Equal(t, "Please type a message.", UserMessage(ErrEmptyMessage))
	assert.Equal(t, "No contacts selected for dispatch.", UserMessage(fmt.Errorf("send: %w", ErrEmptyTargets)))
	assert.Equal(t, "", UserMessage(nil))
	assert.Equal(t, "boom", UserMessage(errors.New("boom")))
}

func TestRowResolutionError(t *testing.T) {
	err := &RowResolutionError{Index: 2, ContactID: "c-1", Err: ErrNotFound}
	assert.True(t, IsNotFoundError(err))
	assert.Contains(t, err.Error(), "row 2")
}
