package middleware

import (
	"errors"
	"strings"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupValidator(t *testing.T) {
	// Should not panic
	SetupValidator()

	v, ok := binding.Validator.Engine().(*validator.Validate)
	assert.True(t, ok)
	assert.NotNil(t, v)
}

func TestValidationMessage(t *testing.T) {
	type request struct {
		MeterNumber string `json:"meter_number" binding:"required"`
		Month       string `json:"month" binding:"required,max=10"`
	}

	SetupValidator()
	v, ok := binding.Validator.Engine().(*validator.Validate)
	require.True(t, ok)

	t.Run("reports JSON field names with readable messages", func(t *testing.T) {
		err := v.Struct(request{Month: "a month name too long"})
		require.Error(t, err)

		msg := ValidationMessage(err)
		assert.Contains(t, msg, "meter_number: this field is required")
		assert.Contains(t, msg, "month: must be at most 10 characters")
		assert.True(t, strings.Contains(msg, "; "), "fields are joined")
	})

	t.Run("passes plain errors through", func(t *testing.T) {
		err := errors.New("unexpected EOF")
		assert.Equal(t, "unexpected EOF", ValidationMessage(err))
	})
}
