package validator

import (
	"testing"

	playground "github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hameema-git/ramzan-challange/internal/service"
)

// newBindingValidator mirrors gin's binding validator so the messages
// tested here are the ones the handlers actually return.
func newBindingValidator() *playground.Validate {
	v := playground.New()
	v.SetTagName("binding")
	return v
}

func TestFormatValidationError_RequiredIdentityFields(t *testing.T) {
	v := newBindingValidator()

	err := v.Struct(service.IdentityInput{})
	require.Error(t, err)

	msg := FormatValidationError(err)
	assert.Contains(t, msg, "Full name is required")
	assert.Contains(t, msg, "Location is required")
}

func TestFormatValidationError_MinLength(t *testing.T) {
	v := newBindingValidator()

	err := v.Struct(service.IdentityInput{Name: "a", Location: "cairo"})
	require.Error(t, err)

	assert.Equal(t, "Full name must be at least 2 characters", FormatValidationError(err))
}

func TestFormatValidationError_NegativeCounter(t *testing.T) {
	v := newBindingValidator()

	err := v.Struct(service.DailyActivityInput{Pages: -1})
	require.Error(t, err)

	assert.Equal(t, "Pages must not be negative", FormatValidationError(err))
}

func TestFormatValidationError_UnknownPrayerName(t *testing.T) {
	v := newBindingValidator()

	err := v.Struct(service.DailyActivityInput{FardPrayers: []string{"Fajr", "Brunch"}})
	require.Error(t, err)

	assert.Contains(t, FormatValidationError(err), "contains an unknown value")
}

func TestFormatValidationError_ValidDayPasses(t *testing.T) {
	v := newBindingValidator()

	err := v.Struct(service.DailyActivityInput{
		Pages:         5,
		FardPrayers:   []string{"Fajr", "Isha"},
		SunnahPrayers: []string{"Taraweeh"},
		Fasted:        true,
	})
	assert.NoError(t, err)
}
