package validation

import (
	"errors"
	"fmt"
	"slices"
)

// ConfigValidator collects every violation found in a configuration
// section so they can be reported together.
type ConfigValidator struct {
	section string
	errs    []error
}

// NewConfigValidator starts a validator for the named section.
func NewConfigValidator(section string) *ConfigValidator {
	return &ConfigValidator{section: section}
}

func (cv *ConfigValidator) fail(field, format string, args ...any) *ConfigValidator {
	cv.errs = append(cv.errs, fmt.Errorf("%s.%s: "+format, append([]any{cv.section, field}, args...)...))
	return cv
}

// RangeInt requires min <= value <= max.
func (cv *ConfigValidator) RangeInt(field string, value, min, max int) *ConfigValidator {
	if value < min || value > max {
		return cv.fail(field, "value %d is outside range [%d, %d]", value, min, max)
	}
	return cv
}

// NonNegative requires value >= 0.
func (cv *ConfigValidator) NonNegative(field string, value int) *ConfigValidator {
	if value < 0 {
		return cv.fail(field, "value %d must be non-negative", value)
	}
	return cv
}

// RangeFloat requires min <= value <= max. NaN is rejected.
func (cv *ConfigValidator) RangeFloat(field string, value, min, max float64) *ConfigValidator {
	if !(value >= min && value <= max) {
		return cv.fail(field, "value %v is outside range [%v, %v]", value, min, max)
	}
	return cv
}

// OneOf requires value to be one of allowed.
func (cv *ConfigValidator) OneOf(field, value string, allowed []string) *ConfigValidator {
	if !slices.Contains(allowed, value) {
		return cv.fail(field, "value %q must be one of %v", value, allowed)
	}
	return cv
}

// Validate returns nil, or every collected error joined under ErrInvalidConfig.
func (cv *ConfigValidator) Validate() error {
	if len(cv.errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(cv.errs...))
}

// Validatable is implemented by configurations that check themselves.
type Validatable interface {
	Validate() error
}

// ValidateConfig runs config.Validate, rejecting a nil config.
func ValidateConfig(config Validatable) error {
	if config == nil {
		return fmt.Errorf("%w: config cannot be nil", ErrInvalidConfig)
	}
	return config.Validate()
}

// DefaultOr returns value unless it is the zero value of T.
func DefaultOr[T comparable](value, fallback T) T {
	var zero T
	if value == zero {
		return fallback
	}
	return value
}
