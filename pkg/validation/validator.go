package validation

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var (
	// validate is a singleton validator instance
	validate *validator.Validate

	// ErrInvalidTrip rejects a trip that cannot be turned into a station sequence.
	ErrInvalidTrip = errors.New("invalid trip")

	// ErrInvalidConfig rejects run parameters outside their accepted ranges.
	ErrInvalidConfig = errors.New("invalid configuration")

	// Validation limits
	MaxTrips        = 1000000
	MaxWorkers      = 1024
	MaxRandomTrials = 10000
)

func init() {
	validate = validator.New()
	validate.RegisterValidation("stopid", validateStopID)
}

// TripRequest is a single trip as read from an input file.
type TripRequest struct {
	ID    string   `json:"id" yaml:"id" validate:"required,max=128,stopid"`
	Stops []string `json:"stops" yaml:"stops" validate:"required,min=1,max=10000,dive,required,max=128,stopid"`
}

// RunRequest carries the parameters of a resilience run.
type RunRequest struct {
	RemovalFraction float64 `json:"removal_fraction" validate:"gte=0,lte=1"`
	Budget          *int    `json:"budget,omitempty" validate:"omitempty,gte=0"`
	Strategy        string  `json:"strategy,omitempty" validate:"omitempty,oneof=targeted random attack"`
	Workers         int     `json:"workers" validate:"gte=0,lte=1024"`
	RandomTrials    int     `json:"random_trials" validate:"gte=0,lte=10000"`
}

// validateStopID rejects identifiers that are blank, padded with whitespace
// or carry control characters. " Bern" and "Bern" would otherwise become two
// stations.
func validateStopID(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" || strings.TrimSpace(s) != s {
		return false
	}
	for _, r := range s {
		if unicode.IsControl(r) {
			return false
		}
	}
	return true
}

// ValidateTrip validates one trip and its stop sequence.
func ValidateTrip(req *TripRequest) error {
	if req == nil {
		return fmt.Errorf("%w: trip cannot be nil", ErrInvalidTrip)
	}

	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("%w: trip %q: %w", ErrInvalidTrip, req.ID, formatValidationError(err))
	}
	return nil
}

// ValidateTrips validates a trip-ID-to-stops mapping as consumed by the
// network builder. Trips are checked in ID order so the first reported
// error is stable.
func ValidateTrips(trips map[string][]string) error {
	if len(trips) > MaxTrips {
		return fmt.Errorf("%w: maximum %d trips allowed, got %d", ErrInvalidTrip, MaxTrips, len(trips))
	}

	ids := make([]string, 0, len(trips))
	for id := range trips {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	for _, id := range ids {
		if err := ValidateTrip(&TripRequest{ID: id, Stops: trips[id]}); err != nil {
			return err
		}
	}
	return nil
}

// ValidateRunRequest validates resilience run parameters.
func ValidateRunRequest(req *RunRequest) error {
	if req == nil {
		return fmt.Errorf("%w: run request cannot be nil", ErrInvalidConfig)
	}

	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, formatValidationError(err))
	}
	return nil
}

// formatValidationError converts validator errors to a more user-friendly format
func formatValidationError(err error) error {
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	// Return the first validation error in a user-friendly format
	for _, e := range validationErrs {
		field := e.Namespace()
		if i := strings.IndexByte(field, '.'); i >= 0 {
			field = field[i+1:]
		}
		param := e.Param()

		switch e.Tag() {
		case "required":
			return fmt.Errorf("%s: field is required", field)
		case "min", "gte":
			return fmt.Errorf("%s: must be at least %s", field, param)
		case "max", "lte":
			return fmt.Errorf("%s: must not exceed %s", field, param)
		case "oneof":
			return fmt.Errorf("%s: must be one of [%s]", field, param)
		case "stopid":
			return fmt.Errorf("%s: %q is blank or contains control characters", field, e.Value())
		default:
			return fmt.Errorf("%s: validation failed (%s)", field, e.Tag())
		}
	}

	return err
}
