package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Run-time errors: abort a run before any result view is produced
	ErrMissingCurrentData = errors.New("current dataset should be present")
	ErrInvalidSpec        = errors.New("invalid item in metric specification list")
	ErrVerification       = errors.New("suite verification failed")
	ErrInvalidColumns     = errors.New("required columns absent or malformed")

	// View-layer errors: usage errors on an already-executed report
	ErrMissingRepresentation = errors.New("result representation not populated")
	ErrRendererNotFound      = errors.New("no renderer registered for metric")
	ErrGroupNotFound         = errors.New("metric group not found in report")

	// Persistence errors
	ErrUnknownMetricType = errors.New("unknown metric type in payload")
	ErrPayloadIndex      = errors.New("payload metric index out of range")
	ErrReportNotFound    = errors.New("report not found")
)

// Error constructors with context
func NewInvalidSpecError(item interface{}) error {
	return fmt.Errorf("%w: %T", ErrInvalidSpec, item)
}

func NewVerificationError(metricID, reason string) error {
	return fmt.Errorf("%w: metric %s: %s", ErrVerification, metricID, reason)
}

func NewInvalidColumnsError(metricID, reason string) error {
	return fmt.Errorf("%w: metric %s: %s", ErrInvalidColumns, metricID, reason)
}

func NewMissingColumnError(metricID, column string) error {
	return fmt.Errorf("%w: metric %s: column %q is not present", ErrInvalidColumns, metricID, column)
}

func NewMissingRepresentationError(want string) error {
	return fmt.Errorf("%w: %s branch was not populated for this run", ErrMissingRepresentation, want)
}

func NewRendererNotFoundError(metricID string) error {
	return fmt.Errorf("%w: %s", ErrRendererNotFound, metricID)
}

func NewGroupNotFoundError(group string) error {
	return fmt.Errorf("%w: %s", ErrGroupNotFound, group)
}

// Error checking helpers
func IsRunError(err error) bool {
	return errors.Is(err, ErrMissingCurrentData) ||
		errors.Is(err, ErrInvalidSpec) ||
		errors.Is(err, ErrVerification) ||
		errors.Is(err, ErrInvalidColumns)
}

func IsViewError(err error) bool {
	return errors.Is(err, ErrMissingRepresentation) ||
		errors.Is(err, ErrRendererNotFound) ||
		errors.Is(err, ErrGroupNotFound)
}
