package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrExtraction           = errors.New("extraction error")
	ErrStateIO              = errors.New("state io error")
	ErrNotificationDelivery = errors.New("notification delivery error")
	ErrConfiguration        = errors.New("configuration error")
)

// Wrap builds an error message that includes component context while tagging
// it with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrExtraction
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// IsFatal reports whether err must end the run with a non-zero exit status.
// Delivery failures are reported but never fail the run.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrNotificationDelivery) &&
		!errors.Is(err, ErrExtraction) &&
		!errors.Is(err, ErrStateIO) &&
		!errors.Is(err, ErrConfiguration) {
		return false
	}
	return true
}

// Kind returns a short label for the marker carried by err.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrExtraction):
		return "extraction"
	case errors.Is(err, ErrStateIO):
		return "state_io"
	case errors.Is(err, ErrConfiguration):
		return "configuration"
	case errors.Is(err, ErrNotificationDelivery):
		return "notification_delivery"
	default:
		return "unknown"
	}
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
