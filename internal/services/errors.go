package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrConfiguration marks unusable input parameters, such as a
	// non-positive fps. Raised before any processing starts.
	ErrConfiguration = errors.New("configuration error")

	// ErrEngineInit marks a failed OCR engine construction, typically
	// missing model assets. Fatal for the whole batch.
	ErrEngineInit = errors.New("engine initialization error")

	// ErrExternalTool marks failures of external binaries (ffmpeg, the
	// recognizer command).
	ErrExternalTool = errors.New("external tool error")

	// ErrValidation marks rejected inputs such as unsupported export
	// formats or unreadable frame listings.
	ErrValidation = errors.New("validation error")
)

// Wrap builds an error message that includes component context while tagging
// it with the provided marker for later classification with errors.Is.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrExternalTool
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
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
