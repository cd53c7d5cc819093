package services

import (
	"errors"
	"strings"
	"testing"
)

func TestWrapTagsMarker(t *testing.T) {
	cause := errors.New("model file missing")
	err := Wrap(ErrEngineInit, "ocr", "new engine", "load models", cause)

	if !errors.Is(err, ErrEngineInit) {
		t.Error("wrapped error should match ErrEngineInit")
	}
	if !errors.Is(err, cause) {
		t.Error("wrapped error should match the original cause")
	}
	if errors.Is(err, ErrConfiguration) {
		t.Error("wrapped error should not match unrelated markers")
	}
}

func TestWrapNilMarkerDefaults(t *testing.T) {
	err := Wrap(nil, "ffmpeg", "extract", "", nil)
	if !errors.Is(err, ErrExternalTool) {
		t.Error("nil marker should default to ErrExternalTool")
	}
}

func TestWrapDetail(t *testing.T) {
	tests := []struct {
		name      string
		component string
		operation string
		message   string
		want      string
	}{
		{"all parts", "scheduler", "run", "worker failed", "scheduler: run: worker failed"},
		{"component only", "scheduler", "", "", "scheduler"},
		{"empty", "", "", "", "service failure"},
		{"trims whitespace", " scheduler ", " run ", "", "scheduler: run"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Wrap(ErrValidation, tt.component, tt.operation, tt.message, nil)
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Wrap() = %q, want substring %q", err.Error(), tt.want)
			}
		})
	}
}
