// Package export serializes subtitle entries to SRT, WebVTT, and plain
// text. Formatting is pure; the algorithmic pipeline lives in
// internal/subtitle.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"subscan/internal/services"
	"subscan/internal/subtitle"
)

// Format is a supported subtitle serialization.
type Format string

const (
	FormatSRT Format = "srt"
	FormatVTT Format = "vtt"
	FormatTXT Format = "txt"
)

// ParseFormat normalizes a user-supplied format name.
func ParseFormat(value string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "srt":
		return FormatSRT, nil
	case "vtt", "webvtt":
		return FormatVTT, nil
	case "txt", "text":
		return FormatTXT, nil
	default:
		return "", services.Wrap(services.ErrValidation, "export", "parse format",
			fmt.Sprintf("unsupported format %q", value), nil)
	}
}

// FormatForPath infers the format from a file extension, defaulting to SRT.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".vtt":
		return FormatVTT
	case ".txt":
		return FormatTXT
	default:
		return FormatSRT
	}
}

// Render serializes entries in the given format.
func Render(entries []subtitle.Entry, format Format) (string, error) {
	switch format {
	case FormatSRT:
		return renderSRT(entries), nil
	case FormatVTT:
		return renderVTT(entries), nil
	case FormatTXT:
		return renderTXT(entries), nil
	default:
		return "", services.Wrap(services.ErrValidation, "export", "render",
			fmt.Sprintf("unsupported format %q", format), nil)
	}
}

// WriteFile renders entries and writes them to path.
func WriteFile(path string, entries []subtitle.Entry, format Format) error {
	content, err := Render(entries, format)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("ensure output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write subtitle file: %w", err)
	}
	return nil
}

func renderSRT(entries []subtitle.Entry) string {
	blocks := make([]string, 0, len(entries))
	for i, entry := range entries {
		blocks = append(blocks, fmt.Sprintf("%d\n%s --> %s\n%s\n",
			i+1,
			formatTimestamp(entry.StartMS, ','),
			formatTimestamp(entry.EndMS, ','),
			entry.Text,
		))
	}
	return strings.Join(blocks, "\n")
}

func renderVTT(entries []subtitle.Entry) string {
	var b strings.Builder
	b.WriteString("WEBVTT\n\n")
	for _, entry := range entries {
		fmt.Fprintf(&b, "%s --> %s\n%s\n\n",
			formatTimestamp(entry.StartMS, '.'),
			formatTimestamp(entry.EndMS, '.'),
			entry.Text,
		)
	}
	return b.String()
}

func renderTXT(entries []subtitle.Entry) string {
	lines := make([]string, 0, len(entries))
	for _, entry := range entries {
		lines = append(lines, entry.Text)
	}
	return strings.Join(lines, "\n")
}

// formatTimestamp renders milliseconds as HH:MM:SS<sep>mmm. SRT separates
// the millisecond field with a comma, WebVTT with a period.
func formatTimestamp(ms int64, sep byte) string {
	if ms < 0 {
		ms = 0
	}
	hours := ms / 3_600_000
	minutes := (ms % 3_600_000) / 60_000
	seconds := (ms % 60_000) / 1000
	millis := ms % 1000
	return fmt.Sprintf("%02d:%02d:%02d%c%03d", hours, minutes, seconds, sep, millis)
}
