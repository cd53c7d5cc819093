package deps

import (
	"os"
	"path/filepath"
	"testing"

	"subscan/internal/config"
	"subscan/internal/ocr"
)

func TestCheckBinaries(t *testing.T) {
	binDir := t.TempDir()
	present := filepath.Join(binDir, "present")
	script := []byte("#!/bin/sh\nexit 0\n")
	if err := os.WriteFile(present, script, 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	reqs := []Requirement{
		{Name: "Present", Command: present},
		{Name: "Missing", Command: "clearly-not-present-binary"},
	}

	results := CheckBinaries(reqs)
	if len(results) != len(reqs) {
		t.Fatalf("expected %d results, got %d", len(reqs), len(results))
	}

	if !results[0].Available {
		t.Fatalf("expected first requirement to be available, got %#v", results[0])
	}

	if results[1].Available {
		t.Fatalf("expected missing binary to be unavailable")
	}
	if results[1].Detail == "" {
		t.Fatalf("expected detail message for missing binary")
	}

	if results[1].Command != "clearly-not-present-binary" {
		t.Fatalf("unexpected command recorded: %s", results[1].Command)
	}

	if results[0].Detail != "" {
		t.Fatalf("unexpected detail for available dependency: %s", results[0].Detail)
	}
}

func TestCheckBinariesEmptyCommand(t *testing.T) {
	results := CheckBinaries([]Requirement{{Name: "Unset", Command: "  "}})
	if results[0].Available {
		t.Fatal("expected unconfigured command to be unavailable")
	}
	if results[0].Detail != "command not configured" {
		t.Fatalf("unexpected detail: %q", results[0].Detail)
	}
}

func TestReportReady(t *testing.T) {
	tests := []struct {
		name   string
		report Report
		want   bool
	}{
		{
			name: "all present",
			report: Report{
				Binaries: []Status{{Available: true}},
				Models:   ocr.ModelsStatus{Installed: true},
			},
			want: true,
		},
		{
			name: "missing required binary",
			report: Report{
				Binaries: []Status{{Available: false}},
				Models:   ocr.ModelsStatus{Installed: true},
			},
			want: false,
		},
		{
			name: "missing optional binary",
			report: Report{
				Binaries: []Status{{Available: false, Optional: true}},
				Models:   ocr.ModelsStatus{Installed: true},
			},
			want: true,
		},
		{
			name: "missing models",
			report: Report{
				Binaries: []Status{{Available: true}},
				Models:   ocr.ModelsStatus{Installed: false},
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.report.Ready(); got != tt.want {
				t.Fatalf("Ready() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCheckUsesConfiguredBinaries(t *testing.T) {
	cfg := config.Default()
	cfg.OCR.ModelsDir = t.TempDir()
	cfg.Extraction.FFmpegBinary = "clearly-not-present-ffmpeg"

	report := Check(&cfg)
	if len(report.Binaries) != 3 {
		t.Fatalf("expected 3 binary checks, got %d", len(report.Binaries))
	}
	if report.Binaries[0].Command != "clearly-not-present-ffmpeg" {
		t.Fatalf("unexpected ffmpeg command: %q", report.Binaries[0].Command)
	}
	if report.Models.Installed {
		t.Fatal("expected empty models dir to report not installed")
	}
	if report.Ready() {
		t.Fatal("expected report not ready")
	}
}
