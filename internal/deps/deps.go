// Package deps reports the availability of the external tools a job needs
// before it starts.
package deps

import (
	"fmt"
	"os/exec"
	"strings"

	"subscan/internal/config"
	"subscan/internal/ocr"
)

// Requirement defines an external dependency subscan relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// Report aggregates binary availability and the OCR model installation.
type Report struct {
	Binaries []Status
	Models   ocr.ModelsStatus
}

// Ready reports whether every required binary and the model assets are in
// place.
func (r Report) Ready() bool {
	for _, status := range r.Binaries {
		if !status.Optional && !status.Available {
			return false
		}
	}
	return r.Models.Installed
}

// Requirements returns the binaries a job invokes, resolved from config.
func Requirements(cfg *config.Config) []Requirement {
	return []Requirement{
		{
			Name:        "FFmpeg",
			Command:     cfg.FFmpegBinary(),
			Description: "Samples video frames for recognition",
		},
		{
			Name:        "FFprobe",
			Command:     cfg.FFprobeBinary(),
			Description: "Probes video duration and streams",
		},
		{
			Name:        "PP-OCR",
			Command:     cfg.OCRCommand(),
			Description: "Recognizes text in frame images",
		},
	}
}

// Check evaluates every requirement plus the model installation.
func Check(cfg *config.Config) Report {
	return Report{
		Binaries: CheckBinaries(Requirements(cfg)),
		Models:   ocr.CheckModels(cfg.OCR.ModelsDir),
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Available = false
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if _, err := exec.LookPath(cmd); err != nil {
			status.Available = false
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}
