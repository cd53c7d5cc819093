package paddleocr

import (
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"subscan/internal/ocr"
	"subscan/internal/services"
)

// Client shells out to the recognizer binary once per frame image and
// parses its JSON region output. One Client must not be shared across
// goroutines; the scheduler creates one per worker through Factory.
type Client struct {
	cfg    Config
	runner func(name string, args ...string) ([]byte, error)
}

// Factory returns an engine factory for the scheduler. Construction
// verifies the model assets once per worker; a missing installation is
// fatal for the batch.
func Factory(cfg Config) ocr.Factory {
	return func() (ocr.Engine, error) {
		return NewClient(cfg)
	}
}

// NewClient validates the model installation and returns a ready engine.
func NewClient(cfg Config) (*Client, error) {
	status := ocr.CheckModels(cfg.ModelsDir)
	if !status.Installed {
		return nil, services.Wrap(services.ErrEngineInit, "paddleocr", "new client",
			status.Instructions, nil)
	}
	if lang := strings.TrimSpace(cfg.Language); lang != "" && lang != "multi" {
		found := false
		for _, available := range status.AvailableLanguages {
			if available == lang {
				found = true
				break
			}
		}
		if !found {
			return nil, services.Wrap(services.ErrEngineInit, "paddleocr", "new client",
				fmt.Sprintf("language %q has no installed model (available: %s)",
					lang, strings.Join(status.AvailableLanguages, ", ")), nil)
		}
	}
	return &Client{cfg: cfg}, nil
}

// WithRunner replaces the command execution for tests.
func (c *Client) WithRunner(runner func(name string, args ...string) ([]byte, error)) {
	c.runner = runner
}

// Recognize invokes the recognizer for one image and returns the detected
// regions. Errors affect only the frame being recognized.
func (c *Client) Recognize(path string) ([]ocr.TextRegion, error) {
	args := []string{"--models-dir", c.cfg.ModelsDir, "--format", "json"}
	if lang := strings.TrimSpace(c.cfg.Language); lang != "" {
		args = append(args, "--lang", lang)
	}
	args = append(args, path)

	output, err := c.run(c.cfg.command(), args...)
	if err != nil {
		return nil, fmt.Errorf("recognize %s: %w", path, err)
	}
	return parseRegions(output)
}

// Close releases nothing today; the recognizer is re-invoked per frame.
func (c *Client) Close() error {
	return nil
}

func (c *Client) run(name string, args ...string) ([]byte, error) {
	if c.runner != nil {
		return c.runner(name, args...)
	}
	output, err := exec.Command(name, args...).Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			return nil, fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return output, nil
}

// region mirrors the recognizer's JSON output schema.
type region struct {
	Top        float64 `json:"top"`
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
}

func parseRegions(output []byte) ([]ocr.TextRegion, error) {
	trimmed := strings.TrimSpace(string(output))
	if trimmed == "" {
		return nil, nil
	}

	var raw []region
	if err := json.Unmarshal([]byte(trimmed), &raw); err != nil {
		return nil, fmt.Errorf("parse recognizer output: %w", err)
	}

	regions := make([]ocr.TextRegion, 0, len(raw))
	for _, r := range raw {
		regions = append(regions, ocr.TextRegion{
			Top:        r.Top,
			Text:       r.Text,
			Confidence: r.Confidence,
		})
	}
	return regions, nil
}
