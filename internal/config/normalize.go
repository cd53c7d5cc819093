package config

import (
	"fmt"
	"os"
	"runtime"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeOCR(); err != nil {
		return err
	}
	c.normalizeExtraction()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.StagingDir, err = expandPath(c.Paths.StagingDir); err != nil {
		return fmt.Errorf("paths.staging_dir: %w", err)
	}
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.DBPath) == "" {
		c.Paths.DBPath = defaultDBPath
	}
	if c.Paths.DBPath, err = expandPath(c.Paths.DBPath); err != nil {
		return fmt.Errorf("paths.db_path: %w", err)
	}
	return nil
}

func (c *Config) normalizeOCR() error {
	var err error
	// SUBSCAN_MODELS_DIR wins over the config file so shared model
	// installations can be selected per invocation.
	if value, ok := os.LookupEnv("SUBSCAN_MODELS_DIR"); ok && strings.TrimSpace(value) != "" {
		c.OCR.ModelsDir = strings.TrimSpace(value)
	}
	if strings.TrimSpace(c.OCR.ModelsDir) == "" {
		c.OCR.ModelsDir = defaultModelsDir
	}
	if c.OCR.ModelsDir, err = expandPath(c.OCR.ModelsDir); err != nil {
		return fmt.Errorf("ocr.models_dir: %w", err)
	}
	c.OCR.Command = strings.TrimSpace(c.OCR.Command)
	c.OCR.Language = strings.ToLower(strings.TrimSpace(c.OCR.Language))
	if c.OCR.Language == "multi" {
		c.OCR.Language = ""
	}
	if c.OCR.Workers <= 0 {
		c.OCR.Workers = runtime.NumCPU()
	}
	return nil
}

func (c *Config) normalizeExtraction() {
	c.Extraction.FFmpegBinary = strings.TrimSpace(c.Extraction.FFmpegBinary)
	c.Extraction.FFprobeBinary = strings.TrimSpace(c.Extraction.FFprobeBinary)
	if c.Extraction.FPS <= 0 {
		c.Extraction.FPS = defaultFPS
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
