package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateOCR(); err != nil {
		return err
	}
	if err := c.validateExtraction(); err != nil {
		return err
	}
	if err := c.validateCleanup(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if c.Paths.StagingDir == "" {
		return errors.New("paths.staging_dir must be set")
	}
	if c.Paths.OutputDir == "" {
		return errors.New("paths.output_dir must be set")
	}
	return nil
}

func (c *Config) validateOCR() error {
	if c.OCR.MinConfidence < 0 || c.OCR.MinConfidence > 1 {
		return errors.New("ocr.min_confidence must be between 0 and 1")
	}
	if c.OCR.Workers <= 0 {
		return errors.New("ocr.workers must be positive")
	}
	return nil
}

func (c *Config) validateExtraction() error {
	if c.Extraction.FPS <= 0 {
		return errors.New("extraction.fps must be positive")
	}
	if c.Extraction.FPS > 60 {
		return fmt.Errorf("extraction.fps %.1f is above the supported maximum of 60", c.Extraction.FPS)
	}
	return nil
}

func (c *Config) validateCleanup() error {
	if c.Cleanup.SimilarityThreshold < 0 || c.Cleanup.SimilarityThreshold > 1 {
		return errors.New("cleanup.similarity_threshold must be between 0 and 1")
	}
	if c.Cleanup.MaxGapMS < 0 {
		return errors.New("cleanup.max_gap_ms must be >= 0")
	}
	if c.Cleanup.MinCueDurationMS < 0 {
		return errors.New("cleanup.min_cue_duration_ms must be >= 0")
	}
	return nil
}
