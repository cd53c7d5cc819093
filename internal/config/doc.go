// Package config loads, normalizes, and validates subscan configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. The Config type centralizes every knob
// the CLI needs: staging and output directories, recognizer settings, frame
// extraction rates, and the cleanup thresholds of the subtitle pipeline.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
