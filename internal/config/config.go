package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	StagingDir string `toml:"staging_dir"`
	OutputDir  string `toml:"output_dir"`
	LogDir     string `toml:"log_dir"`
	DBPath     string `toml:"db_path"`
}

// OCR contains configuration for the recognizer and the frame scheduler.
type OCR struct {
	Command       string  `toml:"command"`
	ModelsDir     string  `toml:"models_dir"`
	Language      string  `toml:"language"`
	Workers       int     `toml:"workers"`
	MinConfidence float64 `toml:"min_confidence"`
}

// Extraction contains configuration for frame sampling from video.
type Extraction struct {
	FFmpegBinary  string  `toml:"ffmpeg_binary"`
	FFprobeBinary string  `toml:"ffprobe_binary"`
	FPS           float64 `toml:"fps"`
	CropBottom    bool    `toml:"crop_bottom"`
}

// Cleanup contains configuration for subtitle stabilization and merging.
type Cleanup struct {
	MergeSimilar        bool    `toml:"merge_similar"`
	SimilarityThreshold float64 `toml:"similarity_threshold"`
	MaxGapMS            int64   `toml:"max_gap_ms"`
	MinCueDurationMS    int64   `toml:"min_cue_duration_ms"`
	FilterURLLike       bool    `toml:"filter_url_like"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for subscan.
//
// Configuration sections by subsystem:
//   - Paths: staging, output, log directories and the job database
//   - OCR: recognizer binary, models, language, worker count, confidence floor
//   - Extraction: ffmpeg/ffprobe binaries and the frame sampling rate
//   - Cleanup: stabilization thresholds for the subtitle pipeline
//   - Logging: log format and level
type Config struct {
	Paths      Paths      `toml:"paths"`
	OCR        OCR        `toml:"ocr"`
	Extraction Extraction `toml:"extraction"`
	Cleanup    Cleanup    `toml:"cleanup"`
	Logging    Logging    `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/subscan/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized. A missing file is not
// an error; defaults apply.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("subscan.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories jobs write into.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.StagingDir, c.Paths.OutputDir, c.Paths.LogDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	if dir := filepath.Dir(c.Paths.DBPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create database directory %q: %w", dir, err)
		}
	}
	return nil
}

// OCRCommand returns the recognizer executable name.
func (c *Config) OCRCommand() string {
	if strings.TrimSpace(c.OCR.Command) == "" {
		return "ppocr"
	}
	return c.OCR.Command
}

// FFmpegBinary returns the ffmpeg executable name used for frame extraction.
func (c *Config) FFmpegBinary() string {
	if strings.TrimSpace(c.Extraction.FFmpegBinary) == "" {
		return "ffmpeg"
	}
	return c.Extraction.FFmpegBinary
}

// FFprobeBinary returns the ffprobe executable name used for media probing.
func (c *Config) FFprobeBinary() string {
	if strings.TrimSpace(c.Extraction.FFprobeBinary) == "" {
		return "ffprobe"
	}
	return c.Extraction.FFprobeBinary
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
