// Package ffmpeg samples video frames for recognition. It shells out to
// ffmpeg and hands the resulting image sequence to the OCR scheduler.
package ffmpeg

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"subscan/internal/ocr"
)

// framePattern names extracted frames so lexicographic order matches frame
// order.
const framePattern = "frame-%06d.png"

// Request describes one extraction run.
type Request struct {
	// Source is the input video file.
	Source string
	// OutputDir receives the numbered frame images. It is created if
	// missing and cleared of stale frames first.
	OutputDir string
	// FPS is the sampling rate in frames per second of video.
	FPS float64
	// CropBottom restricts frames to the lower third of the picture, where
	// hardcoded subtitles live.
	CropBottom bool
}

// Extractor runs ffmpeg to sample frames from a video.
type Extractor struct {
	binary string
	runner func(ctx context.Context, name string, args ...string) ([]byte, error)
}

// NewExtractor returns an extractor using the given ffmpeg binary; an empty
// name resolves "ffmpeg" from PATH.
func NewExtractor(binary string) *Extractor {
	if strings.TrimSpace(binary) == "" {
		binary = "ffmpeg"
	}
	return &Extractor{binary: binary}
}

// WithRunner replaces command execution for tests.
func (e *Extractor) WithRunner(runner func(ctx context.Context, name string, args ...string) ([]byte, error)) {
	e.runner = runner
}

// ExtractFrames samples frames from req.Source into req.OutputDir and
// returns them in frame order.
func (e *Extractor) ExtractFrames(ctx context.Context, req Request) ([]ocr.Frame, error) {
	if strings.TrimSpace(req.Source) == "" {
		return nil, fmt.Errorf("extract frames: empty source path")
	}
	if req.FPS <= 0 {
		return nil, fmt.Errorf("extract frames: invalid fps %v", req.FPS)
	}
	if err := prepareOutputDir(req.OutputDir); err != nil {
		return nil, err
	}

	filter := fmt.Sprintf("fps=%g", req.FPS)
	if req.CropBottom {
		filter += ",crop=iw:ih/3:0:2*ih/3"
	}
	args := []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", req.Source,
		"-vf", filter,
		"-vsync", "vfr",
		filepath.Join(req.OutputDir, framePattern),
	}
	if err := e.run(ctx, e.binary, args...); err != nil {
		return nil, err
	}

	return listFrames(req.OutputDir)
}

func (e *Extractor) run(ctx context.Context, name string, args ...string) error {
	if e.runner != nil {
		_, err := e.runner(ctx, name, args...)
		return err
	}
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("ffmpeg extract: %w: %s", err, strings.TrimSpace(string(output)))
	}
	return nil
}

// prepareOutputDir creates the directory and removes frames left over from
// a previous run so indices stay aligned with the new sequence.
func prepareOutputDir(dir string) error {
	if strings.TrimSpace(dir) == "" {
		return fmt.Errorf("extract frames: empty output directory")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create frame directory: %w", err)
	}
	stale, err := filepath.Glob(filepath.Join(dir, "frame-*.png"))
	if err != nil {
		return fmt.Errorf("scan frame directory: %w", err)
	}
	for _, path := range stale {
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("remove stale frame %q: %w", path, err)
		}
	}
	return nil
}

func listFrames(dir string) ([]ocr.Frame, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "frame-*.png"))
	if err != nil {
		return nil, fmt.Errorf("list frames: %w", err)
	}
	sort.Strings(paths)
	frames := make([]ocr.Frame, 0, len(paths))
	for i, path := range paths {
		frames = append(frames, ocr.Frame{Index: i, Path: path})
	}
	return frames, nil
}

// CleanupFrames removes the extracted frame images after a job completes.
func CleanupFrames(frames []ocr.Frame) error {
	var firstErr error
	for _, frame := range frames {
		if err := os.Remove(frame.Path); err != nil && !os.IsNotExist(err) && firstErr == nil {
			firstErr = fmt.Errorf("remove frame %q: %w", frame.Path, err)
		}
	}
	return firstErr
}
