package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"subscan/internal/config"
	"subscan/internal/export"
	"subscan/internal/logging"
	"subscan/internal/media/ffmpeg"
	"subscan/internal/media/ffprobe"
	"subscan/internal/ocr"
	"subscan/internal/progress"
	"subscan/internal/services/paddleocr"
	"subscan/internal/store"
	"subscan/internal/subtitle"
)

// progressPersistEvery throttles job-store progress writes; the terminal bar
// still updates on every frame.
const progressPersistEvery = 50

type generateFlags struct {
	output        string
	format        string
	language      string
	fps           float64
	workers       int
	minConfidence float64
	keepFrames    bool
	noMerge       bool
}

func newGenerateCommand(ctx *commandContext) *cobra.Command {
	flags := generateFlags{fps: -1, workers: -1, minConfidence: -1}

	cmd := &cobra.Command{
		Use:   "generate <video>",
		Short: "Extract subtitles from a video file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			return runGenerate(cmd, cfg, logger, args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output subtitle file (default: output_dir/<video>.srt)")
	cmd.Flags().StringVar(&flags.format, "format", "", "Output format: srt, vtt, or txt (default: from output extension)")
	cmd.Flags().StringVar(&flags.language, "lang", "", "Recognition language (default: from config)")
	cmd.Flags().Float64Var(&flags.fps, "fps", -1, "Frames sampled per second (default: from config)")
	cmd.Flags().IntVar(&flags.workers, "workers", -1, "Parallel OCR workers (default: from config)")
	cmd.Flags().Float64Var(&flags.minConfidence, "min-confidence", -1, "Confidence floor for observations (default: from config)")
	cmd.Flags().BoolVar(&flags.keepFrames, "keep-frames", false, "Keep extracted frame images after the run")
	cmd.Flags().BoolVar(&flags.noMerge, "no-merge", false, "Disable merging of similar consecutive readings")

	return cmd
}

func runGenerate(cmd *cobra.Command, cfg *config.Config, logger *slog.Logger, sourceArg string, flags generateFlags) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	log := logging.WithComponent(logger, "generate")

	source, err := config.ExpandPath(sourceArg)
	if err != nil {
		return fmt.Errorf("resolve source path: %w", err)
	}
	if info, err := os.Stat(source); err != nil || info.IsDir() {
		return fmt.Errorf("source video %q is not a readable file", source)
	}

	applyFlagOverrides(cfg, flags)

	outputPath, format, err := resolveOutput(cfg, source, flags.output, flags.format)
	if err != nil {
		return err
	}

	jobs, err := store.Open(cfg)
	if err != nil {
		return fmt.Errorf("open job store: %w", err)
	}
	defer jobs.Close()

	// One job at a time per staging area; concurrent runs would clobber each
	// other's frame sequences.
	lock := flock.New(filepath.Join(cfg.Paths.StagingDir, "subscan.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire staging lock: %w", err)
	}
	if !locked {
		return errors.New("another subscan job is already running")
	}
	defer func() { _ = lock.Unlock() }()

	job, err := jobs.NewJob(ctx, source, cfg.OCR.Language, cfg.Extraction.FPS)
	if err != nil {
		return fmt.Errorf("record job: %w", err)
	}
	log.Info("job started",
		logging.String("job_id", job.ID),
		logging.String("source", source),
		logging.String("output", outputPath))

	entries, frameCount, err := executeJob(ctx, cfg, logger, jobs, job.ID, source, flags.keepFrames)
	if err != nil {
		if failErr := jobs.Fail(context.WithoutCancel(ctx), job.ID, err.Error()); failErr != nil {
			log.Warn("record job failure", logging.Error(failErr))
		}
		return err
	}

	if err := export.WriteFile(outputPath, entries, format); err != nil {
		if failErr := jobs.Fail(context.WithoutCancel(ctx), job.ID, err.Error()); failErr != nil {
			log.Warn("record job failure", logging.Error(failErr))
		}
		return err
	}

	if err := jobs.Complete(ctx, job.ID, outputPath, len(entries)); err != nil {
		return fmt.Errorf("record completion: %w", err)
	}

	log.Info("job completed",
		logging.String("job_id", job.ID),
		logging.Int("frames", frameCount),
		logging.Int("cues", len(entries)))
	fmt.Fprintf(out, "Wrote %d cues to %s\n", len(entries), outputPath)
	return nil
}

// executeJob runs extraction, recognition, and cue generation, updating the
// job store and terminal progress as phases advance.
func executeJob(ctx context.Context, cfg *config.Config, logger *slog.Logger, jobs *store.Store, jobID, source string, keepFrames bool) ([]subtitle.Entry, int, error) {
	interactive := interactiveTerminal()
	log := logging.WithComponent(logger, "generate")

	probe, err := ffprobe.Inspect(ctx, cfg.FFprobeBinary(), source)
	if err != nil {
		return nil, 0, err
	}
	if _, ok := probe.VideoStream(); !ok {
		return nil, 0, fmt.Errorf("no video stream in %q", source)
	}
	log.Info("probed source",
		logging.String("source", source),
		logging.Float64("duration_seconds", probe.DurationSeconds()))

	if err := jobs.SetStatus(ctx, jobID, store.StatusExtracting); err != nil {
		return nil, 0, err
	}
	frameDir := filepath.Join(cfg.Paths.StagingDir, jobID)
	extractor := ffmpeg.NewExtractor(cfg.FFmpegBinary())
	frames, err := extractor.ExtractFrames(ctx, ffmpeg.Request{
		Source:     source,
		OutputDir:  frameDir,
		FPS:        cfg.Extraction.FPS,
		CropBottom: cfg.Extraction.CropBottom,
	})
	if err != nil {
		return nil, 0, err
	}
	if !keepFrames {
		defer func() {
			if err := ffmpeg.CleanupFrames(frames); err != nil {
				log.Warn("cleanup frames", logging.Error(err))
			}
			_ = os.Remove(frameDir)
		}()
	}
	if err := jobs.SetFrameCount(ctx, jobID, len(frames)); err != nil {
		return nil, 0, err
	}
	log.Info("extracted frames", logging.Int("count", len(frames)))

	if err := jobs.SetStatus(ctx, jobID, store.StatusRecognizing); err != nil {
		return nil, 0, err
	}
	recognizeBar := newPhaseBar(interactive, len(frames), "recognizing")
	observations, err := ocr.RunBatch(ctx, ocr.BatchRequest{
		Frames:    frames,
		FPS:       cfg.Extraction.FPS,
		Workers:   cfg.OCR.Workers,
		NewEngine: paddleocr.Factory(paddleocr.Config{
			Command:   cfg.OCRCommand(),
			ModelsDir: cfg.OCR.ModelsDir,
			Language:  cfg.OCR.Language,
		}),
		OnProgress: func(update progress.Update) {
			recognizeBar.Set(update.Current)
			if update.Total > 0 && (update.Current%progressPersistEvery == 0 || update.Current == update.Total) {
				percent := float64(update.Current) / float64(update.Total) * 100
				_ = jobs.SetProgress(ctx, jobID, string(update.Phase), percent)
			}
		},
	}, logger)
	recognizeBar.Finish()
	if err != nil {
		return nil, 0, err
	}

	if err := jobs.SetStatus(ctx, jobID, store.StatusGenerating); err != nil {
		return nil, 0, err
	}
	opts := subtitle.CleanupOptions{
		MergeSimilar:        cfg.Cleanup.MergeSimilar,
		SimilarityThreshold: cfg.Cleanup.SimilarityThreshold,
		MaxGapMS:            cfg.Cleanup.MaxGapMS,
		MinCueDurationMS:    cfg.Cleanup.MinCueDurationMS,
		FilterURLLike:       cfg.Cleanup.FilterURLLike,
	}
	generateBar := newPhaseBar(interactive, len(observations), "generating")
	entries, err := subtitle.Generate(observations, cfg.Extraction.FPS, cfg.OCR.MinConfidence, opts,
		func(current, total int) {
			generateBar.Set(current)
		})
	generateBar.Finish()
	if err != nil {
		return nil, 0, err
	}

	return entries, len(frames), nil
}

// applyFlagOverrides folds command-line overrides into the loaded config so
// the pipeline reads one source of truth.
func applyFlagOverrides(cfg *config.Config, flags generateFlags) {
	if lang := strings.ToLower(strings.TrimSpace(flags.language)); lang != "" {
		if lang == "multi" {
			lang = ""
		}
		cfg.OCR.Language = lang
	}
	if flags.fps > 0 {
		cfg.Extraction.FPS = flags.fps
	}
	if flags.workers > 0 {
		cfg.OCR.Workers = flags.workers
	}
	if flags.minConfidence >= 0 {
		cfg.OCR.MinConfidence = flags.minConfidence
	}
	if flags.noMerge {
		cfg.Cleanup.MergeSimilar = false
	}
}

// resolveOutput decides where the subtitle file lands and in which format.
// An explicit --format wins; otherwise the output extension decides.
func resolveOutput(cfg *config.Config, source, outputFlag, formatFlag string) (string, export.Format, error) {
	outputPath := strings.TrimSpace(outputFlag)
	format := export.FormatSRT

	if trimmed := strings.TrimSpace(formatFlag); trimmed != "" {
		parsed, err := export.ParseFormat(trimmed)
		if err != nil {
			return "", "", err
		}
		format = parsed
	} else if outputPath != "" {
		format = export.FormatForPath(outputPath)
	}

	if outputPath == "" {
		base := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
		outputPath = filepath.Join(cfg.Paths.OutputDir, base+"."+string(format))
	}

	expanded, err := config.ExpandPath(outputPath)
	if err != nil {
		return "", "", fmt.Errorf("resolve output path: %w", err)
	}
	return expanded, format, nil
}
