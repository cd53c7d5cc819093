package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"subscan/internal/config"
	"subscan/internal/media/ffmpeg"
	"subscan/internal/media/ffprobe"
)

// newExtractCommand samples frames without running recognition, which is
// useful for checking the crop region and sampling rate before a long job.
func newExtractCommand(ctx *commandContext) *cobra.Command {
	var (
		outDir string
		fps    float64
		noCrop bool
	)

	cmd := &cobra.Command{
		Use:   "extract <video>",
		Short: "Sample frames from a video without recognition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			source, err := config.ExpandPath(args[0])
			if err != nil {
				return fmt.Errorf("resolve source path: %w", err)
			}
			if info, err := os.Stat(source); err != nil || info.IsDir() {
				return fmt.Errorf("source video %q is not a readable file", source)
			}

			if fps <= 0 {
				fps = cfg.Extraction.FPS
			}
			dir := strings.TrimSpace(outDir)
			if dir == "" {
				base := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
				dir = filepath.Join(cfg.Paths.StagingDir, "extract-"+base)
			}
			dir, err = config.ExpandPath(dir)
			if err != nil {
				return fmt.Errorf("resolve output directory: %w", err)
			}

			probe, err := ffprobe.Inspect(cmd.Context(), cfg.FFprobeBinary(), source)
			if err != nil {
				return err
			}
			if _, ok := probe.VideoStream(); !ok {
				return fmt.Errorf("no video stream in %q", source)
			}

			extractor := ffmpeg.NewExtractor(cfg.FFmpegBinary())
			frames, err := extractor.ExtractFrames(cmd.Context(), ffmpeg.Request{
				Source:     source,
				OutputDir:  dir,
				FPS:        fps,
				CropBottom: cfg.Extraction.CropBottom && !noCrop,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Extracted %d frame(s) to %s\n", len(frames), dir)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "out-dir", "d", "", "Directory for frame images (default: staging_dir/extract-<video>)")
	cmd.Flags().Float64Var(&fps, "fps", -1, "Frames sampled per second (default: from config)")
	cmd.Flags().BoolVar(&noCrop, "no-crop", false, "Keep the full frame instead of the lower third")

	return cmd
}
