package ocr

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"subscan/internal/logging"
	"subscan/internal/progress"
	"subscan/internal/services"
	"subscan/internal/subtitle"
)

// BatchRequest describes one recognition run over an ordered frame list.
type BatchRequest struct {
	Frames []Frame
	// FPS converts frame indexes to presentation timestamps; must be > 0.
	FPS float64
	// Workers is the pool size; values below 1 are raised to 1.
	Workers int
	// NewEngine is invoked once per worker.
	NewEngine Factory
	// OnProgress receives one update per processed frame, skips included.
	OnProgress progress.Func
}

// RunBatch recognizes every frame and returns the observations sorted by
// frame index. Per-frame failures are logged and skipped; engine
// construction failures and cancellation abort the batch.
func RunBatch(ctx context.Context, req BatchRequest, logger *slog.Logger) ([]subtitle.FrameObservation, error) {
	if req.FPS <= 0 {
		return nil, services.Wrap(services.ErrConfiguration, "ocr", "run batch",
			fmt.Sprintf("fps must be greater than 0, got %g", req.FPS), nil)
	}
	if req.NewEngine == nil {
		return nil, services.Wrap(services.ErrConfiguration, "ocr", "run batch", "engine factory required", nil)
	}
	if len(req.Frames) == 0 {
		return nil, nil
	}

	log := logging.WithComponent(logger, "ocr")

	workers := req.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(req.Frames) {
		workers = len(req.Frames)
	}
	chunkSize := (len(req.Frames) + workers - 1) / workers

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		firstErr  error
		processed atomic.Int64
		results   []subtitle.FrameObservation
	)

	recordErr := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
			cancel()
		}
		mu.Unlock()
	}

	total := len(req.Frames)
	for start := 0; start < total; start += chunkSize {
		end := min(start+chunkSize, total)
		chunk := req.Frames[start:end]

		wg.Add(1)
		go func() {
			defer wg.Done()

			if ctx.Err() != nil {
				recordErr(context.Cause(ctx))
				return
			}

			// Engines are stateful; every worker owns its own instance.
			engine, err := req.NewEngine()
			if err != nil {
				recordErr(services.Wrap(services.ErrEngineInit, "ocr", "new engine", "", err))
				return
			}
			defer func() { _ = engine.Close() }()

			observations := make([]subtitle.FrameObservation, 0, len(chunk))
			for _, frame := range chunk {
				if ctx.Err() != nil {
					recordErr(context.Cause(ctx))
					return
				}

				obs, ok := recognizeFrame(engine, frame, req.FPS, log)
				current := int(processed.Add(1))
				req.OnProgress.Emit(progress.Update{
					Phase:   progress.PhaseRecognizing,
					Current: current,
					Total:   total,
					Message: fmt.Sprintf("Recognizing frame %d...", frame.Index),
				})
				if ok {
					observations = append(observations, obs)
				}
			}

			mu.Lock()
			results = append(results, observations...)
			mu.Unlock()
		}()
	}

	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}

	// Workers finish out of submission order.
	sort.Slice(results, func(i, j int) bool {
		return results[i].FrameIndex < results[j].FrameIndex
	})
	return results, nil
}

// recognizeFrame runs one engine call and folds the detected regions into a
// single observation. Failures are absorbed as skips.
func recognizeFrame(engine Engine, frame Frame, fps float64, log *slog.Logger) (subtitle.FrameObservation, bool) {
	regions, err := engine.Recognize(frame.Path)
	if err != nil {
		log.Warn("frame recognition failed; skipping frame",
			logging.Int("frame_index", frame.Index),
			logging.String("path", frame.Path),
			logging.Error(err),
		)
		return subtitle.FrameObservation{}, false
	}

	text, confidence := mergeRegions(regions)
	return subtitle.FrameObservation{
		FrameIndex: frame.Index,
		TimeMS:     frameTimeMS(frame.Index, fps),
		Text:       text,
		Confidence: confidence,
	}, true
}

// mergeRegions approximates reading order for stacked subtitle lines by
// sorting regions top to bottom and joining their trimmed, non-empty text
// with single spaces. Confidences of the contributing regions are averaged.
func mergeRegions(regions []TextRegion) (string, float64) {
	if len(regions) == 0 {
		return "", 0
	}

	ordered := make([]TextRegion, len(regions))
	copy(ordered, regions)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Top < ordered[j].Top
	})

	parts := make([]string, 0, len(ordered))
	var confidenceSum float64
	for _, region := range ordered {
		trimmed := strings.TrimSpace(region.Text)
		if trimmed == "" {
			continue
		}
		parts = append(parts, trimmed)
		confidenceSum += region.Confidence
	}
	if len(parts) == 0 {
		return "", 0
	}

	return strings.Join(parts, " "), confidenceSum / float64(len(parts))
}

func frameTimeMS(index int, fps float64) int64 {
	return int64(math.Round(float64(index) * (1000 / fps)))
}
