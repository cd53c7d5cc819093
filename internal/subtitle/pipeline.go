package subtitle

import (
	"fmt"

	"subscan/internal/services"
)

// ProgressFunc receives stabilization progress as (processed, total) frames.
type ProgressFunc func(current, total int)

// Generate converts an ordered observation stream into the final subtitle
// entries. fps is used only as an end-time fallback when the observation
// timestamps carry no usable deltas; it must be positive. Observations below
// minConfidence or with empty normalized text are treated as blank frames.
func Generate(observations []FrameObservation, fps, minConfidence float64, opts CleanupOptions, onProgress ProgressFunc) ([]Entry, error) {
	if fps <= 0 {
		return nil, services.Wrap(services.ErrConfiguration, "subtitle", "generate",
			fmt.Sprintf("fps must be greater than 0, got %g", fps), nil)
	}

	similarityThreshold := 1.0
	if opts.MergeSimilar {
		similarityThreshold = clampFloat(opts.SimilarityThreshold, minSimilarityThreshold, maxSimilarityThreshold)
	}

	frameStepMS, haveStep := inferFrameStepMS(observations)

	st := stabilizer{
		minConfidence:       clampFloat(minConfidence, 0, 1),
		maxGapMS:            opts.MaxGapMS,
		similarityThreshold: similarityThreshold,
		mergeSimilar:        opts.MergeSimilar,
	}
	segments := st.run(observations, onProgress)

	entries := make([]Entry, 0, len(segments))
	for _, seg := range segments {
		text, confidence, ok := selectSegmentText(seg.candidates)
		if !ok {
			continue
		}
		entries = append(entries, Entry{
			ID:         fmt.Sprintf("sub-%d", len(entries)+1),
			Text:       text,
			StartMS:    seg.startMS,
			EndMS:      segmentEndTimeMS(seg, frameStepMS, haveStep, fps),
			Confidence: confidence,
		})
	}

	if opts.FilterURLLike {
		entries = filterURLLike(entries)
	}
	if opts.MergeSimilar && len(entries) > 1 {
		entries = mergeAdjacent(entries, similarityThreshold, opts.MaxGapMS, opts.MinCueDurationMS)
	}

	return entries, nil
}
