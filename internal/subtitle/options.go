package subtitle

// Similarity thresholds outside this range either merge unrelated captions
// or never merge at all, so configured values are clamped into it.
const (
	minSimilarityThreshold = 0.80
	maxSimilarityThreshold = 0.98
)

// confidenceEpsilon guards baseline promotion and merge tie-breaking against
// float rounding.
const confidenceEpsilon = 1e-9

// CleanupOptions controls segment merging and post-filtering.
type CleanupOptions struct {
	// MergeSimilar enables fuzzy matching between readings; when false only
	// exact key matches extend a segment and the merge pass is skipped.
	MergeSimilar bool

	// SimilarityThreshold is the fuzzy-match ratio, clamped to [0.80, 0.98].
	SimilarityThreshold float64

	// MaxGapMS is the largest silence between observations that still
	// belongs to the same segment.
	MaxGapMS int64

	// MinCueDurationMS marks cues short enough to merge into a neighbor at
	// a relaxed threshold.
	MinCueDurationMS int64

	// FilterURLLike drops cues that look like watermark URLs.
	FilterURLLike bool
}

// DefaultCleanupOptions returns the tuned defaults.
func DefaultCleanupOptions() CleanupOptions {
	return CleanupOptions{
		MergeSimilar:        true,
		SimilarityThreshold: 0.92,
		MaxGapMS:            250,
		MinCueDurationMS:    500,
		FilterURLLike:       true,
	}
}
