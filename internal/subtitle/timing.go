package subtitle

import (
	"math"
	"sort"
)

// inferFrameStepMS estimates the sampling interval as the median of the
// positive inter-observation time deltas. Robust to irregular sampling and
// to occasional duplicate timestamps. Returns ok=false when fewer than two
// usable deltas exist.
func inferFrameStepMS(observations []FrameObservation) (int64, bool) {
	if len(observations) < 2 {
		return 0, false
	}

	deltas := make([]int64, 0, len(observations)-1)
	for i := 1; i < len(observations); i++ {
		delta := observations[i].TimeMS - observations[i-1].TimeMS
		if delta > 0 {
			deltas = append(deltas, delta)
		}
	}
	if len(deltas) == 0 {
		return 0, false
	}

	sort.Slice(deltas, func(i, j int) bool { return deltas[i] < deltas[j] })
	return deltas[len(deltas)/2], true
}

// frameEndTimeMS derives an end time from the frame index alone, used when
// no usable time deltas exist.
func frameEndTimeMS(frameIndex int, fps float64) int64 {
	return int64(math.Round(float64(frameIndex+1) * (1000 / fps)))
}

// segmentEndTimeMS computes a segment's end time: last seen time plus the
// inferred frame step, falling back to index-based derivation, always
// clamped to exceed the start by at least one millisecond.
func segmentEndTimeMS(seg *segment, frameStepMS int64, haveStep bool, fps float64) int64 {
	var endMS int64
	if haveStep {
		endMS = seg.lastSeenMS + frameStepMS
	} else {
		endMS = frameEndTimeMS(seg.lastSeenFrameIndex, fps)
	}
	if endMS <= seg.startMS {
		endMS = seg.startMS + 1
	}
	return endMS
}
