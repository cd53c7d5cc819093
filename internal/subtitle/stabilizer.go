package subtitle

// blipLookahead is how many upcoming observations are inspected before
// deciding that a dissimilar reading really starts a new segment. A fixed
// count of two is enough to bridge single-frame OCR glitches.
const blipLookahead = 2

// progressInterval is how often the stabilizer reports progress, in frames.
const progressInterval = 100

// stabilizer is the two-state machine that folds ordered observations into
// segments: either no segment is active, or one segment is accumulating
// evidence. It never runs concurrently; correctness depends on frame order.
type stabilizer struct {
	minConfidence       float64
	maxGapMS            int64
	similarityThreshold float64
	mergeSimilar        bool
}

func (st *stabilizer) similar(baselineKey, key string) bool {
	if st.mergeSimilar {
		return TextsSimilar(baselineKey, key, st.similarityThreshold)
	}
	return baselineKey == key
}

func (st *stabilizer) validKey(obs FrameObservation) (displayText, key string, valid bool) {
	displayText = CollapseWhitespace(obs.Text)
	key = NormalizeKey(displayText)
	return displayText, key, obs.Confidence >= st.minConfidence && key != ""
}

// run consumes the ordered observation stream and returns the closed
// segments in start order.
func (st *stabilizer) run(observations []FrameObservation, onProgress ProgressFunc) []*segment {
	var segments []*segment
	var current *segment

	for i, obs := range observations {
		displayText, key, valid := st.validKey(obs)

		switch {
		case !valid:
			// Tolerate brief OCR dropout; close only on a real gap.
			if current != nil && obs.TimeMS-current.lastSeenMS > st.maxGapMS {
				segments = append(segments, current)
				current = nil
			}

		case current == nil:
			current = newSegment(obs, key, displayText)

		case obs.TimeMS-current.lastSeenMS > st.maxGapMS:
			segments = append(segments, current)
			current = newSegment(obs, key, displayText)

		case st.similar(current.baselineKey, key):
			current.extend(obs, key, displayText)

		case st.isBlip(observations, i, current.baselineKey):
			// An isolated glitch bracketed by consistent readings: drop its
			// text but keep the segment alive so the glitch itself does not
			// trip the gap timeout.
			current.touch(obs)

		default:
			segments = append(segments, current)
			current = newSegment(obs, key, displayText)
		}

		if i%progressInterval == 0 && onProgress != nil {
			onProgress(i, len(observations))
		}
	}

	if current != nil {
		segments = append(segments, current)
	}
	return segments
}

// isBlip reports whether any of the next few valid observations still match
// the active baseline, meaning the observation at index i is a transient
// misread rather than a caption change.
func (st *stabilizer) isBlip(observations []FrameObservation, i int, baselineKey string) bool {
	for offset := 1; offset <= blipLookahead; offset++ {
		if i+offset >= len(observations) {
			break
		}
		next := observations[i+offset]
		_, nextKey, nextValid := st.validKey(next)
		if nextValid && st.similar(baselineKey, nextKey) {
			return true
		}
	}
	return false
}
