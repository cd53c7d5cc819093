package subtitle

// FrameObservation is one OCR pass over one extracted video frame.
// Observations are produced once by the recognition scheduler and consumed
// in strict FrameIndex order.
type FrameObservation struct {
	FrameIndex int     `json:"frame_index"`
	TimeMS     int64   `json:"time_ms"`
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
}

// Entry is a final subtitle cue.
type Entry struct {
	ID         string  `json:"id"`
	Text       string  `json:"text"`
	StartMS    int64   `json:"start_time_ms"`
	EndMS      int64   `json:"end_time_ms"`
	Confidence float64 `json:"confidence"`
}

// segmentCandidate is one reading collected while a segment was active.
type segmentCandidate struct {
	key        string
	text       string
	confidence float64
}

// segment accumulates evidence for a contiguous run of observations that
// represent the same on-screen text. The baseline is the current
// best-evidence normalized text and may be promoted mid-life when a later
// reading arrives with higher confidence.
type segment struct {
	startMS            int64
	lastSeenMS         int64
	lastSeenFrameIndex int
	baselineKey        string
	baselineConfidence float64
	candidates         []segmentCandidate
}

func newSegment(obs FrameObservation, key, displayText string) *segment {
	return &segment{
		startMS:            obs.TimeMS,
		lastSeenMS:         obs.TimeMS,
		lastSeenFrameIndex: obs.FrameIndex,
		baselineKey:        key,
		baselineConfidence: obs.Confidence,
		candidates: []segmentCandidate{{
			key:        key,
			text:       displayText,
			confidence: obs.Confidence,
		}},
	}
}

func (s *segment) extend(obs FrameObservation, key, displayText string) {
	s.lastSeenMS = obs.TimeMS
	s.lastSeenFrameIndex = obs.FrameIndex
	s.candidates = append(s.candidates, segmentCandidate{
		key:        key,
		text:       displayText,
		confidence: obs.Confidence,
	})
	if obs.Confidence > s.baselineConfidence+confidenceEpsilon {
		s.baselineKey = key
		s.baselineConfidence = obs.Confidence
	}
}

// touch refreshes the last-seen markers without recording a candidate.
// Used when an observation is judged to be an isolated OCR glitch.
func (s *segment) touch(obs FrameObservation) {
	s.lastSeenMS = obs.TimeMS
	s.lastSeenFrameIndex = obs.FrameIndex
}
