package subtitle

// Selector bonus weights. Empirically tuned: the frequency bonus rewards
// readings that recur across frames, the length bonus counters the OCR
// tendency to clip characters off otherwise identical readings.
const (
	frequencyBonusWeight = 0.05
	lengthBonusPerRune   = 0.005
	lengthBonusCap       = 0.05
)

type candidateGroup struct {
	count         int
	maxConfidence float64
	textAtMax     string
}

// selectSegmentText picks the representative reading for a segment. Groups
// the candidates by normalized key and scores each group by its best
// confidence plus frequency and length bonuses; the winning group's verbatim
// display text at its highest-confidence reading becomes the cue text. The
// reported confidence stays the raw maximum, not the composite score.
// Returns ok=false for an empty candidate list.
func selectSegmentText(candidates []segmentCandidate) (text string, confidence float64, ok bool) {
	if len(candidates) == 0 {
		return "", 0, false
	}

	groups := make(map[string]*candidateGroup)
	for _, c := range candidates {
		group, exists := groups[c.key]
		if !exists {
			group = &candidateGroup{textAtMax: c.text}
			groups[c.key] = group
		}
		group.count++
		if c.confidence > group.maxConfidence {
			group.maxConfidence = c.confidence
			group.textAtMax = c.text
		}
	}

	total := float64(len(candidates))
	bestScore := -1.0

	for _, group := range groups {
		frequencyBonus := float64(group.count) / total * frequencyBonusWeight
		lengthBonus := min(float64(len([]rune(group.textAtMax)))*lengthBonusPerRune, lengthBonusCap)
		score := group.maxConfidence + frequencyBonus + lengthBonus

		if score > bestScore {
			bestScore = score
			text = group.textAtMax
			confidence = group.maxConfidence
		}
	}

	return text, confidence, true
}
