package subtitle

import (
	"math"
	"strings"
)

const (
	// similarityEpsilon absorbs float rounding when comparing the computed
	// similarity ratio against the threshold.
	similarityEpsilon = 1e-9

	// shortTextRunes is the length below which only single-character drift
	// between equal-length keys is tolerated. Short fragments produce too
	// many false positives under ratio-based matching.
	shortTextRunes = 6

	// containmentRatio is the minimum shorter/longer length ratio for the
	// substring heuristic that absorbs edge-truncated OCR reads.
	containmentRatio = 0.70
)

// TextsSimilar reports whether two normalized keys represent the same
// on-screen text at the given threshold. Thresholds are in [0,1]; callers
// wanting exact-match semantics pass 1.
func TextsSimilar(aKey, bKey string, threshold float64) bool {
	if aKey == bKey {
		return true
	}

	aRunes := []rune(aKey)
	bRunes := []rune(bKey)
	minLen := min(len(aRunes), len(bRunes))
	maxLen := max(len(aRunes), len(bRunes))

	// Containment: one key fully inside the other usually means the OCR
	// clipped a character off an edge, as long as the shorter key is not a
	// tiny fragment of a much longer sentence.
	if strings.Contains(aKey, bKey) || strings.Contains(bKey, aKey) {
		if maxLen-minLen <= 2 || float64(minLen)/float64(maxLen) >= containmentRatio {
			return true
		}
	}

	// Short keys: tolerate one character of drift only when lengths match.
	if minLen < shortTextRunes {
		if len(aRunes) != len(bRunes) {
			return false
		}
		dist, ok := levenshteinBounded(aRunes, bRunes, 1)
		return ok && dist <= 1
	}

	threshold = clampFloat(threshold, 0, 1)
	maxDist := int(math.Ceil((1 - threshold) * float64(maxLen)))
	if maxDist == 0 {
		return false
	}

	dist, ok := levenshteinBounded(aRunes, bRunes, maxDist)
	if !ok {
		return false
	}

	similarity := 1 - float64(dist)/float64(maxLen)
	return similarity+similarityEpsilon >= threshold
}

// levenshteinBounded computes the edit distance between two rune slices with
// unit insert/delete/substitute costs, giving up as soon as the result is
// certain to exceed maxDist. The second return is false when the bound was
// exceeded.
func levenshteinBounded(a, b []rune, maxDist int) (int, bool) {
	short, long := a, b
	if len(short) > len(long) {
		short, long = long, short
	}

	if len(long)-len(short) > maxDist {
		return 0, false
	}

	prev := make([]int, len(short)+1)
	cur := make([]int, len(short)+1)
	for i := range prev {
		prev[i] = i
	}

	for j, longRune := range long {
		cur[0] = j + 1
		rowMin := cur[0]

		for i, shortRune := range short {
			cost := 0
			if shortRune != longRune {
				cost = 1
			}
			val := min(cur[i]+1, prev[i+1]+1, prev[i]+cost)
			cur[i+1] = val
			rowMin = min(rowMin, val)
		}

		if rowMin > maxDist {
			return 0, false
		}

		prev, cur = cur, prev
	}

	if prev[len(short)] > maxDist {
		return 0, false
	}
	return prev[len(short)], true
}

func clampFloat(value, lo, hi float64) float64 {
	if math.IsNaN(value) {
		return lo
	}
	return math.Min(math.Max(value, lo), hi)
}
