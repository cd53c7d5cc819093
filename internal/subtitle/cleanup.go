package subtitle

import (
	"fmt"
	"strings"
)

// relaxedMergeThreshold is applied when either neighbor is shorter than the
// configured minimum cue duration.
const relaxedMergeThreshold = 0.80

// tldSubstrings are checked anywhere in the lowercased text; subtitles that
// mention these almost always advertise a release group or streaming site.
var tldSubstrings = []string{".com", ".net", ".org", ".co", ".io", ".me", ".tv", ".app"}

func tokenLooksLikeDomain(token string) bool {
	token = strings.TrimFunc(token, func(r rune) bool {
		return !isASCIIAlphanumeric(r) && r != '.' && r != '-'
	})
	parts := strings.Split(token, ".")
	if len(parts) < 2 {
		return false
	}
	for _, part := range parts {
		if part == "" {
			return false
		}
	}

	tld := parts[len(parts)-1]
	if len(tld) < 2 || len(tld) > 6 || !allASCIILetters(tld) {
		return false
	}

	domain := parts[len(parts)-2]
	if len(domain) < 2 || !containsASCIILetter(domain) {
		return false
	}

	return true
}

func textLooksURLLike(text string) bool {
	lower := strings.ToLower(text)

	if strings.Contains(lower, "http://") || strings.Contains(lower, "https://") || strings.Contains(lower, "www.") {
		return true
	}
	for _, tld := range tldSubstrings {
		if strings.Contains(lower, tld) {
			return true
		}
	}

	for _, token := range strings.Fields(lower) {
		if tokenLooksLikeDomain(token) {
			return true
		}
	}
	return false
}

func filterURLLike(entries []Entry) []Entry {
	kept := entries[:0]
	for _, entry := range entries {
		if textLooksURLLike(entry.Text) {
			continue
		}
		kept = append(kept, entry)
	}
	return kept
}

// mergeAdjacent folds runs of near-duplicate neighboring entries into one
// cue. Scanning left to right, an entry merges into the accumulated previous
// one when the gap is small and the texts are similar at the strict
// threshold, or at the relaxed threshold when either cue is too short to
// stand alone. Ids are renumbered afterwards. The pass is idempotent: its
// output merges to itself.
func mergeAdjacent(entries []Entry, threshold float64, maxGapMS, minCueDurationMS int64) []Entry {
	merged := make([]Entry, 0, len(entries))

	for _, entry := range entries {
		if len(merged) > 0 {
			prev := &merged[len(merged)-1]
			gap := entry.StartMS - prev.EndMS

			prevKey := NormalizeKey(prev.Text)
			entryKey := NormalizeKey(entry.Text)
			isShort := prev.EndMS-prev.StartMS < minCueDurationMS ||
				entry.EndMS-entry.StartMS < minCueDurationMS

			similarStrict := TextsSimilar(prevKey, entryKey, threshold)
			similarRelaxed := TextsSimilar(prevKey, entryKey, relaxedMergeThreshold)

			if gap <= maxGapMS && (similarStrict || (isShort && similarRelaxed)) {
				prev.EndMS = max(prev.EndMS, entry.EndMS)
				confDelta := entry.Confidence - prev.Confidence
				if confDelta > confidenceEpsilon ||
					(confDelta >= -confidenceEpsilon && len([]rune(entry.Text)) > len([]rune(prev.Text))) {
					prev.Text = entry.Text
				}
				prev.Confidence = max(prev.Confidence, entry.Confidence)
				continue
			}
		}

		merged = append(merged, entry)
	}

	for i := range merged {
		merged[i].ID = fmt.Sprintf("sub-%d", i+1)
	}
	return merged
}

func isASCIIAlphanumeric(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

func allASCIILetters(s string) bool {
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}

func containsASCIILetter(s string) bool {
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			return true
		}
	}
	return false
}
