package subtitle

import (
	"strings"
	"unicode"
)

// CollapseWhitespace reduces internal whitespace runs to single spaces and
// trims the result. This is the display form of an observation's text.
func CollapseWhitespace(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	lastWasSpace := false

	for _, r := range text {
		if unicode.IsSpace(r) {
			if !lastWasSpace && b.Len() > 0 {
				b.WriteByte(' ')
			}
			lastWasSpace = true
			continue
		}
		lastWasSpace = false
		b.WriteRune(r)
	}

	return strings.TrimRight(b.String(), " ")
}

// asciiPunctuation covers the full ASCII punctuation range, including the
// symbol characters unicode.IsPunct leaves out.
const asciiPunctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// cjkEdgePunctuation lists the common fullwidth punctuation stripped from
// key edges in addition to ASCII punctuation.
const cjkEdgePunctuation = "，。！？：；、“”‘’《》（）【】—…～·"

func isEdgePunctuation(r rune) bool {
	if unicode.IsSpace(r) {
		return true
	}
	if r < unicode.MaxASCII {
		return strings.ContainsRune(asciiPunctuation, r)
	}
	return strings.ContainsRune(cjkEdgePunctuation, r)
}

// NormalizeKey derives the comparison key for a piece of recognized text:
// whitespace collapsed, edge punctuation stripped, lowercased. An empty key
// marks the observation as invalid.
func NormalizeKey(text string) string {
	collapsed := CollapseWhitespace(text)
	trimmed := strings.TrimFunc(collapsed, isEdgePunctuation)
	return strings.ToLower(trimmed)
}
