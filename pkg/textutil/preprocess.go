package textutil

import (
	"regexp"
	"strings"
)

var (
	parenRe       = regexp.MustCompile(`\([^)]*\)`)
	sentenceEndRe = regexp.MustCompile(`([.!?])\s+`)
	prePunctRe    = regexp.MustCompile(`\s+([?.!,"])`)
	multiSpaceRe  = regexp.MustCompile(`\s+`)
	wordRe        = regexp.MustCompile(`[\p{L}\p{N}]+(?:[-'][\p{L}\p{N}]+)*|[?.!,"]`)
)

var stopWords = map[string]struct{}{
	"a": {}, "an": {}, "the": {}, "with": {}, "of": {}, "to": {},
	"and": {}, "in": {}, "on": {}, "for": {}, "as": {}, "by": {},
}

// Normalize compacts article text before it is handed to a model:
// parenthetical asides are dropped, words are lowercased, a small
// stopword set is removed, and punctuation spacing is repaired.
func Normalize(text string) string {
	text = parenRe.ReplaceAllString(text, "")

	var out []string
	for _, sentence := range SplitSentences(text) {
		for _, word := range wordRe.FindAllString(sentence, -1) {
			lower := strings.ToLower(word)
			if _, skip := stopWords[lower]; skip {
				continue
			}
			out = append(out, lower)
		}
	}

	processed := strings.Join(out, " ")
	processed = prePunctRe.ReplaceAllString(processed, "$1")
	processed = multiSpaceRe.ReplaceAllString(processed, " ")
	return strings.TrimSpace(processed)
}

// SplitSentences breaks text on terminal punctuation followed by
// whitespace. It is deliberately simple; abbreviations are not handled.
func SplitSentences(text string) []string {
	marked := sentenceEndRe.ReplaceAllString(text, "$1\x00")
	parts := strings.Split(marked, "\x00")
	sentences := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			sentences = append(sentences, p)
		}
	}
	return sentences
}
