package generator

import (
	"regexp"
	"strings"
)

var (
	fencePattern  = regexp.MustCompile("(?is)```(?:cypher|sql)?\\s*(.*?)```")
	prefixPattern = regexp.MustCompile(`(?i)^\s*(cypher(\s+query)?|query)\s*:\s*`)
)

// ExtractCypher pulls the statement out of a completion. It prefers the first
// fenced code block, then strips "Cypher:" style prefixes and a trailing
// semicolon. The returned explanation is whatever text surrounded the fence.
func ExtractCypher(completion string) (query, explanation string) {
	text := strings.TrimSpace(completion)

	if m := fencePattern.FindStringSubmatchIndex(text); m != nil {
		explanation = strings.TrimSpace(strings.TrimSpace(text[:m[0]]) + " " + strings.TrimSpace(text[m[1]:]))
		text = text[m[2]:m[3]]
	}

	text = prefixPattern.ReplaceAllString(text, "")
	text = strings.TrimSpace(text)
	text = strings.TrimSuffix(text, ";")
	return strings.TrimSpace(text), explanation
}
