package studyguide

import (
	"regexp"
	"strings"
)

var (
	whitespaceRe      = regexp.MustCompile(`\s+`)
	lineSpaceRe       = regexp.MustCompile(`[ \t]+`)
	specialCharRe     = regexp.MustCompile(`[^\p{L}\p{N}_\s.,!?;:()-]`)
	spaceBeforeStopRe = regexp.MustCompile(`\s+([.!?])`)
	missingSpaceRe    = regexp.MustCompile(`([.!?])\s*([A-Z])`)
)

// NormalizeText cleans raw document text: whitespace runs (including
// newlines) collapse to a single space, characters outside the retained
// punctuation set become spaces so they still act as word boundaries, and
// spacing around sentence-terminal marks is repaired. The result is a single
// trimmed line, possibly empty. Normalization is idempotent.
func NormalizeText(text string) string {
	text = whitespaceRe.ReplaceAllString(text, " ")
	text = specialCharRe.ReplaceAllString(text, " ")
	// Replaced characters can leave runs of spaces behind.
	text = whitespaceRe.ReplaceAllString(text, " ")
	text = spaceBeforeStopRe.ReplaceAllString(text, "$1")
	text = missingSpaceRe.ReplaceAllString(text, "$1 $2")
	return strings.TrimSpace(text)
}

// NormalizeLines applies the same cleaning rules line by line, keeping the
// newline structure intact. Section detection needs line boundaries that the
// fully collapsed NormalizeText output no longer has.
func NormalizeLines(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		line = lineSpaceRe.ReplaceAllString(line, " ")
		line = specialCharRe.ReplaceAllString(line, " ")
		line = lineSpaceRe.ReplaceAllString(line, " ")
		line = spaceBeforeStopRe.ReplaceAllString(line, "$1")
		line = missingSpaceRe.ReplaceAllString(line, "$1 $2")
		lines[i] = strings.TrimSpace(line)
	}
	return strings.Join(lines, "\n")
}
