package studyguide

import (
	"regexp"
	"strings"
)

// Heading shapes recognized by the section segmenter: "Chapter 3" in any
// letter case, numbered headings like "2. Methods", all-uppercase lines, and
// "Word:" labels.
var headingPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^chapter\s+\d+`),
	regexp.MustCompile(`^\d+\.\s+`),
	regexp.MustCompile(`^[A-Z][A-Z\s]+$`),
	regexp.MustCompile(`^[A-Z][a-z]+:`),
}

func isHeading(line string) bool {
	for _, pattern := range headingPatterns {
		if pattern.MatchString(line) {
			return true
		}
	}
	return false
}

// IdentifySections scans text line by line and groups lines under the most
// recent heading. Blank lines are skipped entirely. Lines before the first
// detected heading are discarded, so text with no heading yields no sections.
// Line indices are zero-based positions in the input; a section's range runs
// from its heading line to the line before the next heading (or the last
// input line).
func IdentifySections(text string) []Section {
	lines := strings.Split(text, "\n")

	var sections []Section
	var content []string
	title := ""
	startLine := 0

	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if isHeading(line) {
			if title != "" {
				sections = append(sections, Section{
					Title:     title,
					Content:   strings.Join(content, "\n"),
					StartLine: startLine,
					EndLine:   i - 1,
				})
			}
			title = line
			startLine = i
			content = nil
			continue
		}

		if title != "" {
			content = append(content, line)
		}
	}

	if title != "" {
		sections = append(sections, Section{
			Title:     title,
			Content:   strings.Join(content, "\n"),
			StartLine: startLine,
			EndLine:   len(lines) - 1,
		})
	}

	return sections
}
