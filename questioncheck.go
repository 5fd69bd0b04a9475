package studyguide

import (
	"fmt"
	"regexp"
	"strings"
)

// ValidateQuestion checks that a question is structurally sound for its
// type: non-empty text and answer, four options for multiple choice with
// the answer among the option letters, a boolean answer for true/false.
func ValidateQuestion(q Question) error {
	if strings.TrimSpace(q.Question) == "" {
		return fmt.Errorf("question %d has empty text", q.ID)
	}
	if strings.TrimSpace(q.CorrectAnswer) == "" {
		return fmt.Errorf("question %d has no correct answer", q.ID)
	}
	switch q.Type {
	case QuestionMultipleChoice:
		if len(q.Options) < 2 {
			return fmt.Errorf("question %d needs at least two options, got %d", q.ID, len(q.Options))
		}
		answer := strings.ToUpper(strings.TrimSpace(q.CorrectAnswer))
		if len(answer) != 1 || answer[0] < 'A' || int(answer[0]-'A') >= len(q.Options) {
			return fmt.Errorf("question %d answer %q does not match an option", q.ID, q.CorrectAnswer)
		}
	case QuestionTrueFalse:
		answer := strings.ToLower(strings.TrimSpace(q.CorrectAnswer))
		if answer != "true" && answer != "false" {
			return fmt.Errorf("question %d answer %q is not true or false", q.ID, q.CorrectAnswer)
		}
	case QuestionShortAnswer:
		// Any non-empty answer is acceptable.
	default:
		return fmt.Errorf("question %d has unknown type %q", q.ID, q.Type)
	}
	return nil
}

// SanitizeQuestions drops malformed and near-duplicate questions, fills in
// missing points and difficulty, and renumbers IDs sequentially from one.
func SanitizeQuestions(questions []Question) []Question {
	seen := make(map[string]bool)
	var kept []Question
	for _, q := range questions {
		if err := ValidateQuestion(q); err != nil {
			VerboseLog("Dropping question: %v", err)
			continue
		}
		key := normalizeQuestionText(q.Question)
		if seen[key] {
			VerboseLog("Dropping duplicate question %d: %s", q.ID, q.Question)
			continue
		}
		seen[key] = true
		if q.Points <= 0 {
			q.Points = 1
		}
		if q.Difficulty == "" {
			q.Difficulty = DifficultyMedium
		}
		q.ID = len(kept) + 1
		kept = append(kept, q)
	}
	return kept
}

var dedupTokenRe = regexp.MustCompile(`\w+`)

// normalizeQuestionText reduces question text to its content words so that
// trivial rephrasings compare equal.
func normalizeQuestionText(text string) string {
	var tokens []string
	for _, tok := range dedupTokenRe.FindAllString(strings.ToLower(text), -1) {
		if stopWords[tok] {
			continue
		}
		tokens = append(tokens, tok)
	}
	return strings.Join(tokens, " ")
}
