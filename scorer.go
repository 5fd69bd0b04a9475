package studyguide

import (
	"fmt"
	"math"
	"strings"
)

// truthyAnswers are the accepted affirmative forms for true/false questions.
var truthyAnswers = map[string]bool{
	"true": true, "t": true, "yes": true, "y": true, "1": true,
}

// EvaluateQuiz grades a set of answers against a quiz and returns the
// scored result with per-question details and study recommendations.
// Answers are keyed by question ID; a missing answer counts as incorrect.
func EvaluateQuiz(quiz *Quiz, answers map[int]string, timeTaken int) *QuizResult {
	result := &QuizResult{
		QuizTitle:      quiz.Title,
		TotalQuestions: len(quiz.Questions),
		TimeTaken:      timeTaken,
	}

	totalPoints := 0
	earnedPoints := 0
	for _, q := range quiz.Questions {
		totalPoints += q.Points
		answer := answers[q.ID]
		correct := checkAnswer(q, answer)
		earned := 0
		if correct {
			earned = q.Points
			earnedPoints += q.Points
			result.Score += q.Points
			result.CorrectAnswers = append(result.CorrectAnswers, q.ID)
		} else {
			result.IncorrectAnswers = append(result.IncorrectAnswers, q.ID)
		}
		result.DetailedResults = append(result.DetailedResults, QuestionResult{
			QuestionID:     q.ID,
			Question:       q.Question,
			UserAnswer:     answer,
			CorrectAnswer:  q.CorrectAnswer,
			Correct:        correct,
			PointsEarned:   earned,
			PointsPossible: q.Points,
			Explanation:    q.Explanation,
			Tags:           q.Tags,
			Difficulty:     q.Difficulty,
		})
	}

	if totalPoints > 0 {
		result.Percentage = math.Round(float64(earnedPoints)/float64(totalPoints)*10000) / 100
	}
	result.Recommendations = buildRecommendations(quiz, result)
	return result
}

// checkAnswer compares a user answer to the correct one using the
// comparison rules for the question type. A blank answer is incorrect for
// every type, including true/false questions whose correct answer is false.
func checkAnswer(q Question, answer string) bool {
	if strings.TrimSpace(answer) == "" {
		return false
	}
	switch q.Type {
	case QuestionMultipleChoice:
		return strings.ToUpper(strings.TrimSpace(answer)) == strings.ToUpper(strings.TrimSpace(q.CorrectAnswer))
	case QuestionTrueFalse:
		return truthyAnswers[strings.ToLower(strings.TrimSpace(answer))] ==
			truthyAnswers[strings.ToLower(strings.TrimSpace(q.CorrectAnswer))]
	case QuestionShortAnswer:
		return shortAnswerMatches(answer, q.CorrectAnswer)
	default:
		return strings.ToLower(strings.TrimSpace(answer)) == strings.ToLower(strings.TrimSpace(q.CorrectAnswer))
	}
}

// shortAnswerMatches accepts a short answer when it shares at least one word
// with the expected answer and covers at least half the expected answer's
// distinct words.
func shortAnswerMatches(answer, correct string) bool {
	answerWords := wordSet(answer)
	correctWords := wordSet(correct)
	if len(correctWords) == 0 {
		return false
	}
	overlap := 0
	for w := range correctWords {
		if answerWords[w] {
			overlap++
		}
	}
	return overlap >= 1 && 2*overlap >= len(correctWords)
}

func wordSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(s)) {
		set[w] = true
	}
	return set
}

// buildRecommendations produces ordered study advice: an overall message for
// the score band, focus areas from the tags of missed questions, and notes
// about missed hard and easy questions.
func buildRecommendations(quiz *Quiz, result *QuizResult) []string {
	var recs []string

	switch {
	case result.Percentage >= 90:
		recs = append(recs, "Excellent work! You have mastered this material.")
	case result.Percentage >= 80:
		recs = append(recs, "Good job! Review the missed concepts to achieve mastery.")
	case result.Percentage >= 70:
		recs = append(recs, "Solid understanding. Focus on the areas you missed.")
	case result.Percentage >= 60:
		recs = append(recs, "You're on the right track. Additional study is recommended.")
	default:
		recs = append(recs, "Consider reviewing the fundamental concepts before retaking.")
	}

	var missedTags []string
	missedHard := false
	missedEasy := false
	for _, detail := range result.DetailedResults {
		if detail.Correct {
			continue
		}
		missedTags = append(missedTags, detail.Tags...)
		switch detail.Difficulty {
		case DifficultyHard:
			missedHard = true
		case DifficultyEasy:
			missedEasy = true
		}
	}
	for _, tag := range mostCommon(missedTags, 3) {
		recs = append(recs, fmt.Sprintf("Focus additional study on: %s", tag))
	}
	if missedHard {
		recs = append(recs, "Practice more advanced problems to improve on difficult concepts.")
	}
	if missedEasy {
		recs = append(recs, "Review fundamental concepts - focus on basic understanding first.")
	}
	return recs
}
