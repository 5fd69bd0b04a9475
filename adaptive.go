package studyguide

// Adaptive quiz tuning thresholds.
const (
	weakAreaWindow    = 3
	weakAreaThreshold = 70.0
	maxWeakAreas      = 5
	advancedAverage   = 85.0
	intermedAverage   = 70.0
)

// AnalyzeWeakAreas inspects the most recent quiz results and returns the
// topic tags the student keeps missing, most frequent first, capped at five.
// Only results below the passing threshold contribute.
func AnalyzeWeakAreas(history []QuizResult) []string {
	if len(history) > weakAreaWindow {
		history = history[len(history)-weakAreaWindow:]
	}
	var missedTags []string
	for _, result := range history {
		if result.Percentage >= weakAreaThreshold {
			continue
		}
		for _, detail := range result.DetailedResults {
			if !detail.Correct {
				missedTags = append(missedTags, detail.Tags...)
			}
		}
	}
	return mostCommon(missedTags, maxWeakAreas)
}

// DetermineStudentLevel classifies the student from their recent average
// score. No history means beginner.
func DetermineStudentLevel(history []QuizResult) string {
	if len(history) == 0 {
		return LevelBeginner
	}
	if len(history) > weakAreaWindow {
		history = history[len(history)-weakAreaWindow:]
	}
	var sum float64
	for _, result := range history {
		sum += result.Percentage
	}
	avg := sum / float64(len(history))
	switch {
	case avg >= advancedAverage:
		return LevelAdvanced
	case avg >= intermedAverage:
		return LevelIntermediate
	default:
		return LevelBeginner
	}
}
