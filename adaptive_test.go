package studyguide

import (
	"reflect"
	"testing"
)

func failedResult(percentage float64, missedTags ...string) QuizResult {
	result := QuizResult{Percentage: percentage}
	for i, tag := range missedTags {
		result.DetailedResults = append(result.DetailedResults, QuestionResult{
			QuestionID: i + 1,
			Correct:    false,
			Tags:       []string{tag},
		})
	}
	return result
}

func TestAnalyzeWeakAreas(t *testing.T) {
	history := []QuizResult{
		failedResult(40, "derivatives", "limits"),
		failedResult(55, "derivatives"),
	}
	got := AnalyzeWeakAreas(history)
	want := []string{"derivatives", "limits"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("AnalyzeWeakAreas = %v, want %v", got, want)
	}
}

func TestAnalyzeWeakAreasIgnoresPassingResults(t *testing.T) {
	history := []QuizResult{
		failedResult(85, "derivatives"),
		failedResult(70, "limits"),
	}
	if got := AnalyzeWeakAreas(history); len(got) != 0 {
		t.Errorf("passing results contributed weak areas: %v", got)
	}
}

func TestAnalyzeWeakAreasWindowsLastThree(t *testing.T) {
	history := []QuizResult{
		failedResult(30, "ancient-topic"),
		failedResult(30, "limits"),
		failedResult(30, "limits"),
		failedResult(30, "derivatives"),
	}
	got := AnalyzeWeakAreas(history)
	for _, area := range got {
		if area == "ancient-topic" {
			t.Errorf("weak areas include a result outside the three-result window: %v", got)
		}
	}
}

func TestAnalyzeWeakAreasCap(t *testing.T) {
	history := []QuizResult{
		failedResult(20, "a", "b", "c", "d", "e", "f", "g"),
	}
	if got := AnalyzeWeakAreas(history); len(got) > 5 {
		t.Errorf("got %d weak areas, cap is 5", len(got))
	}
}

func TestDetermineStudentLevel(t *testing.T) {
	tests := []struct {
		name    string
		history []QuizResult
		want    string
	}{
		{"no history", nil, LevelBeginner},
		{"high average", []QuizResult{{Percentage: 90}, {Percentage: 88}}, LevelAdvanced},
		{"middle average", []QuizResult{{Percentage: 75}, {Percentage: 72}}, LevelIntermediate},
		{"low average", []QuizResult{{Percentage: 40}, {Percentage: 60}}, LevelBeginner},
		{"boundary advanced", []QuizResult{{Percentage: 85}}, LevelAdvanced},
		{"boundary intermediate", []QuizResult{{Percentage: 70}}, LevelIntermediate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetermineStudentLevel(tt.history); got != tt.want {
				t.Errorf("DetermineStudentLevel = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDetermineStudentLevelUsesRecentResults(t *testing.T) {
	// Old perfect scores fall outside the window of three.
	history := []QuizResult{
		{Percentage: 100},
		{Percentage: 50},
		{Percentage: 50},
		{Percentage: 50},
	}
	if got := DetermineStudentLevel(history); got != LevelBeginner {
		t.Errorf("level = %q, want beginner from recent results only", got)
	}
}

func TestResultHistory(t *testing.T) {
	h := NewResultHistory()
	if h.Len() != 0 {
		t.Errorf("new history has length %d", h.Len())
	}

	for i := 1; i <= 5; i++ {
		h.Append(QuizResult{Score: i})
	}
	if h.Len() != 5 {
		t.Errorf("length = %d, want 5", h.Len())
	}

	recent := h.Recent(3)
	if len(recent) != 3 {
		t.Fatalf("Recent(3) returned %d results", len(recent))
	}
	if recent[0].Score != 3 || recent[2].Score != 5 {
		t.Errorf("Recent(3) = %v, want oldest-first scores 3..5", recent)
	}

	// Returned slice is a copy.
	recent[0].Score = 99
	if h.Recent(3)[0].Score == 99 {
		t.Error("Recent returned a view into internal state")
	}

	if got := h.Recent(10); len(got) != 5 {
		t.Errorf("Recent(10) = %d results, want all 5", len(got))
	}
	if got := h.All(); len(got) != 5 {
		t.Errorf("All() = %d results, want 5", len(got))
	}
}
