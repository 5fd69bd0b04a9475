package studyguide

import (
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("OpenDB: %v", err)
	}
	t.Cleanup(func() { db.CloseDB() })
	if err := db.CreateTables(); err != nil {
		t.Fatalf("CreateTables: %v", err)
	}
	return db
}

func TestSaveAndGetGuide(t *testing.T) {
	db := openTestDB(t)

	guide := &StudyGuide{
		Title:   "Biology Study Guide",
		Subject: "Biology",
		Level:   "undergraduate",
		Summary: "Cells and their components.",
		KeyConcepts: []Concept{
			{Name: "cell membrane", Definition: "The boundary of the cell"},
		},
		Flashcards: []Flashcard{
			{Front: "mitochondria", Back: "Powerhouse of the cell", Type: "term", Difficulty: DifficultyMedium, Tags: []string{"key_term"}},
		},
		Metadata: GuideMetadata{GeneratedBy: "template", ConceptCount: 1, FlashcardCount: 1},
	}

	if err := db.SaveGuide("guide-1", guide); err != nil {
		t.Fatalf("SaveGuide: %v", err)
	}

	got, err := db.GetGuide("guide-1")
	if err != nil {
		t.Fatalf("GetGuide: %v", err)
	}
	if !reflect.DeepEqual(got, guide) {
		t.Errorf("GetGuide = %+v, want %+v", got, guide)
	}

	if _, err := db.GetGuide("no-such-guide"); err == nil {
		t.Error("missing guide returned without error")
	}
}

func TestSaveGuideReplaces(t *testing.T) {
	db := openTestDB(t)

	guide := &StudyGuide{Title: "First Title", Subject: "Physics", Level: "graduate"}
	if err := db.SaveGuide("guide-1", guide); err != nil {
		t.Fatalf("SaveGuide: %v", err)
	}
	guide.Title = "Second Title"
	if err := db.SaveGuide("guide-1", guide); err != nil {
		t.Fatalf("SaveGuide replace: %v", err)
	}

	got, err := db.GetGuide("guide-1")
	if err != nil {
		t.Fatalf("GetGuide: %v", err)
	}
	if got.Title != "Second Title" {
		t.Errorf("Title = %q, want %q", got.Title, "Second Title")
	}

	guides, err := db.GetGuides(0)
	if err != nil {
		t.Fatalf("GetGuides: %v", err)
	}
	if len(guides) != 1 {
		t.Errorf("got %d guides, want 1", len(guides))
	}
}

func TestSaveAndGetQuiz(t *testing.T) {
	db := openTestDB(t)

	quiz := &Quiz{
		ID:         "abc123def456",
		Title:      "Biology Quiz - Medium Level",
		Subject:    "Biology",
		Difficulty: DifficultyMedium,
		Questions: []Question{
			{
				ID:            1,
				Question:      "What best describes the cell membrane?",
				Type:          QuestionMultipleChoice,
				Options:       []string{"A) The boundary of the cell", "B) A different concept entirely", "C) An unrelated term", "D) None of the above"},
				CorrectAnswer: "A",
				Explanation:   "The boundary of the cell",
				Points:        1,
				TimeEstimate:  60,
				Tags:          []string{"cell membrane"},
				Difficulty:    DifficultyMedium,
			},
			{
				ID:            2,
				Question:      "The mitochondria produces energy.",
				Type:          QuestionTrueFalse,
				Options:       []string{"True", "False"},
				CorrectAnswer: "true",
				Explanation:   "Basic fact",
				Points:        1,
				TimeEstimate:  45,
				Tags:          []string{"mitochondria"},
				Difficulty:    DifficultyEasy,
			},
		},
		TimeLimit:    10,
		PassingScore: 70,
		Metadata:     QuizMetadata{CreatedAt: time.Now().UTC().Truncate(time.Second), GeneratedBy: "template"},
	}

	if err := db.SaveQuiz(quiz, "guide-1"); err != nil {
		t.Fatalf("SaveQuiz: %v", err)
	}

	got, err := db.GetQuiz(quiz.ID)
	if err != nil {
		t.Fatalf("GetQuiz: %v", err)
	}
	if got.Title != quiz.Title || got.Subject != quiz.Subject || got.Difficulty != quiz.Difficulty {
		t.Errorf("quiz header mismatch: got %+v", got)
	}
	if got.TimeLimit != quiz.TimeLimit || got.PassingScore != quiz.PassingScore {
		t.Errorf("quiz policy mismatch: got %+v", got)
	}
	if len(got.Questions) != len(quiz.Questions) {
		t.Fatalf("got %d questions, want %d", len(got.Questions), len(quiz.Questions))
	}
	for i := range quiz.Questions {
		if !reflect.DeepEqual(got.Questions[i], quiz.Questions[i]) {
			t.Errorf("question %d mismatch:\n got  %+v\n want %+v", i+1, got.Questions[i], quiz.Questions[i])
		}
	}

	if _, err := db.GetQuiz("missingquizid"); err == nil {
		t.Error("missing quiz returned without error")
	}
}

func TestSaveQuizReplacesQuestions(t *testing.T) {
	db := openTestDB(t)

	quiz := &Quiz{
		ID:      "quiz12345678",
		Title:   "Physics Quiz - Easy Level",
		Subject: "Physics", Difficulty: DifficultyEasy,
		TimeLimit: 10, PassingScore: 70,
		Metadata: QuizMetadata{CreatedAt: time.Now(), GeneratedBy: "template"},
		Questions: []Question{
			{ID: 1, Question: "Old question one?", Type: QuestionShortAnswer, CorrectAnswer: "force", Points: 1, TimeEstimate: 120, Tags: []string{"force"}, Difficulty: DifficultyEasy},
			{ID: 2, Question: "Old question two?", Type: QuestionShortAnswer, CorrectAnswer: "mass", Points: 1, TimeEstimate: 120, Tags: []string{"mass"}, Difficulty: DifficultyEasy},
		},
	}
	if err := db.SaveQuiz(quiz, ""); err != nil {
		t.Fatalf("SaveQuiz: %v", err)
	}

	quiz.Questions = quiz.Questions[:1]
	quiz.Questions[0].Question = "New question one?"
	if err := db.SaveQuiz(quiz, ""); err != nil {
		t.Fatalf("SaveQuiz replace: %v", err)
	}

	got, err := db.GetQuiz(quiz.ID)
	if err != nil {
		t.Fatalf("GetQuiz: %v", err)
	}
	if len(got.Questions) != 1 {
		t.Fatalf("got %d questions after replace, want 1", len(got.Questions))
	}
	if got.Questions[0].Question != "New question one?" {
		t.Errorf("question = %q, want the replacement", got.Questions[0].Question)
	}
}

func TestGetQuizzesLimit(t *testing.T) {
	db := openTestDB(t)

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 3; i++ {
		quiz := &Quiz{
			ID:      string(rune('a'+i)) + "aaaaaaaaaaa",
			Title:   "Quiz", Subject: "Math", Difficulty: DifficultyMedium,
			TimeLimit: 10, PassingScore: 70,
			Metadata: QuizMetadata{CreatedAt: base.Add(time.Duration(i) * time.Minute)},
		}
		if err := db.SaveQuiz(quiz, ""); err != nil {
			t.Fatalf("SaveQuiz %d: %v", i, err)
		}
	}

	quizzes, err := db.GetQuizzes(2)
	if err != nil {
		t.Fatalf("GetQuizzes: %v", err)
	}
	if len(quizzes) != 2 {
		t.Fatalf("got %d quizzes, want 2", len(quizzes))
	}
	// Newest first.
	if quizzes[0].ID != "caaaaaaaaaaa" || quizzes[1].ID != "baaaaaaaaaaa" {
		t.Errorf("unexpected order: %s, %s", quizzes[0].ID, quizzes[1].ID)
	}
}

func TestSaveAndRecentResults(t *testing.T) {
	db := openTestDB(t)

	for i := 1; i <= 4; i++ {
		result := &QuizResult{
			QuizTitle:      "Biology Quiz - Medium Level",
			Score:          i,
			TotalQuestions: 5,
			Percentage:     float64(i) * 20,
			TimeTaken:      90,
			DetailedResults: []QuestionResult{
				{QuestionID: 1, Correct: i > 2, Tags: []string{"cells"}, PointsEarned: i, PointsPossible: 5},
			},
		}
		if err := db.SaveResult("session-1", result); err != nil {
			t.Fatalf("SaveResult %d: %v", i, err)
		}
	}
	if err := db.SaveResult("session-2", &QuizResult{QuizTitle: "Other", Score: 1, TotalQuestions: 1, Percentage: 100}); err != nil {
		t.Fatalf("SaveResult other session: %v", err)
	}

	results, err := db.RecentResults("session-1", 3)
	if err != nil {
		t.Fatalf("RecentResults: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	// Last three, oldest first.
	for i, want := range []int{2, 3, 4} {
		if results[i].Score != want {
			t.Errorf("results[%d].Score = %d, want %d", i, results[i].Score, want)
		}
	}
	if len(results[0].DetailedResults) != 1 || results[0].DetailedResults[0].Tags[0] != "cells" {
		t.Errorf("detail rows not preserved: %+v", results[0].DetailedResults)
	}

	empty, err := db.RecentResults("session-3", 3)
	if err != nil {
		t.Fatalf("RecentResults empty: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("got %d results for unknown session, want 0", len(empty))
	}
}
