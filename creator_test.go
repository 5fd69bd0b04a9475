package studyguide

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTemplateCreator(t *testing.T) *StudyGuideCreator {
	t.Helper()
	creator, err := NewStudyGuideCreator(CreatorConfig{})
	if err != nil {
		t.Fatalf("NewStudyGuideCreator: %v", err)
	}
	t.Cleanup(func() { creator.Close() })
	return creator
}

const creatorInputText = `The water cycle describes how water moves through the environment. ` +
	`Evaporation turns surface water into vapor. Condensation forms clouds from that vapor. ` +
	`Precipitation returns water to the ground as rain or snow. ` +
	`Collection gathers water in rivers, lakes, and oceans. ` +
	`The water cycle repeats continuously and drives weather patterns across the planet.`

func TestCreateStudyGuideFromText(t *testing.T) {
	creator := newTemplateCreator(t)
	outDir := t.TempDir()

	result, err := creator.CreateStudyGuide(context.Background(), CreateRequest{
		InputText:    creatorInputText,
		Subject:      "Earth Science",
		IncludeQuiz:  true,
		NumQuestions: 4,
		OutputDir:    outDir,
	})
	if err != nil {
		t.Fatalf("CreateStudyGuide: %v", err)
	}

	if result.Guide == nil {
		t.Fatal("no guide produced")
	}
	if result.Guide.Title != "Earth Science Study Guide" {
		t.Errorf("Title = %q", result.Guide.Title)
	}
	if result.Guide.Level != "undergraduate" {
		t.Errorf("Level = %q, want default undergraduate", result.Guide.Level)
	}
	if result.Guide.Metadata.GeneratedBy != "template" {
		t.Errorf("GeneratedBy = %q, want template", result.Guide.Metadata.GeneratedBy)
	}

	if result.Quiz == nil {
		t.Fatal("no quiz produced despite IncludeQuiz")
	}
	if len(result.Quiz.Questions) != 4 {
		t.Errorf("got %d questions, want 4", len(result.Quiz.Questions))
	}
	if result.Quiz.Difficulty != DifficultyMedium {
		t.Errorf("Difficulty = %q, want default medium", result.Quiz.Difficulty)
	}

	if result.Content == nil || result.Content.Metadata.WordCount == 0 {
		t.Error("processed content missing")
	}
	if result.Content.Metadata.Fallback {
		t.Error("inline text marked as fallback content")
	}

	// Default export formats plus the quiz JSON.
	if len(result.ExportedFiles) != 4 {
		t.Fatalf("got %d exported files, want 4: %v", len(result.ExportedFiles), result.ExportedFiles)
	}
	for _, path := range result.ExportedFiles {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("exported file missing: %v", err)
		}
	}

	if result.PackageDir != filepath.Join(outDir, "earth_science_study_guide") {
		t.Errorf("PackageDir = %q", result.PackageDir)
	}
	if _, err := os.Stat(filepath.Join(result.PackageDir, "README.md")); err != nil {
		t.Errorf("package README missing: %v", err)
	}
}

func TestCreateStudyGuideValidation(t *testing.T) {
	creator := newTemplateCreator(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  CreateRequest
	}{
		{"no input", CreateRequest{Subject: "Math"}},
		{"no subject", CreateRequest{InputText: "Some text."}},
		{"bad level", CreateRequest{InputText: "Some text.", Subject: "Math", Level: "expert"}},
		{"bad difficulty", CreateRequest{InputText: "Some text.", Subject: "Math", Difficulty: "brutal"}},
		{"too many questions", CreateRequest{InputText: "Some text.", Subject: "Math", NumQuestions: 51}},
		{"bad format", CreateRequest{InputText: "Some text.", Subject: "Math", ExportFormats: []string{"docx"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := creator.CreateStudyGuide(ctx, tt.req); err == nil {
				t.Error("invalid request accepted")
			} else if !strings.Contains(err.Error(), "invalid request") {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestCreateStudyGuideFallbackContent(t *testing.T) {
	creator := newTemplateCreator(t)
	outDir := t.TempDir()

	result, err := creator.CreateStudyGuide(context.Background(), CreateRequest{
		InputFile: filepath.Join(outDir, "does-not-exist.txt"),
		Subject:   "Philosophy",
		Level:     "graduate",
		OutputDir: outDir,
	})
	if err != nil {
		t.Fatalf("CreateStudyGuide: %v", err)
	}
	if !result.Content.Metadata.Fallback {
		t.Error("content not marked as fallback")
	}
	if len(result.Content.Concepts) == 0 || result.Content.Concepts[0] != "Philosophy" {
		t.Errorf("fallback concepts = %v", result.Content.Concepts)
	}
	if result.Quiz != nil {
		t.Error("quiz produced without IncludeQuiz")
	}
}

func TestCreateStudyGuideFromFile(t *testing.T) {
	creator := newTemplateCreator(t)
	outDir := t.TempDir()
	inputPath := filepath.Join(outDir, "notes.txt")
	if err := os.WriteFile(inputPath, []byte(creatorInputText), 0644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	result, err := creator.CreateStudyGuide(context.Background(), CreateRequest{
		InputFile:     inputPath,
		Subject:       "Earth Science",
		Title:         "Water Cycle Notes",
		ExportFormats: []string{"markdown", "json"},
		OutputDir:     outDir,
	})
	if err != nil {
		t.Fatalf("CreateStudyGuide: %v", err)
	}
	if result.Guide.Title != "Water Cycle Notes" {
		t.Errorf("Title = %q, want the requested title", result.Guide.Title)
	}
	if result.Content.Metadata.FilePath != inputPath {
		t.Errorf("FilePath = %q, want %q", result.Content.Metadata.FilePath, inputPath)
	}
	if len(result.ExportedFiles) != 2 {
		t.Fatalf("got %d exported files, want 2: %v", len(result.ExportedFiles), result.ExportedFiles)
	}
	for _, path := range result.ExportedFiles {
		ext := filepath.Ext(path)
		if ext != ".md" && ext != ".json" {
			t.Errorf("unexpected export %q", path)
		}
	}
}

func TestCreatorAdaptiveQuizAndEvaluate(t *testing.T) {
	creator := newTemplateCreator(t)

	previous := []QuizResult{failedResult(50, "fractions", "decimals")}
	quiz, err := creator.CreateAdaptiveQuiz(context.Background(), "Math", previous, 3)
	if err != nil {
		t.Fatalf("CreateAdaptiveQuiz: %v", err)
	}
	if quiz.Title != "Adaptive Math Quiz" {
		t.Errorf("Title = %q", quiz.Title)
	}
	if len(quiz.Questions) != 3 {
		t.Fatalf("got %d questions, want 3", len(quiz.Questions))
	}

	answers := make(map[int]string)
	for _, q := range quiz.Questions {
		answers[q.ID] = q.CorrectAnswer
	}
	result := creator.EvaluateQuiz(quiz, answers, 120)
	if result.Percentage != 100 {
		t.Errorf("Percentage = %v, want 100", result.Percentage)
	}
	if result.TimeTaken != 120 {
		t.Errorf("TimeTaken = %d, want 120", result.TimeTaken)
	}
}
