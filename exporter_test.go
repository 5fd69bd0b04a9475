package studyguide

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func exportGuide() *StudyGuide {
	return &StudyGuide{
		Title:   "Chemistry Study Guide",
		Subject: "Chemistry",
		Level:   "undergraduate",
		Summary: "Covers bonding & reactions.",
		KeyConcepts: []Concept{
			{Name: "covalent bond", Definition: "A shared pair of electrons", Importance: "Holds molecules together"},
			{Name: "electronegativity"},
		},
		ChapterSummaries: []ChapterSummary{
			{Title: "Bonding", Summary: "Atoms share or transfer electrons.", StartLine: 0, EndLine: 40},
		},
		PracticeQuestions: []PracticeQuestion{
			{Question: "What is a covalent bond?", Type: QuestionShortAnswer, Difficulty: DifficultyEasy, CorrectAnswer: "A shared pair of electrons", Explanation: "Basic definition"},
		},
		Flashcards: []Flashcard{
			{Front: "covalent bond", Back: "A shared pair of electrons", Type: "term", Difficulty: DifficultyMedium, Tags: []string{"key_term", "bonding"}},
			{Front: "ion", Back: "A charged atom", Type: "term", Difficulty: DifficultyMedium, Tags: []string{"key_term"}},
		},
		Metadata: GuideMetadata{GeneratedBy: "template", ConceptCount: 2, QuestionCount: 1, FlashcardCount: 2},
	}
}

func TestExportMarkdown(t *testing.T) {
	guide := exportGuide()
	path := filepath.Join(t.TempDir(), "guide.md")

	if err := NewExporter().ExportMarkdown(guide, path); err != nil {
		t.Fatalf("ExportMarkdown: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	out := string(data)

	for _, want := range []string{
		"# Chemistry Study Guide",
		"**Subject:** Chemistry",
		"## Overview",
		"Covers bonding & reactions.",
		"### covalent bond",
		"**Definition:** A shared pair of electrons",
		"**Why it matters:** Holds molecules together",
		"## Chapter Summaries",
		"### Question 1",
		"**Answer:** A shared pair of electrons",
		"*Tags:* key_term, bonding",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown missing %q", want)
		}
	}
}

func TestExportHTMLEscapes(t *testing.T) {
	guide := exportGuide()
	guide.Summary = `Reactions with <script>alert("x")</script> inline`
	path := filepath.Join(t.TempDir(), "guide.html")

	if err := NewExporter().ExportHTML(guide, path); err != nil {
		t.Fatalf("ExportHTML: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	out := string(data)

	if strings.Contains(out, "<script>alert") {
		t.Error("summary not HTML escaped")
	}
	for _, want := range []string{
		"<title>Chemistry Study Guide</title>",
		"<h2>Key Concepts</h2>",
		"<h3>covalent bond</h3>",
		"key_term, bonding",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("HTML missing %q", want)
		}
	}
}

func TestExportJSONRoundtrip(t *testing.T) {
	guide := exportGuide()
	path := filepath.Join(t.TempDir(), "guide.json")

	if err := NewExporter().ExportJSON(guide, path); err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}

	var got StudyGuide
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !reflect.DeepEqual(&got, guide) {
		t.Errorf("roundtrip mismatch:\n got  %+v\n want %+v", got, guide)
	}
}

func TestExportFlashcardsCSV(t *testing.T) {
	guide := exportGuide()
	path := filepath.Join(t.TempDir(), "cards.csv")

	if err := NewExporter().ExportFlashcardsCSV(guide, path); err != nil {
		t.Fatalf("ExportFlashcardsCSV: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("opening output: %v", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("parsing CSV: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d rows, want 3", len(records))
	}
	if !reflect.DeepEqual(records[0], []string{"Front", "Back", "Tags"}) {
		t.Errorf("header = %v", records[0])
	}
	if !reflect.DeepEqual(records[1], []string{"covalent bond", "A shared pair of electrons", "key_term;bonding"}) {
		t.Errorf("first card = %v", records[1])
	}
}

func TestExportFlashcardsCSVEmpty(t *testing.T) {
	guide := exportGuide()
	guide.Flashcards = nil
	path := filepath.Join(t.TempDir(), "cards.csv")

	if err := NewExporter().ExportFlashcardsCSV(guide, path); err == nil {
		t.Error("empty flashcard set exported without error")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("CSV file created despite error")
	}
}

func TestExportPDF(t *testing.T) {
	guide := exportGuide()
	path := filepath.Join(t.TempDir(), "guide.pdf")

	if err := NewExporter().ExportPDF(guide, path); err != nil {
		t.Fatalf("ExportPDF: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("PDF file is empty")
	}
	if !strings.HasPrefix(string(data[:5]), "%PDF-") {
		t.Errorf("output does not start with PDF header: %q", data[:5])
	}
}

func TestCreateStudyPackage(t *testing.T) {
	guide := exportGuide()
	quiz := &Quiz{
		ID: "abcdefghijkl", Title: "Chemistry Quiz - Medium Level", Subject: "Chemistry",
		Difficulty: DifficultyMedium, TimeLimit: 10, PassingScore: 70,
		Questions: []Question{{ID: 1, Question: "What is an ion?", Type: QuestionShortAnswer, CorrectAnswer: "a charged atom", Points: 1, TimeEstimate: 120, Difficulty: DifficultyEasy}},
	}
	dir := filepath.Join(t.TempDir(), "package")

	got, err := NewExporter().CreateStudyPackage(guide, quiz, dir)
	if err != nil {
		t.Fatalf("CreateStudyPackage: %v", err)
	}
	if got != dir {
		t.Errorf("returned dir = %q, want %q", got, dir)
	}

	for _, name := range []string{
		"chemistry_study_guide.html",
		"chemistry_study_guide.md",
		"chemistry_study_guide.pdf",
		"chemistry_study_guide.json",
		"chemistry_study_guide_flashcards.csv",
		"chemistry_study_guide_quiz.json",
		"README.md",
	} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("package missing %s: %v", name, err)
		}
	}

	readme, err := os.ReadFile(filepath.Join(dir, "README.md"))
	if err != nil {
		t.Fatalf("reading README: %v", err)
	}
	if !strings.Contains(string(readme), "chemistry_study_guide_quiz.json - Practice quiz") {
		t.Error("README does not list the quiz file")
	}
}

func TestCreateStudyPackageWithoutQuiz(t *testing.T) {
	guide := exportGuide()
	guide.Flashcards = nil
	dir := filepath.Join(t.TempDir(), "package")

	if _, err := NewExporter().CreateStudyPackage(guide, nil, dir); err != nil {
		t.Fatalf("CreateStudyPackage: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "chemistry_study_guide_flashcards.csv")); !os.IsNotExist(err) {
		t.Error("flashcards CSV created for guide without flashcards")
	}
	if _, err := os.Stat(filepath.Join(dir, "chemistry_study_guide_quiz.json")); !os.IsNotExist(err) {
		t.Error("quiz JSON created without a quiz")
	}
}
