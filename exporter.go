package studyguide

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	htmltemplate "html/template"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// Exporter writes study guides and quizzes to the supported output formats.
type Exporter struct{}

// NewExporter creates an exporter.
func NewExporter() *Exporter {
	return &Exporter{}
}

type exportData struct {
	Guide          *StudyGuide
	GenerationDate string
}

const markdownTemplate = `# {{.Guide.Title}}

**Subject:** {{.Guide.Subject}}
**Level:** {{.Guide.Level}}
**Generated:** {{.GenerationDate}}

---

## Overview

{{.Guide.Summary}}
{{if .Guide.KeyConcepts}}
## Key Concepts
{{range .Guide.KeyConcepts}}
### {{.Name}}
{{if .Detailed}}
**Definition:** {{.Definition}}
{{if .Importance}}
**Why it matters:** {{.Importance}}
{{end}}{{if .Relationships}}
**Related concepts:** {{join .Relationships ", "}}
{{end}}{{end}}{{end}}{{end}}{{if .Guide.ChapterSummaries}}
## Chapter Summaries
{{range .Guide.ChapterSummaries}}
### {{.Title}}

{{.Summary}}
{{end}}{{end}}{{if .Guide.PracticeQuestions}}
## Practice Questions
{{range $i, $q := .Guide.PracticeQuestions}}
### Question {{inc $i}}

**{{$q.Question}}**

**Answer:** {{$q.CorrectAnswer}}
{{if $q.Explanation}}
*Explanation:* {{$q.Explanation}}
{{end}}
*Difficulty:* {{$q.Difficulty}} | *Type:* {{$q.Type}}

---
{{end}}{{end}}{{if .Guide.Flashcards}}
## Flashcards
{{range $i, $card := .Guide.Flashcards}}
### Card {{inc $i}}

**Front:** {{$card.Front}}

**Back:** {{$card.Back}}
{{if $card.Tags}}
*Tags:* {{join $card.Tags ", "}}
{{end}}
---
{{end}}{{end}}`

const htmlTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Guide.Title}}</title>
<style>
body { font-family: Georgia, serif; max-width: 800px; margin: 0 auto; padding: 2em; color: #222; }
h1 { border-bottom: 2px solid #446; }
h2 { color: #446; margin-top: 1.5em; }
.meta { color: #666; font-size: 0.9em; }
.concept, .question, .flashcard { background: #f7f7fa; border-left: 4px solid #446; margin: 1em 0; padding: 0.5em 1em; }
.answer { font-weight: bold; }
.tags { color: #888; font-size: 0.85em; }
</style>
</head>
<body>
<h1>{{.Guide.Title}}</h1>
<p class="meta">Subject: {{.Guide.Subject}} | Level: {{.Guide.Level}} | Generated: {{.GenerationDate}}</p>

<h2>Overview</h2>
<p>{{.Guide.Summary}}</p>
{{if .Guide.KeyConcepts}}
<h2>Key Concepts</h2>
{{range .Guide.KeyConcepts}}
<div class="concept">
<h3>{{.Name}}</h3>
{{if .Detailed}}<p><strong>Definition:</strong> {{.Definition}}</p>{{end}}
{{if .Importance}}<p><strong>Why it matters:</strong> {{.Importance}}</p>{{end}}
</div>
{{end}}{{end}}
{{if .Guide.ChapterSummaries}}
<h2>Chapter Summaries</h2>
{{range .Guide.ChapterSummaries}}
<h3>{{.Title}}</h3>
<p>{{.Summary}}</p>
{{end}}{{end}}
{{if .Guide.PracticeQuestions}}
<h2>Practice Questions</h2>
{{range $i, $q := .Guide.PracticeQuestions}}
<div class="question">
<p><strong>{{$q.Question}}</strong></p>
<p class="answer">Answer: {{$q.CorrectAnswer}}</p>
{{if $q.Explanation}}<p><em>{{$q.Explanation}}</em></p>{{end}}
</div>
{{end}}{{end}}
{{if .Guide.Flashcards}}
<h2>Flashcards</h2>
{{range .Guide.Flashcards}}
<div class="flashcard">
<p><strong>Front:</strong> {{.Front}}</p>
<p><strong>Back:</strong> {{.Back}}</p>
{{if .Tags}}<p class="tags">{{join .Tags ", "}}</p>{{end}}
</div>
{{end}}{{end}}
</body>
</html>`

var markdownTmpl = template.Must(template.New("markdown").Funcs(template.FuncMap{
	"join": strings.Join,
	"inc":  func(i int) int { return i + 1 },
}).Parse(markdownTemplate))

var htmlTmpl = htmltemplate.Must(htmltemplate.New("html").Funcs(htmltemplate.FuncMap{
	"join": strings.Join,
	"inc":  func(i int) int { return i + 1 },
}).Parse(htmlTemplate))

// ExportMarkdown writes the study guide as a Markdown document.
func (e *Exporter) ExportMarkdown(guide *StudyGuide, outputPath string) error {
	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create markdown file: %w", err)
	}
	defer f.Close()

	data := exportData{Guide: guide, GenerationDate: time.Now().Format("2006-01-02 15:04")}
	if err := markdownTmpl.Execute(f, data); err != nil {
		return fmt.Errorf("failed to render markdown: %w", err)
	}
	return nil
}

// ExportHTML writes the study guide as a standalone HTML page.
func (e *Exporter) ExportHTML(guide *StudyGuide, outputPath string) error {
	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create HTML file: %w", err)
	}
	defer f.Close()

	data := exportData{Guide: guide, GenerationDate: time.Now().Format("2006-01-02 15:04")}
	if err := htmlTmpl.Execute(f, data); err != nil {
		return fmt.Errorf("failed to render HTML: %w", err)
	}
	return nil
}

// ExportJSON writes the study guide as indented JSON.
func (e *Exporter) ExportJSON(guide *StudyGuide, outputPath string) error {
	data, err := json.MarshalIndent(guide, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal guide: %w", err)
	}
	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write JSON file: %w", err)
	}
	return nil
}

// ExportQuizJSON writes a quiz as indented JSON.
func (e *Exporter) ExportQuizJSON(quiz *Quiz, outputPath string) error {
	data, err := json.MarshalIndent(quiz, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal quiz: %w", err)
	}
	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write quiz JSON file: %w", err)
	}
	return nil
}

// ExportPDF writes a printable PDF version of the study guide. Key concepts
// are capped at ten and practice questions at five to keep the document
// short.
func (e *Exporter) ExportPDF(guide *StudyGuide, outputPath string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Arial", "I", 8)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Arial", "B", 18)
	pdf.CellFormat(0, 15, tr(guide.Title), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 12)
	pdf.CellFormat(0, 10, tr(fmt.Sprintf("Subject: %s | Level: %s", guide.Subject, guide.Level)), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 10, fmt.Sprintf("Generated: %s", time.Now().Format("2006-01-02 15:04")), "", 1, "C", false, 0, "")
	pdf.Ln(5)

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 10, "Overview", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.MultiCell(0, 6, tr(guide.Summary), "", "L", false)
	pdf.Ln(5)

	if len(guide.KeyConcepts) > 0 {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, "Key Concepts", "", 1, "L", false, 0, "")
		concepts := guide.KeyConcepts
		if len(concepts) > 10 {
			concepts = concepts[:10]
		}
		for i, concept := range concepts {
			pdf.SetFont("Arial", "B", 12)
			pdf.CellFormat(0, 8, tr(fmt.Sprintf("%d. %s", i+1, concept.Name)), "", 1, "L", false, 0, "")
			if concept.Detailed() {
				pdf.SetFont("Arial", "", 11)
				pdf.MultiCell(0, 6, tr(concept.Definition), "", "L", false)
			}
			pdf.Ln(3)
		}
	}

	if len(guide.PracticeQuestions) > 0 {
		pdf.AddPage()
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, "Practice Questions", "", 1, "L", false, 0, "")
		questions := guide.PracticeQuestions
		if len(questions) > 5 {
			questions = questions[:5]
		}
		for i, q := range questions {
			pdf.SetFont("Arial", "B", 12)
			pdf.CellFormat(0, 8, fmt.Sprintf("Question %d:", i+1), "", 1, "L", false, 0, "")
			pdf.SetFont("Arial", "", 11)
			pdf.MultiCell(0, 6, tr(q.Question), "", "L", false)
			pdf.SetFont("Arial", "B", 11)
			pdf.MultiCell(0, 6, tr(fmt.Sprintf("Answer: %s", q.CorrectAnswer)), "", "L", false)
			pdf.Ln(5)
		}
	}

	if err := pdf.OutputFileAndClose(outputPath); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	return nil
}

// ExportFlashcardsCSV writes the guide's flashcards as a Front,Back,Tags
// CSV importable into spaced repetition tools.
func (e *Exporter) ExportFlashcardsCSV(guide *StudyGuide, outputPath string) error {
	if len(guide.Flashcards) == 0 {
		return fmt.Errorf("no flashcards available to export")
	}
	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"Front", "Back", "Tags"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, card := range guide.Flashcards {
		record := []string{card.Front, card.Back, strings.Join(card.Tags, ";")}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write flashcard: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}

// CreateStudyPackage writes the guide in every supported format, plus the
// quiz when given, into outputDir and returns the directory path.
func (e *Exporter) CreateStudyPackage(guide *StudyGuide, quiz *Quiz, outputDir string) (string, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create package directory: %w", err)
	}
	baseName := packageBaseName(guide.Title)

	if err := e.ExportHTML(guide, filepath.Join(outputDir, baseName+".html")); err != nil {
		return "", err
	}
	if err := e.ExportMarkdown(guide, filepath.Join(outputDir, baseName+".md")); err != nil {
		return "", err
	}
	if err := e.ExportPDF(guide, filepath.Join(outputDir, baseName+".pdf")); err != nil {
		return "", err
	}
	if err := e.ExportJSON(guide, filepath.Join(outputDir, baseName+".json")); err != nil {
		return "", err
	}
	if len(guide.Flashcards) > 0 {
		if err := e.ExportFlashcardsCSV(guide, filepath.Join(outputDir, baseName+"_flashcards.csv")); err != nil {
			return "", err
		}
	}
	if quiz != nil {
		if err := e.ExportQuizJSON(quiz, filepath.Join(outputDir, baseName+"_quiz.json")); err != nil {
			return "", err
		}
	}

	readme := fmt.Sprintf(`# %s - Study Package

This package contains study materials for %s.

## Contents

- %s.html - HTML study guide
- %s.md - Markdown version for easy editing
- %s.pdf - Printable PDF version
- %s.json - Machine-readable data format
`, guide.Title, guide.Subject, baseName, baseName, baseName, baseName)
	if len(guide.Flashcards) > 0 {
		readme += fmt.Sprintf("- %s_flashcards.csv - Flashcards for spaced repetition tools\n", baseName)
	}
	if quiz != nil {
		readme += fmt.Sprintf("- %s_quiz.json - Practice quiz\n", baseName)
	}
	if err := os.WriteFile(filepath.Join(outputDir, "README.md"), []byte(readme), 0644); err != nil {
		return "", fmt.Errorf("failed to write package README: %w", err)
	}
	return outputDir, nil
}

func packageBaseName(title string) string {
	return strings.ToLower(strings.ReplaceAll(title, " ", "_"))
}
