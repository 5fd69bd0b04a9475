package studyguide

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
)

// CreateRequest describes one study guide creation run. Either InputFile or
// InputText must be set.
type CreateRequest struct {
	InputFile     string   `validate:"required_without=InputText"`
	InputText     string   `validate:"required_without=InputFile"`
	Subject       string   `validate:"required"`
	Level         string   `validate:"omitempty,oneof=beginner intermediate advanced high_school undergraduate graduate"`
	Title         string   `validate:"omitempty,max=200"`
	Difficulty    string   `validate:"omitempty,oneof=easy medium hard"`
	NumQuestions  int      `validate:"omitempty,min=1,max=50"`
	IncludeQuiz   bool     ``
	ExportFormats []string `validate:"omitempty,dive,oneof=html markdown pdf json csv"`
	OutputDir     string   ``
}

// CreatorConfig carries the tunables for a StudyGuideCreator.
type CreatorConfig struct {
	APIKey       string
	Model        string
	ChunkSize    int
	ChunkOverlap int
}

// CreateResult is everything produced by one creation run.
type CreateResult struct {
	Guide         *StudyGuide
	Quiz          *Quiz
	Content       *ProcessedContent
	ExportedFiles []string
	PackageDir    string
}

// StudyGuideCreator orchestrates the full pipeline from document to
// exported study package. With an API key it generates guides and quizzes
// through the OpenAI API and falls back to templates on failure; without
// one it uses templates throughout.
type StudyGuideCreator struct {
	processor *ContentProcessor
	guides    GuideGenerator
	quizzes   *QuizGenerator
	exporter  *Exporter
	validate  *validator.Validate
	logger    *LLMLogger
	remote    bool
}

// NewStudyGuideCreator creates a creator from the given configuration.
func NewStudyGuideCreator(cfg CreatorConfig) (*StudyGuideCreator, error) {
	processor, err := NewContentProcessor(cfg.ChunkSize, cfg.ChunkOverlap)
	if err != nil {
		return nil, fmt.Errorf("failed to create content processor: %w", err)
	}

	creator := &StudyGuideCreator{
		processor: processor,
		exporter:  NewExporter(),
		validate:  validator.New(),
	}

	if cfg.APIKey != "" {
		runID := generateQuizID()
		logger, err := NewLLMLogger(runID, "study guide generation")
		if err != nil {
			VerboseLog("Failed to create LLM logger, continuing without one: %v", err)
		}
		creator.logger = logger
		creator.guides = NewRemoteGuideGenerator(cfg.APIKey, cfg.Model, logger)
		creator.quizzes = NewQuizGenerator(NewRemoteQuestionMaker(cfg.APIKey, cfg.Model, logger))
		creator.remote = true
	} else {
		creator.guides = NewTemplateGuideGenerator()
		creator.quizzes = NewQuizGenerator(nil)
	}
	return creator, nil
}

// Close releases the creator's LLM log file, if any.
func (c *StudyGuideCreator) Close() error {
	return c.logger.Close()
}

// CreateStudyGuide runs the full pipeline for one request: process the
// input, generate the guide, optionally generate a quiz, export the
// requested formats, and assemble the study package.
func (c *StudyGuideCreator) CreateStudyGuide(ctx context.Context, req CreateRequest) (*CreateResult, error) {
	if err := c.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}
	if req.Level == "" {
		req.Level = "undergraduate"
	}
	if req.Difficulty == "" {
		req.Difficulty = DifficultyMedium
	}
	if req.OutputDir == "" {
		req.OutputDir = "output"
	}

	content := c.processInput(req)
	VerboseLog("Processed %d words into %d chunks", content.Metadata.WordCount, content.Metadata.ChunkCount)

	guide, err := c.guides.GenerateStudyGuide(ctx, content, GuideRequest{
		Subject: req.Subject,
		Level:   req.Level,
		Title:   req.Title,
	})
	if err != nil {
		// The single remote fallback point. Template generation never fails.
		VerboseLog("Guide generation failed, falling back to template: %v", err)
		guide, _ = NewTemplateGuideGenerator().GenerateStudyGuide(ctx, content, GuideRequest{
			Subject: req.Subject,
			Level:   req.Level,
			Title:   req.Title,
		})
	}

	result := &CreateResult{Guide: guide, Content: content}

	if req.IncludeQuiz {
		quiz, err := c.quizzes.CreateQuizFromGuide(ctx, guide, req.Difficulty, req.NumQuestions, 0)
		if err != nil {
			return nil, fmt.Errorf("failed to create quiz: %w", err)
		}
		result.Quiz = quiz
	}

	if err := os.MkdirAll(req.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	exported, err := c.exportFormats(guide, result.Quiz, req)
	if err != nil {
		return nil, err
	}
	result.ExportedFiles = exported

	packageDir, err := c.exporter.CreateStudyPackage(guide, result.Quiz,
		filepath.Join(req.OutputDir, packageBaseName(guide.Title)))
	if err != nil {
		return nil, fmt.Errorf("failed to create study package: %w", err)
	}
	result.PackageDir = packageDir
	return result, nil
}

// CreateAdaptiveQuiz builds a remediation quiz from previous results.
func (c *StudyGuideCreator) CreateAdaptiveQuiz(ctx context.Context, subject string, previousResults []QuizResult, numQuestions int) (*Quiz, error) {
	return c.quizzes.CreateAdaptiveQuiz(ctx, subject, previousResults, numQuestions)
}

// EvaluateQuiz grades submitted answers against a quiz.
func (c *StudyGuideCreator) EvaluateQuiz(quiz *Quiz, answers map[int]string, timeTaken int) *QuizResult {
	return EvaluateQuiz(quiz, answers, timeTaken)
}

// processInput extracts content from the request's file or inline text. A
// failed extraction degrades to generic placeholder content so the rest of
// the pipeline still produces a usable package.
func (c *StudyGuideCreator) processInput(req CreateRequest) *ProcessedContent {
	if req.InputFile != "" {
		content, err := c.processor.ProcessDocument(req.InputFile, TypeAuto)
		if err == nil {
			return content
		}
		VerboseLog("Document processing failed, using fallback content: %v", err)
		return fallbackContent(req.Subject, req.Level)
	}
	return c.processor.ProcessText(req.InputText)
}

func fallbackContent(subject, level string) *ProcessedContent {
	text := fmt.Sprintf(
		"This is a study guide for %s at the %s level. "+
			"Key topics in %s include fundamental concepts, theories, and applications. "+
			"Students should focus on understanding core principles and their practical applications.",
		subject, level, subject)
	return &ProcessedContent{
		Text:     text,
		Chunks:   []string{text},
		Concepts: []string{subject, "principles", "applications"},
		KeyTerms: []string{"concepts", "theories", "applications", "principles"},
		Sections: []Section{{Title: fmt.Sprintf("%s Overview", subject), Content: text}},
		Metadata: ContentMetadata{
			WordCount: len(strings.Fields(text)),
			Fallback:  true,
		},
	}
}

func (c *StudyGuideCreator) exportFormats(guide *StudyGuide, quiz *Quiz, req CreateRequest) ([]string, error) {
	formats := req.ExportFormats
	if len(formats) == 0 {
		formats = []string{"html", "pdf", "json"}
	}
	baseName := packageBaseName(guide.Title)

	var files []string
	for _, format := range formats {
		var path string
		var err error
		switch format {
		case "html":
			path = filepath.Join(req.OutputDir, baseName+".html")
			err = c.exporter.ExportHTML(guide, path)
		case "markdown":
			path = filepath.Join(req.OutputDir, baseName+".md")
			err = c.exporter.ExportMarkdown(guide, path)
		case "pdf":
			path = filepath.Join(req.OutputDir, baseName+".pdf")
			err = c.exporter.ExportPDF(guide, path)
		case "json":
			path = filepath.Join(req.OutputDir, baseName+".json")
			err = c.exporter.ExportJSON(guide, path)
		case "csv":
			path = filepath.Join(req.OutputDir, baseName+"_flashcards.csv")
			err = c.exporter.ExportFlashcardsCSV(guide, path)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to export %s: %w", format, err)
		}
		files = append(files, path)
	}

	if quiz != nil {
		path := filepath.Join(req.OutputDir, baseName+"_quiz.json")
		if err := c.exporter.ExportQuizJSON(quiz, path); err != nil {
			return nil, fmt.Errorf("failed to export quiz: %w", err)
		}
		files = append(files, path)
	}
	return files, nil
}
