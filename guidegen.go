package studyguide

import (
	"context"
	"fmt"
)

// GuideRequest carries the study guide parameters supplied by the caller.
type GuideRequest struct {
	Subject string
	Level   string
	Title   string
}

// GuideGenerator produces a study guide from processed document content.
// Implementations must not modify the content.
type GuideGenerator interface {
	GenerateStudyGuide(ctx context.Context, content *ProcessedContent, req GuideRequest) (*StudyGuide, error)
}

// TemplateGuideGenerator builds study guides directly from the extracted
// concepts, key terms, and sections without calling a language model. It is
// the offline fallback and never fails.
type TemplateGuideGenerator struct{}

// NewTemplateGuideGenerator creates a template-based guide generator.
func NewTemplateGuideGenerator() *TemplateGuideGenerator {
	return &TemplateGuideGenerator{}
}

// GenerateStudyGuide assembles a guide from the processed content alone.
func (g *TemplateGuideGenerator) GenerateStudyGuide(ctx context.Context, content *ProcessedContent, req GuideRequest) (*StudyGuide, error) {
	title := req.Title
	if title == "" {
		title = fmt.Sprintf("%s Study Guide", req.Subject)
	}

	concepts := templateConcepts(content.Concepts)
	questions := templatePracticeQuestions(content.Concepts, req.Subject)
	flashcards := templateFlashcards(content.KeyTerms)

	guide := &StudyGuide{
		Title:             title,
		Subject:           req.Subject,
		Level:             req.Level,
		Summary:           fmt.Sprintf("Summary for %s content covering key concepts and principles.", req.Subject),
		KeyConcepts:       concepts,
		ChapterSummaries:  templateChapterSummaries(content.Sections),
		PracticeQuestions: questions,
		Flashcards:        flashcards,
		VisualAids:        visualAidDescriptions(concepts),
		Metadata: GuideMetadata{
			GeneratedBy:    "template",
			SourceFile:     content.Metadata.FilePath,
			WordCount:      content.Metadata.WordCount,
			ConceptCount:   len(concepts),
			QuestionCount:  len(questions),
			FlashcardCount: len(flashcards),
		},
	}
	return guide, nil
}

func templateConcepts(names []string) []Concept {
	if len(names) > 10 {
		names = names[:10]
	}
	concepts := make([]Concept, 0, len(names))
	for _, name := range names {
		concepts = append(concepts, Concept{
			Name:       name,
			Definition: fmt.Sprintf("Important concept: %s", name),
			Importance: "Key term in the subject matter",
		})
	}
	return concepts
}

func templatePracticeQuestions(concepts []string, subject string) []PracticeQuestion {
	if len(concepts) > 5 {
		concepts = concepts[:5]
	}
	questions := make([]PracticeQuestion, 0, len(concepts))
	for _, concept := range concepts {
		questions = append(questions, PracticeQuestion{
			Question:       fmt.Sprintf("What is %s?", concept),
			Type:           QuestionShortAnswer,
			Difficulty:     DifficultyEasy,
			CorrectAnswer:  fmt.Sprintf("Definition and explanation of %s", concept),
			Explanation:    "Basic concept understanding",
			ConceptsTested: []string{concept},
		})
	}
	return questions
}

func templateFlashcards(terms []string) []Flashcard {
	if len(terms) > 10 {
		terms = terms[:10]
	}
	cards := make([]Flashcard, 0, len(terms))
	for _, term := range terms {
		cards = append(cards, Flashcard{
			Front:      term,
			Back:       fmt.Sprintf("Definition and explanation of %s", term),
			Type:       "term",
			Difficulty: DifficultyMedium,
			Tags:       []string{"key_term"},
		})
	}
	return cards
}

func templateChapterSummaries(sections []Section) []ChapterSummary {
	if len(sections) > 5 {
		sections = sections[:5]
	}
	summaries := make([]ChapterSummary, 0, len(sections))
	for _, section := range sections {
		summaries = append(summaries, ChapterSummary{
			Title:     section.Title,
			Summary:   truncateChars(section.Content, 500),
			StartLine: section.StartLine,
			EndLine:   section.EndLine,
		})
	}
	return summaries
}

// visualAidDescriptions describes visualizations a renderer could build
// from the guide's concepts. Rendering is out of scope here.
func visualAidDescriptions(concepts []Concept) []VisualAid {
	if len(concepts) == 0 {
		return nil
	}
	names := make([]string, 0, len(concepts))
	for _, c := range concepts {
		names = append(names, c.Name)
	}
	mapNames := names
	if len(mapNames) > 10 {
		mapNames = mapNames[:10]
	}
	cloudNames := names
	if len(cloudNames) > 20 {
		cloudNames = cloudNames[:20]
	}
	return []VisualAid{
		{
			Type:        "concept_map",
			Title:       "Key Concepts Mind Map",
			Description: "A visual representation showing relationships between key concepts",
			Items:       mapNames,
		},
		{
			Type:        "word_cloud",
			Title:       "Important Terms Cloud",
			Description: "Visual representation of the most important terms sized by relevance",
			Items:       cloudNames,
		},
		{
			Type:        "process_diagram",
			Title:       "Key Processes Flow Chart",
			Description: "Step-by-step visualization of important processes and procedures",
		},
	}
}

// truncateChars shortens s to at most n runes, appending an ellipsis when
// anything was cut.
func truncateChars(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
