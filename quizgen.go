package studyguide

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"
)

// DefaultQuestionCount is the number of questions generated when the caller
// does not specify one.
const DefaultQuestionCount = 10

// QuestionMaker produces quiz questions from a study guide or, for adaptive
// quizzes, from a student's weak areas.
type QuestionMaker interface {
	MakeQuestions(ctx context.Context, guide *StudyGuide, difficulty string, numQuestions int) ([]Question, error)
	MakeAdaptiveQuestions(ctx context.Context, subject string, weakAreas []string, studentLevel string, numQuestions int) ([]Question, error)
}

// QuizGenerator assembles quizzes from generated questions and previous
// results. A failing question maker degrades to template questions so quiz
// creation itself never fails.
type QuizGenerator struct {
	maker    QuestionMaker
	fallback *TemplateQuestionMaker
}

// NewQuizGenerator creates a quiz generator backed by the given question
// maker. A nil maker uses templates directly.
func NewQuizGenerator(maker QuestionMaker) *QuizGenerator {
	fallback := NewTemplateQuestionMaker()
	if maker == nil {
		maker = fallback
	}
	return &QuizGenerator{maker: maker, fallback: fallback}
}

// CreateQuizFromGuide builds a quiz covering the study guide's material.
// A zero timeLimit derives one from the question count, two minutes per
// question with a ten minute floor.
func (g *QuizGenerator) CreateQuizFromGuide(ctx context.Context, guide *StudyGuide, difficulty string, numQuestions, timeLimit int) (*Quiz, error) {
	if numQuestions <= 0 {
		numQuestions = DefaultQuestionCount
	}
	if difficulty == "" {
		difficulty = DifficultyMedium
	}

	questions, err := g.maker.MakeQuestions(ctx, guide, difficulty, numQuestions)
	if err != nil {
		VerboseLog("Question generation failed, using template questions: %v", err)
		questions, _ = g.fallback.MakeQuestions(ctx, guide, difficulty, numQuestions)
	}
	questions = SanitizeQuestions(questions)
	if len(questions) == 0 {
		return nil, fmt.Errorf("no valid questions generated for %s", guide.Subject)
	}

	if timeLimit <= 0 {
		timeLimit = len(questions) * 2
		if timeLimit < 10 {
			timeLimit = 10
		}
	}

	return &Quiz{
		ID:           generateQuizID(),
		Title:        fmt.Sprintf("%s Quiz - %s Level", guide.Subject, titleCase(difficulty)),
		Subject:      guide.Subject,
		Difficulty:   difficulty,
		Questions:    questions,
		TimeLimit:    timeLimit,
		PassingScore: 70,
		Metadata: QuizMetadata{
			CreatedAt:   time.Now(),
			SourceGuide: guide.Title,
			GeneratedBy: makerName(g.maker),
		},
	}, nil
}

// CreateAdaptiveQuiz builds a remediation quiz targeting the weak areas in
// the student's recent results. Adaptive quizzes allow three minutes per
// question and a lower passing score.
func (g *QuizGenerator) CreateAdaptiveQuiz(ctx context.Context, subject string, previousResults []QuizResult, numQuestions int) (*Quiz, error) {
	if numQuestions <= 0 {
		numQuestions = 5
	}
	weakAreas := AnalyzeWeakAreas(previousResults)
	studentLevel := DetermineStudentLevel(previousResults)

	questions, err := g.maker.MakeAdaptiveQuestions(ctx, subject, weakAreas, studentLevel, numQuestions)
	if err != nil {
		VerboseLog("Adaptive question generation failed, using template questions: %v", err)
		questions, _ = g.fallback.MakeAdaptiveQuestions(ctx, subject, weakAreas, studentLevel, numQuestions)
	}
	questions = SanitizeQuestions(questions)
	if len(questions) == 0 {
		return nil, fmt.Errorf("no valid adaptive questions generated for %s", subject)
	}

	return &Quiz{
		ID:           generateQuizID(),
		Title:        fmt.Sprintf("Adaptive %s Quiz", subject),
		Subject:      subject,
		Difficulty:   "adaptive",
		Questions:    questions,
		TimeLimit:    numQuestions * 3,
		PassingScore: 60,
		Metadata: QuizMetadata{
			CreatedAt:    time.Now(),
			GeneratedBy:  makerName(g.maker),
			Adaptive:     true,
			WeakAreas:    weakAreas,
			StudentLevel: studentLevel,
		},
	}, nil
}

// TemplateQuestionMaker builds questions from study guide structure without
// a language model. It is deterministic apart from quiz IDs and never
// returns an error.
type TemplateQuestionMaker struct{}

// NewTemplateQuestionMaker creates a template question maker.
func NewTemplateQuestionMaker() *TemplateQuestionMaker {
	return &TemplateQuestionMaker{}
}

// MakeQuestions derives questions from the guide's concepts and practice
// questions, padding with generic review questions to reach the count.
func (m *TemplateQuestionMaker) MakeQuestions(ctx context.Context, guide *StudyGuide, difficulty string, numQuestions int) ([]Question, error) {
	var questions []Question

	// Multiple choice from concepts, up to half the quiz.
	concepts := guide.KeyConcepts
	if len(concepts) > numQuestions/2 {
		concepts = concepts[:numQuestions/2]
	}
	for _, concept := range concepts {
		def := concept.Definition
		if def == "" {
			def = fmt.Sprintf("Important concept in %s", guide.Subject)
		}
		questions = append(questions, Question{
			ID:       len(questions) + 1,
			Question: fmt.Sprintf("What is %s?", concept.Name),
			Type:     QuestionMultipleChoice,
			Options: []string{
				fmt.Sprintf("A) %s", def),
				"B) A different concept entirely",
				"C) An unrelated term",
				"D) None of the above",
			},
			CorrectAnswer: "A",
			Explanation:   fmt.Sprintf("%s is defined as: %s", concept.Name, def),
			Points:        1,
			TimeEstimate:  60,
			Tags:          []string{concept.Name},
			Difficulty:    difficulty,
		})
	}

	// True/false practice questions carry over directly.
	for _, pq := range guide.PracticeQuestions {
		if len(questions) >= numQuestions {
			break
		}
		if pq.Type != QuestionTrueFalse {
			continue
		}
		answer := pq.CorrectAnswer
		if answer == "" {
			answer = "True"
		}
		explanation := pq.Explanation
		if explanation == "" {
			explanation = "See study materials"
		}
		diff := pq.Difficulty
		if diff == "" {
			diff = difficulty
		}
		questions = append(questions, Question{
			ID:            len(questions) + 1,
			Question:      pq.Question,
			Type:          QuestionTrueFalse,
			Options:       []string{"True", "False"},
			CorrectAnswer: answer,
			Explanation:   explanation,
			Points:        1,
			TimeEstimate:  45,
			Tags:          pq.ConceptsTested,
			Difficulty:    diff,
		})
	}

	// Generic questions fill the remaining slots. Numbering keeps them
	// distinct through duplicate filtering.
	for len(questions) < numQuestions {
		questions = append(questions, Question{
			ID:       len(questions) + 1,
			Question: fmt.Sprintf("Question %d: Which of the following is a key concept in %s?", len(questions)+1, guide.Subject),
			Type:     QuestionMultipleChoice,
			Options: []string{
				"A) Fundamental principle",
				"B) Basic theory",
				"C) Core concept",
				"D) All of the above",
			},
			CorrectAnswer: "D",
			Explanation:   fmt.Sprintf("All options represent important aspects of %s", guide.Subject),
			Points:        1,
			TimeEstimate:  60,
			Tags:          []string{"general"},
			Difficulty:    difficulty,
		})
	}
	return questions, nil
}

// MakeAdaptiveQuestions builds remediation questions for each weak area,
// worth extra points, padding with general review prompts.
func (m *TemplateQuestionMaker) MakeAdaptiveQuestions(ctx context.Context, subject string, weakAreas []string, studentLevel string, numQuestions int) ([]Question, error) {
	var questions []Question

	areas := weakAreas
	if len(areas) > numQuestions {
		areas = areas[:numQuestions]
	}
	for _, area := range areas {
		questions = append(questions, Question{
			ID:       len(questions) + 1,
			Question: fmt.Sprintf("Let's review %s in %s. What is the key principle?", area, subject),
			Type:     QuestionMultipleChoice,
			Options: []string{
				fmt.Sprintf("A) Basic definition of %s", area),
				fmt.Sprintf("B) Advanced application of %s", area),
				fmt.Sprintf("C) Related concept to %s", area),
				fmt.Sprintf("D) All aspects of %s", area),
			},
			CorrectAnswer: "D",
			Explanation:   fmt.Sprintf("Understanding %s requires knowledge of all these aspects", area),
			Points:        2,
			TimeEstimate:  90,
			Tags:          []string{area},
			Difficulty:    DifficultyMedium,
		})
	}

	for len(questions) < numQuestions {
		questions = append(questions, Question{
			ID:            len(questions) + 1,
			Question:      fmt.Sprintf("Review question %d for %s: Which concept needs more practice?", len(questions)+1, subject),
			Type:          QuestionShortAnswer,
			CorrectAnswer: "Any concept that was previously answered incorrectly",
			Explanation:   "Focus on areas where you scored lowest",
			Points:        1,
			TimeEstimate:  120,
			Tags:          []string{"review"},
			Difficulty:    DifficultyEasy,
		})
	}
	return questions, nil
}

func generateQuizID() string {
	const charset = "abcdefghijklmnopqrstuvwxyz0123456789"
	b := make([]byte, 12)
	for i := range b {
		b[i] = charset[rand.Intn(len(charset))]
	}
	return string(b)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func makerName(m QuestionMaker) string {
	if _, ok := m.(*TemplateQuestionMaker); ok {
		return "template"
	}
	return "ai"
}
