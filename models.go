package studyguide

import "time"

// Question types understood by the quiz scorer.
const (
	QuestionMultipleChoice = "multiple_choice"
	QuestionTrueFalse      = "true_false"
	QuestionShortAnswer    = "short_answer"
)

// Difficulty levels attached to questions and quizzes.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Student proficiency tiers derived from recent quiz history.
const (
	LevelBeginner     = "beginner"
	LevelIntermediate = "intermediate"
	LevelAdvanced     = "advanced"
)

// Section is a titled, contiguous span of document lines beginning at a
// detected heading.
type Section struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	StartLine int    `json:"start_line"`
	EndLine   int    `json:"end_line"`
}

// ContentMetadata carries descriptive counts for a processed document.
type ContentMetadata struct {
	FilePath     string `json:"file_path,omitempty"`
	FileType     string `json:"file_type,omitempty"`
	WordCount    int    `json:"word_count"`
	ChunkCount   int    `json:"chunk_count"`
	ConceptCount int    `json:"concept_count"`
	Fallback     bool   `json:"fallback,omitempty"`
}

// ProcessedContent is the output of the content extraction pipeline. It is
// built once per input document and treated as read-only afterwards.
type ProcessedContent struct {
	Text     string          `json:"text"`
	Chunks   []string        `json:"chunks"`
	Concepts []string        `json:"concepts"`
	KeyTerms []string        `json:"key_terms"`
	Sections []Section       `json:"sections"`
	Metadata ContentMetadata `json:"metadata"`
}

// Question represents a single quiz question of any supported type.
type Question struct {
	ID            int      `json:"id"`
	Question      string   `json:"question"`
	Type          string   `json:"type"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
	Points        int      `json:"points"`
	TimeEstimate  int      `json:"time_estimate"` // seconds
	Tags          []string `json:"tags"`
	Difficulty    string   `json:"difficulty_level"`
}

// QuizMetadata records how and from what a quiz was produced.
type QuizMetadata struct {
	CreatedAt    time.Time `json:"created_at"`
	SourceGuide  string    `json:"source_guide,omitempty"`
	GeneratedBy  string    `json:"generated_by"`
	Adaptive     bool      `json:"adaptive,omitempty"`
	WeakAreas    []string  `json:"weak_areas,omitempty"`
	StudentLevel string    `json:"student_level,omitempty"`
}

// Quiz is a fixed set of questions with policy metadata. A quiz is immutable
// once constructed; scoring never modifies it.
type Quiz struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	Subject      string       `json:"subject"`
	Difficulty   string       `json:"difficulty"`
	Questions    []Question   `json:"questions"`
	TimeLimit    int          `json:"time_limit"` // minutes
	PassingScore int          `json:"passing_score"`
	Metadata     QuizMetadata `json:"metadata"`
}

// QuestionResult is the per-question breakdown inside a QuizResult.
type QuestionResult struct {
	QuestionID     int      `json:"question_id"`
	Question       string   `json:"question"`
	UserAnswer     string   `json:"user_answer"`
	CorrectAnswer  string   `json:"correct_answer"`
	Correct        bool     `json:"correct"`
	PointsEarned   int      `json:"points_earned"`
	PointsPossible int      `json:"points_possible"`
	Explanation    string   `json:"explanation"`
	Tags           []string `json:"tags"`
	Difficulty     string   `json:"difficulty"`
}

// QuizResult is the outcome of scoring one set of submitted answers against a
// quiz. It is created once per evaluation and never mutated afterwards.
type QuizResult struct {
	QuizTitle        string           `json:"quiz_title"`
	Score            int              `json:"score"`
	TotalQuestions   int              `json:"total_questions"`
	Percentage       float64          `json:"percentage"`
	TimeTaken        int              `json:"time_taken,omitempty"` // seconds
	CorrectAnswers   []int            `json:"correct_answers"`
	IncorrectAnswers []int            `json:"incorrect_answers"`
	DetailedResults  []QuestionResult `json:"detailed_results"`
	Recommendations  []string         `json:"recommendations"`
}

// Concept is a salient idea drawn from source material. Concepts produced by
// the guide generator carry a definition; concepts promoted straight from term
// extraction carry only a name. Consumers branch on Detailed rather than
// probing individual fields.
type Concept struct {
	Name          string   `json:"name"`
	Definition    string   `json:"definition,omitempty"`
	Importance    string   `json:"importance,omitempty"`
	Relationships []string `json:"relationships,omitempty"`
}

// Detailed reports whether the concept carries a full definition.
func (c Concept) Detailed() bool {
	return c.Definition != ""
}

// ChapterSummary is a digest of one document section.
type ChapterSummary struct {
	Title     string `json:"title"`
	Summary   string `json:"summary"`
	StartLine int    `json:"start_line"`
	EndLine   int    `json:"end_line"`
}

// PracticeQuestion is an open practice prompt attached to a study guide.
type PracticeQuestion struct {
	Question       string   `json:"question"`
	Type           string   `json:"type"`
	Difficulty     string   `json:"difficulty"`
	CorrectAnswer  string   `json:"correct_answer"`
	Explanation    string   `json:"explanation"`
	ConceptsTested []string `json:"concepts_tested"`
}

// Flashcard is a front/back study card derived from key terms.
type Flashcard struct {
	Front      string   `json:"front"`
	Back       string   `json:"back"`
	Type       string   `json:"type"`
	Difficulty string   `json:"difficulty"`
	Tags       []string `json:"tags"`
}

// VisualAid describes a visualization a renderer could build from the guide.
// Rendering itself is out of scope; only the description is produced.
type VisualAid struct {
	Type        string   `json:"type"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Items       []string `json:"items,omitempty"`
}

// GuideMetadata records provenance and counts for a study guide.
type GuideMetadata struct {
	GeneratedBy    string `json:"generated_by"`
	SourceFile     string `json:"source_file,omitempty"`
	WordCount      int    `json:"word_count"`
	ConceptCount   int    `json:"concept_count"`
	QuestionCount  int    `json:"question_count"`
	FlashcardCount int    `json:"flashcard_count"`
}

// StudyGuide is a complete generated study guide.
type StudyGuide struct {
	Title             string             `json:"title"`
	Subject           string             `json:"subject"`
	Level             string             `json:"level"`
	Summary           string             `json:"summary"`
	KeyConcepts       []Concept          `json:"key_concepts"`
	ChapterSummaries  []ChapterSummary   `json:"chapter_summaries"`
	PracticeQuestions []PracticeQuestion `json:"practice_questions"`
	Flashcards        []Flashcard        `json:"flashcards"`
	VisualAids        []VisualAid        `json:"visual_aids"`
	Metadata          GuideMetadata      `json:"metadata"`
}
