package studyguide

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/pkoukk/tiktoken-go"
	openai "github.com/sashabaranov/go-openai"
)

// Token budgets for content passed to the model.
const (
	guideContentTokens = 3000
	quizContentTokens  = 2500
)

// truncateTokens cuts text down to at most maxTokens tokens for the given
// model. When no encoding is known for the model it falls back to a rough
// four characters per token budget.
func truncateTokens(text, model string, maxTokens int) string {
	enc, err := tiktoken.EncodingForModel(model)
	if err != nil {
		limit := maxTokens * 4
		if len(text) <= limit {
			return text
		}
		for limit > 0 && !utf8.RuneStart(text[limit]) {
			limit--
		}
		return text[:limit]
	}
	tokens := enc.Encode(text, nil, nil)
	if len(tokens) <= maxTokens {
		return text
	}
	return enc.Decode(tokens[:maxTokens])
}

// RemoteGuideGenerator generates study guides with an OpenAI chat model.
type RemoteGuideGenerator struct {
	client *openai.Client
	model  string
	logger *LLMLogger
}

// NewRemoteGuideGenerator creates a guide generator backed by the OpenAI
// API. An empty model defaults to GPT-3.5 Turbo.
func NewRemoteGuideGenerator(apiKey, model string, logger *LLMLogger) *RemoteGuideGenerator {
	if model == "" {
		model = openai.GPT3Dot5Turbo
	}
	return &RemoteGuideGenerator{
		client: openai.NewClient(apiKey),
		model:  model,
		logger: logger,
	}
}

// GenerateStudyGuide asks the model for a complete study guide in one tool
// call. Errors are returned to the caller, which is expected to fall back
// to template generation.
func (g *RemoteGuideGenerator) GenerateStudyGuide(ctx context.Context, content *ProcessedContent, req GuideRequest) (*StudyGuide, error) {
	title := req.Title
	if title == "" {
		title = fmt.Sprintf("%s Study Guide", req.Subject)
	}

	prompt := g.buildPrompt(content, req)
	g.logger.LogLLMRequest("guide", prompt)

	resp, err := g.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: g.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: "You are an expert educator who creates clear, comprehensive study guides. Always return your guide through the submit_study_guide tool.",
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Tools: []openai.Tool{
				{
					Type: openai.ToolTypeFunction,
					Function: &openai.FunctionDefinition{
						Name:        "submit_study_guide",
						Description: "Submit the generated study guide",
						Parameters: map[string]interface{}{
							"type": "object",
							"properties": map[string]interface{}{
								"summary": map[string]interface{}{
									"type":        "string",
									"description": "Overall summary of the material, two to four paragraphs",
								},
								"key_concepts": map[string]interface{}{
									"type": "array",
									"items": map[string]interface{}{
										"type": "object",
										"properties": map[string]interface{}{
											"name":       map[string]interface{}{"type": "string"},
											"definition": map[string]interface{}{"type": "string"},
											"importance": map[string]interface{}{"type": "string"},
											"relationships": map[string]interface{}{
												"type":  "array",
												"items": map[string]interface{}{"type": "string"},
											},
										},
										"required": []string{"name", "definition"},
									},
								},
								"chapter_summaries": map[string]interface{}{
									"type": "array",
									"items": map[string]interface{}{
										"type": "object",
										"properties": map[string]interface{}{
											"title":   map[string]interface{}{"type": "string"},
											"summary": map[string]interface{}{"type": "string"},
										},
										"required": []string{"title", "summary"},
									},
								},
								"practice_questions": map[string]interface{}{
									"type": "array",
									"items": map[string]interface{}{
										"type": "object",
										"properties": map[string]interface{}{
											"question":       map[string]interface{}{"type": "string"},
											"type":           map[string]interface{}{"type": "string"},
											"difficulty":     map[string]interface{}{"type": "string"},
											"correct_answer": map[string]interface{}{"type": "string"},
											"explanation":    map[string]interface{}{"type": "string"},
											"concepts_tested": map[string]interface{}{
												"type":  "array",
												"items": map[string]interface{}{"type": "string"},
											},
										},
										"required": []string{"question", "correct_answer"},
									},
								},
								"flashcards": map[string]interface{}{
									"type": "array",
									"items": map[string]interface{}{
										"type": "object",
										"properties": map[string]interface{}{
											"front": map[string]interface{}{"type": "string"},
											"back":  map[string]interface{}{"type": "string"},
										},
										"required": []string{"front", "back"},
									},
								},
							},
							"required": []string{"summary", "key_concepts"},
						},
					},
				},
			},
			ToolChoice: openai.ToolChoice{
				Type: openai.ToolTypeFunction,
				Function: openai.ToolFunction{
					Name: "submit_study_guide",
				},
			},
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate study guide: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from model")
	}
	choice := resp.Choices[0]
	if len(choice.Message.ToolCalls) == 0 {
		return nil, fmt.Errorf("no tool calls in response")
	}
	toolCall := choice.Message.ToolCalls[0]
	if toolCall.Function.Name != "submit_study_guide" {
		return nil, fmt.Errorf("unexpected tool call: %s", toolCall.Function.Name)
	}
	g.logger.LogLLMResponse("guide", toolCall.Function.Arguments)

	var args struct {
		Summary     string `json:"summary"`
		KeyConcepts []struct {
			Name          string   `json:"name"`
			Definition    string   `json:"definition"`
			Importance    string   `json:"importance"`
			Relationships []string `json:"relationships"`
		} `json:"key_concepts"`
		ChapterSummaries []struct {
			Title   string `json:"title"`
			Summary string `json:"summary"`
		} `json:"chapter_summaries"`
		PracticeQuestions []struct {
			Question       string   `json:"question"`
			Type           string   `json:"type"`
			Difficulty     string   `json:"difficulty"`
			CorrectAnswer  string   `json:"correct_answer"`
			Explanation    string   `json:"explanation"`
			ConceptsTested []string `json:"concepts_tested"`
		} `json:"practice_questions"`
		Flashcards []struct {
			Front string `json:"front"`
			Back  string `json:"back"`
		} `json:"flashcards"`
	}
	if err := json.Unmarshal([]byte(toolCall.Function.Arguments), &args); err != nil {
		return nil, fmt.Errorf("failed to parse tool arguments: %w", err)
	}
	if strings.TrimSpace(args.Summary) == "" || len(args.KeyConcepts) == 0 {
		return nil, fmt.Errorf("model returned an incomplete study guide")
	}

	guide := &StudyGuide{
		Title:   title,
		Subject: req.Subject,
		Level:   req.Level,
		Summary: args.Summary,
	}
	for _, c := range args.KeyConcepts {
		guide.KeyConcepts = append(guide.KeyConcepts, Concept{
			Name:          c.Name,
			Definition:    c.Definition,
			Importance:    c.Importance,
			Relationships: c.Relationships,
		})
	}
	for i, cs := range args.ChapterSummaries {
		summary := ChapterSummary{Title: cs.Title, Summary: cs.Summary}
		if i < len(content.Sections) {
			summary.StartLine = content.Sections[i].StartLine
			summary.EndLine = content.Sections[i].EndLine
		}
		guide.ChapterSummaries = append(guide.ChapterSummaries, summary)
	}
	for _, pq := range args.PracticeQuestions {
		qType := pq.Type
		if qType == "" {
			qType = QuestionShortAnswer
		}
		difficulty := pq.Difficulty
		if difficulty == "" {
			difficulty = DifficultyMedium
		}
		guide.PracticeQuestions = append(guide.PracticeQuestions, PracticeQuestion{
			Question:       pq.Question,
			Type:           qType,
			Difficulty:     difficulty,
			CorrectAnswer:  pq.CorrectAnswer,
			Explanation:    pq.Explanation,
			ConceptsTested: pq.ConceptsTested,
		})
	}
	for _, fc := range args.Flashcards {
		guide.Flashcards = append(guide.Flashcards, Flashcard{
			Front:      fc.Front,
			Back:       fc.Back,
			Type:       "term",
			Difficulty: DifficultyMedium,
			Tags:       []string{"key_term"},
		})
	}
	guide.VisualAids = visualAidDescriptions(guide.KeyConcepts)
	guide.Metadata = GuideMetadata{
		GeneratedBy:    "ai",
		SourceFile:     content.Metadata.FilePath,
		WordCount:      content.Metadata.WordCount,
		ConceptCount:   len(guide.KeyConcepts),
		QuestionCount:  len(guide.PracticeQuestions),
		FlashcardCount: len(guide.Flashcards),
	}
	return guide, nil
}

func (g *RemoteGuideGenerator) buildPrompt(content *ProcessedContent, req GuideRequest) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Create a study guide for %s at the %s level.\n\n", req.Subject, req.Level))
	if len(content.Concepts) > 0 {
		sb.WriteString(fmt.Sprintf("Detected key concepts: %s\n", strings.Join(content.Concepts, ", ")))
	}
	if len(content.KeyTerms) > 0 {
		sb.WriteString(fmt.Sprintf("Detected key terms: %s\n", strings.Join(content.KeyTerms, ", ")))
	}
	if len(content.Sections) > 0 {
		titles := make([]string, 0, len(content.Sections))
		for _, s := range content.Sections {
			titles = append(titles, s.Title)
		}
		sb.WriteString(fmt.Sprintf("Document sections: %s\n", strings.Join(titles, "; ")))
	}
	sb.WriteString("\nSource material:\n")
	sb.WriteString(truncateTokens(content.Text, g.model, guideContentTokens))
	sb.WriteString("\n\nRequirements:\n")
	sb.WriteString("- Summarize the material, then define each key concept precisely\n")
	sb.WriteString("- Write one chapter summary per document section, in order\n")
	sb.WriteString("- Practice questions must be answerable from the material alone\n")
	sb.WriteString("- Flashcards should cover the most important terms\n")
	sb.WriteString("- Use the submit_study_guide tool to return the guide\n")

	return sb.String()
}

// RemoteQuestionMaker generates quiz questions with an OpenAI chat model.
type RemoteQuestionMaker struct {
	client *openai.Client
	model  string
	logger *LLMLogger
}

// NewRemoteQuestionMaker creates a question maker backed by the OpenAI API.
// An empty model defaults to GPT-3.5 Turbo.
func NewRemoteQuestionMaker(apiKey, model string, logger *LLMLogger) *RemoteQuestionMaker {
	if model == "" {
		model = openai.GPT3Dot5Turbo
	}
	return &RemoteQuestionMaker{
		client: openai.NewClient(apiKey),
		model:  model,
		logger: logger,
	}
}

// MakeQuestions generates quiz questions covering the study guide.
func (m *RemoteQuestionMaker) MakeQuestions(ctx context.Context, guide *StudyGuide, difficulty string, numQuestions int) ([]Question, error) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Generate %d quiz questions about %s at %s difficulty.\n\n", numQuestions, guide.Subject, difficulty))
	sb.WriteString("Base the questions on this study guide:\n")
	sb.WriteString(fmt.Sprintf("Summary: %s\n", guide.Summary))
	for _, c := range guide.KeyConcepts {
		sb.WriteString(fmt.Sprintf("Concept: %s - %s\n", c.Name, c.Definition))
	}
	for _, cs := range guide.ChapterSummaries {
		sb.WriteString(fmt.Sprintf("Chapter: %s\n%s\n", cs.Title, cs.Summary))
	}
	prompt := truncateTokens(sb.String(), m.model, quizContentTokens)
	return m.requestQuestions(ctx, "quiz", prompt, difficulty)
}

// MakeAdaptiveQuestions generates remediation questions focused on the
// student's weak areas.
func (m *RemoteQuestionMaker) MakeAdaptiveQuestions(ctx context.Context, subject string, weakAreas []string, studentLevel string, numQuestions int) ([]Question, error) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Generate %d remediation quiz questions about %s for a %s level student.\n\n", numQuestions, subject, studentLevel))
	if len(weakAreas) > 0 {
		sb.WriteString(fmt.Sprintf("The student struggles with: %s\n", strings.Join(weakAreas, ", ")))
		sb.WriteString("Focus most questions on these weak areas and tag them accordingly.\n")
	} else {
		sb.WriteString("No specific weak areas were identified, so cover the fundamentals.\n")
	}
	sb.WriteString("Make the questions build understanding step by step rather than testing recall.\n")
	return m.requestQuestions(ctx, "adaptive", sb.String(), DifficultyMedium)
}

func (m *RemoteQuestionMaker) requestQuestions(ctx context.Context, module, prompt, defaultDifficulty string) ([]Question, error) {
	m.logger.LogLLMRequest(module, prompt)

	resp, err := m.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: m.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: "You are an expert quiz author. Mix multiple choice, true/false, and short answer questions. Always return questions through the submit_questions tool.",
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt + "\n\nUse the submit_questions tool to return your questions.",
				},
			},
			Tools: []openai.Tool{
				{
					Type: openai.ToolTypeFunction,
					Function: &openai.FunctionDefinition{
						Name:        "submit_questions",
						Description: "Submit generated quiz questions",
						Parameters: map[string]interface{}{
							"type": "object",
							"properties": map[string]interface{}{
								"questions": map[string]interface{}{
									"type": "array",
									"items": map[string]interface{}{
										"type": "object",
										"properties": map[string]interface{}{
											"question": map[string]interface{}{
												"type":        "string",
												"description": "The question text",
											},
											"type": map[string]interface{}{
												"type": "string",
												"enum": []string{QuestionMultipleChoice, QuestionTrueFalse, QuestionShortAnswer},
											},
											"options": map[string]interface{}{
												"type":        "array",
												"items":       map[string]interface{}{"type": "string"},
												"description": "Four options prefixed A) through D), multiple choice only",
											},
											"correct_answer": map[string]interface{}{
												"type":        "string",
												"description": "Option letter, true/false, or the expected short answer",
											},
											"explanation": map[string]interface{}{
												"type":        "string",
												"description": "Why the answer is correct",
											},
											"tags": map[string]interface{}{
												"type":  "array",
												"items": map[string]interface{}{"type": "string"},
											},
											"difficulty_level": map[string]interface{}{
												"type": "string",
												"enum": []string{DifficultyEasy, DifficultyMedium, DifficultyHard},
											},
										},
										"required": []string{"question", "type", "correct_answer", "explanation"},
									},
								},
							},
							"required": []string{"questions"},
						},
					},
				},
			},
			ToolChoice: openai.ToolChoice{
				Type: openai.ToolTypeFunction,
				Function: openai.ToolFunction{
					Name: "submit_questions",
				},
			},
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate questions: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from model")
	}
	choice := resp.Choices[0]
	if len(choice.Message.ToolCalls) == 0 {
		return nil, fmt.Errorf("no tool calls in response")
	}
	toolCall := choice.Message.ToolCalls[0]
	if toolCall.Function.Name != "submit_questions" {
		return nil, fmt.Errorf("unexpected tool call: %s", toolCall.Function.Name)
	}
	m.logger.LogLLMResponse(module, toolCall.Function.Arguments)

	var args struct {
		Questions []struct {
			Question      string   `json:"question"`
			Type          string   `json:"type"`
			Options       []string `json:"options"`
			CorrectAnswer string   `json:"correct_answer"`
			Explanation   string   `json:"explanation"`
			Tags          []string `json:"tags"`
			Difficulty    string   `json:"difficulty_level"`
		} `json:"questions"`
	}
	if err := json.Unmarshal([]byte(toolCall.Function.Arguments), &args); err != nil {
		return nil, fmt.Errorf("failed to parse tool arguments: %w", err)
	}

	questions := make([]Question, 0, len(args.Questions))
	for i, q := range args.Questions {
		difficulty := q.Difficulty
		if difficulty == "" {
			difficulty = defaultDifficulty
		}
		timeEstimate := 60
		if q.Type == QuestionShortAnswer {
			timeEstimate = 120
		}
		questions = append(questions, Question{
			ID:            i + 1,
			Question:      q.Question,
			Type:          q.Type,
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
			Explanation:   q.Explanation,
			Points:        1,
			TimeEstimate:  timeEstimate,
			Tags:          q.Tags,
			Difficulty:    difficulty,
		})
	}
	return questions, nil
}
