package studyguide

import "testing"

func TestValidateQuestion(t *testing.T) {
	valid := Question{
		ID:            1,
		Question:      "What is the powerhouse of the cell?",
		Type:          QuestionMultipleChoice,
		Options:       []string{"A) mitochondria", "B) nucleus", "C) ribosome", "D) membrane"},
		CorrectAnswer: "A",
	}

	tests := []struct {
		name    string
		mutate  func(q Question) Question
		wantErr bool
	}{
		{"valid multiple choice", func(q Question) Question { return q }, false},
		{"empty text", func(q Question) Question { q.Question = " "; return q }, true},
		{"empty answer", func(q Question) Question { q.CorrectAnswer = ""; return q }, true},
		{"answer not an option letter", func(q Question) Question { q.CorrectAnswer = "E"; return q }, true},
		{"answer letter lowercased", func(q Question) Question { q.CorrectAnswer = "b"; return q }, false},
		{"too few options", func(q Question) Question { q.Options = []string{"A) only"}; return q }, true},
		{"unknown type", func(q Question) Question { q.Type = "essay"; return q }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateQuestion(tt.mutate(valid))
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateQuestion error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateQuestionTrueFalse(t *testing.T) {
	q := Question{
		ID:            1,
		Question:      "The sky is blue.",
		Type:          QuestionTrueFalse,
		CorrectAnswer: "True",
	}
	if err := ValidateQuestion(q); err != nil {
		t.Errorf("valid true/false rejected: %v", err)
	}
	q.CorrectAnswer = "maybe"
	if err := ValidateQuestion(q); err == nil {
		t.Error("non-boolean true/false answer accepted")
	}
}

func TestSanitizeQuestions(t *testing.T) {
	questions := []Question{
		{
			ID:            7,
			Question:      "What is photosynthesis?",
			Type:          QuestionShortAnswer,
			CorrectAnswer: "conversion of light to chemical energy",
		},
		{
			ID:       8,
			Question: "",
			Type:     QuestionShortAnswer,
		},
		{
			// Duplicate of the first apart from stop words.
			ID:            9,
			Question:      "What is the photosynthesis?",
			Type:          QuestionShortAnswer,
			CorrectAnswer: "light to sugar",
		},
		{
			ID:            10,
			Question:      "Is chlorophyll green?",
			Type:          QuestionTrueFalse,
			CorrectAnswer: "true",
			Points:        3,
			Difficulty:    DifficultyHard,
		},
	}

	kept := SanitizeQuestions(questions)
	if len(kept) != 2 {
		t.Fatalf("kept %d questions, want 2", len(kept))
	}

	// IDs renumber sequentially from one.
	for i, q := range kept {
		if q.ID != i+1 {
			t.Errorf("question %d has ID %d, want %d", i, q.ID, i+1)
		}
	}

	// Defaults fill in only when missing.
	if kept[0].Points != 1 || kept[0].Difficulty != DifficultyMedium {
		t.Errorf("defaults not applied: points=%d difficulty=%q", kept[0].Points, kept[0].Difficulty)
	}
	if kept[1].Points != 3 || kept[1].Difficulty != DifficultyHard {
		t.Errorf("existing values overwritten: points=%d difficulty=%q", kept[1].Points, kept[1].Difficulty)
	}
}
