package studyguide

import (
	"strings"
	"testing"
)

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "collapses whitespace runs",
			input: "Hello   world\n\nacross  lines",
			want:  "Hello world across lines",
		},
		{
			name:  "strips special characters",
			input: "value = $100 & more",
			want:  "value 100 more",
		},
		{
			name:  "fixes spacing around sentence ends",
			input: "Hello .World",
			want:  "Hello. World",
		},
		{
			name:  "keeps retained punctuation",
			input: "first, second; third: (fourth) - fifth!",
			want:  "first, second; third: (fourth) - fifth!",
		},
		{
			name:  "trims surrounding whitespace",
			input: "  padded  ",
			want:  "padded",
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
		{
			name:  "whitespace only",
			input: " \n\t ",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeText(tt.input)
			if got != tt.want {
				t.Errorf("NormalizeText(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeTextNoConsecutiveWhitespace(t *testing.T) {
	inputs := []string{
		"a  @@  b",
		"x\t\ty\n\nz",
		"email me @ test... soon!!!",
		"symbols *** everywhere *** here",
	}
	for _, input := range inputs {
		got := NormalizeText(input)
		if strings.Contains(got, "  ") || strings.Contains(got, "\n") || strings.Contains(got, "\t") {
			t.Errorf("NormalizeText(%q) = %q contains consecutive or non-space whitespace", input, got)
		}
	}
}

func TestNormalizeTextIdempotent(t *testing.T) {
	inputs := []string{
		"Hello   world. This is   a test!",
		"value = $100 & more .Next sentence",
		"Chapter 1\n\nSome content here with misc @#% symbols.",
	}
	for _, input := range inputs {
		once := NormalizeText(input)
		twice := NormalizeText(once)
		if once != twice {
			t.Errorf("NormalizeText not idempotent: %q -> %q -> %q", input, once, twice)
		}
	}
}

func TestNormalizeLines(t *testing.T) {
	input := "  INTRO  \nsome @ content\n\nChapter 2\nmore   text"
	want := "INTRO\nsome content\n\nChapter 2\nmore text"
	got := NormalizeLines(input)
	if got != want {
		t.Errorf("NormalizeLines(%q) = %q, want %q", input, got, want)
	}

	if lines, wantLines := strings.Count(got, "\n"), strings.Count(input, "\n"); lines != wantLines {
		t.Errorf("NormalizeLines changed line count: got %d newlines, want %d", lines, wantLines)
	}
}
