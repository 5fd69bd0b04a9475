package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"studyguide"
)

func main() {
	var (
		inputFile    = flag.String("input", "", "Input document (PDF, DOCX, or TXT)")
		inputText    = flag.String("text", "", "Inline text to study instead of a file")
		subject      = flag.String("subject", "", "Subject area (required)")
		level        = flag.String("level", "undergraduate", "Education level (high_school, undergraduate, graduate)")
		title        = flag.String("title", "", "Study guide title (default: \"<subject> Study Guide\")")
		difficulty   = flag.String("difficulty", "medium", "Quiz difficulty (easy, medium, hard)")
		numQuestions = flag.Int("questions", 10, "Number of quiz questions")
		noQuiz       = flag.Bool("no-quiz", false, "Skip quiz generation")
		formats      = flag.String("formats", "html,pdf,json", "Comma-separated export formats (html, markdown, pdf, json, csv)")
		outputDir    = flag.String("output", "output", "Output directory")
		takeQuiz     = flag.Bool("take", false, "Take the generated quiz interactively")
		apiKey       = flag.String("api-key", "", "OpenAI API key (or set OPENAI_API_KEY env var)")
		model        = flag.String("model", "", "OpenAI model (default: gpt-3.5-turbo)")
		verbose      = flag.Bool("verbose", false, "Enable verbose debugging output")
	)

	flag.Parse()

	// Optional .env for OPENAI_API_KEY, missing file is fine
	godotenv.Load()

	studyguide.SetVerbose(*verbose)

	if *subject == "" {
		log.Fatal("Subject is required. Use -subject flag.")
	}
	if *inputFile == "" && *inputText == "" {
		log.Fatal("Provide an input document with -input or text with -text.")
	}

	if *apiKey == "" {
		*apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if *apiKey == "" {
		fmt.Println("No API key found, generating with templates only.")
	}

	creator, err := studyguide.NewStudyGuideCreator(studyguide.CreatorConfig{
		APIKey: *apiKey,
		Model:  *model,
	})
	if err != nil {
		log.Fatalf("Failed to create study guide creator: %v", err)
	}
	defer creator.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	fmt.Printf("📚 Creating study guide for: %s\n", *subject)

	result, err := creator.CreateStudyGuide(ctx, studyguide.CreateRequest{
		InputFile:     *inputFile,
		InputText:     *inputText,
		Subject:       *subject,
		Level:         *level,
		Title:         *title,
		Difficulty:    *difficulty,
		NumQuestions:  *numQuestions,
		IncludeQuiz:   !*noQuiz,
		ExportFormats: splitFormats(*formats),
		OutputDir:     *outputDir,
	})
	if err != nil {
		log.Fatalf("Failed to create study guide: %v", err)
	}

	fmt.Printf("✅ Generated guide with %d concepts\n", len(result.Guide.KeyConcepts))
	if result.Quiz != nil {
		fmt.Printf("✅ Created quiz with %d questions\n", len(result.Quiz.Questions))
	}
	for _, f := range result.ExportedFiles {
		fmt.Printf("  exported %s\n", f)
	}
	fmt.Printf("🎉 Study package saved to: %s\n", result.PackageDir)

	if *takeQuiz && result.Quiz != nil {
		runQuizSession(ctx, creator, result.Quiz, *subject)
	}
}

func splitFormats(s string) []string {
	var formats []string
	for _, f := range strings.Split(s, ",") {
		f = strings.TrimSpace(f)
		if f != "" {
			formats = append(formats, f)
		}
	}
	return formats
}

// runQuizSession runs quizzes interactively, offering an adaptive follow-up
// quiz after each result.
func runQuizSession(ctx context.Context, creator *studyguide.StudyGuideCreator, quiz *studyguide.Quiz, subject string) {
	scanner := bufio.NewScanner(os.Stdin)
	history := studyguide.NewResultHistory()

	for {
		result := takeQuizInteractively(scanner, creator, quiz)
		history.Append(*result)

		fmt.Printf("\n🏆 Final score: %d/%d (%.1f%%)\n", len(result.CorrectAnswers), result.TotalQuestions, result.Percentage)
		for _, rec := range result.Recommendations {
			fmt.Printf("  💡 %s\n", rec)
		}

		fmt.Print("\nTake an adaptive follow-up quiz? (y/n): ")
		if !scanner.Scan() || strings.ToLower(strings.TrimSpace(scanner.Text())) != "y" {
			return
		}

		adaptive, err := creator.CreateAdaptiveQuiz(ctx, subject, history.Recent(3), 5)
		if err != nil {
			log.Fatalf("Failed to create adaptive quiz: %v", err)
		}
		if len(adaptive.Metadata.WeakAreas) > 0 {
			fmt.Printf("\n🎯 Focusing on: %s\n", strings.Join(adaptive.Metadata.WeakAreas, ", "))
		}
		quiz = adaptive
	}
}

func takeQuizInteractively(scanner *bufio.Scanner, creator *studyguide.StudyGuideCreator, quiz *studyguide.Quiz) *studyguide.QuizResult {
	fmt.Printf("\n🎯 %s\n", quiz.Title)
	fmt.Printf("📝 %d questions, time limit %d minutes, passing score %d%%\n\n", len(quiz.Questions), quiz.TimeLimit, quiz.PassingScore)

	answers := make(map[int]string)
	start := time.Now()

	for i, q := range quiz.Questions {
		fmt.Printf("Question %d/%d:\n%s\n", i+1, len(quiz.Questions), q.Question)
		for _, option := range q.Options {
			fmt.Printf("  %s\n", option)
		}

		var prompt string
		switch q.Type {
		case studyguide.QuestionMultipleChoice:
			prompt = "Your answer (A/B/C/D): "
		case studyguide.QuestionTrueFalse:
			prompt = "Your answer (true/false): "
		default:
			prompt = "Your answer: "
		}

		fmt.Print(prompt)
		if !scanner.Scan() {
			break
		}
		answers[q.ID] = strings.TrimSpace(scanner.Text())
		fmt.Println()
	}

	timeTaken := int(time.Since(start).Seconds())
	result := creator.EvaluateQuiz(quiz, answers, timeTaken)

	fmt.Println(strings.Repeat("─", 50))
	for _, detail := range result.DetailedResults {
		if detail.Correct {
			fmt.Printf("✅ Q%d: Correct (%s pts)\n", detail.QuestionID, strconv.Itoa(detail.PointsEarned))
		} else {
			fmt.Printf("❌ Q%d: Incorrect. Answer: %s\n", detail.QuestionID, detail.CorrectAnswer)
			if detail.Explanation != "" {
				fmt.Printf("   💡 %s\n", detail.Explanation)
			}
		}
	}
	return result
}
