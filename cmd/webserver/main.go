package main

import (
	"context"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/sessions"
	"github.com/joho/godotenv"

	"studyguide"
)

type Server struct {
	db        *studyguide.DB
	store     *sessions.CookieStore
	creator   *studyguide.StudyGuideCreator
	templates map[string]*template.Template
}

const sessionName = "studyguide-session"

func main() {
	godotenv.Load()
	studyguide.SetVerbose(true)

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		log.Printf("No OPENAI_API_KEY set, generating with templates only")
	}

	db, err := studyguide.OpenDB("./studyguide.db")
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.CloseDB()

	if err := db.CreateTables(); err != nil {
		log.Fatalf("Failed to create tables: %v", err)
	}

	creator, err := studyguide.NewStudyGuideCreator(studyguide.CreatorConfig{APIKey: apiKey})
	if err != nil {
		log.Fatalf("Failed to create study guide creator: %v", err)
	}
	defer creator.Close()

	sessionKey := os.Getenv("SESSION_KEY")
	if sessionKey == "" {
		sessionKey = "studyguide-dev-key"
	}
	store := sessions.NewCookieStore([]byte(sessionKey))

	funcMap := template.FuncMap{
		"add": func(a, b int) int { return a + b },
		"join": func(items []string, sep string) string {
			return strings.Join(items, sep)
		},
		"printf": fmt.Sprintf,
	}

	templates := make(map[string]*template.Template)
	for name, body := range pageTemplates {
		templates[name] = template.Must(template.New(name).Funcs(funcMap).Parse(baseTemplate + body))
	}

	server := &Server{
		db:        db,
		store:     store,
		creator:   creator,
		templates: templates,
	}

	http.HandleFunc("/", server.handleHome)
	http.HandleFunc("/create", server.handleCreate)
	http.HandleFunc("/guide/", server.handleGuide)
	http.HandleFunc("/quiz/", server.handleQuiz)
	http.HandleFunc("/adaptive", server.handleAdaptive)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8180"
	}

	log.Printf("Starting server on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, nil))
}

// sessionID returns the stable ID for this browser session, creating one if
// needed.
func (s *Server) sessionID(w http.ResponseWriter, r *http.Request) string {
	session, _ := s.store.Get(r, sessionName)
	id, ok := session.Values["id"].(string)
	if !ok || id == "" {
		id = fmt.Sprintf("s%d", time.Now().UnixNano())
		session.Values["id"] = id
		session.Save(r, w)
	}
	return id
}

func (s *Server) render(w http.ResponseWriter, name string, data interface{}) {
	if err := s.templates[name].ExecuteTemplate(w, "base", data); err != nil {
		log.Printf("Template error in %s: %v", name, err)
		http.Error(w, "Template error", http.StatusInternalServerError)
	}
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	guides, err := s.db.GetGuides(0)
	if err != nil {
		log.Printf("Failed to get guides: %v", err)
		http.Error(w, "Failed to get guides", http.StatusInternalServerError)
		return
	}
	quizzes, err := s.db.GetQuizzes(0)
	if err != nil {
		log.Printf("Failed to get quizzes: %v", err)
		http.Error(w, "Failed to get quizzes", http.StatusInternalServerError)
		return
	}
	s.render(w, "home", map[string]interface{}{
		"Guides":  guides,
		"Quizzes": quizzes,
	})
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		s.render(w, "create", nil)
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form", http.StatusBadRequest)
		return
	}

	subject := r.FormValue("subject")
	text := r.FormValue("text")
	level := r.FormValue("level")
	if subject == "" || text == "" {
		http.Error(w, "Subject and material text are required", http.StatusBadRequest)
		return
	}
	numQuestions, err := strconv.Atoi(r.FormValue("num_questions"))
	if err != nil || numQuestions <= 0 {
		numQuestions = 10
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Minute)
	defer cancel()

	result, err := s.creator.CreateStudyGuide(ctx, studyguide.CreateRequest{
		InputText:     text,
		Subject:       subject,
		Level:         level,
		NumQuestions:  numQuestions,
		IncludeQuiz:   true,
		ExportFormats: []string{"json"},
		OutputDir:     "output",
	})
	if err != nil {
		log.Printf("Failed to create study guide: %v", err)
		http.Error(w, "Failed to create study guide", http.StatusInternalServerError)
		return
	}

	guideID := result.Quiz.ID + "-guide"
	if err := s.db.SaveGuide(guideID, result.Guide); err != nil {
		log.Printf("Failed to save guide: %v", err)
		http.Error(w, "Failed to save guide", http.StatusInternalServerError)
		return
	}
	if err := s.db.SaveQuiz(result.Quiz, guideID); err != nil {
		log.Printf("Failed to save quiz: %v", err)
		http.Error(w, "Failed to save quiz", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/guide/"+guideID, http.StatusSeeOther)
}

func (s *Server) handleGuide(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/guide/")
	if id == "" {
		http.NotFound(w, r)
		return
	}
	guide, err := s.db.GetGuide(id)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	quizID := strings.TrimSuffix(id, "-guide")
	s.render(w, "guide", map[string]interface{}{
		"Guide":  guide,
		"QuizID": quizID,
	})
}

func (s *Server) handleQuiz(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/quiz/")
	parts := strings.Split(path, "/")
	if len(parts) == 0 || parts[0] == "" {
		http.NotFound(w, r)
		return
	}
	quizID := parts[0]

	quiz, err := s.db.GetQuiz(quizID)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if len(parts) == 2 && parts[1] == "submit" && r.Method == http.MethodPost {
		s.handleSubmit(w, r, quiz)
		return
	}

	s.render(w, "take", map[string]interface{}{"Quiz": quiz})
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request, quiz *studyguide.Quiz) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form", http.StatusBadRequest)
		return
	}

	answers := make(map[int]string)
	for _, q := range quiz.Questions {
		answers[q.ID] = r.FormValue(fmt.Sprintf("q%d", q.ID))
	}
	timeTaken, _ := strconv.Atoi(r.FormValue("time_taken"))

	result := studyguide.EvaluateQuiz(quiz, answers, timeTaken)

	sessionID := s.sessionID(w, r)
	if err := s.db.SaveResult(sessionID, result); err != nil {
		log.Printf("Failed to save result: %v", err)
	}

	s.render(w, "results", map[string]interface{}{
		"Quiz":   quiz,
		"Result": result,
		"Passed": result.Percentage >= float64(quiz.PassingScore),
	})
}

func (s *Server) handleAdaptive(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form", http.StatusBadRequest)
		return
	}
	subject := r.FormValue("subject")
	if subject == "" {
		http.Error(w, "Subject is required", http.StatusBadRequest)
		return
	}

	sessionID := s.sessionID(w, r)
	history, err := s.db.RecentResults(sessionID, 3)
	if err != nil {
		log.Printf("Failed to load results: %v", err)
		http.Error(w, "Failed to load results", http.StatusInternalServerError)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Minute)
	defer cancel()

	quiz, err := s.creator.CreateAdaptiveQuiz(ctx, subject, history, 5)
	if err != nil {
		log.Printf("Failed to create adaptive quiz: %v", err)
		http.Error(w, "Failed to create adaptive quiz", http.StatusInternalServerError)
		return
	}
	if err := s.db.SaveQuiz(quiz, ""); err != nil {
		log.Printf("Failed to save adaptive quiz: %v", err)
		http.Error(w, "Failed to save quiz", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/quiz/"+quiz.ID, http.StatusSeeOther)
}
