package studyguide

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// DB represents a study guide database connection
type DB struct {
	db *sql.DB
}

// OpenDB opens a new database connection
func OpenDB(dbPath string) (*DB, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{db: db}, nil
}

// CloseDB closes the database connection
func (db *DB) CloseDB() error {
	return db.db.Close()
}

// CreateTables creates the necessary tables if they don't exist
func (db *DB) CreateTables() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS guides (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			subject TEXT NOT NULL,
			level TEXT NOT NULL,
			guide_json TEXT NOT NULL,
			created_at DATETIME NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS quizzes (
			id TEXT PRIMARY KEY,
			guide_id TEXT,
			title TEXT NOT NULL,
			subject TEXT NOT NULL,
			difficulty TEXT NOT NULL,
			time_limit INTEGER NOT NULL,
			passing_score INTEGER NOT NULL,
			created_at DATETIME NOT NULL,
			FOREIGN KEY (guide_id) REFERENCES guides(id)
		)`,
		`CREATE TABLE IF NOT EXISTS questions (
			quiz_id TEXT NOT NULL,
			question_num INTEGER NOT NULL,
			question TEXT NOT NULL,
			type TEXT NOT NULL,
			options TEXT NOT NULL,
			correct_answer TEXT NOT NULL,
			explanation TEXT,
			points INTEGER NOT NULL,
			time_estimate INTEGER NOT NULL,
			tags TEXT NOT NULL,
			difficulty TEXT NOT NULL,
			PRIMARY KEY (quiz_id, question_num),
			FOREIGN KEY (quiz_id) REFERENCES quizzes(id)
		)`,
		`CREATE TABLE IF NOT EXISTS results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			quiz_title TEXT NOT NULL,
			score INTEGER NOT NULL,
			total_questions INTEGER NOT NULL,
			percentage REAL NOT NULL,
			time_taken INTEGER NOT NULL,
			detail_json TEXT NOT NULL,
			created_at DATETIME NOT NULL
		)`,
	}

	for _, query := range queries {
		if _, err := db.db.Exec(query); err != nil {
			return fmt.Errorf("failed to execute %s: %w", query, err)
		}
	}
	return nil
}

// SaveGuide stores a study guide under the given ID
func (db *DB) SaveGuide(id string, guide *StudyGuide) error {
	data, err := json.Marshal(guide)
	if err != nil {
		return fmt.Errorf("failed to marshal guide: %w", err)
	}
	_, err = db.db.Exec(
		"INSERT OR REPLACE INTO guides (id, title, subject, level, guide_json, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		id, guide.Title, guide.Subject, guide.Level, string(data), time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to save guide: %w", err)
	}
	return nil
}

// GetGuide retrieves a study guide by ID
func (db *DB) GetGuide(id string) (*StudyGuide, error) {
	var data string
	err := db.db.QueryRow("SELECT guide_json FROM guides WHERE id = ?", id).Scan(&data)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("guide not found: %s", id)
		}
		return nil, fmt.Errorf("failed to get guide: %w", err)
	}
	var guide StudyGuide
	if err := json.Unmarshal([]byte(data), &guide); err != nil {
		return nil, fmt.Errorf("failed to unmarshal guide: %w", err)
	}
	return &guide, nil
}

// GuideSummary is one row of the stored guide listing
type GuideSummary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Subject   string    `json:"subject"`
	Level     string    `json:"level"`
	CreatedAt time.Time `json:"created_at"`
}

// GetGuides lists stored guides newest first, optionally limited by count
func (db *DB) GetGuides(limit int) ([]GuideSummary, error) {
	query := "SELECT id, title, subject, level, created_at FROM guides ORDER BY created_at DESC"
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := db.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to get guides: %w", err)
	}
	defer rows.Close()

	var guides []GuideSummary
	for rows.Next() {
		var g GuideSummary
		if err := rows.Scan(&g.ID, &g.Title, &g.Subject, &g.Level, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan guide: %w", err)
		}
		guides = append(guides, g)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating guides: %w", err)
	}
	return guides, nil
}

// SaveQuiz stores a quiz and its questions
func (db *DB) SaveQuiz(quiz *Quiz, guideID string) error {
	tx, err := db.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		"INSERT OR REPLACE INTO quizzes (id, guide_id, title, subject, difficulty, time_limit, passing_score, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		quiz.ID, guideID, quiz.Title, quiz.Subject, quiz.Difficulty, quiz.TimeLimit, quiz.PassingScore, quiz.Metadata.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save quiz: %w", err)
	}

	if _, err := tx.Exec("DELETE FROM questions WHERE quiz_id = ?", quiz.ID); err != nil {
		return fmt.Errorf("failed to clear quiz questions: %w", err)
	}
	for _, q := range quiz.Questions {
		options, err := json.Marshal(q.Options)
		if err != nil {
			return fmt.Errorf("failed to marshal options: %w", err)
		}
		tags, err := json.Marshal(q.Tags)
		if err != nil {
			return fmt.Errorf("failed to marshal tags: %w", err)
		}
		_, err = tx.Exec(
			"INSERT INTO questions (quiz_id, question_num, question, type, options, correct_answer, explanation, points, time_estimate, tags, difficulty) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
			quiz.ID, q.ID, q.Question, q.Type, string(options), q.CorrectAnswer, q.Explanation, q.Points, q.TimeEstimate, string(tags), q.Difficulty,
		)
		if err != nil {
			return fmt.Errorf("failed to save question %d: %w", q.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit quiz: %w", err)
	}
	return nil
}

// GetQuiz retrieves a quiz with its questions by ID
func (db *DB) GetQuiz(id string) (*Quiz, error) {
	var quiz Quiz
	err := db.db.QueryRow(
		"SELECT id, title, subject, difficulty, time_limit, passing_score, created_at FROM quizzes WHERE id = ?",
		id,
	).Scan(&quiz.ID, &quiz.Title, &quiz.Subject, &quiz.Difficulty, &quiz.TimeLimit, &quiz.PassingScore, &quiz.Metadata.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("quiz not found: %s", id)
		}
		return nil, fmt.Errorf("failed to get quiz: %w", err)
	}

	rows, err := db.db.Query(
		"SELECT question_num, question, type, options, correct_answer, explanation, points, time_estimate, tags, difficulty FROM questions WHERE quiz_id = ? ORDER BY question_num",
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get questions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var q Question
		var options, tags string
		err := rows.Scan(&q.ID, &q.Question, &q.Type, &options, &q.CorrectAnswer, &q.Explanation, &q.Points, &q.TimeEstimate, &tags, &q.Difficulty)
		if err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}
		if err := json.Unmarshal([]byte(options), &q.Options); err != nil {
			return nil, fmt.Errorf("failed to unmarshal options: %w", err)
		}
		if err := json.Unmarshal([]byte(tags), &q.Tags); err != nil {
			return nil, fmt.Errorf("failed to unmarshal tags: %w", err)
		}
		quiz.Questions = append(quiz.Questions, q)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating questions: %w", err)
	}
	return &quiz, nil
}

// QuizSummary is one row of the stored quiz listing
type QuizSummary struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Subject    string    `json:"subject"`
	Difficulty string    `json:"difficulty"`
	CreatedAt  time.Time `json:"created_at"`
}

// GetQuizzes lists stored quizzes newest first, optionally limited by count
func (db *DB) GetQuizzes(limit int) ([]QuizSummary, error) {
	query := "SELECT id, title, subject, difficulty, created_at FROM quizzes ORDER BY created_at DESC"
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := db.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to get quizzes: %w", err)
	}
	defer rows.Close()

	var quizzes []QuizSummary
	for rows.Next() {
		var q QuizSummary
		if err := rows.Scan(&q.ID, &q.Title, &q.Subject, &q.Difficulty, &q.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan quiz: %w", err)
		}
		quizzes = append(quizzes, q)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating quizzes: %w", err)
	}
	return quizzes, nil
}

// SaveResult stores a scored quiz result for a session
func (db *DB) SaveResult(sessionID string, result *QuizResult) error {
	detail, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	_, err = db.db.Exec(
		"INSERT INTO results (session_id, quiz_title, score, total_questions, percentage, time_taken, detail_json, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		sessionID, result.QuizTitle, result.Score, result.TotalQuestions, result.Percentage, result.TimeTaken, string(detail), time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to save result: %w", err)
	}
	return nil
}

// RecentResults returns the last n results for a session, oldest first
func (db *DB) RecentResults(sessionID string, n int) ([]QuizResult, error) {
	rows, err := db.db.Query(
		"SELECT detail_json FROM results WHERE session_id = ? ORDER BY id DESC LIMIT ?",
		sessionID, n,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get results: %w", err)
	}
	defer rows.Close()

	var results []QuizResult
	for rows.Next() {
		var detail string
		if err := rows.Scan(&detail); err != nil {
			return nil, fmt.Errorf("failed to scan result: %w", err)
		}
		var result QuizResult
		if err := json.Unmarshal([]byte(detail), &result); err != nil {
			return nil, fmt.Errorf("failed to unmarshal result: %w", err)
		}
		results = append(results, result)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating results: %w", err)
	}

	// Reverse to oldest first.
	for i, j := 0, len(results)-1; i < j; i, j = i+1, j-1 {
		results[i], results[j] = results[j], results[i]
	}
	return results, nil
}
