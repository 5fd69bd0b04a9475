package studyguide

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// LLMLogger handles logging of all LLM interactions for one generation run
type LLMLogger struct {
	file  *os.File
	mu    sync.Mutex
	runID string
}

// NewLLMLogger creates a new LLM logger for a specific generation run
func NewLLMLogger(runID, subject string) (*LLMLogger, error) {
	// Ensure log directory exists
	if err := os.MkdirAll("log", 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	filename := filepath.Join("log", fmt.Sprintf("%s.log", runID))
	file, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create log file: %w", err)
	}

	logger := &LLMLogger{
		file:  file,
		runID: runID,
	}

	logger.Logf("=== Study Guide Generation Log ===\n")
	logger.Logf("Run ID: %s\n", runID)
	logger.Logf("Subject: %s\n", subject)
	logger.Logf("Started: %s\n", time.Now().Format(time.RFC3339))
	logger.Logf("==============================\n\n")

	return logger, nil
}

// Logf writes a formatted log entry with timestamp
func (ll *LLMLogger) Logf(format string, args ...interface{}) {
	if ll == nil {
		return
	}
	ll.mu.Lock()
	defer ll.mu.Unlock()

	timestamp := time.Now().Format("15:04:05.000")
	message := fmt.Sprintf(format, args...)

	fmt.Fprintf(ll.file, "[%s] %s", timestamp, message)
	ll.file.Sync()
}

// LogLLMRequest logs an LLM request
func (ll *LLMLogger) LogLLMRequest(module, prompt string) {
	ll.Logf("=== LLM REQUEST (%s) ===\n", module)
	ll.Logf("Prompt:\n%s\n", prompt)
	ll.Logf("=====================\n\n")
}

// LogLLMResponse logs an LLM response
func (ll *LLMLogger) LogLLMResponse(module, response string) {
	ll.Logf("=== LLM RESPONSE (%s) ===\n", module)
	ll.Logf("Response:\n%s\n", response)
	ll.Logf("======================\n\n")
}

// Close closes the log file
func (ll *LLMLogger) Close() error {
	if ll == nil {
		return nil
	}
	ll.mu.Lock()
	defer ll.mu.Unlock()

	if ll.file != nil {
		fmt.Fprintf(ll.file, "=== Generation Complete: %s ===\n", time.Now().Format(time.RFC3339))
		return ll.file.Close()
	}
	return nil
}
