package studyguide

import "sync"

// ResultHistory is a concurrency-safe, append-only record of quiz results
// for one study session, oldest first.
type ResultHistory struct {
	mu      sync.RWMutex
	results []QuizResult
}

// NewResultHistory creates an empty result history.
func NewResultHistory() *ResultHistory {
	return &ResultHistory{}
}

// Append records a completed quiz result.
func (h *ResultHistory) Append(result QuizResult) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.results = append(h.results, result)
}

// Recent returns a copy of the last n results, oldest first. Fewer than n
// results returns them all.
func (h *ResultHistory) Recent(n int) []QuizResult {
	h.mu.RLock()
	defer h.mu.RUnlock()
	start := len(h.results) - n
	if start < 0 {
		start = 0
	}
	out := make([]QuizResult, len(h.results)-start)
	copy(out, h.results[start:])
	return out
}

// All returns a copy of every recorded result, oldest first.
func (h *ResultHistory) All() []QuizResult {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]QuizResult, len(h.results))
	copy(out, h.results)
	return out
}

// Len reports the number of recorded results.
func (h *ResultHistory) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.results)
}
