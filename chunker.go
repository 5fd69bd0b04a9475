package studyguide

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Default chunking configuration, in characters.
const (
	DefaultChunkSize    = 1000
	DefaultChunkOverlap = 200
)

// Separators tried in priority order when looking for chunk boundaries. The
// empty string is the character-level fallback.
var chunkSeparators = []string{"\n\n", "\n", ". ", " ", ""}

// TextSplitter splits text into overlapping fixed-size chunks along semantic
// boundaries, preferring paragraph breaks, then line breaks, sentence ends,
// word boundaries, and finally single characters. Splitting is deterministic:
// the same text always yields identical chunks.
type TextSplitter struct {
	ChunkSize    int
	ChunkOverlap int
}

// NewTextSplitter creates a splitter with the given chunk size and overlap,
// both in characters. The overlap must be smaller than the size.
func NewTextSplitter(chunkSize, chunkOverlap int) (*TextSplitter, error) {
	if chunkSize <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", chunkSize)
	}
	if chunkOverlap < 0 || chunkOverlap >= chunkSize {
		return nil, fmt.Errorf("chunk overlap %d must be non-negative and smaller than chunk size %d", chunkOverlap, chunkSize)
	}
	return &TextSplitter{ChunkSize: chunkSize, ChunkOverlap: chunkOverlap}, nil
}

// SplitText returns ordered overlapping substrings of text. Every chunk is at
// most ChunkSize long, consecutive chunks share at least the trailing
// ChunkOverlap bytes of the earlier one (more only when the overlap boundary
// would land inside a multi-byte character), and text shorter than ChunkSize
// comes back as a single chunk. Concatenating the chunks with the overlaps
// removed reconstructs the input exactly.
func (ts *TextSplitter) SplitText(text string) []string {
	if text == "" {
		return nil
	}
	if len(text) <= ts.ChunkSize {
		return []string{text}
	}

	// Candidate boundaries no further apart than ChunkSize-ChunkOverlap, so a
	// chunk starting right after an overlap always reaches the next one.
	bps := breakpoints(text, 0, chunkSeparators, ts.ChunkSize-ts.ChunkOverlap)

	var chunks []string
	start := 0
	j := 0
	for {
		limit := start + ts.ChunkSize
		end := -1
		for j < len(bps) && bps[j] <= limit {
			end = bps[j]
			j++
		}
		if end == -1 {
			// No boundary in range; hard cut at the limit.
			end = limit
			if end >= len(text) {
				end = len(text)
			} else {
				for end > start && !utf8.RuneStart(text[end]) {
					end--
				}
				if end == start {
					_, size := utf8.DecodeRuneInString(text[start:])
					end = start + size
				}
			}
		}
		chunks = append(chunks, text[start:end])
		if end >= len(text) {
			return chunks
		}
		start = end - ts.ChunkOverlap
		// The overlap is a byte count, so back up to the enclosing rune
		// boundary rather than start mid-character.
		for start > 0 && !utf8.RuneStart(text[start]) {
			start--
		}
	}
}

// breakpoints returns strictly increasing absolute offsets into the original
// text where a chunk may end, with no two consecutive offsets (nor the text
// start and the first offset) further apart than maxGap. Offsets land after a
// separator where one fits; spans with no small-enough separator piece fall
// back to per-character offsets.
func breakpoints(text string, base int, seps []string, maxGap int) []int {
	if len(text) <= maxGap {
		return []int{base + len(text)}
	}
	if len(seps) == 0 || seps[0] == "" {
		return charBreakpoints(text, base, maxGap)
	}

	sep := seps[0]
	var out []int
	offset := 0
	rest := text
	for {
		idx := strings.Index(rest, sep)
		var piece string
		if idx < 0 {
			piece = rest
		} else {
			piece = rest[:idx+len(sep)]
		}
		if len(piece) <= maxGap {
			out = append(out, base+offset+len(piece))
		} else {
			out = append(out, breakpoints(piece, base+offset, seps[1:], maxGap)...)
		}
		if idx < 0 {
			return out
		}
		offset += len(piece)
		rest = rest[len(piece):]
		if rest == "" {
			return out
		}
	}
}

// charBreakpoints emits an offset roughly every maxGap bytes, aligned to rune
// boundaries so chunks never split inside a multi-byte character.
func charBreakpoints(text string, base int, maxGap int) []int {
	var out []int
	pos := 0
	for pos < len(text) {
		next := pos + maxGap
		if next >= len(text) {
			out = append(out, base+len(text))
			break
		}
		// Back up to the start of the rune straddling the cut, if any.
		for next > pos && !utf8.RuneStart(text[next]) {
			next--
		}
		if next == pos {
			// A single rune longer than maxGap; cut after it regardless.
			_, size := utf8.DecodeRuneInString(text[pos:])
			next = pos + size
		}
		out = append(out, base+next)
		pos = next
	}
	return out
}
