package studyguide

import (
	"fmt"
	"strings"
)

// ContentProcessor turns raw document text into the structured content the
// guide and quiz generators consume.
type ContentProcessor struct {
	splitter *TextSplitter
}

// NewContentProcessor creates a processor with the given chunking
// parameters. Zero values fall back to the defaults.
func NewContentProcessor(chunkSize, chunkOverlap int) (*ContentProcessor, error) {
	if chunkSize == 0 {
		chunkSize = DefaultChunkSize
		if chunkOverlap == 0 {
			chunkOverlap = DefaultChunkOverlap
		}
	}
	splitter, err := NewTextSplitter(chunkSize, chunkOverlap)
	if err != nil {
		return nil, err
	}
	return &ContentProcessor{splitter: splitter}, nil
}

// ProcessDocument extracts text from a file and processes it. With TypeAuto
// the document type is detected from the extension.
func (p *ContentProcessor) ProcessDocument(path string, docType DocumentType) (*ProcessedContent, error) {
	if docType == TypeAuto || docType == "" {
		detected, err := DetectDocumentType(path)
		if err != nil {
			return nil, err
		}
		docType = detected
	}
	raw, err := ExtractText(path, docType)
	if err != nil {
		return nil, fmt.Errorf("failed to extract text from %s: %w", path, err)
	}
	content := p.ProcessText(raw)
	content.Metadata.FilePath = path
	content.Metadata.FileType = string(docType)
	return content, nil
}

// ProcessText normalizes raw text and derives chunks, concepts, key terms,
// and sections from it. Concept and key-term extraction are best effort: a
// failure there degrades to empty results rather than failing the document.
func (p *ContentProcessor) ProcessText(raw string) *ProcessedContent {
	normalized := NormalizeText(raw)
	chunks := p.splitter.SplitText(normalized)
	concepts := safeConcepts(normalized)
	keyTerms := safeKeyTerms(normalized)
	sections := IdentifySections(NormalizeLines(raw))

	return &ProcessedContent{
		Text:     normalized,
		Chunks:   chunks,
		Concepts: concepts,
		KeyTerms: keyTerms,
		Sections: sections,
		Metadata: ContentMetadata{
			WordCount:    len(strings.Fields(normalized)),
			ChunkCount:   len(chunks),
			ConceptCount: len(concepts),
		},
	}
}

func safeConcepts(text string) (concepts []string) {
	defer func() {
		if r := recover(); r != nil {
			VerboseLog("Concept extraction failed, continuing without concepts: %v", r)
			concepts = nil
		}
	}()
	return ExtractConcepts(text)
}

func safeKeyTerms(text string) (terms []string) {
	defer func() {
		if r := recover(); r != nil {
			VerboseLog("Key term extraction failed, continuing without key terms: %v", r)
			terms = nil
		}
	}()
	return ExtractKeyTerms(text)
}
