package studyguide

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// DocumentType identifies the format of a source document.
type DocumentType string

const (
	TypeAuto DocumentType = "auto"
	TypePDF  DocumentType = "pdf"
	TypeDOCX DocumentType = "docx"
	TypeTXT  DocumentType = "txt"
)

// DetectDocumentType determines the document type from the file extension.
func DetectDocumentType(path string) (DocumentType, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return TypePDF, nil
	case ".doc", ".docx":
		return TypeDOCX, nil
	case ".txt", ".text", ".md":
		return TypeTXT, nil
	default:
		return "", fmt.Errorf("unsupported file type: %s", filepath.Ext(path))
	}
}

// ExtractText reads the raw text content of a document. With TypeAuto the
// type is detected from the file extension first.
func ExtractText(path string, docType DocumentType) (string, error) {
	if docType == TypeAuto || docType == "" {
		detected, err := DetectDocumentType(path)
		if err != nil {
			return "", err
		}
		docType = detected
	}
	switch docType {
	case TypePDF:
		return extractPDF(path)
	case TypeDOCX:
		return extractDocx(path)
	case TypeTXT:
		return extractTxt(path)
	default:
		return "", fmt.Errorf("unsupported document type: %s", docType)
	}
}

func extractPDF(path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	var pages []string
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			VerboseLog("Skipping unreadable PDF page %d in %s: %v", i, path, err)
			continue
		}
		pages = append(pages, content)
	}
	text := strings.Join(pages, "\n")
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("no extractable text in PDF %s", path)
	}
	return text, nil
}

// extractDocx pulls paragraph text out of the word/document.xml entry of a
// .docx archive. Each <w:p> element becomes one line.
func extractDocx(path string) (string, error) {
	archive, err := zip.OpenReader(path)
	if err != nil {
		return "", fmt.Errorf("failed to open DOCX: %w", err)
	}
	defer archive.Close()

	var doc *zip.File
	for _, f := range archive.File {
		if f.Name == "word/document.xml" {
			doc = f
			break
		}
	}
	if doc == nil {
		return "", fmt.Errorf("no document.xml in DOCX %s", path)
	}

	rc, err := doc.Open()
	if err != nil {
		return "", fmt.Errorf("failed to read DOCX content: %w", err)
	}
	defer rc.Close()

	var sb strings.Builder
	decoder := xml.NewDecoder(rc)
	for {
		tok, err := decoder.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.CharData:
			sb.Write(t)
		case xml.EndElement:
			if t.Name.Local == "p" {
				sb.WriteByte('\n')
			}
		}
	}
	text := sb.String()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("no extractable text in DOCX %s", path)
	}
	return text, nil
}

func extractTxt(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	return string(data), nil
}
