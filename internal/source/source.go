// Package source extracts plain text from a document on disk.
package source

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrUnsupportedFormat is returned for a file extension with no extractor.
	ErrUnsupportedFormat = errors.New("unsupported document format")
	// ErrInvalidUTF8 is returned when a text document is not valid UTF-8.
	ErrInvalidUTF8 = errors.New("document is not valid UTF-8")
)

// Extractor turns raw document bytes into plain text. Paragraphs are
// separated by a blank line.
type Extractor interface {
	Extract(r io.Reader) (string, error)
}

// SupportedExtensions lists the file extensions Load understands.
var SupportedExtensions = []string{".txt", ".text", ".md", ".markdown", ".html", ".htm", ".pdf", ".docx"}

// ForFile returns the extractor for filename. Files without an extension are
// treated as plain text.
func ForFile(filename string) (Extractor, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case "", ".txt", ".text":
		return &TextExtractor{}, nil
	case ".md", ".markdown":
		return &MarkdownExtractor{}, nil
	case ".html", ".htm":
		return &HTMLExtractor{}, nil
	case ".pdf":
		return &PDFExtractor{}, nil
	case ".docx":
		return &DOCXExtractor{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
}

// Document is the extracted text of one file.
type Document struct {
	Path   string
	Format string
	Text   string
}

// Load reads path fully and extracts its text.
func Load(path string) (*Document, error) {
	ex, err := ForFile(path)
	if err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("source: open %s: %w", path, err)
	}
	defer f.Close()

	text, err := ex.Extract(f)
	if err != nil {
		return nil, fmt.Errorf("source: extract %s: %w", path, err)
	}

	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if format == "" {
		format = "txt"
	}
	return &Document{Path: path, Format: format, Text: text}, nil
}
