// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package document extracts plain text from uploaded papers.
package document

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

// MaxChars caps how much paper text is sent for analysis.
const MaxChars = 45000

const truncationMarker = "\n\n[...TRUNCATED...]\n\n"

// ErrNoText is returned when a document contains no extractable text,
// typically a scanned PDF without a text layer.
var ErrNoText = errors.New("no extractable text found; it may be a scanned document, try a text-based PDF")

// Error reports a document that could not be read.
type Error struct {
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("extracting document text: %v", e.Err)
	}
	return fmt.Sprintf("extracting text from %s: %v", e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Extractor turns a document file into plain text.
type Extractor interface {
	Extract(path string) (string, error)
}

// Files extracts PDFs page by page and reads any other file as UTF-8 text.
type Files struct{}

// Extract returns the text of the file at path. Empty results are reported
// as ErrNoText wrapped in *Error.
func (Files) Extract(path string) (string, error) {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return ExtractPDFFile(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", &Error{Path: path, Err: err}
	}
	if !utf8.Valid(data) {
		return "", &Error{Path: path, Err: errors.New("file is not UTF-8 text")}
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", &Error{Path: path, Err: ErrNoText}
	}
	return text, nil
}

// ExtractPDFFile opens path as a PDF and returns its text.
func ExtractPDFFile(path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", &Error{Path: path, Err: fmt.Errorf("opening pdf: %w", err)}
	}
	defer f.Close()

	text, err := pageText(reader)
	if err != nil {
		return "", &Error{Path: path, Err: err}
	}
	return text, nil
}

// ExtractPDF reads a PDF of the given size from r and returns its text.
func ExtractPDF(r io.ReaderAt, size int64) (string, error) {
	reader, err := pdf.NewReader(r, size)
	if err != nil {
		return "", &Error{Err: fmt.Errorf("opening pdf: %w", err)}
	}
	text, err := pageText(reader)
	if err != nil {
		return "", &Error{Err: err}
	}
	return text, nil
}

// pageText joins the non-blank pages of a PDF with blank lines. The pdf
// package panics on some malformed files; that is reported as an error.
func pageText(reader *pdf.Reader) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("malformed pdf: %v", r)
		}
	}()

	var pages []string
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		t, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("reading page %d: %w", i, err)
		}
		if strings.TrimSpace(t) != "" {
			pages = append(pages, t)
		}
	}

	text = strings.TrimSpace(strings.Join(pages, "\n\n"))
	if text == "" {
		return "", ErrNoText
	}
	return text, nil
}

// Truncate keeps text within maxChars characters by keeping the first 70%
// and the last 30% around a marker. Shorter text is returned unchanged.
func Truncate(text string, maxChars int) string {
	runes := []rune(text)
	if len(runes) <= maxChars {
		return text
	}
	head := int(float64(maxChars) * 0.7)
	tail := int(float64(maxChars) * 0.3)
	return string(runes[:head]) + truncationMarker + string(runes[len(runes)-tail:])
}

// CharCount returns the number of characters in text.
func CharCount(text string) int {
	return utf8.RuneCountInString(text)
}
