// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sections splits generated markdown into numbered, headed blocks
// such as "### Idea 2: Title" or "### Option 4: Dataset name".
//
// A heading is recognized by a linear scan of each line (after trimming
// surrounding whitespace) against the grammar
//
//	heading = "###" ws+ kind ws+ digit+ ws* ":" ws* title
//
// where kind must match exactly, digits are ASCII, and title is the
// non-empty remainder with surrounding whitespace removed.
package sections

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pdiddy/draftwise/pkg/types"
)

// Kinds used by the prompt templates.
const (
	KindIdea   = "Idea"
	KindOption = "Option"
)

const marker = "###"

// Parse returns one block per heading of the given kind, in document order.
// Each block runs from its heading line up to the next matching heading or
// the end of the document. Text before the first heading is not part of any
// block. CRLF and lone CR line endings are read as LF. Duplicate numbers are
// kept. A document with no matching heading yields an empty slice.
func Parse(doc, kind string) []types.Block {
	doc = strings.ReplaceAll(doc, "\r\n", "\n")
	doc = strings.ReplaceAll(doc, "\r", "\n")
	lines := strings.Split(doc, "\n")

	type start struct {
		line   int
		number int
		title  string
	}
	var starts []start
	for i, line := range lines {
		if n, title, ok := ParseHeading(line, kind); ok {
			starts = append(starts, start{line: i, number: n, title: title})
		}
	}

	blocks := make([]types.Block, 0, len(starts))
	for k, s := range starts {
		end := len(lines)
		if k+1 < len(starts) {
			end = starts[k+1].line
		}
		blocks = append(blocks, types.Block{
			Number:  s.number,
			Title:   s.title,
			RawText: strings.TrimSpace(strings.Join(lines[s.line:end], "\n")),
		})
	}
	return blocks
}

// Ideas parses "### Idea n: Title" blocks.
func Ideas(doc string) []types.Block { return Parse(doc, KindIdea) }

// Options parses "### Option n: Name" blocks.
func Options(doc string) []types.Block { return Parse(doc, KindOption) }

// ParseHeading reports whether line is a heading of the given kind and
// returns its number and trimmed title.
func ParseHeading(line, kind string) (int, string, bool) {
	s := strings.TrimSpace(line)

	s, ok := strings.CutPrefix(s, marker)
	if !ok {
		return 0, "", false
	}
	s, ok = skipSpace(s, true)
	if !ok {
		return 0, "", false
	}
	s, ok = strings.CutPrefix(s, kind)
	if !ok || kind == "" {
		return 0, "", false
	}
	s, ok = skipSpace(s, true)
	if !ok {
		return 0, "", false
	}

	digits := 0
	for digits < len(s) && s[digits] >= '0' && s[digits] <= '9' {
		digits++
	}
	if digits == 0 {
		return 0, "", false
	}
	n, err := strconv.Atoi(s[:digits])
	if err != nil {
		return 0, "", false
	}
	s, _ = skipSpace(s[digits:], false)

	s, ok = strings.CutPrefix(s, ":")
	if !ok {
		return 0, "", false
	}
	title := strings.TrimSpace(s)
	if title == "" {
		return 0, "", false
	}
	return n, title, true
}

// Heading renders a heading in the form ParseHeading accepts.
func Heading(kind string, n int, title string) string {
	return marker + " " + kind + " " + strconv.Itoa(n) + ": " + title
}

// skipSpace drops leading whitespace. With required set it reports false
// when there was none.
func skipSpace(s string, required bool) (string, bool) {
	i := 0
	for i < len(s) {
		r, size := utf8.DecodeRuneInString(s[i:])
		if !unicode.IsSpace(r) {
			break
		}
		i += size
	}
	if required && i == 0 {
		return s, false
	}
	return s[i:], true
}

// Label formats a block for a picker list, e.g. "Idea 2: Title".
func Label(kind string, b types.Block) string {
	return kind + " " + strconv.Itoa(b.Number) + ": " + b.Title
}
