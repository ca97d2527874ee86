// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package draft compiles Writing Studio sections into a single paper draft
// and renders workspace artifacts as downloadable markdown files.
package draft

import (
	"regexp"
	"sort"
	"strings"
)

// Section is one Writing Studio section. Key is the name it is stored under
// in the workspace; Title is its heading in the compiled draft.
type Section struct {
	Key   string
	Title string
}

// Sections lists the Writing Studio sections in paper order.
var Sections = []Section{
	{Key: "Abstract", Title: "Abstract"},
	{Key: "Introduction", Title: "Introduction"},
	{Key: "Related Work (skeleton)", Title: "Related Work"},
	{Key: "Method", Title: "Method"},
	{Key: "Experimental Setup", Title: "Experimental Setup"},
	{Key: "Limitations & Ethics", Title: "Limitations & Ethics"},
	{Key: "Conclusion & Future Work", Title: "Conclusion & Future Work"},
}

// draftHeading opens every compiled draft.
const draftHeading = "# DraftWise Paper Draft"

// placeholderPattern matches fill-in markers such as [CITATION_TBD].
var placeholderPattern = regexp.MustCompile(`\[([A-Z][A-Z0-9_]*_TBD)\]`)

// Keys returns the section keys in paper order.
func Keys() []string {
	keys := make([]string, len(Sections))
	for i, s := range Sections {
		keys[i] = s.Key
	}
	return keys
}

// Lookup resolves a section by key, title or slug ("related-work"),
// ignoring case.
func Lookup(name string) (Section, bool) {
	name = strings.TrimSpace(name)
	for _, s := range Sections {
		if strings.EqualFold(name, s.Key) || strings.EqualFold(name, s.Title) || strings.EqualFold(name, Slug(s.Title)) {
			return s, true
		}
	}
	return Section{}, false
}

// Slug lowercases title and joins its words with hyphens.
func Slug(title string) string {
	words := strings.FieldsFunc(strings.ToLower(title), func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	})
	return strings.Join(words, "-")
}

// Compile joins the non-blank sections of writing in paper order under a
// single draft heading. Sections not in the catalogue are ignored. It
// returns "" when no section has content.
func Compile(writing map[string]string) string {
	var parts []string
	for _, s := range Sections {
		text := strings.TrimSpace(writing[s.Key])
		if text == "" {
			continue
		}
		parts = append(parts, "## "+s.Title+"\n\n"+text+"\n")
	}
	if len(parts) == 0 {
		return ""
	}
	return draftHeading + "\n\n" + strings.Join(parts, "\n")
}

// SplitTLDR separates the "## TL;DR" block from the rest of a generated
// report. tldr runs from the TL;DR heading up to the next level-two heading;
// rest starts at that heading. Without a TL;DR heading, tldr is the whole
// text and rest is empty.
func SplitTLDR(text string) (tldr, rest string) {
	text = strings.TrimSpace(text)
	idx := strings.Index(text, "## TL;DR")
	if idx == -1 {
		return text, ""
	}
	head, tail, found := strings.Cut(text[idx:], "\n## ")
	if !found {
		return text, ""
	}
	return head, "## " + tail
}

// Placeholder counts one fill-in marker left in a text.
type Placeholder struct {
	Marker string
	Count  int
}

// Placeholders returns the fill-in markers in text, most frequent first and
// then alphabetically.
func Placeholders(text string) []Placeholder {
	counts := make(map[string]int)
	for _, m := range placeholderPattern.FindAllStringSubmatch(text, -1) {
		counts[m[1]]++
	}
	out := make([]Placeholder, 0, len(counts))
	for marker, n := range counts {
		out = append(out, Placeholder{Marker: marker, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Marker < out[j].Marker
	})
	return out
}
