// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package studio

import (
	"context"
	"fmt"
	"strings"

	"github.com/pdiddy/draftwise/internal/draft"
	"github.com/pdiddy/draftwise/internal/prompts"
	"github.com/pdiddy/draftwise/pkg/types"
)

// WritingContext gathers the topic, plan and dataset material the Writing
// Studio draws on. Missing pieces are left empty.
func (s *Studio) WritingContext() prompts.WritingContext {
	topic, _ := s.ws.SelectedTopic()
	ctx := prompts.WritingContext{
		TopicTitle: topic.Title,
		TopicText:  topic.FullText,
		PlanMD:     s.ws.Text(types.KeyPlan),
	}
	if r, ok := s.ws.DatasetReport(); ok {
		ctx.DatasetMD = r.ReportMD
	} else if dc, ok := s.ws.DatasetChoice(); ok {
		ctx.DatasetMD = choiceSnippet(dc)
	}
	return ctx
}

func choiceSnippet(dc types.DatasetChoice) string {
	return strings.Join([]string{
		"## Dataset decision",
		"- Picked: **" + dc.PickedOption.Title + "**",
		"- Justification: " + dc.Justification,
		"- Anticipated risk: " + dc.AnticipatedRisk,
		"",
		"### Option details",
		dc.PickedOption.RawText,
	}, "\n")
}

// resolveSections maps names to catalogue sections, dropping repeats.
func resolveSections(names []string) ([]draft.Section, error) {
	if len(names) == 0 {
		return nil, inputErr("sections", "choose at least one section")
	}
	seen := map[string]bool{}
	var out []draft.Section
	for _, name := range names {
		sec, ok := draft.Lookup(name)
		if !ok {
			return nil, inputErr("sections", fmt.Sprintf("unknown section %q", name))
		}
		if !seen[sec.Key] {
			seen[sec.Key] = true
			out = append(out, sec)
		}
	}
	return out, nil
}

func checkMode(mode prompts.WriteMode) error {
	if mode != prompts.WriteTemplate && mode != prompts.WriteDraft {
		return inputErr("mode", fmt.Sprintf("unknown writing mode %q", mode))
	}
	return nil
}

// WriteSections generates the named sections in order. Each section is
// stored as soon as it succeeds; the first failure stops the run and is
// returned along with the sections already written.
func (s *Studio) WriteSections(ctx context.Context, names []string, mode prompts.WriteMode, notes string) (map[string]string, error) {
	secs, err := resolveSections(names)
	if err != nil {
		return nil, err
	}
	if err := checkMode(mode); err != nil {
		return nil, err
	}
	cfg, err := s.config()
	if err != nil {
		return nil, err
	}

	wctx := s.WritingContext()
	wctx.ExtraNotes = strings.TrimSpace(notes)
	written := map[string]string{}
	for _, sec := range secs {
		text, err := s.writeSection(ctx, cfg, sec, wctx, mode)
		if err != nil {
			return written, fmt.Errorf("writing %s: %w", sec.Key, err)
		}
		written[sec.Key] = text
	}
	return written, nil
}

// RegenerateSection rewrites one section. Extra notes are not carried over.
func (s *Studio) RegenerateSection(ctx context.Context, name string, mode prompts.WriteMode) (string, error) {
	secs, err := resolveSections([]string{name})
	if err != nil {
		return "", err
	}
	if err := checkMode(mode); err != nil {
		return "", err
	}
	cfg, err := s.config()
	if err != nil {
		return "", err
	}
	return s.writeSection(ctx, cfg, secs[0], s.WritingContext(), mode)
}

func (s *Studio) writeSection(ctx context.Context, cfg types.Configuration, sec draft.Section, wctx prompts.WritingContext, mode prompts.WriteMode) (string, error) {
	prompt, err := prompts.WritingStudio(cfg, sec.Key, wctx, mode)
	if err != nil {
		return "", err
	}
	text, err := s.generate(ctx, "write."+draft.Slug(sec.Title), prompt)
	if err != nil {
		return "", err
	}
	s.ws.SetWritingSection(sec.Key, text)
	return text, nil
}

// ShortenSection compresses a generated section in place.
func (s *Studio) ShortenSection(ctx context.Context, name string) (string, error) {
	secs, err := resolveSections([]string{name})
	if err != nil {
		return "", err
	}
	sec := secs[0]
	text := strings.TrimSpace(s.ws.Writing()[sec.Key])
	if text == "" {
		return "", inputErr("sections", fmt.Sprintf("%s has not been generated yet", sec.Key))
	}
	short, err := s.shorten(ctx, "write.shorten", text)
	if err != nil {
		return "", err
	}
	s.ws.SetWritingSection(sec.Key, short)
	return short, nil
}

// ClearWriting removes every generated section.
func (s *Studio) ClearWriting() {
	s.ws.Clear(types.KeyWriting)
}

// Draft compiles the generated sections into one markdown document.
func (s *Studio) Draft() string {
	return draft.Compile(s.ws.Writing())
}
