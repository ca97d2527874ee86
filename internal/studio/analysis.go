// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package studio

import (
	"context"
	"fmt"
	"strings"

	"github.com/pdiddy/draftwise/internal/document"
	"github.com/pdiddy/draftwise/internal/prompts"
	"github.com/pdiddy/draftwise/pkg/types"
)

// MinSectionChars is the shortest pasted section accepted for feedback.
const MinSectionChars = 60

// AnalysisSectionTypes are the section kinds offered for feedback.
var AnalysisSectionTypes = []string{
	"Abstract",
	"Introduction",
	"Related Work",
	"Method",
	"Experimental Setup",
	"Results",
	"Discussion",
	"Limitations",
	"Conclusion",
}

// AnalyzeSection critiques one pasted paper section and stores the result,
// replacing any earlier analysis.
func (s *Studio) AnalyzeSection(ctx context.Context, sectionType, text string, tone prompts.Tone) (types.PaperAnalysis, error) {
	sectionType = strings.TrimSpace(sectionType)
	if sectionType == "" {
		return types.PaperAnalysis{}, inputErr("section_type", "choose a section type")
	}
	if tone != prompts.ToneMentor && tone != prompts.ToneReviewer {
		return types.PaperAnalysis{}, inputErr("tone", fmt.Sprintf("unknown tone %q", tone))
	}
	text = strings.TrimSpace(text)
	if len([]rune(text)) < MinSectionChars {
		return types.PaperAnalysis{}, inputErr("text", "paste a bit more text (at least a few paragraphs)")
	}
	cfg, err := s.config()
	if err != nil {
		return types.PaperAnalysis{}, err
	}

	prompt, err := prompts.SectionAnalyzer(cfg, sectionType, text, tone)
	if err != nil {
		return types.PaperAnalysis{}, err
	}
	report, err := s.generate(ctx, "analyze.section", prompt)
	if err != nil {
		return types.PaperAnalysis{}, err
	}
	pa := types.PaperAnalysis{
		Type:        types.AnalysisSection,
		SectionType: sectionType,
		Tone:        tone.Label(),
		ReportMD:    report,
		LastPrompt:  prompt,
	}
	if err := s.set(types.KeyPaperAnalysis, pa); err != nil {
		return types.PaperAnalysis{}, err
	}
	return pa, nil
}

// AnalyzePaper critiques a full paper's text. Text longer than
// document.MaxChars is cut to its head and tail first.
func (s *Studio) AnalyzePaper(ctx context.Context, text string, mode prompts.PaperMode) (types.PaperAnalysis, error) {
	if mode != prompts.PaperReader && mode != prompts.PaperReviewer {
		return types.PaperAnalysis{}, inputErr("mode", fmt.Sprintf("unknown paper mode %q", mode))
	}
	if strings.TrimSpace(text) == "" {
		return types.PaperAnalysis{}, inputErr("text", "no paper text to analyze")
	}
	cfg, err := s.config()
	if err != nil {
		return types.PaperAnalysis{}, err
	}

	short := document.Truncate(text, document.MaxChars)
	prompt, err := prompts.PaperAnalyzer(cfg, short, mode)
	if err != nil {
		return types.PaperAnalysis{}, err
	}
	report, err := s.generate(ctx, "analyze.paper", prompt)
	if err != nil {
		return types.PaperAnalysis{}, err
	}
	pa := types.PaperAnalysis{
		Type:       types.AnalysisPaper,
		Mode:       mode.Label(),
		CharsUsed:  document.CharCount(short),
		ReportMD:   report,
		LastPrompt: prompt,
	}
	if err := s.set(types.KeyPaperAnalysis, pa); err != nil {
		return types.PaperAnalysis{}, err
	}
	return pa, nil
}

// AnalyzePaperFile extracts the text of the document at path and
// analyzes it.
func (s *Studio) AnalyzePaperFile(ctx context.Context, path string, mode prompts.PaperMode) (types.PaperAnalysis, error) {
	if _, err := s.config(); err != nil {
		return types.PaperAnalysis{}, err
	}
	text, err := s.extractor.Extract(path)
	if err != nil {
		return types.PaperAnalysis{}, err
	}
	s.log.Info("paper text extracted", "path", path, "chars", document.CharCount(text))
	return s.AnalyzePaper(ctx, text, mode)
}

// RegenerateAnalysis reruns the prompt behind the stored analysis.
func (s *Studio) RegenerateAnalysis(ctx context.Context) (types.PaperAnalysis, error) {
	pa, ok := s.ws.PaperAnalysis()
	if !ok || strings.TrimSpace(pa.LastPrompt) == "" {
		return types.PaperAnalysis{}, inputErr("analysis", "no analysis to regenerate")
	}
	report, err := s.generate(ctx, "analyze.regenerate", pa.LastPrompt)
	if err != nil {
		return types.PaperAnalysis{}, err
	}
	pa.ReportMD = report
	if err := s.set(types.KeyPaperAnalysis, pa); err != nil {
		return types.PaperAnalysis{}, err
	}
	return pa, nil
}

// ShortenAnalysis compresses the stored analysis report.
func (s *Studio) ShortenAnalysis(ctx context.Context) (types.PaperAnalysis, error) {
	pa, ok := s.ws.PaperAnalysis()
	if !ok || strings.TrimSpace(pa.ReportMD) == "" {
		return types.PaperAnalysis{}, inputErr("analysis", "no analysis to shorten")
	}
	short, err := s.shorten(ctx, "analyze.shorten", pa.ReportMD)
	if err != nil {
		return types.PaperAnalysis{}, err
	}
	pa.ReportMD = short
	if err := s.set(types.KeyPaperAnalysis, pa); err != nil {
		return types.PaperAnalysis{}, err
	}
	return pa, nil
}

// ClearAnalysis removes the stored analysis.
func (s *Studio) ClearAnalysis() {
	s.ws.Clear(types.KeyPaperAnalysis)
}
