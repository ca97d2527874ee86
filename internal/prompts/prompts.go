// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package prompts assembles the instruction text sent to the text-generation
// backend for every DraftWise step. All functions are pure: the same
// configuration and inputs always produce the same prompt.
package prompts

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/pdiddy/draftwise/internal/sections"
	"github.com/pdiddy/draftwise/pkg/types"
)

// Heading placeholders the headed templates ask the model to reproduce.
// Filled in, they must parse with the sections package.
const (
	IdeaHeading   = "### " + sections.KindIdea + " <n>: <Title>"
	OptionHeading = "### " + sections.KindOption + " <n>: <Dataset/Source name>"
)

// WriteMode selects how much prose the Writing Studio produces.
type WriteMode string

const (
	WriteTemplate WriteMode = "template"
	WriteDraft    WriteMode = "draft"
)

// Tone selects the voice of section feedback.
type Tone string

const (
	ToneMentor   Tone = "mentor"
	ToneReviewer Tone = "reviewer"
)

// Label returns the tone as shown to the model.
func (t Tone) Label() string {
	if t == ToneReviewer {
		return "Reviewer mode (strict)"
	}
	return "Mentor mode (supportive)"
}

// PaperMode selects how a full paper is analyzed.
type PaperMode string

const (
	PaperReader   PaperMode = "reader"
	PaperReviewer PaperMode = "reviewer"
)

// Label returns the mode as shown to the model.
func (m PaperMode) Label() string {
	if m == PaperReviewer {
		return "Reviewer mode (critique)"
	}
	return "Reader mode (extract + explain)"
}

// FeasibilityInput is a student-proposed topic awaiting a feasibility check.
type FeasibilityInput struct {
	Title         string `json:"title"`
	Problem       string `json:"problem"`
	Plan          string `json:"plan"`
	DataSituation string `json:"data_situation"`
	Metric        string `json:"metric"`
	Baseline      string `json:"baseline"`
}

// WritingContext is the project material available to the Writing Studio.
type WritingContext struct {
	TopicTitle string
	TopicText  string
	PlanMD     string
	DatasetMD  string
	ExtraNotes string
}

// cfgView holds the display labels of a configuration.
type cfgView struct {
	Goal, Help, Degree, Track, Paper, Depth string
	TimeDays                                int
}

func view(cfg types.Configuration) cfgView {
	return cfgView{
		Goal:     cfg.Goal.Label(),
		Help:     cfg.HelpLevel.Label(),
		Degree:   cfg.DegreeLevel.Label(),
		Track:    cfg.Track,
		Paper:    cfg.PaperType.Label(),
		Depth:    cfg.OutputDepth.Label(),
		TimeDays: cfg.TimeDays,
	}
}

// BudgetRules returns the output-length rules for the configured depth.
// Unknown depths fall back to the balanced rules.
func BudgetRules(cfg types.Configuration) string {
	switch cfg.OutputDepth {
	case types.DepthShort:
		return `BUDGET RULES (must follow):
- Start with: "## TL;DR (read this only)" (max 6 bullets).
- Then: "## Next actions" (exactly 3 bullets).
- Then: "## Risks" (max 3 bullets).
- Keep total output under ~450 words.
- Max 6 bullets per section, max 2 lines per bullet.`
	case types.DepthDetailed:
		return `BUDGET RULES (must follow):
- Start with TL;DR (max 10 bullets).
- Then Next actions (max 5 bullets).
- Then Risks (max 5 bullets).
- Details allowed after that.
- Max 10 bullets per section, max 3 lines per bullet.`
	default:
		return `BUDGET RULES (must follow):
- Start with TL;DR (max 8 bullets).
- Then Next actions (exactly 3 bullets).
- Then Risks (max 4 bullets).
- Keep total output under ~900 words.
- Max 8 bullets per section, max 2–3 lines per bullet.`
	}
}

// depthBudget picks one of three budget lines by output depth.
func depthBudget(cfg types.Configuration, short, balanced, detailed string) string {
	switch cfg.OutputDepth {
	case types.DepthShort:
		return short
	case types.DepthDetailed:
		return detailed
	default:
		return balanced
	}
}

// TopicPicker asks for 3–5 topic ideas headed "### Idea <n>: <Title>".
func TopicPicker(cfg types.Configuration) (string, error) {
	return render("topic_picker", map[string]any{
		"Cfg":     view(cfg),
		"Budget":  BudgetRules(cfg),
		"Heading": IdeaHeading,
	})
}

// Feasibility asks for a verdict on a student-proposed topic. The reply
// carries a "**Status:** Green|Yellow|Red" line.
func Feasibility(cfg types.Configuration, in FeasibilityInput) (string, error) {
	return render("feasibility", map[string]any{
		"Cfg": view(cfg),
		"In":  in,
	})
}

// PlanBuilder asks for a bounded research plan for topic. A zero topic
// yields empty title and details.
func PlanBuilder(cfg types.Configuration, topic types.SelectedTopic) (string, error) {
	return render("plan_builder", map[string]any{
		"Cfg":    view(cfg),
		"Topic":  topic,
		"Budget": BudgetRules(cfg),
	})
}

// DatasetShortlist asks for up to five dataset options headed
// "### Option <n>: <Dataset/Source name>".
func DatasetShortlist(cfg types.Configuration, req types.ShortlistRequest) (string, error) {
	return render("dataset_shortlist", map[string]any{
		"Cfg":     view(cfg),
		"Req":     req,
		"Heading": OptionHeading,
	})
}

// DatasetReport asks for a mentor-style analysis of a profiled dataset.
// summary is a stats-only description; raw rows are never sent.
func DatasetReport(cfg types.Configuration, summary string) (string, error) {
	return render("dataset_report", map[string]any{
		"Cfg":     view(cfg),
		"Summary": summary,
	})
}

// WritingStudio asks for one paper section.
func WritingStudio(cfg types.Configuration, section string, ctx WritingContext, mode WriteMode) (string, error) {
	var rules string
	switch mode {
	case WriteTemplate:
		rules = `Write in TEMPLATE MODE:
- Use structured bullets and short paragraphs.
- Provide placeholders: [CITATION_TBD], [RESULTS_TBD], [DATASET_NAME_TBD].
- Do not write long prose. Prefer outlines + fill-in prompts.`
	case WriteDraft:
		rules = `Write in DRAFT MODE:
- Write full paragraphs, but stay concise.
- Still use placeholders where required: [CITATION_TBD], [RESULTS_TBD].`
	default:
		rules = "Write concisely with placeholders."
	}
	return render("writing_studio", map[string]any{
		"Cfg":       view(cfg),
		"ModeRules": rules,
		"Ctx":       ctx,
		"Section":   section,
	})
}

// Shorten asks for a compressed version of text.
func Shorten(cfg types.Configuration, text string) (string, error) {
	return render("shorten", map[string]any{
		"Cfg": view(cfg),
		"Budget": depthBudget(cfg,
			"Under ~350–450 words. Keep only TL;DR (max 6 bullets), Next actions (exactly 3 bullets), Risks (max 3 bullets).",
			"Under ~800–1000 words. Keep TL;DR (max 8 bullets), Next actions (exactly 3 bullets), Risks (max 4 bullets) + minimal supporting details.",
			"Keep it structured. Keep TL;DR + Next actions + Risks + compact supporting sections. No rambling.",
		),
		"Text": text,
	})
}

// SectionAnalyzer asks for feedback on one pasted paper section.
func SectionAnalyzer(cfg types.Configuration, sectionType, text string, tone Tone) (string, error) {
	return render("section_analyzer", map[string]any{
		"Cfg":         view(cfg),
		"SectionType": sectionType,
		"Tone":        tone.Label(),
		"Budget": depthBudget(cfg,
			"Keep total output under ~400 words. Max 5 bullets per section. Max 2 lines per bullet.",
			"Keep total output under ~850 words. Max 7 bullets per section. Max 2–3 lines per bullet.",
			"Keep output structured (no rambling). Max 10 bullets per section. Max 3 lines per bullet.",
		),
		"Text": text,
	})
}

// PaperAnalyzer asks for a structured analysis of a full paper. Reviewer
// mode appends a reviewer-notes block.
func PaperAnalyzer(cfg types.Configuration, paperText string, mode PaperMode) (string, error) {
	return render("paper_analyzer", map[string]any{
		"Cfg":      view(cfg),
		"Mode":     mode.Label(),
		"Reviewer": mode == PaperReviewer,
		"Budget": depthBudget(cfg,
			"Keep total output under ~600 words. Max 6 bullets per section. Max 2 lines per bullet.",
			"Keep total output under ~1200 words. Max 8 bullets per section. Max 2–3 lines per bullet.",
			"Keep output structured (no rambling). Max 12 bullets per section. Max 3 lines per bullet.",
		),
		"Text": paperText,
	})
}

func render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("rendering %s prompt: %w", name, err)
	}
	return strings.TrimSpace(buf.String()), nil
}
