// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package studio

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/pdiddy/draftwise/internal/prompts"
	"github.com/pdiddy/draftwise/internal/sections"
	"github.com/pdiddy/draftwise/pkg/types"
)

// Feasibility verdicts.
const (
	StatusGreen   = "Green"
	StatusYellow  = "Yellow"
	StatusRed     = "Red"
	StatusUnknown = "Unknown"
)

// DataSituations are the suggested answers for a student's data situation.
var DataSituations = []string{
	"Public dataset available",
	"I will scrape (legal/allowed)",
	"I will create synthetic data",
	"I have private data (risky)",
}

var statusPattern = regexp.MustCompile(`(?i)\*\*Status:\*\*\s*(Green|Yellow|Red)`)

// ParseStatus returns the verdict on the first "**Status:**" line of a
// feasibility report, or StatusUnknown.
func ParseStatus(report string) string {
	m := statusPattern.FindStringSubmatch(report)
	if m == nil {
		return StatusUnknown
	}
	v := strings.ToLower(m[1])
	return strings.ToUpper(v[:1]) + v[1:]
}

// GenerateTopics asks for a fresh topic shortlist and stores it. The current
// selection is kept.
func (s *Studio) GenerateTopics(ctx context.Context) ([]types.Block, error) {
	cfg, err := s.config()
	if err != nil {
		return nil, err
	}
	prompt, err := prompts.TopicPicker(cfg)
	if err != nil {
		return nil, err
	}
	raw, err := s.generate(ctx, "topics", prompt)
	if err != nil {
		return nil, err
	}
	if err := s.set(types.KeyTopicsRaw, raw); err != nil {
		return nil, err
	}
	ideas := sections.Ideas(raw)
	if len(ideas) == 0 {
		s.log.Warn("no idea headings detected", "step", "topics")
	}
	return ideas, nil
}

// Topics returns the ideas parsed from the stored shortlist.
func (s *Studio) Topics() []types.Block {
	return sections.Ideas(s.ws.Text(types.KeyTopicsRaw))
}

// SelectTopic confirms the idea at position (1-based, in shortlist order).
// Positions are used instead of idea numbers because numbers may repeat.
func (s *Studio) SelectTopic(position int) (types.SelectedTopic, error) {
	ideas := s.Topics()
	if len(ideas) == 0 {
		return types.SelectedTopic{}, inputErr("topic", "no topic ideas to pick from; generate topics first")
	}
	if position < 1 || position > len(ideas) {
		return types.SelectedTopic{}, inputErr("topic", fmt.Sprintf("pick a topic between 1 and %d", len(ideas)))
	}
	idea := ideas[position-1]
	topic := types.SelectedTopic{
		ID:       types.IdeaNumber(strconv.Itoa(idea.Number)),
		Title:    idea.Title,
		FullText: idea.RawText,
		Source:   types.SourceSuggested,
	}
	if err := s.set(types.KeySelectedTopic, topic); err != nil {
		return types.SelectedTopic{}, err
	}
	return topic, nil
}

// ClearTopic removes the selected topic.
func (s *Studio) ClearTopic() {
	s.ws.Clear(types.KeySelectedTopic)
}

// normalize trims every field of a feasibility input and requires a title
// and problem statement.
func normalize(in prompts.FeasibilityInput) (prompts.FeasibilityInput, error) {
	in = prompts.FeasibilityInput{
		Title:         strings.TrimSpace(in.Title),
		Problem:       strings.TrimSpace(in.Problem),
		Plan:          strings.TrimSpace(in.Plan),
		DataSituation: strings.TrimSpace(in.DataSituation),
		Metric:        strings.TrimSpace(in.Metric),
		Baseline:      strings.TrimSpace(in.Baseline),
	}
	if in.Title == "" || in.Problem == "" {
		return in, inputErr("topic", "fill in at least the topic title and problem statement")
	}
	return in, nil
}

func userTopicText(in prompts.FeasibilityInput) string {
	return strings.Join([]string{
		"### User topic: " + in.Title,
		"",
		"**Problem statement:**",
		in.Problem,
		"",
		"**Rough plan:**",
		in.Plan,
		"",
		"**Data situation:** " + in.DataSituation,
		"",
		"**Metric:** " + in.Metric,
		"",
		"**Baseline:** " + in.Baseline,
	}, "\n")
}

// UseOwnTopic selects a student-proposed topic without a feasibility check.
func (s *Studio) UseOwnTopic(in prompts.FeasibilityInput) (types.SelectedTopic, error) {
	in, err := normalize(in)
	if err != nil {
		return types.SelectedTopic{}, err
	}
	topic := types.SelectedTopic{
		ID:       types.UserTopicID,
		Title:    in.Title,
		FullText: userTopicText(in),
		Source:   types.SourceUser,
	}
	if err := s.set(types.KeySelectedTopic, topic); err != nil {
		return types.SelectedTopic{}, err
	}
	return topic, nil
}

// Feasibility is a stored feasibility report and its parsed verdict.
type Feasibility struct {
	Report string `json:"report_md"`
	Status string `json:"status"`
}

// CheckFeasibility asks for a verdict on a student-proposed topic and
// stores the report. The topic is not selected.
func (s *Studio) CheckFeasibility(ctx context.Context, in prompts.FeasibilityInput) (Feasibility, error) {
	in, err := normalize(in)
	if err != nil {
		return Feasibility{}, err
	}
	cfg, err := s.config()
	if err != nil {
		return Feasibility{}, err
	}
	prompt, err := prompts.Feasibility(cfg, in)
	if err != nil {
		return Feasibility{}, err
	}
	report, err := s.generate(ctx, "feasibility", prompt)
	if err != nil {
		return Feasibility{}, err
	}
	if err := s.set(types.KeyFeasibilityRaw, report); err != nil {
		return Feasibility{}, err
	}
	return Feasibility{Report: report, Status: ParseStatus(report)}, nil
}

// AcceptFeasibility selects a student-proposed topic with the stored
// feasibility report attached.
func (s *Studio) AcceptFeasibility(in prompts.FeasibilityInput) (types.SelectedTopic, error) {
	in, err := normalize(in)
	if err != nil {
		return types.SelectedTopic{}, err
	}
	report := strings.TrimSpace(s.ws.Text(types.KeyFeasibilityRaw))
	if report == "" {
		return types.SelectedTopic{}, inputErr("feasibility", "no feasibility report yet; run the feasibility check first")
	}

	full := strings.Join([]string{
		"### User topic: " + in.Title,
		"",
		"**Problem statement:**",
		in.Problem,
		"",
		"**Rough plan:**",
		in.Plan,
		"",
		"**Data situation:** " + in.DataSituation,
		"**Metric:** " + in.Metric,
		"**Baseline:** " + in.Baseline,
		"",
		"---",
		"",
		"## DraftWise feasibility report",
		report,
	}, "\n")

	topic := types.SelectedTopic{
		ID:                types.UserTopicID,
		Title:             in.Title,
		FullText:          full,
		Source:            types.SourceUserWithFeasibility,
		FeasibilityStatus: ParseStatus(report),
	}
	if err := s.set(types.KeySelectedTopic, topic); err != nil {
		return types.SelectedTopic{}, err
	}
	return topic, nil
}
