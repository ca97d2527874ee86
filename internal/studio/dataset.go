// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package studio

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/draftwise/internal/dataset"
	"github.com/pdiddy/draftwise/internal/prompts"
	"github.com/pdiddy/draftwise/internal/sections"
	"github.com/pdiddy/draftwise/pkg/types"
)

// MinJustification is the shortest accepted dataset justification.
const MinJustification = 15

// Dataset record modes.
const (
	ModeShortlist = "shortlist"
	ModeCSV       = "csv"
)

// TaskTypes and DataConstraints are the suggested shortlist parameters.
var (
	TaskTypes = []string{
		"Classification",
		"Regression",
		"Clustering",
		"Information Retrieval / Search",
		"NLP (text)",
		"Computer Vision",
		"Systems / Logs",
		"Cybersecurity",
	}
	DataConstraints = []string{
		"Only public datasets",
		"Public + scraping is okay",
		"Public + synthetic data is okay",
	}
)

// Shortlist asks for dataset options and stores the raw reply, the parsed
// options and the request. An existing dataset choice is kept.
func (s *Studio) Shortlist(ctx context.Context, req types.ShortlistRequest) ([]types.Block, error) {
	req = types.ShortlistRequest{
		TaskType:       strings.TrimSpace(req.TaskType),
		DataConstraint: strings.TrimSpace(req.DataConstraint),
		Notes:          strings.TrimSpace(req.Notes),
	}
	if req.TaskType == "" {
		return nil, inputErr("task_type", "choose a task type")
	}
	if req.DataConstraint == "" {
		return nil, inputErr("data_constraint", "choose a data constraint")
	}
	cfg, err := s.config()
	if err != nil {
		return nil, err
	}

	prompt, err := prompts.DatasetShortlist(cfg, req)
	if err != nil {
		return nil, err
	}
	raw, err := s.generate(ctx, "dataset.shortlist", prompt)
	if err != nil {
		return nil, err
	}

	options := sections.Options(raw)
	if len(options) == 0 {
		s.log.Warn("no option headings detected", "step", "dataset.shortlist")
	}
	if err := s.set(types.KeyDatasetShortlistRaw, raw); err != nil {
		return nil, err
	}
	if err := s.set(types.KeyDatasetShortlistOptions, options); err != nil {
		return nil, err
	}
	if err := s.set(types.KeyDatasetShortlistRequest, req); err != nil {
		return nil, err
	}
	return options, nil
}

// ChooseDataset records the option at position (1-based) with the
// student's justification and anticipated risk.
func (s *Studio) ChooseDataset(position int, justification, risk string) (types.DatasetChoice, error) {
	options := s.ws.ShortlistOptions()
	if len(options) == 0 {
		return types.DatasetChoice{}, inputErr("option", "no dataset options to pick from; run the shortlist first")
	}
	if position < 1 || position > len(options) {
		return types.DatasetChoice{}, inputErr("option", fmt.Sprintf("pick an option between 1 and %d", len(options)))
	}
	justification = strings.TrimSpace(justification)
	if len([]rune(justification)) < MinJustification {
		return types.DatasetChoice{}, inputErr("justification", "write a slightly longer justification (at least ~2 lines)")
	}
	risk = strings.TrimSpace(risk)
	if risk == "" {
		return types.DatasetChoice{}, inputErr("risk", "state at least one anticipated risk")
	}

	req, _ := s.ws.ShortlistRequest()
	choice := types.DatasetChoice{
		Mode:            ModeShortlist,
		TaskType:        req.TaskType,
		DataConstraint:  req.DataConstraint,
		Notes:           req.Notes,
		PickedOption:    options[position-1],
		Justification:   justification,
		AnticipatedRisk: risk,
	}
	if err := s.set(types.KeyDatasetChoice, choice); err != nil {
		return types.DatasetChoice{}, err
	}
	return choice, nil
}

// DatasetResult is the outcome of a CSV analysis. Fallback holds the
// generation error when an AI report was requested but the local report
// was used instead.
type DatasetResult struct {
	Report   types.DatasetReport
	Fallback error
}

// ProfileDataset profiles the CSV in r and stores a dataset report. With
// useAI the narrative comes from the backend, falling back to the local
// report if generation fails.
func (s *Studio) ProfileDataset(ctx context.Context, r io.Reader, targetHint string, useAI bool) (DatasetResult, error) {
	cfg, err := s.config()
	if err != nil {
		return DatasetResult{}, err
	}
	profile, err := dataset.Profile(ctx, r)
	if err != nil {
		return DatasetResult{}, fmt.Errorf("profiling dataset: %w", err)
	}
	s.log.Info("dataset profiled", "rows", profile.Rows, "cols", profile.Columns, "dup_rows", profile.DuplicateRows)

	targetHint = strings.TrimSpace(targetHint)
	var result DatasetResult
	report := ""
	if useAI {
		report, result.Fallback = s.datasetNarrative(ctx, cfg, *profile, targetHint)
		if result.Fallback != nil {
			s.log.Warn("falling back to local dataset report", "error", result.Fallback)
		}
	}
	if report == "" {
		report = dataset.LocalReport(cfg, *profile, targetHint)
	}

	result.Report = types.DatasetReport{
		Mode:       ModeCSV,
		TargetHint: targetHint,
		Profile:    dataset.Compact(*profile),
		ReportMD:   report,
	}
	if err := s.set(types.KeyDataset, result.Report); err != nil {
		return DatasetResult{}, err
	}
	return result, nil
}

func (s *Studio) datasetNarrative(ctx context.Context, cfg types.Configuration, p types.DatasetProfile, targetHint string) (string, error) {
	summary, err := dataset.Summary(p, targetHint)
	if err != nil {
		return "", err
	}
	prompt, err := prompts.DatasetReport(cfg, summary)
	if err != nil {
		return "", err
	}
	return s.generate(ctx, "dataset.report", prompt)
}
