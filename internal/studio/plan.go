// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package studio

import (
	"context"
	"strings"

	"github.com/pdiddy/draftwise/internal/prompts"
	"github.com/pdiddy/draftwise/pkg/types"
)

// GeneratePlan builds a research plan for the selected topic and stores it.
// Without a selected topic the plan is built from the configuration alone.
func (s *Studio) GeneratePlan(ctx context.Context) (string, error) {
	cfg, err := s.config()
	if err != nil {
		return "", err
	}
	topic, ok := s.ws.SelectedTopic()
	if !ok {
		s.log.Warn("building plan without a selected topic")
	}
	prompt, err := prompts.PlanBuilder(cfg, topic)
	if err != nil {
		return "", err
	}
	plan, err := s.generate(ctx, "plan", prompt)
	if err != nil {
		return "", err
	}
	if err := s.set(types.KeyPlan, plan); err != nil {
		return "", err
	}
	return plan, nil
}

// ShortenPlan compresses the stored plan and replaces it.
func (s *Studio) ShortenPlan(ctx context.Context) (string, error) {
	plan := strings.TrimSpace(s.ws.Text(types.KeyPlan))
	if plan == "" {
		return "", inputErr("plan", "no plan yet; generate a plan first")
	}
	short, err := s.shorten(ctx, "plan.shorten", plan)
	if err != nil {
		return "", err
	}
	if err := s.set(types.KeyPlan, short); err != nil {
		return "", err
	}
	return short, nil
}

// Plan returns the stored plan.
func (s *Studio) Plan() string {
	return s.ws.Text(types.KeyPlan)
}

// shorten runs the shorten prompt over text.
func (s *Studio) shorten(ctx context.Context, step, text string) (string, error) {
	cfg, err := s.config()
	if err != nil {
		return "", err
	}
	prompt, err := prompts.Shorten(cfg, text)
	if err != nil {
		return "", err
	}
	return s.generate(ctx, step, prompt)
}
