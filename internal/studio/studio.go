// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package studio implements the DraftWise steps: topic selection, plan
// building, dataset help, the writing studio and paper analysis. Each step
// validates user input, assembles a prompt, calls the text-generation
// backend, and writes its artifact to the workspace only after the call
// succeeds. A failed call leaves the previous artifact in place.
package studio

import (
	"context"
	"errors"
	"time"

	"github.com/pdiddy/draftwise/internal/document"
	"github.com/pdiddy/draftwise/internal/generate"
	"github.com/pdiddy/draftwise/internal/logger"
	"github.com/pdiddy/draftwise/internal/workspace"
	"github.com/pdiddy/draftwise/pkg/types"
)

// InputError reports missing or too-short user input. It is always returned
// before any backend call.
type InputError struct {
	Field string
	Msg   string
}

func (e *InputError) Error() string { return e.Msg }

func inputErr(field, msg string) error {
	return &InputError{Field: field, Msg: msg}
}

// Studio runs DraftWise steps against one workspace.
type Studio struct {
	ws        *workspace.Workspace
	gen       generate.Generator
	extractor document.Extractor
	model     string
	log       *logger.Logger
}

// Option configures a Studio.
type Option func(*Studio)

// WithExtractor sets the document extractor used by AnalyzePaperFile.
func WithExtractor(e document.Extractor) Option {
	return func(s *Studio) { s.extractor = e }
}

// WithLogger sets the logger. The default discards output.
func WithLogger(l *logger.Logger) Option {
	return func(s *Studio) { s.log = l }
}

// New returns a Studio over ws. An empty model uses generate.DefaultModel.
func New(ws *workspace.Workspace, gen generate.Generator, model string, opts ...Option) *Studio {
	if model == "" {
		model = generate.DefaultModel
	}
	s := &Studio{
		ws:        ws,
		gen:       gen,
		extractor: document.Files{},
		model:     model,
		log:       logger.Nop(),
	}
	for _, o := range opts {
		o(s)
	}
	ws.Initialize()
	return s
}

// Workspace returns the workspace the studio writes to.
func (s *Studio) Workspace() *workspace.Workspace { return s.ws }

// Model returns the model identifier sent with every request.
func (s *Studio) Model() string { return s.model }

// Onboard validates cfg and stores it. Existing artifacts are kept.
func (s *Studio) Onboard(cfg types.Configuration) error {
	if err := cfg.Validate(); err != nil {
		return inputErr("config", err.Error())
	}
	s.ws.SetConfig(cfg)
	s.log.Info("workspace configured", "track", cfg.Track, "time_days", cfg.TimeDays)
	return nil
}

// config returns the workspace configuration or an InputError when
// onboarding has not happened.
func (s *Studio) config() (types.Configuration, error) {
	cfg, ok := s.ws.Config()
	if !ok {
		return types.Configuration{}, inputErr("config", "workspace is not configured; complete onboarding first")
	}
	return cfg, nil
}

// generate sends prompt to the backend. Failures are returned as
// *generate.Error.
func (s *Studio) generate(ctx context.Context, step, prompt string) (string, error) {
	start := time.Now()
	text, err := s.gen.Generate(ctx, prompt, s.model)
	if err != nil {
		var ge *generate.Error
		if !errors.As(err, &ge) {
			err = &generate.Error{Err: err}
		}
		s.log.Warn("generation failed", "step", step, "model", s.model, "error", err)
		return "", err
	}
	s.log.Info("generated",
		"step", step,
		"model", s.model,
		"prompt_chars", len(prompt),
		"reply_chars", len(text),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return text, nil
}

// set stores an artifact. Values built by this package always encode.
func (s *Studio) set(key string, v any) error {
	return s.ws.Set(key, v)
}
