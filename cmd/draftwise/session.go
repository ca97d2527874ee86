// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/viper"

	"github.com/pdiddy/draftwise/internal/generate"
	"github.com/pdiddy/draftwise/internal/logger"
	"github.com/pdiddy/draftwise/internal/pack"
	"github.com/pdiddy/draftwise/internal/secrets"
	"github.com/pdiddy/draftwise/internal/studio"
	"github.com/pdiddy/draftwise/internal/workspace"
	"github.com/pdiddy/draftwise/pkg/types"
)

// appConfig collects settings from flags, the config file and DRAFTWISE_*
// environment variables.
func appConfig() types.AppConfig {
	provider := types.Provider(strings.ToLower(viper.GetString("provider")))
	model := viper.GetString("model")
	if model == "" {
		model = generate.DefaultModelFor(provider)
	}
	return types.AppConfig{
		AI: types.AIConfig{
			HTTPConfig: types.HTTPConfig{Timeout: viper.GetDuration("timeout")},
			Provider:   provider,
			Model:      model,
			APIKey:     secrets.APIKey(loadedSecrets, provider),
		},
		Server: types.ServerConfig{
			Addr:         viper.GetString("server.addr"),
			AllowOrigins: viper.GetStringSlice("server.allow_origins"),
		},
		Workspace: viper.GetString("workspace"),
		LogMode:   viper.GetString("log_mode"),
	}
}

// workspacePath returns the configured pack file, or the default name.
func workspacePath(cfg types.AppConfig) string {
	if cfg.Workspace == "" {
		return pack.DefaultFileName
	}
	return cfg.Workspace
}

// session is one CLI invocation's studio, loaded from and saved to the
// workspace pack file.
type session struct {
	cfg    types.AppConfig
	path   string
	studio *studio.Studio
	log    *logger.Logger
}

// openSession loads the workspace file if it exists. A missing API key only
// fails the steps that call the backend.
func openSession(defaultLogMode string) (*session, error) {
	cfg := appConfig()
	path := workspacePath(cfg)

	mode := cfg.LogMode
	if mode == "" {
		mode = defaultLogMode
	}
	log, err := logger.New(mode)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	ws := workspace.New()
	if _, err := os.Stat(path); err == nil {
		p, err := pack.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("loading workspace %s: %w", path, err)
		}
		ws.Restore(p.Config, p.Artifacts)
		log.Debug("workspace loaded", "path", path, "created_at", p.CreatedAt)
	}

	gen, err := generate.New(cfg.AI)
	if err != nil {
		genErr := err
		gen = generate.Func(func(context.Context, string, string) (string, error) {
			return "", fmt.Errorf("%w (put the key in .secrets/ or the environment)", genErr)
		})
	}

	st := studio.New(ws, gen, cfg.AI.Model, studio.WithLogger(log))
	return &session{cfg: cfg, path: path, studio: st, log: log}, nil
}

// requireConfigured fails with a hint when init has not been run.
func (s *session) requireConfigured() error {
	if !s.studio.Workspace().Configured() {
		return errors.New("workspace is not configured; run \"draftwise init\" first")
	}
	return nil
}

// save writes the workspace back to its pack file.
func (s *session) save() error {
	p, err := pack.FromWorkspace(s.studio.Workspace())
	if err != nil {
		return err
	}
	if err := pack.WriteFile(s.path, p); err != nil {
		return err
	}
	s.log.Debug("workspace saved", "path", s.path)
	return nil
}

// close flushes the logger.
func (s *session) close() {
	s.log.Sync()
}

// run opens a session, calls fn, and saves the workspace when fn succeeds
// or returns partial progress.
func run(fn func(ctx context.Context, s *session) error) error {
	s, err := openSession("off")
	if err != nil {
		return err
	}
	defer s.close()
	if err := s.requireConfigured(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	runErr := fn(ctx, s)
	if err := s.save(); err != nil {
		return errors.Join(runErr, err)
	}
	return runErr
}
