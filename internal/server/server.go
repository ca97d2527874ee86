// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes one DraftWise studio session over HTTP. Requests
// that touch the session are serialized; generation calls run under the
// request context and stop when the client goes away.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pdiddy/draftwise/internal/logger"
	"github.com/pdiddy/draftwise/internal/studio"
	"github.com/pdiddy/draftwise/pkg/types"
)

// DefaultAddr is the listen address when none is configured.
const DefaultAddr = "127.0.0.1:8080"

// maxUpload caps CSV and PDF uploads.
const maxUpload = 32 << 20

type Server struct {
	studio *studio.Studio
	cfg    types.ServerConfig
	log    *logger.Logger
	mu     sync.Mutex
	engine *gin.Engine
}

// New builds the router for st. A nil log discards request logs.
func New(st *studio.Studio, cfg types.ServerConfig, log *logger.Logger) *Server {
	if log == nil {
		log = logger.Nop()
	}
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	s := &Server{studio: st, cfg: cfg, log: log.With("component", "server")}
	s.engine = s.routes()
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.engine }

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.MaxMultipartMemory = maxUpload
	r.Use(gin.Recovery())
	r.Use(RequestLogger(s.log))
	r.Use(CORS(s.cfg.AllowOrigins))

	r.GET("/healthcheck", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	api := r.Group("/api", serialize(&s.mu))
	{
		api.GET("/workspace", s.getWorkspace)
		api.PUT("/config", s.putConfig)
		api.POST("/reset", s.reset)

		api.GET("/pack", s.exportPack)
		api.POST("/pack", s.importPack)
		api.GET("/downloads/:kind", s.download)

		api.GET("/topics", s.listTopics)
		api.POST("/topics", s.generateTopics)
		api.POST("/topics/select", s.selectTopic)
		api.DELETE("/topics/selection", s.clearTopic)
		api.POST("/topics/own", s.ownTopic)
		api.POST("/topics/feasibility", s.checkFeasibility)
		api.POST("/topics/feasibility/accept", s.acceptFeasibility)

		api.GET("/plan", s.getPlan)
		api.POST("/plan", s.generatePlan)
		api.POST("/plan/shorten", s.shortenPlan)

		api.POST("/dataset/shortlist", s.shortlist)
		api.POST("/dataset/choice", s.chooseDataset)
		api.POST("/dataset/profile", s.profileDataset)

		api.GET("/writing", s.getWriting)
		api.POST("/writing", s.writeSections)
		api.DELETE("/writing", s.clearWriting)
		api.POST("/writing/:section/regenerate", s.regenerateSection)
		api.POST("/writing/:section/shorten", s.shortenSection)

		api.POST("/analysis/section", s.analyzeSection)
		api.POST("/analysis/paper", s.analyzePaper)
		api.POST("/analysis/regenerate", s.regenerateAnalysis)
		api.POST("/analysis/shorten", s.shortenAnalysis)
		api.DELETE("/analysis", s.clearAnalysis)
	}
	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", "addr", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving %s: %w", s.cfg.Addr, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.log.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}
