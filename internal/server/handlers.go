// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pdiddy/draftwise/internal/draft"
	"github.com/pdiddy/draftwise/internal/pack"
	"github.com/pdiddy/draftwise/internal/workspace"
	"github.com/pdiddy/draftwise/pkg/types"
)

// WorkspaceView is the session snapshot returned by GET /api/workspace.
type WorkspaceView struct {
	Configured bool                 `json:"configured"`
	Config     *types.Configuration `json:"config"`
	Progress   []workspace.Step     `json:"progress"`
	Completed  int                  `json:"completed"`
	Artifacts  types.Artifacts      `json:"artifacts"`
}

func (s *Server) view() WorkspaceView {
	ws := s.studio.Workspace()
	v := WorkspaceView{
		Configured: ws.Configured(),
		Progress:   ws.Progress(),
		Artifacts:  ws.Artifacts(),
	}
	if cfg, ok := ws.Config(); ok {
		v.Config = &cfg
	}
	v.Completed = workspace.Completed(v.Progress)
	return v
}

func (s *Server) getWorkspace(c *gin.Context) {
	RespondOK(c, s.view())
}

func (s *Server) putConfig(c *gin.Context) {
	var cfg types.Configuration
	if !bind(c, &cfg) {
		return
	}
	if err := s.studio.Onboard(cfg); err != nil {
		respondErr(c, err)
		return
	}
	RespondOK(c, s.view())
}

func (s *Server) reset(c *gin.Context) {
	ws := s.studio.Workspace()
	ws.Reset()
	ws.Initialize()
	s.log.Info("workspace reset")
	RespondOK(c, s.view())
}

func (s *Server) exportPack(c *gin.Context) {
	p, err := pack.FromWorkspace(s.studio.Workspace())
	if err != nil {
		RespondError(c, http.StatusConflict, "not_configured", err)
		return
	}
	text, err := pack.Serialize(p)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", pack.DefaultFileName))
	c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(text))
}

func (s *Server) importPack(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxUpload))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	p, err := pack.Import(s.studio.Workspace(), string(body))
	if err != nil {
		respondErr(c, err)
		return
	}
	s.log.Info("pack imported", "created_at", p.CreatedAt, "format_version", p.FormatVersion)
	RespondOK(c, s.view())
}

func (s *Server) download(c *gin.Context) {
	kind, err := draft.ParseKind(c.Param("kind"))
	if err != nil {
		RespondError(c, http.StatusNotFound, "unknown_download", err)
		return
	}
	reviewed, _ := strconv.ParseBool(c.Query("reviewed"))
	d, err := draft.Render(s.studio.Workspace(), kind, reviewed)
	if err != nil {
		respondErr(c, err)
		return
	}
	content, err := d.Content()
	if err != nil {
		respondErr(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", d.FileName))
	c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(content))
}

// bind decodes a JSON body, answering 400 on failure.
func bind(c *gin.Context, v any) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return false
	}
	return true
}
