// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pdiddy/draftwise/internal/prompts"
	"github.com/pdiddy/draftwise/internal/studio"
	"github.com/pdiddy/draftwise/pkg/types"
)

type positionRequest struct {
	Position int `json:"position"`
}

func (s *Server) listTopics(c *gin.Context) {
	topic, ok := s.studio.Workspace().SelectedTopic()
	resp := gin.H{"topics": s.studio.Topics(), "selected": nil}
	if ok {
		resp["selected"] = topic
	}
	RespondOK(c, resp)
}

func (s *Server) generateTopics(c *gin.Context) {
	ideas, err := s.studio.GenerateTopics(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	RespondOK(c, gin.H{"topics": ideas})
}

func (s *Server) selectTopic(c *gin.Context) {
	var req positionRequest
	if !bind(c, &req) {
		return
	}
	topic, err := s.studio.SelectTopic(req.Position)
	if err != nil {
		respondErr(c, err)
		return
	}
	RespondOK(c, gin.H{"selected": topic})
}

func (s *Server) clearTopic(c *gin.Context) {
	s.studio.ClearTopic()
	c.Status(http.StatusNoContent)
}

func (s *Server) ownTopic(c *gin.Context) {
	var in prompts.FeasibilityInput
	if !bind(c, &in) {
		return
	}
	topic, err := s.studio.UseOwnTopic(in)
	if err != nil {
		respondErr(c, err)
		return
	}
	RespondOK(c, gin.H{"selected": topic})
}

func (s *Server) checkFeasibility(c *gin.Context) {
	var in prompts.FeasibilityInput
	if !bind(c, &in) {
		return
	}
	f, err := s.studio.CheckFeasibility(c.Request.Context(), in)
	if err != nil {
		respondErr(c, err)
		return
	}
	RespondOK(c, f)
}

func (s *Server) acceptFeasibility(c *gin.Context) {
	var in prompts.FeasibilityInput
	if !bind(c, &in) {
		return
	}
	topic, err := s.studio.AcceptFeasibility(in)
	if err != nil {
		respondErr(c, err)
		return
	}
	RespondOK(c, gin.H{"selected": topic})
}

func (s *Server) getPlan(c *gin.Context) {
	RespondOK(c, gin.H{"plan": s.studio.Plan()})
}

func (s *Server) generatePlan(c *gin.Context) {
	plan, err := s.studio.GeneratePlan(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	RespondOK(c, gin.H{"plan": plan})
}

func (s *Server) shortenPlan(c *gin.Context) {
	plan, err := s.studio.ShortenPlan(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	RespondOK(c, gin.H{"plan": plan})
}

func (s *Server) shortlist(c *gin.Context) {
	var req types.ShortlistRequest
	if !bind(c, &req) {
		return
	}
	options, err := s.studio.Shortlist(c.Request.Context(), req)
	if err != nil {
		respondErr(c, err)
		return
	}
	RespondOK(c, gin.H{"options": options})
}

type choiceRequest struct {
	Position        int    `json:"position"`
	Justification   string `json:"justification"`
	AnticipatedRisk string `json:"anticipated_risk"`
}

func (s *Server) chooseDataset(c *gin.Context) {
	var req choiceRequest
	if !bind(c, &req) {
		return
	}
	choice, err := s.studio.ChooseDataset(req.Position, req.Justification, req.AnticipatedRisk)
	if err != nil {
		respondErr(c, err)
		return
	}
	RespondOK(c, choice)
}

// profileDataset takes a multipart CSV upload in "file" with optional
// "target_hint" and "use_ai" fields.
func (s *Server) profileDataset(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_multipart_form", err)
		return
	}
	f, err := fh.Open()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_multipart_form", err)
		return
	}
	defer f.Close()

	useAI, _ := strconv.ParseBool(c.PostForm("use_ai"))
	res, err := s.studio.ProfileDataset(c.Request.Context(), f, c.PostForm("target_hint"), useAI)
	var ie *studio.InputError
	if errors.As(err, &ie) {
		respondErr(c, err)
		return
	}
	if err != nil {
		RespondError(c, http.StatusUnprocessableEntity, "invalid_dataset", err)
		return
	}
	resp := gin.H{"report": res.Report}
	if res.Fallback != nil {
		resp["fallback"] = res.Fallback.Error()
	}
	RespondOK(c, resp)
}

func (s *Server) getWriting(c *gin.Context) {
	RespondOK(c, gin.H{"sections": s.studio.Workspace().Writing(), "draft": s.studio.Draft()})
}

type writeRequest struct {
	Sections []string          `json:"sections"`
	Mode     prompts.WriteMode `json:"mode"`
	Notes    string            `json:"notes"`
}

func writeMode(m prompts.WriteMode) prompts.WriteMode {
	if m == "" {
		return prompts.WriteTemplate
	}
	return m
}

func (s *Server) writeSections(c *gin.Context) {
	var req writeRequest
	if !bind(c, &req) {
		return
	}
	if _, err := s.studio.WriteSections(c.Request.Context(), req.Sections, writeMode(req.Mode), req.Notes); err != nil {
		respondErr(c, err)
		return
	}
	s.getWriting(c)
}

func (s *Server) regenerateSection(c *gin.Context) {
	var req writeRequest
	if c.Request.ContentLength > 0 && !bind(c, &req) {
		return
	}
	text, err := s.studio.RegenerateSection(c.Request.Context(), c.Param("section"), writeMode(req.Mode))
	if err != nil {
		respondErr(c, err)
		return
	}
	RespondOK(c, gin.H{"text": text})
}

func (s *Server) shortenSection(c *gin.Context) {
	text, err := s.studio.ShortenSection(c.Request.Context(), c.Param("section"))
	if err != nil {
		respondErr(c, err)
		return
	}
	RespondOK(c, gin.H{"text": text})
}

func (s *Server) clearWriting(c *gin.Context) {
	s.studio.ClearWriting()
	c.Status(http.StatusNoContent)
}

type sectionAnalysisRequest struct {
	SectionType string       `json:"section_type"`
	Text        string       `json:"text"`
	Tone        prompts.Tone `json:"tone"`
}

func (s *Server) analyzeSection(c *gin.Context) {
	var req sectionAnalysisRequest
	if !bind(c, &req) {
		return
	}
	if req.Tone == "" {
		req.Tone = prompts.ToneMentor
	}
	pa, err := s.studio.AnalyzeSection(c.Request.Context(), req.SectionType, req.Text, req.Tone)
	if err != nil {
		respondErr(c, err)
		return
	}
	RespondOK(c, pa)
}

// analyzePaper takes a multipart upload in "file" (PDF or text) or pasted
// text in "text", with an optional "mode" of reader or reviewer.
func (s *Server) analyzePaper(c *gin.Context) {
	mode := prompts.PaperMode(c.PostForm("mode"))
	if mode == "" {
		mode = prompts.PaperReader
	}

	fh, err := c.FormFile("file")
	if err != nil {
		if !errors.Is(err, http.ErrMissingFile) && !errors.Is(err, http.ErrNotMultipart) {
			RespondError(c, http.StatusBadRequest, "invalid_multipart_form", err)
			return
		}
		pa, err := s.studio.AnalyzePaper(c.Request.Context(), c.PostForm("text"), mode)
		if err != nil {
			respondErr(c, err)
			return
		}
		RespondOK(c, pa)
		return
	}

	dir, err := os.MkdirTemp("", "draftwise-upload-")
	if err != nil {
		respondErr(c, err)
		return
	}
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "paper"+strings.ToLower(filepath.Ext(fh.Filename)))
	if err := c.SaveUploadedFile(fh, path); err != nil {
		respondErr(c, err)
		return
	}

	pa, err := s.studio.AnalyzePaperFile(c.Request.Context(), path, mode)
	if err != nil {
		respondErr(c, err)
		return
	}
	RespondOK(c, pa)
}

func (s *Server) regenerateAnalysis(c *gin.Context) {
	pa, err := s.studio.RegenerateAnalysis(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	RespondOK(c, pa)
}

func (s *Server) shortenAnalysis(c *gin.Context) {
	pa, err := s.studio.ShortenAnalysis(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	RespondOK(c, pa)
}

func (s *Server) clearAnalysis(c *gin.Context) {
	s.studio.ClearAnalysis()
	c.Status(http.StatusNoContent)
}
