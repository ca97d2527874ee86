// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package studio

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/draftwise/internal/document"
	"github.com/pdiddy/draftwise/internal/generate"
	"github.com/pdiddy/draftwise/internal/prompts"
	"github.com/pdiddy/draftwise/internal/workspace"
	"github.com/pdiddy/draftwise/pkg/types"
)

// stub replies with the queued answers in order and records every prompt.
type stub struct {
	replies []string
	err     error
	prompts []string
	models  []string
}

func (s *stub) Generate(_ context.Context, prompt, model string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	s.models = append(s.models, model)
	if s.err != nil {
		return "", s.err
	}
	if len(s.replies) == 0 {
		return "ok", nil
	}
	r := s.replies[0]
	s.replies = s.replies[1:]
	return r, nil
}

func testConfig() types.Configuration {
	return types.Configuration{
		Goal:        types.GoalPersonalProject,
		HelpLevel:   types.HelpGuided,
		DegreeLevel: types.DegreeMasters,
		Track:       "Security",
		TimeDays:    30,
		PaperType:   types.PaperReport,
		OutputDepth: types.DepthShort,
	}
}

func newStudio(t *testing.T, gen generate.Generator) *Studio {
	t.Helper()
	s := New(workspace.New(), gen, "")
	require.NoError(t, s.Onboard(testConfig()))
	return s
}

const topicsReply = "Intro text\n### Idea 1: Phishing URLs\nbody one\n### Idea 2: Log anomalies\nbody two"

func TestNewDefaults(t *testing.T) {
	s := New(workspace.New(), &stub{}, "")
	assert.Equal(t, generate.DefaultModel, s.Model())
	assert.False(t, s.Workspace().Configured())
}

func TestOnboardRejectsInvalidConfig(t *testing.T) {
	s := New(workspace.New(), &stub{}, "m")
	cfg := testConfig()
	cfg.TimeDays = 3
	err := s.Onboard(cfg)
	var ie *InputError
	require.ErrorAs(t, err, &ie)
	assert.False(t, s.Workspace().Configured())
}

func TestStepsRequireConfig(t *testing.T) {
	gen := &stub{}
	s := New(workspace.New(), gen, "m")
	_, err := s.GenerateTopics(context.Background())
	var ie *InputError
	require.ErrorAs(t, err, &ie)
	assert.Empty(t, gen.prompts)
}

func TestGenerateAndSelectTopic(t *testing.T) {
	gen := &stub{replies: []string{topicsReply}}
	s := newStudio(t, gen)

	ideas, err := s.GenerateTopics(context.Background())
	require.NoError(t, err)
	require.Len(t, ideas, 2)
	assert.Equal(t, []string{generate.DefaultModel}, gen.models)
	assert.Equal(t, topicsReply, s.Workspace().Text(types.KeyTopicsRaw))

	topic, err := s.SelectTopic(2)
	require.NoError(t, err)
	assert.Equal(t, types.IdeaNumber("2"), topic.ID)
	assert.Equal(t, "Log anomalies", topic.Title)
	assert.Equal(t, "### Idea 2: Log anomalies\nbody two", topic.FullText)
	assert.Equal(t, types.SourceSuggested, topic.Source)

	stored, ok := s.Workspace().SelectedTopic()
	require.True(t, ok)
	assert.Equal(t, topic, stored)
}

func TestSelectTopicOutOfRange(t *testing.T) {
	s := newStudio(t, &stub{replies: []string{topicsReply}})
	_, err := s.SelectTopic(1)
	var ie *InputError
	require.ErrorAs(t, err, &ie, "no topics yet")

	_, err = s.GenerateTopics(context.Background())
	require.NoError(t, err)
	for _, pos := range []int{0, 3, -1} {
		_, err := s.SelectTopic(pos)
		require.ErrorAs(t, err, &ie, "position %d", pos)
	}
}

func TestRegeneratingTopicsKeepsSelection(t *testing.T) {
	gen := &stub{replies: []string{topicsReply, "### Idea 1: Something else\nx"}}
	s := newStudio(t, gen)
	_, err := s.GenerateTopics(context.Background())
	require.NoError(t, err)
	_, err = s.SelectTopic(1)
	require.NoError(t, err)

	_, err = s.GenerateTopics(context.Background())
	require.NoError(t, err)
	topic, ok := s.Workspace().SelectedTopic()
	require.True(t, ok)
	assert.Equal(t, "Phishing URLs", topic.Title)

	s.ClearTopic()
	_, ok = s.Workspace().SelectedTopic()
	assert.False(t, ok)
}

func TestGenerationFailureKeepsArtifacts(t *testing.T) {
	gen := &stub{replies: []string{topicsReply}}
	s := newStudio(t, gen)
	_, err := s.GenerateTopics(context.Background())
	require.NoError(t, err)

	gen.err = errors.New("quota exceeded")
	_, err = s.GenerateTopics(context.Background())
	var ge *generate.Error
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, topicsReply, s.Workspace().Text(types.KeyTopicsRaw))

	_, err = s.GeneratePlan(context.Background())
	require.ErrorAs(t, err, &ge)
	assert.Nil(t, s.Workspace().Get(types.KeyPlan))
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		report string
		want   string
	}{
		{"## Verdict\n**Status:** Green\nok", StatusGreen},
		{"**status:**   yellow", StatusYellow},
		{"**Status:** RED because", StatusRed},
		{"**Status:** Green / Yellow / Red", StatusGreen},
		{"Status: Green", StatusUnknown},
		{"", StatusUnknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseStatus(tt.report), tt.report)
	}
}

func TestOwnTopicPaths(t *testing.T) {
	gen := &stub{replies: []string{"## Verdict\n**Status:** Yellow\nScope down."}}
	s := newStudio(t, gen)
	in := prompts.FeasibilityInput{Title: "  URL classifier ", Problem: "Detect phishing.", DataSituation: "Public dataset available"}

	_, err := s.CheckFeasibility(context.Background(), prompts.FeasibilityInput{Title: "only title"})
	var ie *InputError
	require.ErrorAs(t, err, &ie)
	assert.Empty(t, gen.prompts)

	_, err = s.AcceptFeasibility(in)
	require.ErrorAs(t, err, &ie, "no report yet")

	f, err := s.CheckFeasibility(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, StatusYellow, f.Status)
	_, ok := s.Workspace().SelectedTopic()
	assert.False(t, ok, "checking does not select")

	topic, err := s.AcceptFeasibility(in)
	require.NoError(t, err)
	assert.Equal(t, types.IdeaNumber(types.UserTopicID), topic.ID)
	assert.Equal(t, "URL classifier", topic.Title)
	assert.Equal(t, types.SourceUserWithFeasibility, topic.Source)
	assert.Equal(t, StatusYellow, topic.FeasibilityStatus)
	assert.Contains(t, topic.FullText, "## DraftWise feasibility report\n## Verdict")

	own, err := s.UseOwnTopic(in)
	require.NoError(t, err)
	assert.Equal(t, types.SourceUser, own.Source)
	assert.True(t, strings.HasPrefix(own.FullText, "### User topic: URL classifier"))
}

func TestPlanWithoutTopic(t *testing.T) {
	gen := &stub{replies: []string{"## TL;DR\n- plan", "short plan"}}
	s := newStudio(t, gen)

	_, err := s.ShortenPlan(context.Background())
	var ie *InputError
	require.ErrorAs(t, err, &ie)
	assert.Empty(t, gen.prompts)

	plan, err := s.GeneratePlan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, plan, s.Plan())

	short, err := s.ShortenPlan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "short plan", short)
	assert.Equal(t, "short plan", s.Plan())
	assert.Contains(t, gen.prompts[1], "## TL;DR\n- plan")
}

const shortlistReply = "### Option 1: UCI Adult\n- census\n### Option 2: PhishTank\n- urls"

func TestShortlistAndChoose(t *testing.T) {
	gen := &stub{replies: []string{shortlistReply, shortlistReply}}
	s := newStudio(t, gen)

	_, err := s.Shortlist(context.Background(), types.ShortlistRequest{TaskType: " "})
	var ie *InputError
	require.ErrorAs(t, err, &ie)
	assert.Empty(t, gen.prompts)

	req := types.ShortlistRequest{TaskType: "Classification", DataConstraint: "Only public datasets", Notes: " tabular "}
	opts, err := s.Shortlist(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, opts, 2)

	stored, ok := s.Workspace().ShortlistRequest()
	require.True(t, ok)
	assert.Equal(t, "tabular", stored.Notes)

	tests := []struct {
		name          string
		pos           int
		justification string
		risk          string
	}{
		{"position", 3, "Good labels and size for a month.", "class imbalance"},
		{"short justification", 2, "  too short    ", "imbalance"},
		{"empty risk", 2, "Good labels and size for a month.", "  "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.ChooseDataset(tt.pos, tt.justification, tt.risk)
			require.ErrorAs(t, err, &ie)
		})
	}

	choice, err := s.ChooseDataset(2, "Good labels and size for a month.", "stale URLs")
	require.NoError(t, err)
	assert.Equal(t, ModeShortlist, choice.Mode)
	assert.Equal(t, "PhishTank", choice.PickedOption.Title)
	assert.Equal(t, "Classification", choice.TaskType)

	_, err = s.Shortlist(context.Background(), req)
	require.NoError(t, err)
	_, ok = s.Workspace().DatasetChoice()
	assert.True(t, ok, "regenerating the shortlist keeps the choice")
}

const csvData = "id,age,city\n1,30,Paris\n2,,Lyon\n3,41,Paris\n"

func TestProfileDatasetLocal(t *testing.T) {
	gen := &stub{}
	s := newStudio(t, gen)

	res, err := s.ProfileDataset(context.Background(), strings.NewReader(csvData), " age ", false)
	require.NoError(t, err)
	assert.NoError(t, res.Fallback)
	assert.Empty(t, gen.prompts)
	assert.Equal(t, ModeCSV, res.Report.Mode)
	assert.Equal(t, "age", res.Report.TargetHint)
	assert.Equal(t, 3, res.Report.Profile.Rows)
	assert.NotEmpty(t, res.Report.ReportMD)

	stored, ok := s.Workspace().DatasetReport()
	require.True(t, ok)
	assert.Equal(t, res.Report, stored)
}

func TestProfileDatasetAIFallback(t *testing.T) {
	gen := &stub{err: errors.New("backend down")}
	s := newStudio(t, gen)

	res, err := s.ProfileDataset(context.Background(), strings.NewReader(csvData), "", true)
	require.NoError(t, err)
	require.Error(t, res.Fallback)
	assert.Len(t, gen.prompts, 1)
	assert.NotContains(t, gen.prompts[0], "Paris", "raw rows are never sent")
	assert.NotEmpty(t, res.Report.ReportMD)

	gen.err = nil
	gen.replies = []string{"## AI report"}
	res, err = s.ProfileDataset(context.Background(), strings.NewReader(csvData), "", true)
	require.NoError(t, err)
	assert.NoError(t, res.Fallback)
	assert.Equal(t, "## AI report", res.Report.ReportMD)
}

func TestWritingContext(t *testing.T) {
	s := newStudio(t, &stub{replies: []string{shortlistReply}})
	assert.Equal(t, prompts.WritingContext{}, s.WritingContext())

	_, err := s.Shortlist(context.Background(), types.ShortlistRequest{TaskType: "Regression", DataConstraint: "Only public datasets"})
	require.NoError(t, err)
	_, err = s.ChooseDataset(1, "Good labels and size for a month.", "drift")
	require.NoError(t, err)
	ctx := s.WritingContext()
	assert.True(t, strings.HasPrefix(ctx.DatasetMD, "## Dataset decision\n- Picked: **UCI Adult**"))
	assert.Contains(t, ctx.DatasetMD, "### Option details\n### Option 1: UCI Adult")

	_, err = s.ProfileDataset(context.Background(), strings.NewReader(csvData), "", false)
	require.NoError(t, err)
	report, _ := s.Workspace().DatasetReport()
	assert.Equal(t, report.ReportMD, s.WritingContext().DatasetMD, "the CSV report wins")
}

func TestWriteSections(t *testing.T) {
	gen := &stub{replies: []string{"abstract text", "method text"}}
	s := newStudio(t, gen)

	_, err := s.WriteSections(context.Background(), []string{"Abstract", "Nope"}, prompts.WriteDraft, "")
	var ie *InputError
	require.ErrorAs(t, err, &ie)
	_, err = s.WriteSections(context.Background(), []string{"Abstract"}, "essay", "")
	require.ErrorAs(t, err, &ie)
	assert.Empty(t, gen.prompts)

	got, err := s.WriteSections(context.Background(), []string{"abstract", "Method", "Abstract"}, prompts.WriteTemplate, "keep it short")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"Abstract": "abstract text", "Method": "method text"}, got)
	require.Len(t, gen.prompts, 2)
	assert.Contains(t, gen.prompts[0], "keep it short")

	draft := s.Draft()
	assert.True(t, strings.HasPrefix(draft, "# DraftWise Paper Draft\n\n## Abstract"))

	s.ClearWriting()
	assert.Empty(t, s.Workspace().Writing())
	assert.Empty(t, s.Draft())
}

func TestWriteSectionsStopsAtFirstFailure(t *testing.T) {
	calls := 0
	gen := generate.Func(func(_ context.Context, _, _ string) (string, error) {
		calls++
		if calls == 2 {
			return "", errors.New("timeout")
		}
		return "text", nil
	})
	s := newStudio(t, gen)

	got, err := s.WriteSections(context.Background(), []string{"Abstract", "Introduction", "Method"}, prompts.WriteDraft, "")
	var ge *generate.Error
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, map[string]string{"Abstract": "text"}, got)
	assert.Equal(t, map[string]string{"Abstract": "text"}, s.Workspace().Writing())
	assert.Equal(t, 2, calls)
}

func TestRegenerateAndShortenSection(t *testing.T) {
	gen := &stub{replies: []string{"first", "second", "short"}}
	s := newStudio(t, gen)

	_, err := s.ShortenSection(context.Background(), "Method")
	var ie *InputError
	require.ErrorAs(t, err, &ie)

	_, err = s.WriteSections(context.Background(), []string{"related-work"}, prompts.WriteDraft, "")
	require.NoError(t, err)
	text, err := s.RegenerateSection(context.Background(), "Related Work", prompts.WriteDraft)
	require.NoError(t, err)
	assert.Equal(t, "second", text)

	text, err = s.ShortenSection(context.Background(), "Related Work (skeleton)")
	require.NoError(t, err)
	assert.Equal(t, "short", text)
	assert.Equal(t, map[string]string{"Related Work (skeleton)": "short"}, s.Workspace().Writing())
}

func TestAnalyzeSection(t *testing.T) {
	gen := &stub{replies: []string{"feedback", "feedback again", "brief"}}
	s := newStudio(t, gen)
	long := strings.Repeat("The introduction motivates the problem. ", 3)

	_, err := s.AnalyzeSection(context.Background(), "Introduction", "   too short   ", prompts.ToneMentor)
	var ie *InputError
	require.ErrorAs(t, err, &ie)
	_, err = s.RegenerateAnalysis(context.Background())
	require.ErrorAs(t, err, &ie)
	assert.Empty(t, gen.prompts)

	pa, err := s.AnalyzeSection(context.Background(), "Introduction", long, prompts.ToneReviewer)
	require.NoError(t, err)
	assert.Equal(t, types.AnalysisSection, pa.Type)
	assert.Equal(t, "Reviewer mode (strict)", pa.Tone)
	assert.Equal(t, gen.prompts[0], pa.LastPrompt)

	pa, err = s.RegenerateAnalysis(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "feedback again", pa.ReportMD)
	assert.Equal(t, gen.prompts[0], gen.prompts[1])

	pa, err = s.ShortenAnalysis(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "brief", pa.ReportMD)
	assert.Equal(t, "Introduction", pa.SectionType)

	s.ClearAnalysis()
	_, ok := s.Workspace().PaperAnalysis()
	assert.False(t, ok)
}

func TestAnalyzePaperTruncates(t *testing.T) {
	gen := &stub{replies: []string{"analysis"}}
	s := newStudio(t, gen)

	pa, err := s.AnalyzePaper(context.Background(), strings.Repeat("a", document.MaxChars+1000), prompts.PaperReviewer)
	require.NoError(t, err)
	assert.Equal(t, types.AnalysisPaper, pa.Type)
	assert.Equal(t, "Reviewer mode (critique)", pa.Mode)
	assert.Less(t, pa.CharsUsed, document.MaxChars+1000)
	assert.Contains(t, gen.prompts[0], "[...TRUNCATED...]")
	assert.Contains(t, gen.prompts[0], "## Reviewer notes")
}

func TestAnalyzePaperFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "paper.txt")
	require.NoError(t, os.WriteFile(path, []byte("We study phishing detection."), 0o644))

	gen := &stub{replies: []string{"analysis"}}
	s := newStudio(t, gen)
	pa, err := s.AnalyzePaperFile(context.Background(), path, prompts.PaperReader)
	require.NoError(t, err)
	assert.Equal(t, len("We study phishing detection."), pa.CharsUsed)
	assert.Contains(t, gen.prompts[0], "We study phishing detection.")

	empty := filepath.Join(t.TempDir(), "empty.txt")
	require.NoError(t, os.WriteFile(empty, []byte("  \n"), 0o644))
	_, err = s.AnalyzePaperFile(context.Background(), empty, prompts.PaperReader)
	assert.ErrorIs(t, err, document.ErrNoText)
	assert.Len(t, gen.prompts, 1)
}
