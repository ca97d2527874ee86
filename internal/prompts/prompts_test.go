// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package prompts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/draftwise/internal/sections"
	"github.com/pdiddy/draftwise/pkg/types"
)

func testConfig() types.Configuration {
	return types.Configuration{
		Goal:        types.GoalCollegeSubmission,
		HelpLevel:   types.HelpGuided,
		DegreeLevel: types.DegreeBachelors,
		Track:       "Computer vision",
		TimeDays:    21,
		PaperType:   types.PaperCollege,
		OutputDepth: types.DepthBalanced,
	}
}

func TestTopicPickerHeadingContract(t *testing.T) {
	p, err := TopicPicker(testConfig())
	require.NoError(t, err)
	assert.Contains(t, p, "### Idea <n>: <Title>")

	filled := strings.Replace(IdeaHeading, "<n>", "4", 1)
	filled = strings.Replace(filled, "<Title>", "Low-light detection", 1)
	blocks := sections.Ideas(filled + "\n**Problem (1–2 lines):**\n- ...")
	require.Len(t, blocks, 1)
	assert.Equal(t, 4, blocks[0].Number)
	assert.Equal(t, "Low-light detection", blocks[0].Title)
}

func TestDatasetShortlistHeadingContract(t *testing.T) {
	p, err := DatasetShortlist(testConfig(), types.ShortlistRequest{TaskType: "Classification", DataConstraint: "Public only"})
	require.NoError(t, err)
	assert.Contains(t, p, "### Option <n>: <Dataset/Source name>")
	assert.Contains(t, p, "Task type: Classification")

	filled := strings.Replace(OptionHeading, "<n>", "2", 1)
	filled = strings.Replace(filled, "<Dataset/Source name>", "CIFAR-10", 1)
	blocks := sections.Options(filled)
	require.Len(t, blocks, 1)
	assert.Equal(t, 2, blocks[0].Number)
	assert.Equal(t, "CIFAR-10", blocks[0].Title)
}

func TestPromptsArePure(t *testing.T) {
	cfg := testConfig()
	build := func() []string {
		topic, _ := TopicPicker(cfg)
		plan, _ := PlanBuilder(cfg, types.SelectedTopic{Title: "T", FullText: "body"})
		write, _ := WritingStudio(cfg, "Abstract", WritingContext{TopicTitle: "T"}, WriteDraft)
		paper, _ := PaperAnalyzer(cfg, "text", PaperReviewer)
		return []string{topic, plan, write, paper}
	}
	assert.Equal(t, build(), build())
}

func TestUserContextUsesLabels(t *testing.T) {
	p, err := TopicPicker(testConfig())
	require.NoError(t, err)
	for _, want := range []string{
		"- Goal: College submission",
		"- Degree level: Bachelors",
		"- Track: Computer vision",
		"- Time window: 21 days",
	} {
		assert.Contains(t, p, want)
	}
}

func TestBudgetRulesByDepth(t *testing.T) {
	cfg := testConfig()

	cfg.OutputDepth = types.DepthShort
	assert.Contains(t, BudgetRules(cfg), "under ~450 words")

	cfg.OutputDepth = types.DepthDetailed
	assert.Contains(t, BudgetRules(cfg), "Details allowed after that.")

	cfg.OutputDepth = types.DepthBalanced
	balanced := BudgetRules(cfg)
	assert.Contains(t, balanced, "under ~900 words")

	cfg.OutputDepth = ""
	assert.Equal(t, balanced, BudgetRules(cfg))
}

func TestPromptsAreTrimmed(t *testing.T) {
	p, err := Shorten(testConfig(), "  body  ")
	require.NoError(t, err)
	assert.Equal(t, strings.TrimSpace(p), p)
	assert.True(t, strings.HasPrefix(p, "You are DraftWise."))
	assert.Contains(t, p, "\"\"\"\n  body  \n\"\"\"")
}

func TestWritingStudioModes(t *testing.T) {
	cfg := testConfig()
	ctx := WritingContext{TopicTitle: "Edge inference", PlanMD: "## 1) Problem framing"}

	tmplMode, err := WritingStudio(cfg, "Method", ctx, WriteTemplate)
	require.NoError(t, err)
	assert.Contains(t, tmplMode, "TEMPLATE MODE")
	assert.Contains(t, tmplMode, "Write the section: Method")
	assert.NotContains(t, tmplMode, "Student notes")

	ctx.ExtraNotes = "Supervisor wants a latency table."
	draft, err := WritingStudio(cfg, "Method", ctx, WriteDraft)
	require.NoError(t, err)
	assert.Contains(t, draft, "DRAFT MODE")
	assert.Contains(t, draft, "Supervisor wants a latency table.")
}

func TestSectionAnalyzerTone(t *testing.T) {
	mentor, err := SectionAnalyzer(testConfig(), "Introduction", "text", ToneMentor)
	require.NoError(t, err)
	assert.Contains(t, mentor, "Mentor mode (supportive)")
	assert.Contains(t, mentor, "The student pasted the section: Introduction.")

	strict, err := SectionAnalyzer(testConfig(), "Introduction", "text", ToneReviewer)
	require.NoError(t, err)
	assert.Contains(t, strict, "Reviewer mode (strict)")
}

func TestPaperAnalyzerReviewerBlock(t *testing.T) {
	reader, err := PaperAnalyzer(testConfig(), "paper body", PaperReader)
	require.NoError(t, err)
	assert.NotContains(t, reader, "## Reviewer notes")
	assert.Contains(t, reader, "--- BEGIN PAPER TEXT ---\npaper body\n--- END PAPER TEXT ---")

	reviewer, err := PaperAnalyzer(testConfig(), "paper body", PaperReviewer)
	require.NoError(t, err)
	assert.Contains(t, reviewer, "## Reviewer notes")
}

func TestFeasibilityCarriesInput(t *testing.T) {
	p, err := Feasibility(testConfig(), FeasibilityInput{
		Title:         "Phishing URL detection",
		Problem:       "Detect phishing links.",
		DataSituation: "Public dataset available",
	})
	require.NoError(t, err)
	assert.Contains(t, p, "Title: Phishing URL detection")
	assert.Contains(t, p, "**Status:** Green / Yellow / Red")
	assert.Contains(t, p, "MVP you can finish in 21 days")
}
