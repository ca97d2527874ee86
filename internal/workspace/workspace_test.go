// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package workspace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/draftwise/pkg/types"
)

func testConfig(track string) types.Configuration {
	return types.Configuration{
		Goal:        types.GoalCollegeSubmission,
		HelpLevel:   types.HelpGuided,
		DegreeLevel: types.DegreeBachelors,
		Track:       track,
		TimeDays:    14,
		PaperType:   types.PaperCollege,
		OutputDepth: types.DepthBalanced,
	}
}

func TestNewDefaults(t *testing.T) {
	w := New()

	assert.False(t, w.Configured())
	_, ok := w.Config()
	assert.False(t, ok)

	a := w.Artifacts()
	for _, k := range types.ArtifactKeys {
		require.Contains(t, a, k)
		if k == types.KeyWriting {
			assert.Equal(t, map[string]any{}, a[k])
			continue
		}
		assert.Nil(t, a[k], "key %s", k)
	}
}

func TestInitializeIsIdempotent(t *testing.T) {
	w := New()
	w.SetConfig(testConfig("NLP"))
	require.NoError(t, w.Set(types.KeyPlan, "## Plan"))

	w.Initialize()

	assert.True(t, w.Configured())
	assert.Equal(t, "## Plan", w.Text(types.KeyPlan))
}

func TestZeroValueInitializes(t *testing.T) {
	var w Workspace
	w.Initialize()
	assert.False(t, w.Configured())
	assert.Contains(t, w.Artifacts(), types.KeyWriting)
}

func TestSetConfigKeepsArtifacts(t *testing.T) {
	w := New()
	w.SetConfig(testConfig("NLP"))
	require.NoError(t, w.Set(types.KeyPlan, "plan v1"))
	w.SetWritingSection("Abstract", "abstract text")

	w.SetConfig(testConfig("Cybersecurity"))

	cfg, ok := w.Config()
	require.True(t, ok)
	assert.Equal(t, "Cybersecurity", cfg.Track)
	assert.Equal(t, "plan v1", w.Text(types.KeyPlan))
	assert.Equal(t, map[string]string{"Abstract": "abstract text"}, w.Writing())
}

func TestResetThenInitialize(t *testing.T) {
	w := New()
	w.SetConfig(testConfig("NLP"))
	require.NoError(t, w.Set(types.KeyPlan, "plan"))
	require.NoError(t, w.Set(types.KeySelectedTopic, types.SelectedTopic{ID: "1", Title: "T"}))
	w.SetWritingSection("Method", "m")

	w.Reset()
	w.Initialize()

	assert.False(t, w.Configured())
	_, ok := w.Config()
	assert.False(t, ok)
	assert.Equal(t, emptyArtifacts(), w.Artifacts())
	_, hasTopic := w.SelectedTopic()
	assert.False(t, hasTopic)
	assert.Empty(t, w.Writing())
}

func TestRestoreOverwrites(t *testing.T) {
	w := New()
	require.NoError(t, w.Set(types.KeyPlan, "old plan"))

	imported := types.Artifacts{"plan": "new plan", "custom": []any{1.0, "x"}}
	w.Restore(testConfig("MLOps"), imported)

	assert.True(t, w.Configured())
	cfg, _ := w.Config()
	assert.Equal(t, "MLOps", cfg.Track)
	assert.Equal(t, "new plan", w.Text(types.KeyPlan))
	assert.Equal(t, []any{1.0, "x"}, w.Get("custom"))
}

func TestArtifactsIsACopy(t *testing.T) {
	w := New()
	w.SetWritingSection("Abstract", "v1")

	snap := w.Artifacts()
	w.SetWritingSection("Abstract", "v2")

	assert.Equal(t, map[string]any{"Abstract": "v1"}, snap[types.KeyWriting])
}

func TestTypedArtifacts(t *testing.T) {
	w := New()
	topic := types.SelectedTopic{ID: "2", Title: "Phishing", FullText: "### Idea 2: Phishing", Source: types.SourceSuggested}
	require.NoError(t, w.Set(types.KeySelectedTopic, topic))

	got, ok := w.SelectedTopic()
	require.True(t, ok)
	assert.Equal(t, topic, got)

	// Stored form is the generic JSON value, not the struct.
	_, isMap := w.Get(types.KeySelectedTopic).(map[string]any)
	assert.True(t, isMap)

	opts := []types.Block{{Number: 1, Title: "A", RawText: "### Option 1: A"}}
	require.NoError(t, w.Set(types.KeyDatasetShortlistOptions, opts))
	assert.Equal(t, opts, w.ShortlistOptions())

	w.Clear(types.KeySelectedTopic)
	_, ok = w.SelectedTopic()
	assert.False(t, ok)
}

func TestProgress(t *testing.T) {
	w := New()
	assert.Equal(t, 0, Completed(w.Progress()))

	require.NoError(t, w.Set(types.KeySelectedTopic, types.SelectedTopic{ID: "1", Title: "T"}))
	require.NoError(t, w.Set(types.KeyPlan, "plan"))
	w.SetWritingSection("Abstract", "   ")

	steps := w.Progress()
	assert.Equal(t, 2, Completed(steps))
	assert.False(t, steps[3].Done, "whitespace-only sections do not count")

	require.NoError(t, w.Set(types.KeyDatasetChoice, types.DatasetChoice{Mode: "shortlist"}))
	w.SetWritingSection("Abstract", "text")
	require.NoError(t, w.Set(types.KeyPaperAnalysis, types.PaperAnalysis{Type: types.AnalysisSection, ReportMD: "r"}))
	assert.Equal(t, 5, Completed(w.Progress()))
}
