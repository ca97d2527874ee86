// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pack

import (
	"encoding/json"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/draftwise/internal/workspace"
	"github.com/pdiddy/draftwise/pkg/types"
)

func testConfig() types.Configuration {
	return types.Configuration{
		Goal:        types.GoalPersonalProject,
		HelpLevel:   types.HelpDIY,
		DegreeLevel: types.DegreeMasters,
		Track:       "Распределённые системы",
		TimeDays:    30,
		PaperType:   types.PaperConference,
		OutputDepth: types.DepthDetailed,
	}
}

func populated(t *testing.T) *workspace.Workspace {
	t.Helper()
	w := workspace.New()
	w.SetConfig(testConfig())
	require.NoError(t, w.Set(types.KeySelectedTopic, types.SelectedTopic{
		ID: "2", Title: "Consensus <fast>", FullText: "### Idea 2: Consensus <fast>\nbody", Source: types.SourceSuggested,
	}))
	require.NoError(t, w.Set(types.KeyPlan, "## 1) Problem framing\n- ü"))
	require.NoError(t, w.Set(types.KeyDataset, types.DatasetReport{
		Mode: "csv",
		Profile: types.DatasetProfile{
			Rows: 120, Columns: 4, DuplicateRows: 3,
			TopMissing: []types.MissingColumn{{Column: "age", MissingPct: 12.5}},
			NumericCols: []string{"age"}, CategoryCols: []string{"name"},
		},
		ReportMD: "## Dataset overview",
	}))
	w.SetWritingSection("Abstract", "abstract")
	require.NoError(t, w.Set("extra", map[string]any{"flag": true, "list": []any{1, "two", nil}}))
	return w
}

func TestRoundTrip(t *testing.T) {
	w := populated(t)
	cfg, _ := w.Config()

	text, err := Serialize(Build(cfg, w.Artifacts()))
	require.NoError(t, err)

	doc, err := Deserialize(text)
	require.NoError(t, err)
	require.NoError(t, Validate(doc))

	p, err := Open(doc)
	require.NoError(t, err)

	restored := workspace.New()
	restored.Restore(p.Config, p.Artifacts)

	gotCfg, ok := restored.Config()
	require.True(t, ok)
	assert.Equal(t, cfg, gotCfg)
	assert.Equal(t, w.Artifacts(), restored.Artifacts())
}

func TestBuildStampsHeader(t *testing.T) {
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	orig := now
	now = func() time.Time { return fixed }
	t.Cleanup(func() { now = orig })

	p := Build(testConfig(), types.Artifacts{})
	assert.Equal(t, 1, p.FormatVersion)
	assert.Equal(t, "DraftWise", p.AppTag)
	assert.Equal(t, "2026-03-01T12:00:00Z", p.CreatedAt)
}

func TestBuildIsASnapshot(t *testing.T) {
	arts := types.Artifacts{"plan": "v1", "writing": map[string]any{"Abstract": "a1"}}
	p := Build(testConfig(), arts)
	before, err := Serialize(p)
	require.NoError(t, err)

	arts["plan"] = "v2"
	arts["writing"].(map[string]any)["Abstract"] = "a2"

	after, err := Serialize(p)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestSerializeKeepsNonASCII(t *testing.T) {
	text, err := Serialize(Build(testConfig(), types.Artifacts{"note": "a < b && 東京"}))
	require.NoError(t, err)

	assert.Contains(t, text, "Распределённые системы")
	assert.Contains(t, text, "a < b && 東京")
	assert.Contains(t, text, "\n  \"format_version\": 1,")
	assert.False(t, strings.HasSuffix(text, "\n"))
}

func TestSerializeDeterministic(t *testing.T) {
	p := Build(testConfig(), types.Artifacts{"b": 1, "a": 2, "c": map[string]any{"z": 1, "y": 2}})
	first, err := Serialize(p)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := Serialize(p)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestDeserializeParseError(t *testing.T) {
	for _, text := range []string{"", "{", "{\"a\": }", "not json"} {
		_, err := Deserialize(text)
		var pe *ParseError
		require.ErrorAs(t, err, &pe, "input %q", text)
	}
}

func TestDeserializeDoesNotCheckShape(t *testing.T) {
	_, err := Deserialize(`[1, 2, 3]`)
	assert.NoError(t, err)
}

// validPack returns a pack object with every check passing.
func validPack() map[string]any {
	return map[string]any{
		"format_version": 1,
		"created_at":     "2026-01-01T00:00:00Z",
		"app_tag":        "DraftWise",
		"config": map[string]any{
			"goal": "college-submission", "help_level": "guided", "degree_level": "bachelors",
			"track": "NLP", "time_days": 14, "paper_type": "college", "output_depth": "balanced",
		},
		"artifacts": map[string]any{"plan": "p"},
	}
}

func docOf(t *testing.T, v any) Document {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	doc, err := Deserialize(string(data))
	require.NoError(t, err)
	return doc
}

// invalidPacks lists one mutation of a valid pack per validation failure.
var invalidPacks = []struct {
	name   string
	mutate func(m map[string]any) any
	reason Reason
}{
	{"not an object", func(m map[string]any) any { return []any{m} }, ReasonNotObject},
	{"string document", func(m map[string]any) any { return "DraftWise" }, ReasonNotObject},
	{"wrong app tag", func(m map[string]any) any { m["app_tag"] = "Other"; return m }, ReasonAppTag},
	{"missing app tag", func(m map[string]any) any { delete(m, "app_tag"); return m }, ReasonAppTag},
	{"config absent", func(m map[string]any) any { delete(m, "config"); return m }, ReasonConfigMissing},
	{"artifacts absent", func(m map[string]any) any { delete(m, "artifacts"); return m }, ReasonArtifactsMissing},
	{"config not object", func(m map[string]any) any { m["config"] = "cfg"; return m }, ReasonConfigNotObject},
	{"config null", func(m map[string]any) any { m["config"] = nil; return m }, ReasonConfigNotObject},
	{"artifacts not object", func(m map[string]any) any { m["artifacts"] = []any{}; return m }, ReasonArtifactsNotObject},
	{"version absent", func(m map[string]any) any { delete(m, "format_version"); return m }, ReasonFormatVersion},
	{"version string", func(m map[string]any) any { m["format_version"] = "1"; return m }, ReasonFormatVersion},
	{"version float", func(m map[string]any) any { m["format_version"] = 1.5; return m }, ReasonFormatVersion},
	{"version zero", func(m map[string]any) any { m["format_version"] = 0; return m }, ReasonFormatVersion},
	{"version negative", func(m map[string]any) any { m["format_version"] = -1; return m }, ReasonFormatVersion},
}

func TestValidateEachCondition(t *testing.T) {
	for _, tt := range invalidPacks {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(docOf(t, tt.mutate(validPack())))
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.reason, ve.Reason)
			assert.True(t, errors.Is(err, &ValidationError{Reason: tt.reason}))
		})
	}
}

func TestValidateVersionLiteral(t *testing.T) {
	text := `{"format_version": 1.0, "app_tag": "DraftWise", "config": {}, "artifacts": {}}`
	doc, err := Deserialize(text)
	require.NoError(t, err)
	err = Validate(doc)
	assert.True(t, errors.Is(err, &ValidationError{Reason: ReasonFormatVersion}))
}

func TestValidateAcceptsFutureVersions(t *testing.T) {
	for _, v := range []int{1, 2, 17} {
		m := validPack()
		m["format_version"] = v
		assert.NoError(t, Validate(docOf(t, m)), "version %d", v)
	}
}

func TestValidateVersionLiterals(t *testing.T) {
	tests := []struct {
		version string
		ok      bool
	}{
		{"1", true},
		{"99999999999999999999", true},
		{"1e2", false},
		{"1E0", false},
		{"2.0", false},
		{"-0", false},
		{"-99999999999999999999", false},
	}
	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			doc, err := Deserialize(`{"format_version": ` + tt.version + `, "app_tag": "DraftWise", "config": {}, "artifacts": {}}`)
			require.NoError(t, err)
			err = Validate(doc)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.True(t, errors.Is(err, &ValidationError{Reason: ReasonFormatVersion}))
			}
		})
	}
}

func TestOpenHugeVersion(t *testing.T) {
	doc, err := Deserialize(`{"format_version": 99999999999999999999, "app_tag": "DraftWise", "config": {}, "artifacts": {}}`)
	require.NoError(t, err)
	p, err := Open(doc)
	require.NoError(t, err)
	assert.Equal(t, math.MaxInt, p.FormatVersion)
}

func TestOpenConfigFieldTypes(t *testing.T) {
	m := validPack()
	m["config"].(map[string]any)["time_days"] = "fourteen"
	_, err := Open(docOf(t, m))
	assert.True(t, errors.Is(err, &ValidationError{Reason: ReasonConfigFields}))
}

func TestImportLeavesWorkspaceOnFailure(t *testing.T) {
	w := populated(t)
	before := w.Artifacts()
	beforeCfg, _ := w.Config()

	texts := map[string]string{"malformed": "{broken"}
	for _, tt := range invalidPacks {
		data, err := json.Marshal(tt.mutate(validPack()))
		require.NoError(t, err)
		texts[tt.name] = string(data)
	}

	for name, text := range texts {
		t.Run(name, func(t *testing.T) {
			_, err := Import(w, text)
			require.Error(t, err)
			assert.Equal(t, before, w.Artifacts())
			cfg, _ := w.Config()
			assert.Equal(t, beforeCfg, cfg)
			assert.True(t, w.Configured())
		})
	}
}

func TestImportRestores(t *testing.T) {
	w := workspace.New()
	data, err := json.Marshal(validPack())
	require.NoError(t, err)

	p, err := Import(w, string(data))
	require.NoError(t, err)
	assert.Equal(t, "NLP", p.Config.Track)
	assert.True(t, w.Configured())
	assert.Equal(t, "p", w.Text(types.KeyPlan))
}

func TestFileRoundTrip(t *testing.T) {
	w := populated(t)
	p, err := FromWorkspace(w)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "nested", DefaultFileName)
	require.NoError(t, WriteFile(path, p))

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))

	got, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, p.Config, got.Config)
	assert.Equal(t, p.Artifacts, got.Artifacts)
	assert.Equal(t, p.CreatedAt, got.CreatedAt)
}

func TestFromWorkspaceRequiresConfig(t *testing.T) {
	_, err := FromWorkspace(workspace.New())
	assert.Error(t, err)
}
