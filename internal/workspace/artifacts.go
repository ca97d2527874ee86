// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package workspace

import (
	"strings"

	"github.com/pdiddy/draftwise/pkg/types"
)

// Text returns a string artifact such as the plan or raw topic shortlist.
func (w *Workspace) Text(key string) string {
	s, _ := w.Get(key).(string)
	return s
}

// SelectedTopic returns the confirmed topic, if any.
func (w *Workspace) SelectedTopic() (types.SelectedTopic, bool) {
	t, ok := decode[types.SelectedTopic](w.Get(types.KeySelectedTopic))
	if !ok || (t.Title == "" && t.FullText == "") {
		return types.SelectedTopic{}, false
	}
	return t, true
}

// ShortlistOptions returns the dataset options parsed from the last shortlist.
func (w *Workspace) ShortlistOptions() []types.Block {
	opts, _ := decode[[]types.Block](w.Get(types.KeyDatasetShortlistOptions))
	return opts
}

// ShortlistRequest returns the parameters of the last dataset shortlist.
func (w *Workspace) ShortlistRequest() (types.ShortlistRequest, bool) {
	return decode[types.ShortlistRequest](w.Get(types.KeyDatasetShortlistRequest))
}

// DatasetChoice returns the shortlist decision, if any.
func (w *Workspace) DatasetChoice() (types.DatasetChoice, bool) {
	return decode[types.DatasetChoice](w.Get(types.KeyDatasetChoice))
}

// DatasetReport returns the CSV analysis, if any.
func (w *Workspace) DatasetReport() (types.DatasetReport, bool) {
	r, ok := decode[types.DatasetReport](w.Get(types.KeyDataset))
	if !ok || r.ReportMD == "" {
		return types.DatasetReport{}, false
	}
	return r, true
}

// PaperAnalysis returns the latest section or paper critique, if any.
func (w *Workspace) PaperAnalysis() (types.PaperAnalysis, bool) {
	pa, ok := decode[types.PaperAnalysis](w.Get(types.KeyPaperAnalysis))
	if !ok || pa.Type == "" {
		return types.PaperAnalysis{}, false
	}
	return pa, true
}

// Writing returns the generated sections keyed by section name. Non-string
// values are skipped.
func (w *Workspace) Writing() map[string]string {
	out := map[string]string{}
	m, _ := w.Get(types.KeyWriting).(map[string]any)
	for k, v := range m {
		if s, ok := v.(string); ok {
			out[k] = s
		}
	}
	return out
}

// SetWritingSection replaces one generated section, leaving the others.
func (w *Workspace) SetWritingSection(section, text string) {
	w.Initialize()
	m, ok := w.artifacts[types.KeyWriting].(map[string]any)
	if !ok || m == nil {
		m = map[string]any{}
		w.artifacts[types.KeyWriting] = m
	}
	m[section] = text
}

// Step is one line of the progress checklist.
type Step struct {
	Label string `json:"label"`
	Done  bool   `json:"done"`
}

// Progress reports which of the five workflow steps have produced output.
func (w *Workspace) Progress() []Step {
	_, topic := w.SelectedTopic()
	dataset := w.Get(types.KeyDataset) != nil || w.Get(types.KeyDatasetChoice) != nil
	writing := false
	for _, text := range w.Writing() {
		if strings.TrimSpace(text) != "" {
			writing = true
			break
		}
	}
	return []Step{
		{Label: "Topic selected", Done: topic},
		{Label: "Plan generated", Done: w.Text(types.KeyPlan) != ""},
		{Label: "Dataset chosen/analyzed", Done: dataset},
		{Label: "Draft sections generated", Done: writing},
		{Label: "Paper/section analyzed", Done: w.Get(types.KeyPaperAnalysis) != nil},
	}
}

// Completed counts the finished steps in a progress checklist.
func Completed(steps []Step) int {
	n := 0
	for _, s := range steps {
		if s.Done {
			n++
		}
	}
	return n
}
