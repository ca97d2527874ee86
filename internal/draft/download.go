// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package draft

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/draftwise/internal/workspace"
	"github.com/pdiddy/draftwise/pkg/types"
)

// Kind names a downloadable artifact.
type Kind string

const (
	KindPlan            Kind = "plan"
	KindDatasetReport   Kind = "dataset-report"
	KindDatasetDecision Kind = "dataset-decision"
	KindDraft           Kind = "draft"
	KindSectionFeedback Kind = "section-feedback"
	KindPaperAnalysis   Kind = "paper-analysis"
)

// Kinds lists every downloadable artifact.
var Kinds = []Kind{KindPlan, KindDatasetReport, KindDatasetDecision, KindDraft, KindSectionFeedback, KindPaperAnalysis}

var (
	fileNames = map[Kind]string{
		KindPlan:            "draftwise_plan.md",
		KindDatasetReport:   "draftwise_dataset_report.md",
		KindDatasetDecision: "draftwise_dataset_decision.md",
		KindDraft:           "draftwise_paper_draft.md",
		KindSectionFeedback: "draftwise_section_feedback.md",
		KindPaperAnalysis:   "draftwise_paper_analysis.md",
	}
	titles = map[Kind]string{
		KindPlan:            "Research plan",
		KindDatasetReport:   "Dataset report",
		KindDatasetDecision: "Dataset decision",
		KindDraft:           "Paper draft",
		KindSectionFeedback: "Section feedback",
		KindPaperAnalysis:   "Paper analysis",
	}
)

var (
	// ErrNotReviewed is returned when a download is requested without the
	// user confirming they reviewed the output.
	ErrNotReviewed = errors.New("confirm you reviewed and edited this output before downloading")

	// ErrUnavailable is returned when the workspace holds no such artifact.
	ErrUnavailable = errors.New("nothing to download yet")
)

// now is the export clock. Package-level var for test substitution.
var now = func() time.Time { return time.Now().UTC() }

// FrontMatter is the YAML header written at the top of every download.
type FrontMatter struct {
	Title     string `yaml:"title"`
	Generator string `yaml:"generator"`
	Exported  string `yaml:"exported"`
	Track     string `yaml:"track,omitempty"`
	Goal      string `yaml:"goal,omitempty"`
	Degree    string `yaml:"degree,omitempty"`
	PaperType string `yaml:"paper_type,omitempty"`
	Topic     string `yaml:"topic,omitempty"`
	Reviewed  bool   `yaml:"reviewed"`
}

// Download is a rendered markdown file.
type Download struct {
	Kind        Kind
	FileName    string
	FrontMatter FrontMatter
	Body        string
}

// Content returns the file contents: front matter followed by the body.
func (d Download) Content() (string, error) {
	var buf bytes.Buffer
	buf.WriteString("---\n")
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(d.FrontMatter); err != nil {
		return "", fmt.Errorf("encoding front matter: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("encoding front matter: %w", err)
	}
	buf.WriteString("---\n\n")
	buf.WriteString(d.Body)
	buf.WriteString("\n")
	return buf.String(), nil
}

// ParseKind resolves a kind name.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := fileNames[k]; !ok {
		names := make([]string, len(Kinds))
		for i, k := range Kinds {
			names[i] = string(k)
		}
		return "", fmt.Errorf("unknown download %q (want one of %s)", s, strings.Join(names, ", "))
	}
	return k, nil
}

// Render builds the download for kind from the workspace. reviewed is the
// user's acknowledgment that they checked the output; without it nothing is
// rendered.
func Render(w *workspace.Workspace, kind Kind, reviewed bool) (Download, error) {
	if _, ok := fileNames[kind]; !ok {
		return Download{}, fmt.Errorf("unknown download %q", kind)
	}
	if !reviewed {
		return Download{}, ErrNotReviewed
	}

	text, err := body(w, kind)
	if err != nil {
		return Download{}, err
	}

	fm := FrontMatter{
		Title:     titles[kind],
		Generator: "DraftWise",
		Exported:  now().Format(time.RFC3339),
		Reviewed:  true,
	}
	if cfg, ok := w.Config(); ok {
		fm.Track = cfg.Track
		fm.Goal = cfg.Goal.Label()
		fm.Degree = cfg.DegreeLevel.Label()
		fm.PaperType = cfg.PaperType.Label()
	}
	if topic, ok := w.SelectedTopic(); ok {
		fm.Topic = topic.Title
	}
	return Download{Kind: kind, FileName: fileNames[kind], FrontMatter: fm, Body: text}, nil
}

func body(w *workspace.Workspace, kind Kind) (string, error) {
	var text string
	switch kind {
	case KindPlan:
		text = w.Text(types.KeyPlan)
	case KindDatasetReport:
		if r, ok := w.DatasetReport(); ok {
			text = r.ReportMD
		}
	case KindDatasetDecision:
		if dc, ok := w.DatasetChoice(); ok {
			text = DecisionReport(dc)
		}
	case KindDraft:
		text = Compile(w.Writing())
	case KindSectionFeedback, KindPaperAnalysis:
		want := types.AnalysisSection
		if kind == KindPaperAnalysis {
			want = types.AnalysisPaper
		}
		if pa, ok := w.PaperAnalysis(); ok && pa.Type == want {
			text = pa.ReportMD
		}
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("%s: %w", titles[kind], ErrUnavailable)
	}
	return text, nil
}

// DecisionReport renders a dataset shortlist decision as markdown.
func DecisionReport(dc types.DatasetChoice) string {
	return strings.Join([]string{
		"## Dataset decision (DraftWise)",
		"- Picked: **" + dc.PickedOption.Title + "**",
		"- Task type: **" + dc.TaskType + "**",
		"- Constraint: **" + dc.DataConstraint + "**",
		"",
		"### Justification",
		dc.Justification,
		"",
		"### Anticipated risk",
		dc.AnticipatedRisk,
		"",
		"### DraftWise option details",
		dc.PickedOption.RawText,
	}, "\n")
}
