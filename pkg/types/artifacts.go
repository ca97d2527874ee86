// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"encoding/json"
	"strconv"
)

// Artifact keys held in a workspace. Every key is present after
// initialization; all but KeyWriting default to nil.
const (
	KeyTopicsRaw               = "topics_raw"
	KeySelectedTopic           = "selected_topic"
	KeyFeasibilityRaw          = "feasibility_raw"
	KeyPlan                    = "plan"
	KeyDataset                 = "dataset"
	KeyDatasetShortlistRaw     = "dataset_shortlist_raw"
	KeyDatasetShortlistOptions = "dataset_shortlist_options"
	KeyDatasetShortlistRequest = "dataset_shortlist_request"
	KeyDatasetChoice           = "dataset_choice"
	KeyWriting                 = "writing"
	KeyPaperAnalysis           = "paper_analysis"
)

// ArtifactKeys lists the known keys in a stable order.
var ArtifactKeys = []string{
	KeyTopicsRaw,
	KeySelectedTopic,
	KeyFeasibilityRaw,
	KeyPlan,
	KeyDataset,
	KeyDatasetShortlistRaw,
	KeyDatasetShortlistOptions,
	KeyDatasetShortlistRequest,
	KeyDatasetChoice,
	KeyWriting,
	KeyPaperAnalysis,
}

// Artifacts maps step names to JSON-safe values: nested maps, slices,
// strings, float64 numbers, booleans, and nil.
type Artifacts map[string]any

// Block is one heading-delimited piece of a generated markdown document.
type Block struct {
	Number  int    `json:"n" yaml:"n"`
	Title   string `json:"title" yaml:"title"`
	RawText string `json:"block" yaml:"block"`
}

// Topic provenance tags.
const (
	SourceSuggested           = "draftwise_suggested"
	SourceUser                = "user_provided"
	SourceUserWithFeasibility = "user_provided_with_feasibility"
)

// UserTopicID marks a topic the student brought rather than picked.
const UserTopicID = "USER"

// IdeaNumber is the number of a suggested idea, or UserTopicID. It decodes
// from either a JSON string or a JSON number and encodes numeric values as
// JSON numbers.
type IdeaNumber string

func (n IdeaNumber) MarshalJSON() ([]byte, error) {
	if v, err := strconv.Atoi(string(n)); err == nil && strconv.Itoa(v) == string(n) {
		return []byte(n), nil
	}
	return json.Marshal(string(n))
}

func (n *IdeaNumber) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*n = IdeaNumber(s)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return err
	}
	*n = IdeaNumber(num.String())
	return nil
}

// SelectedTopic is the topic every later step builds on.
type SelectedTopic struct {
	// ID is the idea number for suggested topics, or UserTopicID.
	ID       IdeaNumber `json:"idea_number"`
	Title    string     `json:"title"`
	FullText string     `json:"full_text"`
	Source   string     `json:"source"`

	// FeasibilityStatus is Green, Yellow, Red or Unknown when a feasibility
	// report was attached.
	FeasibilityStatus string `json:"feasibility_status,omitempty"`
}

// ShortlistRequest records the parameters of the last dataset shortlist.
type ShortlistRequest struct {
	TaskType       string `json:"task_type"`
	DataConstraint string `json:"data_constraint"`
	Notes          string `json:"notes"`
}

// DatasetChoice is the student's decision after the shortlist gate.
type DatasetChoice struct {
	Mode            string `json:"mode"`
	TaskType        string `json:"task_type"`
	DataConstraint  string `json:"data_constraint"`
	Notes           string `json:"notes"`
	PickedOption    Block  `json:"picked_option"`
	Justification   string `json:"justification"`
	AnticipatedRisk string `json:"anticipated_risk"`
}

// MissingColumn pairs a column with its percentage of missing values.
type MissingColumn struct {
	Column     string  `json:"column"`
	MissingPct float64 `json:"missing_pct"`
}

// DatasetProfile holds the local statistics computed from an uploaded table.
type DatasetProfile struct {
	Rows          int             `json:"rows"`
	Columns       int             `json:"cols"`
	DuplicateRows int             `json:"dup_rows"`
	LikelyID      []string        `json:"likely_id"`
	TopMissing    []MissingColumn `json:"top_missing"`
	NumericCols   []string        `json:"num_cols"`
	CategoryCols  []string        `json:"cat_cols"`
}

// DatasetReport is the CSV analysis artifact.
type DatasetReport struct {
	Mode       string         `json:"mode"`
	TargetHint string         `json:"target_hint"`
	Profile    DatasetProfile `json:"profile"`
	ReportMD   string         `json:"report_md"`
}

// Paper analysis kinds.
const (
	AnalysisSection = "section"
	AnalysisPaper   = "paper"
)

// PaperAnalysis is the critique artifact. LastPrompt is kept so the
// analysis can be regenerated without the original upload.
type PaperAnalysis struct {
	Type        string `json:"type"`
	SectionType string `json:"section_type,omitempty"`
	Tone        string `json:"tone,omitempty"`
	Mode        string `json:"mode,omitempty"`
	CharsUsed   int    `json:"chars_used,omitempty"`
	ReportMD    string `json:"report_md"`
	LastPrompt  string `json:"last_prompt"`
}
