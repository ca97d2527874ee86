// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"strings"
)

// Goal states why the student is doing the project.
type Goal string

const (
	GoalCollegeSubmission Goal = "college-submission"
	GoalPersonalProject   Goal = "personal-project"
)

// HelpLevel controls how much the assistant does on the student's behalf.
type HelpLevel string

const (
	HelpDIY        HelpLevel = "diy"
	HelpGuided     HelpLevel = "guided"
	HelpDoneForYou HelpLevel = "done-for-you"
)

// DegreeLevel scales rigor and scope.
type DegreeLevel string

const (
	DegreeBachelors DegreeLevel = "bachelors"
	DegreeMasters   DegreeLevel = "masters"
)

// PaperType is the kind of document the student is aiming to write.
type PaperType string

const (
	PaperCollege    PaperType = "college"
	PaperConference PaperType = "conference"
	PaperReport     PaperType = "report"
)

// OutputDepth selects the word and bullet budgets applied to every prompt.
type OutputDepth string

const (
	DepthShort    OutputDepth = "short"
	DepthBalanced OutputDepth = "balanced"
	DepthDetailed OutputDepth = "detailed"
)

const (
	// MinTimeDays and MaxTimeDays bound the project time window.
	MinTimeDays = 7
	MaxTimeDays = 180
)

var (
	goalLabels = map[Goal]string{
		GoalCollegeSubmission: "College submission",
		GoalPersonalProject:   "Personal project",
	}
	helpLabels = map[HelpLevel]string{
		HelpDIY:        "DIY",
		HelpGuided:     "Guided",
		HelpDoneForYou: "Done-for-you",
	}
	degreeLabels = map[DegreeLevel]string{
		DegreeBachelors: "Bachelors",
		DegreeMasters:   "Masters",
	}
	paperLabels = map[PaperType]string{
		PaperCollege:    "College-level",
		PaperConference: "Conference-level",
		PaperReport:     "Report-level",
	}
	depthLabels = map[OutputDepth]string{
		DepthShort:    "Short",
		DepthBalanced: "Balanced",
		DepthDetailed: "Detailed",
	}
)

// Label returns the display name used in prompts. Unknown values are shown as-is.
func (g Goal) Label() string { return labelOr(goalLabels[g], string(g)) }

// Label returns the display name used in prompts.
func (h HelpLevel) Label() string { return labelOr(helpLabels[h], string(h)) }

// Label returns the display name used in prompts.
func (d DegreeLevel) Label() string { return labelOr(degreeLabels[d], string(d)) }

// Label returns the display name used in prompts.
func (p PaperType) Label() string { return labelOr(paperLabels[p], string(p)) }

// Label returns the display name used in prompts. An empty depth reads as Balanced.
func (o OutputDepth) Label() string {
	if o == "" {
		return depthLabels[DepthBalanced]
	}
	return labelOr(depthLabels[o], string(o))
}

func labelOr(label, fallback string) string {
	if label != "" {
		return label
	}
	return fallback
}

// Configuration is the onboarding record for a workspace. It is set once and
// replaced wholesale only by import or reset.
type Configuration struct {
	Goal        Goal        `json:"goal" yaml:"goal"`
	HelpLevel   HelpLevel   `json:"help_level" yaml:"help_level"`
	DegreeLevel DegreeLevel `json:"degree_level" yaml:"degree_level"`
	Track       string      `json:"track" yaml:"track"`
	TimeDays    int         `json:"time_days" yaml:"time_days"`
	PaperType   PaperType   `json:"paper_type" yaml:"paper_type"`
	OutputDepth OutputDepth `json:"output_depth" yaml:"output_depth"`
}

// Validate checks enum membership, the time window range, and that a track
// was given. It is applied at onboarding; imported packs are not re-checked.
func (c Configuration) Validate() error {
	var problems []string
	if _, ok := goalLabels[c.Goal]; !ok {
		problems = append(problems, fmt.Sprintf("goal %q is not one of college-submission, personal-project", c.Goal))
	}
	if _, ok := helpLabels[c.HelpLevel]; !ok {
		problems = append(problems, fmt.Sprintf("help level %q is not one of diy, guided, done-for-you", c.HelpLevel))
	}
	if _, ok := degreeLabels[c.DegreeLevel]; !ok {
		problems = append(problems, fmt.Sprintf("degree level %q is not one of bachelors, masters", c.DegreeLevel))
	}
	if strings.TrimSpace(c.Track) == "" {
		problems = append(problems, "track is required")
	}
	if c.TimeDays < MinTimeDays || c.TimeDays > MaxTimeDays {
		problems = append(problems, fmt.Sprintf("time window %d days is outside %d-%d", c.TimeDays, MinTimeDays, MaxTimeDays))
	}
	if _, ok := paperLabels[c.PaperType]; !ok {
		problems = append(problems, fmt.Sprintf("paper type %q is not one of college, conference, report", c.PaperType))
	}
	if _, ok := depthLabels[c.OutputDepth]; !ok {
		problems = append(problems, fmt.Sprintf("output depth %q is not one of short, balanced, detailed", c.OutputDepth))
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}
