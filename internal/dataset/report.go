// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dataset

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pdiddy/draftwise/pkg/types"
)

// Limits applied when a profile is stored or summarized.
const (
	storedMissing  = 20
	storedColumns  = 50
	summaryIDs     = 10
	summaryMissing = 10
	summaryColumns = 15
	reportIDs      = 10
	reportMissing  = 10
)

// Compact returns a copy of p with column lists cut to what the workspace
// keeps.
func Compact(p types.DatasetProfile) types.DatasetProfile {
	p.TopMissing = head(p.TopMissing, storedMissing)
	p.NumericCols = head(p.NumericCols, storedColumns)
	p.CategoryCols = head(p.CategoryCols, storedColumns)
	return p
}

// summary is the stats-only view sent to the text-generation backend.
type summary struct {
	Rows           int                   `json:"rows"`
	Cols           int                   `json:"cols"`
	TargetHint     string                `json:"target_hint"`
	LikelyID       []string              `json:"likely_id"`
	TopMissing     []types.MissingColumn `json:"top_missing"`
	DuplicateRows  int                   `json:"dup_rows"`
	NumericSample  []string              `json:"num_cols_sample"`
	CategorySample []string              `json:"cat_cols_sample"`
}

// Summary renders the profile as indented JSON for the dataset report
// prompt.
func Summary(p types.DatasetProfile, targetHint string) (string, error) {
	s := summary{
		Rows:           p.Rows,
		Cols:           p.Columns,
		TargetHint:     strings.TrimSpace(targetHint),
		LikelyID:       nonNil(head(p.LikelyID, summaryIDs)),
		TopMissing:     nonNil(head(p.TopMissing, summaryMissing)),
		DuplicateRows:  p.DuplicateRows,
		NumericSample:  nonNil(head(p.NumericCols, summaryColumns)),
		CategorySample: nonNil(head(p.CategoryCols, summaryColumns)),
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding dataset summary: %w", err)
	}
	return string(data), nil
}

// LocalReport writes the research-oriented dataset narrative without
// calling any backend.
func LocalReport(cfg types.Configuration, p types.DatasetProfile, targetHint string) string {
	var b strings.Builder
	line := func(format string, args ...any) {
		fmt.Fprintf(&b, format, args...)
		b.WriteByte('\n')
	}

	line("## Dataset overview")
	line("- Rows: **%d**, Columns: **%d**", p.Rows, p.Columns)
	if hint := strings.TrimSpace(targetHint); hint != "" {
		line("- Target/label (user hint): **%s**", hint)
	}
	line("")

	line("## Data quality snapshot")
	line("- Duplicate rows: **%d**", p.DuplicateRows)
	if ids := head(p.LikelyID, reportIDs); len(ids) > 0 {
		quoted := make([]string, len(ids))
		for i, c := range ids {
			quoted[i] = "`" + c + "`"
		}
		line("- Likely ID columns (near-unique): %s", strings.Join(quoted, ", "))
		line("  - Do not use IDs as features; use only for joins/indexing.")
	} else {
		line("- Likely ID columns: **None detected**")
	}

	var missing []types.MissingColumn
	for _, m := range p.TopMissing {
		if m.MissingPct > 0 {
			missing = append(missing, m)
		}
	}
	if len(missing) > 0 {
		line("- Missingness (top columns):")
		for _, m := range head(missing, reportMissing) {
			line("  - `%s`: **%s%%** missing", m.Column, formatPct(m.MissingPct))
		}
	} else {
		line("- Missingness: **No missing values detected** (nice).")
	}
	line("")

	line("## Research-useful guidance (write this in your paper)")
	line("- Track: **%s**, Goal: **%s**, Degree: **%s**, Time: **%d days**",
		cfg.Track, cfg.Goal.Label(), cfg.DegreeLevel.Label(), cfg.TimeDays)
	line("- Suggested split strategy:")
	line("  - Start with a simple train/val/test split.")
	line("  - If data has time/user/product identifiers, avoid random split (risk of leakage).")
	line("- Leakage checks:")
	line("  - Remove post-outcome columns, IDs, timestamps that reveal the answer.")
	line("  - Watch for duplicates across splits.")
	line("- Baseline:")
	line("  - Pick a simple baseline model and report a clean metric table.")
	line("- One improvement (bounded):")
	line("  - One controlled change: preprocessing, encoding choice, regularization, or feature ablation.")
	line("- Limitations:")
	line("  - Missingness/bias, class imbalance, proxy variables, and potential confounders.")
	line("")

	line("## What to produce (minimum viable research)")
	line("- Dataset description paragraph (shape, types, missingness).")
	line("- Experimental setup (split, metrics, baseline).")
	line("- 1 ablation + 1 error analysis paragraph.")
	b.WriteString("- Limitations section bullet list.")
	return b.String()
}

// formatPct prints a percentage with at most two decimals and no trailing zeros.
func formatPct(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	if strings.HasSuffix(s, ".") {
		s += "0"
	}
	return s
}

func head[T any](s []T, n int) []T {
	if len(s) > n {
		return s[:n]
	}
	return s
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
