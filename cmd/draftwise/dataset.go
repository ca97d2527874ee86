// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/draftwise/internal/draft"
	"github.com/pdiddy/draftwise/internal/sections"
	"github.com/pdiddy/draftwise/internal/studio"
	"github.com/pdiddy/draftwise/pkg/types"
)

var datasetCmd = &cobra.Command{
	Use:   "dataset",
	Short: "Shortlist, choose or profile a dataset",
	Long: `Dataset helps with the data side of the project. Without a dataset,
"shortlist" suggests candidate sources and "choose" records your pick with a
justification. With a CSV in hand, "profile" computes column statistics
locally and writes a dataset report.`,
}

var datasetShortlistCmd = &cobra.Command{
	Use:   "shortlist",
	Short: "Suggest up to five dataset options",
	RunE: func(cmd *cobra.Command, args []string) error {
		str := func(name string) string { v, _ := cmd.Flags().GetString(name); return v }
		req := types.ShortlistRequest{
			TaskType:       str("task"),
			DataConstraint: str("constraint"),
			Notes:          str("notes"),
		}
		return run(func(ctx context.Context, s *session) error {
			options, err := s.studio.Shortlist(ctx, req)
			if err != nil {
				return err
			}
			printBlocks(sections.KindOption, options)
			if full, _ := cmd.Flags().GetBool("full"); full {
				fmt.Println()
				fmt.Println(s.studio.Workspace().Text(types.KeyDatasetShortlistRaw))
			}
			return nil
		})
	},
}

var datasetChooseCmd = &cobra.Command{
	Use:   "choose <position>",
	Short: "Record the shortlisted option you picked",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pos, err := parsePosition(args[0])
		if err != nil {
			return err
		}
		justification, _ := cmd.Flags().GetString("justification")
		risk, _ := cmd.Flags().GetString("risk")
		return run(func(ctx context.Context, s *session) error {
			choice, err := s.studio.ChooseDataset(pos, justification, risk)
			if err != nil {
				return err
			}
			fmt.Println(draft.DecisionReport(choice))
			return nil
		})
	},
}

var datasetProfileCmd = &cobra.Command{
	Use:   "profile <file.csv>",
	Short: "Profile a CSV and write a dataset report",
	Long: `Profile loads the CSV into an in-memory table, computes row and column
statistics, and writes a dataset report. With --ai the narrative comes from
the text-generation backend; only the statistics are sent, never rows. If
generation fails the local report is used instead.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		target, _ := cmd.Flags().GetString("target")
		useAI, _ := cmd.Flags().GetBool("ai")
		return run(func(ctx context.Context, s *session) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening dataset: %w", err)
			}
			defer f.Close()

			res, err := s.studio.ProfileDataset(ctx, f, target, useAI)
			if err != nil {
				return err
			}
			p := res.Report.Profile
			fmt.Printf("Rows: %d | Columns: %d | Duplicate rows: %d\n", p.Rows, p.Columns, p.DuplicateRows)
			if len(p.LikelyID) > 0 {
				fmt.Printf("Likely ID columns: %s\n", strings.Join(p.LikelyID, ", "))
			}
			if res.Fallback != nil {
				fmt.Fprintf(os.Stderr, "AI report failed, using the local report: %v\n", res.Fallback)
			}
			fmt.Println()
			fmt.Println(res.Report.ReportMD)
			return nil
		})
	},
}

func init() {
	datasetShortlistCmd.Flags().String("task", studio.TaskTypes[0], "task type, e.g. "+strings.Join(studio.TaskTypes[:3], ", "))
	datasetShortlistCmd.Flags().String("constraint", studio.DataConstraints[0], "data constraint, e.g. \""+studio.DataConstraints[1]+"\"")
	datasetShortlistCmd.Flags().String("notes", "", "optional notes for the shortlist")
	datasetShortlistCmd.Flags().Bool("full", false, "also print the full reply")

	datasetChooseCmd.Flags().String("justification", "", fmt.Sprintf("why this dataset fits (at least %d characters)", studio.MinJustification))
	datasetChooseCmd.Flags().String("risk", "", "one anticipated risk")

	datasetProfileCmd.Flags().String("target", "", "target column hint")
	datasetProfileCmd.Flags().Bool("ai", false, "ask the backend for the narrative report")

	datasetCmd.AddCommand(datasetShortlistCmd)
	datasetCmd.AddCommand(datasetChooseCmd)
	datasetCmd.AddCommand(datasetProfileCmd)

	rootCmd.AddCommand(datasetCmd)
}
