// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Build, shorten or show the research plan",
}

var planGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Build a research plan for the selected topic",
	Long: `Generate builds a bounded research plan from the workspace
configuration and the selected topic. Without a selected topic the plan is
built from the configuration alone.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		tldr, _ := cmd.Flags().GetBool("tldr")
		return run(func(ctx context.Context, s *session) error {
			if _, ok := s.studio.Workspace().SelectedTopic(); !ok {
				fmt.Println("No topic selected; the plan will be generic.")
			}
			plan, err := s.studio.GeneratePlan(ctx)
			if err != nil {
				return err
			}
			printMarkdown(plan, tldr)
			return nil
		})
	},
}

var planShortenCmd = &cobra.Command{
	Use:   "shorten",
	Short: "Compress the stored plan",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(func(ctx context.Context, s *session) error {
			plan, err := s.studio.ShortenPlan(ctx)
			if err != nil {
				return err
			}
			printMarkdown(plan, false)
			return nil
		})
	},
}

var planShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the stored plan",
	RunE: func(cmd *cobra.Command, args []string) error {
		tldr, _ := cmd.Flags().GetBool("tldr")
		return run(func(ctx context.Context, s *session) error {
			plan := s.studio.Plan()
			if plan == "" {
				fmt.Println("No plan yet. Run \"draftwise plan generate\".")
				return nil
			}
			printMarkdown(plan, tldr)
			return nil
		})
	},
}

func init() {
	planGenerateCmd.Flags().Bool("tldr", false, "print only the TL;DR block")
	planShowCmd.Flags().Bool("tldr", false, "print only the TL;DR block")

	planCmd.AddCommand(planGenerateCmd)
	planCmd.AddCommand(planShortenCmd)
	planCmd.AddCommand(planShowCmd)

	rootCmd.AddCommand(planCmd)
}
