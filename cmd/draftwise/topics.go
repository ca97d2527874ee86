// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pdiddy/draftwise/internal/draft"
	"github.com/pdiddy/draftwise/internal/prompts"
	"github.com/pdiddy/draftwise/internal/sections"
	"github.com/pdiddy/draftwise/internal/studio"
	"github.com/pdiddy/draftwise/pkg/types"
)

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "Generate, pick or propose a research topic",
	Long: `Topics produces a shortlist of topic ideas fitted to the workspace
configuration, lets you select one by its position in the list, or records
a topic you propose yourself, optionally after a feasibility check.`,
}

// --- generate subcommand ---

var topicsGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Ask for a fresh shortlist of topic ideas",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(func(ctx context.Context, s *session) error {
			ideas, err := s.studio.GenerateTopics(ctx)
			if err != nil {
				return err
			}
			printBlocks(sections.KindIdea, ideas)
			if full, _ := cmd.Flags().GetBool("full"); full {
				fmt.Println()
				fmt.Println(s.studio.Workspace().Text(types.KeyTopicsRaw))
			}
			return nil
		})
	},
}

// --- list subcommand ---

var topicsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the current topic shortlist",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(func(ctx context.Context, s *session) error {
			ideas := s.studio.Topics()
			if len(ideas) == 0 {
				fmt.Println("No topic ideas yet. Run \"draftwise topics generate\".")
				return nil
			}
			printBlocks(sections.KindIdea, ideas)
			if topic, ok := s.studio.Workspace().SelectedTopic(); ok {
				fmt.Printf("\nSelected: %s\n", topic.Title)
			}
			return nil
		})
	},
}

// --- select subcommand ---

var topicsSelectCmd = &cobra.Command{
	Use:   "select <position>",
	Short: "Select the idea at a 1-based position in the shortlist",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pos, err := parsePosition(args[0])
		if err != nil {
			return err
		}
		return run(func(ctx context.Context, s *session) error {
			topic, err := s.studio.SelectTopic(pos)
			if err != nil {
				return err
			}
			fmt.Printf("Selected topic: %s\n\n%s\n", topic.Title, topic.FullText)
			return nil
		})
	},
}

var topicsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear the selected topic",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(func(ctx context.Context, s *session) error {
			s.studio.ClearTopic()
			fmt.Println("Topic selection cleared.")
			return nil
		})
	},
}

// --- own / feasibility subcommands ---

var topicsOwnCmd = &cobra.Command{
	Use:   "own",
	Short: "Use your own topic without a feasibility check",
	RunE: func(cmd *cobra.Command, args []string) error {
		in := feasibilityInput(cmd)
		return run(func(ctx context.Context, s *session) error {
			topic, err := s.studio.UseOwnTopic(in)
			if err != nil {
				return err
			}
			fmt.Printf("Selected your topic: %s\n", topic.Title)
			return nil
		})
	},
}

var topicsFeasibilityCmd = &cobra.Command{
	Use:   "feasibility",
	Short: "Check whether your own topic fits the time window",
	Long: `Feasibility asks for a Green / Yellow / Red verdict on a topic you
propose. The report is stored but the topic is not selected; rerun with
--accept to select it with the stored report attached.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		in := feasibilityInput(cmd)
		accept, _ := cmd.Flags().GetBool("accept")
		return run(func(ctx context.Context, s *session) error {
			if accept {
				topic, err := s.studio.AcceptFeasibility(in)
				if err != nil {
					return err
				}
				fmt.Printf("Selected your topic: %s (status %s)\n", topic.Title, topic.FeasibilityStatus)
				return nil
			}
			f, err := s.studio.CheckFeasibility(ctx, in)
			if err != nil {
				return err
			}
			fmt.Printf("Status: %s\n\n%s\n", f.Status, f.Report)
			if f.Status == studio.StatusRed {
				fmt.Println("\nConsider scoping the topic down before accepting it.")
			}
			return nil
		})
	},
}

func feasibilityInput(cmd *cobra.Command) prompts.FeasibilityInput {
	str := func(name string) string { v, _ := cmd.Flags().GetString(name); return v }
	return prompts.FeasibilityInput{
		Title:         str("title"),
		Problem:       str("problem"),
		Plan:          str("plan"),
		DataSituation: str("data"),
		Metric:        str("metric"),
		Baseline:      str("baseline"),
	}
}

func addTopicFlags(cmd *cobra.Command) {
	cmd.Flags().String("title", "", "topic title (required)")
	cmd.Flags().String("problem", "", "problem statement (required)")
	cmd.Flags().String("plan", "", "rough plan")
	cmd.Flags().String("data", studio.DataSituations[0], "data situation")
	cmd.Flags().String("metric", "", "evaluation metric")
	cmd.Flags().String("baseline", "", "baseline to compare against")
}

// --- shared helpers ---

// parsePosition reads a 1-based list position.
func parsePosition(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("position must be a positive number, got %q", arg)
	}
	return n, nil
}

// printBlocks lists blocks with their 1-based positions.
func printBlocks(kind string, blocks []types.Block) {
	if len(blocks) == 0 {
		fmt.Printf("No \"### %s <n>: <Title>\" headings found in the reply.\n", kind)
		return
	}
	for i, b := range blocks {
		fmt.Printf("%2d. %s\n", i+1, sections.Label(kind, b))
	}
}

// printMarkdown prints generated text, optionally only its TL;DR block.
func printMarkdown(text string, tldrOnly bool) {
	if tldrOnly {
		if tldr, _ := draft.SplitTLDR(text); tldr != "" {
			fmt.Println(tldr)
			return
		}
	}
	fmt.Println(text)
}

func init() {
	topicsGenerateCmd.Flags().Bool("full", false, "also print the full reply")

	addTopicFlags(topicsOwnCmd)
	addTopicFlags(topicsFeasibilityCmd)
	topicsFeasibilityCmd.Flags().Bool("accept", false, "select the topic with the stored feasibility report")

	topicsCmd.AddCommand(topicsGenerateCmd)
	topicsCmd.AddCommand(topicsListCmd)
	topicsCmd.AddCommand(topicsSelectCmd)
	topicsCmd.AddCommand(topicsClearCmd)
	topicsCmd.AddCommand(topicsOwnCmd)
	topicsCmd.AddCommand(topicsFeasibilityCmd)

	rootCmd.AddCommand(topicsCmd)
}
