// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/draftwise/internal/prompts"
	"github.com/pdiddy/draftwise/internal/studio"
	"github.com/pdiddy/draftwise/pkg/types"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Get feedback on a paper section or a full paper",
}

var analyzeSectionCmd = &cobra.Command{
	Use:   "section",
	Short: "Critique one section read from --file or stdin",
	RunE: func(cmd *cobra.Command, args []string) error {
		sectionType, _ := cmd.Flags().GetString("type")
		tone, _ := cmd.Flags().GetString("tone")
		text, err := readInput(cmd)
		if err != nil {
			return err
		}
		return run(func(ctx context.Context, s *session) error {
			pa, err := s.studio.AnalyzeSection(ctx, sectionType, text, prompts.Tone(tone))
			if err != nil {
				return err
			}
			printAnalysis(pa)
			return nil
		})
	},
}

var analyzePaperCmd = &cobra.Command{
	Use:   "paper <file>",
	Short: "Analyze a full paper (PDF or plain text)",
	Long: `Paper extracts the text of a PDF (or reads a text file) and asks for a
structured analysis. Long papers are cut to their first 70% and last 30%
of the character budget. Scanned PDFs without a text layer are rejected.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, _ := cmd.Flags().GetString("mode")
		return run(func(ctx context.Context, s *session) error {
			pa, err := s.studio.AnalyzePaperFile(ctx, args[0], prompts.PaperMode(mode))
			if err != nil {
				return err
			}
			printAnalysis(pa)
			return nil
		})
	},
}

var analyzeRegenerateCmd = &cobra.Command{
	Use:   "regenerate",
	Short: "Rerun the prompt behind the stored analysis",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(func(ctx context.Context, s *session) error {
			pa, err := s.studio.RegenerateAnalysis(ctx)
			if err != nil {
				return err
			}
			printAnalysis(pa)
			return nil
		})
	},
}

var analyzeShortenCmd = &cobra.Command{
	Use:   "shorten",
	Short: "Compress the stored analysis",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(func(ctx context.Context, s *session) error {
			pa, err := s.studio.ShortenAnalysis(ctx)
			if err != nil {
				return err
			}
			printAnalysis(pa)
			return nil
		})
	},
}

var analyzeClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the stored analysis",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(func(ctx context.Context, s *session) error {
			s.studio.ClearAnalysis()
			fmt.Println("Analysis cleared.")
			return nil
		})
	},
}

// readInput returns the contents of --file, or stdin when no file is given.
func readInput(cmd *cobra.Command) (string, error) {
	path, _ := cmd.Flags().GetString("file")
	if path != "" && path != "-" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("reading section: %w", err)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("reading section from stdin: %w", err)
	}
	return string(data), nil
}

func printAnalysis(pa types.PaperAnalysis) {
	switch pa.Type {
	case types.AnalysisSection:
		fmt.Printf("Section feedback: %s (%s)\n\n", pa.SectionType, pa.Tone)
	case types.AnalysisPaper:
		fmt.Printf("Paper analysis: %s, %d characters sent\n\n", pa.Mode, pa.CharsUsed)
	}
	fmt.Println(pa.ReportMD)
}

func init() {
	analyzeSectionCmd.Flags().String("type", studio.AnalysisSectionTypes[1], "section type: "+strings.Join(studio.AnalysisSectionTypes, ", "))
	analyzeSectionCmd.Flags().String("tone", string(prompts.ToneMentor), "feedback tone: mentor or reviewer")
	analyzeSectionCmd.Flags().String("file", "", "file holding the section text (default: stdin)")

	analyzePaperCmd.Flags().String("mode", string(prompts.PaperReader), "analysis mode: reader or reviewer")

	analyzeCmd.AddCommand(analyzeSectionCmd)
	analyzeCmd.AddCommand(analyzePaperCmd)
	analyzeCmd.AddCommand(analyzeRegenerateCmd)
	analyzeCmd.AddCommand(analyzeShortenCmd)
	analyzeCmd.AddCommand(analyzeClearCmd)

	rootCmd.AddCommand(analyzeCmd)
}
