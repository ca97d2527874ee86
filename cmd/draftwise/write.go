// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/draftwise/internal/draft"
	"github.com/pdiddy/draftwise/internal/prompts"
)

var writeCmd = &cobra.Command{
	Use:   "write",
	Short: "Draft paper sections in the Writing Studio",
	Long: `Write drafts paper sections from the selected topic, the plan and the
dataset report or decision. Sections can be named by title or slug:
` + strings.Join(draft.Keys(), ", ") + `.

Template mode produces outlines with [..._TBD] placeholders; draft mode
produces concise paragraphs.`,
}

var writeSectionsCmd = &cobra.Command{
	Use:   "sections [names...]",
	Short: "Generate the named sections (default: Abstract, Introduction)",
	RunE: func(cmd *cobra.Command, args []string) error {
		names := args
		if len(names) == 0 {
			names = []string{"Abstract", "Introduction"}
		}
		mode, _ := cmd.Flags().GetString("mode")
		notes, _ := cmd.Flags().GetString("notes")
		return run(func(ctx context.Context, s *session) error {
			if _, ok := s.studio.Workspace().SelectedTopic(); !ok {
				fmt.Println("No topic selected; sections will lack topic context.")
			}
			written, err := s.studio.WriteSections(ctx, names, prompts.WriteMode(mode), notes)
			for _, key := range draft.Keys() {
				if text, ok := written[key]; ok {
					fmt.Printf("## %s\n\n%s\n\n", key, text)
				}
			}
			return err
		})
	},
}

var writeRegenerateCmd = &cobra.Command{
	Use:   "regenerate <section>",
	Short: "Rewrite one section",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, _ := cmd.Flags().GetString("mode")
		return run(func(ctx context.Context, s *session) error {
			text, err := s.studio.RegenerateSection(ctx, args[0], prompts.WriteMode(mode))
			if err != nil {
				return err
			}
			fmt.Println(text)
			return nil
		})
	},
}

var writeShortenCmd = &cobra.Command{
	Use:   "shorten <section>",
	Short: "Compress one generated section",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(func(ctx context.Context, s *session) error {
			text, err := s.studio.ShortenSection(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Println(text)
			return nil
		})
	},
}

var writeClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every generated section",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(func(ctx context.Context, s *session) error {
			s.studio.ClearWriting()
			fmt.Println("Generated sections cleared.")
			return nil
		})
	},
}

var writeShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the combined draft and its open placeholders",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(func(ctx context.Context, s *session) error {
			d := s.studio.Draft()
			if d == "" {
				fmt.Println("No sections yet. Run \"draftwise write sections\".")
				return nil
			}
			fmt.Println(d)
			if open := draft.Placeholders(d); len(open) > 0 {
				fmt.Println("\nPlaceholders to fill:")
				for _, p := range open {
					fmt.Printf("  %-22s %d\n", p.Marker, p.Count)
				}
			}
			return nil
		})
	},
}

func init() {
	writeSectionsCmd.Flags().String("mode", string(prompts.WriteTemplate), "writing mode: template or draft")
	writeSectionsCmd.Flags().String("notes", "", "extra notes or constraints for every section")
	writeRegenerateCmd.Flags().String("mode", string(prompts.WriteTemplate), "writing mode: template or draft")

	writeCmd.AddCommand(writeSectionsCmd)
	writeCmd.AddCommand(writeRegenerateCmd)
	writeCmd.AddCommand(writeShortenCmd)
	writeCmd.AddCommand(writeClearCmd)
	writeCmd.AddCommand(writeShowCmd)

	rootCmd.AddCommand(writeCmd)
}
