// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/draftwise/internal/workspace"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the configuration and progress checklist",
	RunE:  runStatus,
}

func init() {
	statusCmd.Flags().Bool("json", false, "print the full workspace snapshot as JSON")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	s, err := openSession("off")
	if err != nil {
		return err
	}
	defer s.close()

	ws := s.studio.Workspace()
	steps := ws.Progress()

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		cfg, _ := ws.Config()
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"configured": ws.Configured(),
			"config":     cfg,
			"progress":   steps,
			"artifacts":  ws.Artifacts(),
		})
	}

	cfg, ok := ws.Config()
	if !ok {
		fmt.Printf("Workspace %s is not configured. Run \"draftwise init\".\n", s.path)
		return nil
	}
	fmt.Printf("Workspace: %s\n", s.path)
	fmt.Printf("Goal: %s | Help: %s | Degree: %s\n", cfg.Goal.Label(), cfg.HelpLevel.Label(), cfg.DegreeLevel.Label())
	fmt.Printf("Track: %s | Time: %d days | Paper: %s | Depth: %s\n", cfg.Track, cfg.TimeDays, cfg.PaperType.Label(), cfg.OutputDepth.Label())
	if topic, ok := ws.SelectedTopic(); ok {
		fmt.Printf("Topic: %s\n", topic.Title)
	}
	fmt.Println()
	for _, step := range steps {
		mark := " "
		if step.Done {
			mark = "x"
		}
		fmt.Printf("[%s] %s\n", mark, step.Label)
	}
	fmt.Printf("\n%d/%d steps complete\n", workspace.Completed(steps), len(steps))
	return nil
}
