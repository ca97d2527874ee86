// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the workspace and start over",
	Long: `Reset deletes the workspace file. The file is not read first, so a
damaged workspace can always be discarded.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			return errors.New("reset discards the configuration and every artifact; rerun with --yes to confirm")
		}
		path := workspacePath(appConfig())
		if err := resetWorkspace(path); err != nil {
			return err
		}
		fmt.Println("Workspace reset.")
		return nil
	},
}

// resetWorkspace removes the workspace file at path. A missing file is not
// an error.
func resetWorkspace(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing %s: %w", path, err)
	}
	return nil
}

func init() {
	resetCmd.Flags().Bool("yes", false, "confirm the reset")
	rootCmd.AddCommand(resetCmd)
}
