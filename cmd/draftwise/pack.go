// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/draftwise/internal/pack"
	"github.com/pdiddy/draftwise/internal/workspace"
)

var packCmd = &cobra.Command{
	Use:   "pack",
	Short: "Export or import a project pack",
	Long: `Pack moves a whole workspace (configuration and every artifact) in and
out of a portable JSON file. Imports are validated before anything in the
current workspace changes.`,
}

var packExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the workspace to a project pack",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("out")
		s, err := openSession("off")
		if err != nil {
			return err
		}
		defer s.close()

		p, err := pack.FromWorkspace(s.studio.Workspace())
		if err != nil {
			return err
		}
		if out == "-" {
			text, err := pack.Serialize(p)
			if err != nil {
				return err
			}
			fmt.Println(text)
			return nil
		}
		if err := pack.WriteFile(out, p); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Exported workspace to %s\n", out)
		return nil
	},
}

var packImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace the workspace with a project pack",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := importPackFile(args[0], workspacePath(appConfig()))
		if err != nil {
			return err
		}
		fmt.Printf("Imported pack created %s (%s)\n", p.CreatedAt, p.Config.Track)
		return nil
	},
}

// importPackFile validates the pack at src and, only then, replaces the
// workspace file at dst with it. The current workspace file is never read,
// so a damaged one can be overwritten.
func importPackFile(src, dst string) (*pack.Pack, error) {
	data, err := os.ReadFile(src)
	if err != nil {
		return nil, fmt.Errorf("reading pack: %w", err)
	}
	ws := workspace.New()
	p, err := pack.Import(ws, string(data))
	if err != nil {
		return nil, fmt.Errorf("import failed, workspace unchanged: %w", err)
	}
	out, err := pack.FromWorkspace(ws)
	if err != nil {
		return nil, err
	}
	if err := pack.WriteFile(dst, out); err != nil {
		return nil, err
	}
	return p, nil
}

func init() {
	packExportCmd.Flags().String("out", pack.DefaultFileName, "output path (- for stdout)")

	packCmd.AddCommand(packExportCmd)
	packCmd.AddCommand(packImportCmd)

	rootCmd.AddCommand(packCmd)
}
