// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/draftwise/internal/draft"
)

var downloadCmd = &cobra.Command{
	Use:   "download <kind>",
	Short: "Save a reviewed artifact as a markdown file",
	Long: `Download writes one artifact as markdown with a YAML front matter
header. Kinds: ` + kindNames() + `.

Generated text must be reviewed and edited before it leaves DraftWise, so
--reviewed is required.`,
	Args: cobra.ExactArgs(1),
	RunE: runDownload,
}

func init() {
	downloadCmd.Flags().Bool("reviewed", false, "confirm you reviewed and edited this output")
	downloadCmd.Flags().String("out", "", "output path (default: the kind's file name; - for stdout)")

	rootCmd.AddCommand(downloadCmd)
}

func kindNames() string {
	names := make([]string, len(draft.Kinds))
	for i, k := range draft.Kinds {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}

func runDownload(cmd *cobra.Command, args []string) error {
	kind, err := draft.ParseKind(args[0])
	if err != nil {
		return err
	}
	reviewed, _ := cmd.Flags().GetBool("reviewed")
	out, _ := cmd.Flags().GetString("out")

	return run(func(ctx context.Context, s *session) error {
		d, err := draft.Render(s.studio.Workspace(), kind, reviewed)
		if err != nil {
			return err
		}
		content, err := d.Content()
		if err != nil {
			return err
		}
		if out == "-" {
			fmt.Print(content)
			return nil
		}
		if out == "" {
			out = d.FileName
		}
		if err := os.WriteFile(out, []byte(content), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", out, err)
		}
		fmt.Printf("Wrote %s\n", out)
		return nil
	})
}
