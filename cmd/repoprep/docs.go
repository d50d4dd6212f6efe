package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

var docsCmd = &cobra.Command{
	Use:    "gen-docs",
	Short:  "Generate man pages or markdown for repoprep",
	Hidden: true,
	Args:   cobra.NoArgs,
	RunE:   runGenDocs,
}

func init() {
	docsCmd.Flags().String("dir", "docs", "output directory")
	docsCmd.Flags().String("format", "man", "output format: man, markdown or yaml")
}

func runGenDocs(cmd *cobra.Command, _ []string) error {
	dir, _ := cmd.Flags().GetString("dir")       //nolint:errcheck // flag name is hardcoded
	format, _ := cmd.Flags().GetString("format") //nolint:errcheck // flag name is hardcoded

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	root := cmd.Root()
	root.DisableAutoGenTag = true

	switch format {
	case "man":
		return doc.GenManTree(root, &doc.GenManHeader{
			Title:   "REPOPREP",
			Section: "1",
			Source:  "repoprep " + version,
			Manual:  "repoprep manual",
		}, dir)
	case "markdown":
		return doc.GenMarkdownTree(root, dir)
	case "yaml":
		return doc.GenYamlTree(root, dir)
	default:
		return fmt.Errorf("unknown format %q (use man, markdown or yaml)", format)
	}
}
