package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/bamsammich/repoprep/internal/rules"
)

func addRuleFlags(fs *pflag.FlagSet, opts *ruleOptions) {
	fs.Var(&patternFlag{patterns: &opts.excludes}, "exclude",
		"also exclude entries matching PATTERN (repeatable, gitignore-style glob)")
	fs.BoolVar(&opts.gitignore, "gitignore", false, "also exclude patterns from <source>/.gitignore")
}

func newRulesCmd(opts *ruleOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rules [source]",
		Short: "Print the effective exclusion rules",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var src string
			if len(args) == 1 {
				src = args[0]
			}
			set, err := buildRuleSet(cmd, opts, loadConfig(), src)
			if err != nil {
				return err
			}
			printCatalog(cmd.OutOrStdout(), set.Catalog())
			return nil
		},
	}
}

func printCatalog(w io.Writer, c rules.Catalog) {
	section := func(title string, items []string) {
		if len(items) == 0 {
			return
		}
		fmt.Fprintf(w, "%s:\n  %s\n", title, strings.Join(items, "\n  "))
	}
	section("directories", c.DirNames)
	section("files", c.FileNames)
	section("suffixes", c.Suffixes)
	section("patterns", c.Patterns)
}
