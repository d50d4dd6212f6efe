package main

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bamsammich/repoprep/internal/engine"
	"github.com/bamsammich/repoprep/internal/ui"
)

func newAnalyzeCmd(opts *ruleOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <source>",
		Short: "Report how much of a tree a copy would keep and skip",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src := args[0]
			set, err := buildRuleSet(cmd, opts, loadConfig(), src)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			est, err := engine.Analyze(ctx, src, set)
			if err != nil {
				return fatal(err)
			}
			printEstimate(cmd.OutOrStdout(), src, est)
			return nil
		},
	}
}

func printEstimate(w io.Writer, src string, est engine.Estimate) {
	fmt.Fprintf(w, "source   %s\n", src)
	fmt.Fprintf(w, "total    %s files  %s dirs  %s\n",
		ui.FormatCount(est.TotalFiles), ui.FormatCount(est.TotalDirs), ui.FormatBytes(est.TotalBytes))
	fmt.Fprintf(w, "copy     %s files  %s dirs  %s\n",
		ui.FormatCount(est.IncludedFiles), ui.FormatCount(est.IncludedDirs), ui.FormatBytes(est.IncludedBytes))
	fmt.Fprintf(w, "skip     %s entries  %s saved\n",
		ui.FormatCount(est.ExcludedItems), ui.FormatBytes(est.ExcludedBytes))
	if est.Unreadable > 0 {
		fmt.Fprintf(w, "unreadable %s directories\n", ui.FormatCount(est.Unreadable))
	}
	if len(est.LargestExcluded) == 0 {
		return
	}
	fmt.Fprintln(w, "largest excluded:")
	for _, d := range est.LargestExcluded {
		fmt.Fprintf(w, "  %10s  %8s files  %s\n", ui.FormatBytes(d.Bytes), ui.FormatCount(d.Files), d.RelPath)
	}
}

