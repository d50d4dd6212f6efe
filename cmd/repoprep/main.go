package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bamsammich/repoprep/internal/config"
	"github.com/bamsammich/repoprep/internal/engine"
	"github.com/bamsammich/repoprep/internal/rules"
	"github.com/bamsammich/repoprep/internal/ui"
)

var version = "dev"

func main() {
	os.Exit(run())
}

// patternFlag is a repeatable pflag.Value. Each pattern is validated when
// parsed so a typo fails before any work starts.
type patternFlag struct {
	patterns *[]string
}

func (*patternFlag) String() string { return "" }
func (*patternFlag) Type() string   { return "pattern" }

func (f *patternFlag) Set(val string) error {
	if _, err := rules.NewEmpty(rules.WithPatterns(val)); err != nil {
		return err
	}
	*f.patterns = append(*f.patterns, val)
	return nil
}

// ruleOptions are the flags shared by every command that builds a rule set.
type ruleOptions struct {
	excludes  []string
	gitignore bool
}

// buildRuleSet combines the built-in catalog, the config [rules] section,
// --exclude patterns and, with --gitignore, the source's .gitignore.
func buildRuleSet(cmd *cobra.Command, opts *ruleOptions, cfg config.Config, src string) (*rules.Set, error) {
	if !cmd.Flags().Changed("gitignore") && cfg.Defaults.Gitignore != nil {
		opts.gitignore = *cfg.Defaults.Gitignore
	}

	ruleOpts := cfg.Rules.Options()
	if len(opts.excludes) > 0 {
		ruleOpts = append(ruleOpts, rules.WithPatterns(opts.excludes...))
	}
	if opts.gitignore && src != "" {
		path := filepath.Join(src, ".gitignore")
		patterns, err := rules.LoadGitignore(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			slog.Warn("--gitignore set but source has no .gitignore", "path", path)
		case err != nil:
			return nil, err
		default:
			slog.Debug("loaded gitignore", "path", path, "patterns", len(patterns))
			ruleOpts = append(ruleOpts, rules.WithPatterns(patterns...))
		}
	}

	set, err := rules.New(ruleOpts...)
	if err != nil {
		return nil, fmt.Errorf("build rules: %w", err)
	}
	return set, nil
}

func loadConfig() config.Config {
	cfg, err := config.Load()
	if err != nil {
		slog.Warn("failed to load config", "path", config.Path(), "error", err)
	}
	return cfg
}

//nolint:gocyclo,revive // cyclomatic,cognitive-complexity: CLI entry point wires every flag
func run() int {
	var (
		ruleOpts      ruleOptions
		progressEvery int
		verbose       bool
		quiet         bool
		dryRun        bool
		showVersion   bool
		noProgress    bool
		verifyFlag    bool
		bwLimitStr    string
		logFile       string
	)

	rootCmd := &cobra.Command{
		Use:   "repoprep [flags] <source> <destination>",
		Short: "Copy a project tree without VCS metadata, caches and build output",
		Args: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				return nil
			}
			return cobra.ExactArgs(2)(cmd, args)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				fmt.Fprintf(os.Stdout, "repoprep %s\n", version)
				return nil
			}
			src, dst := args[0], args[1]

			closeLog, err := setupLogging(verbose, quiet, logFile)
			if err != nil {
				return err
			}
			defer closeLog()

			cfg := loadConfig()
			applyConfigDefaults(cmd, cfg.Defaults, &verifyFlag, &progressEvery)

			if !cmd.Flags().Changed("bwlimit") && cfg.Defaults.BWLimit != nil {
				bwLimitStr = *cfg.Defaults.BWLimit
			}
			var bwLimit int64
			if bwLimitStr != "" {
				bwLimit, err = config.ParseSize(bwLimitStr)
				if err != nil {
					return fmt.Errorf("invalid --bwlimit: %w", err)
				}
			}

			set, err := buildRuleSet(cmd, &ruleOpts, cfg, src)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if dryRun {
				slog.Info("dry run mode")
				est, err := engine.Analyze(ctx, src, set)
				if err != nil {
					return fatal(err)
				}
				printEstimate(os.Stdout, src, est)
				return nil
			}

			task, err := engine.New().Start(ctx, engine.Request{
				Src:           src,
				Dst:           dst,
				Rules:         set,
				ProgressEvery: progressEvery,
				Verify:        verifyFlag,
				BWLimit:       bwLimit,
			})
			if err != nil {
				return err
			}

			presenter := ui.NewPresenter(ui.Config{
				Writer:     os.Stdout,
				ErrWriter:  os.Stderr,
				Theme:      ui.ApplyTheme(cfg.Theme),
				Quiet:      quiet,
				Verbose:    verbose,
				NoProgress: noProgress,
				IsTTY:      ui.IsTTY(os.Stdout.Fd()),
			})

			events := task.Events()
			if logFile != "" {
				events = teeEvents(events)
			}
			if perr := presenter.Run(events); perr != nil {
				fmt.Fprintf(os.Stderr, "presenter: %v\n", perr)
				for range events { //nolint:revive // drain so the log tee finishes
				}
			}
			result := task.Wait()
			stop()

			if dropped := task.Dropped(); dropped > 0 {
				slog.Debug("events dropped", "count", dropped)
			}
			if summary := presenter.Summary(result.Stats); summary != "" {
				fmt.Fprintln(os.Stderr, summary)
			}
			return resultError(result)
		},
	}

	rootCmd.Flags().BoolVar(&showVersion, "version", false, "print version and exit")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (also lists skipped entries)")
	rootCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "suppress all output except errors")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "show what would be copied without writing")
	rootCmd.Flags().BoolVar(&noProgress, "no-progress", false, "hide periodic progress lines")
	rootCmd.Flags().
		IntVar(&progressEvery, "progress-every", engine.DefaultProgressEvery, "emit a progress line every N copied files")
	rootCmd.Flags().BoolVar(&verifyFlag, "verify", false, "verify checksums after copy (BLAKE3)")
	rootCmd.Flags().StringVar(&bwLimitStr, "bwlimit", "", "bandwidth limit (e.g. 100M, 1G)")
	rootCmd.Flags().StringVar(&logFile, "log", "", "write structured JSON log to FILE")

	addRuleFlags(rootCmd.PersistentFlags(), &ruleOpts)

	rootCmd.AddCommand(newAnalyzeCmd(&ruleOpts))
	rootCmd.AddCommand(newRulesCmd(&ruleOpts))
	rootCmd.AddCommand(docsCmd)

	if err := rootCmd.Execute(); err != nil {
		var exitErr *exitError
		if errors.As(err, &exitErr) {
			return exitErr.code
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	return 0
}

// applyConfigDefaults applies config file defaults for flags not explicitly set on the CLI.
func applyConfigDefaults(
	cmd *cobra.Command,
	defaults config.DefaultsConfig,
	verify *bool,
	progressEvery *int,
) {
	if !cmd.Flags().Changed("verify") && defaults.Verify != nil {
		*verify = *defaults.Verify
	}
	if !cmd.Flags().Changed("progress-every") && defaults.ProgressEvery != nil {
		*progressEvery = *defaults.ProgressEvery
	}
}

// resultError maps a terminal result onto the process exit code:
// 0 clean, 1 finished with skipped failures or cancelled, 2 fatal.
func resultError(res engine.Result) error {
	switch res.Status {
	case engine.StatusFailed:
		slog.Error("copy failed", "kind", res.ErrorKind.String(), "error", res.Err)
		return &exitError{code: 2}
	case engine.StatusCancelled:
		slog.Warn("copy cancelled", "files_copied", res.FilesCopied)
		return &exitError{code: 1}
	}
	if res.Stats.EntriesFailed > 0 || res.Stats.FilesVerifyFailed > 0 {
		return &exitError{code: 1}
	}
	return nil
}

// fatal logs an engine precondition error and exits 2.
func fatal(err error) error {
	if errors.Is(err, context.Canceled) {
		return &exitError{code: 1}
	}
	slog.Error("analysis failed", "error", err)
	return &exitError{code: 2}
}

type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit code %d", e.code)
}
