package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"repo-sweep/internal/config"
	"repo-sweep/internal/confirm"
	"repo-sweep/internal/history"
	"repo-sweep/internal/logging"
	"repo-sweep/internal/metrics"
	"repo-sweep/internal/plan"
	"repo-sweep/internal/sweep"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var (
	flagDir    string
	flagPlan   string
	flagConfig string
	flagDryRun bool
	flagYes    bool
)

// errInvalidConfig marks configuration and plan loading problems so main can
// map them onto their own exit code
var errInvalidConfig = errors.New("invalid configuration")

var rootCmd = &cobra.Command{
	Use:   "repo-sweep",
	Short: "Remove leftover files from a consolidated project tree",
	Long: `repo-sweep removes a declaratively-planned set of non-essential files
and directories from a working tree, behind a single confirmation gate.

Targets that do not exist are silently skipped, so re-running a sweep on an
already-clean tree is always safe. The built-in plan targets a consolidated
MCP Atlassian workspace; pass --plan to supply your own.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command with the given signal context
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runSweep(cmd.Context())
	}
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to tool configuration file")
	rootCmd.PersistentFlags().StringVar(&flagDir, "dir", ".", "Working directory to sweep")
	rootCmd.Flags().StringVar(&flagPlan, "plan", "", "Path to a YAML sweep plan (default: built-in plan)")
	rootCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Preview the sweep without deleting anything")
	rootCmd.Flags().BoolVarP(&flagYes, "yes", "y", false, "Skip the confirmation prompt (answer yes)")

	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig resolves the effective configuration from --config and --dir
func loadConfig() (*config.Config, error) {
	if flagConfig != "" {
		cfg, err := config.Load(flagConfig)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errInvalidConfig, err)
		}
		if rootCmd.PersistentFlags().Changed("dir") {
			cfg.WorkingDir = flagDir
		}
		return cfg, nil
	}
	cfg, err := config.Default(flagDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidConfig, err)
	}
	return cfg, nil
}

// loadPlan resolves the effective plan from --plan, the config, or the built-in
func loadPlan(cfg *config.Config) (*plan.Plan, error) {
	path := flagPlan
	if path == "" {
		path = cfg.PlanPath
	}
	if path == "" {
		return plan.Default(), nil
	}
	p, err := plan.Load(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidConfig, err)
	}
	return p, nil
}

func runSweep(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	p, err := loadPlan(cfg)
	if err != nil {
		return err
	}

	logger := logging.NewWithDir(cfg.Logging.Dir, cfg.Logging.RotationDays)
	metrics.Init()

	var db *history.DB
	if cfg.DatabasePath != "" {
		db, err = history.Open(cfg.DatabasePath)
		if err != nil {
			return fmt.Errorf("open history database: %w", err)
		}
		defer func() {
			if err := db.Close(); err != nil {
				logger.Printf("ERROR: failed to close history database: %v", err)
			}
		}()
	}

	var confirmer confirm.Confirmer
	if flagYes {
		confirmer = confirm.Static(true)
	} else {
		// Piped stdin still gets exactly one line read; interactivity only
		// controls whether the [y/N] prompt is echoed
		interactive := isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
		confirmer = &confirm.TerminalConfirmer{In: os.Stdin, Out: os.Stdout, Interactive: interactive}
	}

	s := sweep.New(logger, confirmer, os.Stdout, flagDryRun, cfg.ErrorPolicy, db)
	summary, err := s.Run(ctx, cfg.WorkingDir, p)

	if cfg.Metrics.TextfilePath != "" {
		if werr := metrics.WriteTextfile(cfg.Metrics.TextfilePath); werr != nil {
			logger.Printf("ERROR: failed to write metrics textfile: %v", werr)
		}
	}

	if err != nil {
		return err
	}
	if len(summary.Failures) > 0 {
		return fmt.Errorf("%d target(s) failed to be removed", len(summary.Failures))
	}
	return nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("repo-sweep %s (%s)\n", version, commit)
	},
}
