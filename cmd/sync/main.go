package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/eren/coursemap/internal/bootstrap"
)

var (
	configPath string
	dateString string
	dryRun     bool
)

var rootCmd = &cobra.Command{
	Use:   "sync",
	Short: "Synchronize the course catalog for the current term",
	Long: `Fetches the current term's courses from the configured catalog feed,
tags them against the default requirement document and replaces the
active catalog. Courses from other terms are kept but archived.`,
	RunE: runSync,
	// Errors are logged by runSync; keep cobra from printing them again.
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "configs/config.yaml", "path to the configuration file")
	rootCmd.Flags().StringVar(&dateString, "date", "", "sync the term containing this date instead of today (YYYY-MM-DD)")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "fetch and normalize the feed without writing anything")
}

func runSync(cmd *cobra.Command, args []string) error {
	now := time.Now()
	if dateString != "" {
		parsed, err := time.Parse("2006-01-02", dateString)
		if err != nil {
			return fmt.Errorf("invalid --date %q: %w", dateString, err)
		}
		now = parsed
	}

	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config or setup logger: %w", err)
	}

	dbPool, err := bootstrap.SetupDatabase(cfg, lgr)
	if err != nil {
		return fmt.Errorf("failed to setup database: %w", err)
	}
	defer dbPool.Close()

	deps, err := bootstrap.BuildDependencies(cfg, dbPool, lgr)
	if err != nil {
		return fmt.Errorf("failed to setup dependencies: %w", err)
	}

	result, err := deps.SyncService.Run(cmd.Context(), now, dryRun)
	if err != nil {
		lgr.Error().Err(err).Msg("Catalog sync failed")
		return err
	}

	lgr.Info().
		Str("termCode", result.TermCode).
		Int("synced", result.Synced).
		Int64("archived", result.Archived).
		Bool("dryRun", dryRun).
		Msg("Catalog sync complete")
	return nil
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
