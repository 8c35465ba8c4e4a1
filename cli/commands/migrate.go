package commands

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/satishbabariya/migrate-go/cli/internal/config"
	"github.com/satishbabariya/migrate-go/internal/debug"
	"github.com/satishbabariya/migrate-go/cli/internal/ui"
	"github.com/satishbabariya/migrate-go/cli/internal/watch"
	"github.com/satishbabariya/migrate-go/migrate/discovery"
	"github.com/satishbabariya/migrate-go/migrate/history"
	"github.com/satishbabariya/migrate-go/migrate/runner"
	"github.com/satishbabariya/migrate-go/runtime/engine"
)

var (
	flagSteps   int
	flagToBatch int
	flagForce   bool
	flagShowSQL bool
	flagWatch   bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage database migrations",
}

func init() {
	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply every pending migration under a new batch",
		RunE:  func(cmd *cobra.Command, args []string) error { return runAction(runner.ActionUp, false) },
	}

	downCmd := &cobra.Command{
		Use:   "down",
		Short: "Drop every applied migration, newest first",
		RunE:  func(cmd *cobra.Command, args []string) error { return runAction(runner.ActionDown, true) },
	}

	rollbackCmd := &cobra.Command{
		Use:   "rollback",
		Short: "Drop the most recent batches",
		RunE:  func(cmd *cobra.Command, args []string) error { return runAction(runner.ActionRollback, true) },
	}

	refreshCmd := &cobra.Command{
		Use:   "refresh",
		Short: "Roll back recent batches and re-apply what is pending",
		RunE:  func(cmd *cobra.Command, args []string) error { return runAction(runner.ActionRefresh, true) },
	}

	freshCmd := &cobra.Command{
		Use:   "fresh",
		Short: "Drop everything, then apply every discovered migration",
		RunE:  func(cmd *cobra.Command, args []string) error { return runAction(runner.ActionFresh, true) },
	}

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show applied and pending migrations",
		RunE:  migrateStatus,
	}
	statusCmd.Flags().BoolVar(&flagWatch, "watch", false, "re-render on migration file changes")

	for _, c := range []*cobra.Command{rollbackCmd, refreshCmd} {
		c.Flags().IntVar(&flagSteps, "steps", 1, "number of batches to roll back")
	}
	rollbackCmd.Flags().IntVar(&flagToBatch, "to-batch", -1, "roll back every batch above this one")
	for _, c := range []*cobra.Command{downCmd, rollbackCmd, refreshCmd, freshCmd} {
		c.Flags().BoolVar(&flagForce, "force", false, "skip the confirmation prompt")
	}
	for _, c := range []*cobra.Command{upCmd, downCmd, rollbackCmd, refreshCmd, freshCmd} {
		c.Flags().BoolVar(&flagShowSQL, "sql", false, "print executed SQL")
	}

	migrateCmd.AddCommand(upCmd, downCmd, rollbackCmd, refreshCmd, freshCmd, statusCmd)
	rootCmd.AddCommand(migrateCmd)
}

func runAction(action string, destructive bool) error {
	cfg, err := config.Load(flagProfile)
	if err != nil {
		return err
	}
	if destructive && !flagForce {
		if !ui.Confirm(fmt.Sprintf("%s will drop tables on %q (%s). Continue?",
			action, cfg.Profile, cfg.DB.Driver)) {
			ui.Warning("aborted")
			return nil
		}
	}

	opts := runner.Options{
		Profile: cfg.Profile,
		Action:  action,
		Steps:   flagSteps,
		Config:  cfg.DB,
		Root:    rootDir(cfg),
	}
	if flagToBatch >= 0 {
		to := flagToBatch
		opts.ToBatch = &to
	}

	// Spinner output interleaves badly with debug logging on the same tty.
	var sp *pterm.SpinnerPrinter
	if !debug.Enabled() {
		sp = ui.Spinner(fmt.Sprintf("running %s on %s", action, cfg.Profile))
	}
	results, err := runner.Run(context.Background(), opts)
	if err != nil {
		if sp != nil {
			sp.Fail(err.Error())
		}
		return err
	}
	if sp != nil {
		sp.Success(fmt.Sprintf("%s complete: %d statement group(s)", action, len(results)))
	} else {
		ui.Success("%s complete: %d statement group(s)", action, len(results))
	}

	for _, res := range results {
		ui.Info("  %s  (%s)", res.Name, filepath.Base(res.File))
		if flagShowSQL {
			ui.SQL(res.Content)
		}
	}
	return nil
}

func migrateStatus(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagProfile)
	if err != nil {
		return err
	}

	render := func() error { return renderStatus(cfg) }
	if !flagWatch {
		return render()
	}

	w, err := watch.NewWatcher(filepath.Join(rootDir(cfg), "database", "migrations"), render)
	if err != nil {
		return err
	}
	defer w.Stop()
	ui.Info("watching for migration changes, ctrl-c to stop")
	return w.Start()
}

func renderStatus(cfg *config.Config) error {
	eng, err := engine.New(cfg.DB)
	if err != nil {
		return err
	}
	defer eng.Close()

	ctx := context.Background()
	ledger := history.NewLedger(eng)
	if err := ledger.EnsureTable(ctx); err != nil {
		return err
	}
	applied, err := ledger.All(ctx)
	if err != nil {
		return err
	}

	files, err := discovery.MigrationFiles(afero.NewOsFs(), rootDir(cfg))
	if err != nil {
		return err
	}
	entries := discovery.Index(files)

	appliedSet := make(map[string]bool, len(applied))
	rows := make([][]string, 0, len(applied)+len(entries))
	for _, rec := range applied {
		appliedSet[rec.Model] = true
		rows = append(rows, []string{
			rec.Model, "applied", strconv.Itoa(rec.Batch),
			rec.AppliedAt.Format("2006-01-02 15:04:05"), rec.Filename,
		})
	}
	pending := 0
	for _, entry := range entries {
		if !appliedSet[entry.Model] {
			pending++
			rows = append(rows, []string{entry.Model, "pending", "-", "-", entry.File})
		}
	}

	ui.Header("migration status",
		fmt.Sprintf("profile %s · %s · %d applied · %d pending",
			cfg.Profile, cfg.DB.Driver, len(applied), pending))
	ui.Table([]string{"model", "state", "batch", "applied at", "file"}, rows)
	return nil
}

func rootDir(cfg *config.Config) string {
	if flagRoot != "" {
		return flagRoot
	}
	return cfg.Root
}
