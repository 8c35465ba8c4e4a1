package commands

import (
	"context"
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/satishbabariya/migrate-go/cli/internal/config"
	"github.com/satishbabariya/migrate-go/cli/internal/ui"
	"github.com/satishbabariya/migrate-go/migrate/sqlgen"
	"github.com/satishbabariya/migrate-go/runtime/engine"
)

var flagSQLFile string

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Inspect and poke the configured database",
}

func init() {
	pingCmd := &cobra.Command{
		Use:   "ping",
		Short: "Check connectivity for the active profile",
		RunE:  dbPing,
	}

	executeCmd := &cobra.Command{
		Use:   "execute",
		Short: "Run the statements of a SQL file inside one transaction",
		RunE:  dbExecute,
	}
	executeCmd.Flags().StringVar(&flagSQLFile, "file", "", "SQL file to execute")
	_ = executeCmd.MarkFlagRequired("file")

	dbCmd.AddCommand(pingCmd, executeCmd)
	rootCmd.AddCommand(dbCmd)
}

func dbPing(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagProfile)
	if err != nil {
		return err
	}
	eng, err := engine.New(cfg.DB)
	if err != nil {
		return err
	}
	defer eng.Close()

	if !eng.TestConnection(context.Background()) {
		ui.Error("profile %q (%s) is unreachable", cfg.Profile, cfg.DB.Driver)
		return fmt.Errorf("db: connection test failed for profile %q", cfg.Profile)
	}
	ui.Success("profile %q (%s) is reachable", cfg.Profile, cfg.DB.Driver)
	return nil
}

func dbExecute(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagProfile)
	if err != nil {
		return err
	}
	raw, err := afero.ReadFile(config.AppFs, flagSQLFile)
	if err != nil {
		return fmt.Errorf("db: reading %s: %w", flagSQLFile, err)
	}

	eng, err := engine.New(cfg.DB)
	if err != nil {
		return err
	}
	defer eng.Close()

	ctx := context.Background()
	statements := sqlgen.SplitStatements(string(raw))
	err = engine.Transaction(ctx, eng, func() error {
		for _, stmt := range statements {
			if _, err := eng.Execute(ctx, stmt); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("db: executing %s: %w", flagSQLFile, err)
	}
	ui.Success("executed %d statement(s) from %s", len(statements), flagSQLFile)
	return nil
}
