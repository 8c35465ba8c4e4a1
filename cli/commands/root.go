// Package commands wires the CLI command tree.
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/satishbabariya/migrate-go/cli/internal/ui"
	"github.com/satishbabariya/migrate-go/cli/internal/update"
	"github.com/satishbabariya/migrate-go/cli/internal/version"
	"github.com/satishbabariya/migrate-go/internal/debug"
)

var (
	flagDebug   bool
	flagProfile string
	flagRoot    string
)

var rootCmd = &cobra.Command{
	Use:   "migrate-go",
	Short: "Schema migrations for sqlite, mariadb, and postgres",
	Long: `migrate-go compiles declarative table definitions into dialect-specific DDL
and tracks applied state in a batch-aware migrations ledger.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		debug.Init(flagDebug)
	},
}

var guideCmd = &cobra.Command{
	Use:   "guide",
	Short: "Show a walkthrough of the migration workflow",
	RunE: func(cmd *cobra.Command, args []string) error {
		return ui.Markdown(guideText)
	},
}

const guideText = `# migrate-go

Migration files live under ` + "`database/migrations`" + ` and register a table
definition at startup. The leading numeric prefix of the file name fixes the
apply order.

## Everyday commands

- ` + "`migrate-go migrate up`" + ` applies everything pending under a new batch
- ` + "`migrate-go migrate status`" + ` shows applied and pending models
- ` + "`migrate-go migrate rollback --steps 2`" + ` drops the two most recent batches
- ` + "`migrate-go migrate fresh`" + ` drops everything and re-applies from scratch
- ` + "`migrate-go db ping`" + ` checks connectivity for the active profile

## Profiles

Connection settings come from ` + "`.migrate-go.yaml`" + `, ` + "`MIGRATE_GO_*`" + `
environment variables, and ` + "`.env`" + ` files. Named profiles under a
` + "`profiles:`" + ` key override the top-level connection; pick one with
` + "`--profile`" + `.
`

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		info := version.Get()
		fmt.Println(info.String())
		return update.Check(info.Version)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flagProfile, "profile", "", "database profile to use")
	rootCmd.PersistentFlags().StringVar(&flagRoot, "root", "", "project root to scan for migrations")
	rootCmd.AddCommand(versionCmd, guideCmd)
}

// Execute runs the CLI.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		ui.Error("%v", err)
		return err
	}
	return nil
}
