package cmd

import (
	"github.com/spf13/cobra"

	"github.com/harrison/fragments/internal/config"
	"github.com/harrison/fragments/internal/history"
)

// NewHistoryCommand creates the 'fragments history' parent command
func NewHistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Load history commands",
		Long: `Commands for viewing and managing the load history.

Each folder or project load is recorded in a local database: when it
ran, against which root, and how much it produced. History is an audit
log only; load results are never cached or reused.`,
	}

	// Add subcommands
	cmd.AddCommand(newHistoryShowCommand())
	cmd.AddCommand(newHistoryStatsCommand())
	cmd.AddCommand(newHistoryClearCommand())

	return cmd
}

// openHistoryStore opens the history database, honoring a test override path.
func openHistoryStore(dbPathOverride string) (*history.Store, error) {
	dbPath := dbPathOverride
	if dbPath == "" {
		var err error
		dbPath, err = config.GetHistoryDBPath()
		if err != nil {
			return nil, err
		}
	}
	return history.NewStore(dbPath)
}
