package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// newHistoryStatsCommand creates the 'fragments history stats' command
func newHistoryStatsCommand() *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show aggregate load statistics",
		Long: `Display aggregate statistics over the whole load history:
  - Total loads, split by folder and project mode
  - Total files and bytes loaded
  - Number of distinct roots
  - First and most recent load times`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistoryStats(cmd.OutOrStdout(), dbPath)
		},
	}

	cmd.Flags().StringVar(&dbPath, "db-path", "", "Path to history database (for testing)")

	return cmd
}

// runHistoryStats executes the stats command
func runHistoryStats(output io.Writer, dbPathOverride string) error {
	store, err := openHistoryStore(dbPathOverride)
	if err != nil {
		return fmt.Errorf("open history store: %w", err)
	}
	defer store.Close()

	stats, err := store.GetStats(context.Background())
	if err != nil {
		return fmt.Errorf("get statistics: %w", err)
	}

	if stats.TotalLoads == 0 {
		fmt.Fprintln(output, "No loads recorded yet.")
		return nil
	}

	label := color.New(color.FgCyan)
	value := color.New(color.FgGreen)

	fmt.Fprintf(output, "%s %s (%d folder, %d project)\n",
		label.Sprint("loads:"), value.Sprintf("%d", stats.TotalLoads),
		stats.FolderLoads, stats.ProjectLoads)
	fmt.Fprintf(output, "%s %s  %s %s\n",
		label.Sprint("files:"), value.Sprintf("%d", stats.TotalFiles),
		label.Sprint("bytes:"), value.Sprintf("%d", stats.TotalBytes))
	fmt.Fprintf(output, "%s %d\n", label.Sprint("distinct roots:"), stats.DistinctRoots)
	fmt.Fprintf(output, "%s %s\n", label.Sprint("first load:"),
		stats.FirstTimestamp.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(output, "%s %s\n", label.Sprint("last load:"),
		stats.LastTimestamp.Local().Format("2006-01-02 15:04:05"))

	return nil
}
