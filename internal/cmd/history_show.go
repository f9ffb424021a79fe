package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// newHistoryShowCommand creates the 'fragments history show' command
func newHistoryShowCommand() *cobra.Command {
	var limit int
	var dbPath string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show recent loads",
		Long: `Display the most recent load invocations, newest first, including
mode, argument, resolved root, file and fragment counts, and duration.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistoryShow(cmd.OutOrStdout(), limit, dbPath)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of loads to show")
	cmd.Flags().StringVar(&dbPath, "db-path", "", "Path to history database (for testing)")

	return cmd
}

// runHistoryShow executes the show command
func runHistoryShow(output io.Writer, limit int, dbPathOverride string) error {
	store, err := openHistoryStore(dbPathOverride)
	if err != nil {
		return fmt.Errorf("open history store: %w", err)
	}
	defer store.Close()

	loads, err := store.RecentLoads(context.Background(), limit)
	if err != nil {
		return fmt.Errorf("query history: %w", err)
	}

	if len(loads) == 0 {
		fmt.Fprintln(output, "No loads recorded yet.")
		return nil
	}

	modeColor := color.New(color.FgCyan)
	countColor := color.New(color.FgGreen)

	for _, l := range loads {
		fmt.Fprintf(output, "%s  %s %s\n",
			l.Timestamp.Local().Format("2006-01-02 15:04:05"),
			modeColor.Sprint(l.Mode),
			l.Argument,
		)
		fmt.Fprintf(output, "    root: %s\n", l.Root)
		fmt.Fprintf(output, "    files: %s  fragments: %s  bytes: %d  took: %s\n",
			countColor.Sprintf("%d", l.FileCount),
			countColor.Sprintf("%d", l.FragmentCount),
			l.TotalBytes,
			l.Duration,
		)
	}

	return nil
}
