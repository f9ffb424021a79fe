package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

// newHistoryClearCommand creates the 'fragments history clear' command
func newHistoryClearCommand() *cobra.Command {
	var yes bool
	var dbPath string

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Clear all load history",
		Long: `Delete every recorded load from the history database.

Asks for confirmation unless --yes is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistoryClear(cmd.OutOrStdout(), cmd.InOrStdin(), yes, dbPath)
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	cmd.Flags().StringVar(&dbPath, "db-path", "", "Path to history database (for testing)")

	return cmd
}

// runHistoryClear executes the clear command
func runHistoryClear(output io.Writer, input io.Reader, yes bool, dbPathOverride string) error {
	if !yes {
		fmt.Fprintf(output, "This will delete ALL recorded load history.\n")
		if !confirmAction(output, input) {
			fmt.Fprintf(output, "Operation cancelled.\n")
			return nil
		}
	}

	store, err := openHistoryStore(dbPathOverride)
	if err != nil {
		return fmt.Errorf("open history store: %w", err)
	}
	defer store.Close()

	if err := store.Clear(context.Background()); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}

	fmt.Fprintln(output, "Load history cleared.")
	return nil
}

// confirmAction prompts for a yes/no answer and returns true for "y"/"yes".
func confirmAction(output io.Writer, input io.Reader) bool {
	fmt.Fprint(output, "Continue? [y/N]: ")

	reader := bufio.NewReader(input)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
