package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for fragments
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fragments",
		Short: "Load directory trees as text fragments",
		Long: `Fragments walks a directory tree, selects the files that look like
text, and packages each one as a fragment: the file content behind a
one-line path banner, paired with a stable source identifier.

Two modes are available: "folder" walks everything recursively, while
"project" additionally respects version control (git ls-files, falling
back to .gitignore) and prepends a file tree summary.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	// Add subcommands
	cmd.AddCommand(NewFolderCommand())
	cmd.AddCommand(NewProjectCommand())
	cmd.AddCommand(NewHistoryCommand())

	return cmd
}
