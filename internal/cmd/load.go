package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/harrison/fragments/internal/config"
	"github.com/harrison/fragments/internal/display"
	"github.com/harrison/fragments/internal/filelock"
	"github.com/harrison/fragments/internal/history"
	"github.com/harrison/fragments/internal/ignore"
	"github.com/harrison/fragments/internal/loader"
	"github.com/harrison/fragments/internal/logger"
)

// loadFlags holds the flags shared by the folder and project commands.
type loadFlags struct {
	maxFiles  int
	maxSize   int64
	output    string
	list      bool
	quiet     bool
	logLevel  string
	noHistory bool
}

// registerLoadFlags wires the shared flags onto a load command.
func registerLoadFlags(cmd *cobra.Command, flags *loadFlags) {
	cmd.Flags().IntVar(&flags.maxFiles, "max-files", 0, "Cap on selected files (default from config, 500)")
	cmd.Flags().Int64Var(&flags.maxSize, "max-size", 0, "Per-file size cap in bytes (default from config, 1000000)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Write concatenated fragments to this file instead of stdout")
	cmd.Flags().BoolVar(&flags.list, "list", false, "Print fragment source identifiers instead of content")
	cmd.Flags().BoolVarP(&flags.quiet, "quiet", "q", false, "Suppress the load summary")
	cmd.Flags().StringVar(&flags.logLevel, "log-level", "", "Log verbosity: trace, debug, info, warn, error")
	cmd.Flags().BoolVar(&flags.noHistory, "no-history", false, "Skip recording this load in the history database")
}

// NewFolderCommand creates the 'fragments folder' command
func NewFolderCommand() *cobra.Command {
	flags := &loadFlags{}

	cmd := &cobra.Command{
		Use:   "folder [path[?ext=spec]]",
		Short: "Load all text files from a folder",
		Long: `Recursively load all recognized text files under a path as fragments.

Common non-text directories (node_modules, .git, __pycache__, virtualenvs,
build output) are skipped outright, as are binary and oversized files.

Filter syntax:
  ?ext=md,txt       Include only these extensions
  ?ext=!md,!txt     Exclude these (include everything else)
  ?ext=!md,+custom  Exclude .md, force-include .custom
  ?ext=dotfiles     All dotfiles (.bashrc, .gitconfig, etc.)

Examples:
  fragments folder ./docs
  fragments folder "~/notes?ext=md,txt"
  fragments folder ".?ext=!md,+custom"`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLoad(cmd, args, loader.ModeFolder, flags)
		},
		SilenceUsage: true,
	}

	registerLoadFlags(cmd, flags)
	return cmd
}

// NewProjectCommand creates the 'fragments project' command
func NewProjectCommand() *cobra.Command {
	flags := &loadFlags{}

	cmd := &cobra.Command{
		Use:   "project [path[?ext=spec]]",
		Short: "Load project files, respecting version control",
		Long: `Like folder, but built for software projects: files are filtered through
git ls-files when the path is inside a repository, falling back to the
root .gitignore when git is unavailable. A file tree summary is
prepended as the first fragment.

Examples:
  fragments project .
  fragments project ./my-app
  fragments project ".?ext=py,js"`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLoad(cmd, args, loader.ModeProject, flags)
		},
		SilenceUsage: true,
	}

	registerLoadFlags(cmd, flags)
	return cmd
}

// runLoad executes one load in the given mode and renders the result.
func runLoad(cmd *cobra.Command, args []string, mode string, flags *loadFlags) error {
	argument := ""
	if len(args) == 1 {
		argument = args[0]
	}

	cfg := loadUserConfig()

	logLevel := cfg.LogLevel
	if flags.logLevel != "" {
		logLevel = flags.logLevel
	}
	log := logger.NewConsoleLogger(cmd.ErrOrStderr(), logLevel)

	maxFiles := cfg.MaxFiles
	if flags.maxFiles > 0 {
		maxFiles = flags.maxFiles
	}
	maxSize := cfg.MaxFileSize
	if flags.maxSize > 0 {
		maxSize = flags.maxSize
	}

	l := &loader.Loader{
		MaxFiles: maxFiles,
		MaxSize:  maxSize,
		Lister:   &ignore.GitLister{Timeout: cfg.GitTimeout},
		Logger:   log,
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	start := time.Now()
	var result *loader.Result
	var err error
	switch mode {
	case loader.ModeProject:
		result, err = l.Project(ctx, argument)
	default:
		result, err = l.Folder(ctx, argument)
	}
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	if err := renderResult(cmd, result, flags); err != nil {
		return err
	}

	if result.Truncated {
		display.TruncationWarning(maxFiles).Display(cmd.ErrOrStderr())
	}

	if cfg.History.Enabled && !flags.noHistory {
		recordLoad(ctx, cfg, log, mode, argument, result, elapsed)
	}

	return nil
}

// renderResult writes fragments to the chosen destination.
func renderResult(cmd *cobra.Command, result *loader.Result, flags *loadFlags) error {
	out := cmd.OutOrStdout()

	switch {
	case flags.output != "":
		var b strings.Builder
		for i, f := range result.Fragments {
			if i > 0 {
				b.WriteString("\n")
			}
			b.WriteString(f.Content)
			b.WriteString("\n")
		}
		if err := filelock.LockAndWrite(flags.output, []byte(b.String())); err != nil {
			return fmt.Errorf("write output file: %w", err)
		}
	case flags.list:
		display.Sources(out, result.Fragments)
	default:
		for i, f := range result.Fragments {
			if i > 0 {
				fmt.Fprintln(out)
			}
			fmt.Fprintln(out, f.Content)
		}
	}

	if !flags.quiet {
		display.Summary(cmd.ErrOrStderr(), result.Root, result.Fragments)
	}
	return nil
}

// loadUserConfig reads the user config, falling back to defaults on any
// problem. Config trouble never blocks a load.
func loadUserConfig() *config.Config {
	path, err := config.GetConfigPath()
	if err != nil {
		return config.DefaultConfig()
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return config.DefaultConfig()
	}
	return cfg
}

// recordLoad appends one row to the history database. Best-effort: failures
// are logged at warn and otherwise ignored.
func recordLoad(ctx context.Context, cfg *config.Config, log logger.Logger, mode, argument string, result *loader.Result, elapsed time.Duration) {
	dbPath := cfg.History.DBPath
	if dbPath == "" {
		var err error
		dbPath, err = config.GetHistoryDBPath()
		if err != nil {
			log.Warnf("history disabled: %v", err)
			return
		}
	}

	store, err := history.NewStore(dbPath)
	if err != nil {
		log.Warnf("history disabled: %v", err)
		return
	}
	defer store.Close()

	err = store.RecordLoad(ctx, &history.Load{
		Mode:          mode,
		Argument:      argument,
		Root:          result.Root,
		FileCount:     result.FileCount,
		FragmentCount: len(result.Fragments),
		TotalBytes:    display.TotalBytes(result.Fragments),
		Duration:      elapsed,
	})
	if err != nil {
		log.Warnf("record load: %v", err)
		return
	}

	if removed, err := store.Prune(ctx, cfg.History.KeepDays); err != nil {
		log.Debugf("prune history: %v", err)
	} else if removed > 0 {
		log.Debugf("pruned %d old history records", removed)
	}
}
