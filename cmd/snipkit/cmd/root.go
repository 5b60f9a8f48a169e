// Package cmd provides the CLI commands for snipkit.
package cmd

import (
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/snipkit/internal/config"
	snipErrors "github.com/Aman-CERP/snipkit/internal/errors"
	"github.com/Aman-CERP/snipkit/internal/logging"
	"github.com/Aman-CERP/snipkit/internal/output"
	"github.com/Aman-CERP/snipkit/internal/profiling"
	"github.com/Aman-CERP/snipkit/pkg/version"
)

// Global flags
var (
	debugMode      bool
	noColor        bool
	profileOpts    profiling.Options
	profileSession *profiling.Session
	loggingCleanup func()
)

// NewRootCmd creates the root command for the snipkit CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snipkit",
		Short: "Small utilities: binary search, factorial, CSV splitting and a debug log",
		Long: `snipkit bundles a few small utilities behind one CLI:

  search     binary search over a sorted list of values
  factorial  n! as uint64, or exact with --big
  csv        split delimiter-separated files into rows
  debuglog   append a tagged, timestamped line to the debug log
  logs       view or follow the debug log

Configuration is read from ~/.config/snipkit/config.yaml, the project's
.snipkit.yaml and SNIPKIT_* environment variables.`,
		Version:       version.Short(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.SetVersionTemplate("snipkit version {{.Version}}\n")

	cmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging to ~/.snipkit/logs/")
	cmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	cmd.PersistentFlags().StringVar(&profileOpts.CPU, "profile-cpu", "", "Write CPU profile to file")
	cmd.PersistentFlags().StringVar(&profileOpts.Mem, "profile-mem", "", "Write memory profile to file")
	cmd.PersistentFlags().StringVar(&profileOpts.Trace, "profile-trace", "", "Write execution trace to file")

	cmd.PersistentPreRunE = startProfilingAndLogging
	cmd.PersistentPostRunE = stopProfilingAndLogging

	cmd.AddCommand(newSearchCmd())
	cmd.AddCommand(newFactorialCmd())
	cmd.AddCommand(newCSVCmd())
	cmd.AddCommand(newDebugLogCmd())
	cmd.AddCommand(newLogsCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// startProfilingAndLogging sets up debug logging and profiling if flags are set.
func startProfilingAndLogging(_ *cobra.Command, _ []string) error {
	if debugMode {
		logCfg := logging.DebugConfig()
		if cfg, err := loadConfig(); err == nil {
			logCfg.Level = cfg.Logging.Level
			logCfg.MaxSizeMB = cfg.Logging.MaxSizeMB
			logCfg.MaxFiles = cfg.Logging.MaxFiles
		}
		logger, cleanup, err := logging.Setup(logCfg)
		if err != nil {
			return fmt.Errorf("failed to setup debug logging: %w", err)
		}
		loggingCleanup = cleanup
		slog.SetDefault(logger)
		slog.Info("Debug logging enabled",
			slog.String("log_file", logCfg.FilePath),
			slog.String("version", version.Short()))
	}

	if profileOpts.Enabled() {
		session, err := profiling.Start(profileOpts)
		if err != nil {
			return err
		}
		profileSession = session
	}

	return nil
}

// stopProfilingAndLogging stops profiling and flushes the debug log.
func stopProfilingAndLogging(_ *cobra.Command, _ []string) error {
	var err error
	if profileSession != nil {
		err = profileSession.Stop()
		profileSession = nil
	}

	if loggingCleanup != nil {
		slog.Info("Debug logging stopped")
		loggingCleanup()
		loggingCleanup = nil
	}

	return err
}

// Execute runs the root command and prints any error to stderr.
func Execute() error {
	return runRoot(NewRootCmd(), os.Stderr)
}

// runRoot executes root and reports a failure on stderr. Post-run hooks do
// not fire on error, so profiling and debug logging are stopped here.
func runRoot(root *cobra.Command, stderr io.Writer) error {
	executed, err := root.ExecuteC()
	if err == nil {
		return nil
	}

	if debugMode {
		slog.Error("Command failed", snipErrors.LogAttrs(err)...)
	}
	_ = stopProfilingAndLogging(executed, nil)

	printError(stderr, err, wantsJSON(executed))
	return err
}

// wantsJSON reports whether cmd was run with --json.
func wantsJSON(cmd *cobra.Command) bool {
	if cmd == nil {
		return false
	}
	f := cmd.Flags().Lookup("json")
	return f != nil && f.Value.String() == "true"
}

// printError renders err for the terminal, or as one JSON object when the
// command was asked for JSON output. Structured errors get their code and
// hint; anything else (flag parsing, argument counts) is printed as is.
func printError(w io.Writer, err error, jsonOutput bool) {
	if jsonOutput {
		if data, jerr := snipErrors.FormatJSON(err); jerr == nil {
			_, _ = fmt.Fprintln(w, string(data))
			return
		}
	}

	var se *snipErrors.SnipError
	if !stderrors.As(err, &se) {
		output.New(w, noColor).Errorf("Error: %v", err)
		return
	}
	if debugMode {
		_, _ = fmt.Fprint(w, snipErrors.FormatForUser(err, true))
		return
	}
	_, _ = fmt.Fprint(w, snipErrors.FormatForCLI(err))
}

// loadConfig loads configuration for the project containing the working
// directory.
func loadConfig() (*config.Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, snipErrors.InternalError("failed to get current directory", err)
	}
	root, err := config.FindProjectRoot(cwd)
	if err != nil {
		root = cwd
	}
	return config.Load(root)
}

// newOutput returns an output writer for cmd's stdout honoring --no-color.
func newOutput(cmd *cobra.Command) *output.Writer {
	return output.New(cmd.OutOrStdout(), noColor)
}

// newErrOutput returns an output writer for cmd's stderr honoring --no-color.
func newErrOutput(cmd *cobra.Command) *output.Writer {
	return output.New(cmd.ErrOrStderr(), noColor)
}
