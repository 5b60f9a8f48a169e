package cmd

import (
	"context"
	stderrors "errors"
	"os"
	"os/signal"
	"regexp"
	"syscall"

	"github.com/spf13/cobra"

	snipErrors "github.com/Aman-CERP/snipkit/internal/errors"
	"github.com/Aman-CERP/snipkit/internal/logging"
)

func newLogsCmd() *cobra.Command {
	var (
		lines   int
		follow  bool
		tag     string
		filter  string
		logFile string
	)

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "View the debug log",
		Long: `Print the last lines of the session debug log, optionally filtered by tag
or regular expression. With -f new lines are printed as they are appended
until interrupted.`,
		Example: `  snipkit logs
  snipkit logs -n 100 --tag test
  snipkit logs -f --filter 'cache'`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := logFile
			if path == "" {
				cfg, err := loadConfig()
				if err != nil {
					return err
				}
				path = cfg.DebugLog.Path()
			}

			viewerCfg := logging.ViewerConfig{
				Tag:     tag,
				NoColor: !newOutput(cmd).UseColor(),
			}
			if filter != "" {
				re, err := regexp.Compile(filter)
				if err != nil {
					return snipErrors.ValidationError("invalid --filter pattern", err).
						WithDetail("pattern", filter)
				}
				viewerCfg.Pattern = re
			}

			return runLogs(cmd.Context(), logging.NewViewer(viewerCfg, cmd.OutOrStdout()), path, lines, follow)
		},
	}

	cmd.Flags().IntVarP(&lines, "lines", "n", 50, "Number of lines to show (0 for all)")
	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "Follow new lines")
	cmd.Flags().StringVar(&tag, "tag", "", "Only show lines with this tag")
	cmd.Flags().StringVar(&filter, "filter", "", "Only show lines matching this regular expression")
	cmd.Flags().StringVar(&logFile, "file", "", "Debug log file (default from config)")

	return cmd
}

func runLogs(ctx context.Context, viewer *logging.Viewer, path string, lines int, follow bool) error {
	entries, err := viewer.Tail(path, lines)
	if err != nil {
		var se *snipErrors.SnipError
		if stderrors.As(err, &se) && se.Code == snipErrors.ErrCodeFileNotFound {
			return se.WithSuggestion("Write a line first with 'snipkit debuglog'")
		}
		return err
	}
	viewer.Print(entries)

	if !follow {
		return nil
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	ch := make(chan logging.DebugEntry, 64)
	errCh := make(chan error, 1)
	go func() {
		errCh <- viewer.Follow(ctx, path, ch)
		close(ch)
	}()

	for entry := range ch {
		viewer.Print([]logging.DebugEntry{entry})
	}
	return <-errCh
}
