package cmd

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/snipkit/internal/logging"
)

func newDebugLogCmd() *cobra.Command {
	var (
		tag   string
		dir   string
		quiet bool
	)

	cmd := &cobra.Command{
		Use:   "debuglog [MESSAGE...]",
		Short: "Append a line to the debug log",
		Long: `Append one line "[TAG] message at <timestamp>" to the session debug log
(data/session_debug.log under the working directory by default).

Without a message a "[TEST] Logging check" line is written, which verifies the
log directory is writable. Concurrent writers are serialized with a file lock.`,
		Example: `  snipkit debuglog
  snipkit debuglog --tag info "cache warmed"
  snipkit debuglog --dir /tmp/snip "hello"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logDir := dir
			file := logging.DebugLogFile
			if !cmd.Flags().Changed("dir") {
				cfg, err := loadConfig()
				if err != nil {
					return err
				}
				logDir = cfg.DebugLog.Dir
				file = cfg.DebugLog.File
			}

			dl := logging.NewDebugLogAt(filepath.Join(logDir, file))
			var err error
			if len(args) == 0 {
				err = dl.Check(cmd.Context())
			} else {
				err = dl.Append(cmd.Context(), tag, strings.Join(args, " "))
			}
			if err != nil {
				return err
			}

			if !quiet {
				out := newOutput(cmd)
				out.Success("Appended debug log line")
				out.Field("file", dl.Path)
				if len(args) > 0 {
					out.Field("tag", logging.NormalizeTag(tag))
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&tag, "tag", "DEBUG", "Tag for the line")
	cmd.Flags().StringVar(&dir, "dir", "", "Log directory (default from config)")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Print nothing on success")

	return cmd
}
