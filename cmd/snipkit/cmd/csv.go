package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/snipkit/internal/csvsplit"
)

func newCSVCmd() *cobra.Command {
	var (
		delimiter  string
		skipEmpty  bool
		separator  string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "csv FILE...",
		Short: "Split delimiter-separated files into rows",
		Long: `Read each file, split it into lines and split each line on the delimiter.

Quotes are not interpreted. A trailing newline yields a final empty row unless
--skip-empty is set. Files are read concurrently and printed in argument
order; the first failure aborts the command.`,
		Example: `  snipkit csv data.csv
  snipkit csv --delimiter ';' --skip-empty a.csv b.csv
  snipkit csv --json data.csv`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			opts := csvsplit.Options{
				Delimiter: cfg.CSV.Delimiter,
				TrimCR:    cfg.CSV.TrimCR,
				SkipEmpty: cfg.CSV.SkipEmpty,
			}
			if cmd.Flags().Changed("delimiter") {
				opts.Delimiter = delimiter
			}
			if cmd.Flags().Changed("skip-empty") {
				opts.SkipEmpty = skipEmpty
			}

			files, err := csvsplit.ReadFiles(cmd.Context(), args, opts)
			if err != nil {
				return err
			}
			slog.Debug("csv read", slog.Int("files", len(files)), slog.String("delimiter", opts.Delimiter))

			out := newOutput(cmd)
			if jsonOutput {
				return out.JSON(files)
			}
			for i, f := range files {
				if len(files) > 1 {
					if i > 0 {
						out.Newline()
					}
					out.Header("==> " + f.Path + " <==")
				}
				out.Rows(f.Rows, separator)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&delimiter, "delimiter", "d", ",", "Field delimiter (default from config)")
	cmd.Flags().BoolVar(&skipEmpty, "skip-empty", false, "Drop empty lines")
	cmd.Flags().StringVar(&separator, "sep", "\t", "Separator used when printing fields")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output rows as JSON")

	return cmd
}
