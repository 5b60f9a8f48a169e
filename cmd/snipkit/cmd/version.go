package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Aman-CERP/snipkit/pkg/version"
)

// newVersionCmd creates the version command.
func newVersionCmd() *cobra.Command {
	var jsonOutput bool
	var shortOutput bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print version information including git commit, build date, and Go version.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := newOutput(cmd)

			// Short output takes precedence
			if shortOutput {
				out.Line(version.Short())
				return nil
			}
			if jsonOutput {
				return out.JSON(version.GetInfo())
			}
			out.Line(version.String())
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output version info as JSON")
	cmd.Flags().BoolVar(&shortOutput, "short", false, "Output only the version number")

	return cmd
}
