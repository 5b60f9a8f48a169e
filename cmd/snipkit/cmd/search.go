package cmd

import (
	"cmp"
	"log/slog"
	"slices"
	"strconv"

	"github.com/spf13/cobra"

	snipErrors "github.com/Aman-CERP/snipkit/internal/errors"
	"github.com/Aman-CERP/snipkit/pkg/bsearch"
)

// searchResult is the JSON output of the search command.
type searchResult struct {
	Target string `json:"target"`
	Index  int    `json:"index"`
	Found  bool   `json:"found"`
	Sorted bool   `json:"sorted"`
}

func newSearchCmd() *cobra.Command {
	var (
		target     string
		asStrings  bool
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "search --target VALUE [flags] VALUE...",
		Short: "Binary search a sorted list",
		Long: `Search a list sorted in ascending order for a target value and print its
index, or -1 when the value is not present.

Values are integers unless --strings is given. The list is not validated:
unsorted input gives an unspecified result and prints a warning.`,
		Example: `  # Prints 2
  snipkit search --target 5 1 3 5 7 9

  # Prints -1
  snipkit search --target 10 1 3 5 7 9

  # Negative values follow --
  snipkit search --target -3 -- -5 -3 0

  # String comparison
  snipkit search --strings --target kiwi apple banana kiwi`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if asStrings {
				return runSearch(cmd, args, target, jsonOutput, func(s string) (string, error) { return s, nil })
			}
			return runSearch(cmd, args, target, jsonOutput, parseInt)
		},
	}

	cmd.Flags().StringVarP(&target, "target", "t", "", "Value to search for (required)")
	cmd.Flags().BoolVar(&asStrings, "strings", false, "Compare values as strings")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output result as JSON")
	_ = cmd.MarkFlagRequired("target")

	return cmd
}

func parseInt(s string) (int64, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, snipErrors.ValidationError("not an integer: "+strconv.Quote(s), err).
			WithSuggestion("Use --strings to compare values as text")
	}
	return v, nil
}

func runSearch[E cmp.Ordered](cmd *cobra.Command, args []string, target string, jsonOutput bool, parse func(string) (E, error)) error {
	values := make([]E, 0, len(args))
	for _, a := range args {
		v, err := parse(a)
		if err != nil {
			return err
		}
		values = append(values, v)
	}
	t, err := parse(target)
	if err != nil {
		return err
	}

	sorted := slices.IsSorted(values)
	idx := bsearch.Search(values, t)
	slog.Debug("search",
		slog.Int("len", len(values)),
		slog.String("target", target),
		slog.Int("index", idx),
		slog.Bool("sorted", sorted))

	out := newOutput(cmd)
	if jsonOutput {
		return out.JSON(searchResult{
			Target: target,
			Index:  idx,
			Found:  idx != bsearch.NotFound,
			Sorted: sorted,
		})
	}

	if !sorted {
		newErrOutput(cmd).Warning("input is not sorted; result is unspecified")
	}
	out.Linef("%d", idx)
	return nil
}
