package cmd

import (
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	snipErrors "github.com/Aman-CERP/snipkit/internal/errors"
	"github.com/Aman-CERP/snipkit/internal/mathx"
)

// factorialResult is one JSON output entry of the factorial command.
type factorialResult struct {
	N     int    `json:"n"`
	Value string `json:"value"`
}

func newFactorialCmd() *cobra.Command {
	var (
		useBig     bool
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "factorial N...",
		Short: "Compute n!",
		Long: `Compute the factorial of each argument.

Without --big results must fit in an unsigned 64-bit integer (n <= 20).
With --big results are exact for n up to 100000 and are cached for the rest of the
invocation (factorial.memo_size entries).`,
		Example: `  snipkit factorial 5
  snipkit factorial --big 30 25 30`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFactorial(cmd, args, useBig, jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&useBig, "big", false, "Use arbitrary precision")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output results as JSON")

	return cmd
}

func runFactorial(cmd *cobra.Command, args []string, useBig, jsonOutput bool) error {
	ns := make([]int, 0, len(args))
	for _, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil {
			return snipErrors.ValidationError("not an integer: "+strconv.Quote(a), err)
		}
		ns = append(ns, n)
	}

	compute := func(n int) (string, error) {
		v, err := mathx.Factorial(n)
		if err != nil {
			return "", err
		}
		return strconv.FormatUint(v, 10), nil
	}
	if useBig {
		memoSize := mathx.DefaultMemoSize
		if cfg, err := loadConfig(); err == nil {
			memoSize = cfg.Factorial.MemoSize
		}
		memo := mathx.NewMemo(memoSize)
		compute = func(n int) (string, error) {
			v, err := memo.Get(n)
			if err != nil {
				return "", err
			}
			return v.String(), nil
		}
	}

	results := make([]factorialResult, 0, len(ns))
	for _, n := range ns {
		v, err := compute(n)
		if err != nil {
			return err
		}
		slog.Debug("factorial", slog.Int("n", n), slog.Bool("big", useBig), slog.Int("digits", len(v)))
		results = append(results, factorialResult{N: n, Value: v})
	}

	out := newOutput(cmd)
	if jsonOutput {
		return out.JSON(results)
	}
	for _, r := range results {
		out.Line(r.Value)
	}
	return nil
}
