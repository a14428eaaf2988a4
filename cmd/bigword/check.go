package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"bigword/internal/crosscheck"
)

type checkOptions struct {
	iterations int
	seed       uint64
	jobs       int
	maxWords   int
	only       []string
	ui         string
	list       bool
}

func newCheckCmd(a *app) *cobra.Command {
	var opts checkOptions
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Cross-check the arithmetic against math/big",
		Long: `Run randomized properties (oracle agreement, algebraic laws, the division
law, numeral round trips, hash and checksum coherence) and report failures.
Runs are reproducible from --seed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, a, opts)
		},
	}
	cmd.Flags().IntVar(&opts.iterations, "iterations", 0, "cases per property (default from config)")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "random seed (default from config)")
	cmd.Flags().IntVar(&opts.jobs, "jobs", 0, "properties run concurrently (default from config)")
	cmd.Flags().IntVar(&opts.maxWords, "max-words", 0, "largest operand in words (default from config)")
	cmd.Flags().StringSliceVar(&opts.only, "only", nil, "run only these properties")
	cmd.Flags().StringVar(&opts.ui, "ui", "auto", "progress display (auto|on|off)")
	cmd.Flags().BoolVar(&opts.list, "list", false, "list properties and exit")
	return cmd
}

func runCheck(cmd *cobra.Command, a *app, opts checkOptions) error {
	out := cmd.OutOrStdout()
	if opts.list {
		for _, name := range crosscheck.Names() {
			fmt.Fprintln(out, name)
		}
		return nil
	}
	mode, err := readUIMode(opts.ui)
	if err != nil {
		return err
	}

	cfg := crosscheck.Config{
		Seed:       a.cfg.Check.Seed,
		Iterations: a.cfg.Check.Iterations,
		MaxWords:   a.cfg.Check.MaxWords,
		Jobs:       a.cfg.Check.Jobs,
		Primes:     a.cfg.Check.Primes,
		Only:       opts.only,
	}
	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = opts.seed
	}
	if flags.Changed("iterations") {
		cfg.Iterations = opts.iterations
	}
	if flags.Changed("jobs") {
		cfg.Jobs = opts.jobs
	}
	if flags.Changed("max-words") {
		cfg.MaxWords = opts.maxWords
	}

	idx := a.timer.Begin("check")
	var rep crosscheck.Report
	if shouldUseTUI(mode, out) {
		rep, err = runCheckWithUI(cmd.Context(), out, fmt.Sprintf("cross-check, seed %d", cfg.Seed), cfg)
	} else {
		rep, err = crosscheck.Run(cmd.Context(), cfg, nil)
	}
	a.timer.End(idx, fmt.Sprintf("%d properties", len(rep.Results)))
	if err != nil {
		return err
	}

	printReport(out, rep, quiet(cmd))
	if failed := rep.Failed(); len(failed) > 0 {
		return fmt.Errorf("%d of %d properties failed (seed %d)", len(failed), len(rep.Results), rep.Seed)
	}
	return nil
}

func printReport(out io.Writer, rep crosscheck.Report, quiet bool) {
	for _, res := range rep.Results {
		if res.Err == nil {
			if quiet {
				continue
			}
			fmt.Fprintf(out, "%s %-16s %s\n", passColor.Sprint("PASS"), res.Property,
				dimColor.Sprintf("%d cases, %s", res.Cases, res.Elapsed.Round(time.Microsecond)))
			continue
		}
		fmt.Fprintf(out, "%s %-16s %v\n", failColor.Sprint("FAIL"), res.Property, res.Err)
	}
}
