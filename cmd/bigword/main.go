package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"bigword/internal/bignum"
	"bigword/internal/config"
	"bigword/internal/observ"
	"bigword/internal/trace"
	"bigword/internal/version"
)

// app carries the state shared by every subcommand of one invocation.
type app struct {
	cfg     config.Config
	timer   *observ.Timer
	tracer  trace.Tracer
	cleanup func()
	stdin   io.Reader
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the CLI and returns the process exit code.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a := &app{timer: observ.NewTimer(), tracer: trace.Nop, stdin: stdin}
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if err != nil {
		dumpRing(a.tracer, stderr)
	}
	if a.cleanup != nil {
		a.cleanup()
	}
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		var pe *bignum.PlatformError
		if errors.As(err, &pe) {
			return 3
		}
		return 1
	}
	return 0
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "bigword",
		Short:         "Arbitrary-precision integers on 16-bit words",
		Long:          `bigword evaluates, converts and fingerprints arbitrary-precision integers and cross-checks its arithmetic against math/big`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
			if err != nil {
				return fmt.Errorf("failed to get timings flag: %w", err)
			}
			if showTimings {
				fmt.Fprint(cmd.ErrOrStderr(), a.timer.Summary())
			}
			return nil
		},
	}

	root.AddCommand(
		newEvalCmd(a),
		newConvertCmd(a),
		newChecksumCmd(a),
		newCheckCmd(a),
		newStoreCmd(a),
		newSelfcheckCmd(),
		newVersionCmd(),
	)

	flags := root.PersistentFlags()
	flags.String("color", "auto", "colorize output (auto|on|off)")
	flags.Bool("quiet", false, "suppress non-essential output")
	flags.Bool("timings", false, "show timing information")
	flags.String("config", "", "path to bigword.toml (default: nearest one above the working directory)")
	flags.String("trace", "", "trace output file (- for stderr)")
	flags.String("trace-level", "", "trace level (off|error|phase|detail|debug)")
	flags.String("trace-mode", "", "trace storage (stream|ring|both)")
	flags.Int("trace-ring-size", 4096, "events kept in ring mode")
	flags.Duration("trace-heartbeat", 0, "heartbeat interval while tracing (0 disables)")
	flags.String("cpu-profile", "", "write a CPU profile to this file")
	flags.String("mem-profile", "", "write a heap profile to this file on exit")
	flags.String("runtime-trace", "", "write a Go runtime trace to this file")
	return root
}

// setup runs before every subcommand: platform self-check, configuration,
// color, tracing and profiling.
func (a *app) setup(cmd *cobra.Command) error {
	if err := a.timer.Track("selfcheck", bignum.SelfCheck); err != nil {
		return err
	}

	configPath, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}
	err = a.timer.Track("config", func() error {
		cfg, err := config.Resolve(".", configPath)
		a.cfg = cfg
		return err
	})
	if err != nil {
		return err
	}

	if err := applyColorMode(cmd); err != nil {
		return err
	}

	stopTracing, err := setupTracing(cmd, a.cfg.Trace)
	if err != nil {
		return err
	}
	a.tracer = trace.FromContext(cmd.Context())
	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		stopTracing()
		return err
	}
	a.cleanup = func() {
		stopProfiling()
		stopTracing()
	}
	if a.cfg.Path != "" {
		trace.Point(a.tracer, trace.ScopeStage, "config", a.cfg.Path, trace.ParentID(cmd.Context()))
	}
	return nil
}

func quiet(cmd *cobra.Command) bool {
	q, err := cmd.Root().PersistentFlags().GetBool("quiet")
	return err == nil && q
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
