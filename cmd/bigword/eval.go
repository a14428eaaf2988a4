package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"bigword/internal/bignum"
	"bigword/internal/calc"
	"bigword/internal/store"
)

type evalOptions struct {
	base     int
	outBase  int
	showVars bool
	load     bool
	storeDir string
}

func newEvalCmd(a *app) *cobra.Command {
	var opts evalOptions
	cmd := &cobra.Command{
		Use:   "eval [expr...]",
		Short: "Evaluate integer expressions",
		Long: `Evaluate expressions over arbitrary-precision integers.

Each argument is one statement; with no arguments statements are read from
standard input, one per line. Supported: + - * / % (truncating), unary -,
parentheses, 0x/0o/0b prefixes, r#digits for an explicit radix, abs(x),
sign(x), checksum(x, p) and "let name = expr". The previous result is _.`,
		Example: "  bigword eval '2*3+4' 'let x = 16#ff' 'x * x'",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(cmd, a, opts, args)
		},
	}
	cmd.Flags().IntVar(&opts.base, "base", 0, "radix for unprefixed numerals (default from config, else 10)")
	cmd.Flags().IntVar(&opts.outBase, "out", 10, "radix for printed results")
	cmd.Flags().BoolVar(&opts.showVars, "vars", false, "print all variables after evaluation")
	cmd.Flags().BoolVar(&opts.load, "load", false, "bind every stored value as a variable first")
	cmd.Flags().StringVar(&opts.storeDir, "dir", "", "store directory for --load")
	return cmd
}

func runEval(cmd *cobra.Command, a *app, opts evalOptions, args []string) error {
	inBase := a.cfg.Calc.Base
	if cmd.Flags().Changed("base") {
		inBase = opts.base
	}
	base, err := toBase(inBase, "base")
	if err != nil {
		return err
	}
	outBase, err := toBase(opts.outBase, "out")
	if err != nil {
		return err
	}

	sess, err := calc.NewSession(calc.Options{Base: base})
	if err != nil {
		return err
	}
	if opts.load {
		if err := loadStored(a, sess, opts.storeDir); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	idx := a.timer.Begin("eval")
	defer a.timer.End(idx, "")

	if len(args) > 0 {
		for _, src := range args {
			if err := evalOne(cmd, sess, src, outBase, out); err != nil {
				return err
			}
		}
	} else if err := evalLines(cmd, sess, a.stdin, outBase, out); err != nil {
		return err
	}

	if opts.showVars {
		for _, b := range sess.Bindings() {
			fmt.Fprintf(out, "%s = %s\n", b.Name, b.Value.Text(outBase))
		}
	}
	return nil
}

func evalOne(cmd *cobra.Command, sess *calc.Session, src string, outBase bignum.Word, out io.Writer) error {
	res, err := sess.Eval(cmd.Context(), src)
	if err != nil {
		return fmt.Errorf("%q: %w", src, err)
	}
	if res.Name != "" {
		fmt.Fprintf(out, "%s = %s\n", res.Name, res.Value.Text(outBase))
		return nil
	}
	fmt.Fprintln(out, res.Value.Text(outBase))
	return nil
}

// evalLines evaluates stdin line by line. Blank lines and lines starting
// with # are skipped.
func evalLines(cmd *cobra.Command, sess *calc.Session, in io.Reader, outBase bignum.Word, out io.Writer) error {
	if in == nil {
		return nil
	}
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	line := 0
	for sc.Scan() {
		line++
		src := strings.TrimSpace(sc.Text())
		if src == "" || strings.HasPrefix(src, "#") {
			continue
		}
		if err := evalOne(cmd, sess, src, outBase, out); err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
	}
	return sc.Err()
}

func loadStored(a *app, sess *calc.Session, dir string) error {
	st, err := openStore(a, dir)
	if err != nil {
		return err
	}
	entries, err := st.List()
	if err != nil {
		return err
	}
	for _, e := range entries {
		v, err := st.Get(e.Name)
		if err != nil {
			return err
		}
		sess.Set(e.Name, v)
	}
	return nil
}

func openStore(a *app, dir string) (*store.Store, error) {
	if dir == "" {
		dir = a.cfg.Store.Dir
	}
	return store.Open(dir)
}
