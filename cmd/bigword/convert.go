package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newConvertCmd(a *app) *cobra.Command {
	var from, to int
	var dump bool
	cmd := &cobra.Command{
		Use:     "convert NUMBER",
		Short:   "Re-render a numeral in another base",
		Example: "  bigword convert ff --from 16 --to 2",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("from") {
				from = a.cfg.Calc.Base
			}
			fromBase, err := toBase(from, "from")
			if err != nil {
				return err
			}
			toBaseW, err := toBase(to, "to")
			if err != nil {
				return err
			}
			x, err := parseNumeral(args[0], fromBase)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, x.Text(toBaseW))
			if dump {
				fmt.Fprintln(out, x.Dump())
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&from, "from", 10, "radix of the input (default from config, else 10)")
	cmd.Flags().IntVar(&to, "to", 16, "radix of the output")
	cmd.Flags().BoolVar(&dump, "dump", false, "also print the raw words")
	return cmd
}
