package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/text/unicode/norm"

	"bigword/internal/bignum"
)

func newChecksumCmd(a *app) *cobra.Command {
	var (
		prime    uint32
		base     int
		textOnly bool
		withHash bool
	)
	cmd := &cobra.Command{
		Use:   "checksum NUMBER",
		Short: "Print a numeral's residue modulo a prime",
		Long: `Print NUMBER modulo --prime. Negative values map to prime minus the
residue of the magnitude. With --text the residue is computed straight from
the digits without building the integer.`,
		Example: "  bigword checksum 123456789123456789 --prime 65521",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if prime == 0 {
				return fmt.Errorf("--prime must be non-zero")
			}
			if !cmd.Flags().Changed("base") {
				base = a.cfg.Calc.Base
			}
			b, err := toBase(base, "base")
			if err != nil {
				return err
			}
			src := norm.NFKC.String(args[0])
			out := cmd.OutOrStdout()

			if textOnly {
				sum, err := bignum.ChecksumText(src, prime, b)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, sum)
				return nil
			}
			x, err := bignum.Parse(src, b)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, x.Checksum(prime))
			if withHash {
				fmt.Fprintf(out, "hash %016x\n", x.Hash())
			}
			return nil
		},
	}
	cmd.Flags().Uint32Var(&prime, "prime", 65521, "modulus")
	cmd.Flags().IntVar(&base, "base", 10, "radix of NUMBER (default from config, else 10)")
	cmd.Flags().BoolVar(&textOnly, "text", false, "compute from the digits without parsing")
	cmd.Flags().BoolVar(&withHash, "hash", false, "also print the 64-bit hash")
	return cmd
}
