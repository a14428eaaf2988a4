package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"bigword/internal/bignum"
)

func newSelfcheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "selfcheck",
		Short: "Verify the platform assumptions of the arithmetic",
		Long: `Verify word width, wrap-around, shift and float64 precision assumptions.
Every command already does this on startup; this command reports it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := bignum.SelfCheck(); err != nil {
				return err
			}
			if !quiet(cmd) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s platform assumptions hold (%d-bit words, base %d)\n",
					passColor.Sprint("ok"), bignum.WordBits, bignum.Base)
			}
			return nil
		},
	}
}
