package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newStoreCmd(a *app) *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Keep named values on disk",
		Long: `Manage the value vault. Values are stored as checksummed msgpack records
under --dir, [store].dir from the config, or $XDG_DATA_HOME/bigword.`,
	}
	cmd.PersistentFlags().StringVar(&dir, "dir", "", "store directory")

	var putBase int
	put := &cobra.Command{
		Use:   "put NAME NUMBER",
		Short: "Store NUMBER under NAME",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("base") {
				putBase = a.cfg.Calc.Base
			}
			base, err := toBase(putBase, "base")
			if err != nil {
				return err
			}
			x, err := parseNumeral(args[1], base)
			if err != nil {
				return err
			}
			st, err := openStore(a, dir)
			if err != nil {
				return err
			}
			if err := st.Put(args[0], x); err != nil {
				return err
			}
			if !quiet(cmd) {
				fmt.Fprintf(cmd.OutOrStdout(), "stored %s (%d words)\n", args[0], x.Len())
			}
			return nil
		},
	}
	put.Flags().IntVar(&putBase, "base", 10, "radix of NUMBER (default from config, else 10)")

	var getBase int
	get := &cobra.Command{
		Use:   "get NAME",
		Short: "Print the value stored under NAME",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := toBase(getBase, "base")
			if err != nil {
				return err
			}
			st, err := openStore(a, dir)
			if err != nil {
				return err
			}
			x, err := st.Get(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), x.Text(base))
			return nil
		},
	}
	get.Flags().IntVar(&getBase, "base", 10, "radix of the output")

	ls := &cobra.Command{
		Use:   "ls",
		Short: "List stored values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(a, dir)
			if err != nil {
				return err
			}
			entries, err := st.List()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, e := range entries {
				fmt.Fprintf(out, "%-24s %6d words  checksum %10d  %s\n",
					e.Name, e.Words, e.Checksum, e.Saved.Local().Format(time.DateTime))
			}
			return nil
		},
	}

	rm := &cobra.Command{
		Use:   "rm NAME...",
		Short: "Delete stored values",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(a, dir)
			if err != nil {
				return err
			}
			for _, name := range args {
				if err := st.Delete(name); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.AddCommand(put, get, ls, rm)
	return cmd
}
