package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/dhamidi/parsec/certify"
	"github.com/dhamidi/parsec/ebnf"
	"github.com/spf13/cobra"
)

func newCapsCmd() *cobra.Command {
	var alphabet string
	var maxLen int

	cmd := &cobra.Command{
		Use:   "caps <grammar>",
		Short: "Print the certificates of every production",
		Long: `Print the certificates of every production.

With --verify, every production is also run on all inputs over the given
alphabet up to --max-len characters, and each certificate it claims is checked.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			grammar, err := ebnf.Load(args[0])
			if err != nil {
				return fmt.Errorf("load grammar: %w", err)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, name := range grammar.Names() {
				fmt.Fprintf(w, "%s\t%s\n", name, grammar.Caps(name))
			}
			if err := w.Flush(); err != nil {
				return err
			}

			if alphabet == "" {
				return nil
			}
			inputs := certify.Inputs(alphabet, maxLen)
			violations := 0
			for _, name := range grammar.Names() {
				p, err := grammar.Production(name)
				if err != nil {
					return err
				}
				for _, v := range certify.Certified(p, inputs) {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", name, v)
					violations++
				}
			}
			if violations > 0 {
				return fmt.Errorf("%d certificate violations", violations)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&alphabet, "verify", "", "check the certificates on every input over this alphabet")
	cmd.Flags().IntVar(&maxLen, "max-len", 4, "longest input checked by --verify")

	return cmd
}
