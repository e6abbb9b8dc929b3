package main

import (
	"fmt"
	"io"

	"github.com/dhamidi/parsec/ebnf"
	"github.com/spf13/cobra"
	xebnf "golang.org/x/exp/ebnf"
)

func newCheckCmd() *cobra.Command {
	var startProduction string

	cmd := &cobra.Command{
		Use:           "check <grammar>",
		Short:         "Parse, verify and compile an EBNF grammar file",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			source, err := ebnf.LoadGrammar(args[0])
			if err != nil {
				printErrors(out, err)
				return err
			}

			if startProduction != "" {
				if err := xebnf.Verify(source, startProduction); err != nil {
					printErrors(out, err)
					return err
				}
			}

			grammar, err := ebnf.Compile(source, ebnf.WithFile(args[0]))
			if err != nil {
				printErrors(out, err)
				return err
			}

			for _, hint := range grammar.Hints() {
				fmt.Fprintf(out, "hint: %s\n", hint)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&startProduction, "start", "", "start production for verification (if empty, only checks syntax)")

	return cmd
}

func printErrors(w io.Writer, err error) {
	for _, e := range ebnf.ErrorList(err) {
		fmt.Fprintln(w, e)
	}
}
