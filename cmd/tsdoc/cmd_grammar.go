package main

import (
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/exp/ebnf"

	"github.com/dhamidi/tsdoc/typescript"
)

func newGrammarCmd() *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:           "grammar",
		Short:         "Print the TypeScript recognition grammars in EBNF",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			var failed int
			for _, g := range typescript.Grammars() {
				if !check {
					fmt.Fprintln(out, g.EBNF)
					continue
				}

				if err := verifyGrammar(g); err != nil {
					failed++
					fmt.Fprintf(out, "%s: FAIL\n", g.Start)
					printErrors(out, err)
					continue
				}
				fmt.Fprintf(out, "%s: ok\n", g.Start)
			}
			if failed > 0 {
				return fmt.Errorf("%d grammars failed verification", failed)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "parse and verify the grammars instead of printing them")

	return cmd
}

func verifyGrammar(g typescript.Grammar) error {
	grammar, err := ebnf.Parse(g.Start, strings.NewReader(g.EBNF))
	if err != nil {
		return err
	}
	return ebnf.Verify(grammar, g.Start)
}

func printErrors(w io.Writer, err error) {
	v := reflect.ValueOf(err)
	if v.Kind() == reflect.Slice {
		for i := 0; i < v.Len(); i++ {
			fmt.Fprintln(w, v.Index(i).Interface())
		}
	} else {
		fmt.Fprintln(w, err)
	}
}
