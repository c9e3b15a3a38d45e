package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/kolkov/ulox"
)

func newTokensCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "tokens [FILE|-]",
		Short: "Print the tokens of a source file",
		Long: `Scan a source file, or stdin, and print one token per line:

  line:col  kind  lexeme

Lexical errors are reported after the tokens that could be recognized.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, src, err := readSource(cmd, args)
			if err != nil {
				return err
			}

			toks, scanErr := ulox.Scan(src)
			p := o.printer(cmd)
			for _, t := range toks {
				pos := fmt.Sprintf("%d:%d", t.Line, t.Column)
				fmt.Fprintf(p.out, "%-8s %-10s %s\n", pos, t.Kind, strconv.Quote(t.Lexeme))
			}
			if scanErr != nil {
				p.report(name, scanErr)
				return errReported
			}
			return nil
		},
	}
}
