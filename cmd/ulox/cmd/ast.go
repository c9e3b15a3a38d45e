package cmd

import (
	"github.com/spf13/cobra"

	"github.com/kolkov/ulox"
)

func newASTCmd(o *options) *cobra.Command {
	var parens bool

	cmd := &cobra.Command{
		Use:   "ast [FILE|-]",
		Short: "Print the syntax tree of a source file",
		Long: `Parse a source file, or stdin, and print its syntax tree in prefix form:

  (* (- 123) (grouping 45.67))

With --parens the tree is printed as fully parenthesized source instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, src, err := readSource(cmd, args)
			if err != nil {
				return err
			}

			p := o.printer(cmd)
			expr, err := ulox.Parse(src)
			if err != nil {
				p.report(name, err)
				return errReported
			}
			o.log.Debug("parsed", "source", name, "depth", expr.Depth())
			if parens {
				p.ast(expr.Parenthesized())
			} else {
				p.ast(expr.Prefix())
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&parens, "parens", false, "print fully parenthesized source")
	return cmd
}
