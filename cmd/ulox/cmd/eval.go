package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newEvalCmd(o *options) *cobra.Command {
	var expr []string

	return &cobra.Command{
		Use:   "eval [--config FILE] [-v] [--] EXPR...",
		Short: "Evaluate an expression given as arguments",
		Long: `Evaluate the arguments, joined by spaces, as one expression.

Flags are only recognized before the expression, so expressions starting
with '-' need no quoting beyond the shell's.`,
		Example: `  ulox eval '1 + 2 * 3'
  ulox eval '-1 + 2'
  ulox eval -- '"a" + "b"'`,
		// "-1 + 2" would otherwise be read as a shorthand flag
		DisableFlagParsing: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var help bool
			var err error
			expr, help, err = o.splitEvalArgs(args)
			if err != nil {
				return err
			}
			if help {
				return cmd.Help()
			}
			if len(expr) == 0 {
				return errors.New("eval: missing expression")
			}
			return o.setup(cmd, expr)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if len(expr) == 0 {
				// help was printed
				return nil
			}
			if !o.evalInput(o.printer(cmd), strings.Join(expr, " ")) {
				return errReported
			}
			return nil
		},
	}
}

// splitEvalArgs consumes the persistent flags and "--" in front of the
// expression and returns the remaining arguments.
func (o *options) splitEvalArgs(args []string) (expr []string, help bool, err error) {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--":
			return args[i+1:], false, nil
		case arg == "-h" || arg == "--help":
			return nil, true, nil
		case arg == "-v" || arg == "--verbose":
			o.verbose = true
		case arg == "--config":
			if i+1 >= len(args) {
				return nil, false, fmt.Errorf("flag needs an argument: --config")
			}
			i++
			o.cfgFile = args[i]
		case strings.HasPrefix(arg, "--config="):
			o.cfgFile = strings.TrimPrefix(arg, "--config=")
		default:
			return args[i:], false, nil
		}
	}
	return nil, false, nil
}
