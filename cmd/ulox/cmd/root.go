// Package cmd implements the ulox command line.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/kolkov/ulox/internal/config"
)

// errReported is returned by commands that already printed their
// diagnostics; Execute only sets the exit status for it.
var errReported = errors.New("errors reported")

// options is the state shared by every subcommand.
type options struct {
	cfgFile string
	verbose bool

	cfg *config.Config
	log *slog.Logger
}

// NewRootCmd builds the ulox command tree.
func NewRootCmd() *cobra.Command {
	o := &options{}

	root := &cobra.Command{
		Use:   "ulox",
		Short: "ulox - expression language interpreter",
		Long: `ulox scans, parses and evaluates expressions of a small Lox-style
language: numbers, strings, true, false, nil, unary - and !, arithmetic,
comparison, equality and grouping.

Without a command, ulox starts an interactive session.`,
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: o.setup,
		RunE:              o.runREPL,
	}

	root.PersistentFlags().StringVar(&o.cfgFile, "config", "", "config file (default: $ULOX_CONFIG, ./ulox.toml or ~/.config/ulox/config.toml)")
	root.PersistentFlags().BoolVarP(&o.verbose, "verbose", "v", false, "log debug output to stderr")

	root.AddCommand(
		newReplCmd(o),
		newRunCmd(o),
		newEvalCmd(o),
		newTokensCmd(o),
		newASTCmd(o),
		newVersionCmd(),
	)
	return root
}

// Execute runs the root command. Interrupts cancel the command's context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := NewRootCmd().ExecuteContext(ctx)
	if err != nil && !errors.Is(err, errReported) {
		fmt.Fprintf(os.Stderr, "ulox: %v\n", err)
	}
	return err
}

// setup loads the configuration and creates the logger.
func (o *options) setup(cmd *cobra.Command, _ []string) error {
	var err error
	if o.cfgFile != "" {
		o.cfg, err = config.Load(o.cfgFile)
	} else {
		o.cfg, err = config.LoadDefault()
	}
	if err != nil {
		return err
	}

	level := o.cfg.Level()
	if o.verbose {
		level = slog.LevelDebug
	}
	o.log = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	o.log.Debug("config loaded", "path", o.cfg.Path(), "workers", o.cfg.Workers)
	return nil
}

func (o *options) printer(cmd *cobra.Command) *printer {
	return newPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr(), o.cfg.Color)
}

// readSource returns the contents of the file named by args[0], or of
// stdin when there is no argument or it is "-".
func readSource(cmd *cobra.Command, args []string) (name, src string, err error) {
	if len(args) == 0 || args[0] == "-" {
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", "", fmt.Errorf("read stdin: %w", err)
		}
		return "<stdin>", string(b), nil
	}
	b, err := os.ReadFile(args[0])
	if err != nil {
		return "", "", fmt.Errorf("read source: %w", err)
	}
	return args[0], string(b), nil
}
