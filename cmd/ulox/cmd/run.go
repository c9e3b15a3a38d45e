package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kolkov/ulox/internal/interp"
)

func newRunCmd(o *options) *cobra.Command {
	var jobs int

	cmd := &cobra.Command{
		Use:   "run FILE...",
		Short: "Evaluate source files",
		Long: `Evaluate each file as one expression and print its value.

Files are evaluated in parallel; output is printed in argument order.
When more than one file is given each value is prefixed with its file name.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			units := make([]interp.Unit, len(args))
			for i, name := range args {
				b, err := os.ReadFile(name)
				if err != nil {
					return fmt.Errorf("read source: %w", err)
				}
				units[i] = interp.Unit{Name: name, Source: string(b)}
			}

			workers := jobs
			if workers <= 0 {
				workers = o.cfg.Workers
			}
			o.log.Debug("running", "files", len(units), "workers", workers)

			results, err := interp.RunBatch(cmd.Context(), units, interp.BatchConfig{NumWorkers: workers})
			if err != nil {
				return err
			}

			p := o.printer(cmd)
			failed := false
			for _, r := range results {
				o.log.Debug("evaluated", "file", r.Name, "elapsed", r.Elapsed)
				if r.Err != nil {
					p.report(r.Name, r.Err)
					failed = true
					continue
				}
				if len(results) > 1 {
					fmt.Fprint(p.out, p.name.Render(r.Name+":")+" ")
				}
				p.value(r.Value.String())
			}
			if failed {
				return errReported
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&jobs, "jobs", "j", 0, "number of parallel workers (default: config workers)")
	return cmd
}
