package ulox

import "log/slog"

// Config holds options for Run.
type Config struct {
	// PrintAST fills Result.AST with the prefix rendering of the tree.
	PrintAST bool

	// Logger receives debug records with stage timings.
	// If nil, records are discarded.
	Logger *slog.Logger
}

// applyDefaults fills in default values for unset Config fields.
func (c *Config) applyDefaults() {
	if c.Logger == nil {
		c.Logger = slog.New(slog.DiscardHandler)
	}
}
