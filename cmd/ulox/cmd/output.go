package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/kolkov/ulox"
	"github.com/kolkov/ulox/internal/diag"
	"github.com/kolkov/ulox/internal/interp"
)

// Colors
var (
	colorPrimary   = lipgloss.Color("#7C3AED")
	colorSecondary = lipgloss.Color("#10B981")
	colorError     = lipgloss.Color("#EF4444")
	colorMuted     = lipgloss.Color("#6B7280")
)

// printer writes results to out and diagnostics to errOut.
type printer struct {
	out    io.Writer
	errOut io.Writer

	result   lipgloss.Style
	tree     lipgloss.Style
	location lipgloss.Style
	message  lipgloss.Style
	name     lipgloss.Style
}

// newPrinter creates a printer. A nil color enables styling only for
// writers that are terminals.
func newPrinter(out, errOut io.Writer, color *bool) *printer {
	outR := lipgloss.NewRenderer(out)
	errR := lipgloss.NewRenderer(errOut)
	if color != nil {
		profile := termenv.Ascii
		if *color {
			profile = termenv.ANSI256
		}
		outR.SetColorProfile(profile)
		errR.SetColorProfile(profile)
	}

	return &printer{
		out:      out,
		errOut:   errOut,
		result:   outR.NewStyle().Foreground(colorSecondary).Bold(true),
		tree:     outR.NewStyle().Foreground(colorMuted).Italic(true),
		location: errR.NewStyle().Foreground(colorMuted),
		message:  errR.NewStyle().Foreground(colorError),
		name:     errR.NewStyle().Foreground(colorPrimary).Bold(true),
	}
}

func (p *printer) value(s string) {
	fmt.Fprintln(p.out, p.result.Render(s))
}

func (p *printer) ast(s string) {
	fmt.Fprintln(p.out, p.tree.Render(s))
}

// problem is one located message extracted from an error.
type problem struct {
	line, column int
	message      string
}

// problems flattens the error types produced by the pipeline. Errors of
// other types become a single problem without a location.
func problems(err error) []problem {
	var (
		se    *ulox.ScanError
		pe    *ulox.ParseError
		re    *ulox.RuntimeError
		list  diag.ErrorList
		de    *diag.Error
		irErr *interp.RuntimeError
	)
	switch {
	case errors.As(err, &se):
		out := make([]problem, len(se.Errors))
		for i, d := range se.Errors {
			out[i] = problem{d.Line, d.Column, d.Message}
		}
		return out
	case errors.As(err, &pe):
		return []problem{{pe.Line, pe.Column, pe.Message}}
	case errors.As(err, &re):
		return []problem{{re.Line, re.Column, re.Message}}
	case errors.As(err, &list):
		out := make([]problem, len(list))
		for i, d := range list {
			out[i] = problem{d.Section.Start.Line, d.Section.Start.Column, d.Message}
		}
		return out
	case errors.As(err, &de):
		return []problem{{de.Section.Start.Line, de.Section.Start.Column, de.Message}}
	case errors.As(err, &irErr):
		return []problem{{irErr.Section.Start.Line, irErr.Section.Start.Column, irErr.Message}}
	default:
		return []problem{{message: err.Error()}}
	}
}

// report prints one line per problem in err:
//
//	[line:col] Error: message
//
// prefixed with "name: " when name is not empty.
func (p *printer) report(name string, err error) {
	for _, pr := range problems(err) {
		if name != "" {
			fmt.Fprint(p.errOut, p.name.Render(name+":")+" ")
		}
		if pr.line > 0 {
			fmt.Fprint(p.errOut, p.location.Render(fmt.Sprintf("[%d:%d]", pr.line, pr.column))+" ")
		}
		fmt.Fprintln(p.errOut, p.message.Render("Error: "+pr.message))
	}
}
