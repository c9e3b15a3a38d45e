// astgen - AST generator for ulox
//
// Reads a grammar file and writes Go node types, a Visitor interface and
// an Accept dispatcher. It is run from go:generate in internal/ast.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kolkov/ulox/internal/grammar"
)

var (
	grammarFile string
	outFile     string
	pkgName     string
	imports     []string
	nodeType    string
	baseType    string
	checkOnly   bool
)

var rootCmd = &cobra.Command{
	Use:   "astgen --grammar FILE [--out FILE]",
	Short: "Generate AST node types from a grammar file",
	Long: `astgen compiles a grammar description into Go source.

Each rule becomes a node type. A rule whose alternatives are all other
rules becomes an interface; other alternatives become a tagged struct.
A generic Visitor and an Accept dispatcher are emitted for every node type.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	flags := rootCmd.Flags()
	flags.StringVarP(&grammarFile, "grammar", "g", "", "grammar file to compile (required)")
	flags.StringVarP(&outFile, "out", "o", "", "output file (default: stdout)")
	flags.StringVarP(&pkgName, "package", "p", "ast", "package name of the generated file")
	flags.StringSliceVar(&imports, "import", []string{"token=github.com/kolkov/ulox/internal/token"},
		"qualifier=path import used by grammar types (repeatable)")
	flags.StringVar(&nodeType, "node", "Node", "interface every node implements")
	flags.StringVar(&baseType, "base", "BaseNode", "struct embedded in every node")
	flags.BoolVar(&checkOnly, "check", false, "only parse and validate the grammar")
	_ = rootCmd.MarkFlagRequired("grammar")
}

func run(cmd *cobra.Command, args []string) error {
	src, err := os.ReadFile(grammarFile)
	if err != nil {
		return fmt.Errorf("read grammar: %w", err)
	}

	g, err := grammar.Parse(filepath.Base(grammarFile), string(src))
	if err != nil {
		return fmt.Errorf("%s: %w", grammarFile, err)
	}
	if checkOnly {
		if err := g.Validate(); err != nil {
			return fmt.Errorf("%s: %w", grammarFile, err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "%s: %d rules ok\n", grammarFile, len(g.Rules))
		return nil
	}

	opts := grammar.Options{
		Package: pkgName,
		Imports: make(map[string]string),
		Node:    nodeType,
		Base:    baseType,
	}
	for _, imp := range imports {
		qual, path, ok := strings.Cut(imp, "=")
		if !ok || qual == "" || path == "" {
			return fmt.Errorf("invalid --import %q (expected qualifier=path)", imp)
		}
		opts.Imports[qual] = path
	}

	out, err := grammar.Generate(g, opts)
	if err != nil {
		return fmt.Errorf("%s: %w", grammarFile, err)
	}

	if outFile == "" {
		_, err = cmd.OutOrStdout().Write(out)
		return err
	}
	return os.WriteFile(outFile, out, 0o644)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "astgen: %v\n", err)
		os.Exit(1)
	}
}
