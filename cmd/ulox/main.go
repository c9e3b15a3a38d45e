// ulox - expression language interpreter
//
// Starts a REPL when run without arguments. See "ulox help" for the
// other commands.
package main

import (
	"os"

	"github.com/kolkov/ulox/cmd/ulox/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
