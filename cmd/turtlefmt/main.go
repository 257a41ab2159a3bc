// Command turtlefmt reformats Turtle documents into a canonical,
// deterministic layout (spec.md §1, §6).
//
// The CLI surface is rebuilt on github.com/spf13/cobra, in the style of
// custodia-labs-sercha-cli's internal/adapters/driving/cli package,
// replacing the teacher's hand-rolled os.Args switch (cmd/trigo/main.go).
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCodeFor(err))
	}
}
