// morphe is the command-line entry point for the schema graph toolkit:
// ingest source model definitions, convert between dialects, and diff two
// model snapshots.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
