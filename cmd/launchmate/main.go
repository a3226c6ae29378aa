// Command launchmate is a terminal front end for the LaunchMate API. It keeps
// the project and notification aggregates the dashboard uses and prints their
// views.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
