// Command matchcore drives the matchmaking pipeline: kick off a phase,
// check its status, rerun it with overrides, or cancel it while running.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
