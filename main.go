package main

import (
	"fmt"
	"os"

	"equinox.tools/cli/cmd"
)

var (
	Version   = "dev"     // Overridden by ldflags
	Commit    = "none"    // Overridden by ldflags
	BuildTime = "unknown" // Overridden by ldflags
)

func main() {
	rootCmd := cmd.NewRootCommand(Version, Commit, BuildTime)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
