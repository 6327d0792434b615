package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewRootCommand assembles the eqx command tree.
func NewRootCommand(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "eqx",
		Short: "eqx - Eclipse/Equinox installation launcher",
		Long: `eqx inspects an Eclipse/Equinox installation, validates that the core
bundles required for a barebones instance are present, computes the default
framework properties, and launches the OSGi runtime as an external process.

An installation is a directory with a plugins/ subdirectory containing jars
named <symbolic-name>_<version>.jar.`,
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.AddCommand(newRunCommand())
	rootCmd.AddCommand(newInventoryCommand())
	rootCmd.AddCommand(newValidateCommand())
	rootCmd.AddCommand(newPropertiesCommand())
	rootCmd.AddCommand(newConsoleCommand())

	return rootCmd
}
