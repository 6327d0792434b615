package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

// newPropertiesCommand creates the properties subcommand.
func newPropertiesCommand() *cobra.Command {
	flags := &launchFlags{}

	cmd := &cobra.Command{
		Use:   "properties <installation-root> [flags]",
		Short: "Print the merged framework properties without launching",
		Long: `Properties computes the default framework properties for the
installation, applies config-file and --prop overrides, and prints the
final set the runtime would be started with.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			props, err := mergedProperties(args[0], flags)
			if err != nil {
				return err
			}

			keys := make([]string, 0, len(props))
			for key := range props {
				keys = append(keys, key)
			}
			sort.Strings(keys)

			out := cmd.OutOrStdout()
			for _, key := range keys {
				fmt.Fprintf(out, "%s=%s\n", key, props[key])
			}
			return nil
		},
	}

	registerLaunchFlags(cmd, flags)

	return cmd
}
