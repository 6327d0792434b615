package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"equinox.tools/cli/internal/core/bundle"
)

// newInventoryCommand creates the inventory subcommand.
func newInventoryCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inventory <installation-root>",
		Short: "List the bundles available in an installation",
		Long: `Inventory scans the installation's plugins directory and lists every
bundle with its available versions, sorted by symbolic name.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inv, err := bundle.NewInventory(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, titleStyle.Render(fmt.Sprintf("Bundles in %s", args[0])))
			for _, name := range inv.Names() {
				versions := inv.Versions(name)
				rendered := make([]string, len(versions))
				for i, v := range versions {
					rendered[i] = v.String()
				}
				fmt.Fprintf(out, "  %s %s\n",
					bundleNameStyle.Render(name),
					versionStyle.Render(strings.Join(rendered, ", ")))
			}
			fmt.Fprintln(out, dimStyle.Render(fmt.Sprintf("%d bundles", len(inv.Names()))))
			return nil
		},
	}
}
