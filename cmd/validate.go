package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"equinox.tools/cli/internal/core/bundle"
)

// newValidateCommand creates the validate subcommand.
func newValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <installation-root>",
		Short: "Check that an installation can boot a barebones instance",
		Long: `Validate scans the installation and reports, for each bundle required
to boot a barebones Equinox instance, whether it is present and why it is
needed. The command fails if any required bundle is missing.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			_, err := bundle.NewInventory(args[0])

			var missingErr *bundle.MissingBundlesError
			if err != nil && !errors.As(err, &missingErr) {
				return err
			}

			missing := make(map[string]bool)
			if missingErr != nil {
				for _, req := range missingErr.Missing {
					missing[req.Name] = true
				}
			}

			fmt.Fprintln(out, titleStyle.Render(fmt.Sprintf("Validating %s", args[0])))
			for _, req := range bundle.RequiredBundles {
				mark := okStyle.Render("ok")
				if missing[req.Name] {
					mark = failStyle.Render("missing")
				}
				fmt.Fprintf(out, "  %-10s %s %s\n",
					mark,
					bundleNameStyle.Render(req.Name),
					dimStyle.Render("("+req.Reason+")"))
			}

			if missingErr != nil {
				return missingErr
			}
			fmt.Fprintln(out, okStyle.Render("Installation is launchable"))
			return nil
		},
	}
}
