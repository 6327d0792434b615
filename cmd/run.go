package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// newRunCommand creates the run subcommand.
func newRunCommand() *cobra.Command {
	flags := &launchFlags{}

	cmd := &cobra.Command{
		Use:   "run <installation-root> [flags] [-- <program-args>...]",
		Short: "Launch the Equinox runtime and run its default application",
		Long: `Run validates the installation, computes the framework properties,
boots the OSGi runtime as an external java process, runs the default
application, and shuts the runtime down when it finishes.

Examples:
  eqx run ./eclipse
  eqx run ./eclipse --prop eclipse.consoleLog=false -- -application my.app
  eqx run ./eclipse --prop osgi.noShutdown=`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLaunch(args[0], args[1:], flags)
		},
	}

	registerLaunchFlags(cmd, flags)

	return cmd
}

func runLaunch(installRoot string, programArgs []string, flags *launchFlags) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// A signal cancels the context, which kills the runtime process.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		<-sigCh
		fmt.Println("\nShutting down...")
		cancel()
	}()

	l, err := buildLauncher(installRoot, programArgs, flags)
	if err != nil {
		return err
	}

	return l.Run(ctx)
}
