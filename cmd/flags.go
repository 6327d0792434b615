package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"equinox.tools/cli/internal/config"
	"equinox.tools/cli/internal/core/bundle"
	"equinox.tools/cli/internal/infrastructure/equinox"
	"equinox.tools/cli/internal/launcher"
)

// launchFlags holds the flags shared by the commands that launch or
// inspect a launch configuration.
type launchFlags struct {
	configPath string
	props      []string
	java       string
	workDir    string
	debug      bool
}

// parseProps converts repeated --prop key=value flags into a property
// override map. "key=" (an empty value) clears the corresponding default
// at merge time.
func parseProps(pairs []string) (map[string]string, error) {
	props := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("invalid property %q, expected key=value", pair)
		}
		props[key] = value
	}
	return props, nil
}

// resolveOverrides merges config-file property overrides with the
// command-line ones, the command line winning.
func resolveOverrides(cfg *config.Config, flags *launchFlags) (map[string]string, error) {
	cliProps, err := parseProps(flags.props)
	if err != nil {
		return nil, err
	}

	overrides := make(map[string]string, len(cfg.Properties)+len(cliProps))
	for key, value := range cfg.Properties {
		overrides[key] = value
	}
	for key, value := range cliProps {
		overrides[key] = value
	}
	return overrides, nil
}

// buildLauncher loads the config file, scans the installation, and wires
// a launcher bound to the java process starter.
func buildLauncher(installRoot string, programArgs []string, flags *launchFlags) (*launcher.Launcher, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	overrides, err := resolveOverrides(cfg, flags)
	if err != nil {
		return nil, err
	}

	inventory, err := bundle.NewInventory(installRoot)
	if err != nil {
		return nil, err
	}

	java := cfg.JavaPath
	if flags.java != "" {
		java = flags.java
	}
	workDir := cfg.WorkingDir
	if flags.workDir != "" {
		workDir = flags.workDir
	}
	debug := cfg.Debug || flags.debug

	starter := equinox.NewStarterWithOptions(java, workDir, nil, debug)

	args := append(append([]string(nil), cfg.Args...), programArgs...)
	l := launcher.New(inventory, starter).
		SetArgs(args).
		SetProps(overrides)

	return l, nil
}

// mergedProperties computes the final property set without launching.
func mergedProperties(installRoot string, flags *launchFlags) (map[string]string, error) {
	l, err := buildLauncher(installRoot, nil, flags)
	if err != nil {
		return nil, err
	}
	return l.Properties()
}

// registerLaunchFlags wires the shared launch flags onto a command.
func registerLaunchFlags(cmd *cobra.Command, flags *launchFlags) {
	cmd.Flags().StringVar(&flags.configPath, "config", "", "Path to the eqx config file")
	cmd.Flags().StringArrayVar(&flags.props, "prop", nil, "Framework property override (key=value, repeatable; key= clears a default)")
	cmd.Flags().StringVar(&flags.java, "java", "", "Java executable used to launch the runtime")
	cmd.Flags().StringVar(&flags.workDir, "workdir", "", "Working directory for the runtime process")
	cmd.Flags().BoolVar(&flags.debug, "debug", false, "Print the launch command line and shutdown details")
}
