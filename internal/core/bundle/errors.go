package bundle

import (
	"fmt"
	"strings"
)

// MissingPluginsDirError indicates the installation root has no plugins
// directory.
type MissingPluginsDirError struct {
	Root string
}

func (e *MissingPluginsDirError) Error() string {
	return fmt.Sprintf("eclipse installation must have a plugins directory: %s", e.Root)
}

// MalformedFilenameError indicates a jar in the plugins directory does not
// follow the <name>_<version>.jar convention.
type MalformedFilenameError struct {
	Filename string
}

func (e *MalformedFilenameError) Error() string {
	return fmt.Sprintf("plugin filename %q is not of the form <name>_<version>.jar", e.Filename)
}

// Requirement names a bundle the launcher cannot boot without, with the
// reason it is required.
type Requirement struct {
	Name   string
	Reason string
}

// MissingBundlesError reports every required bundle absent from an
// installation, each with its justification.
type MissingBundlesError struct {
	Missing []Requirement
}

func (e *MissingBundlesError) Error() string {
	parts := make([]string, len(e.Missing))
	for i, req := range e.Missing {
		parts[i] = fmt.Sprintf("%s is required for %s", req.Name, req.Reason)
	}
	return "missing required bundles: " + strings.Join(parts, "; ")
}

// AmbiguousVersionError indicates a bundle had zero or multiple versions
// where exactly one was required.
type AmbiguousVersionError struct {
	Name     string
	Versions []Version
}

func (e *AmbiguousVersionError) Error() string {
	return fmt.Sprintf("expected 1 version for %s, had %v", e.Name, e.Versions)
}
