// Package testfixtures provides builders for materializing fake Equinox
// installations on disk in tests.
package testfixtures

import (
	"os"
	"path/filepath"
	"testing"
)

// RequiredJars is a minimal valid plugin set, one version per required
// bundle. Tests start from this and add or drop entries.
var RequiredJars = []string{
	"org.eclipse.osgi_3.10.0.jar",
	"org.eclipse.equinox.common_3.6.0.jar",
	"org.eclipse.update.configurator_3.3.0.jar",
	"org.eclipse.core.runtime_3.11.0.jar",
	"org.eclipse.equinox.ds_1.4.0.jar",
}

// InstallationBuilder assembles a fake installation directory under a
// test temp dir.
type InstallationBuilder struct {
	t     *testing.T
	files []string
	dirs  []string
}

// NewInstallation creates a builder with an empty plugins directory.
func NewInstallation(t *testing.T) *InstallationBuilder {
	t.Helper()
	return &InstallationBuilder{t: t}
}

// WithRequiredBundles adds the minimal valid plugin set.
func (b *InstallationBuilder) WithRequiredBundles() *InstallationBuilder {
	b.files = append(b.files, RequiredJars...)
	return b
}

// WithBundle adds a plugin jar named <name>_<version>.jar.
func (b *InstallationBuilder) WithBundle(name, version string) *InstallationBuilder {
	b.files = append(b.files, name+"_"+version+".jar")
	return b
}

// WithFile adds an arbitrary file to the plugins directory.
func (b *InstallationBuilder) WithFile(filename string) *InstallationBuilder {
	b.files = append(b.files, filename)
	return b
}

// WithoutBundle drops every previously added jar whose name matches.
func (b *InstallationBuilder) WithoutBundle(name string) *InstallationBuilder {
	kept := b.files[:0]
	for _, f := range b.files {
		if !matchesBundle(f, name) {
			kept = append(kept, f)
		}
	}
	b.files = kept
	return b
}

// WithSubdir adds a subdirectory inside the plugins directory; scanners
// must ignore it.
func (b *InstallationBuilder) WithSubdir(name string) *InstallationBuilder {
	b.dirs = append(b.dirs, name)
	return b
}

// Build writes the installation to disk and returns its root.
func (b *InstallationBuilder) Build() string {
	b.t.Helper()

	root := b.t.TempDir()
	pluginsDir := filepath.Join(root, "plugins")
	if err := os.MkdirAll(pluginsDir, 0o755); err != nil {
		b.t.Fatalf("failed to create plugins dir: %v", err)
	}

	for _, dir := range b.dirs {
		if err := os.MkdirAll(filepath.Join(pluginsDir, dir), 0o755); err != nil {
			b.t.Fatalf("failed to create subdir %s: %v", dir, err)
		}
	}
	for _, file := range b.files {
		if err := os.WriteFile(filepath.Join(pluginsDir, file), []byte("fake jar"), 0o644); err != nil {
			b.t.Fatalf("failed to write %s: %v", file, err)
		}
	}

	return root
}

func matchesBundle(filename, name string) bool {
	prefix := name + "_"
	return len(filename) > len(prefix) && filename[:len(prefix)] == prefix
}
