package bundle

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// RequiredBundles is the minimum bundle set for booting a barebones
// Equinox instance. Inventory construction fails unless every entry is
// present in the installation.
var RequiredBundles = []Requirement{
	{Name: "org.eclipse.osgi", Reason: "running the OSGi platform"},
	{Name: "org.eclipse.equinox.common", Reason: "bundle discovery and installation"},
	{Name: "org.eclipse.update.configurator", Reason: "bundle discovery and installation"},
	{Name: "org.eclipse.core.runtime", Reason: "eclipse application support"},
	{Name: "org.eclipse.equinox.ds", Reason: "OSGi declarative services"},
}

// FrameworkBundle is the bundle that provides the OSGi framework
// implementation itself.
const FrameworkBundle = "org.eclipse.osgi"

// Inventory is the set of bundles available in an Equinox installation,
// keyed by symbolic name with the available versions sorted ascending.
// It is built once by scanning the installation and is immutable
// afterward, so it is safe to share for inspection.
type Inventory struct {
	root   string
	byName map[string][]Version
}

// NewInventory scans <installationRoot>/plugins for jars named
// <name>_<version>.jar and verifies that the bundles in RequiredBundles
// are all present. Regular files without the .jar suffix are ignored, as
// are subdirectories.
func NewInventory(installationRoot string) (*Inventory, error) {
	pluginsDir := filepath.Join(installationRoot, "plugins")

	info, err := os.Stat(pluginsDir)
	if err != nil || !info.IsDir() {
		return nil, &MissingPluginsDirError{Root: installationRoot}
	}

	entries, err := os.ReadDir(pluginsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read plugins directory: %w", err)
	}

	inv := &Inventory{
		root:   installationRoot,
		byName: make(map[string][]Version),
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".jar") {
			continue
		}

		name, version, err := splitBundleFilename(entry.Name())
		if err != nil {
			return nil, err
		}
		inv.add(name, version)
	}

	if err := inv.validateRequired(); err != nil {
		return nil, err
	}

	return inv, nil
}

// splitBundleFilename splits a plugin jar filename at the last underscore
// into symbolic name and parsed version.
func splitBundleFilename(filename string) (string, Version, error) {
	stem := strings.TrimSuffix(filename, ".jar")
	split := strings.LastIndex(stem, "_")
	if split <= 0 || split == len(stem)-1 {
		return "", Version{}, &MalformedFilenameError{Filename: filename}
	}

	version, err := ParseVersion(stem[split+1:])
	if err != nil {
		return "", Version{}, fmt.Errorf("plugin %s: %w", filename, err)
	}
	return stem[:split], version, nil
}

// add records a version for a name, keeping the slice sorted and
// duplicate-free.
func (inv *Inventory) add(name string, version Version) {
	versions := inv.byName[name]
	idx := sort.Search(len(versions), func(i int) bool {
		return versions[i].Compare(version) >= 0
	})
	if idx < len(versions) && versions[idx].Compare(version) == 0 {
		return
	}
	versions = append(versions, Version{})
	copy(versions[idx+1:], versions[idx:])
	versions[idx] = version
	inv.byName[name] = versions
}

func (inv *Inventory) validateRequired() error {
	var missing []Requirement
	for _, req := range RequiredBundles {
		if len(inv.byName[req.Name]) == 0 {
			missing = append(missing, req)
		}
	}
	if len(missing) > 0 {
		return &MissingBundlesError{Missing: missing}
	}
	return nil
}

// Root returns the installation root the inventory was built from.
func (inv *Inventory) Root() string {
	return inv.root
}

// Names returns the symbolic names present in the inventory, sorted.
func (inv *Inventory) Names() []string {
	names := make([]string, 0, len(inv.byName))
	for name := range inv.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Versions returns the available versions of a bundle in ascending
// order, or nil if the bundle is not present.
func (inv *Inventory) Versions(name string) []Version {
	versions := inv.byName[name]
	if versions == nil {
		return nil
	}
	out := make([]Version, len(versions))
	copy(out, versions)
	return out
}

// Contains reports whether any version of the named bundle is present.
func (inv *Inventory) Contains(name string) bool {
	return len(inv.byName[name]) > 0
}

// ResolveSingle returns the jar path for the named bundle, requiring that
// exactly one version is available. The path uses the normalized version
// string, matching how the platform renders versions.
func (inv *Inventory) ResolveSingle(name string) (string, error) {
	versions := inv.byName[name]
	if len(versions) != 1 {
		return "", &AmbiguousVersionError{Name: name, Versions: inv.Versions(name)}
	}
	filename := fmt.Sprintf("%s_%s.jar", name, versions[0])
	return filepath.Join(inv.root, "plugins", filename), nil
}
