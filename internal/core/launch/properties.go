package launch

import (
	"net/url"
	"path/filepath"
	"strings"

	"equinox.tools/cli/internal/core/bundle"
)

// Framework property keys recognized by the Equinox bootstrap. Any key
// not listed here is passed through to the runtime verbatim.
const (
	PropUseSystemProperties = "osgi.framework.useSystemProperties"
	PropInstallArea         = "osgi.install.area"
	PropNoShutdown          = "osgi.noShutdown"
	PropUseDS               = "equinox.use.ds"
	PropConsoleLog          = "eclipse.consoleLog"
	PropBundles             = "osgi.bundles"
	PropFramework           = "osgi.framework"
)

// autoStartBundles are installed and started automatically, in start-level
// order: bundle discovery first, then eclipse application support, then
// declarative services.
var autoStartBundles = []string{
	"org.eclipse.equinox.common@2:start",
	"org.eclipse.update.configurator@3:start",
	"org.eclipse.core.runtime@4:start",
	"org.eclipse.equinox.ds@5:start",
}

// DefaultProperties computes the baseline framework properties for an
// installation:
//
//	osgi.framework.useSystemProperties = false
//	osgi.install.area                  = <installation root>
//	osgi.noShutdown                    = false
//	equinox.use.ds                     = true
//	eclipse.consoleLog                 = true
//	osgi.bundles                       = <auto-start list>
//	osgi.framework                     = <file URI of the org.eclipse.osgi jar>
//
// It fails if the framework bundle does not resolve to exactly one
// version.
func DefaultProperties(inv *bundle.Inventory) (map[string]string, error) {
	frameworkPath, err := inv.ResolveSingle(bundle.FrameworkBundle)
	if err != nil {
		return nil, err
	}

	installArea, err := filepath.Abs(inv.Root())
	if err != nil {
		return nil, err
	}

	return map[string]string{
		PropUseSystemProperties: "false",
		PropInstallArea:         installArea,
		PropNoShutdown:          "false",
		PropUseDS:               "true",
		PropConsoleLog:          "true",
		PropBundles:             strings.Join(autoStartBundles, ", "),
		PropFramework:           FileURI(frameworkPath),
	}, nil
}

// Merge applies overrides to a copy of defaults. An override with an
// empty value deletes the key; a non-empty value replaces it. Keys absent
// from overrides keep their default value.
func Merge(defaults, overrides map[string]string) map[string]string {
	merged := make(map[string]string, len(defaults))
	for key, value := range defaults {
		merged[key] = value
	}
	for key, value := range overrides {
		if value == "" {
			delete(merged, key)
		} else {
			merged[key] = value
		}
	}
	return merged
}

// FileURI renders a filesystem path as a file: URI, the form the
// bootstrap expects for the osgi.framework property.
func FileURI(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
	return u.String()
}

// PathFromURI converts a file: URI back to a filesystem path. Plain paths
// are returned unchanged.
func PathFromURI(uri string) string {
	u, err := url.Parse(uri)
	if err != nil || u.Scheme != "file" {
		return uri
	}
	return filepath.FromSlash(u.Path)
}
