package bundle_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"equinox.tools/cli/internal/core/bundle"
	"equinox.tools/cli/internal/core/testfixtures"
)

// TestNewInventory_ValidInstallation tests scanning the minimal plugin set
func TestNewInventory_ValidInstallation(t *testing.T) {
	root := testfixtures.NewInstallation(t).WithRequiredBundles().Build()

	inv, err := bundle.NewInventory(root)

	require.NoError(t, err)
	assert.Equal(t, root, inv.Root())
	assert.Len(t, inv.Names(), 5)
	assert.True(t, inv.Contains("org.eclipse.osgi"))

	versions := inv.Versions("org.eclipse.osgi")
	require.Len(t, versions, 1)
	assert.Equal(t, "3.10.0", versions[0].String())
}

// TestNewInventory_MissingPluginsDirectory tests the missing-directory failure
func TestNewInventory_MissingPluginsDirectory(t *testing.T) {
	root := t.TempDir() // no plugins/ subdirectory

	_, err := bundle.NewInventory(root)

	var dirErr *bundle.MissingPluginsDirError
	require.ErrorAs(t, err, &dirErr)
	assert.Equal(t, root, dirErr.Root)
}

// TestNewInventory_IgnoresNonJarsAndSubdirs tests that only .jar regular
// files are inventoried
func TestNewInventory_IgnoresNonJarsAndSubdirs(t *testing.T) {
	root := testfixtures.NewInstallation(t).
		WithRequiredBundles().
		WithFile("README.txt").
		WithFile("artifacts.xml").
		WithSubdir("org.eclipse.something_1.0.0").
		Build()

	inv, err := bundle.NewInventory(root)

	require.NoError(t, err)
	assert.Len(t, inv.Names(), 5, "non-jar files and subdirectories should be ignored")
	assert.False(t, inv.Contains("README"))
}

// TestNewInventory_MultipleVersions tests that all versions of a name are
// retained, sorted ascending without duplicates
func TestNewInventory_MultipleVersions(t *testing.T) {
	root := testfixtures.NewInstallation(t).
		WithRequiredBundles().
		WithBundle("org.eclipse.core.runtime", "3.9.0").
		WithBundle("org.eclipse.core.runtime", "3.10.2").
		Build()

	inv, err := bundle.NewInventory(root)

	require.NoError(t, err)
	versions := inv.Versions("org.eclipse.core.runtime")
	require.Len(t, versions, 3)
	assert.Equal(t, "3.9.0", versions[0].String())
	assert.Equal(t, "3.10.2", versions[1].String())
	assert.Equal(t, "3.11.0", versions[2].String())
}

// TestNewInventory_MissingRequiredBundle tests that construction fails
// naming the missing bundle and its justification
func TestNewInventory_MissingRequiredBundle(t *testing.T) {
	root := testfixtures.NewInstallation(t).
		WithRequiredBundles().
		WithoutBundle("org.eclipse.equinox.ds").
		Build()

	_, err := bundle.NewInventory(root)

	var missingErr *bundle.MissingBundlesError
	require.ErrorAs(t, err, &missingErr)
	require.Len(t, missingErr.Missing, 1)
	assert.Equal(t, "org.eclipse.equinox.ds", missingErr.Missing[0].Name)
	assert.Equal(t, "OSGi declarative services", missingErr.Missing[0].Reason)
	assert.Contains(t, err.Error(), "org.eclipse.equinox.ds is required for OSGi declarative services")
}

// TestNewInventory_AllRequiredBundlesMissing tests that every missing
// bundle is reported, not just the first
func TestNewInventory_AllRequiredBundlesMissing(t *testing.T) {
	root := testfixtures.NewInstallation(t).
		WithBundle("com.example.unrelated", "1.0.0").
		Build()

	_, err := bundle.NewInventory(root)

	var missingErr *bundle.MissingBundlesError
	require.ErrorAs(t, err, &missingErr)
	assert.Len(t, missingErr.Missing, 5, "all five required bundles should be reported")
	for _, req := range missingErr.Missing {
		assert.Contains(t, err.Error(), req.Name)
		assert.Contains(t, err.Error(), req.Reason)
	}
}

// TestNewInventory_MalformedFilename tests rejection of jars without an
// underscore separator
func TestNewInventory_MalformedFilename(t *testing.T) {
	root := testfixtures.NewInstallation(t).
		WithRequiredBundles().
		WithFile("noseparator.jar").
		Build()

	_, err := bundle.NewInventory(root)

	var nameErr *bundle.MalformedFilenameError
	require.ErrorAs(t, err, &nameErr)
	assert.Equal(t, "noseparator.jar", nameErr.Filename)
}

// TestNewInventory_MalformedVersion tests that version parse errors
// propagate with the offending filename
func TestNewInventory_MalformedVersion(t *testing.T) {
	root := testfixtures.NewInstallation(t).
		WithRequiredBundles().
		WithBundle("com.example.bad", "not.a.version").
		Build()

	_, err := bundle.NewInventory(root)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "com.example.bad_not.a.version.jar")
}

// TestResolveSingle tests path resolution across version counts
func TestResolveSingle(t *testing.T) {
	tests := []struct {
		name          string
		bundleName    string
		extraVersions []string
		expectError   bool
		expectedFile  string
	}{
		{
			name:         "ExactlyOneVersion_ResolvesPath",
			bundleName:   "org.eclipse.osgi",
			expectedFile: "org.eclipse.osgi_3.10.0.jar",
		},
		{
			name:        "ZeroVersions_Fails",
			bundleName:  "org.eclipse.absent",
			expectError: true,
		},
		{
			name:          "MultipleVersions_Fails",
			bundleName:    "org.eclipse.osgi",
			extraVersions: []string{"3.11.0"},
			expectError:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			builder := testfixtures.NewInstallation(t).WithRequiredBundles()
			for _, v := range tt.extraVersions {
				builder.WithBundle(tt.bundleName, v)
			}
			root := builder.Build()

			inv, err := bundle.NewInventory(root)
			require.NoError(t, err)

			path, err := inv.ResolveSingle(tt.bundleName)

			if tt.expectError {
				var ambiguousErr *bundle.AmbiguousVersionError
				require.ErrorAs(t, err, &ambiguousErr)
				assert.Equal(t, tt.bundleName, ambiguousErr.Name)
			} else {
				require.NoError(t, err)
				assert.Equal(t, filepath.Join(root, "plugins", tt.expectedFile), path)
			}
		})
	}
}

// TestInventory_VersionsReturnsCopy tests that the inventory cannot be
// mutated through its accessors
func TestInventory_VersionsReturnsCopy(t *testing.T) {
	root := testfixtures.NewInstallation(t).WithRequiredBundles().Build()

	inv, err := bundle.NewInventory(root)
	require.NoError(t, err)

	versions := inv.Versions("org.eclipse.osgi")
	versions[0] = bundle.MustParseVersion("9.9.9")

	fresh := inv.Versions("org.eclipse.osgi")
	assert.Equal(t, "3.10.0", fresh[0].String(), "mutating a returned slice should not affect the inventory")
}

// TestInventory_VersionsAbsentBundle tests the nil return for unknown names
func TestInventory_VersionsAbsentBundle(t *testing.T) {
	root := testfixtures.NewInstallation(t).WithRequiredBundles().Build()

	inv, err := bundle.NewInventory(root)
	require.NoError(t, err)

	assert.Nil(t, inv.Versions("org.eclipse.absent"))
	assert.False(t, inv.Contains("org.eclipse.absent"))
}

// TestNewInventory_ErrorIsNotMissingBundles verifies error taxonomy does
// not conflate directory and bundle failures
func TestNewInventory_ErrorIsNotMissingBundles(t *testing.T) {
	_, err := bundle.NewInventory(filepath.Join(t.TempDir(), "does-not-exist"))

	var missingErr *bundle.MissingBundlesError
	assert.False(t, errors.As(err, &missingErr))
	var dirErr *bundle.MissingPluginsDirError
	assert.True(t, errors.As(err, &dirErr))
}
