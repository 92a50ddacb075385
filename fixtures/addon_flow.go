package fixtures

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/ynput/ayon-test-fixtures/addon"
	"github.com/ynput/ayon-test-fixtures/client"
	"github.com/ynput/ayon-test-fixtures/framework"
)

// DoAddonInstallTests walks the full addon lifecycle: imprint a test
// version into the manifest, build the package, install it, wait for the
// install event, restart the server, verify, then uninstall and restore
// the manifest on the way out.
func DoAddonInstallTests(t *framework.Context, env *environment) {
	t.Run("build and install", func(t *framework.Context) {
		fs := afero.NewOsFs()
		manifestPath := filepath.Join(env.cfg.AddonRoot, addon.ManifestFileName)
		manifest := addon.ReadManifest(fs, manifestPath)
		if manifest.Name == "" || manifest.Version == "" {
			t.SkipWithReason("no addon manifest at " + manifestPath)
		}

		imp, err := addon.Imprint(fs, manifestPath, manifest.Version)
		require.NoError(t, err)
		t.Defer(func() {
			if err := imp.Restore(); err != nil {
				t.Errorf("restoring manifest version: %s", err)
			}
		})
		t.Debug("imprinted test version %s", imp.Version())

		outputDir := env.cfg.OutputDir
		if outputDir == "" {
			outputDir, err = os.MkdirTemp("", "addon-package-")
			require.NoError(t, err)
			t.Defer(func() { _ = os.RemoveAll(outputDir) })
		}

		builder := addon.NewPackageBuilder(env.cfg.AddonRoot, t.DebugLogger())
		if env.cfg.BuildCommand != "" {
			builder.Command = env.cfg.BuildCommand
		}
		if env.cfg.BuildScript != "" {
			builder.Script = env.cfg.BuildScript
		}
		result, err := builder.Build(manifest.Name, imp.Version(), outputDir)
		require.NoError(t, err)

		session := client.NewSession(env.cfg.Server, t.DebugLogger())
		installer := addon.NewInstaller(session, t.DebugLogger())
		require.NoError(t, installer.Install(manifest.Name, result.Version, result.ArchivePath))
		t.Defer(func() {
			if err := installer.Uninstall(manifest.Name, result.Version); err != nil {
				t.Errorf("uninstalling addon: %s", err)
			}
		})
	})
}
