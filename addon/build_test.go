package addon

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ynput/ayon-test-fixtures/framework"
)

func writeBuildScript(t *testing.T, root, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(root, "build.sh"), []byte(content), 0o755))
}

func shellBuilder(root string, logger framework.Logger) *PackageBuilder {
	b := NewPackageBuilder(root, logger)
	b.Command = "sh"
	b.Script = "build.sh"
	return b
}

func TestPackageBuilderProducesArchive(t *testing.T) {
	root := t.TempDir()
	outputDir := t.TempDir()
	writeBuildScript(t, root, `#!/bin/sh
echo "building package"
echo "a warning" 1>&2
: > "$2/test_addon-1.2.3.zip"
`)

	var logger framework.CapturingLogger
	result, err := shellBuilder(root, &logger).Build("test_addon", "1.2.3", outputDir)
	require.NoError(t, err)
	assert.Equal(t, "1.2.3", result.Version)
	assert.Equal(t, outputDir, result.OutputDir)
	assert.FileExists(t, result.ArchivePath)
	assert.Equal(t, filepath.Join(outputDir, "test_addon-1.2.3.zip"), result.ArchivePath)

	var messages []string
	for _, m := range logger.Output() {
		messages = append(messages, m.Message)
	}
	assert.Contains(t, messages, "building package\n")
	assert.Contains(t, messages, "a warning\n")
}

func TestPackageBuilderFailsOnNonZeroExit(t *testing.T) {
	root := t.TempDir()
	writeBuildScript(t, root, "#!/bin/sh\necho \"doomed\"\nexit 3\n")

	_, err := shellBuilder(root, nil).Build("test_addon", "1.2.3", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "packaging script failed")
}

func TestPackageBuilderFailsWhenArchiveIsMissing(t *testing.T) {
	root := t.TempDir()
	writeBuildScript(t, root, "#!/bin/sh\nexit 0\n")

	_, err := shellBuilder(root, nil).Build("test_addon", "1.2.3", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "was not created")
}
