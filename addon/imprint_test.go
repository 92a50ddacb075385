package addon

import (
	"regexp"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testVersionPattern = regexp.MustCompile(`^1\.2\.3-test\+[0-9a-f]{8}$`)

func TestImprintProducesTaggedVersion(t *testing.T) {
	fs := writeManifest(t, sampleManifest)

	imp, err := Imprint(fs, ManifestFileName, "1.2.3")
	require.NoError(t, err)
	assert.Regexp(t, testVersionPattern, imp.Version())

	m := ReadManifest(fs, ManifestFileName)
	assert.Equal(t, imp.Version(), m.Version)
	assert.Equal(t, "test_addon", m.Name, "non-version lines must be untouched")
}

func TestImprintThenRestoreIsByteIdempotent(t *testing.T) {
	fs := writeManifest(t, sampleManifest)
	before, err := afero.ReadFile(fs, ManifestFileName)
	require.NoError(t, err)

	imp, err := Imprint(fs, ManifestFileName, "1.2.3")
	require.NoError(t, err)
	require.NoError(t, imp.Restore())

	after, err := afero.ReadFile(fs, ManifestFileName)
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
}

func TestImprintWithAbsentVersionLineIsASilentNoOp(t *testing.T) {
	content := "name = \"test_addon\"\nversion = \"9.0.0\"\n"
	fs := writeManifest(t, content)

	// The marker built from the given version is not in the file, so the
	// replace touches nothing and no error is reported.
	imp, err := Imprint(fs, ManifestFileName, "1.2.3")
	require.NoError(t, err)

	after, err := afero.ReadFile(fs, ManifestFileName)
	require.NoError(t, err)
	assert.Equal(t, content, string(after))

	require.NoError(t, imp.Restore())
	after, err = afero.ReadFile(fs, ManifestFileName)
	require.NoError(t, err)
	assert.Equal(t, content, string(after))
}

func TestImprintMissingFileIsAnError(t *testing.T) {
	_, err := Imprint(afero.NewMemMapFs(), ManifestFileName, "1.2.3")
	assert.Error(t, err)
}

func TestImprintSuffixesAreUnique(t *testing.T) {
	fs := writeManifest(t, sampleManifest)
	imp1, err := Imprint(fs, ManifestFileName, "1.2.3")
	require.NoError(t, err)
	require.NoError(t, imp1.Restore())

	imp2, err := Imprint(fs, ManifestFileName, "1.2.3")
	require.NoError(t, err)
	assert.NotEqual(t, imp1.Version(), imp2.Version())
}
