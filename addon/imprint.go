package addon

import (
	"crypto/md5"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/spf13/afero"
)

// Imprinter temporarily rewrites the version line of a manifest file to a
// unique test value so a test build can be installed without colliding
// with existing addon versions. Restore puts the original line back.
type Imprinter struct {
	fs        afero.Fs
	path      string
	original  string
	imprinted string
}

// Imprint replaces `version = "<current>"` in the manifest at path with
// `version = "<current>-test+<8 hex chars>"` and returns an Imprinter
// holding the new version. If the expected version line is not present
// the file is left untouched and no error is reported; that is the
// documented contract of this literal-substring patch, kept for
// compatibility with the manifest format.
func Imprint(fs afero.Fs, path, currentVersion string) (*Imprinter, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return nil, err
	}
	sum := md5.Sum(buf)
	testVersion := fmt.Sprintf("%s-test+%s", currentVersion, hex.EncodeToString(sum[:])[:8])

	imp := &Imprinter{
		fs:        fs,
		path:      path,
		original:  currentVersion,
		imprinted: testVersion,
	}
	if err := replaceInFile(fs, path, versionLine(currentVersion), versionLine(testVersion)); err != nil {
		return nil, err
	}
	return imp, nil
}

// Version returns the imprinted test version.
func (i *Imprinter) Version() string {
	return i.imprinted
}

// Restore performs the inverse replacement, returning the manifest to its
// pre-imprint content. Call it on scope exit regardless of test outcome.
func (i *Imprinter) Restore() error {
	return replaceInFile(i.fs, i.path, versionLine(i.imprinted), versionLine(i.original))
}

func versionLine(version string) string {
	return fmt.Sprintf("version = %q", version)
}

// replaceInFile rewrites the whole file with every occurrence of old
// replaced. Not atomic; the fixture owns the file for the duration of
// the test session.
func replaceInFile(fs afero.Fs, path, old, replacement string) error {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return err
	}
	replaced := strings.ReplaceAll(string(data), old, replacement)
	return afero.WriteFile(fs, path, []byte(replaced), 0o644)
}
