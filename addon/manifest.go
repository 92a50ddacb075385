// Package addon builds, installs, and uninstalls a versioned addon
// package against the server, including the temporary version imprint
// applied to the addon's manifest while end-to-end tests run.
package addon

import (
	"bufio"
	"strings"

	"github.com/spf13/afero"
)

// ManifestFileName is the manifest file expected at the addon project root.
const ManifestFileName = "package.py"

// Manifest holds the identity fields read from a package.py-style
// manifest. Fields that could not be found stay empty.
type Manifest struct {
	Name    string
	Version string
}

// ReadManifest scans the file line by line for `name = "..."` and
// `version = "..."` assignments. Only the first matching line per key is
// honored. A missing file yields a zero Manifest rather than an error,
// matching the contract that absence is a request-time problem for the
// caller, not a parse failure.
func ReadManifest(fs afero.Fs, path string) Manifest {
	var m Manifest
	f, err := fs.Open(path)
	if err != nil {
		return m
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case m.Version == "" && strings.HasPrefix(line, "version"):
			m.Version = assignmentValue(line)
		case m.Name == "" && strings.HasPrefix(line, "name"):
			m.Name = assignmentValue(line)
		}
	}
	return m
}

func assignmentValue(line string) string {
	_, value, found := strings.Cut(line, "=")
	if !found {
		return ""
	}
	return strings.Trim(strings.TrimSpace(value), `"`)
}
