package addon

import (
	"bytes"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/alessio/shellescape"
	"github.com/spf13/afero"

	"github.com/ynput/ayon-test-fixtures/framework"
)

// DefaultBuildScript is the packaging script expected at the addon
// project root.
const DefaultBuildScript = "create_package.py"

// PackageBuilder runs the external packaging script that produces the
// installable addon archive.
type PackageBuilder struct {
	// Root is the addon project root containing the packaging script.
	Root string
	// Command is the interpreter used to run the script.
	Command string
	// Script is the script name, relative to Root.
	Script string

	fs     afero.Fs
	logger framework.Logger
}

// BuildResult pairs the imprinted version with the location of the
// produced archive.
type BuildResult struct {
	Version     string
	OutputDir   string
	ArchivePath string
}

func NewPackageBuilder(root string, logger framework.Logger) *PackageBuilder {
	if logger == nil {
		logger = framework.NullLogger()
	}
	return &PackageBuilder{
		Root:    root,
		Command: "python",
		Script:  DefaultBuildScript,
		fs:      afero.NewOsFs(),
		logger:  logger,
	}
}

// Build runs the packaging script with `-o outputDir`, streaming captured
// stdout and stderr to the logger. A non-zero exit status is a hard
// error; there is no retry. The archive is expected at
// <outputDir>/<name>-<version>.zip.
func (b *PackageBuilder) Build(name, version, outputDir string) (BuildResult, error) {
	args := []string{filepath.Join(b.Root, b.Script), "-o", outputDir}
	b.logger.Printf("building addon package: %s", quoteCommand(b.Command, args))

	cmd := exec.Command(b.Command, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	runErr := cmd.Run()

	if stdout.Len() > 0 {
		b.logger.Printf("%s", stdout.String())
	}
	if stderr.Len() > 0 {
		b.logger.Printf("%s", stderr.String())
	}
	if runErr != nil {
		return BuildResult{}, fmt.Errorf("packaging script failed: %w", runErr)
	}

	archive := filepath.Join(outputDir, fmt.Sprintf("%s-%s.zip", name, version))
	if exists, _ := afero.Exists(b.fs, archive); !exists {
		return BuildResult{}, fmt.Errorf("packaging script succeeded but %s was not created", archive)
	}
	return BuildResult{Version: version, OutputDir: outputDir, ArchivePath: archive}, nil
}

func quoteCommand(command string, args []string) string {
	quoted := []string{shellescape.Quote(command)}
	for _, a := range args {
		quoted = append(quoted, shellescape.Quote(a))
	}
	return strings.Join(quoted, " ")
}
