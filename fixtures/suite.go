// Package fixtures ties the addon and scaffold workflows into a named,
// filterable suite that runs against a live server.
package fixtures

import (
	"github.com/ynput/ayon-test-fixtures/config"
	"github.com/ynput/ayon-test-fixtures/framework"
)

// SuiteConfig carries everything the suite needs; nothing is read from
// the process environment past this point.
type SuiteConfig struct {
	// Server is the connection configuration for the target server.
	Server config.Config
	// AddonRoot is the addon project root holding the manifest and the
	// packaging script.
	AddonRoot string
	// OutputDir receives the built addon archive. Empty means a fresh
	// temporary directory per run.
	OutputDir string
	// BuildCommand overrides the interpreter for the packaging script.
	BuildCommand string
	// BuildScript overrides the packaging script name.
	BuildScript string
}

type environment struct {
	cfg SuiteConfig
}

// RunSuite runs every fixture flow, subject to the filter, and returns
// the accumulated results.
func RunSuite(cfg SuiteConfig, filter framework.Filter, testLogger framework.TestLogger) framework.Results {
	return framework.Run(filter, testLogger, func(c *framework.Context) {
		env := &environment{cfg: cfg}
		c.Run("addon", func(c *framework.Context) { DoAddonInstallTests(c, env) })
		c.Run("project", func(c *framework.Context) { DoProjectScaffoldTests(c, env) })
	})
}
