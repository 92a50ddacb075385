package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/ynput/ayon-test-fixtures/config"
	"github.com/ynput/ayon-test-fixtures/fixtures"
	"github.com/ynput/ayon-test-fixtures/framework"
)

type commandParams struct {
	serverURL    string
	apiKey       string
	addonRoot    string
	outputDir    string
	buildCommand string
	buildScript  string
	filters      framework.RegexFilters
	debug        bool
	debugAll     bool
}

func (c *commandParams) Read(args []string) bool {
	fs := flag.NewFlagSet("", flag.ExitOnError)
	fs.StringVar(&c.serverURL, "url", "", "server base URL (default: "+config.EnvServerURL+" env var)")
	fs.StringVar(&c.apiKey, "api-key", "", "server API key (default: "+config.EnvAPIKey+" env var)")
	fs.StringVar(&c.addonRoot, "root", ".", "addon project root containing the manifest and packaging script")
	fs.StringVar(&c.outputDir, "output", "", "directory for the built addon archive (default: temp dir)")
	fs.StringVar(&c.buildCommand, "build-command", "", "interpreter for the packaging script (default: python)")
	fs.StringVar(&c.buildScript, "build-script", "", "packaging script name (default: create_package.py)")
	fs.Var(&c.filters.MustMatch, "run", "regex pattern(s) to select tests to run")
	fs.Var(&c.filters.MustNotMatch, "skip", "regex pattern(s) to select tests not to run")
	fs.BoolVar(&c.debug, "debug", false, "enable debug logging for failed tests")
	fs.BoolVar(&c.debugAll, "debug-all", false, "enable debug logging for all tests")

	if err := fs.Parse(args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fs.Usage()
		return false
	}
	return true
}

func (c *commandParams) suiteConfig() fixtures.SuiteConfig {
	server := config.Load()
	if c.serverURL != "" {
		server.ServerURL = c.serverURL
	}
	if c.apiKey != "" {
		server.APIKey = c.apiKey
	}
	return fixtures.SuiteConfig{
		Server:       server,
		AddonRoot:    c.addonRoot,
		OutputDir:    c.outputDir,
		BuildCommand: c.buildCommand,
		BuildScript:  c.buildScript,
	}
}
