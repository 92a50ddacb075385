package main

import (
	"fmt"
	"os"

	"github.com/ynput/ayon-test-fixtures/fixtures"
	"github.com/ynput/ayon-test-fixtures/framework"
)

func main() {
	var params commandParams
	if !params.Read(os.Args) {
		os.Exit(1)
	}

	cfg := params.suiteConfig()
	if err := cfg.Server.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %s\n", err)
		os.Exit(1)
	}

	fmt.Println()
	framework.PrintFilterDescription(params.filters)
	fmt.Printf("Running fixture suite against %s\n", cfg.Server.ServerURL)

	testLogger := framework.ConsoleTestLogger{
		DebugOutputOnFailure: params.debug || params.debugAll,
		DebugOutputOnSuccess: params.debugAll,
	}

	results := fixtures.RunSuite(cfg, params.filters.AsFilter, testLogger)

	fmt.Println()
	framework.PrintResults(results)
	if !results.OK() {
		os.Exit(1)
	}
}
