package main

import (
	"fmt"
	"os"

	"github.com/restcheck/rest-api-tests/apiclient"
	"github.com/restcheck/rest-api-tests/apitests"
	"github.com/restcheck/rest-api-tests/config"
	"github.com/restcheck/rest-api-tests/framework"
	"github.com/restcheck/rest-api-tests/recorder"
)

func main() {
	var params commandParams
	if !params.Read(os.Args) {
		os.Exit(1)
	}

	cfg := config.Default()
	if params.blogAPIURL != "" {
		cfg.BlogAPIBaseURL = params.blogAPIURL
	}
	if params.userAPIURL != "" {
		cfg.UserAPIBaseURL = params.userAPIURL
	}
	if params.timeout != 0 {
		cfg.RequestTimeout = params.timeout
	}

	var rec apiclient.Recorder
	var store *recorder.Store
	if params.recordFile != "" {
		var err error
		store, err = recorder.Open(params.recordFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Cannot open record file: %s\n", err)
			os.Exit(1)
		}
		fmt.Printf("Recording HTTP calls to %s (run %s)\n", params.recordFile, store.RunID())
		rec = store
	}

	fmt.Println()
	framework.PrintFilterDescription(os.Stdout, params.filters)

	fmt.Println("Running test suite")

	testLogger := ConsoleTestLogger{
		DebugOutputOnFailure: params.debug || params.debugAll,
		DebugOutputOnSuccess: params.debugAll,
	}

	results := apitests.RunTestSuite(cfg, rec, params.filters.AsFilter, &testLogger)

	fmt.Println()
	framework.PrintResults(os.Stdout, results)
	if store != nil {
		_ = store.Close()
	}
	if !results.OK() {
		os.Exit(1)
	}
}
