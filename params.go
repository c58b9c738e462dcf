package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/restcheck/rest-api-tests/framework"
)

type commandParams struct {
	blogAPIURL string
	userAPIURL string
	timeout    time.Duration
	recordFile string
	filters    framework.RegexFilters
	debug      bool
	debugAll   bool
}

func (c *commandParams) Read(args []string) bool {
	fs := flag.NewFlagSet("", flag.ExitOnError)
	fs.StringVar(&c.blogAPIURL, "blog-api-url", "", "override the base URL of the blog sandbox")
	fs.StringVar(&c.userAPIURL, "user-api-url", "", "override the base URL of the user sandbox")
	fs.DurationVar(&c.timeout, "timeout", 0, "override the per-request timeout")
	fs.StringVar(&c.recordFile, "record", "", "record every HTTP call to this database file")
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
