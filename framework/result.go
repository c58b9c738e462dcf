package framework

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

type Results struct {
	Tests    []TestResult
	Failures []TestResult
}

type TestResult struct {
	TestID  TestID
	Errors  []error
	Skipped bool
}

func (r Results) OK() bool {
	return len(r.Failures) == 0
}

type TestID struct {
	Path []string
}

func (t TestID) String() string {
	return strings.Join(t.Path, "/")
}

type TestFailure struct {
	ID  TestID
	Err error
}

func (f TestFailure) Error() string {
	return fmt.Sprintf("[%s]: %s", f.ID, f.Err)
}

// PrintResults writes a summary of the test run to the given writer, with
// failures listed individually.
func PrintResults(dest io.Writer, results Results) {
	if results.OK() {
		fmt.Fprintln(dest, color.GreenString("All %d tests passed", len(results.Tests)))
		return
	}

	fmt.Fprintln(dest, color.RedString("FAILED TESTS (%d):", len(results.Failures)))
	for _, f := range results.Failures {
		fmt.Fprintf(dest, "  * %s\n", color.RedString(f.TestID.String()))
		for _, err := range f.Errors {
			for _, line := range strings.Split(err.Error(), "\n") {
				fmt.Fprintf(dest, "    - %s\n", line)
			}
		}
	}
	fmt.Fprintln(dest, color.RedString("%d of %d tests failed", len(results.Failures), len(results.Tests)))
}
