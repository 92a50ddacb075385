package framework

import (
	"fmt"
	"strings"
)

// TestID identifies a test or subtest by its path of names, such as
// "addon/build and install".
type TestID struct {
	Path []string
}

func (t TestID) String() string {
	return strings.Join(t.Path, "/")
}

// Plus returns a TestID with one more path component appended.
func (t TestID) Plus(name string) TestID {
	return TestID{Path: append(append([]string(nil), t.Path...), name)}
}

type TestResult struct {
	TestID  TestID
	Errors  []error
	Skipped bool
}

// Results accumulates the outcome of a suite run.
type Results struct {
	Tests    []TestResult
	Failures []TestResult
	Skips    []TestResult
}

// OK returns true if no test failed. Skipped tests do not count as failures.
func (r Results) OK() bool {
	return len(r.Failures) == 0
}

type TestFailure struct {
	ID  TestID
	Err error
}

func (f TestFailure) Error() string {
	return fmt.Sprintf("[%s]: %s", f.ID, f.Err)
}
