package errors

import (
	"fmt"
	"strings"
)

// TestFailure pairs a materialization error with the test it occurred in.
// Per spec §7, an error inside a single test aborts materialization of that
// test but not of its siblings; the run surfaces a list of these instead.
type TestFailure struct {
	Test string
	Err  error
}

func (f TestFailure) Error() string {
	return fmt.Sprintf("%s: %v", f.Test, f.Err)
}

// Collection accumulates TestFailures across a materialization run without
// aborting it, grounded on the same "gather, don't abort" shape as the
// loader's per-file error handling.
type Collection struct {
	Failures []TestFailure
}

// Add records a failure for the given test.
func (c *Collection) Add(test string, err error) {
	if err == nil {
		return
	}
	c.Failures = append(c.Failures, TestFailure{Test: test, Err: err})
}

// HasFailures reports whether any failures were recorded.
func (c *Collection) HasFailures() bool {
	return len(c.Failures) > 0
}

// Error implements the error interface so a non-empty Collection can be
// returned/compared like any other error.
func (c *Collection) Error() string {
	if len(c.Failures) == 0 {
		return "no failures"
	}
	if len(c.Failures) == 1 {
		return c.Failures[0].Error()
	}
	parts := make([]string, len(c.Failures))
	for i, f := range c.Failures {
		parts[i] = f.Error()
	}
	return fmt.Sprintf("%d test failures: %s", len(c.Failures), strings.Join(parts, "; "))
}
