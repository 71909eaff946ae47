package command

import (
	"context"
	"fmt"
	"strings"
)

// Result is a canned command outcome for FakeRunner.
type Result struct {
	Output string
	Err    error
}

// FakeRunner is a Runner returning canned results keyed by the command line
// ("name arg1 arg2"). Unknown command lines fail with ErrNotFound.
type FakeRunner struct {
	Results map[string]Result
	// Paths lists executables LookPath resolves.
	Paths map[string]string
	// Calls records every command line in invocation order.
	Calls []string
}

// NewFakeRunner creates an empty FakeRunner.
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{Results: map[string]Result{}, Paths: map[string]string{}}
}

// On registers the result of a command line.
func (f *FakeRunner) On(commandLine string, output string, err error) *FakeRunner {
	f.Results[commandLine] = Result{Output: output, Err: err}
	return f
}

// Run implements Runner.
func (f *FakeRunner) Run(_ context.Context, _ string, name string, args ...string) (string, error) {
	line := strings.Join(append([]string{name}, args...), " ")
	f.Calls = append(f.Calls, line)
	res, ok := f.Results[line]
	if !ok {
		return "", fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	return res.Output, res.Err
}

// LookPath implements Runner.
func (f *FakeRunner) LookPath(name string) (string, error) {
	if p, ok := f.Paths[name]; ok {
		return p, nil
	}
	return "", fmt.Errorf("%s: %w", name, ErrNotFound)
}
