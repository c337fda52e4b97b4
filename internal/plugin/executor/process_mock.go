package executor

import (
	"context"
	"fmt"
	"io"
	"time"
)

// MockProcessRunner is a ProcessRunner for tests.
type MockProcessRunner struct {
	// RunFunc provides custom behaviour. The default returns "{}".
	RunFunc func(ctx context.Context, path string, args []string, stdin io.Reader) (stdout, stderr []byte, err error)

	// Delay simulates slow process execution.
	Delay time.Duration

	// ShouldTimeout blocks until the context is cancelled.
	ShouldTimeout bool

	CallCount int
	LastPath  string
	LastArgs  []string
	LastStdin []byte
}

// Run executes the mock behaviour.
func (m *MockProcessRunner) Run(ctx context.Context, path string, args []string, stdin io.Reader) ([]byte, []byte, error) {
	m.CallCount++
	m.LastPath = path
	m.LastArgs = args
	m.LastStdin = nil
	if stdin != nil {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, nil, err
		}
		m.LastStdin = data
	}

	if m.ShouldTimeout {
		<-ctx.Done()
		return nil, nil, ctx.Err()
	}

	if m.Delay > 0 {
		select {
		case <-time.After(m.Delay):
		case <-ctx.Done():
			return nil, nil, ctx.Err()
		}
	}

	if m.RunFunc != nil {
		return m.RunFunc(ctx, path, args, nil)
	}
	return []byte("{}"), nil, nil
}

// ExitError is a mock process failure with an exit code.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// ExitCode returns the simulated exit code.
func (e *ExitError) ExitCode() int {
	return e.Code
}

// NewMockProcessRunner creates a new mock process runner.
func NewMockProcessRunner() *MockProcessRunner {
	return &MockProcessRunner{}
}

// NewTimeoutMockProcessRunner creates a mock that blocks until the context ends.
func NewTimeoutMockProcessRunner() *MockProcessRunner {
	return &MockProcessRunner{ShouldTimeout: true}
}

// NewExitMockProcessRunner creates a mock that exits with code, writing stdout and stderr.
func NewExitMockProcessRunner(code int, stdout, stderr string) *MockProcessRunner {
	return &MockProcessRunner{
		RunFunc: func(context.Context, string, []string, io.Reader) ([]byte, []byte, error) {
			return []byte(stdout), []byte(stderr), &ExitError{Code: code}
		},
	}
}

// NewSuccessMockProcessRunner creates a mock that succeeds with stdout.
func NewSuccessMockProcessRunner(stdout []byte) *MockProcessRunner {
	return &MockProcessRunner{
		RunFunc: func(context.Context, string, []string, io.Reader) ([]byte, []byte, error) {
			return stdout, nil, nil
		},
	}
}
