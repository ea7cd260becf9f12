// Package testutil provides shared test helpers: output capture, config
// builders and on-disk fixtures for definitions files and package directories.
package testutil

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

// redirect swaps *target for a pipe and drains it in the background so
// large outputs cannot fill the pipe buffer and block fn.
//
// Returns:
//   - func() string: Restores *target and returns everything written
func redirect(t *testing.T, target **os.File) func() string {
	t.Helper()

	r, w, err := os.Pipe()
	require.NoError(t, err)

	original := *target
	*target = w

	done := make(chan string)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		_ = r.Close()
		done <- buf.String()
	}()

	return func() string {
		_ = w.Close()
		*target = original
		return <-done
	}
}

// CaptureStdout captures stdout during the execution of fn.
//
// Parameters:
//   - t: Testing instance for helper marking
//   - fn: Function to execute while capturing stdout
//
// Returns:
//   - string: All content written to stdout during fn execution
func CaptureStdout(t *testing.T, fn func()) string {
	t.Helper()
	restore := redirect(t, &os.Stdout)
	fn()
	return restore()
}

// CaptureStderr captures stderr during the execution of fn.
func CaptureStderr(t *testing.T, fn func()) string {
	t.Helper()
	restore := redirect(t, &os.Stderr)
	fn()
	return restore()
}

// CaptureOutput captures both stdout and stderr during the execution of fn.
//
// Returns:
//   - stdout: All content written to stdout during fn execution
//   - stderr: All content written to stderr during fn execution
func CaptureOutput(t *testing.T, fn func()) (stdout, stderr string) {
	t.Helper()
	restoreOut := redirect(t, &os.Stdout)
	restoreErr := redirect(t, &os.Stderr)
	fn()
	return restoreOut(), restoreErr()
}
