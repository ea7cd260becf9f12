// Package warnings routes user-facing warnings (skipped definitions lines,
// unreadable package directories) to a swappable writer so commands can
// collect them and print them after the main output.
package warnings

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

var (
	mu         sync.RWMutex
	warnWriter io.Writer = os.Stderr
)

// Warnf writes a formatted warning to the configured warning writer.
//
// Parameters:
//   - format: Printf-style format string for the warning message
//   - args: Variadic arguments to format into the string
func Warnf(format string, args ...any) {
	mu.RLock()
	w := warnWriter
	mu.RUnlock()
	_, _ = fmt.Fprintf(w, format, args...)
}

// WarningWriter returns the currently configured warning writer.
func WarningWriter() io.Writer {
	mu.RLock()
	defer mu.RUnlock()
	return warnWriter
}

// SetWarningWriter swaps the warning writer and returns a restore function.
//
// Parameters:
//   - w: The new io.Writer to use; if nil, defaults to os.Stderr
//
// Returns:
//   - func(): A restore function that sets the writer back to the previous value
func SetWarningWriter(w io.Writer) func() {
	mu.Lock()
	defer mu.Unlock()

	previous := warnWriter
	if w == nil {
		warnWriter = os.Stderr
	} else {
		warnWriter = w
	}

	return func() {
		mu.Lock()
		defer mu.Unlock()
		warnWriter = previous
	}
}

// Collector is an io.Writer that keeps each non-empty written line as a
// separate message. It is safe for concurrent use.
type Collector struct {
	mu       sync.Mutex
	messages []string
}

// Write splits p into lines and stores the trimmed non-empty ones.
func (c *Collector) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, line := range strings.Split(string(p), "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			c.messages = append(c.messages, trimmed)
		}
	}
	return len(p), nil
}

// Messages returns a copy of the collected messages in write order.
func (c *Collector) Messages() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.messages...)
}
