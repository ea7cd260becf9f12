package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// Progress is a single-line progress indicator for long-running batches.
//
// Fields:
//   - writer: Destination for progress output (typically os.Stderr)
//   - total: Number of steps in the batch
//   - current: Steps completed so far
//   - message: Label shown before the counter
//   - enabled: Whether anything is written
//   - lastWidth: Width of the last line, for overwriting shorter ones
//
// All methods are safe for concurrent use.
type Progress struct {
	mu        sync.Mutex
	writer    io.Writer
	total     int
	current   int
	message   string
	enabled   bool
	lastWidth int
}

// NewProgress returns an enabled progress indicator.
//
// Parameters:
//   - writer: Destination for progress output
//   - total: Number of steps
//   - message: Label, e.g. "Installing"
//
// Returns:
//   - *Progress: The indicator; nothing is written until the first step
func NewProgress(writer io.Writer, total int, message string) *Progress {
	return &Progress{writer: writer, total: total, message: message, enabled: true}
}

// SetEnabled turns output on or off.
func (p *Progress) SetEnabled(enabled bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.enabled = enabled
}

// Increment advances by one step and redraws.
func (p *Progress) Increment() {
	p.Step("")
}

// Step advances by one step and redraws, naming the item that just finished.
func (p *Progress) Step(label string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.current++
	p.renderLocked(label)
}

// Done shows the final count and ends the line.
func (p *Progress) Done() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.current = p.total
	if p.renderLocked("") {
		_, _ = fmt.Fprintln(p.writer)
		p.lastWidth = 0
	}
}

// Clear blanks the progress line so other output can be printed.
func (p *Progress) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.enabled && p.lastWidth > 0 {
		_, _ = fmt.Fprintf(p.writer, "\r%s\r", strings.Repeat(" ", p.lastWidth))
		p.lastWidth = 0
	}
}

// renderLocked draws the current state; p.mu must be held. Writes are done
// under the lock so concurrent steps never interleave partial lines.
func (p *Progress) renderLocked(label string) bool {
	if !p.enabled || p.total <= 0 {
		return false
	}

	line := fmt.Sprintf("%s: %d/%d (%.0f%%)", p.message, p.current, p.total, float64(p.current)/float64(p.total)*100)
	if label != "" {
		line += " " + label
	}
	width := DisplayWidth(line)
	if width < p.lastWidth {
		line += strings.Repeat(" ", p.lastWidth-width)
	}
	p.lastWidth = width

	_, _ = fmt.Fprint(p.writer, "\r"+line)
	if f, ok := p.writer.(*os.File); ok {
		_ = f.Sync()
	}
	return true
}
