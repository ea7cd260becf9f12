package warnings

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestSetWarningWriterRestoresAndCaptures tests the behavior of SetWarningWriter.
//
// It verifies:
//   - Original writer is restored after calling restore function
//   - Warning messages are captured by the new writer
//   - nil writer defaults to os.Stderr
func TestSetWarningWriterRestoresAndCaptures(t *testing.T) {
	original := warnWriter

	var buf bytes.Buffer
	restore := SetWarningWriter(&buf)
	Warnf("test message\n")
	restore()

	assert.Equal(t, original, warnWriter)
	assert.Contains(t, buf.String(), "test message")

	restore = SetWarningWriter(nil)
	restore()
	assert.Equal(t, os.Stderr, warnWriter)
}

// TestWarningWriterReturnsCurrent tests the behavior of WarningWriter.
//
// It verifies:
//   - Returns the currently configured warning writer
//   - Reflects writer changes made by SetWarningWriter
//   - Returns to original writer after restore
func TestWarningWriterReturnsCurrent(t *testing.T) {
	original := warnWriter
	assert.Equal(t, original, WarningWriter())

	var buf bytes.Buffer
	restore := SetWarningWriter(&buf)
	assert.Equal(t, &buf, WarningWriter())
	restore()

	assert.Equal(t, original, WarningWriter())
}

// TestCollector tests the line-collecting writer used by commands.
//
// It verifies:
//   - Multiple messages in a single write are split by newlines
//   - Whitespace is trimmed and empty lines are ignored
//   - Messages returns a copy
func TestCollector(t *testing.T) {
	c := &Collector{}
	input := []byte("  skipping line 3  \n\n  skipping line 7\n")
	n, err := c.Write(input)
	assert.NoError(t, err)
	assert.Equal(t, len(input), n)

	messages := c.Messages()
	assert.Equal(t, []string{"skipping line 3", "skipping line 7"}, messages)

	messages[0] = "changed"
	assert.Equal(t, "skipping line 3", c.Messages()[0])
}

// TestCollectorAsWarningWriter tests Warnf routed into a Collector.
func TestCollectorAsWarningWriter(t *testing.T) {
	c := &Collector{}
	restore := SetWarningWriter(c)
	defer restore()

	Warnf("Skipping %s\n", "broken@x")
	assert.Equal(t, []string{"Skipping broken@x"}, c.Messages())
}
