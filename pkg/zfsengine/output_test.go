package zfsengine

import (
	"fmt"
	"testing"

	"github.com/function61/gokit/assert"
)

func TestOutputTail(t *testing.T) {
	tail := newOutputTail(4)

	// tail only returns the last 4 lines
	splitter := newLineSplitter(func(line string) {
		tail.Write(line)
	})

	_, _ = splitter.Write([]byte("line 1\nline 2\nline 3 left open"))

	assert.EqualString(t, fmt.Sprintf("%v", tail.Lines()), "[line 1 line 2]")

	_, _ = splitter.Write([]byte("\n")) // close line 3

	assert.EqualString(t, fmt.Sprintf("%v", tail.Lines()), "[line 1 line 2 line 3 left open]")

	_, _ = splitter.Write([]byte("line 4\nline 5\nline 6 no newline"))
	splitter.Flush()

	assert.EqualString(t, fmt.Sprintf("%v", tail.Lines()), "[line 3 left open line 4 line 5 line 6 no newline]")

	splitter.Flush() // nothing buffered, no-op

	assert.Assert(t, len(tail.Lines()) == 4)
}
