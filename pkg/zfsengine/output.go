package zfsengine

import (
	"bytes"
	"container/ring"
	"sync"
)

// how many lines of engine output are kept for CommandError
const outputTailLines = 20

// io.Writer that hands full lines of engine output to lineCompleted
type lineSplitter struct {
	buf           []byte // buffer before receiving \n
	lineCompleted func(string)
	mu            sync.Mutex
}

func newLineSplitter(lineCompleted func(string)) *lineSplitter {
	return &lineSplitter{
		buf:           []byte{},
		lineCompleted: lineCompleted,
	}
}

func (l *lineSplitter) Write(data []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.buf = append(l.buf, data...)

	// as long as we have lines, chop the buffer down
	for {
		idx := bytes.IndexByte(l.buf, '\n')
		if idx == -1 {
			break
		}

		l.lineCompleted(string(l.buf[0:idx]))

		l.buf = l.buf[idx+1:]
	}

	return len(data), nil
}

// engines don't always end their last line with \n
func (l *lineSplitter) Flush() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.buf) > 0 {
		l.lineCompleted(string(l.buf))
		l.buf = []byte{}
	}
}

// keeps only "capacity" last lines
type outputTail struct {
	lines *ring.Ring
	mu    sync.Mutex
}

func newOutputTail(capacity int) *outputTail {
	return &outputTail{
		lines: ring.New(capacity),
	}
}

func (t *outputTail) Write(line string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.lines.Value = line
	t.lines = t.lines.Next()
}

// oldest first
func (t *outputTail) Lines() []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	lines := []string{}
	t.lines.Do(func(val interface{}) {
		if line, ok := val.(string); ok { // nil = slot never written
			lines = append(lines, line)
		}
	})

	return lines
}
