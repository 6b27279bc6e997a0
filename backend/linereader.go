package backend

import (
	"bufio"
	"errors"
	"io"
)

// lineReader only yields complete newline-delimited lines. A series file
// that is still being written may end in a partial line; that line is held
// back until its newline arrives so the CSV decoder never sees half a record.
type lineReader struct {
	r *bufio.Reader
	// partial is an unterminated line waiting for its newline.
	partial []byte
	// pending is the rest of a complete line that did not fit into the
	// caller's buffer.
	pending []byte
}

var _ io.Reader = (*lineReader)(nil)

func newLineReader(r io.Reader) *lineReader {
	return &lineReader{
		r: bufio.NewReader(r),
	}
}

// Read returns bytes of at most one line. A line longer than b is returned
// across several calls. Read reports io.EOF while no complete line is
// available; later calls pick up data written after that.
func (l *lineReader) Read(b []byte) (int, error) {
	if len(l.pending) == 0 {
		data, err := l.r.ReadBytes('\n')
		l.partial = append(l.partial, data...)
		if errors.Is(err, io.EOF) {
			return 0, io.EOF
		} else if err != nil {
			return 0, err
		}
		l.pending, l.partial = l.partial, nil
	}
	n := copy(b, l.pending)
	l.pending = l.pending[n:]
	return n, nil
}
