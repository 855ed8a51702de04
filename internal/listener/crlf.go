package listener

import (
	"bytes"
	"io"
)

// crlfWriter wraps an io.ReadWriter and converts \n to \r\n on writes.
// Reads normalise \r\n and bare \r to \n, including a \r\n split across
// two reads.
type crlfWriter struct {
	rw io.ReadWriter
	// pendingCR is set when the last chunk read ended in \r.
	pendingCR bool
}

func newCRLFReadWriter(rw io.ReadWriter) io.ReadWriter {
	return &crlfWriter{rw: rw}
}

func (c *crlfWriter) Read(p []byte) (int, error) {
	for {
		n, err := c.rw.Read(p)
		if n == 0 {
			return 0, err
		}

		data := p[:n]
		if c.pendingCR && data[0] == '\n' {
			data = data[1:]
		}
		c.pendingCR = len(data) > 0 && data[len(data)-1] == '\r'

		// Telnet sends \r\n, SSH with a PTY sends just \r.
		data = bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n"))
		data = bytes.ReplaceAll(data, []byte("\r"), []byte("\n"))
		n = copy(p, data)

		// A chunk holding only the tail of a split \r\n yields nothing.
		if n > 0 || err != nil {
			return n, err
		}
	}
}

func (c *crlfWriter) Write(p []byte) (int, error) {
	converted := bytes.ReplaceAll(p, []byte("\n"), []byte("\r\n"))
	_, err := c.rw.Write(converted)
	// Return the original length so callers aren't confused by the size change
	return len(p), err
}
