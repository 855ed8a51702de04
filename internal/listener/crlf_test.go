package listener

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/pixil98/go-progression/internal"
	"github.com/pixil98/go-testutil"
)

func TestCRLFReadWriter(t *testing.T) {
	tests := map[string]struct {
		input    string
		write    string
		expRead  string
		expWrite string
	}{
		"telnet line endings": {
			input:    "give copper 5\r\n",
			write:    "Added 5 copper.\n",
			expRead:  "give copper 5\n",
			expWrite: "Added 5 copper.\r\n",
		},
		"ssh bare carriage return": {
			input:    "items\r",
			write:    "Inventory:\n  copper\n",
			expRead:  "items\n",
			expWrite: "Inventory:\r\n  copper\r\n",
		},
		"no line ending": {
			input:    "quit",
			write:    "> ",
			expRead:  "quit",
			expWrite: "> ",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var out bytes.Buffer
			rw := newCRLFReadWriter(struct {
				io.Reader
				io.Writer
			}{strings.NewReader(tt.input), &out})

			got, err := io.ReadAll(rw)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, "read", string(got), tt.expRead)

			n, err := rw.Write([]byte(tt.write))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, "written length", n, len(tt.write))
			testutil.AssertEqual(t, "written", out.String(), tt.expWrite)
		})
	}
}

// chunkReader returns one chunk per Read call.
type chunkReader struct {
	chunks []string
}

func (r *chunkReader) Read(p []byte) (int, error) {
	if len(r.chunks) == 0 {
		return 0, io.EOF
	}
	n := copy(p, r.chunks[0])
	r.chunks = r.chunks[1:]
	return n, nil
}

func TestCRLFReadWriter_SplitLineEnding(t *testing.T) {
	tests := map[string]struct {
		chunks   []string
		expLines []string
	}{
		"crlf split across reads": {
			chunks:   []string{"yes\r", "\nno\r\n"},
			expLines: []string{"yes", "no"},
		},
		"lone lf chunk after cr": {
			chunks:   []string{"reset\r", "\n", "y\r\n"},
			expLines: []string{"reset", "y"},
		},
		"bare cr then text": {
			chunks:   []string{"items\r", "quit\r"},
			expLines: []string{"items", "quit"},
		},
		"blank line is kept": {
			chunks:   []string{"\r\n", "\r\n", "save\r\n"},
			expLines: []string{"", "", "save"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			rw := newCRLFReadWriter(struct {
				io.Reader
				io.Writer
			}{&chunkReader{chunks: tt.chunks}, io.Discard})

			lr := internal.NewLineReader(rw)
			var lines []string
			for {
				line, err := lr.ReadLine()
				if err == io.EOF {
					break
				}
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				lines = append(lines, line)
			}

			testutil.AssertEqual(t, "lines", lines, tt.expLines)
		})
	}
}

func TestCRLFReadWriter_ConfirmationAfterSplitEnding(t *testing.T) {
	var out bytes.Buffer
	rw := newCRLFReadWriter(struct {
		io.Reader
		io.Writer
	}{&chunkReader{chunks: []string{"yes\r", "\n"}}, &out})

	ok, err := internal.PromptYN(internal.NewLineReader(rw), rw, "sure? ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "confirmed", ok, true)
	testutil.AssertEqual(t, "output", out.String(), "sure? ")
}
