package rpc

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
)

const (
	contentLengthHeader = "Content-Length:"
	contentTypeHeader   = "Content-Type: application/vscode-jsonrpc; charset=utf-8"
)

// Transport frames outbound payloads and deframes inbound bytes on a child
// process's stdin/stdout pipe pair. Writes are serialized so that a header
// and its body are never interleaved with a concurrent send; reads are only
// ever performed by the single goroutine that owns the Transport (the RPC
// Engine's read loop), so Receive needs no locking of its own.
type Transport struct {
	writeMu sync.Mutex
	w       io.Writer
	r       *bufio.Reader
}

// NewTransport wraps a child process's stdin (w) and stdout (r).
func NewTransport(w io.Writer, r io.Reader) *Transport {
	return &Transport{w: w, r: bufio.NewReader(r)}
}

// Send frames body as one Content-Length-prefixed message and writes the
// header and body in a single write sequence guarded by writeMu, so
// concurrent Send calls from different goroutines never interleave.
func (t *Transport) Send(body []byte) error {
	t.writeMu.Lock()
	defer t.writeMu.Unlock()

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Content-Length: %d\r\n", len(body))
	fmt.Fprintf(&buf, "%s\r\n\r\n", contentTypeHeader)
	buf.Write(body)

	if _, err := t.w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("rpc: write frame: %w", err)
	}
	return nil
}

// Receive reads one complete frame: a header block terminated by an empty
// line, followed by exactly Content-Length bytes of body. Lines before a
// parseable Content-Length are discarded silently. An unparseable
// Content-Length value is reported via malformedHeader so the caller can
// log it and keep scanning; Receive itself simply resumes the header scan.
func (t *Transport) Receive() (body []byte, malformedHeader string, err error) {
	contentLength := -1

	for {
		line, err := t.r.ReadString('\n')
		if err != nil {
			return nil, "", err
		}
		line = strings.TrimRight(line, "\r\n")

		if line == "" {
			break
		}

		if strings.HasPrefix(line, contentLengthHeader) {
			value := strings.TrimSpace(strings.TrimPrefix(line, contentLengthHeader))
			n, convErr := strconv.Atoi(value)
			if convErr != nil {
				malformedHeader = line
				continue
			}
			contentLength = n
		}
		// Any other header (e.g. Content-Type) is recognized but carries no
		// information this client needs, so it is discarded.
	}

	if contentLength < 0 {
		if malformedHeader != "" {
			return nil, malformedHeader, nil
		}
		return nil, "", fmt.Errorf("rpc: frame missing Content-Length header")
	}

	buf := make([]byte, contentLength)
	if contentLength > 0 {
		if _, err := io.ReadFull(t.r, buf); err != nil {
			return nil, "", fmt.Errorf("rpc: read frame body: %w", err)
		}
	}
	return buf, "", nil
}

// DrainStderr reads the child's stderr line by line and forwards each line
// to logf, never blocking the main read loop. It returns once r reaches EOF
// or errors.
func DrainStderr(r io.Reader, logf func(line string)) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		logf(scanner.Text())
	}
}
