package rpc

import (
	"bytes"
	"strings"
	"testing"
)

func TestTransportSendReceiveRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	tr := NewTransport(&buf, &buf)

	payload := []byte(`{"jsonrpc":"2.0","id":1,"method":"foo"}`)
	if err := tr.Send(payload); err != nil {
		t.Fatalf("Send: %v", err)
	}

	body, malformed, err := tr.Receive()
	if err != nil {
		t.Fatalf("Receive: %v", err)
	}
	if malformed != "" {
		t.Fatalf("unexpected malformed header: %q", malformed)
	}
	if !bytes.Equal(body, payload) {
		t.Fatalf("body mismatch: got %q want %q", body, payload)
	}
}

func TestTransportReceiveMalformedContentLength(t *testing.T) {
	raw := "Content-Length: not-a-number\r\n\r\n"
	tr := NewTransport(nil, strings.NewReader(raw))

	_, malformed, err := tr.Receive()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if malformed == "" {
		t.Fatal("expected malformed header to be reported")
	}
}

func TestTransportReceiveMissingContentLength(t *testing.T) {
	raw := "Content-Type: application/vscode-jsonrpc\r\n\r\n"
	tr := NewTransport(nil, strings.NewReader(raw))

	_, _, err := tr.Receive()
	if err == nil {
		t.Fatal("expected error for missing Content-Length")
	}
}

func TestDrainStderrForwardsLines(t *testing.T) {
	r := strings.NewReader("line one\nline two\n")
	var lines []string
	DrainStderr(r, func(line string) { lines = append(lines, line) })
	if len(lines) != 2 || lines[0] != "line one" || lines[1] != "line two" {
		t.Fatalf("unexpected lines: %v", lines)
	}
}
