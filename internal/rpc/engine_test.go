package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"multilsp/internal/lsp/protocol"
)

// fakePeer wires two in-process pipes so an Engine can talk to a
// hand-scripted "server" goroutine without spawning a real process.
type fakePeer struct {
	toServer   *io.PipeWriter
	fromServer *io.PipeReader

	serverIn  *io.PipeReader
	serverOut *io.PipeWriter
}

func newFakePeer() *fakePeer {
	toServerR, toServerW := io.Pipe()
	fromServerR, fromServerW := io.Pipe()
	return &fakePeer{
		toServer:   toServerW,
		fromServer: fromServerR,
		serverIn:   toServerR,
		serverOut:  fromServerW,
	}
}

func (p *fakePeer) clientTransport() *Transport {
	return NewTransport(p.toServer, p.fromServer)
}

func (p *fakePeer) serverTransport() *Transport {
	return NewTransport(p.serverOut, p.serverIn)
}

func TestSendRequestRoundTrip(t *testing.T) {
	peer := newFakePeer()
	engine := NewEngine(peer.clientTransport(), nil)
	serverT := peer.serverTransport()

	go func() {
		body, _, err := serverT.Receive()
		if err != nil {
			return
		}
		var req RequestMessage
		if err := json.Unmarshal(body, &req); err != nil {
			return
		}
		if req.Method != "initialize" {
			t.Errorf("unexpected method %q", req.Method)
		}
		resp, _ := encodeResponse(req.ID, map[string]string{"ok": "yes"})
		_ = serverT.Send(resp)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	raw, err := engine.SendRequest(ctx, "initialize", map[string]string{"foo": "bar"})
	if err != nil {
		t.Fatalf("SendRequest: %v", err)
	}
	var result map[string]string
	if err := json.Unmarshal(raw, &result); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if result["ok"] != "yes" {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestSendRequestErrorResponse(t *testing.T) {
	peer := newFakePeer()
	engine := NewEngine(peer.clientTransport(), nil)
	serverT := peer.serverTransport()

	go func() {
		body, _, err := serverT.Receive()
		if err != nil {
			return
		}
		var req RequestMessage
		_ = json.Unmarshal(body, &req)
		resp, _ := encodeErrorResponse(req.ID, &RPCError{Code: protocol.InvalidParams, Message: "bad params"})
		_ = serverT.Send(resp)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := engine.SendRequest(ctx, "textDocument/hover", nil)
	if err == nil {
		t.Fatal("expected error")
	}
	var rpcErr *RPCError
	if !errors.As(err, &rpcErr) {
		t.Fatalf("expected *RPCError, got %T: %v", err, err)
	}
	if rpcErr.Code != protocol.InvalidParams {
		t.Fatalf("unexpected code: %d", rpcErr.Code)
	}
}

func TestSendRequestContextCancellation(t *testing.T) {
	peer := newFakePeer()
	engine := NewEngine(peer.clientTransport(), nil)
	serverT := peer.serverTransport()

	// Server reads the request but never answers.
	go func() {
		_, _, _ = serverT.Receive()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := engine.SendRequest(ctx, "textDocument/definition", nil)
	if err == nil {
		t.Fatal("expected timeout error")
	}
}

func TestNotificationHandlerDispatch(t *testing.T) {
	peer := newFakePeer()
	engine := NewEngine(peer.clientTransport(), nil)
	clientT := peer.clientTransport()
	_ = clientT

	received := make(chan string, 1)
	engine.RegisterNotificationHandler("window/logMessage", func(params json.RawMessage) {
		var msg struct {
			Message string `json:"message"`
		}
		_ = json.Unmarshal(params, &msg)
		received <- msg.Message
	})

	serverT := peer.serverTransport()
	notif, _ := encodeNotification("window/logMessage", map[string]string{"message": "hello"})
	if err := serverT.Send(notif); err != nil {
		t.Fatalf("send notification: %v", err)
	}

	select {
	case msg := <-received:
		if msg != "hello" {
			t.Fatalf("unexpected message: %q", msg)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for notification handler")
	}
}

func TestRequestHandlerDispatch(t *testing.T) {
	peer := newFakePeer()
	engine := NewEngine(peer.clientTransport(), nil)

	engine.RegisterRequestHandler("workspace/configuration", func(ctx context.Context, params json.RawMessage) (interface{}, error) {
		return []interface{}{nil}, nil
	})

	serverT := peer.serverTransport()
	req, _ := encodeRequest(99, "workspace/configuration", nil)
	if err := serverT.Send(req); err != nil {
		t.Fatalf("send request: %v", err)
	}

	body, _, err := serverT.Receive()
	if err != nil {
		t.Fatalf("receive response: %v", err)
	}
	var resp ResponseMessage
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ID != 99 {
		t.Fatalf("unexpected response id: %d", resp.ID)
	}
}
