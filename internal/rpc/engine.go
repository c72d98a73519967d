package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"multilsp/internal/lsp/protocol"
)

// RequestHandler answers a server-initiated request. An error that is
// already an *RPCError is returned to the server with its own code; any
// other error is reported as InternalError.
type RequestHandler func(ctx context.Context, params json.RawMessage) (interface{}, error)

// NotificationHandler reacts to a server-initiated notification. It cannot
// fail the connection: any error is logged and dropped.
type NotificationHandler func(params json.RawMessage)

// LogFunc receives a direction tag ("client->server", "server->client",
// "protocol-error", "client-error"), the method if known, and the raw
// payload, for trace_lsp_communication.
type LogFunc func(direction, method string, payload json.RawMessage)

var (
	// ErrShutdown is returned to every pending and future request once the
	// engine has been (or is being) shut down.
	ErrShutdown = errors.New("rpc: engine shut down")
)

type pendingCall struct {
	resultCh chan pendingResult
}

type pendingResult struct {
	result json.RawMessage
	err    error
}

// Engine owns JSON-RPC message semantics above a Transport: request ids,
// the pending-response table, notification dispatch, and server-initiated
// request handling. All mutable state (the pending table and the handler
// maps) is confined to a single goroutine reached only through the ops
// channel, so no part of Engine needs a mutex — the Go analogue of
// confining the pending map to a single event-loop thread.
type Engine struct {
	transport *Transport
	log       LogFunc

	ops chan func()

	nextID  int64
	pending map[int64]*pendingCall

	reqHandlers   map[string]RequestHandler
	notifHandlers map[string]NotificationHandler

	readDone chan struct{}
	closed   chan struct{}
}

// NewEngine constructs an Engine over transport. log may be nil.
func NewEngine(transport *Transport, log LogFunc) *Engine {
	if log == nil {
		log = func(string, string, json.RawMessage) {}
	}
	e := &Engine{
		transport:     transport,
		log:           log,
		ops:           make(chan func()),
		nextID:        1,
		pending:       make(map[int64]*pendingCall),
		reqHandlers:   make(map[string]RequestHandler),
		notifHandlers: make(map[string]NotificationHandler),
		readDone:      make(chan struct{}),
		closed:        make(chan struct{}),
	}
	go e.loop()
	go e.readLoop()
	return e
}

// loop is the sole mutator of pending/reqHandlers/notifHandlers. It never
// closes e.ops (that would race with in-flight submit calls); it simply
// stops selecting on it once e.closed fires.
func (e *Engine) loop() {
	for {
		select {
		case op := <-e.ops:
			op()
		case <-e.closed:
			return
		}
	}
}

// submit runs fn on the loop goroutine and waits for it to finish. It is
// safe to call from any goroutine, including the read loop itself.
func (e *Engine) submit(fn func()) {
	done := make(chan struct{})
	select {
	case e.ops <- func() { fn(); close(done) }:
		select {
		case <-done:
		case <-e.closed:
		}
	case <-e.closed:
	}
}

// readLoop continuously reads frames from the transport and dispatches
// them onto the loop goroutine. It ends cleanly on EOF/broken-pipe/reset,
// mirroring the Python implementation's run_forever.
func (e *Engine) readLoop() {
	defer close(e.readDone)
	for {
		body, malformed, err := e.transport.Receive()
		if err != nil {
			return
		}
		if malformed != "" {
			e.log("protocol-error", "", json.RawMessage(fmt.Sprintf("%q", malformed)))
			continue
		}
		if body == nil {
			continue
		}
		var env envelope
		if err := json.Unmarshal(body, &env); err != nil {
			e.log("protocol-error", "", body)
			continue
		}
		e.log("server->client", env.Method, body)
		e.dispatch(env, body)
	}
}

func (e *Engine) dispatch(env envelope, body []byte) {
	switch {
	case env.Method != "" && env.ID != nil:
		e.handleServerRequest(*env.ID, env.Method, body)
	case env.Method != "":
		e.handleNotification(env.Method, body)
	case env.ID != nil:
		e.handleResponse(*env.ID, env)
	default:
		e.log("protocol-error", "", body)
	}
}

func (e *Engine) handleResponse(id int64, env envelope) {
	e.submit(func() {
		call, ok := e.pending[id]
		if !ok {
			return
		}
		delete(e.pending, id)
		switch {
		case env.Result != nil && env.Error == nil:
			call.resultCh <- pendingResult{result: env.Result}
		case env.Result == nil && env.Error != nil:
			call.resultCh <- pendingResult{err: env.Error}
		default:
			call.resultCh <- pendingResult{err: &RPCError{Code: protocol.InvalidRequest, Message: "malformed response"}}
		}
	})
}

func (e *Engine) handleNotification(method string, body []byte) {
	var full struct {
		Params json.RawMessage `json:"params"`
	}
	_ = json.Unmarshal(body, &full)

	var handler NotificationHandler
	e.submit(func() { handler = e.notifHandlers[method] })
	if handler == nil {
		return
	}
	func() {
		defer func() {
			if r := recover(); r != nil {
				e.log("client-error", method, json.RawMessage(fmt.Sprintf("%q", fmt.Sprint(r))))
			}
		}()
		handler(full.Params)
	}()
}

func (e *Engine) handleServerRequest(id int64, method string, body []byte) {
	var full struct {
		Params json.RawMessage `json:"params"`
	}
	_ = json.Unmarshal(body, &full)

	var handler RequestHandler
	e.submit(func() { handler = e.reqHandlers[method] })
	if handler == nil {
		e.replyError(id, &RPCError{Code: protocol.MethodNotFound, Message: fmt.Sprintf("method %q not handled on client", method)})
		return
	}

	result, err := handler(context.Background(), full.Params)
	if err != nil {
		var rpcErr *RPCError
		if errors.As(err, &rpcErr) {
			e.replyError(id, rpcErr)
			return
		}
		e.replyError(id, &RPCError{Code: protocol.InternalError, Message: err.Error()})
		return
	}
	e.replyResult(id, result)
}

func (e *Engine) replyResult(id int64, result interface{}) {
	payload, err := encodeResponse(id, result)
	if err != nil {
		return
	}
	e.log("client->server", "", payload)
	_ = e.transport.Send(payload)
}

func (e *Engine) replyError(id int64, rpcErr *RPCError) {
	payload, err := encodeErrorResponse(id, rpcErr)
	if err != nil {
		return
	}
	e.log("client->server", "", payload)
	_ = e.transport.Send(payload)
}

// SendRequest allocates the next request id, sends method/params, and
// blocks until the response arrives, ctx is cancelled, or the engine is
// shut down. On ctx cancellation the pending entry is discarded and a
// best-effort $/cancelRequest notification is sent from a separate
// goroutine, so the call returns without waiting on that write.
func (e *Engine) SendRequest(ctx context.Context, method string, params interface{}) (json.RawMessage, error) {
	resultCh := make(chan pendingResult, 1)
	var id int64
	var sendErr error

	e.submit(func() {
		id = e.nextID
		e.nextID++
		e.pending[id] = &pendingCall{resultCh: resultCh}

		payload, err := encodeRequest(id, method, params)
		if err != nil {
			delete(e.pending, id)
			sendErr = err
			return
		}
		e.log("client->server", method, payload)
		if err := e.transport.Send(payload); err != nil {
			delete(e.pending, id)
			sendErr = err
		}
	})
	if sendErr != nil {
		return nil, fmt.Errorf("rpc: send request %s: %w", method, sendErr)
	}

	select {
	case res := <-resultCh:
		if res.err != nil {
			return nil, res.err
		}
		return res.result, nil
	case <-ctx.Done():
		e.submit(func() { delete(e.pending, id) })
		go func() { _ = e.SendNotification("$/cancelRequest", map[string]interface{}{"id": id}) }()
		return nil, fmt.Errorf("rpc: request %s: %w", method, ctx.Err())
	case <-e.closed:
		return nil, ErrShutdown
	}
}

// SendNotification sends a fire-and-forget message; no id is allocated.
func (e *Engine) SendNotification(method string, params interface{}) error {
	payload, err := encodeNotification(method, params)
	if err != nil {
		return err
	}
	e.log("client->server", method, payload)
	return e.transport.Send(payload)
}

// RegisterRequestHandler installs (or replaces) the handler for a
// server-initiated request method.
func (e *Engine) RegisterRequestHandler(method string, h RequestHandler) {
	e.submit(func() { e.reqHandlers[method] = h })
}

// RegisterNotificationHandler installs (or replaces) the handler for a
// server-initiated notification method.
func (e *Engine) RegisterNotificationHandler(method string, h NotificationHandler) {
	e.submit(func() { e.notifHandlers[method] = h })
}

// Shutdown sends the LSP shutdown request, awaits its reply, sends exit as
// a notification, then stops accepting new work. Every request still
// pending is failed with ErrShutdown. It does not close the transport;
// that is the process supervisor's job. Once Shutdown has run, a further
// call returns nil without sending anything.
func (e *Engine) Shutdown(ctx context.Context) error {
	select {
	case <-e.closed:
		return nil
	default:
	}

	_, shutdownErr := e.SendRequest(ctx, "shutdown", nil)

	e.submit(func() {
		for id, call := range e.pending {
			call.resultCh <- pendingResult{err: ErrShutdown}
			delete(e.pending, id)
		}
	})

	_ = e.SendNotification("exit", nil)

	close(e.closed)

	select {
	case <-e.readDone:
	case <-time.After(5 * time.Second):
	}

	if shutdownErr != nil {
		return fmt.Errorf("rpc: shutdown: %w", shutdownErr)
	}
	return nil
}

// WaitReadLoop blocks until the read loop has exited (EOF, broken pipe, or
// any other read error, e.g. once the server exits after Shutdown's exit
// notification), or until timeout passes. Used by the session before the
// process supervisor closes the remaining pipes.
func (e *Engine) WaitReadLoop(timeout time.Duration) {
	select {
	case <-e.readDone:
	case <-time.After(timeout):
	}
}
