// Package rpc implements the framed JSON-RPC 2.0 transport and message
// dispatch used to talk to a language server over its stdio pipes.
package rpc

import (
	"encoding/json"
	"fmt"

	"multilsp/internal/lsp/protocol"
)

const jsonrpcVersion = "2.0"

// RequestMessage is an outbound or inbound JSON-RPC request.
type RequestMessage struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      int64           `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// ResponseMessage is an inbound or outbound JSON-RPC response.
type ResponseMessage struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      int64           `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *RPCError       `json:"error,omitempty"`
}

// NotificationMessage is a fire-and-forget JSON-RPC message.
type NotificationMessage struct {
	JSONRPC string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// RPCError is the LSP error-object shape.
type RPCError struct {
	Code    protocol.ErrorCode `json:"code"`
	Message string             `json:"message"`
	Data    json.RawMessage    `json:"data,omitempty"`
}

// Error implements the error interface so an RPCError can be returned and
// inspected with errors.As by callers that need the original LSP code.
func (e *RPCError) Error() string {
	return fmt.Sprintf("%s (%d)", e.Message, e.Code)
}

// envelope is used only to sniff an inbound payload's shape before decoding
// it into one of the three concrete message types.
type envelope struct {
	ID     *int64          `json:"id,omitempty"`
	Method string          `json:"method,omitempty"`
	Result json.RawMessage `json:"result,omitempty"`
	Error  *RPCError       `json:"error,omitempty"`
}

func marshalParams(params interface{}) (json.RawMessage, error) {
	if params == nil {
		return nil, nil
	}
	if raw, ok := params.(json.RawMessage); ok {
		return raw, nil
	}
	b, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("rpc: marshal params: %w", err)
	}
	return b, nil
}

func encodeRequest(id int64, method string, params interface{}) ([]byte, error) {
	p, err := marshalParams(params)
	if err != nil {
		return nil, err
	}
	return json.Marshal(RequestMessage{JSONRPC: jsonrpcVersion, ID: id, Method: method, Params: p})
}

func encodeNotification(method string, params interface{}) ([]byte, error) {
	p, err := marshalParams(params)
	if err != nil {
		return nil, err
	}
	return json.Marshal(NotificationMessage{JSONRPC: jsonrpcVersion, Method: method, Params: p})
}

func encodeResponse(id int64, result interface{}) ([]byte, error) {
	r, err := marshalParams(result)
	if err != nil {
		return nil, err
	}
	if r == nil {
		r = json.RawMessage("null")
	}
	return json.Marshal(ResponseMessage{JSONRPC: jsonrpcVersion, ID: id, Result: r})
}

func encodeErrorResponse(id int64, rpcErr *RPCError) ([]byte, error) {
	return json.Marshal(ResponseMessage{JSONRPC: jsonrpcVersion, ID: id, Error: rpcErr})
}
