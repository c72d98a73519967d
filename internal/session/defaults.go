package session

import (
	"context"
	"encoding/json"

	"multilsp/internal/lsp/protocol"
)

// registerDefaultHandlers installs the server->client handlers every
// session needs regardless of language: diagnostics buffering,
// registerCapability/unregisterCapability acknowledgement,
// workspace/configuration and workspace/workspaceFolders answers, log
// forwarding, and progress/telemetry no-ops. Language profiles layer their
// own readiness handlers on top via Profile.Readiness.
func (s *Session) registerDefaultHandlers() {
	s.engine.RegisterNotificationHandler("textDocument/publishDiagnostics", s.handlePublishDiagnostics)
	s.engine.RegisterNotificationHandler("window/logMessage", s.handleLogMessage)
	s.engine.RegisterNotificationHandler("$/progress", func(json.RawMessage) {})
	s.engine.RegisterNotificationHandler("telemetry/event", func(json.RawMessage) {})

	s.engine.RegisterRequestHandler("client/registerCapability", ackEmpty)
	s.engine.RegisterRequestHandler("client/unregisterCapability", ackEmpty)
	s.engine.RegisterRequestHandler("workspace/executeClientCommand", func(context.Context, json.RawMessage) (interface{}, error) {
		return []interface{}{}, nil
	})
	s.engine.RegisterRequestHandler("workspace/configuration", func(context.Context, json.RawMessage) (interface{}, error) {
		return []interface{}{nil}, nil
	})
	s.engine.RegisterRequestHandler("workspace/workspaceFolders", func(context.Context, json.RawMessage) (interface{}, error) {
		return []protocol.WorkspaceFolder{
			{URI: pathToURI(s.workspaceRoot), Name: s.workspaceRoot},
		}, nil
	})
	s.engine.RegisterRequestHandler("window/workDoneProgress/create", ackEmpty)
}

func ackEmpty(context.Context, json.RawMessage) (interface{}, error) {
	return nil, nil
}

func (s *Session) handleLogMessage(params json.RawMessage) {
	var msg struct {
		Type    int    `json:"type"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(params, &msg); err != nil {
		return
	}
	s.logger.Infof("[%s] server: %s", s.language, msg.Message)
}

// handlePublishDiagnostics buffers the latest diagnostics for a URI; query
// callers read them back via Diagnostics rather than subscribing directly,
// matching spec §9's resolution that diagnostics are a pull surface by
// default.
func (s *Session) handlePublishDiagnostics(params json.RawMessage) {
	var p protocol.PublishDiagnosticsParams
	if err := json.Unmarshal(params, &p); err != nil {
		return
	}
	s.diagMu.Lock()
	s.diags[p.URI] = p.Diagnostics
	s.diagMu.Unlock()
}

// Diagnostics returns the most recently published diagnostics for uri, or
// nil if none have arrived yet.
func (s *Session) Diagnostics(uri string) []protocol.Diagnostic {
	s.diagMu.Lock()
	defer s.diagMu.Unlock()
	return s.diags[uri]
}
