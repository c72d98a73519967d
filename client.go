// Package multilsp is a process-managed, multi-language Language Server
// Protocol client: given a language tag and a workspace root, it spawns
// the matching language server, drives the initialize handshake, and
// exposes a read-mostly code-intelligence surface (definitions,
// references, hover, symbols, completions) plus an in-memory document
// overlay for speculative edits that never touch disk.
//
// A Session owns exactly one language server process for exactly one
// workspace root; create one per (language, root) pair you need queried
// concurrently.
package multilsp

import (
	"context"
	"fmt"

	"multilsp/internal/langserver"
	_ "multilsp/internal/langserver/all"
	"multilsp/internal/logging"
	"multilsp/internal/lsp/protocol"
	"multilsp/internal/lspfault"
	"multilsp/internal/session"
	"multilsp/query"
)

// Session is the public handle on a running language server: Start it,
// run queries against it via Surface, and Stop it when done. The
// zero-value Session is not usable; construct one with NewSession.
type Session struct {
	inner *session.Session
	*query.Surface
}

// NewSession validates cfg, resolves the compiled-in profile for
// cfg.CodeLanguage, and constructs a Session. The language server is not
// spawned until Start is called.
func NewSession(cfg Config, logger *logging.Logger) (*Session, error) {
	if cfg.WorkspaceRoot == "" {
		return nil, fmt.Errorf("%w: workspace_root is required", lspfault.ErrConfiguration)
	}
	if _, ok := langserver.Lookup(cfg.CodeLanguage); !ok {
		return nil, fmt.Errorf("%w: unknown code_language %q (registered: %v)",
			lspfault.ErrConfiguration, cfg.CodeLanguage, langserver.Registered())
	}

	opts := session.DefaultOptions()
	opts.TraceLSPCommunication = cfg.TraceLSPCommunication
	opts.StartIndependentLSPProcess = cfg.startIndependentProcess()
	if cfg.RequestTimeout > 0 {
		opts.RequestTimeout = cfg.RequestTimeout
	}
	if cfg.InitializeTimeout > 0 {
		opts.InitializeTimeout = cfg.InitializeTimeout
	}
	if cfg.ReadinessTimeout > 0 {
		opts.ReadinessTimeout = cfg.ReadinessTimeout
	}
	opts.BinaryCacheDir = cfg.BinaryCacheDir
	opts.BinaryWaitTimeout = cfg.BinaryWaitTimeout
	if logger != nil {
		opts.Logger = logger
	}

	inner, err := session.New(cfg.CodeLanguage, cfg.WorkspaceRoot, opts)
	if err != nil {
		return nil, err
	}
	return &Session{inner: inner, Surface: query.New(inner)}, nil
}

// Start spawns the language server and blocks until it is ready to serve
// queries, or ctx is cancelled, or the handshake/readiness wait times out.
func (s *Session) Start(ctx context.Context) error {
	return s.inner.Start(ctx)
}

// Stop tears down the language server process. Safe to call multiple
// times and safe to call even if Start failed partway through.
func (s *Session) Stop(ctx context.Context) error {
	return s.inner.Stop(ctx)
}

// State reports the session's current lifecycle state.
func (s *Session) State() session.State { return s.inner.State() }

// WorkspaceRoot returns the absolute workspace root this session serves.
func (s *Session) WorkspaceRoot() string { return s.inner.WorkspaceRoot() }

// Language returns the language tag this session was created for.
func (s *Session) Language() langserver.Language { return s.inner.Language() }

// ID returns the session's correlation id, useful for disambiguating
// trace-log lines across concurrently running sessions.
func (s *Session) ID() string { return s.inner.ID() }

// Capabilities returns the server's advertised capabilities from the
// initialize response. Only meaningful once State() is at least
// Initialized.
func (s *Session) Capabilities() protocol.ServerCapabilities { return s.inner.Capabilities() }
