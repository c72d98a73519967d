// Package session orchestrates one language server instance for one
// workspace root: the initialize/initialized handshake, the readiness
// state machine, the open-document overlay, and routing of
// server-originated notifications (spec §4.4).
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"multilsp/internal/langserver"
	"multilsp/internal/langserver/binarycache"
	"multilsp/internal/logging"
	"multilsp/internal/lsp/protocol"
	"multilsp/internal/lspfault"
	"multilsp/internal/procsup"
	"multilsp/internal/rpc"
)

// Options configures a Session beyond what the language Profile fixes.
type Options struct {
	// TraceLSPCommunication, when true, logs every client<->server
	// payload (spec §6).
	TraceLSPCommunication bool
	// StartIndependentLSPProcess, when true (the default), starts the
	// child in its own process group/session.
	StartIndependentLSPProcess bool
	// RequestTimeout is the default per-query timeout; individual query
	// calls may override it.
	RequestTimeout time.Duration
	// InitializeTimeout bounds the initialize round trip.
	InitializeTimeout time.Duration
	// ReadinessTimeout overrides the Profile's default readiness wait, if
	// non-zero.
	ReadinessTimeout time.Duration
	Logger           *logging.Logger

	// BinaryCacheDir, if set, is consulted when the profile's Command is
	// not found on PATH: Start watches this directory for the binary to
	// appear (e.g. a download already in flight) instead of failing
	// immediately.
	BinaryCacheDir string
	// BinaryWaitTimeout bounds how long Start waits on BinaryCacheDir
	// before giving up. Defaults to 2 minutes.
	BinaryWaitTimeout time.Duration
}

// DefaultOptions returns the Options a caller gets if they don't supply
// their own.
func DefaultOptions() Options {
	return Options{
		StartIndependentLSPProcess: true,
		RequestTimeout:             10 * time.Second,
		InitializeTimeout:          30 * time.Second,
	}
}

// Session is the per-workspace LSP session (spec §3/§4.4).
type Session struct {
	id            string
	workspaceRoot string
	language      langserver.Language
	profile       langserver.Profile
	opts          Options
	logger        *logging.Logger

	supervisor *procsup.Supervisor
	engine     *rpc.Engine

	state   stateBox
	ready   *ReadinessSignal
	servCap protocol.ServerCapabilities

	docsMu sync.Mutex
	docs   map[string]*OpenDocument

	diagMu sync.Mutex
	diags  map[string][]protocol.Diagnostic
}

// New constructs a Session for lang rooted at workspaceRoot. It does not
// spawn the server; call Start for that.
func New(lang langserver.Language, workspaceRoot string, opts Options) (*Session, error) {
	profile, ok := langserver.Lookup(lang)
	if !ok {
		return nil, fmt.Errorf("%w: no compiled-in language server for %q", lspfault.ErrConfiguration, lang)
	}
	abs, err := filepath.Abs(workspaceRoot)
	if err != nil {
		return nil, fmt.Errorf("%w: resolve workspace root: %v", lspfault.ErrConfiguration, err)
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	if opts.RequestTimeout == 0 {
		opts.RequestTimeout = 10 * time.Second
	}
	if opts.InitializeTimeout == 0 {
		opts.InitializeTimeout = 30 * time.Second
	}

	return &Session{
		id:            uuid.NewString(),
		workspaceRoot: abs,
		language:      lang,
		profile:       profile,
		opts:          opts,
		logger:        opts.Logger,
		ready:         NewReadinessSignal(),
		docs:          make(map[string]*OpenDocument),
		diags:         make(map[string][]protocol.Diagnostic),
	}, nil
}

// ID returns the session's correlation id, stamped into trace-log lines so
// concurrent sessions in one process are distinguishable.
func (s *Session) ID() string { return s.id }

// WorkspaceRoot returns the absolute workspace root this session serves.
func (s *Session) WorkspaceRoot() string { return s.workspaceRoot }

// Language returns the language tag this session was created for.
func (s *Session) Language() langserver.Language { return s.language }

// State returns the current point in the readiness state machine.
func (s *Session) State() State { return s.state.get() }

// Capabilities returns the server's advertised capabilities from the
// initialize response. Only meaningful once State() >= Initialized.
func (s *Session) Capabilities() protocol.ServerCapabilities { return s.servCap }

// Start spawns the language server, performs the initialize/initialized
// handshake, registers the default and language-specific handlers, and
// waits for readiness before returning.
func (s *Session) Start(ctx context.Context) error {
	command, err := s.resolveCommand(ctx)
	if err != nil {
		return err
	}

	s.supervisor = procsup.New(s.logger)
	launch := procsup.LaunchInfo{
		Command:              command,
		Args:                 s.profile.Args,
		Dir:                  s.workspaceRoot,
		StartNewProcessGroup: s.opts.StartIndependentLSPProcess,
	}
	if err := s.supervisor.Spawn(launch); err != nil {
		return fmt.Errorf("%w: %v", lspfault.ErrSpawn, err)
	}

	transport := rpc.NewTransport(s.supervisor.Stdin, s.supervisor.Stdout)
	s.engine = rpc.NewEngine(transport, s.traceLog)
	go rpc.DrainStderr(s.supervisor.Stderr, func(line string) {
		s.logger.Infof("[%s] lsp stderr: %s", s.language, line)
	})

	s.registerDefaultHandlers()
	if s.profile.Readiness != nil {
		s.profile.Readiness(s.engine, s.ready.Set)
	}

	initCtx, cancel := context.WithTimeout(ctx, s.opts.InitializeTimeout)
	defer cancel()

	pid := os.Getpid()
	rootURI := pathToURI(s.workspaceRoot)
	rootPath := s.workspaceRoot
	params := s.profile.BuildInitializeParams(pid, rootPath, rootURI, filepath.Base(s.workspaceRoot))

	raw, err := s.engine.SendRequest(initCtx, "initialize", params)
	if err != nil {
		s.teardown(ctx)
		return fmt.Errorf("%w: initialize: %v", lspfault.ErrSpawn, err)
	}

	var result protocol.InitializeResult
	if err := json.Unmarshal(raw, &result); err != nil {
		s.teardown(ctx)
		return fmt.Errorf("%w: decode initialize result: %v", lspfault.ErrSpawn, err)
	}
	s.servCap = result.Capabilities
	s.warnMissingCapabilities()

	s.state.set(Initialized)

	if err := s.engine.SendNotification("initialized", map[string]interface{}{}); err != nil {
		s.teardown(ctx)
		return fmt.Errorf("%w: initialized: %v", lspfault.ErrSpawn, err)
	}

	if s.profile.Readiness == nil {
		s.ready.Set()
	}

	readyTimeout := s.profile.ReadinessTimeout
	if s.opts.ReadinessTimeout > 0 {
		readyTimeout = s.opts.ReadinessTimeout
	}
	if readyTimeout <= 0 {
		readyTimeout = 30 * time.Second
	}
	readyCtx, readyCancel := context.WithTimeout(ctx, readyTimeout)
	defer readyCancel()
	if err := s.ready.Wait(readyCtx); err != nil {
		s.teardown(ctx)
		return fmt.Errorf("%w: waiting for %s readiness: %v", lspfault.ErrTimeout, s.language, err)
	}

	s.state.set(Ready)
	return nil
}

// warnMissingCapabilities logs (but does not fail) when the server's
// capabilities look thinner than expected; spec §4.4 treats a capability
// mismatch as a warning unless a specific query later needs it.
func (s *Session) warnMissingCapabilities() {
	if !protocol.Supports(s.servCap.TextDocumentSync) {
		s.logger.Warnf("%s: server did not advertise textDocumentSync", s.language)
	}
}

func (s *Session) traceLog(direction, method string, payload json.RawMessage) {
	if !s.opts.TraceLSPCommunication {
		return
	}
	s.logger.Debugf("[%s %s] %s %s", s.id, direction, method, string(payload))
}

// Stop runs the session's teardown: it cancels outstanding requests with a
// shutdown error, performs the LSP shutdown/exit exchange, and tears down
// the process tree. Safe to call more than once.
func (s *Session) Stop(ctx context.Context) error {
	s.state.set(ShuttingDown)
	s.teardown(ctx)
	s.state.set(Stopped)
	return nil
}

func (s *Session) teardown(ctx context.Context) {
	if s.engine != nil {
		shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		_ = s.engine.Shutdown(shutdownCtx)
		cancel()
		s.engine.WaitReadLoop(5 * time.Second)
	}
	if s.supervisor != nil {
		s.supervisor.Stop(ctx)
	}
}

// Request sends method/params through the RPC engine, rejecting the call
// outright if the session is not in the Ready state. A request whose ctx
// deadline passes fails with an error matching lspfault.ErrTimeout.
func (s *Session) Request(ctx context.Context, method string, params interface{}) (json.RawMessage, error) {
	if s.State() != Ready {
		return nil, fmt.Errorf("%w: session is %s", lspfault.ErrSessionStopped, s.State())
	}
	raw, err := s.engine.SendRequest(ctx, method, params)
	if err != nil && errors.Is(err, context.DeadlineExceeded) {
		return nil, fmt.Errorf("%w: %w", lspfault.ErrTimeout, err)
	}
	return raw, err
}

// Notify sends a fire-and-forget notification through the RPC engine.
func (s *Session) Notify(method string, params interface{}) error {
	return s.engine.SendNotification(method, params)
}

// DefaultTimeout returns the session-wide default per-query timeout.
func (s *Session) DefaultTimeout() time.Duration { return s.opts.RequestTimeout }

// ToURI converts a workspace-relative or absolute path to a file:// URI.
func (s *Session) ToURI(path string) string {
	abs := path
	if !filepath.IsAbs(path) {
		abs = filepath.Join(s.workspaceRoot, path)
	}
	return pathToURI(abs)
}

// FromURI converts a server-returned URI back into (relativePath,
// absolutePath, withinWorkspace). Per spec §3, a URI outside the workspace
// root is preserved in absolute form with withinWorkspace=false and an
// empty relativePath.
func (s *Session) FromURI(uri string) (relPath, absPath string, withinWorkspace bool) {
	abs, ok := uriToPath(uri)
	if !ok {
		return "", uri, false
	}
	rel, within := relativeToWorkspace(s.workspaceRoot, abs)
	if !within {
		return "", abs, false
	}
	return rel, abs, true
}

// resolveCommand returns the profile's command unchanged if it is already
// runnable (absolute, or found on PATH). Otherwise, if a binary cache
// directory was configured, it waits for the binary to show up there
// (covering the case where a fetch is still in flight) and returns its
// path in the cache.
func (s *Session) resolveCommand(ctx context.Context) (string, error) {
	cmd := s.profile.Command
	if filepath.IsAbs(cmd) {
		return cmd, nil
	}
	if _, err := exec.LookPath(cmd); err == nil {
		return cmd, nil
	}
	if s.opts.BinaryCacheDir == "" {
		return "", fmt.Errorf("%w: %s not found on PATH and no binary cache configured", lspfault.ErrConfiguration, cmd)
	}

	watcher, err := binarycache.New(s.opts.BinaryCacheDir)
	if err != nil {
		return "", fmt.Errorf("%w: binary cache: %v", lspfault.ErrConfiguration, err)
	}
	defer watcher.Close()

	timeout := s.opts.BinaryWaitTimeout
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	waitCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := watcher.WaitFor(waitCtx, cmd); err != nil {
		return "", fmt.Errorf("%w: waiting for %s in binary cache: %v", lspfault.ErrConfiguration, cmd, err)
	}
	return watcher.Path(cmd), nil
}
