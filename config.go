package multilsp

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"multilsp/internal/langserver"
)

// Config is the caller-facing configuration surface for one Session,
// mirroring multilspy's MultilspyConfig: a language tag, a workspace root,
// and the handful of knobs that change client behavior rather than
// protocol semantics.
type Config struct {
	// CodeLanguage selects the compiled-in language profile to use.
	CodeLanguage langserver.Language `json:"code_language"`

	// WorkspaceRoot is the absolute (or caller-cwd-relative) path the
	// language server treats as its project root.
	WorkspaceRoot string `json:"workspace_root"`

	// TraceLSPCommunication, when true, logs every request/response/
	// notification payload at debug level.
	TraceLSPCommunication bool `json:"trace_lsp_communication"`

	// StartIndependentLSPProcess starts the child in its own process
	// group so it outlives a Ctrl-C delivered to this process's terminal
	// group; teardown is still this client's responsibility. Defaults to
	// true.
	StartIndependentLSPProcess *bool `json:"start_independent_lsp_process,omitempty"`

	// RequestTimeout overrides the default per-query timeout.
	RequestTimeout time.Duration `json:"request_timeout,omitempty"`

	// InitializeTimeout overrides how long Start waits for the initialize
	// round trip.
	InitializeTimeout time.Duration `json:"initialize_timeout,omitempty"`

	// ReadinessTimeout overrides how long Start waits for a language's
	// readiness signal after the initialized notification.
	ReadinessTimeout time.Duration `json:"readiness_timeout,omitempty"`

	// TrustedWorkspace mirrors multilspy's trust flag. It is read from
	// configuration, but NewSession does not pass it on and no compiled-in
	// profile reads it.
	TrustedWorkspace bool `json:"trusted_workspace,omitempty"`

	// BinaryCacheDir, if set, is watched for a language server binary
	// that isn't on PATH yet — e.g. one a separate fetch step is still
	// downloading into it.
	BinaryCacheDir string `json:"binary_cache_dir,omitempty"`
	// BinaryWaitTimeout bounds how long Start waits on BinaryCacheDir.
	BinaryWaitTimeout time.Duration `json:"binary_wait_timeout,omitempty"`
}

// LoadConfig reads a Config from a JSON file at path, the form a caller
// wiring this into a larger tool's own config file would use.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("multilsp: read config %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("multilsp: parse config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) startIndependentProcess() bool {
	if c.StartIndependentLSPProcess == nil {
		return true
	}
	return *c.StartIndependentLSPProcess
}
