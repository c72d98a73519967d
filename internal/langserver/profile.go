// Package langserver defines the ServerProfile capability set: what a
// Session needs to know about one language to spawn, initialize, and
// recognize readiness in that language's server. Each supported language
// is a compiled-in module that registers its Profile from an init
// function — a tagged variant, not a class hierarchy (spec §9) — and new
// languages are added by compiling in a new package, never by loading a
// plugin at runtime (spec §1 Non-goals).
package langserver

import (
	"encoding/json"
	"fmt"
	"time"

	"multilsp/internal/lsp/protocol"
	"multilsp/internal/rpc"
)

// Language is one of the supported language tags.
type Language string

// Supported language tags, matching spec §6's configuration surface.
const (
	CSharp     Language = "csharp"
	Python     Language = "python"
	Rust       Language = "rust"
	Java       Language = "java"
	Kotlin     Language = "kotlin"
	TypeScript Language = "typescript"
	JavaScript Language = "javascript"
	Go         Language = "go"
	Ruby       Language = "ruby"
	Dart       Language = "dart"
	Cpp        Language = "cpp"
	Clojure    Language = "clojure"
	PHP        Language = "php"
	Perl       Language = "perl"
	Elixir     Language = "elixir"
)

// RuntimeDependency describes where one platform's copy of a language
// server binary can be obtained. The download/extract/chmod mechanics are
// delegated to a file-utility collaborator outside this module's scope
// (spec §6); this type only carries the data a Session's configuration
// surface needs to reference.
type RuntimeDependency struct {
	Platform    string // e.g. "linux-x64", "osx-arm64", "win-x64"
	URL         string
	ArchiveType string // "zip", "gzip", "tar.gz", or "" for a bare binary
	BinaryName string
	BinaryDir   string // path relative to the archive root, if nested
}

// ReadinessHandlers describes a set of notification handlers that latch a
// language-specific readiness signal by calling ready(). Neither Profile
// nor Session reads this type; profiles install their readiness handlers
// through Profile.Readiness.
type ReadinessHandlers struct {
	// Notifications maps method name to a handler that should call
	// ready() once it observes the server's "fully indexed" signal.
	Notifications map[string]func(params json.RawMessage, ready func())
}

// Profile is the capability set one language contributes.
type Profile struct {
	Language Language

	// Command and Args launch the language server. Command is resolved
	// via exec.LookPath by the caller unless it is already absolute.
	Command string
	Args    []string

	// InitializationOptions is passed verbatim in InitializeParams, if the
	// server expects language-specific options (e.g. gopls's "analyses").
	InitializationOptions interface{}

	// ReadinessTimeout bounds how long a Session waits for this language's
	// readiness signals before failing Start.
	ReadinessTimeout time.Duration

	// Readiness installs this language's extra handlers on engine and
	// calls ready() when the server is fully indexed and quiescent. If
	// Readiness is nil, the Session treats the server as ready immediately
	// after the initialized notification is sent (true for most servers
	// that don't emit a distinct post-indexing signal).
	Readiness func(engine *rpc.Engine, ready func())

	// RuntimeDependencies lists where this language's server binary can be
	// fetched from, per platform; fetching itself is out of scope.
	RuntimeDependencies []RuntimeDependency
}

// BuildInitializeParams fills in the placeholders InitializeParams needs
// from a concrete workspace: $rootPath, $rootUri, workspaceFolders[0].uri,
// workspaceFolders[0].name, and the client's own process id — the Go
// equivalent of multilspy's per-language initialize_params.json templates.
func (p Profile) BuildInitializeParams(pid int, rootPath, rootURI, folderName string) protocol.InitializeParams {
	return protocol.InitializeParams{
		ProcessID:             &pid,
		RootPath:              &rootPath,
		RootURI:               &rootURI,
		InitializationOptions: p.InitializationOptions,
		Capabilities:          protocol.DefaultClientCapabilities(),
		WorkspaceFolders: []protocol.WorkspaceFolder{
			{URI: rootURI, Name: folderName},
		},
	}
}

var registry = map[Language]Profile{}

// Register installs a language's Profile. Called from each language
// package's init function; panics on a duplicate registration since that
// indicates two compiled-in modules claiming the same tag.
func Register(p Profile) {
	if _, exists := registry[p.Language]; exists {
		panic(fmt.Sprintf("langserver: %s already registered", p.Language))
	}
	registry[p.Language] = p
}

// Lookup returns the Profile for a language tag, or ok=false if no
// compiled-in module registered it (spec §7's Configuration error: unknown
// language).
func Lookup(lang Language) (Profile, bool) {
	p, ok := registry[lang]
	return p, ok
}

// Registered returns every language tag currently registered, for
// diagnostics and tests.
func Registered() []Language {
	out := make([]Language, 0, len(registry))
	for lang := range registry {
		out = append(out, lang)
	}
	return out
}
