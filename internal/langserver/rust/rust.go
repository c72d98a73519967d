// Package rust registers the Rust language profile (rust-analyzer).
package rust

import (
	"encoding/json"
	"time"

	"multilsp/internal/langserver"
	"multilsp/internal/rpc"
)

func init() {
	langserver.Register(langserver.Profile{
		Language:         langserver.Rust,
		Command:          "rust-analyzer",
		ReadinessTimeout: 90 * time.Second,
		Readiness:        readiness,
		RuntimeDependencies: []langserver.RuntimeDependency{
			{Platform: "linux-x64", BinaryName: "rust-analyzer"},
			{Platform: "osx-arm64", BinaryName: "rust-analyzer"},
			{Platform: "win-x64", BinaryName: "rust-analyzer.exe"},
		},
	})
}

// readiness waits for rust-analyzer's experimental serverStatus
// notification to report a quiescent health, rather than the generic
// $/progress stream, since rust-analyzer's indexing can run well past the
// initialize response returning.
func readiness(engine *rpc.Engine, ready func()) {
	engine.RegisterNotificationHandler("experimental/serverStatus", func(params json.RawMessage) {
		var status struct {
			Health  string `json:"health"`
			Quiescent bool `json:"quiescent"`
		}
		if err := json.Unmarshal(params, &status); err != nil {
			return
		}
		if status.Quiescent && status.Health != "error" {
			ready()
		}
	})
}
