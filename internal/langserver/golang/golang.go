// Package golang registers the Go language profile (gopls).
package golang

import (
	"encoding/json"
	"time"

	"multilsp/internal/langserver"
	"multilsp/internal/rpc"
)

func init() {
	langserver.Register(langserver.Profile{
		Language:         langserver.Go,
		Command:          "gopls",
		Args:             []string{"serve"},
		ReadinessTimeout: 60 * time.Second,
		Readiness:        readiness,
		RuntimeDependencies: []langserver.RuntimeDependency{
			{Platform: "linux-x64", BinaryName: "gopls"},
			{Platform: "osx-arm64", BinaryName: "gopls"},
			{Platform: "win-x64", BinaryName: "gopls.exe"},
		},
	})
}

// readiness latches once gopls reports its language/status notification as
// ServiceReady, matching the signal its Python counterpart
// (language_servers/gopls/gopls.py) waits on before the server is trusted
// to answer navigation queries.
func readiness(engine *rpc.Engine, ready func()) {
	engine.RegisterNotificationHandler("language/status", func(params json.RawMessage) {
		var status struct {
			Type    string `json:"type"`
			Message string `json:"message"`
		}
		if err := json.Unmarshal(params, &status); err != nil {
			return
		}
		if status.Type == "ServiceReady" && status.Message == "ServiceReady" {
			ready()
		}
	})
}
