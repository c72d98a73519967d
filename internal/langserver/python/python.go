// Package python registers the Python language profile (python-lsp-server).
package python

import (
	"time"

	"multilsp/internal/langserver"
)

func init() {
	langserver.Register(langserver.Profile{
		Language:         langserver.Python,
		Command:          "pylsp",
		ReadinessTimeout: 30 * time.Second,
		// pylsp has no distinct post-indexing signal; ready immediately
		// after the initialized notification, same as the default.
		RuntimeDependencies: []langserver.RuntimeDependency{
			{Platform: "linux-x64", BinaryName: "pylsp"},
			{Platform: "osx-arm64", BinaryName: "pylsp"},
			{Platform: "win-x64", BinaryName: "pylsp.exe"},
		},
	})
}
