// Package typescript registers the TypeScript language profile.
package typescript

import (
	"time"

	"multilsp/internal/langserver"
)

func init() {
	langserver.Register(langserver.Profile{
		Language:         langserver.TypeScript,
		Command:          "typescript-language-server",
		Args:             []string{"--stdio"},
		ReadinessTimeout: 30 * time.Second,
		RuntimeDependencies: []langserver.RuntimeDependency{
			{Platform: "any", BinaryName: "typescript-language-server"},
		},
	})
}
