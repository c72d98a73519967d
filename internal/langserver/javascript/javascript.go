// Package javascript registers the JavaScript language profile, reusing
// the TypeScript language server (the same binary serves both, per the
// teacher's DefaultServerConfigs).
package javascript

import (
	"time"

	"multilsp/internal/langserver"
)

func init() {
	langserver.Register(langserver.Profile{
		Language:         langserver.JavaScript,
		Command:          "typescript-language-server",
		Args:             []string{"--stdio"},
		ReadinessTimeout: 30 * time.Second,
		RuntimeDependencies: []langserver.RuntimeDependency{
			{Platform: "any", BinaryName: "typescript-language-server"},
		},
	})
}
