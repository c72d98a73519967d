// Package ruby registers the Ruby language profile (Solargraph).
package ruby

import (
	"time"

	"multilsp/internal/langserver"
)

func init() {
	langserver.Register(langserver.Profile{
		Language:         langserver.Ruby,
		Command:          "solargraph",
		Args:             []string{"stdio"},
		ReadinessTimeout: 45 * time.Second,
		RuntimeDependencies: []langserver.RuntimeDependency{
			{Platform: "any", BinaryName: "solargraph"},
		},
	})
}
