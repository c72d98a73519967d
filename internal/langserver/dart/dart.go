// Package dart registers the Dart language profile, grounded on
// multilspy's dart_language_server.py.
package dart

import (
	"time"

	"multilsp/internal/langserver"
)

func init() {
	langserver.Register(langserver.Profile{
		Language:         langserver.Dart,
		Command:          "dart",
		Args:             []string{"language-server", "--protocol=lsp"},
		ReadinessTimeout: 60 * time.Second,
		RuntimeDependencies: []langserver.RuntimeDependency{
			{Platform: "any", BinaryName: "dart"},
		},
	})
}
