// Package elixir registers the Elixir language profile (ElixirLS),
// grounded on multilspy's elixir_language_server.py.
package elixir

import (
	"time"

	"multilsp/internal/langserver"
)

func init() {
	langserver.Register(langserver.Profile{
		Language:         langserver.Elixir,
		Command:          "language_server.sh",
		ReadinessTimeout: 90 * time.Second,
		RuntimeDependencies: []langserver.RuntimeDependency{
			{Platform: "any", ArchiveType: "zip", BinaryName: "language_server.sh"},
		},
	})
}
