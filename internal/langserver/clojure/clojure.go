// Package clojure registers the Clojure language profile (clojure-lsp).
package clojure

import (
	"time"

	"multilsp/internal/langserver"
)

func init() {
	langserver.Register(langserver.Profile{
		Language:         langserver.Clojure,
		Command:          "clojure-lsp",
		ReadinessTimeout: 90 * time.Second,
		RuntimeDependencies: []langserver.RuntimeDependency{
			{Platform: "any", BinaryName: "clojure-lsp"},
		},
	})
}
