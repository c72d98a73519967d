// Package kotlin registers the Kotlin language profile
// (kotlin-language-server), grounded on multilspy's
// kotlin_language_server.py.
package kotlin

import (
	"time"

	"multilsp/internal/langserver"
)

func init() {
	langserver.Register(langserver.Profile{
		Language:         langserver.Kotlin,
		Command:          "kotlin-language-server",
		ReadinessTimeout: 60 * time.Second,
		RuntimeDependencies: []langserver.RuntimeDependency{
			{Platform: "any", ArchiveType: "zip", BinaryName: "kotlin-language-server"},
		},
	})
}
