// Package java registers the Java language profile (Eclipse JDT Language
// Server).
package java

import (
	"time"

	"multilsp/internal/langserver"
)

func init() {
	langserver.Register(langserver.Profile{
		Language:         langserver.Java,
		Command:          "jdtls",
		ReadinessTimeout: 120 * time.Second,
		RuntimeDependencies: []langserver.RuntimeDependency{
			{Platform: "any", ArchiveType: "tar.gz", BinaryName: "jdtls"},
		},
	})
}
