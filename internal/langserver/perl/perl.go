// Package perl registers the Perl language profile, grounded on
// multilspy's perl_language_server.py.
package perl

import (
	"time"

	"multilsp/internal/langserver"
)

func init() {
	langserver.Register(langserver.Profile{
		Language:         langserver.Perl,
		Command:          "perl-languageserver",
		ReadinessTimeout: 45 * time.Second,
		RuntimeDependencies: []langserver.RuntimeDependency{
			{Platform: "any", BinaryName: "perl-languageserver"},
		},
	})
}
