// Package php registers the PHP language profile (Intelephense), grounded
// on multilspy's intelephense.py.
package php

import (
	"time"

	"multilsp/internal/langserver"
)

func init() {
	langserver.Register(langserver.Profile{
		Language:         langserver.PHP,
		Command:          "intelephense",
		Args:             []string{"--stdio"},
		ReadinessTimeout: 45 * time.Second,
		RuntimeDependencies: []langserver.RuntimeDependency{
			{Platform: "any", BinaryName: "intelephense"},
		},
	})
}
