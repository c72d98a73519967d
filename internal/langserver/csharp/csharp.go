// Package csharp registers the C# language profile (OmniSharp).
package csharp

import (
	"time"

	"multilsp/internal/langserver"
)

func init() {
	langserver.Register(langserver.Profile{
		Language:         langserver.CSharp,
		Command:          "OmniSharp",
		Args:             []string{"-lsp"},
		ReadinessTimeout: 60 * time.Second,
		RuntimeDependencies: []langserver.RuntimeDependency{
			{Platform: "linux-x64", ArchiveType: "tar.gz", BinaryName: "OmniSharp"},
			{Platform: "win-x64", ArchiveType: "zip", BinaryName: "OmniSharp.exe"},
		},
	})
}
