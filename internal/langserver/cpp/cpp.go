// Package cpp registers the C/C++ language profile (clangd).
package cpp

import (
	"time"

	"multilsp/internal/langserver"
)

func init() {
	langserver.Register(langserver.Profile{
		Language:         langserver.Cpp,
		Command:          "clangd",
		ReadinessTimeout: 60 * time.Second,
		RuntimeDependencies: []langserver.RuntimeDependency{
			{Platform: "linux-x64", ArchiveType: "zip", BinaryName: "clangd"},
			{Platform: "osx-arm64", ArchiveType: "zip", BinaryName: "clangd"},
			{Platform: "win-x64", ArchiveType: "zip", BinaryName: "clangd.exe"},
		},
	})
}
