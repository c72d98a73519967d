// Package rootdetect finds a sensible workspace root for a language server
// to point at when a caller doesn't already know one: it walks upward from
// a starting directory looking for version-control metadata or a marker
// file specific to the target language, falling back to the starting
// directory itself.
package rootdetect

import (
	"os"
	"path/filepath"

	"multilsp/internal/langserver"
)

// markersByLanguage names the file that usually sits at a project's root
// for each compiled-in language, so Detect can stop walking upward as soon
// as it finds one even in a repo without a .git directory (e.g. a vendored
// subtree, or a workspace checked out without history).
var markersByLanguage = map[langserver.Language]string{
	langserver.Go:         "go.mod",
	langserver.Python:     "pyproject.toml",
	langserver.Rust:       "Cargo.toml",
	langserver.TypeScript: "package.json",
	langserver.JavaScript: "package.json",
	langserver.Java:       "pom.xml",
	langserver.Kotlin:     "settings.gradle.kts",
	langserver.CSharp:     "*.sln",
	langserver.Ruby:       "Gemfile",
	langserver.Dart:       "pubspec.yaml",
	langserver.Cpp:        "CMakeLists.txt",
	langserver.Clojure:    "deps.edn",
	langserver.PHP:        "composer.json",
	langserver.Perl:       "cpanfile",
	langserver.Elixir:     "mix.exs",
}

// Detect walks upward from startDir looking first for a .git directory,
// then for lang's marker file, returning the first match. If neither is
// found before reaching the filesystem root, it returns startDir itself —
// the same fallback multilspy's callers use when no project boundary is
// obvious.
func Detect(startDir string, lang langserver.Language) (string, error) {
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	if root := findUpward(abs, ".git"); root != "" {
		return root, nil
	}

	if marker, ok := markersByLanguage[lang]; ok {
		if root := findUpwardGlob(abs, marker); root != "" {
			return root, nil
		}
	}

	return abs, nil
}

func findUpward(startPath, name string) string {
	current := startPath
	for {
		candidate := filepath.Join(current, name)
		if _, err := os.Stat(candidate); err == nil {
			return current
		}
		parent := filepath.Dir(current)
		if parent == current {
			return ""
		}
		current = parent
	}
}

func findUpwardGlob(startPath, pattern string) string {
	current := startPath
	for {
		matches, _ := filepath.Glob(filepath.Join(current, pattern))
		if len(matches) > 0 {
			return current
		}
		parent := filepath.Dir(current)
		if parent == current {
			return ""
		}
		current = parent
	}
}
