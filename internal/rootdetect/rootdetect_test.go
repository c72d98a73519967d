package rootdetect

import (
	"os"
	"path/filepath"
	"testing"

	"multilsp/internal/langserver"
)

func TestDetectFallsBackToStartDir(t *testing.T) {
	tempDir := t.TempDir()
	resolved, err := filepath.EvalSymlinks(tempDir)
	if err != nil {
		resolved = tempDir
	}

	root, err := Detect(tempDir, langserver.Go)
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}

	resolvedRoot, err := filepath.EvalSymlinks(root)
	if err != nil {
		resolvedRoot = root
	}
	if resolvedRoot != resolved {
		t.Fatalf("expected fallback to %s, got %s", resolved, root)
	}
}

func TestDetectFindsGitRoot(t *testing.T) {
	tempDir := t.TempDir()
	if err := os.Mkdir(filepath.Join(tempDir, ".git"), 0o755); err != nil {
		t.Fatalf("mkdir .git: %v", err)
	}
	nested := filepath.Join(tempDir, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir nested: %v", err)
	}

	root, err := Detect(nested, langserver.Go)
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}

	resolvedWant, _ := filepath.EvalSymlinks(tempDir)
	resolvedGot, _ := filepath.EvalSymlinks(root)
	if resolvedGot != resolvedWant {
		t.Fatalf("expected git root %s, got %s", resolvedWant, root)
	}
}

func TestDetectFindsLanguageMarker(t *testing.T) {
	tempDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(tempDir, "Cargo.toml"), []byte("[package]\n"), 0o644); err != nil {
		t.Fatalf("write marker: %v", err)
	}
	nested := filepath.Join(tempDir, "src")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir nested: %v", err)
	}

	root, err := Detect(nested, langserver.Rust)
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}

	resolvedWant, _ := filepath.EvalSymlinks(tempDir)
	resolvedGot, _ := filepath.EvalSymlinks(root)
	if resolvedGot != resolvedWant {
		t.Fatalf("expected marker root %s, got %s", resolvedWant, root)
	}
}
