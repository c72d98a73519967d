package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	_ "multilsp/internal/langserver/golang"

	"multilsp/internal/langserver"
)

func TestResolveCommandFindsBinaryOnPath(t *testing.T) {
	s, err := New(langserver.Go, t.TempDir(), DefaultOptions())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	s.profile.Command = "cat"
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	resolved, err := s.resolveCommand(ctx)
	if err != nil {
		t.Fatalf("resolveCommand: %v", err)
	}
	if resolved != "cat" {
		t.Fatalf("unexpected resolved command: %s", resolved)
	}
}

func TestResolveCommandWaitsOnBinaryCache(t *testing.T) {
	cacheDir := t.TempDir()
	opts := DefaultOptions()
	opts.BinaryCacheDir = cacheDir
	opts.BinaryWaitTimeout = 2 * time.Second

	s, err := New(langserver.Go, t.TempDir(), opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	s.profile.Command = "totally-fake-language-server"

	go func() {
		time.Sleep(50 * time.Millisecond)
		_ = os.WriteFile(filepath.Join(cacheDir, "totally-fake-language-server"), []byte("x"), 0o755)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	resolved, err := s.resolveCommand(ctx)
	if err != nil {
		t.Fatalf("resolveCommand: %v", err)
	}
	if resolved != filepath.Join(cacheDir, "totally-fake-language-server") {
		t.Fatalf("unexpected resolved path: %s", resolved)
	}
}

func TestResolveCommandErrorsWithoutCache(t *testing.T) {
	s, err := New(langserver.Go, t.TempDir(), DefaultOptions())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	s.profile.Command = "totally-fake-language-server-no-cache"

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if _, err := s.resolveCommand(ctx); err == nil {
		t.Fatal("expected error when binary is missing and no cache is configured")
	}
}
