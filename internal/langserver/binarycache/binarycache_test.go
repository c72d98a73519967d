package binarycache

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWaitForReturnsImmediatelyIfAlreadyPresent(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "gopls")
	if err := os.WriteFile(target, []byte("fake binary"), 0o755); err != nil {
		t.Fatalf("write fake binary: %v", err)
	}

	w, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer w.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := w.WaitFor(ctx, "gopls"); err != nil {
		t.Fatalf("WaitFor: %v", err)
	}
}

func TestWaitForDetectsLaterArrival(t *testing.T) {
	dir := t.TempDir()
	w, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer w.Close()

	go func() {
		time.Sleep(50 * time.Millisecond)
		_ = os.WriteFile(filepath.Join(dir, "rust-analyzer"), []byte("fake"), 0o755)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := w.WaitFor(ctx, "rust-analyzer"); err != nil {
		t.Fatalf("WaitFor: %v", err)
	}
}

func TestWaitForRespectsContextTimeout(t *testing.T) {
	dir := t.TempDir()
	w, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer w.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	if err := w.WaitFor(ctx, "never-arrives"); err == nil {
		t.Fatal("expected timeout error")
	}
}
