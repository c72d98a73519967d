package session

import (
	"context"
	"testing"
	"time"
)

func TestReadinessSignalSetIsIdempotent(t *testing.T) {
	r := NewReadinessSignal()
	if r.IsSet() {
		t.Fatal("expected unset signal")
	}
	r.Set()
	r.Set()
	if !r.IsSet() {
		t.Fatal("expected set signal")
	}
}

func TestReadinessSignalWaitUnblocksOnSet(t *testing.T) {
	r := NewReadinessSignal()
	go func() {
		time.Sleep(10 * time.Millisecond)
		r.Set()
	}()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := r.Wait(ctx); err != nil {
		t.Fatalf("Wait: %v", err)
	}
}

func TestReadinessSignalWaitRespectsContext(t *testing.T) {
	r := NewReadinessSignal()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if err := r.Wait(ctx); err == nil {
		t.Fatal("expected context deadline error")
	}
}
