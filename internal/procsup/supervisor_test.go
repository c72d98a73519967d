package procsup

import (
	"context"
	"testing"
	"time"

	"multilsp/internal/logging"
)

func TestSpawnAndStopEchoProcess(t *testing.T) {
	sup := New(logging.Discard())
	err := sup.Spawn(LaunchInfo{
		Command:              "cat",
		StartNewProcessGroup: true,
	})
	if err != nil {
		t.Fatalf("Spawn: %v", err)
	}
	if sup.Pid() == 0 {
		t.Fatal("expected non-zero pid after spawn")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	sup.Stop(ctx)
}

func TestPidBeforeSpawnIsZero(t *testing.T) {
	sup := New(nil)
	if sup.Pid() != 0 {
		t.Fatalf("expected zero pid before spawn, got %d", sup.Pid())
	}
}

func TestSpawnUnknownCommandErrors(t *testing.T) {
	sup := New(logging.Discard())
	err := sup.Spawn(LaunchInfo{Command: "definitely-not-a-real-binary-xyz"})
	if err == nil {
		t.Fatal("expected error spawning a nonexistent binary")
	}
}

func TestMergeEnvAppendsOverlay(t *testing.T) {
	base := []string{"PATH=/usr/bin", "HOME=/root"}
	merged := mergeEnv(base, map[string]string{"FOO": "bar"})
	found := false
	for _, kv := range merged {
		if kv == "FOO=bar" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected FOO=bar in merged env: %v", merged)
	}
	if len(merged) != len(base)+1 {
		t.Fatalf("unexpected merged length: %v", merged)
	}
}
