// Package procsup spawns a language server process and tears it down
// reliably, including any children it forked — the process-tree teardown
// protocol described in spec §4.3.
package procsup

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/shirou/gopsutil/v3/process"

	"multilsp/internal/logging"
)

const (
	terminateWait = 10 * time.Second
	killWait      = 2 * time.Second
	closeGrace    = 500 * time.Millisecond
)

// Supervisor owns a single spawned child process and its pipes.
type Supervisor struct {
	cmd    *exec.Cmd
	Stdin  io.WriteCloser
	Stdout io.ReadCloser
	Stderr io.ReadCloser

	log *logging.Logger
}

// New returns an unstarted Supervisor; call Spawn to launch the child.
func New(log *logging.Logger) *Supervisor {
	if log == nil {
		log = logging.Discard()
	}
	return &Supervisor{log: log}
}

// Spawn launches info.Command with info.Args, the current environment
// overlaid with info.Env, and stdin/stdout/stderr all piped.
func (s *Supervisor) Spawn(info LaunchInfo) error {
	cmd := exec.Command(info.Command, info.Args...)
	cmd.Dir = info.Dir
	cmd.Env = mergeEnv(os.Environ(), info.Env)

	if info.StartNewProcessGroup {
		detachProcessGroup(cmd)
	}

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("procsup: stdin pipe: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		stdin.Close()
		return fmt.Errorf("procsup: stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		stdin.Close()
		stdout.Close()
		return fmt.Errorf("procsup: stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		stdin.Close()
		stdout.Close()
		stderr.Close()
		return fmt.Errorf("procsup: start: %w", err)
	}

	s.cmd = cmd
	s.Stdin = stdin
	s.Stdout = stdout
	s.Stderr = stderr
	return nil
}

// Pid returns the child's process id, or 0 if it has not been spawned.
func (s *Supervisor) Pid() int {
	if s.cmd == nil || s.cmd.Process == nil {
		return 0
	}
	return s.cmd.Process.Pid
}

// Stop runs the teardown protocol: close stdin (so a server blocked on a
// read can exit), terminate the whole process tree, escalate to kill if
// still alive, then close the remaining pipes. It never returns an error;
// every step is best-effort, matching the Python implementation's
// exception-tolerant cleanup.
func (s *Supervisor) Stop(ctx context.Context) {
	if s.cmd == nil || s.cmd.Process == nil {
		return
	}

	closeQuiet(s.Stdin)

	if !s.exited() {
		s.terminateTree()
		if !s.waitExit(terminateWait) {
			s.killTree()
			s.waitExit(killWait)
		}
	}

	closeQuiet(s.Stdout)
	closeQuiet(s.Stderr)

	select {
	case <-ctx.Done():
	case <-time.After(closeGrace):
	}
}

func (s *Supervisor) exited() bool {
	return s.cmd.ProcessState != nil
}

func (s *Supervisor) waitExit(timeout time.Duration) bool {
	done := make(chan error, 1)
	go func() { done <- s.cmd.Wait() }()
	select {
	case <-done:
		return true
	case <-time.After(timeout):
		return false
	}
}

// terminateTree and killTree enumerate the child's descendants with
// gopsutil rather than relying on process-group semantics alone, since
// many language servers fork build-tool subprocesses (indexers, compilers)
// that a process-group signal may not reach on every platform.
func (s *Supervisor) terminateTree() { s.signalTree(true) }
func (s *Supervisor) killTree()      { s.signalTree(false) }

func (s *Supervisor) signalTree(terminate bool) {
	root, err := process.NewProcess(int32(s.cmd.Process.Pid))
	if err != nil {
		s.signalDirect(terminate)
		return
	}

	for _, descendant := range collectDescendants(root) {
		signalOne(descendant, terminate)
	}
	signalOne(root, terminate)
}

// collectDescendants walks gopsutil's Children() recursively so that a
// descendant spawned by a descendant (e.g. a build tool forked by a forked
// indexer) is still found; Children() alone only reaches the direct
// children of root.
func collectDescendants(root *process.Process) []*process.Process {
	var out []*process.Process
	queue := []*process.Process{root}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		children, err := p.Children()
		if err != nil {
			continue
		}
		for _, child := range children {
			out = append(out, child)
			queue = append(queue, child)
		}
	}
	return out
}

func signalOne(p *process.Process, terminate bool) {
	if terminate {
		_ = p.Terminate()
		return
	}
	_ = p.Kill()
}

func (s *Supervisor) signalDirect(terminate bool) {
	if s.cmd.Process == nil {
		return
	}
	if terminate {
		_ = s.cmd.Process.Signal(os.Interrupt)
		return
	}
	_ = s.cmd.Process.Kill()
}

func closeQuiet(c io.Closer) {
	if c == nil {
		return
	}
	defer func() { _ = recover() }()
	_ = c.Close()
}

func mergeEnv(base []string, overlay map[string]string) []string {
	if len(overlay) == 0 {
		return base
	}
	env := make([]string, len(base), len(base)+len(overlay))
	copy(env, base)
	for k, v := range overlay {
		env = append(env, k+"="+v)
	}
	return env
}
