package procsup

// LaunchInfo is the information required to launch a language server
// process (spec §3's ProcessLaunchInfo), constructed once per Session and
// never mutated afterward.
type LaunchInfo struct {
	// Command is the executable to run.
	Command string
	// Args are passed to Command.
	Args []string
	// Env overlays the current process environment; entries here win over
	// any identically-named variable already set.
	Env map[string]string
	// Dir is the working directory for the child process.
	Dir string
	// StartNewProcessGroup, when true, starts the child in its own
	// process group/session so host signals (e.g. Ctrl-C in the
	// controlling terminal) do not propagate to it. Corresponds to
	// start_independent_lsp_process in the configuration surface.
	StartNewProcessGroup bool
}
