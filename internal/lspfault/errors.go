// Package lspfault defines the client's error taxonomy (spec §7): typed
// sentinels checked with errors.Is, so callers can distinguish "this query
// timed out" from "the server rejected it" from "the session is gone"
// without string-matching messages.
package lspfault

import "errors"

var (
	// ErrConfiguration signals an unknown language, missing binary, or
	// unsupported platform. Fatal at Session creation.
	ErrConfiguration = errors.New("multilsp: configuration error")

	// ErrSpawn signals the child process failed to start. Fatal; surfaced
	// to the caller.
	ErrSpawn = errors.New("multilsp: failed to spawn language server")

	// ErrTimeout signals an awaited response or readiness signal did not
	// arrive before its deadline.
	ErrTimeout = errors.New("multilsp: request timed out")

	// ErrSessionStopped signals the session is not in the Ready state (not
	// yet ready, shutting down, or already stopped) and cannot serve
	// queries.
	ErrSessionStopped = errors.New("multilsp: session is not ready")

	// ErrUnsupportedCapability signals the server's initialize response
	// did not advertise the provider a query requires.
	ErrUnsupportedCapability = errors.New("multilsp: server does not support this capability")

	// ErrOutsideWorkspace is returned by the overlay text operations when
	// the target document is not open in the overlay. Server locations
	// outside the workspace root do not produce it; they are returned with
	// an empty relative path and WithinWorkspace false.
	ErrOutsideWorkspace = errors.New("multilsp: location is outside the workspace root")
)
