// Package query is the Query Surface (spec §4.5): read-only
// code-intelligence operations (definitions, references, hover, symbols,
// completions) layered over a session, plus thin wrappers for the overlay
// edit operations a caller needs before/after a query.
package query

import (
	"multilsp/internal/lsp/protocol"
	"multilsp/internal/session"
)

// Location is a normalized position result: both path forms so a caller
// can use whichever is convenient, plus the original URI for anything that
// still needs it.
type Location struct {
	RelativePath    string         `json:"relativePath,omitempty"`
	AbsolutePath    string         `json:"absolutePath"`
	URI             string         `json:"uri"`
	Range           protocol.Range `json:"range"`
	WithinWorkspace bool           `json:"withinWorkspace"`
}

func toLocation(s *session.Session, uri string, rng protocol.Range) Location {
	rel, abs, within := s.FromURI(uri)
	return Location{
		RelativePath:    rel,
		AbsolutePath:    abs,
		URI:             uri,
		Range:           rng,
		WithinWorkspace: within,
	}
}

func locationsFromRaw(s *session.Session, raw []protocol.Location) []Location {
	out := make([]Location, 0, len(raw))
	for _, l := range raw {
		out = append(out, toLocation(s, l.URI, l.Range))
	}
	return out
}

func locationsFromLinks(s *session.Session, raw []protocol.LocationLink) []Location {
	out := make([]Location, 0, len(raw))
	for _, l := range raw {
		out = append(out, toLocation(s, l.TargetURI, l.TargetSelectionRange))
	}
	return out
}
