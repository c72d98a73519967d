package query

import (
	"encoding/json"
	"testing"

	_ "multilsp/internal/langserver/golang"

	"multilsp/internal/langserver"
	"multilsp/internal/session"
)

func newTestSession(t *testing.T) *session.Session {
	t.Helper()
	s, err := session.New(langserver.Go, t.TempDir(), session.DefaultOptions())
	if err != nil {
		t.Fatalf("session.New: %v", err)
	}
	return s
}

func TestDecodeLocationsSingle(t *testing.T) {
	s := newTestSession(t)
	raw := json.RawMessage(`{"uri":"file:///a/b.go","range":{"start":{"line":1,"character":2},"end":{"line":1,"character":5}}}`)
	locs, err := decodeLocations(s, raw)
	if err != nil {
		t.Fatalf("decodeLocations: %v", err)
	}
	if len(locs) != 1 || locs[0].URI != "file:///a/b.go" {
		t.Fatalf("unexpected locations: %+v", locs)
	}
}

func TestDecodeLocationsArray(t *testing.T) {
	s := newTestSession(t)
	raw := json.RawMessage(`[{"uri":"file:///a/b.go","range":{"start":{"line":0,"character":0},"end":{"line":0,"character":1}}}]`)
	locs, err := decodeLocations(s, raw)
	if err != nil {
		t.Fatalf("decodeLocations: %v", err)
	}
	if len(locs) != 1 {
		t.Fatalf("unexpected count: %d", len(locs))
	}
}

func TestDecodeLocationsNull(t *testing.T) {
	s := newTestSession(t)
	locs, err := decodeLocations(s, json.RawMessage(`null`))
	if err != nil {
		t.Fatalf("decodeLocations: %v", err)
	}
	if locs != nil {
		t.Fatalf("expected nil, got %+v", locs)
	}
}

func TestDecodeLocationsLinks(t *testing.T) {
	s := newTestSession(t)
	raw := json.RawMessage(`[{"targetUri":"file:///a/b.go","targetRange":{"start":{"line":0,"character":0},"end":{"line":0,"character":1}},"targetSelectionRange":{"start":{"line":0,"character":0},"end":{"line":0,"character":1}}}]`)
	locs, err := decodeLocations(s, raw)
	if err != nil {
		t.Fatalf("decodeLocations: %v", err)
	}
	if len(locs) != 1 || locs[0].URI != "file:///a/b.go" {
		t.Fatalf("unexpected locations: %+v", locs)
	}
}

func TestDecodeCompletionsBareArray(t *testing.T) {
	raw := json.RawMessage(`[{"label":"foo"},{"label":"bar"}]`)
	list, err := decodeCompletions(raw)
	if err != nil {
		t.Fatalf("decodeCompletions: %v", err)
	}
	if len(list.Items) != 2 {
		t.Fatalf("unexpected items: %+v", list.Items)
	}
}

func TestDecodeCompletionsList(t *testing.T) {
	raw := json.RawMessage(`{"isIncomplete":true,"items":[{"label":"foo"}]}`)
	list, err := decodeCompletions(raw)
	if err != nil {
		t.Fatalf("decodeCompletions: %v", err)
	}
	if !list.IsIncomplete || len(list.Items) != 1 {
		t.Fatalf("unexpected list: %+v", list)
	}
}

func TestDecodeHoverTextVariants(t *testing.T) {
	if got := decodeHoverText(json.RawMessage(`"plain string"`)); got != "plain string" {
		t.Fatalf("unexpected: %q", got)
	}
	if got := decodeHoverText(json.RawMessage(`{"kind":"markdown","value":"**bold**"}`)); got != "**bold**" {
		t.Fatalf("unexpected: %q", got)
	}
	if got := decodeHoverText(json.RawMessage(`[{"value":"a"},{"value":"b"}]`)); got != "ab" {
		t.Fatalf("unexpected: %q", got)
	}
}

func TestIsHierarchicalSymbolResponse(t *testing.T) {
	hierarchical := json.RawMessage(`[{"name":"Foo","selectionRange":{"start":{"line":0,"character":0},"end":{"line":0,"character":1}}}]`)
	if !isHierarchicalSymbolResponse(hierarchical) {
		t.Fatal("expected hierarchical shape to be detected")
	}

	flat := json.RawMessage(`[{"name":"Foo","location":{"uri":"file:///a.go","range":{"start":{"line":0,"character":0},"end":{"line":0,"character":1}}}}]`)
	if isHierarchicalSymbolResponse(flat) {
		t.Fatal("expected flat shape to not be detected as hierarchical")
	}
}
