package query

import (
	"encoding/json"

	"multilsp/internal/lsp/protocol"
	"multilsp/internal/session"
)

// decodeLocations normalizes the several shapes a definition/typeDefinition/
// implementation/declaration response can take: null, a single Location, an
// array of Location, or an array of LocationLink.
func decodeLocations(s *session.Session, raw json.RawMessage) ([]Location, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}

	var single protocol.Location
	if err := json.Unmarshal(raw, &single); err == nil && single.URI != "" {
		return []Location{toLocation(s, single.URI, single.Range)}, nil
	}

	var locs []protocol.Location
	if err := json.Unmarshal(raw, &locs); err == nil && len(locs) > 0 && locs[0].URI != "" {
		return locationsFromRaw(s, locs), nil
	}

	var links []protocol.LocationLink
	if err := json.Unmarshal(raw, &links); err == nil {
		return locationsFromLinks(s, links), nil
	}

	return nil, nil
}

// decodeCompletions normalizes a textDocument/completion response: either a
// bare CompletionItem array or a CompletionList.
func decodeCompletions(raw json.RawMessage) (protocol.CompletionList, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return protocol.CompletionList{}, nil
	}

	var list protocol.CompletionList
	if err := json.Unmarshal(raw, &list); err == nil && (list.Items != nil || list.IsIncomplete) {
		return list, nil
	}

	var items []protocol.CompletionItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return protocol.CompletionList{}, err
	}
	return protocol.CompletionList{Items: items}, nil
}

// decodeHoverText extracts a plain string from Hover.Contents, which may be
// a bare string, a MarkupContent object, or an array of MarkedString.
func decodeHoverText(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var markup protocol.MarkupContent
	if err := json.Unmarshal(raw, &markup); err == nil && markup.Value != "" {
		return markup.Value
	}

	var arr []json.RawMessage
	if err := json.Unmarshal(raw, &arr); err == nil {
		out := ""
		for _, item := range arr {
			out += decodeHoverText(item)
		}
		return out
	}

	var marked struct {
		Value string `json:"value"`
	}
	if err := json.Unmarshal(raw, &marked); err == nil {
		return marked.Value
	}
	return ""
}
