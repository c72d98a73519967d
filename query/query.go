package query

import (
	"context"
	"encoding/json"
	"fmt"

	"multilsp/internal/lsp/protocol"
	"multilsp/internal/lspfault"
	"multilsp/internal/session"
)

// Surface is the Query Surface bound to one session. Every method times
// out on the session's DefaultTimeout unless the caller supplies a ctx
// that already carries a deadline; that deadline is then used as is,
// whether it is shorter or longer than DefaultTimeout.
type Surface struct {
	s *session.Session
}

// New wraps a started, ready session in a Query Surface.
func New(s *session.Session) *Surface {
	return &Surface{s: s}
}

func (q *Surface) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, q.s.DefaultTimeout())
}

func (q *Surface) positionParams(path string, line, column int) protocol.TextDocumentPositionParams {
	return protocol.TextDocumentPositionParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: q.s.ToURI(path)},
		Position:     protocol.Position{Line: line, Character: column},
	}
}

// ensureOpen opens path in the overlay from its on-disk text if it is not
// already tracked, per spec §4.5: a query opens its target file if needed
// rather than requiring the caller to have opened it first.
func (q *Surface) ensureOpen(path string) error {
	return q.s.EnsureOpenFromDisk(path)
}

// Definition resolves textDocument/definition at (path, line, column).
func (q *Surface) Definition(ctx context.Context, path string, line, column int) ([]Location, error) {
	if !protocol.Supports(q.s.Capabilities().DefinitionProvider) {
		return nil, fmt.Errorf("%w: definition", lspfault.ErrUnsupportedCapability)
	}
	if err := q.ensureOpen(path); err != nil {
		return nil, err
	}
	ctx, cancel := q.withTimeout(ctx)
	defer cancel()
	raw, err := q.s.Request(ctx, "textDocument/definition", q.positionParams(path, line, column))
	if err != nil {
		return nil, err
	}
	return decodeLocations(q.s, raw)
}

// TypeDefinition resolves textDocument/typeDefinition.
func (q *Surface) TypeDefinition(ctx context.Context, path string, line, column int) ([]Location, error) {
	if !protocol.Supports(q.s.Capabilities().TypeDefinitionProvider) {
		return nil, fmt.Errorf("%w: typeDefinition", lspfault.ErrUnsupportedCapability)
	}
	if err := q.ensureOpen(path); err != nil {
		return nil, err
	}
	ctx, cancel := q.withTimeout(ctx)
	defer cancel()
	raw, err := q.s.Request(ctx, "textDocument/typeDefinition", q.positionParams(path, line, column))
	if err != nil {
		return nil, err
	}
	return decodeLocations(q.s, raw)
}

// Implementation resolves textDocument/implementation.
func (q *Surface) Implementation(ctx context.Context, path string, line, column int) ([]Location, error) {
	if !protocol.Supports(q.s.Capabilities().ImplementationProvider) {
		return nil, fmt.Errorf("%w: implementation", lspfault.ErrUnsupportedCapability)
	}
	if err := q.ensureOpen(path); err != nil {
		return nil, err
	}
	ctx, cancel := q.withTimeout(ctx)
	defer cancel()
	raw, err := q.s.Request(ctx, "textDocument/implementation", q.positionParams(path, line, column))
	if err != nil {
		return nil, err
	}
	return decodeLocations(q.s, raw)
}

// References resolves textDocument/references. includeDeclaration is sent
// as given; syncclient.Client.References always passes true, matching
// multilspy's request_references behavior.
func (q *Surface) References(ctx context.Context, path string, line, column int, includeDeclaration bool) ([]Location, error) {
	if !protocol.Supports(q.s.Capabilities().ReferencesProvider) {
		return nil, fmt.Errorf("%w: references", lspfault.ErrUnsupportedCapability)
	}
	if err := q.ensureOpen(path); err != nil {
		return nil, err
	}
	ctx, cancel := q.withTimeout(ctx)
	defer cancel()
	params := protocol.ReferenceParams{
		TextDocumentPositionParams: q.positionParams(path, line, column),
		Context:                    protocol.ReferenceContext{IncludeDeclaration: includeDeclaration},
	}
	raw, err := q.s.Request(ctx, "textDocument/references", params)
	if err != nil {
		return nil, err
	}
	var locs []protocol.Location
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	if err := json.Unmarshal(raw, &locs); err != nil {
		return nil, fmt.Errorf("references: decode: %w", err)
	}
	return locationsFromRaw(q.s, locs), nil
}

// Hover resolves textDocument/hover and normalizes its contents to text.
func (q *Surface) Hover(ctx context.Context, path string, line, column int) (text string, rng *protocol.Range, err error) {
	if !protocol.Supports(q.s.Capabilities().HoverProvider) {
		return "", nil, fmt.Errorf("%w: hover", lspfault.ErrUnsupportedCapability)
	}
	if err := q.ensureOpen(path); err != nil {
		return "", nil, err
	}
	ctx, cancel := q.withTimeout(ctx)
	defer cancel()
	raw, err := q.s.Request(ctx, "textDocument/hover", q.positionParams(path, line, column))
	if err != nil {
		return "", nil, err
	}
	if len(raw) == 0 || string(raw) == "null" {
		return "", nil, nil
	}
	var hover protocol.Hover
	if err := json.Unmarshal(raw, &hover); err != nil {
		return "", nil, fmt.Errorf("hover: decode: %w", err)
	}
	return decodeHoverText(hover.Contents), hover.Range, nil
}

// SymbolNode is the tree-shaped view of a DocumentSymbol result.
type SymbolNode struct {
	Name     string          `json:"name"`
	Kind     protocol.SymbolKind `json:"kind"`
	Detail   string          `json:"detail,omitempty"`
	Location Location        `json:"location"`
	Children []SymbolNode    `json:"children,omitempty"`
}

// DocumentSymbols resolves textDocument/documentSymbol, returning both a
// flat list (for simple iteration) and the hierarchical tree the server
// actually returned (spec §4.5's dual-view requirement). For servers that
// only answer with the flat SymbolInformation shape, tree mirrors flat with
// no children.
func (q *Surface) DocumentSymbols(ctx context.Context, path string) (flat []SymbolNode, tree []SymbolNode, err error) {
	if !protocol.Supports(q.s.Capabilities().DocumentSymbolProvider) {
		return nil, nil, fmt.Errorf("%w: documentSymbol", lspfault.ErrUnsupportedCapability)
	}
	if err := q.ensureOpen(path); err != nil {
		return nil, nil, err
	}
	ctx, cancel := q.withTimeout(ctx)
	defer cancel()
	raw, err := q.s.Request(ctx, "textDocument/documentSymbol", map[string]interface{}{
		"textDocument": protocol.TextDocumentIdentifier{URI: q.s.ToURI(path)},
	})
	if err != nil {
		return nil, nil, err
	}
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil, nil
	}

	if isHierarchicalSymbolResponse(raw) {
		var hierarchical []protocol.DocumentSymbol
		if err := json.Unmarshal(raw, &hierarchical); err != nil {
			return nil, nil, fmt.Errorf("documentSymbol: decode: %w", err)
		}
		tree = symbolNodesFromDocumentSymbols(q.s, path, hierarchical)
		flat = flattenSymbolTree(tree)
		return flat, tree, nil
	}

	var flatSyms []protocol.SymbolInformation
	if err := json.Unmarshal(raw, &flatSyms); err != nil {
		return nil, nil, fmt.Errorf("documentSymbol: decode: %w", err)
	}
	for _, sym := range flatSyms {
		node := SymbolNode{Name: sym.Name, Kind: sym.Kind, Location: toLocation(q.s, sym.Location.URI, sym.Location.Range)}
		flat = append(flat, node)
		tree = append(tree, node)
	}
	return flat, tree, nil
}

// isHierarchicalSymbolResponse distinguishes the DocumentSymbol[] shape
// (which nests a selectionRange) from the flatter, pre-3.16
// SymbolInformation[] shape (which nests a location) by sniffing the first
// object's keys rather than a lossy double-unmarshal.
func isHierarchicalSymbolResponse(raw json.RawMessage) bool {
	var probe []struct {
		SelectionRange json.RawMessage `json:"selectionRange"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil || len(probe) == 0 {
		return false
	}
	return len(probe[0].SelectionRange) > 0
}

func symbolNodesFromDocumentSymbols(s *session.Session, path string, syms []protocol.DocumentSymbol) []SymbolNode {
	uri := s.ToURI(path)
	out := make([]SymbolNode, 0, len(syms))
	for _, sym := range syms {
		node := SymbolNode{
			Name:     sym.Name,
			Kind:     sym.Kind,
			Detail:   sym.Detail,
			Location: toLocation(s, uri, sym.SelectionRange),
		}
		if len(sym.Children) > 0 {
			node.Children = symbolNodesFromDocumentSymbols(s, path, sym.Children)
		}
		out = append(out, node)
	}
	return out
}

func flattenSymbolTree(nodes []SymbolNode) []SymbolNode {
	var out []SymbolNode
	var walk func([]SymbolNode)
	walk = func(ns []SymbolNode) {
		for _, n := range ns {
			flat := n
			flat.Children = nil
			out = append(out, flat)
			walk(n.Children)
		}
	}
	walk(nodes)
	return out
}

// WorkspaceSymbol resolves workspace/symbol for a free-text query.
func (q *Surface) WorkspaceSymbol(ctx context.Context, query string) ([]SymbolNode, error) {
	if !protocol.Supports(q.s.Capabilities().WorkspaceSymbolProvider) {
		return nil, fmt.Errorf("%w: workspace/symbol", lspfault.ErrUnsupportedCapability)
	}
	ctx, cancel := q.withTimeout(ctx)
	defer cancel()
	raw, err := q.s.Request(ctx, "workspace/symbol", protocol.WorkspaceSymbolParams{Query: query})
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var syms []protocol.SymbolInformation
	if err := json.Unmarshal(raw, &syms); err != nil {
		return nil, fmt.Errorf("workspace/symbol: decode: %w", err)
	}
	out := make([]SymbolNode, 0, len(syms))
	for _, sym := range syms {
		out = append(out, SymbolNode{
			Name:     sym.Name,
			Kind:     sym.Kind,
			Location: toLocation(q.s, sym.Location.URI, sym.Location.Range),
		})
	}
	return out, nil
}

// Completions resolves textDocument/completion at (path, line, column).
func (q *Surface) Completions(ctx context.Context, path string, line, column int) (protocol.CompletionList, error) {
	if !protocol.Supports(q.s.Capabilities().CompletionProvider) {
		return protocol.CompletionList{}, fmt.Errorf("%w: completion", lspfault.ErrUnsupportedCapability)
	}
	if err := q.ensureOpen(path); err != nil {
		return protocol.CompletionList{}, err
	}
	ctx, cancel := q.withTimeout(ctx)
	defer cancel()
	raw, err := q.s.Request(ctx, "textDocument/completion", q.positionParams(path, line, column))
	if err != nil {
		return protocol.CompletionList{}, err
	}
	return decodeCompletions(raw)
}

// OpenFile opens path as an overlay, reading initialText as its starting
// content, per spec §4.5's thin overlay wrappers.
func (q *Surface) OpenFile(path, initialText string) (string, error) {
	return q.s.Open(path, initialText)
}

// CloseFile releases one reference on path's overlay.
func (q *Surface) CloseFile(path string) error {
	return q.s.Close(path)
}

// InsertTextAtPosition inserts text at (line, column) in path's overlay.
func (q *Surface) InsertTextAtPosition(path string, line, column int, text string) (string, error) {
	return q.s.InsertText(path, line, column, text)
}

// DeleteTextBetweenPositions deletes [start, end) from path's overlay.
func (q *Surface) DeleteTextBetweenPositions(path string, startLine, startCol, endLine, endCol int) (string, error) {
	return q.s.DeleteTextBetween(path, startLine, startCol, endLine, endCol)
}

// GetOpenFileText returns the current in-memory text of an open overlay.
func (q *Surface) GetOpenFileText(path string) (string, error) {
	return q.s.GetText(path)
}

// Diagnostics returns the most recently published diagnostics for path.
func (q *Surface) Diagnostics(path string) []protocol.Diagnostic {
	return q.s.Diagnostics(q.s.ToURI(path))
}
