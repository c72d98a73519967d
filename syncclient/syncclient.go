// Package syncclient is the Sync Façade (spec §4.6): a blocking,
// context-scoped wrapper around multilsp for callers that don't want to
// think about the handshake lifecycle or the query surface's per-call
// contexts. It runs every underlying operation against a single
// background context for the lifetime of the scope, closing the
// language server on scope exit even if the caller's callback panics.
package syncclient

import (
	"context"
	"fmt"

	"multilsp"
	"multilsp/internal/logging"
	"multilsp/internal/lsp/protocol"
	"multilsp/query"
)

// Client is the blocking façade over a started Session, valid only for
// the lifetime of the WithServer callback that produced it.
type Client struct {
	ctx     context.Context
	session *multilsp.Session
}

// WithServer starts cfg's language server, invokes fn with a Client bound
// to a background context, and guarantees the server is torn down before
// returning — including when fn panics, matching multilspy's
// start_server async context manager.
func WithServer(cfg multilsp.Config, logger *logging.Logger, fn func(*Client) error) (err error) {
	sess, newErr := multilsp.NewSession(cfg, logger)
	if newErr != nil {
		return newErr
	}

	ctx := context.Background()
	if startErr := sess.Start(ctx); startErr != nil {
		return fmt.Errorf("syncclient: start: %w", startErr)
	}

	defer func() {
		stopCtx := context.Background()
		stopErr := sess.Stop(stopCtx)
		if r := recover(); r != nil {
			_ = stopErr
			panic(r)
		}
		if err == nil {
			err = stopErr
		}
	}()

	client := &Client{ctx: ctx, session: sess}
	return fn(client)
}

// Definition blocks for textDocument/definition.
func (c *Client) Definition(path string, line, column int) ([]query.Location, error) {
	return c.session.Definition(c.ctx, path, line, column)
}

// TypeDefinition blocks for textDocument/typeDefinition.
func (c *Client) TypeDefinition(path string, line, column int) ([]query.Location, error) {
	return c.session.TypeDefinition(c.ctx, path, line, column)
}

// Implementation blocks for textDocument/implementation.
func (c *Client) Implementation(path string, line, column int) ([]query.Location, error) {
	return c.session.Implementation(c.ctx, path, line, column)
}

// References blocks for textDocument/references, including the
// declaration site.
func (c *Client) References(path string, line, column int) ([]query.Location, error) {
	return c.session.References(c.ctx, path, line, column, true)
}

// Hover blocks for textDocument/hover, returning normalized text.
func (c *Client) Hover(path string, line, column int) (string, error) {
	text, _, err := c.session.Hover(c.ctx, path, line, column)
	return text, err
}

// DocumentSymbols blocks for textDocument/documentSymbol.
func (c *Client) DocumentSymbols(path string) (flat, tree []query.SymbolNode, err error) {
	return c.session.DocumentSymbols(c.ctx, path)
}

// WorkspaceSymbol blocks for workspace/symbol.
func (c *Client) WorkspaceSymbol(q string) ([]query.SymbolNode, error) {
	return c.session.WorkspaceSymbol(c.ctx, q)
}

// Completions blocks for textDocument/completion.
func (c *Client) Completions(path string, line, column int) (protocol.CompletionList, error) {
	return c.session.Completions(c.ctx, path, line, column)
}

// OpenFile opens path as an overlay with initialText as its starting
// content.
func (c *Client) OpenFile(path, initialText string) (string, error) {
	return c.session.OpenFile(path, initialText)
}

// CloseFile releases one reference on path's overlay.
func (c *Client) CloseFile(path string) error {
	return c.session.CloseFile(path)
}

// InsertText inserts text at (line, column) in path's overlay.
func (c *Client) InsertText(path string, line, column int, text string) (string, error) {
	return c.session.InsertTextAtPosition(path, line, column, text)
}

// DeleteTextBetween deletes [start, end) from path's overlay.
func (c *Client) DeleteTextBetween(path string, startLine, startCol, endLine, endCol int) (string, error) {
	return c.session.DeleteTextBetweenPositions(path, startLine, startCol, endLine, endCol)
}

// GetOpenFileText returns the current in-memory text of an open overlay.
func (c *Client) GetOpenFileText(path string) (string, error) {
	return c.session.GetOpenFileText(path)
}
