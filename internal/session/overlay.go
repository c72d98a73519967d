package session

import "multilsp/internal/lsp/protocol"

// OpenDocument is the client-side authoritative text for one opened
// document, decoupled from the on-disk file (spec §3). Version increases
// strictly with every edit; the document is dropped once OpenCount reaches
// zero.
type OpenDocument struct {
	URI        string
	LanguageID string
	Text       string
	Version    int
	OpenCount  int
}

// applyFullChange replaces the overlay text wholesale and bumps the
// version, mirroring a textDocument/didChange with a single full-document
// content-change event (the only form this client produces).
func (d *OpenDocument) applyFullChange(text string) protocol.TextDocumentContentChangeEvent {
	d.Text = text
	d.Version++
	return protocol.TextDocumentContentChangeEvent{Text: text}
}
