package session

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"multilsp/internal/lspfault"
	"multilsp/internal/lsp/protocol"
)

// languageIDFor maps a session's language tag to the languageId LSP expects
// in textDocument/didOpen. Most servers only use this for syntax
// highlighting hints and tolerate an approximate value.
func languageIDFor(lang string) string { return lang }

// Open opens path (workspace-relative or absolute) as an overlay document
// with initialText as its starting content, and increments its reference
// count. The on-disk file is not read; if path is already open, its
// current overlay text is kept and initialText is ignored. It mirrors
// multilspy's context-managed
// open_file: the overlay is reference counted so nested callers can each
// open and close the same file independently.
func (s *Session) Open(path, initialText string) (uri string, err error) {
	uri = s.ToURI(path)

	s.docsMu.Lock()
	defer s.docsMu.Unlock()

	if doc, ok := s.docs[uri]; ok {
		doc.OpenCount++
		return uri, nil
	}

	doc := &OpenDocument{
		URI:        uri,
		LanguageID: languageIDFor(string(s.language)),
		Text:       initialText,
		Version:    1,
		OpenCount:  1,
	}
	s.docs[uri] = doc

	err = s.Notify("textDocument/didOpen", map[string]interface{}{
		"textDocument": protocol.TextDocumentItem{
			URI:        doc.URI,
			LanguageID: doc.LanguageID,
			Version:    doc.Version,
			Text:       doc.Text,
		},
	})
	if err != nil {
		delete(s.docs, uri)
		return "", fmt.Errorf("textDocument/didOpen: %w", err)
	}
	return uri, nil
}

// Close decrements path's reference count, sending textDocument/didClose and
// dropping the overlay once the count reaches zero.
func (s *Session) Close(path string) error {
	uri := s.ToURI(path)

	s.docsMu.Lock()
	defer s.docsMu.Unlock()

	doc, ok := s.docs[uri]
	if !ok {
		return nil
	}
	doc.OpenCount--
	if doc.OpenCount > 0 {
		return nil
	}
	delete(s.docs, uri)
	return s.Notify("textDocument/didClose", map[string]interface{}{
		"textDocument": protocol.TextDocumentIdentifier{URI: uri},
	})
}

// EnsureOpenFromDisk makes sure path has a tracked overlay, opening it from
// its current on-disk content (spec §4.4's "first increment sends
// textDocument/didOpen with the current on-disk text") if it is not already
// open. Unlike Open, it does not bump the reference count of an
// already-open document: this is an implicit open performed on a caller's
// behalf before a query, not a paired open/close the caller owns.
func (s *Session) EnsureOpenFromDisk(path string) error {
	uri := s.ToURI(path)

	s.docsMu.Lock()
	if _, ok := s.docs[uri]; ok {
		s.docsMu.Unlock()
		return nil
	}
	s.docsMu.Unlock()

	abs := path
	if !filepath.IsAbs(path) {
		abs = filepath.Join(s.workspaceRoot, path)
	}
	text, err := os.ReadFile(abs)
	if err != nil {
		return fmt.Errorf("%w: read %s: %v", lspfault.ErrConfiguration, path, err)
	}

	s.docsMu.Lock()
	defer s.docsMu.Unlock()
	if _, ok := s.docs[uri]; ok {
		return nil
	}

	doc := &OpenDocument{
		URI:        uri,
		LanguageID: languageIDFor(string(s.language)),
		Text:       string(text),
		Version:    1,
		OpenCount:  1,
	}
	s.docs[uri] = doc

	if err := s.Notify("textDocument/didOpen", map[string]interface{}{
		"textDocument": protocol.TextDocumentItem{
			URI:        doc.URI,
			LanguageID: doc.LanguageID,
			Version:    doc.Version,
			Text:       doc.Text,
		},
	}); err != nil {
		delete(s.docs, uri)
		return fmt.Errorf("textDocument/didOpen: %w", err)
	}
	return nil
}

// EnsureOpen returns the overlay for path, failing with ErrOutsideWorkspace
// if it has never been opened via Open.
func (s *Session) EnsureOpen(path string) (*OpenDocument, error) {
	uri := s.ToURI(path)
	s.docsMu.Lock()
	defer s.docsMu.Unlock()
	doc, ok := s.docs[uri]
	if !ok {
		return nil, fmt.Errorf("%w: %s is not open", lspfault.ErrOutsideWorkspace, path)
	}
	return doc, nil
}

// GetText returns the overlay's current in-memory text for path.
func (s *Session) GetText(path string) (string, error) {
	doc, err := s.EnsureOpen(path)
	if err != nil {
		return "", err
	}
	s.docsMu.Lock()
	defer s.docsMu.Unlock()
	return doc.Text, nil
}

// InsertText inserts text at the given zero-based line/column into path's
// overlay, replaces the overlay wholesale via a full-document didChange,
// and returns the new full text (spec §3's overlay-edit helper).
func (s *Session) InsertText(path string, line, column int, text string) (string, error) {
	s.docsMu.Lock()
	defer s.docsMu.Unlock()

	uri := s.ToURI(path)
	doc, ok := s.docs[uri]
	if !ok {
		return "", fmt.Errorf("%w: %s is not open", lspfault.ErrOutsideWorkspace, path)
	}

	lines := splitLinesKeepEnds(doc.Text)
	if line < 0 || line > len(lines) {
		return "", fmt.Errorf("insert: line %d out of range", line)
	}
	var target string
	if line == len(lines) {
		target = ""
	} else {
		target = lines[line]
	}
	if column < 0 || column > len(target) {
		return "", fmt.Errorf("insert: column %d out of range on line %d", column, line)
	}
	if line == len(lines) {
		lines = append(lines, text)
	} else {
		lines[line] = target[:column] + text + target[column:]
	}

	newText := strings.Join(lines, "")
	change := doc.applyFullChange(newText)
	if err := s.notifyDidChange(doc); err != nil {
		return "", err
	}
	_ = change
	return doc.Text, nil
}

// DeleteTextBetween removes the half-open span [start, end) — each a
// (line, column) pair — from path's overlay and returns the new full text.
func (s *Session) DeleteTextBetween(path string, startLine, startCol, endLine, endCol int) (string, error) {
	s.docsMu.Lock()
	defer s.docsMu.Unlock()

	uri := s.ToURI(path)
	doc, ok := s.docs[uri]
	if !ok {
		return "", fmt.Errorf("%w: %s is not open", lspfault.ErrOutsideWorkspace, path)
	}

	offsetStart, err := lineColToOffset(doc.Text, startLine, startCol)
	if err != nil {
		return "", fmt.Errorf("delete: start: %w", err)
	}
	offsetEnd, err := lineColToOffset(doc.Text, endLine, endCol)
	if err != nil {
		return "", fmt.Errorf("delete: end: %w", err)
	}
	if offsetEnd < offsetStart {
		return "", fmt.Errorf("delete: end precedes start")
	}

	newText := doc.Text[:offsetStart] + doc.Text[offsetEnd:]
	doc.applyFullChange(newText)
	if err := s.notifyDidChange(doc); err != nil {
		return "", err
	}
	return doc.Text, nil
}

func (s *Session) notifyDidChange(doc *OpenDocument) error {
	return s.Notify("textDocument/didChange", map[string]interface{}{
		"textDocument": protocol.VersionedTextDocumentIdentifier{URI: doc.URI, Version: doc.Version},
		"contentChanges": []protocol.TextDocumentContentChangeEvent{
			{Text: doc.Text},
		},
	})
}

// splitLinesKeepEnds splits text into lines, each retaining its trailing
// "\n" so rejoining with strings.Join(lines, "") reproduces the original
// byte-for-byte.
func splitLinesKeepEnds(text string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			lines = append(lines, text[start:i+1])
			start = i + 1
		}
	}
	if start < len(text) {
		lines = append(lines, text[start:])
	}
	return lines
}

func lineColToOffset(text string, line, col int) (int, error) {
	lines := splitLinesKeepEnds(text)
	if line < 0 || line > len(lines) {
		return 0, fmt.Errorf("line %d out of range", line)
	}
	offset := 0
	for i := 0; i < line; i++ {
		offset += len(lines[i])
	}
	var target string
	if line < len(lines) {
		target = lines[line]
	}
	if col < 0 || col > len(target) {
		return 0, fmt.Errorf("column %d out of range on line %d", col, line)
	}
	return offset + col, nil
}
