package protocol

// WorkspaceFolder describes one root folder passed to initialize.
type WorkspaceFolder struct {
	URI  string `json:"uri"`
	Name string `json:"name"`
}

// InitializeParams is the payload of the initialize request. Per-language
// templates populate RootPath/RootURI/WorkspaceFolders from a workspace
// root; ProcessID is filled in with the client's own pid.
type InitializeParams struct {
	ProcessID             *int               `json:"processId"`
	RootPath              *string            `json:"rootPath,omitempty"`
	RootURI               *string            `json:"rootUri"`
	InitializationOptions interface{}        `json:"initializationOptions,omitempty"`
	Capabilities          ClientCapabilities `json:"capabilities"`
	Trace                 string             `json:"trace,omitempty"`
	WorkspaceFolders      []WorkspaceFolder  `json:"workspaceFolders,omitempty"`
}

// ClientCapabilities advertises what this client understands.
type ClientCapabilities struct {
	Workspace    *WorkspaceClientCapabilities    `json:"workspace,omitempty"`
	TextDocument *TextDocumentClientCapabilities `json:"textDocument,omitempty"`
	Window       *WindowClientCapabilities       `json:"window,omitempty"`
	General      *GeneralClientCapabilities      `json:"general,omitempty"`
}

// WorkspaceClientCapabilities is the workspace-scoped subset of ClientCapabilities.
type WorkspaceClientCapabilities struct {
	ApplyEdit              bool                 `json:"applyEdit,omitempty"`
	Symbol                 *struct{}            `json:"symbol,omitempty"`
	ExecuteCommand         *struct{}            `json:"executeCommand,omitempty"`
	DidChangeConfiguration *struct{}            `json:"didChangeConfiguration,omitempty"`
	DidChangeWatchedFiles  *struct{}            `json:"didChangeWatchedFiles,omitempty"`
	WorkspaceFolders       bool                 `json:"workspaceFolders,omitempty"`
	Configuration          bool                 `json:"configuration,omitempty"`
}

// TextDocumentClientCapabilities is the document-scoped subset.
type TextDocumentClientCapabilities struct {
	Synchronization    *struct{} `json:"synchronization,omitempty"`
	Completion         *struct{} `json:"completion,omitempty"`
	Hover              *struct{} `json:"hover,omitempty"`
	Declaration        *struct{} `json:"declaration,omitempty"`
	Definition         *struct{} `json:"definition,omitempty"`
	TypeDefinition     *struct{} `json:"typeDefinition,omitempty"`
	Implementation     *struct{} `json:"implementation,omitempty"`
	References         *struct{} `json:"references,omitempty"`
	DocumentSymbol     *struct{} `json:"documentSymbol,omitempty"`
	PublishDiagnostics *struct{} `json:"publishDiagnostics,omitempty"`
}

// WindowClientCapabilities controls window-scoped features.
type WindowClientCapabilities struct {
	WorkDoneProgress bool `json:"workDoneProgress,omitempty"`
}

// GeneralClientCapabilities controls the remaining general-purpose bits.
type GeneralClientCapabilities struct {
	PositionEncodings []string `json:"positionEncodings,omitempty"`
}

// ServerCapabilities is the subset of the initialize response this client
// inspects to decide whether a requested query is supported.
type ServerCapabilities struct {
	TextDocumentSync        interface{} `json:"textDocumentSync,omitempty"`
	HoverProvider           interface{} `json:"hoverProvider,omitempty"`
	DefinitionProvider      interface{} `json:"definitionProvider,omitempty"`
	TypeDefinitionProvider  interface{} `json:"typeDefinitionProvider,omitempty"`
	ImplementationProvider  interface{} `json:"implementationProvider,omitempty"`
	ReferencesProvider      interface{} `json:"referencesProvider,omitempty"`
	DocumentSymbolProvider  interface{} `json:"documentSymbolProvider,omitempty"`
	WorkspaceSymbolProvider interface{} `json:"workspaceSymbolProvider,omitempty"`
	CompletionProvider      *struct {
		TriggerCharacters []string `json:"triggerCharacters,omitempty"`
	} `json:"completionProvider,omitempty"`
	Experimental interface{} `json:"experimental,omitempty"`
}

// InitializeResult is the payload of the initialize response.
type InitializeResult struct {
	Capabilities ServerCapabilities `json:"capabilities"`
	ServerInfo   *struct {
		Name    string `json:"name"`
		Version string `json:"version,omitempty"`
	} `json:"serverInfo,omitempty"`
}

// Supports reports whether a provider field is present and not explicitly
// false. Most providers are either a bool or an options object; both mean
// "supported" unless the bool is false.
func Supports(provider interface{}) bool {
	if provider == nil {
		return false
	}
	if b, ok := provider.(bool); ok {
		return b
	}
	return true
}

// DefaultClientCapabilities is the capability set this client advertises on
// every initialize request, regardless of language.
func DefaultClientCapabilities() ClientCapabilities {
	return ClientCapabilities{
		Workspace: &WorkspaceClientCapabilities{
			ApplyEdit:        false,
			WorkspaceFolders: true,
			Configuration:    true,
		},
		TextDocument: &TextDocumentClientCapabilities{
			Synchronization:    &struct{}{},
			Completion:         &struct{}{},
			Hover:              &struct{}{},
			Definition:         &struct{}{},
			TypeDefinition:     &struct{}{},
			Implementation:     &struct{}{},
			References:         &struct{}{},
			DocumentSymbol:     &struct{}{},
			PublishDiagnostics: &struct{}{},
		},
		Window: &WindowClientCapabilities{WorkDoneProgress: true},
	}
}
