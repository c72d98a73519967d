package all

import (
	"testing"

	"multilsp/internal/langserver"
)

func TestAllLanguagesRegistered(t *testing.T) {
	want := []langserver.Language{
		langserver.CSharp, langserver.Python, langserver.Rust, langserver.Java,
		langserver.Kotlin, langserver.TypeScript, langserver.JavaScript,
		langserver.Go, langserver.Ruby, langserver.Dart, langserver.Cpp,
		langserver.Clojure, langserver.PHP, langserver.Perl, langserver.Elixir,
	}
	for _, lang := range want {
		if _, ok := langserver.Lookup(lang); !ok {
			t.Errorf("expected %s to be registered", lang)
		}
	}
	if got := len(langserver.Registered()); got != len(want) {
		t.Errorf("expected %d registered languages, got %d", len(want), got)
	}
}

func TestBuildInitializeParamsFillsPlaceholders(t *testing.T) {
	profile, ok := langserver.Lookup(langserver.Go)
	if !ok {
		t.Fatal("go profile not registered")
	}
	params := profile.BuildInitializeParams(1234, "/workspace", "file:///workspace", "workspace")
	if params.ProcessID == nil || *params.ProcessID != 1234 {
		t.Fatalf("unexpected ProcessID: %+v", params.ProcessID)
	}
	if params.RootURI == nil || *params.RootURI != "file:///workspace" {
		t.Fatalf("unexpected RootURI: %+v", params.RootURI)
	}
	if len(params.WorkspaceFolders) != 1 || params.WorkspaceFolders[0].Name != "workspace" {
		t.Fatalf("unexpected WorkspaceFolders: %+v", params.WorkspaceFolders)
	}
}
