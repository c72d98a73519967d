package session

import "testing"

func TestPathToURIRoundTrip(t *testing.T) {
	uri := pathToURI("/home/user/project/main.go")
	if uri != "file:///home/user/project/main.go" {
		t.Fatalf("unexpected uri: %s", uri)
	}

	path, ok := uriToPath(uri)
	if !ok {
		t.Fatal("expected ok=true")
	}
	if path != "/home/user/project/main.go" {
		t.Fatalf("unexpected path: %s", path)
	}
}

func TestUriToPathRejectsNonFileScheme(t *testing.T) {
	_, ok := uriToPath("untitled:Untitled-1")
	if ok {
		t.Fatal("expected ok=false for a non-file scheme")
	}
}

func TestRelativeToWorkspace(t *testing.T) {
	rel, within := relativeToWorkspace("/workspace/root", "/workspace/root/pkg/file.go")
	if !within {
		t.Fatal("expected within=true")
	}
	if rel != "pkg/file.go" {
		t.Fatalf("unexpected relative path: %s", rel)
	}
}

func TestRelativeToWorkspaceOutside(t *testing.T) {
	_, within := relativeToWorkspace("/workspace/root", "/etc/passwd")
	if within {
		t.Fatal("expected within=false for a path outside the workspace root")
	}
}
