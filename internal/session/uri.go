package session

import (
	"net/url"
	"path/filepath"
	"runtime"
	"strings"
)

func runtimeIsWindows() bool { return runtime.GOOS == "windows" }

// pathToURI converts an absolute filesystem path to a file:// URI.
func pathToURI(absPath string) string {
	p := filepath.ToSlash(absPath)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	u := url.URL{Scheme: "file", Path: p}
	return u.String()
}

// uriToPath converts a file:// URI back to an absolute filesystem path. ok
// is false for any other scheme (e.g. a server occasionally returning a
// jdt:// or untitled: URI this client does not track as a real file).
func uriToPath(uri string) (path string, ok bool) {
	u, err := url.Parse(uri)
	if err != nil || u.Scheme != "file" {
		return "", false
	}
	p := u.Path
	if runtimeIsWindows() && len(p) > 2 && p[0] == '/' && p[2] == ':' {
		p = p[1:]
	}
	return filepath.FromSlash(p), true
}

// relativeToWorkspace returns absPath expressed relative to root, and
// whether it actually falls within root. Per spec §3's invariant, a
// location outside the workspace root is never converted to a relative
// path — callers keep the absolute form instead.
func relativeToWorkspace(root, absPath string) (rel string, within bool) {
	r, err := filepath.Rel(root, absPath)
	if err != nil {
		return "", false
	}
	if r == ".." || strings.HasPrefix(r, ".."+string(filepath.Separator)) {
		return "", false
	}
	return filepath.ToSlash(r), true
}
