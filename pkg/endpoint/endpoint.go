// Package endpoint derives URL patterns from route module source paths.
package endpoint

import (
	"path"
	"strings"
)

// Derive maps a routes-root-relative file path to its URL pattern:
// separators are normalized, the file extension is stripped, segments
// prefixed with an underscore become named parameters, and a trailing
// index or root segment collapses to the parent directory.
//
//	users/_id.go            → /users/:id
//	index.go                → /
//	posts/_slug/comments.go → /posts/:slug/comments
//
// Derivation is deterministic; it takes raw file paths only and is called
// exactly once per discovered module.
func Derive(source string) string {
	p := strings.Trim(strings.ReplaceAll(source, `\`, "/"), "/")
	if ext := path.Ext(p); ext != "" {
		p = strings.TrimSuffix(p, ext)
	}
	if p == "" {
		return "/"
	}

	segments := strings.Split(p, "/")

	last := segments[len(segments)-1]
	if strings.EqualFold(last, "index") || strings.EqualFold(last, "root") {
		segments = segments[:len(segments)-1]
	}

	for i, seg := range segments {
		if strings.HasPrefix(seg, "_") {
			segments[i] = ":" + seg[1:]
		}
	}

	return "/" + strings.Join(segments, "/")
}
