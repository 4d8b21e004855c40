// Package mediaurl resolves stored media references into client-usable URLs.
//
// The catalog stores raw references: server-relative paths ("/uploads/...")
// for assets on local storage, absolute URLs for assets on an external host
// or linked directly. Resolve maps either form to an absolute URL; for refs
// that are already absolute it is the identity, so callers apply it
// uniformly without branching on the storage backend.
package mediaurl

import (
	"net/http"
	"strings"
)

// Resolve returns the client-usable URL for a stored media reference.
// An empty ref resolves to ""; an absolute http/https ref is returned
// unchanged; anything else is prefixed with the request origin.
func Resolve(origin, ref string) string {
	if ref == "" {
		return ""
	}
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}
	if !strings.HasPrefix(ref, "/") {
		ref = "/" + ref
	}
	return origin + ref
}

// ResolveAll resolves every reference in refs, preserving order.
func ResolveAll(origin string, refs []string) []string {
	if len(refs) == 0 {
		return refs
	}
	out := make([]string, len(refs))
	for i, ref := range refs {
		out[i] = Resolve(origin, ref)
	}
	return out
}

// Origin derives the scheme://host origin of the incoming request,
// honoring X-Forwarded-Proto when the service sits behind a proxy.
func Origin(r *http.Request) string {
	scheme := "http"
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	} else if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}
