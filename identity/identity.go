// Package identity resolves the calling principal. Services trust the
// X-User-ID header, which the gateway sets only after verifying a bearer
// token and strips otherwise.
package identity

import (
	"context"
	"net/http"
	"strings"
)

const HeaderUserID = "X-User-ID"

// PlaceholderUserID is the literal older clients stored instead of a real
// caller identifier. It identifies nobody.
const PlaceholderUserID = "user-id"

// Normalize trims id and maps the placeholder to "", the anonymous id.
func Normalize(id string) string {
	id = strings.TrimSpace(id)
	if id == PlaceholderUserID {
		return ""
	}
	return id
}

type contextKey struct{}

// Provider returns the current caller's stable identifier (an email or uid),
// or false when the request is unauthenticated.
type Provider interface {
	CurrentPrincipal(ctx context.Context) (string, bool)
}

func WithPrincipal(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, contextKey{}, Normalize(id))
}

func FromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(contextKey{}).(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

// ContextProvider reads the principal stored by Middleware.
type ContextProvider struct{}

func (ContextProvider) CurrentPrincipal(ctx context.Context) (string, bool) {
	return FromContext(ctx)
}

// Middleware copies the X-User-ID header into the request context.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := Normalize(r.Header.Get(HeaderUserID)); id != "" {
			r = r.WithContext(WithPrincipal(r.Context(), id))
		}
		next.ServeHTTP(w, r)
	})
}

// DisplayName is the part of an identifier before its first '@'. It is only
// used for rendering comment authors.
func DisplayName(id string) string {
	if i := strings.IndexByte(id, '@'); i >= 0 {
		return id[:i]
	}
	return id
}
