// Package session correlates anonymous clients with their cart and
// wishlist. The id travels in a request header the client must echo back;
// a request without one starts a new session. Sessions never expire.
package session

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Header carries the session id in both directions.
const Header = "sessionid"

// maxIDLen bounds client-presented ids; longer values are replaced.
const maxIDLen = 128

type ctxKey struct{}

// Resolve returns the presented session id or a fresh random one.
func Resolve(r *http.Request) (id string, created bool) {
	id = strings.TrimSpace(r.Header.Get(Header))
	if id == "" || len(id) > maxIDLen {
		return uuid.NewString(), true
	}
	return id, false
}

// Middleware stores the resolved id in the request context and echoes it
// in the response header.
// An id already bound by an outer Middleware is kept, so nesting is safe.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := FromContext(r.Context()); ok {
			next.ServeHTTP(w, r)
			return
		}

		id, _ := Resolve(r)
		w.Header().Set(Header, id)
		next.ServeHTTP(w, r.WithContext(WithID(r.Context(), id)))
	})
}

func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

func FromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ctxKey{}).(string)
	return id, ok && id != ""
}

// LogField tags access log lines with the session id.
func LogField(r *http.Request) zap.Field {
	id, _ := FromContext(r.Context())
	return zap.String("session_id", id)
}

// ID returns the id bound by Middleware. Without it only a presented
// header counts and nothing is generated, so repeated calls agree.
func ID(r *http.Request) string {
	if id, ok := FromContext(r.Context()); ok {
		return id
	}
	id := strings.TrimSpace(r.Header.Get(Header))
	if len(id) > maxIDLen {
		return ""
	}
	return id
}
