package order

import (
	"context"
	"net/http"
	"strings"

	"FlamingBooks/pkg/kit"
)

const (
	HeaderUserID   = "X-User-Id"
	HeaderUserRole = "X-User-Role"
)

type ctxKey string

const userKey ctxKey = "user"

type User struct {
	ID   string
	Role string
}

func UserFromContext(ctx context.Context) (User, bool) {
	u, ok := ctx.Value(userKey).(User)
	return u, ok
}

func WithUser(ctx context.Context, u User) context.Context {
	return context.WithValue(ctx, userKey, u)
}

// RequireUserHeaders trusts the identity headers set by the gateway after it
// has verified the caller's token. The service must not be reachable from
// outside the gateway.
func RequireUserHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(HeaderUserID))
		if id == "" {
			kit.WriteError(w, r, http.StatusUnauthorized, "no user", nil)
			return
		}
		u := User{ID: id, Role: strings.TrimSpace(r.Header.Get(HeaderUserRole))}
		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), u)))
	})
}
