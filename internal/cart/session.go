package cart

import (
	"net/http"
	"time"

	"github.com/google/uuid"
)

const (
	SessionCookie = "fb_cart"
	SessionHeader = "X-Cart-Session"

	sessionMaxAge = 30 * 24 * time.Hour
)

// SessionID returns the caller's cart session, minting one when the request
// carries none or a malformed one. The id is echoed in both the header and
// the cookie so API clients and browsers can keep it.
func SessionID(w http.ResponseWriter, r *http.Request) string {
	id, ok := sessionFromRequest(r)
	if !ok {
		id = uuid.NewString()
		http.SetCookie(w, &http.Cookie{
			Name:     SessionCookie,
			Value:    id,
			Path:     "/",
			MaxAge:   int(sessionMaxAge.Seconds()),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	w.Header().Set(SessionHeader, id)
	return id
}

func sessionFromRequest(r *http.Request) (string, bool) {
	if id, ok := normalizeSession(r.Header.Get(SessionHeader)); ok {
		return id, true
	}
	if c, err := r.Cookie(SessionCookie); err == nil {
		return normalizeSession(c.Value)
	}
	return "", false
}

func normalizeSession(v string) (string, bool) {
	if v == "" {
		return "", false
	}
	u, err := uuid.Parse(v)
	if err != nil {
		return "", false
	}
	return u.String(), true
}
