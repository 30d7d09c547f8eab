package session

import (
	"net/http"
	"time"
)

// SetCookie writes the session credential as an http-only, SameSite=Strict
// cookie. Logout is purely client-side: clearing this cookie is the only
// invalidation mechanism, sessions cannot be force-expired server-side.
func (m *Manager) SetCookie(w http.ResponseWriter, credential string) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cfg.CookieName,
		Value:    credential,
		Path:     "/",
		MaxAge:   int(m.ttl / time.Second),
		Secure:   m.cfg.CookieSecure,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

// ClearCookie expires the session cookie immediately.
func (m *Manager) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cfg.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		Secure:   m.cfg.CookieSecure,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

// FromRequest extracts the session credential from the request cookie.
// A missing cookie returns ErrNoSession.
func (m *Manager) FromRequest(r *http.Request) (string, error) {
	cookie, err := r.Cookie(m.cfg.CookieName)
	if err != nil {
		return "", ErrNoSession
	}
	return cookie.Value, nil
}
