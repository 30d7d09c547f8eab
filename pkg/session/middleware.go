package session

import (
	"net/http"

	"github.com/roamly/auth-service/pkg/user"
)

// Middleware validates the inbound session cookie and, when valid, resolves
// the user through the credential store and attaches it to the request
// context. An absent or invalid credential leaves the request
// unauthenticated rather than rejecting it; public endpoints keep working.
func Middleware(m *Manager, store user.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			credential, err := m.FromRequest(r)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := m.Parse(credential)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			u, err := store.ByID(r.Context(), claims.Subject)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(SetUser(r.Context(), u)))
		})
	}
}

// RequireAuth hard-rejects requests that did not authenticate. Mount after
// Middleware on protected routes.
func RequireAuth(onUnauthorized http.HandlerFunc) func(http.Handler) http.Handler {
	if onUnauthorized == nil {
		onUnauthorized = func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
		}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if GetUser(r.Context()) == nil {
				onUnauthorized(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
