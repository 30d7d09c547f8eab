package users

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/roamly/auth-service/pkg/clientip"
	"github.com/roamly/auth-service/pkg/ratelimit"
	"github.com/roamly/auth-service/pkg/session"
	"github.com/roamly/auth-service/pkg/user"
)

// Limiters holds the per-policy rate limiters for the module. Any nil
// limiter disables that policy.
type Limiters struct {
	Login    *ratelimit.SlidingWindow
	Register *ratelimit.SlidingWindow
	API      *ratelimit.SlidingWindow
}

// Router builds the module router. The caller mounts it where it belongs,
// typically under /api/users.
func Router(h *Handler, sessions *session.Manager, store user.Store, limiters Limiters) chi.Router {
	r := chi.NewRouter()

	r.Use(limit(limiters.API))
	r.Use(session.Middleware(sessions, store))

	r.With(limit(limiters.Register)).Post("/register", h.Register)
	r.With(limit(limiters.Login)).Post("/login", h.Login)

	r.Get("/verify-email", h.VerifyEmail)
	r.Post("/resend-verification", h.ResendVerification)
	r.Post("/forgot-password", h.ForgotPassword)
	r.Post("/reset-password", h.ResetPassword)
	r.Post("/logout", h.Logout)

	r.Group(func(r chi.Router) {
		r.Use(session.RequireAuth(func(w http.ResponseWriter, _ *http.Request) {
			respondError(w, http.StatusUnauthorized, "Authentication required")
		}))
		r.Get("/profile", h.Profile)
		r.Patch("/profile", h.UpdateProfile)
	})

	if h.oauth != nil {
		r.Get("/auth/google", h.GoogleBegin)
		r.Get("/auth/google/callback", h.GoogleCallback)
	}

	return r
}

// limit wraps a sliding window limiter into middleware keyed by client IP,
// answering rejected requests with the module's error envelope.
func limit(limiter *ratelimit.SlidingWindow) func(http.Handler) http.Handler {
	if limiter == nil {
		return func(next http.Handler) http.Handler { return next }
	}
	return ratelimit.Middleware(limiter, clientip.GetIP, ratelimit.WithOnLimitReached(
		func(w http.ResponseWriter, _ *http.Request, _ *ratelimit.Result) {
			respondError(w, http.StatusTooManyRequests, "Too many requests, please try again later")
		},
	))
}
