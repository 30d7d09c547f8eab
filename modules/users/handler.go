package users

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/roamly/auth-service/pkg/auth"
	"github.com/roamly/auth-service/pkg/sanitizer"
	"github.com/roamly/auth-service/pkg/session"
	"github.com/roamly/auth-service/pkg/validator"
)

// Handler serves the user-facing auth endpoints. Input validation happens
// here, before the flow controller; the controller owns the state
// transitions.
type Handler struct {
	auth        *auth.Service
	oauth       *auth.OAuthService
	sessions    *session.Manager
	frontendURL string
	log         *slog.Logger
}

// NewHandler creates the endpoint handler. oauth may be nil when federated
// sign-in is not configured; the routes are then not mounted.
func NewHandler(authSvc *auth.Service, oauthSvc *auth.OAuthService, sessions *session.Manager, frontendURL string, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Handler{
		auth:        authSvc,
		oauth:       oauthSvc,
		sessions:    sessions,
		frontendURL: strings.TrimRight(frontendURL, "/"),
		log:         log,
	}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles POST /register.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Username = sanitizer.NormalizeUsername(req.Username)
	req.Email = sanitizer.NormalizeEmail(req.Email)

	if err := validator.Apply(
		validator.ValidUsername("username", req.Username),
		validator.ValidEmail("email", req.Email),
		validator.StrongPassword("password", req.Password),
	); err != nil {
		respondMappedError(w, err)
		return
	}

	u, err := h.auth.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		respondMappedError(w, err)
		return
	}

	respondSuccess(w, http.StatusCreated, "Registration successful. Please check your email to verify your account.", u)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	u, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondMappedError(w, err)
		return
	}

	credential, err := h.sessions.Issue(u.ID)
	if err != nil {
		h.log.ErrorContext(r.Context(), "issue session", slog.Any("error", err))
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	h.sessions.SetCookie(w, credential)

	respondSuccess(w, http.StatusOK, "Login successful", u)
}

// VerifyEmail handles GET /verify-email?token=.
func (h *Handler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		respondError(w, http.StatusBadRequest, "Verification token is required")
		return
	}

	u, err := h.auth.VerifyEmail(r.Context(), token)
	if err != nil {
		respondMappedError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, "Email verified successfully", u)
}

type emailRequest struct {
	Email string `json:"email"`
}

// ResendVerification handles POST /resend-verification.
func (h *Handler) ResendVerification(w http.ResponseWriter, r *http.Request) {
	var req emailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validator.Apply(validator.ValidEmail("email", sanitizer.NormalizeEmail(req.Email))); err != nil {
		respondMappedError(w, err)
		return
	}

	if err := h.auth.ResendVerification(r.Context(), req.Email); err != nil {
		respondMappedError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, "Verification email sent", nil)
}

// ForgotPassword handles POST /forgot-password. The response is identical
// whether or not the email belongs to an account.
func (h *Handler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req emailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validator.Apply(validator.ValidEmail("email", sanitizer.NormalizeEmail(req.Email))); err != nil {
		respondMappedError(w, err)
		return
	}

	if err := h.auth.ForgotPassword(r.Context(), req.Email); err != nil {
		respondMappedError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, "If an account with that email exists, a password reset link has been sent", nil)
}

type resetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// ResetPassword handles POST /reset-password.
func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Token == "" {
		respondError(w, http.StatusBadRequest, "Reset token is required")
		return
	}
	if err := validator.Apply(validator.StrongPassword("password", req.Password)); err != nil {
		respondMappedError(w, err)
		return
	}

	if _, err := h.auth.ResetPassword(r.Context(), req.Token, req.Password); err != nil {
		respondMappedError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, "Password reset successfully", nil)
}

// Profile handles GET /profile. RequireAuth guarantees a user in context.
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	u := session.GetUser(r.Context())
	if u == nil {
		respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}
	respondSuccess(w, http.StatusOK, "", u)
}

// UpdateProfile handles PATCH /profile. Only username and email may change;
// any other field in the body rejects the whole request without mutating
// the record.
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	current := session.GetUser(r.Context())
	if current == nil {
		respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	upd := auth.ProfileUpdate{}
	var rules []validator.Rule
	for field, value := range raw {
		switch field {
		case "username":
			var username string
			if err := json.Unmarshal(value, &username); err != nil {
				respondError(w, http.StatusBadRequest, "Invalid request body")
				return
			}
			username = sanitizer.NormalizeUsername(username)
			rules = append(rules, validator.ValidUsername("username", username))
			upd.Username = &username
		case "email":
			var emailAddr string
			if err := json.Unmarshal(value, &emailAddr); err != nil {
				respondError(w, http.StatusBadRequest, "Invalid request body")
				return
			}
			emailAddr = sanitizer.NormalizeEmail(emailAddr)
			rules = append(rules, validator.ValidEmail("email", emailAddr))
			upd.Email = &emailAddr
		default:
			respondMappedError(w, auth.ErrInvalidField)
			return
		}
	}

	if err := validator.Apply(rules...); err != nil {
		respondMappedError(w, err)
		return
	}

	u, err := h.auth.UpdateProfile(r.Context(), current.ID, upd)
	if err != nil {
		respondMappedError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, "Profile updated", u)
}

// Logout handles POST /logout. Sessions are stateless, so logout is cookie
// clearing only; the credential stays formally valid until it expires.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.ClearCookie(w)
	respondSuccess(w, http.StatusOK, "Logged out", nil)
}

// GoogleBegin handles GET /auth/google.
func (h *Handler) GoogleBegin(w http.ResponseWriter, r *http.Request) {
	url, err := h.oauth.BeginURL(r.Context())
	if err != nil {
		h.log.ErrorContext(r.Context(), "begin oauth flow", slog.Any("error", err))
		http.Redirect(w, r, h.frontendURL+"/?error=google-auth-failed", http.StatusTemporaryRedirect)
		return
	}
	http.Redirect(w, r, url, http.StatusTemporaryRedirect)
}

// GoogleCallback handles GET /auth/google/callback. On success the session
// cookie is set and the browser goes back to the frontend; every failure
// redirects with a generic error marker.
func (h *Handler) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	state := r.URL.Query().Get("state")

	u, err := h.oauth.Callback(r.Context(), code, state)
	if err != nil {
		h.log.WarnContext(r.Context(), "oauth callback failed", slog.Any("error", err))
		http.Redirect(w, r, h.frontendURL+"/?error=google-auth-failed", http.StatusTemporaryRedirect)
		return
	}

	credential, err := h.sessions.Issue(u.ID)
	if err != nil {
		h.log.ErrorContext(r.Context(), "issue session", slog.Any("error", err))
		http.Redirect(w, r, h.frontendURL+"/?error=google-auth-failed", http.StatusTemporaryRedirect)
		return
	}
	h.sessions.SetCookie(w, credential)

	http.Redirect(w, r, h.frontendURL+"/?success=google-auth-success", http.StatusTemporaryRedirect)
}
