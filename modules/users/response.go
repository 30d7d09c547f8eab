package users

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/roamly/auth-service/pkg/auth"
	"github.com/roamly/auth-service/pkg/user"
	"github.com/roamly/auth-service/pkg/validator"
)

// successResponse is the envelope for successful operations.
type successResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	User    *user.Public `json:"user,omitempty"`
}

type errorBody struct {
	Message string `json:"message"`
}

// errorResponse is the envelope for failed operations.
type errorResponse struct {
	Success bool      `json:"success"`
	Error   errorBody `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func respondSuccess(w http.ResponseWriter, status int, message string, u *user.User) {
	resp := successResponse{Success: true, Message: message}
	if u != nil {
		public := u.Public()
		resp.User = &public
	}
	respondJSON(w, status, resp)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{Success: false, Error: errorBody{Message: message}})
}

// respondMappedError translates domain errors into the response envelope.
// Anything unrecognized becomes a 500 with a generic message so internals
// never leak.
func respondMappedError(w http.ResponseWriter, err error) {
	if ve := validator.ExtractValidationErrors(err); ve != nil {
		var parts []string
		for _, e := range ve {
			parts = append(parts, e.Field+" "+e.Message)
		}
		respondError(w, http.StatusBadRequest, strings.Join(parts, "; "))
		return
	}

	switch {
	case errors.Is(err, user.ErrDuplicate):
		respondError(w, http.StatusBadRequest, "Email or username already in use")
	case errors.Is(err, user.ErrNotFound):
		respondError(w, http.StatusNotFound, "User not found")
	case errors.Is(err, auth.ErrInvalidCredentials):
		respondError(w, http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, auth.ErrInvalidToken):
		respondError(w, http.StatusBadRequest, "Invalid or expired token")
	case errors.Is(err, auth.ErrAlreadyVerified):
		respondError(w, http.StatusBadRequest, "Email is already verified")
	case errors.Is(err, auth.ErrInvalidField):
		respondError(w, http.StatusBadRequest, "Only username and email can be updated")
	default:
		respondError(w, http.StatusInternalServerError, "Internal server error")
	}
}
