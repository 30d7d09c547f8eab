package auth

import "errors"

var (
	// ErrInvalidCredentials is returned for every login failure: unknown
	// email, wrong password, and unverified account all collapse into this
	// one error so responses cannot be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("auth: invalid credentials")

	// ErrInvalidToken is returned when a verification or reset token does
	// not match an unexpired pending token.
	ErrInvalidToken = errors.New("auth: invalid or expired token")

	// ErrAlreadyVerified is returned when resending verification for an
	// account that is already verified.
	ErrAlreadyVerified = errors.New("auth: email already verified")

	// ErrInvalidField is returned when a profile update touches a field
	// outside the allowed set.
	ErrInvalidField = errors.New("auth: field cannot be updated")

	// ErrInvalidState is returned when an OAuth callback carries a state
	// value that is unknown, expired, or already used.
	ErrInvalidState = errors.New("auth: invalid or expired oauth state")

	// ErrInvalidCode is returned when the provider rejects the
	// authorization code exchange.
	ErrInvalidCode = errors.New("auth: invalid authorization code")

	// ErrProvider is returned when the identity provider fails or returns
	// an unusable profile.
	ErrProvider = errors.New("auth: identity provider error")
)
