package user

import (
	"time"
)

// User represents a registered account. PasswordHash and the pending token
// fields never leave the store layer except through this struct; HTTP
// responses are built from Public() so they cannot leak.
type User struct {
	ID           string `bson:"_id"`
	Username     string `bson:"username"`
	Email        string `bson:"email"`
	PasswordHash string `bson:"password_hash"`
	IsVerified   bool   `bson:"is_verified"`

	// Present only while email verification is pending.
	VerificationToken   string     `bson:"verification_token,omitempty"`
	VerificationExpires *time.Time `bson:"verification_expires,omitempty"`

	// Present only while a password reset is pending.
	ResetToken   string     `bson:"reset_token,omitempty"`
	ResetExpires *time.Time `bson:"reset_expires,omitempty"`

	CreatedAt time.Time `bson:"created_at"`
}

// Public is the externally visible projection of a User. It deliberately
// omits the password hash and all token material.
type Public struct {
	ID         string    `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	IsVerified bool      `json:"isVerified"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Public returns the response-safe projection of the user.
func (u *User) Public() Public {
	return Public{
		ID:         u.ID,
		Username:   u.Username,
		Email:      u.Email,
		IsVerified: u.IsVerified,
		CreatedAt:  u.CreatedAt,
	}
}

// SetVerificationToken marks the user as pending email verification.
func (u *User) SetVerificationToken(token string, expires time.Time) {
	u.VerificationToken = token
	u.VerificationExpires = &expires
}

// ClearVerificationToken removes pending verification state.
func (u *User) ClearVerificationToken() {
	u.VerificationToken = ""
	u.VerificationExpires = nil
}

// SetResetToken marks the user as pending a password reset.
func (u *User) SetResetToken(token string, expires time.Time) {
	u.ResetToken = token
	u.ResetExpires = &expires
}

// ClearResetToken removes pending reset state.
func (u *User) ClearResetToken() {
	u.ResetToken = ""
	u.ResetExpires = nil
}
