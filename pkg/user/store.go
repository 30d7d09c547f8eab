package user

import "context"

// Store is the credential store contract. Both backends satisfy identical
// semantics so callers never depend on the concrete implementation:
//
//   - email and username are unique across all records; violations return
//     ErrDuplicate
//   - token lookups filter expiry inside the store, so an expired token
//     behaves exactly like a missing one
type Store interface {
	// Create persists a new user. The caller assigns the ID.
	Create(ctx context.Context, u *User) error

	// Save replaces the stored record for u.ID.
	Save(ctx context.Context, u *User) error

	// ByID returns the user with the given id or ErrNotFound.
	ByID(ctx context.Context, id string) (*User, error)

	// ByEmail returns the user with the given normalized email or ErrNotFound.
	ByEmail(ctx context.Context, email string) (*User, error)

	// ByVerificationToken returns the user holding an unexpired verification
	// token or ErrNotFound.
	ByVerificationToken(ctx context.Context, token string) (*User, error)

	// ByResetToken returns the user holding an unexpired reset token or
	// ErrNotFound.
	ByResetToken(ctx context.Context, token string) (*User, error)
}
