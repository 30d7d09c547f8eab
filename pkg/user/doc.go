// Package user defines the credential store contract and its two backends:
// a durable MongoDB store and an in-memory fallback selected at startup when
// the database is unreachable. Both enforce identical semantics, including
// email/username uniqueness and server-side token expiry filtering, so the
// auth flows stay backend-agnostic.
package user
