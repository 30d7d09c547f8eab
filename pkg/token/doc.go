// Package token issues the opaque random tokens used for email verification
// and password reset. Tokens are 32 bytes from crypto/rand, hex-encoded,
// and carry a fixed expiry; they live on the user record until consumed.
package token
