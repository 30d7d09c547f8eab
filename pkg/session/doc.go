// Package session implements stateless session credentials: HS256-signed
// JWTs carrying the user id and a random per-issuance session identifier,
// transported in an http-only SameSite=Strict cookie. The server stores
// nothing; signature verification and expiry are the sole trust mechanism,
// and logout is client-side cookie clearing.
package session
