// Package users exposes the authentication HTTP surface: registration,
// email verification, login, password reset, profile management, and the
// Google sign-in redirect flow.
//
// Responses use one JSON envelope throughout: successes carry
// {success: true, message?, user?} with the user's public projection, and
// failures carry {success: false, error: {message}}. Password hashes and
// token material never appear in responses.
//
// The router wires three per-IP rate limit policies (login, registration,
// general API) and the session middleware. Profile routes require a valid
// session cookie and answer 401 otherwise.
package users
