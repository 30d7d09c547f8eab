// Package password wraps bcrypt hashing for stored credentials with a cost
// factor tuned for offline brute-force resistance.
package password
