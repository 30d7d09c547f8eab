// Package auth implements the credential lifecycle behind the user-facing
// endpoints: registration with email verification, login, password reset,
// profile updates, and federated sign-in through an OAuth provider.
//
// # Flows
//
// Service owns the password-based flows. Accounts start unverified; a
// 24-hour verification token is issued at registration and exchanged once
// through VerifyEmail. Login only succeeds against a verified account.
// ForgotPassword issues a 1-hour reset token and behaves identically
// whether or not the email belongs to an account, and Login collapses
// unknown email, unverified account, and wrong password into the single
// ErrInvalidCredentials. Both are deliberate: responses from these
// endpoints must not reveal which emails are registered.
//
// OAuthService owns federated sign-in. BeginURL issues a one-time state
// value (CSRF protection, 10 minute TTL by default) and returns the
// provider authorization URL; Callback consumes the state, resolves the
// provider profile, and finds or creates the local account. Accounts
// created this way are verified immediately and carry a random placeholder
// password, so password login stays formally possible but not practically
// usable.
//
// # Collaborators
//
// The package depends on abstractions only: user.Store for persistence,
// password.Hasher for bcrypt, token.Issuer for verification/reset tokens,
// email.EmailSender plus email.Composer for outbound mail, and a
// ProviderAdapter per OAuth provider (Google ships with the package).
// Session issuance and cookies are the HTTP layer's concern.
//
// Email delivery is fire-and-forget once the user record is committed:
// failures are logged, the operation still succeeds, and the user can ask
// for a resend.
package auth
