// Package email delivers the transactional messages the auth flows depend
// on: email verification on signup and password reset links.
//
// EmailSender is the delivery interface. Two implementations ship with the
// package: a Postmark client for production and DevSender, which writes
// messages to disk for local development so links can be opened without a
// provider account.
//
// Composer builds the message bodies. Links always point at the frontend
// app, which exchanges the embedded token against the API:
//
//	composer := email.NewComposer("Roamly", "https://app.roamly.example")
//	msg, err := composer.Verification("user@example.com", "traveler", token)
//	if err != nil {
//		return err
//	}
//	return sender.SendEmail(ctx, msg)
package email
