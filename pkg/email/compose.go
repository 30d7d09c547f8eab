package email

import (
	"fmt"
	"html/template"
	"net/url"
	"strings"
)

// Composer builds the transactional messages the auth flows send. Links
// point at the frontend, which exchanges the token against the API.
type Composer struct {
	appName     string
	frontendURL string
}

// NewComposer creates a message composer. frontendURL is the base URL of the
// web app, without a trailing slash.
func NewComposer(appName, frontendURL string) *Composer {
	return &Composer{
		appName:     appName,
		frontendURL: strings.TrimRight(frontendURL, "/"),
	}
}

var verificationTmpl = template.Must(template.New("verification").Parse(`<html>
<body style="font-family: sans-serif; max-width: 600px; margin: 0 auto;">
	<h2>Welcome to {{.AppName}}, {{.Username}}!</h2>
	<p>Confirm your email address to finish setting up your account.</p>
	<p><a href="{{.Link}}" style="display: inline-block; padding: 12px 24px; background: #2563eb; color: #fff; text-decoration: none; border-radius: 6px;">Verify email</a></p>
	<p>Or paste this link into your browser:</p>
	<p><a href="{{.Link}}">{{.Link}}</a></p>
	<p>If you did not create an account, you can safely ignore this email.</p>
</body>
</html>`))

var resetTmpl = template.Must(template.New("reset").Parse(`<html>
<body style="font-family: sans-serif; max-width: 600px; margin: 0 auto;">
	<h2>Reset your {{.AppName}} password</h2>
	<p>Hi {{.Username}},</p>
	<p>We received a request to reset the password for your account. The link below expires in one hour.</p>
	<p><a href="{{.Link}}" style="display: inline-block; padding: 12px 24px; background: #2563eb; color: #fff; text-decoration: none; border-radius: 6px;">Reset password</a></p>
	<p>Or paste this link into your browser:</p>
	<p><a href="{{.Link}}">{{.Link}}</a></p>
	<p>If you did not request a reset, you can safely ignore this email and your password will stay unchanged.</p>
</body>
</html>`))

type linkEmailData struct {
	AppName  string
	Username string
	Link     string
}

// Verification builds the email-confirmation message for a new signup.
func (c *Composer) Verification(sendTo, username, token string) (SendEmailParams, error) {
	link := fmt.Sprintf("%s/verify-email?token=%s", c.frontendURL, url.QueryEscape(token))
	body, err := renderTemplate(verificationTmpl, linkEmailData{AppName: c.appName, Username: username, Link: link})
	if err != nil {
		return SendEmailParams{}, err
	}
	return SendEmailParams{
		SendTo:   sendTo,
		Subject:  fmt.Sprintf("Verify your %s email address", c.appName),
		BodyHTML: body,
		Tag:      "email-verification",
	}, nil
}

// PasswordReset builds the reset-link message.
func (c *Composer) PasswordReset(sendTo, username, token string) (SendEmailParams, error) {
	link := fmt.Sprintf("%s/reset-password?token=%s", c.frontendURL, url.QueryEscape(token))
	body, err := renderTemplate(resetTmpl, linkEmailData{AppName: c.appName, Username: username, Link: link})
	if err != nil {
		return SendEmailParams{}, err
	}
	return SendEmailParams{
		SendTo:   sendTo,
		Subject:  fmt.Sprintf("Reset your %s password", c.appName),
		BodyHTML: body,
		Tag:      "password-reset",
	}, nil
}

func renderTemplate(tmpl *template.Template, data linkEmailData) (string, error) {
	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("%w: render template: %v", ErrFailedToSendEmail, err)
	}
	return sb.String(), nil
}
