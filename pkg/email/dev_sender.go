package email

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// DevSender implements EmailSender for local development. Instead of hitting
// a provider it writes each message as an HTML file to a directory and logs
// the delivery, so verification and reset links can be clicked straight from
// disk.
type DevSender struct {
	dir string
	log *slog.Logger
}

// NewDevSender creates a development email sender that saves emails to dir.
// The directory is created on first send if it does not exist.
func NewDevSender(dir string, log *slog.Logger) EmailSender {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &DevSender{dir: dir, log: log}
}

// SendEmail writes the message body to a timestamped HTML file.
func (d *DevSender) SendEmail(ctx context.Context, params SendEmailParams) error {
	if err := params.Validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return fmt.Errorf("%w: failed to create directory: %v", ErrFailedToSendEmail, err)
	}

	name := params.Tag
	if name == "" {
		name = params.Subject
	}
	filename := fmt.Sprintf("%s_%s.html", time.Now().Format("2006_01_02_150405"), sanitizeFilename(name))

	path := filepath.Join(d.dir, filename)
	if err := os.WriteFile(path, []byte(params.BodyHTML), 0o644); err != nil {
		return fmt.Errorf("%w: failed to write file: %v", ErrFailedToSendEmail, err)
	}

	d.log.InfoContext(ctx, "email written to disk",
		slog.String("to", params.SendTo),
		slog.String("subject", params.Subject),
		slog.String("path", path),
	)
	return nil
}

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9\-_.]`)

func sanitizeFilename(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = unsafeFilenameChars.ReplaceAllString(s, "")
	const maxLength = 100
	if len(s) > maxLength {
		s = s[:maxLength]
	}
	if s == "" {
		s = "email"
	}
	return strings.ToLower(s)
}
