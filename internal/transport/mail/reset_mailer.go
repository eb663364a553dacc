package mail

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/smtp"
	"strings"
)

// ResetMailer sends the password-reset email over SMTP. The message carries
// the reset URL both as an HTML link and as a plain-text fallback.
type ResetMailer struct {
	host     string
	port     string
	username string
	password string
	from     string
}

func NewResetMailer(host, port, username, password, from string) *ResetMailer {
	return &ResetMailer{
		host:     strings.TrimSpace(host),
		port:     strings.TrimSpace(port),
		username: username,
		password: password,
		from:     strings.TrimSpace(from),
	}
}

func (m *ResetMailer) SendResetLink(ctx context.Context, email, resetURL string) error {
	if m == nil {
		return errors.New("mailer not configured")
	}
	if m.host == "" || m.port == "" || m.from == "" {
		return errors.New("mailer missing configuration")
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	boundary := "vigil-reset-alt"
	message := strings.Builder{}
	message.WriteString(fmt.Sprintf("From: %s\r\n", m.from))
	message.WriteString(fmt.Sprintf("To: %s\r\n", email))
	message.WriteString("Subject: Password Reset Requested\r\n")
	message.WriteString("MIME-Version: 1.0\r\n")
	message.WriteString(fmt.Sprintf("Content-Type: multipart/alternative; boundary=%s\r\n\r\n", boundary))

	message.WriteString(fmt.Sprintf("--%s\r\n", boundary))
	message.WriteString("Content-Type: text/plain; charset=UTF-8\r\n\r\n")
	message.WriteString("Visit the following URL to reset your password:\r\n\r\n")
	message.WriteString(resetURL)
	message.WriteString("\r\n\r\n")

	message.WriteString(fmt.Sprintf("--%s\r\n", boundary))
	message.WriteString("Content-Type: text/html; charset=UTF-8\r\n\r\n")
	message.WriteString("<p>Click the following link to reset your password:</p>\r\n")
	message.WriteString(fmt.Sprintf("<p><a href=%q>Reset Password</a></p>\r\n\r\n", resetURL))
	message.WriteString(fmt.Sprintf("--%s--\r\n", boundary))

	addr := net.JoinHostPort(m.host, m.port)
	var auth smtp.Auth
	if m.username != "" || m.password != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}

	return smtp.SendMail(addr, auth, m.from, []string{email}, []byte(message.String()))
}
