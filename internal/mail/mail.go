package mail

import (
	"context"
	"errors"
	"fmt"
	"html"
	"net"
	"net/smtp"
	"strconv"
	"strings"

	"cvmaker-backend/internal/shared/telemetry"
)

// Message is a single HTML email.
type Message struct {
	To      string
	Subject string
	HTML    string
}

// Sender delivers outbound email.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// SMTPConfig holds the relay settings.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type sendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPSender sends mail through an SMTP relay with PLAIN auth over STARTTLS.
type SMTPSender struct {
	cfg      SMTPConfig
	sendMail sendMailFunc
}

// NewSMTPSender validates cfg and builds an SMTPSender.
func NewSMTPSender(cfg SMTPConfig) (*SMTPSender, error) {
	if strings.TrimSpace(cfg.Host) == "" {
		return nil, errors.New("SMTP_HOST is required")
	}
	if strings.TrimSpace(cfg.From) == "" {
		return nil, errors.New("MAIL_FROM is required")
	}
	if cfg.Port <= 0 {
		cfg.Port = 587
	}
	return &SMTPSender{cfg: cfg, sendMail: smtp.SendMail}, nil
}

// Send delivers msg. net/smtp has no context support, so ctx is only checked up front.
func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(msg.To) == "" {
		return errors.New("recipient is required")
	}
	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}
	addr := net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))
	if err := s.sendMail(addr, auth, s.cfg.From, []string{msg.To}, s.render(msg)); err != nil {
		return fmt.Errorf("smtp send to %s: %w", msg.To, err)
	}
	telemetry.Info("mail.sent", map[string]any{"to": msg.To, "subject": msg.Subject})
	return nil
}

func (s *SMTPSender) render(msg Message) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: \"CV Maker\" <%s>\r\n", s.cfg.From)
	fmt.Fprintf(&b, "To: %s\r\n", msg.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n\r\n")
	b.WriteString(msg.HTML)
	return []byte(b.String())
}

// LogSender writes messages to the log instead of sending them. Used when
// SMTP is not configured.
type LogSender struct{}

func (LogSender) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	telemetry.Info("mail.logged", map[string]any{"to": msg.To, "subject": msg.Subject, "html": msg.HTML})
	return nil
}

// PasswordReset builds the reset email carrying link.
func PasswordReset(to, firstName, link string) Message {
	safeLink := html.EscapeString(link)
	return Message{
		To:      to,
		Subject: "Password Reset Request",
		HTML: fmt.Sprintf(`<h3>Password Reset</h3>
<p>Hello %s,</p>
<p>You requested a password reset. Click the link below to set a new password:</p>
<a href="%s" target="_blank">%s</a>
<p>This link will expire in 1 hour.</p>`, html.EscapeString(firstName), safeLink, safeLink),
	}
}
