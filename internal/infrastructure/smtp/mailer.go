package smtp

import (
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"github.com/pr1me-admin/internal/config"
)

// Mailer sends emails.
type Mailer interface {
	SendEmail(to, subject, body string) error
}

type mailer struct {
	host     string
	port     string
	from     string
	username string
	password string
}

func NewMailer(cfg *config.Config) Mailer {
	return &mailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		from:     cfg.SMTPFrom,
		username: cfg.SMTPUsername,
		password: cfg.SMTPPassword,
	}
}

func (m *mailer) SendEmail(to, subject, body string) error {
	addr := fmt.Sprintf("%s:%s", m.host, m.port)

	var auth smtp.Auth
	if m.username != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}

	return smtp.SendMail(addr, auth, m.from, []string{to}, buildMessage(m.from, to, subject, body, time.Now()))
}

// OTPMail renders the subject and body of a login code email.
func OTPMail(code string, ttl time.Duration) (subject, body string) {
	subject = "Your admin login code"
	body = fmt.Sprintf("Your one-time login code is %s.\r\nIt expires in %d minutes. If you did not try to sign in, ignore this email.",
		code, int(ttl.Round(time.Minute)/time.Minute))
	return subject, body
}

// buildMessage assembles an RFC 5322 message. Header values are stripped of
// line breaks so a crafted address cannot inject headers.
func buildMessage(from, to, subject, body string, now time.Time) []byte {
	clean := strings.NewReplacer("\r", "", "\n", "")
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", clean.Replace(from))
	fmt.Fprintf(&b, "To: %s\r\n", clean.Replace(to))
	fmt.Fprintf(&b, "Subject: %s\r\n", clean.Replace(subject))
	fmt.Fprintf(&b, "Date: %s\r\n", now.UTC().Format(time.RFC1123Z))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n\r\n")
	b.WriteString(body)
	return []byte(b.String())
}
