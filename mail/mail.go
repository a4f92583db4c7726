// Package mail delivers the account emails. The orchestration layer only
// sees the Sender interface; retry and pacing policy live here.
package mail

import (
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"github.com/jpillora/backoff"
	"github.com/moneta-labs/security-api/configs"
	log "github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"
)

// Sender delivers a rendered email to a recipient.
type Sender interface {
	Send(to string, e Email) error
}

const smtpSendAttempts = 3

// SMTPSender delivers mail over SMTP. Outbound messages are rate limited and
// transient failures are retried with exponential backoff.
type SMTPSender struct {
	addr string
	from string
	auth smtp.Auth
	rl   ratelimit.Limiter
}

func NewSMTPSender(cfg *configs.Config) *SMTPSender {
	var auth smtp.Auth
	if cfg.SMTPUser != "" {
		auth = smtp.PlainAuth("", cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPHost)
	}

	rl := ratelimit.NewUnlimited()
	if cfg.MailMaxSendRate > 0 {
		rl = ratelimit.New(cfg.MailMaxSendRate)
	}

	return &SMTPSender{
		addr: fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
		from: cfg.MailFrom,
		auth: auth,
		rl:   rl,
	}
}

func (s *SMTPSender) Send(to string, e Email) error {
	s.rl.Take()

	msg := message(s.from, to, e)

	b := &backoff.Backoff{
		Min:    100 * time.Millisecond,
		Max:    5 * time.Second,
		Factor: 2,
		Jitter: true,
	}

	var err error
	for i := 0; i < smtpSendAttempts; i++ {
		err = smtp.SendMail(s.addr, s.auth, s.from, []string{to}, msg)
		if err == nil {
			return nil
		}
		if i == smtpSendAttempts-1 {
			break
		}
		d := b.Duration()
		log.
			WithFields(log.Fields{"to": to, "error": err, "retryIn": d}).
			Warn("Email delivery failed")
		time.Sleep(d)
	}

	return fmt.Errorf("error while sending email to %s: %w", to, err)
}

func message(from, to string, e Email) []byte {
	headers := []string{
		fmt.Sprintf("From: %s", from),
		fmt.Sprintf("To: %s", to),
		fmt.Sprintf("Subject: %s", e.Subject),
		"MIME-Version: 1.0",
		`Content-Type: text/html; charset="UTF-8"`,
	}
	return []byte(strings.Join(headers, "\r\n") + "\r\n\r\n" + e.HTML)
}

// LogSender logs messages instead of delivering them. It is used when no
// SMTP host is configured, and in tests.
type LogSender struct{}

func (LogSender) Send(to string, e Email) error {
	log.
		WithFields(log.Fields{"to": to, "subject": e.Subject}).
		Info("Email delivery skipped, no SMTP host configured")
	return nil
}

// NewSender returns an SMTP backed sender, or a log only sender when no SMTP
// host is configured.
func NewSender(cfg *configs.Config) Sender {
	if cfg.SMTPHost == "" {
		return LogSender{}
	}
	return NewSMTPSender(cfg)
}
