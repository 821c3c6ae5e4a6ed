// Package mail sends best-effort alert e-mails, used when the remote
// backup sync fails. It is a side channel: callers log a send failure and
// move on.
package mail

import (
	"errors"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/shazib/mftracker/config"
)

// ErrNotConfigured is returned when the SMTP settings are absent.
var ErrNotConfigured = errors.New("mail: SMTP is not configured")

// Service sends plain-text mail through the configured SMTP relay.
type Service struct {
	cfg *config.Config
}

// New returns a mail service over the given configuration.
func New(cfg *config.Config) *Service { return &Service{cfg: cfg} }

// Send delivers a plain-text message to the configured alert address.
func (s *Service) Send(subject, body string) error {
	cfg := s.cfg
	if cfg.SMTPServer == "" || cfg.SMTPUser == "" || cfg.AlertTo == "" {
		return ErrNotConfigured
	}
	msg := strings.Join([]string{
		"From: " + cfg.SMTPUser,
		"To: " + cfg.AlertTo,
		"Subject: " + subject,
		"",
		body,
	}, "\r\n")
	addr := fmt.Sprintf("%s:%s", cfg.SMTPServer, cfg.SMTPPort)
	auth := smtp.PlainAuth("", cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPServer)
	return smtp.SendMail(addr, auth, cfg.SMTPUser, []string{cfg.AlertTo}, []byte(msg))
}
