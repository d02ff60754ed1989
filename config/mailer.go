package config

import (
	"crypto/tls"

	mail "github.com/go-mail/mail/v2"
)

type MailSettings struct {
	Host          string `yaml:"host"`
	Port          int    `yaml:"port"`
	User          string `yaml:"user"`
	Password      string `yaml:"password"`
	From          string `yaml:"from"` // e.g. "Zh Scopus <no-reply@your.org>"
	SkipTLSVerify bool   `yaml:"skip_tls_verify"`
}

// Configured reports whether mail can be sent at all.
func (m MailSettings) Configured() bool {
	return m.Host != "" && m.From != ""
}

// NewMailDialer builds an SMTP dialer that insists on STARTTLS.
func NewMailDialer(m MailSettings) *mail.Dialer {
	port := m.Port
	if port == 0 {
		port = 587
	}
	d := mail.NewDialer(m.Host, port, m.User, m.Password)

	// STARTTLS is mandatory on 587 (Gmail/Office365)
	d.StartTLSPolicy = mail.MandatoryStartTLS

	// ServerName must match the SMTP hostname unless verification is skipped
	d.TLSConfig = &tls.Config{
		ServerName:         m.Host,
		InsecureSkipVerify: m.SkipTLSVerify, // dev only
	}
	return d
}
