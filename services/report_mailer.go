package services

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"log"
	"strings"

	"scopus-dashboard/config"
	"scopus-dashboard/utils"

	mail "github.com/go-mail/mail/v2"
)

// ReportEmail is an export bundle addressed to a list of recipients.
type ReportEmail struct {
	To        []string
	Subject   string
	Note      string
	KPIs      PublicationKPIs
	Artifacts []*ExportArtifact
	Warnings  []ExportWarning
}

// ReportMailer sends export bundles as attachments.
type ReportMailer struct {
	from string
	send func(*mail.Message) error
}

// NewReportMailer delivers through the configured SMTP server.
func NewReportMailer(settings config.MailSettings) *ReportMailer {
	if !settings.Configured() {
		return &ReportMailer{}
	}
	dialer := config.NewMailDialer(settings)
	return &ReportMailer{from: settings.From, send: func(m *mail.Message) error {
		return dialer.DialAndSend(m)
	}}
}

// NewReportMailerWithSender delivers through send instead of SMTP.
func NewReportMailerWithSender(from string, send func(*mail.Message) error) *ReportMailer {
	return &ReportMailer{from: from, send: send}
}

// Configured reports whether Send can deliver anything.
func (m *ReportMailer) Configured() bool {
	return m != nil && m.send != nil && m.from != ""
}

// Send validates the recipients, builds the message and delivers it.
func (m *ReportMailer) Send(ctx context.Context, email ReportEmail) error {
	if !m.Configured() {
		return ErrMailerNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	to, invalid := utils.NormalizeRecipients(email.To)
	if len(invalid) > 0 {
		return fmt.Errorf("%w: invalid recipient %s", ErrInvalidParameter, strings.Join(invalid, ", "))
	}
	if len(to) == 0 {
		return fmt.Errorf("%w: no recipients", ErrInvalidParameter)
	}
	email.To = to

	msg := m.BuildMessage(email)
	if err := m.send(msg); err != nil {
		return fmt.Errorf("send report mail: %w", err)
	}
	log.Printf("mail: sent %d attachment(s) to %d recipient(s)", len(email.Artifacts), len(to))
	return nil
}

// BuildMessage assembles the MIME message for email.
func (m *ReportMailer) BuildMessage(email ReportEmail) *mail.Message {
	subject := email.Subject
	if subject == "" {
		subject = DefaultReportTitle
	}

	msg := mail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", email.To...)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", reportMailBody(email))

	for _, a := range email.Artifacts {
		msg.AttachReader(a.FileName, bytes.NewReader(a.Data), mail.SetHeader(map[string][]string{
			"Content-Type": {a.ContentType},
		}))
	}
	return msg
}

func reportMailBody(email ReportEmail) string {
	var b strings.Builder
	b.WriteString("<p>Zh Scopus export</p>")
	if email.Note != "" {
		fmt.Fprintf(&b, "<p>%s</p>", html.EscapeString(email.Note))
	}
	b.WriteString("<ul>")
	fmt.Fprintf(&b, "<li>Publications: %s</li>", email.KPIs.Display.Total)
	fmt.Fprintf(&b, "<li>Citations: %s</li>", email.KPIs.Display.TotalCitations)
	fmt.Fprintf(&b, "<li>Mean percentile (2024): %s</li>", email.KPIs.Display.MeanPercentile)
	fmt.Fprintf(&b, "<li>Most frequent quartile: %s</li>", html.EscapeString(email.KPIs.Display.TopQuartile))
	b.WriteString("</ul>")
	for _, w := range email.Warnings {
		fmt.Fprintf(&b, "<p>%s export unavailable: %s</p>", strings.ToUpper(string(w.Format)), html.EscapeString(w.Message))
	}
	return b.String()
}
