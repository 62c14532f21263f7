package mailer

import (
	"context"
	"fmt"
	"time"

	mg "github.com/mailgun/mailgun-go/v4"
)

// Mailgun wraps Mailgun client configuration.
type Mailgun struct {
	Domain string
	APIKey string
	Sender string
}

func NewMailgun(domain, apiKey, sender string) *Mailgun {
	return &Mailgun{Domain: domain, APIKey: apiKey, Sender: sender}
}

// Send sends an email via Mailgun. html is optional; if provided it will be used as HTML body.
func (m *Mailgun) Send(ctx context.Context, to, subject, text, html string) error {
	client := mg.NewMailgun(m.Domain, m.APIKey)
	msg := client.NewMessage(m.Sender, subject, text, to)
	if html != "" {
		msg.SetHtml(html)
	}
	c, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	_, _, err := client.Send(c, msg)
	return err
}

// SendExportReady notifies a user that their PDF export can be downloaded.
func (m *Mailgun) SendExportReady(ctx context.Context, to, name, url string) error {
	subject := "Sua exportação está pronta"
	text := fmt.Sprintf("Olá %s,\n\nSua exportação de contas em PDF está pronta: %s\n", name, url)
	html := fmt.Sprintf(
		`<p>Olá %s,</p><p>Sua exportação de contas em PDF está pronta.</p><p><a href="%s">Baixar PDF</a></p>`,
		name, url)
	return m.Send(ctx, to, subject, text, html)
}
