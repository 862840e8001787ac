package contact

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/aymerick/raymond"
	"github.com/mailgun/mailgun-go/v4"
)

// Notifier is told about every accepted submission.
type Notifier interface {
	Notify(ctx context.Context, s Submission) error
}

// MailgunConfig holds the Mailgun settings for owner notifications.
type MailgunConfig struct {
	Domain string `env:"DOMAIN"`
	APIKey string `env:"API_KEY"`
	From   string `env:"FROM"`
	To     string `env:"TO"`
}

// Configured reports whether enough is set to send mail.
func (c MailgunConfig) Configured() bool {
	return c.Domain != "" && c.APIKey != "" && c.From != "" && c.To != ""
}

var (
	subjectTpl = raymond.MustParse(`New contact form submission: {{{subject}}}`)
	bodyTpl    = raymond.MustParse(`You have a new message from {{{name}}} <{{{email}}}>.

Subject: {{{subject}}}
Received: {{received}}

{{{message}}}

--
Submission id: {{id}}
{{#if ip}}Sender IP: {{ip}}
{{/if}}`)
)

// RenderNotification returns the subject and plain-text body of the mail
// sent for s.
func RenderNotification(s Submission) (subject, body string, err error) {
	ctx := map[string]any{
		"id":       s.ID,
		"name":     s.Name,
		"email":    s.Email,
		"subject":  s.Subject,
		"message":  s.Message,
		"received": s.Time().UTC().Format(time.RFC1123),
		"ip":       s.IPAddress,
	}
	if subject, err = subjectTpl.Exec(ctx); err != nil {
		return "", "", fmt.Errorf("contact: render subject: %w", err)
	}
	if body, err = bodyTpl.Exec(ctx); err != nil {
		return "", "", fmt.Errorf("contact: render body: %w", err)
	}
	return subject, body, nil
}

// MailgunNotifier mails the site owner through Mailgun.
type MailgunNotifier struct {
	cfg    MailgunConfig
	client *mailgun.MailgunImpl
}

// NewMailgunNotifier returns nil when cfg is not fully configured.
func NewMailgunNotifier(cfg MailgunConfig) *MailgunNotifier {
	if !cfg.Configured() {
		return nil
	}
	return &MailgunNotifier{cfg: cfg, client: mailgun.NewMailgun(cfg.Domain, cfg.APIKey)}
}

func (n *MailgunNotifier) Notify(ctx context.Context, s Submission) error {
	subject, body, err := RenderNotification(s)
	if err != nil {
		return err
	}
	msg := n.client.NewMessage(n.cfg.From, subject, body, n.cfg.To)
	msg.SetReplyTo(s.Email)

	sendCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	_, id, err := n.client.Send(sendCtx, msg)
	if err != nil {
		return fmt.Errorf("contact: mailgun send: %w", err)
	}
	log.Printf("contact: notification for %s sent (%s)", s.ID, id)
	return nil
}
