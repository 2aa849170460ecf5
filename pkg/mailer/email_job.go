package mailer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	mailtpl "github.com/oksasatya/budget-ledger-api/pkg/mailer/templates"
)

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// Either Template+Data or Subject+Text(+HTML) must be set.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"` // welcome, login_notification, profile_updated
	Data     map[string]any `json:"data,omitempty"`
}

// Sender delivers a rendered message.
type Sender interface {
	Send(ctx context.Context, to, subject, text, html string) error
}

// ErrPermanent marks jobs that will never succeed and must not be requeued.
var ErrPermanent = errors.New("permanent email job failure")

// Render resolves the template, if any, into subject/text/html.
func (j *EmailJob) Render() (subject, text, html string, err error) {
	if strings.TrimSpace(j.To) == "" {
		return "", "", "", fmt.Errorf("%w: missing recipient", ErrPermanent)
	}
	if j.Template == "" {
		if j.Subject == "" || (j.Text == "" && j.HTML == "") {
			return "", "", "", fmt.Errorf("%w: empty message", ErrPermanent)
		}
		return j.Subject, j.Text, j.HTML, nil
	}
	name := strings.ToLower(j.Template)
	if !mailtpl.Known(name) {
		return "", "", "", fmt.Errorf("%w: unknown template %q", ErrPermanent, j.Template)
	}
	if j.Data == nil {
		j.Data = map[string]any{}
	}
	if v, ok := j.Data["RecipientEmail"]; !ok || fmt.Sprintf("%v", v) == "" {
		j.Data["RecipientEmail"] = j.To
	}
	subject, text, html, err = mailtpl.Render(name, j.Data)
	if err != nil {
		return "", "", "", fmt.Errorf("%w: %v", ErrPermanent, err)
	}
	return subject, text, html, nil
}

// Deliver renders the job and hands it to s.
func Deliver(ctx context.Context, s Sender, j *EmailJob) error {
	subject, text, html, err := j.Render()
	if err != nil {
		return err
	}
	return s.Send(ctx, j.To, subject, text, html)
}
