package notify

import (
	"context"
	"fmt"

	"github.com/oksasatya/budget-ledger-api/internal/application"
	"github.com/oksasatya/budget-ledger-api/pkg/mailer"
	mailtpl "github.com/oksasatya/budget-ledger-api/pkg/mailer/templates"
)

// Publisher is satisfied by helpers.RabbitPublisher.
type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// QueueNotifier turns notifications into email jobs on the mail queue.
type QueueNotifier struct {
	pub      Publisher
	branding mailtpl.Branding
}

func NewQueueNotifier(pub Publisher, branding mailtpl.Branding) *QueueNotifier {
	return &QueueNotifier{pub: pub, branding: branding}
}

func (q *QueueNotifier) Notify(ctx context.Context, n application.Notification) error {
	if !mailtpl.Known(n.Kind) {
		return fmt.Errorf("no email template for notification %q", n.Kind)
	}
	opts := []mailtpl.Option{mailtpl.WithTime(n.At)}
	if n.UserAgent != "" {
		opts = append(opts, mailtpl.WithUserAgent(n.UserAgent))
	}
	if n.IP != "" {
		opts = append(opts, mailtpl.WithIP(n.IP))
	}
	if len(n.Changes) > 0 {
		opts = append(opts, mailtpl.WithChanges(n.Changes))
	}
	data := mailtpl.NewEmailData(q.branding, n.Kind, n.Name, n.Email, opts...)

	return q.pub.PublishJSON(ctx, mailer.EmailJob{
		To:       n.Email,
		Template: n.Kind,
		Data:     mailtpl.ToMap(data),
	})
}

var _ application.Notifier = (*QueueNotifier)(nil)
