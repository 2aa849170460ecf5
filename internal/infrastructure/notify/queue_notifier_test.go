package notify

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/budget-ledger-api/internal/application"
	"github.com/oksasatya/budget-ledger-api/pkg/mailer"
	mailtpl "github.com/oksasatya/budget-ledger-api/pkg/mailer/templates"
)

type capturePublisher struct{ bodies []any }

func (c *capturePublisher) PublishJSON(_ context.Context, body any) error {
	c.bodies = append(c.bodies, body)
	return nil
}

func TestNotifyPublishesTemplateJob(t *testing.T) {
	pub := &capturePublisher{}
	n := NewQueueNotifier(pub, mailtplBranding())

	err := n.Notify(context.Background(), application.Notification{
		Kind:      application.NotifyLogin,
		Name:      "Ann",
		Email:     "ann@x.com",
		UserAgent: "curl/8",
		At:        time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Len(t, pub.bodies, 1)

	job, ok := pub.bodies[0].(mailer.EmailJob)
	require.True(t, ok)
	assert.Equal(t, "ann@x.com", job.To)
	assert.Equal(t, "login_notification", job.Template)
	assert.Equal(t, "curl/8", job.Data["UserAgent"])

	_, _, _, err = job.Render()
	assert.NoError(t, err)
}

func TestNotifyRejectsUnknownKind(t *testing.T) {
	pub := &capturePublisher{}
	err := NewQueueNotifier(pub, mailtplBranding()).Notify(context.Background(), application.Notification{Kind: "sms"})
	assert.Error(t, err)
	assert.Empty(t, pub.bodies)
}

func mailtplBranding() mailtpl.Branding { return mailtpl.Branding{AppName: "Ledger", CompanyName: "Ledger Co"} }
