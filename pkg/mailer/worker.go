package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
)

// Outcome tells the consumer what to do with a delivery.
type Outcome int

const (
	Ack Outcome = iota
	// Drop discards a job that can never succeed.
	Drop
	// Retry requeues a job after a transient send failure.
	Retry
)

const sendTimeout = 15 * time.Second

// Process decodes one queue message and delivers it.
func Process(ctx context.Context, s Sender, body []byte, logger logrus.FieldLogger) Outcome {
	var job EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		logger.WithError(err).Warn("bad email job payload")
		return Drop
	}
	log := logger.WithField("template", job.Template)

	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()
	err := Deliver(ctx, s, &job)
	switch {
	case err == nil:
		log.Debug("email sent")
		return Ack
	case errors.Is(err, ErrPermanent):
		log.WithError(err).Warn("email job dropped")
		return Drop
	default:
		log.WithError(err).Error("email send failed")
		return Retry
	}
}

// LogSender stands in for a real sender when sending is disabled.
type LogSender struct {
	Logger logrus.FieldLogger
}

func (l LogSender) Send(_ context.Context, to, subject, _, _ string) error {
	l.Logger.WithFields(logrus.Fields{"to": to, "subject": subject}).Info("email send disabled; message logged only")
	return nil
}
