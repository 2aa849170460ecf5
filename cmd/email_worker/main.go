package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/oksasatya/budget-ledger-api/config"
	"github.com/oksasatya/budget-ledger-api/pkg/helpers"
	"github.com/oksasatya/budget-ledger-api/pkg/mailer"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.Component(helpers.NewLogger(cfg.AppName, cfg.Env), "email_worker")

	if cfg.RabbitMQURL == "" || cfg.RabbitMQEmailQueue == "" {
		logger.Fatal("RabbitMQ not configured")
	}

	var sender mailer.Sender = mailer.LogSender{Logger: logger}
	if cfg.MailSendEnabled {
		if cfg.MailgunDomain == "" || cfg.MailgunAPIKey == "" || cfg.MailgunSender == "" {
			logger.Fatal("Mailgun not configured")
		}
		sender = mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender)
	} else {
		logger.Warn("MAIL_SEND_ENABLED=false; jobs are logged, not sent")
	}

	consumer, err := helpers.NewRabbitConsumer(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue, 16)
	if err != nil {
		logger.WithError(err).Fatal("amqp connect")
	}
	defer consumer.Close()

	msgs, err := consumer.Deliveries()
	if err != nil {
		logger.WithError(err).Fatal("consume")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})

	go func() {
		defer close(done)
		for msg := range msgs {
			switch mailer.Process(ctx, sender, msg.Body, logger) {
			case mailer.Ack:
				_ = msg.Ack(false)
			case mailer.Drop:
				_ = msg.Nack(false, false)
			case mailer.Retry:
				_ = msg.Nack(false, true)
			}
		}
	}()

	logger.WithField("queue", cfg.RabbitMQEmailQueue).Info("email worker listening")

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	logger.Info("shutting down...")
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
	}
}
