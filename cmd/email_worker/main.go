package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-task-tracker/config"
	"github.com/oksasatya/go-task-tracker/pkg/helpers"
	"github.com/oksasatya/go-task-tracker/pkg/mailer"
)

func main() {
	_ = godotenv.Load()
	cfg, err := config.LoadWorker()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := helpers.NewLogger(cfg.AppName+"-email-worker", cfg.Env)

	if !cfg.MailSendEnabled {
		logger.Info("MAIL_SEND_ENABLED=false; email worker disabled (no real emails will be sent)")
		return
	}
	if err := cfg.Ready(); err != nil {
		logger.WithError(err).Fatal("email worker misconfigured")
	}

	consumer, err := helpers.NewRabbitConsumer(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue, cfg.RabbitMQPrefetch)
	if err != nil {
		logger.WithError(err).Fatal("rabbitmq connect")
	}
	defer consumer.Close()

	msgs, err := consumer.Deliveries()
	if err != nil {
		logger.WithError(err).Fatal("consume")
	}

	mg := mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender)
	ctx := context.Background()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		for msg := range msgs {
			c, cancel := context.WithTimeout(ctx, 15*time.Second)
			outcome, err := mailer.Process(c, msg.Body, mg)
			cancel()

			entry := logger.WithFields(logrus.Fields{"message_id": msg.MessageId})
			switch outcome {
			case mailer.Ack:
				_ = msg.Ack(false)
				entry.Info("email sent")
			case mailer.Drop:
				_ = msg.Nack(false, false)
				entry.WithError(err).Warn("dropping email job")
			case mailer.Retry:
				_ = msg.Nack(false, true)
				entry.WithError(err).Warn("email send failed; requeued")
			}
		}
		close(done)
	}()

	logger.Infof("email worker listening on queue=%s", cfg.RabbitMQEmailQueue)
	<-stop
	logger.Info("shutting down...")
	consumer.Close()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
	}
}
