package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"roombook/config"
	"roombook/infras/kafka"
	"roombook/internal/mailer"
	"roombook/internal/worker"
	"roombook/shared/logger"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := kafka.New(cfg)

	mail, err := mailer.New(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize mailer")
	}

	log.Info().Str("group", cfg.Kafka.ConsumerGroup).Msg("Starting notification worker")

	worker.NewConsumer(client, mail, cfg.Kafka.ConsumerGroup).Run(ctx)

	log.Info().Msg("Notification worker stopped")
}
