package main

import (
	"context"
	"os/signal"
	"sync"
	"syscall"

	"airlock/internal/bookings/events"
	"airlock/internal/notifier"
	"airlock/pkg/kafka"
	kafka_config "airlock/pkg/kafka/config"
	kafka_middleware "airlock/pkg/kafka/middleware"
	"airlock/pkg/logger"
)

const (
	ServiceName   = "notifier"
	consumerGroup = "notifier"
)

func main() {
	log := logger.New(logger.Config{
		Level:   "info",
		Format:  logger.JSON,
		Service: ServiceName,
	})

	kafkaCfg := kafka_config.Load()
	kafkaCfg.LogConfiguration(log.Info)

	n := notifier.New(log)

	created := newConsumer(kafkaCfg, events.TopicBookingCreated, events.DLQTopicBookingCreated, n.HandleBookingCreated, log)
	cancelled := newConsumer(kafkaCfg, events.TopicBookingCancelled, events.DLQTopicBookingCancelled, n.HandleBookingCancelled, log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info("Starting notifier")

	var wg sync.WaitGroup
	for _, c := range []*kafka.Consumer{created, cancelled} {
		wg.Add(1)
		go func(c *kafka.Consumer) {
			defer wg.Done()
			if err := c.Start(ctx); err != nil {
				log.Error("Consumer stopped with error", "error", err)
			}
		}(c)
	}

	<-ctx.Done()
	log.Info("Shutting down notifier")

	for _, c := range []*kafka.Consumer{created, cancelled} {
		if err := c.Close(); err != nil {
			log.Warn("Failed to close consumer", "error", err)
		}
	}
	wg.Wait()
}

func newConsumer(cfg *kafka_config.Config, topic, dlqTopic string, handler kafka.MessageHandler, log *logger.Logger) *kafka.Consumer {
	c, err := kafka.NewConsumer(cfg, topic, consumerGroup, dlqTopic, handler, log)
	if err != nil {
		log.Fatal("Failed to create consumer", "topic", topic, "error", err)
	}
	c.Use(kafka_middleware.LoggingConsumerMiddleware(log))
	return c
}
