package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/md-sanowar-hossain/isp-task-management-system/internal/cfg"
	"github.com/md-sanowar-hossain/isp-task-management-system/internal/notify"
)

func main() {
	conf := cfg.LoadConfig()
	logger := log.New(os.Stdout, "[notifier] ", log.LstdFlags|log.Lmicroseconds)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	brokers := splitCSV(conf.KafkaBrokers)
	if len(brokers) == 0 {
		logger.Fatal("KAFKA_BROKERS must be set")
	}
	if conf.KafkaTopic == "" {
		logger.Fatal("KAFKA_TOPIC must be set")
	}
	groupID := conf.KafkaGroupID
	if groupID == "" {
		groupID = "task-notifier"
	}

	notifier := notify.NewLogNotifier(logger)
	handler := notify.NewEventHandler(notifier)
	consumer := notify.NewKafkaConsumer(brokers, conf.KafkaTopic, groupID, handler)
	defer consumer.Close()

	errCh := make(chan error, 1)

	go func() {
		logger.Printf("Kafka consumer subscribing to topic=%s group=%s", conf.KafkaTopic, groupID)
		if err := consumer.Start(ctx); err != nil {
			errCh <- err
		} else {
			errCh <- nil
		}
	}()

	select {
	case <-ctx.Done():
		logger.Println("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			logger.Printf("consumer error: %v", err)
		}
	}

	logger.Println("notifier stopped")
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	var result []string
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			result = append(result, part)
		}
	}
	return result
}
