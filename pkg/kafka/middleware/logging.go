package kafka_middleware

import (
	"context"
	"time"

	"actman/pkg/kafka"
	"actman/pkg/logger"
)

// LoggingProducerMiddleware logs every publish attempt with its outcome
func LoggingProducerMiddleware(log *logger.Logger) kafka.ProducerMiddleware {
	return func(ctx context.Context, msg kafka.Message, next func(ctx context.Context, msg kafka.Message) error) error {
		start := time.Now()

		err := next(ctx, msg)

		duration := time.Since(start)

		if err != nil {
			log.Error("Failed to publish event",
				"topic", msg.Topic,
				"key", msg.Key,
				"event_id", msg.GetEventID(),
				"event_type", msg.GetEventType(),
				"correlation_id", msg.GetCorrelationID(),
				"duration", duration.String(),
				"error", err,
			)
		} else {
			log.Info("Published event",
				"topic", msg.Topic,
				"key", msg.Key,
				"event_id", msg.GetEventID(),
				"event_type", msg.GetEventType(),
				"correlation_id", msg.GetCorrelationID(),
				"duration", duration.String(),
			)
		}

		return err
	}
}
