// Package kafka runs the consumer that applies treasury deposits read from Kafka.
package kafka

import (
	"context"
	"crypto/tls"
	"errors"
	"time"

	"github.com/cenkalti/backoff"
	dao "github.com/ortelius/governance-backend/events/modules/daos"
	"github.com/ortelius/governance-backend/governance"
	"github.com/ortelius/governance-backend/internal/config"
	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl/plain"
	"go.uber.org/zap"
)

// NewDialer returns a dialer using SASL/PLAIN over TLS when credentials are
// set, and a plain dialer for local development otherwise.
func NewDialer(cfg config.Kafka) *kafka.Dialer {
	if cfg.APIKey != "" && cfg.APISecret != "" {
		return &kafka.Dialer{
			Timeout:       10 * time.Second,
			DualStack:     true,
			SASLMechanism: plain.Mechanism{Username: cfg.APIKey, Password: cfg.APISecret},
			TLS:           &tls.Config{MinVersion: tls.VersionTLS12},
		}
	}
	return &kafka.Dialer{
		Timeout:   10 * time.Second,
		DualStack: true,
	}
}

// RunEventProcessor checks broker connectivity and then consumes the deposit
// topic in the background until ctx is cancelled.
func RunEventProcessor(ctx context.Context, cfg config.Kafka, service dao.DepositService, logger *zap.Logger) error {
	dialer := NewDialer(cfg)

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 2 * time.Second
	bo.MaxElapsedTime = 30 * time.Second

	attempt := 0
	err := backoff.Retry(func() error {
		attempt++
		logger.Info("kafka connection attempt", zap.Int("attempt", attempt), zap.String("broker", cfg.Brokers[0]))
		conn, err := dialer.DialContext(ctx, "tcp", cfg.Brokers[0])
		if err != nil {
			return err
		}
		return conn.Close()
	}, backoff.WithContext(bo, ctx))
	if err != nil {
		return err
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Brokers,
		GroupID:  cfg.GroupID,
		Topic:    cfg.DepositTopic,
		MaxBytes: 10e6,
		Dialer:   dialer,
	})

	go func() {
		defer reader.Close()

		logger.Info("Kafka Event Processor started. Listening for treasury deposits...", zap.String("topic", cfg.DepositTopic))

		for {
			msg, err := reader.FetchMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				logger.Warn("kafka fetch failed", zap.Error(err))
				continue
			}
			if !applyDeposit(ctx, msg, service, newDepositBackOff(), logger) {
				// Leave the offset uncommitted so the deposit is redelivered.
				return
			}
			if err := reader.CommitMessages(ctx, msg); err != nil {
				logger.Warn("kafka commit failed", zap.Int64("offset", msg.Offset), zap.Error(err))
			}
		}
	}()

	return nil
}

func newDepositBackOff() backoff.BackOff {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = time.Second
	bo.MaxInterval = 30 * time.Second
	bo.MaxElapsedTime = 0
	return bo
}

// retryable reports whether a failed deposit may succeed on a later attempt.
// Malformed events and rejected deposits never will.
func retryable(err error) bool {
	return !errors.Is(err, dao.ErrInvalidEvent) && governance.CodeOf(err) == governance.CodeInternal
}

// applyDeposit handles one deposit message, retrying with bo while the
// failure is retryable. It reports whether the offset may be committed: true
// after success or a permanent rejection, false when ctx ended first.
func applyDeposit(ctx context.Context, msg kafka.Message, service dao.DepositService, bo backoff.BackOff, logger *zap.Logger) bool {
	err := backoff.RetryNotify(func() error {
		err := dao.HandleTreasuryDeposit(ctx, msg.Value, service, logger)
		if err != nil && !retryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}, backoff.WithContext(bo, ctx), func(err error, next time.Duration) {
		logger.Warn("deposit failed, retrying",
			zap.Int64("offset", msg.Offset),
			zap.Duration("retry_in", next),
			zap.Error(err))
	})

	switch {
	case err == nil:
		return true
	case retryable(err):
		logger.Error("deposit not applied, offset left uncommitted", zap.Int64("offset", msg.Offset), zap.Error(err))
		return false
	default:
		logger.Warn("deposit event rejected", zap.Int64("offset", msg.Offset), zap.Error(err))
		return true
	}
}
