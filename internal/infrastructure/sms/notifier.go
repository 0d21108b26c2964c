package sms

import (
	"context"
	"log/slog"

	"github.com/radkal2/bonusbank/internal/infrastructure/metrics"
)

// Notifier buffers outgoing SMS messages and delivers them to a gateway from
// a background worker. Enqueue never blocks: when the buffer is full the
// message is dropped, delivery is best effort.
type Notifier struct {
	gateway Gateway
	logger  *slog.Logger
	metrics *metrics.Metrics
	queue   chan string
}

// Gateway defines the interface for delivering a single SMS message.
type Gateway interface {
	Send(ctx context.Context, message string) error
}

// Config for Notifier.
type Config struct {
	Gateway    Gateway
	Logger     *slog.Logger
	Metrics    *metrics.Metrics
	BufferSize int // Number of messages the queue holds before dropping
}

// NewNotifier creates a new Notifier.
func NewNotifier(cfg Config) *Notifier {
	if cfg.BufferSize == 0 {
		cfg.BufferSize = 1024
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return &Notifier{
		gateway: cfg.Gateway,
		logger:  cfg.Logger,
		metrics: cfg.Metrics,
		queue:   make(chan string, cfg.BufferSize),
	}
}

// Enqueue queues a message for delivery without blocking the caller.
func (n *Notifier) Enqueue(message string) {
	select {
	case n.queue <- message:
	default:
		n.logger.Warn("sms queue full, dropping message")
		if n.metrics != nil {
			n.metrics.SMSDropped.Inc()
		}
	}
}

// Start begins the delivery worker.
// It runs continuously until the context is cancelled.
func (n *Notifier) Start(ctx context.Context) error {
	n.logger.Info("sms notifier started", slog.Int("buffer_size", cap(n.queue)))

	for {
		select {
		case <-ctx.Done():
			n.logger.Info("sms notifier shutting down")
			return ctx.Err()
		case message := <-n.queue:
			if err := n.gateway.Send(ctx, message); err != nil {
				n.logger.Error("failed to send sms", slog.String("error", err.Error()))
				continue
			}
			if n.metrics != nil {
				n.metrics.SMSSent.Inc()
			}
		}
	}
}

// LogGateway is a simple gateway that logs messages instead of sending them.
type LogGateway struct {
	logger *slog.Logger
}

// NewLogGateway creates a new LogGateway.
func NewLogGateway(logger *slog.Logger) *LogGateway {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogGateway{logger: logger}
}

// Send logs the message.
func (g *LogGateway) Send(ctx context.Context, message string) error {
	g.logger.Info("SMS SENT", slog.String("message", message))
	return nil
}
