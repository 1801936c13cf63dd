package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"crowdfund.backend/internal/domain/entities"
	"crowdfund.backend/pkg/logger"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

// Conn is the part of *nats.Conn the publisher needs.
type Conn interface {
	Publish(subj string, data []byte) error
}

var connectNATS = func(url string) (*nats.Conn, error) {
	return nats.Connect(url,
		nats.Name("crowdfund-backend"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn(context.Background(), "NATS disconnected", zap.Error(err))
			}
		}),
	)
}

// NATSPublisher publishes domain events as JSON on <prefix>.<event type>.
type NATSPublisher struct {
	conn   Conn
	prefix string
}

func NewNATSPublisher(conn Conn, prefix string) *NATSPublisher {
	return &NATSPublisher{conn: conn, prefix: prefix}
}

// Connect dials the bus. The returned connection must be drained on shutdown.
func Connect(url, prefix string) (*NATSPublisher, *nats.Conn, error) {
	nc, err := connectNATS(url)
	if err != nil {
		return nil, nil, fmt.Errorf("connect nats: %w", err)
	}
	return NewNATSPublisher(nc, prefix), nc, nil
}

func (p *NATSPublisher) Publish(ctx context.Context, event entities.DomainEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", event.Type, err)
	}
	subject := Subject(p.prefix, event.Type)
	if err := p.conn.Publish(subject, data); err != nil {
		return fmt.Errorf("publish %s: %w", subject, err)
	}
	logger.Debug(ctx, "Event published", zap.String("subject", subject))
	return nil
}

// Subject joins the configured prefix and the event type.
func Subject(prefix string, eventType entities.EventType) string {
	if prefix == "" {
		return string(eventType)
	}
	return prefix + "." + string(eventType)
}

// LogPublisher writes events to the application log. It stands in for the
// bus in development when NATS_URL is empty.
type LogPublisher struct{}

func (LogPublisher) Publish(ctx context.Context, event entities.DomainEvent) error {
	logger.Info(ctx, "Domain event",
		zap.String("type", string(event.Type)),
		zap.String("recipient", event.Recipient),
		zap.String("subject", event.Subject),
		zap.Any("data", event.Data),
	)
	return nil
}
