package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/Ovitozinn/luxe-dash-suite/internal/apperrors"
	"github.com/Ovitozinn/luxe-dash-suite/internal/model"
	"github.com/Ovitozinn/luxe-dash-suite/internal/reqctx"
	"github.com/Ovitozinn/luxe-dash-suite/pkg/logger"
)

// Header names set on every dispatch event.
const (
	HeaderMsgID     = nats.MsgIdHdr
	HeaderRequestID = "X-Request-Id"
	HeaderEventType = "Event-Type"

	EventTypeDispatchRequested = "dispatch.requested"
)

// MsgPublisher is the part of *nats.Conn the publisher needs.
type MsgPublisher interface {
	PublishMsg(m *nats.Msg) error
	Close()
}

var _ MsgPublisher = (*nats.Conn)(nil)

// NatsPublisher publishes dispatch audit events on a core NATS subject.
type NatsPublisher struct {
	conn    MsgPublisher
	subject string
}

// Connect dials NATS with reconnect handling and returns a publisher for
// subject.
func Connect(url, subject string) (*NatsPublisher, error) {
	nc, err := nats.Connect(url,
		nats.Name("luxe-dash-suite"),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				logger.Log.Warn("NATS disconnected", zap.Error(err))
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Log.Info("NATS reconnected", zap.String("url", nc.ConnectedUrl()))
		}),
		nats.ErrorHandler(func(nc *nats.Conn, s *nats.Subscription, err error) {
			logger.Log.Error("NATS error", zap.Error(err))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return NewNatsPublisher(nc, subject), nil
}

// NewNatsPublisher wraps an existing connection.
func NewNatsPublisher(conn MsgPublisher, subject string) *NatsPublisher {
	return &NatsPublisher{conn: conn, subject: subject}
}

// PublishDispatch sends event as JSON. The event id doubles as the message id
// so a JetStream stream bound to the subject can deduplicate.
func (p *NatsPublisher) PublishDispatch(ctx context.Context, event model.DispatchEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal dispatch event: %w", apperrors.ErrPublish, err)
	}

	msg := nats.NewMsg(p.subject)
	msg.Data = data
	msg.Header.Set(HeaderMsgID, event.ID)
	msg.Header.Set(HeaderEventType, EventTypeDispatchRequested)
	if requestID, err := reqctx.RequestID(ctx); err == nil {
		msg.Header.Set(HeaderRequestID, requestID)
	}

	if err := p.conn.PublishMsg(msg); err != nil {
		return fmt.Errorf("%w: failed to publish message: %w", apperrors.ErrPublish, err)
	}

	logger.FromContext(ctx).Debug("Published dispatch event",
		zap.String("subject", p.subject),
		zap.String("dispatch_id", event.ID),
	)
	return nil
}

// Close closes the NATS connection
func (p *NatsPublisher) Close() {
	if p.conn != nil {
		p.conn.Close()
	}
}

// NoopPublisher drops every event. Used when NATS is not configured.
type NoopPublisher struct{}

// PublishDispatch implements the publisher contract and does nothing.
func (NoopPublisher) PublishDispatch(ctx context.Context, event model.DispatchEvent) error {
	logger.FromContext(ctx).Debug("Dispatch event not published, NATS disabled", zap.String("dispatch_id", event.ID))
	return nil
}

// Close is a no-op.
func (NoopPublisher) Close() {}
