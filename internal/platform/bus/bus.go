// Package bus publishes pipeline events over NATS
package bus

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"artisantrend/internal/platform/logger"

	"github.com/nats-io/nats.go"
)

// Publisher sends a JSON payload on a subject
type Publisher interface {
	Publish(ctx context.Context, subject string, v any) error
	Close()
}

// Options configures the NATS connection
type Options struct {
	URL            string
	Name           string
	MaxReconnects  int
	ReconnectWait  time.Duration
	ConnectTimeout time.Duration
}

// conn is the part of *nats.Conn the publisher calls
type conn interface {
	Publish(subject string, data []byte) error
	FlushWithContext(ctx context.Context) error
	Drain() error
}

// NATS publishes on a live connection
type NATS struct {
	nc  conn
	log *logger.Logger
}

var connect = func(url string, opts ...nats.Option) (conn, error) { return nats.Connect(url, opts...) }

// Connect dials NATS with reconnect handlers that log through log
func Connect(opt Options, log *logger.Logger) (*NATS, error) {
	if log == nil {
		log = logger.Nop()
	}
	if opt.MaxReconnects == 0 {
		opt.MaxReconnects = 10
	}
	if opt.ReconnectWait <= 0 {
		opt.ReconnectWait = 2 * time.Second
	}
	if opt.ConnectTimeout <= 0 {
		opt.ConnectTimeout = 5 * time.Second
	}
	nc, err := connect(opt.URL,
		nats.Name(opt.Name),
		nats.MaxReconnects(opt.MaxReconnects),
		nats.ReconnectWait(opt.ReconnectWait),
		nats.Timeout(opt.ConnectTimeout),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			log.Warn().Err(err).Msg("nats disconnected")
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			log.Info().Str("url", c.ConnectedUrl()).Msg("nats reconnected")
		}),
		nats.ClosedHandler(func(*nats.Conn) {
			log.Info().Msg("nats connection closed")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("nats: connect %s: %w", opt.URL, err)
	}
	return &NATS{nc: nc, log: log}, nil
}

// Publish marshals v and flushes so the event is on the wire before returning
func (n *NATS) Publish(ctx context.Context, subject string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("nats: marshal %s: %w", subject, err)
	}
	if err := n.nc.Publish(subject, data); err != nil {
		return fmt.Errorf("nats: publish %s: %w", subject, err)
	}
	return n.nc.FlushWithContext(ctx)
}

// Close drains pending messages
func (n *NATS) Close() {
	if err := n.nc.Drain(); err != nil {
		n.log.Warn().Err(err).Msg("nats drain")
	}
}

// Noop discards events; used when the bus is disabled
type Noop struct{}

// Publish does nothing
func (Noop) Publish(context.Context, string, any) error { return nil }

// Close does nothing
func (Noop) Close() {}

// Recorder keeps events in memory for tests and dry runs
type Recorder struct {
	Events []Event
}

// Event is one recorded publish
type Event struct {
	Subject string
	Payload json.RawMessage
}

// Publish records the marshalled payload
func (r *Recorder) Publish(_ context.Context, subject string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	r.Events = append(r.Events, Event{Subject: subject, Payload: b})
	return nil
}

// Close does nothing
func (r *Recorder) Close() {}
