package natsclient

import (
	"context"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/varunpaulreddy/JEDT/internal/logger"
)

const clientName = "jedt-fleet-monitor"

// Publisher is a thin wrapper over a NATS connection used for fleet alert
// fan-out. The connection reconnects forever; Publish fails fast while the
// connection is down or closed.
type Publisher struct {
	nc  *nats.Conn
	url string
}

func NewPublisher(url string, log *logger.Logger) (*Publisher, error) {
	opts := []nats.Option{
		nats.Name(clientName),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.Warnw("nats disconnected", "error", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Infow("nats reconnected", "url", nc.ConnectedUrl())
		}),
	}
	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("connect nats at %q: %w", url, err)
	}
	return &Publisher{nc: nc, url: url}, nil
}

func (p *Publisher) Publish(ctx context.Context, subject string, payload []byte) error {
	if p.nc == nil || p.nc.IsClosed() {
		return fmt.Errorf("nats at %q not connected", p.url)
	}
	return p.nc.Publish(subject, payload)
}

// Close drains in-flight messages before tearing the connection down.
func (p *Publisher) Close() {
	if p.nc != nil {
		_ = p.nc.Drain()
		p.nc.Close()
	}
}
