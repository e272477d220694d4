package linkcheck

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"git.home.luguber.info/inful/docsite/internal/logfields"
)

// BrokenLinkEvent is published for every broken link of a run.
type BrokenLinkEvent struct {
	RunID     string    `json:"run_id"`
	Source    Source    `json:"source"`
	Path      string    `json:"path"`
	Target    string    `json:"target"`
	Reason    string    `json:"reason"`
	Timestamp time.Time `json:"timestamp"`
}

// Publisher delivers broken link events to downstream consumers.
type Publisher interface {
	Publish(ctx context.Context, event BrokenLinkEvent) error
	Close() error
}

// NopPublisher discards events (default when no NATS URL is configured).
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, BrokenLinkEvent) error { return nil }
func (NopPublisher) Close() error                                   { return nil }

// natsConn is the subset of *nats.Conn used for publishing.
type natsConn interface {
	Publish(subject string, data []byte) error
	FlushWithContext(ctx context.Context) error
	Close()
}

// NATSPublisher publishes broken link events as JSON on a NATS subject.
type NATSPublisher struct {
	conn    natsConn
	subject string
}

// NewNATSPublisher connects to url and publishes on subject.
func NewNATSPublisher(url, subject string, opts ...nats.Option) (*NATSPublisher, error) {
	opts = append([]nats.Option{nats.Name("docsite-linkcheck"), nats.Timeout(5 * time.Second)}, opts...)
	conn, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	slog.Info("NATS publisher initialized for link checks", logfields.URL(url), logfields.Subject(subject))
	return &NATSPublisher{conn: conn, subject: subject}, nil
}

// Publish sends event and waits for the server to acknowledge the flush.
func (p *NATSPublisher) Publish(ctx context.Context, event BrokenLinkEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	if err := p.conn.Publish(p.subject, data); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := p.conn.FlushWithContext(ctx); err != nil {
		return fmt.Errorf("failed to flush event: %w", err)
	}
	slog.Debug("Published broken link event", logfields.Link(event.Target), logfields.Source(string(event.Source)))
	return nil
}

// Close closes the NATS connection.
func (p *NATSPublisher) Close() error {
	if p.conn != nil {
		p.conn.Close()
	}
	return nil
}

// PublishReport publishes one event per broken link in r. It stops at the
// first failure.
func PublishReport(ctx context.Context, pub Publisher, r *Report) error {
	for _, b := range r.Broken {
		event := BrokenLinkEvent{
			RunID:     r.RunID,
			Source:    b.Source,
			Path:      b.Path,
			Target:    b.Target,
			Reason:    b.Reason,
			Timestamp: r.FinishedAt,
		}
		if err := pub.Publish(ctx, event); err != nil {
			return err
		}
	}
	return nil
}
