// Package events connects to NATS JetStream and owns the tracking stream.
package events

import (
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"linkhub/internal/platform/config"
)

const (
	connectTimeout = 5 * time.Second
	streamMaxAge   = 7 * 24 * time.Hour
)

// Connect opens a connection with JetStream enabled.
func Connect(cfg config.EventsConfig) (*nats.Conn, nats.JetStreamContext, error) {
	conn, err := nats.Connect(cfg.NATSURL,
		nats.Timeout(connectTimeout),
		nats.Name("linkhub"),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("nats: connect: %w", err)
	}

	js, err := conn.JetStream()
	if err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("nats: init jetstream: %w", err)
	}

	return conn, js, nil
}

// Subject returns the subject for one event kind, e.g. linkhub.events.click.
func Subject(cfg config.EventsConfig, kind string) string {
	return cfg.SubjectPrefix + "." + kind
}

// EnsureStream creates the stream capturing every event subject if it is missing.
func EnsureStream(js nats.JetStreamContext, cfg config.EventsConfig) error {
	_, err := js.StreamInfo(cfg.Stream)
	if err == nil {
		return nil
	}
	if !errors.Is(err, nats.ErrStreamNotFound) {
		return fmt.Errorf("nats: stream info: %w", err)
	}

	_, err = js.AddStream(&nats.StreamConfig{
		Name:     cfg.Stream,
		Subjects: []string{cfg.SubjectPrefix + ".>"},
		MaxAge:   streamMaxAge,
	})
	if err != nil {
		return fmt.Errorf("nats: add stream: %w", err)
	}
	return nil
}

// EnsureConsumer creates the durable pull consumer with explicit acks.
func EnsureConsumer(js nats.JetStreamContext, cfg config.EventsConfig) error {
	if _, err := js.ConsumerInfo(cfg.Stream, cfg.Consumer); err == nil {
		return nil
	}

	_, err := js.AddConsumer(cfg.Stream, &nats.ConsumerConfig{
		Durable:       cfg.Consumer,
		AckPolicy:     nats.AckExplicitPolicy,
		FilterSubject: cfg.SubjectPrefix + ".>",
	})
	if err != nil {
		return fmt.Errorf("nats: add consumer: %w", err)
	}
	return nil
}
