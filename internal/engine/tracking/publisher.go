package tracking

import (
	"context"
	"encoding/json"

	"github.com/nats-io/nats.go"
	"linkhub/internal/platform/config"
	"linkhub/internal/platform/events"
)

// Publisher hands events to JetStream; the worker's Consumer persists them.
type Publisher struct {
	js  nats.JetStreamContext
	cfg config.EventsConfig
}

func NewPublisher(js nats.JetStreamContext, cfg config.EventsConfig) *Publisher {
	return &Publisher{js: js, cfg: cfg}
}

func (p *Publisher) RecordClick(ctx context.Context, e *ClickEvent) error {
	return p.publish(ctx, KindClick, e.ID, e)
}

func (p *Publisher) RecordView(ctx context.Context, e *ViewEvent) error {
	return p.publish(ctx, KindView, e.ID, e)
}

func (p *Publisher) publish(ctx context.Context, kind, id string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	// The event id doubles as the JetStream dedup key.
	_, err = p.js.Publish(events.Subject(p.cfg, kind), data, nats.Context(ctx), nats.MsgId(id))
	return err
}
