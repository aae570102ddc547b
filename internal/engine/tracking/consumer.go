package tracking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"
	"linkhub/internal/platform/config"
	"linkhub/internal/platform/events"
)

var errMalformed = errors.New("malformed event")

const (
	fetchBatch   = 10
	fetchMaxWait = 5 * time.Second
)

// Consumer drains the event stream into a Store.
type Consumer struct {
	js    nats.JetStreamContext
	cfg   config.EventsConfig
	store Recorder
}

func NewConsumer(js nats.JetStreamContext, cfg config.EventsConfig, store Recorder) *Consumer {
	return &Consumer{js: js, cfg: cfg, store: store}
}

// Run blocks until ctx is cancelled.
func (c *Consumer) Run(ctx context.Context) error {
	if err := events.EnsureStream(c.js, c.cfg); err != nil {
		return err
	}
	if err := events.EnsureConsumer(c.js, c.cfg); err != nil {
		return err
	}

	sub, err := c.js.PullSubscribe(c.cfg.SubjectPrefix+".>", c.cfg.Consumer, nats.Bind(c.cfg.Stream, c.cfg.Consumer))
	if err != nil {
		return err
	}
	defer sub.Unsubscribe()

	log.Info().Str("stream", c.cfg.Stream).Str("consumer", c.cfg.Consumer).Msg("event consumer started")

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		msgs, err := sub.Fetch(fetchBatch, nats.MaxWait(fetchMaxWait))
		if err != nil && !errors.Is(err, nats.ErrTimeout) {
			if ctx.Err() != nil {
				return nil
			}
			log.Error().Err(err).Msg("failed to fetch events")
			time.Sleep(time.Second)
			continue
		}

		for _, msg := range msgs {
			if err := c.Handle(ctx, msg.Subject, msg.Data); err != nil {
				log.Error().Err(err).Str("subject", msg.Subject).Msg("failed to store event")
				if errors.Is(err, errMalformed) {
					msg.Term()
				} else {
					msg.Nak()
				}
				continue
			}
			msg.Ack()
		}
	}
}

// Handle decodes one message by its subject suffix and stores it. Messages
// of unknown kinds are dropped.
func (c *Consumer) Handle(ctx context.Context, subject string, data []byte) error {
	kind := subject[strings.LastIndex(subject, ".")+1:]

	switch kind {
	case KindClick:
		var e ClickEvent
		if err := json.Unmarshal(data, &e); err != nil {
			return fmt.Errorf("%w: %v", errMalformed, err)
		}
		return c.store.RecordClick(ctx, &e)
	case KindView:
		var e ViewEvent
		if err := json.Unmarshal(data, &e); err != nil {
			return fmt.Errorf("%w: %v", errMalformed, err)
		}
		return c.store.RecordView(ctx, &e)
	default:
		log.Warn().Str("subject", subject).Msg("dropping event of unknown kind")
		return nil
	}
}
