package producers

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"
	"github.com/wagslane/go-rabbitmq"

	"github.com/Nazarious-ucu/blog-newsletter-api/internal/metrics"
	"github.com/Nazarious-ucu/blog-newsletter-api/pkg/messaging"
)

type publisher interface {
	PublishWithContext(ctx context.Context, data []byte, routingKeys []string, optionFuncs ...func(*rabbitmq.PublishOptions)) error
}

// Producer sends lifecycle and post events to the blog exchange as JSON.
type Producer struct {
	prod publisher
	log  zerolog.Logger
	m    *metrics.Metrics
}

func NewProducer(prod publisher, logger zerolog.Logger, m *metrics.Metrics) *Producer {
	return &Producer{
		prod: prod,
		log:  logger.With().Str("component", "Producer").Logger(),
		m:    m,
	}
}

func (p *Producer) Publish(ctx context.Context, routingKey string, body []byte) error {
	err := p.prod.PublishWithContext(
		ctx,
		body,
		[]string{routingKey},
		rabbitmq.WithPublishOptionsContentType("application/json"),
		rabbitmq.WithPublishOptionsPersistentDelivery,
		rabbitmq.WithPublishOptionsExchange(messaging.ExchangeName),
	)
	p.m.RecordPublish(routingKey, err)
	if err != nil {
		p.log.Error().Err(err).Ctx(ctx).Str("routing_key", routingKey).Msg("failed to publish message")
		return err
	}

	p.log.Debug().Ctx(ctx).Str("routing_key", routingKey).Msg("message published")
	return nil
}

func (p *Producer) PublishSubscription(ctx context.Context, routingKey string, event messaging.SubscriptionEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.Publish(ctx, routingKey, body)
}

func (p *Producer) PublishPost(ctx context.Context, routingKey string, event messaging.PostEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.Publish(ctx, routingKey, body)
}

// Noop drops events when no broker is configured.
type Noop struct{}

func (Noop) PublishSubscription(context.Context, string, messaging.SubscriptionEvent) error { return nil }

func (Noop) PublishPost(context.Context, string, messaging.PostEvent) error { return nil }
