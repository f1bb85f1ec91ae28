package app

import (
	"github.com/wagslane/go-rabbitmq"

	"github.com/Nazarious-ucu/blog-newsletter-api/pkg/messaging"
)

func (a *App) setupConn() (*rabbitmq.Conn, error) {
	conn, err := rabbitmq.NewConn(
		a.cfg.RabbitMQ.Address(),
		rabbitmq.WithConnectionOptionsLogging,
	)
	if err != nil {
		a.l.Error().Err(err).Str("host", a.cfg.RabbitMQ.Host).Msg("Failed to connect to RabbitMQ")
		return nil, err
	}

	a.l.Info().Msg("Connected to RabbitMQ successfully")
	return conn, nil
}

// setupPublisher declares the durable topic exchange every event goes through.
func (a *App) setupPublisher(conn *rabbitmq.Conn) (*rabbitmq.Publisher, error) {
	publisher, err := rabbitmq.NewPublisher(
		conn,
		rabbitmq.WithPublisherOptionsExchangeName(messaging.ExchangeName),
		rabbitmq.WithPublisherOptionsExchangeKind("topic"),
		rabbitmq.WithPublisherOptionsExchangeDeclare,
		rabbitmq.WithPublisherOptionsExchangeDurable,
	)
	if err != nil {
		return nil, err
	}

	publisher.NotifyReturn(func(r rabbitmq.Return) {
		a.l.Warn().
			Str("routing_key", r.RoutingKey).
			Uint16("reply_code", r.ReplyCode).
			Msg("message returned from server")
	})

	return publisher, nil
}
