package emailer

import (
	"fmt"

	"github.com/sony/gobreaker"

	"github.com/Nazarious-ucu/blog-newsletter-api/internal/config"
)

type sender interface {
	Send(to, subject, additionalHeaders, body string) error
}

// BreakerSender stops dialing the mail server after RepeatNumber consecutive failures
// and retries once the breaker timeout passes.
type BreakerSender struct {
	name    string
	cb      *gobreaker.CircuitBreaker
	wrapped sender
}

func NewBreakerSender(name string, wrapped sender, cfg config.Breaker) *BreakerSender {
	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.RepeatNumber
		},
	}
	return &BreakerSender{
		name:    name,
		cb:      gobreaker.NewCircuitBreaker(settings),
		wrapped: wrapped,
	}
}

func (b *BreakerSender) Send(to, subject, additionalHeaders, body string) error {
	_, err := b.cb.Execute(func() (interface{}, error) {
		return nil, b.wrapped.Send(to, subject, additionalHeaders, body)
	})
	if err != nil {
		return fmt.Errorf("%s unavailable: %w", b.name, err)
	}
	return nil
}

func (b *BreakerSender) State() gobreaker.State {
	return b.cb.State()
}
