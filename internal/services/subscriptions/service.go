package subscriptions

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/Nazarious-ucu/blog-newsletter-api/internal/metrics"
	"github.com/Nazarious-ucu/blog-newsletter-api/internal/models"
	"github.com/Nazarious-ucu/blog-newsletter-api/pkg/messaging"
)

const (
	defaultLimit = 50
	// admin export fetches one page of this size
	maxLimit = 1000

	welcomeTimeout = 5 * time.Second
)

type SubscriptionRepository interface {
	Create(ctx context.Context, sub models.Subscription) (models.Subscription, error)
	GetByEmail(ctx context.Context, email string) (models.Subscription, error)
	GetByID(ctx context.Context, id string) (models.Subscription, error)
	Update(ctx context.Context, sub models.Subscription, expected models.Status) (models.Subscription, error)
	Delete(ctx context.Context, id string) (models.Subscription, error)
	List(ctx context.Context, filter models.SubscriptionFilter) ([]models.Subscription, int, error)
	CountByStatus(ctx context.Context) (models.StatusStats, error)
}

type WelcomeSender interface {
	SendWelcome(ctx context.Context, to, unsubscribeURL string, reactivated bool) error
}

type EventPublisher interface {
	PublishSubscription(ctx context.Context, routingKey string, event messaging.SubscriptionEvent) error
}

// Service owns the subscription lifecycle: subscribe/reactivate, admin status
// changes and token-verified unsubscribe.
type Service struct {
	repo   SubscriptionRepository
	tokens *Tokens
	mailer WelcomeSender
	events EventPublisher
	log    zerolog.Logger
	m      *metrics.Metrics
	now    func() time.Time
}

func NewService(
	repo SubscriptionRepository,
	tokens *Tokens,
	mailer WelcomeSender,
	events EventPublisher,
	logger zerolog.Logger,
	m *metrics.Metrics,
) *Service {
	return &Service{
		repo:   repo,
		tokens: tokens,
		mailer: mailer,
		events: events,
		log:    logger.With().Str("component", "SubscriptionService").Logger(),
		m:      m,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// SetClock replaces the time source.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// Subscribe creates a subscription, or reactivates an unsubscribed one. The bool
// result reports whether a new record was created.
func (s *Service) Subscribe(ctx context.Context, data models.UserSubData) (models.Subscription, bool, error) {
	email := models.NormalizeEmail(data.Email)
	if email == "" {
		return models.Subscription{}, false, models.NewValidationError("Email is required")
	}
	if !models.ValidEmail(email) {
		return models.Subscription{}, false, models.NewValidationError("Please enter a valid email")
	}

	existing, err := s.repo.GetByEmail(ctx, email)
	switch {
	case errors.Is(err, models.ErrNotFound):
		return s.create(ctx, email, data)
	case err != nil:
		return models.Subscription{}, false, err
	case existing.Status != models.StatusUnsubscribed:
		s.m.BusinessErrors.WithLabelValues("already_subscribed", "warning").Inc()
		return models.Subscription{}, false, models.NewConflictError("Email is already subscribed")
	}

	now := s.now()
	existing.Reactivate(now)
	existing.UpdatedAt = now

	sub, err := s.repo.Update(ctx, existing, models.StatusUnsubscribed)
	if err != nil {
		return models.Subscription{}, false, err
	}

	s.m.SubscriptionsReactivated.Inc()
	s.log.Info().Ctx(ctx).Str("id", sub.ID).Msg("subscription reactivated")
	s.welcome(ctx, sub, true)
	s.publish(ctx, messaging.SubscriptionReactivatedKey, sub)
	return sub, false, nil
}

func (s *Service) create(ctx context.Context, email string, data models.UserSubData) (models.Subscription, bool, error) {
	now := s.now()
	sub, err := s.repo.Create(ctx, models.Subscription{
		Email:            email,
		Status:           models.StatusActive,
		SubscriptionDate: now,
		Source:           models.DefaultSource,
		IPAddress:        data.IPAddress,
		UserAgent:        data.UserAgent,
		CreatedAt:        now,
		UpdatedAt:        now,
	})
	if err != nil {
		return models.Subscription{}, false, err
	}

	s.m.SubscriptionsCreated.Inc()
	s.welcome(ctx, sub, false)
	s.publish(ctx, messaging.SubscriptionCreatedKey, sub)
	return sub, true, nil
}

// SetStatus is the admin transition. Every status may move to every other.
func (s *Service) SetStatus(ctx context.Context, id string, status models.Status) (models.Subscription, error) {
	if id == "" || status == "" {
		return models.Subscription{}, models.NewValidationError("ID and status are required")
	}
	if !status.Valid() {
		return models.Subscription{}, models.NewValidationError(
			"Invalid status. Must be: active, inactive, or unsubscribed")
	}

	sub, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return models.Subscription{}, err
	}

	return s.transition(ctx, sub, status, messaging.SubscriptionStatusChangedKey)
}

// UnsubscribeByToken lets a recipient leave through the e-mailed link without logging in.
func (s *Service) UnsubscribeByToken(ctx context.Context, token, email string) (models.Subscription, error) {
	email = models.NormalizeEmail(email)
	if token == "" || email == "" {
		return models.Subscription{}, models.NewValidationError("Invalid unsubscribe link")
	}

	sub, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return models.Subscription{}, err
	}

	if !s.tokens.Verify(sub, token) {
		s.log.Warn().Ctx(ctx).Str("email", email).Msg("unsubscribe token mismatch")
		s.m.BusinessErrors.WithLabelValues("invalid_unsubscribe_token", "warning").Inc()
		return models.Subscription{}, models.NewAuthorizationError("Invalid unsubscribe token")
	}

	return s.transition(ctx, sub, models.StatusUnsubscribed, messaging.SubscriptionUnsubscribedKey)
}

func (s *Service) transition(
	ctx context.Context,
	sub models.Subscription,
	status models.Status,
	routingKey string,
) (models.Subscription, error) {
	previous := sub.Status
	now := s.now()
	sub.Transition(status, now)
	sub.UpdatedAt = now

	updated, err := s.repo.Update(ctx, sub, previous)
	if err != nil {
		return models.Subscription{}, err
	}

	s.m.SubscriptionTransitions.WithLabelValues(string(status)).Inc()
	s.log.Info().Ctx(ctx).
		Str("id", updated.ID).
		Str("from", string(previous)).
		Str("to", string(status)).
		Msg("subscription status changed")
	s.publish(ctx, routingKey, updated)
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) (models.Subscription, error) {
	if id == "" {
		return models.Subscription{}, models.NewValidationError("Subscription ID is required")
	}

	sub, err := s.repo.Delete(ctx, id)
	if err != nil {
		return models.Subscription{}, err
	}

	s.publish(ctx, messaging.SubscriptionDeletedKey, sub)
	return sub, nil
}

// List pages through subscriptions newest first. Search and status filtering both
// happen in the store so pagination counts stay consistent. Stats.Total is the
// filtered count, the per-status counts cover the whole table.
func (s *Service) List(ctx context.Context, q models.ListQuery) (models.SubscriptionPage, error) {
	page := q.Page
	if page < 1 {
		page = 1
	}
	limit := q.Limit
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	filter := models.SubscriptionFilter{
		Search: models.NormalizeEmail(q.Search),
		Offset: (page - 1) * limit,
		Limit:  limit,
	}
	if status := models.Status(q.Status); status.Valid() {
		filter.Status = status
	}

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return models.SubscriptionPage{}, err
	}

	stats, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return models.SubscriptionPage{}, err
	}

	stats.Total = total

	totalPages := (total + limit - 1) / limit
	return models.SubscriptionPage{
		Items: items,
		Pagination: models.Pagination{
			CurrentPage: page,
			TotalPages:  totalPages,
			TotalCount:  total,
			HasNextPage: page < totalPages,
			HasPrevPage: page > 1,
		},
		Stats: stats,
	}, nil
}

// UnsubscribeURL exposes the link minted for sub.
func (s *Service) UnsubscribeURL(sub models.Subscription) string {
	return s.tokens.UnsubscribeURL(sub)
}

func (s *Service) welcome(ctx context.Context, sub models.Subscription, reactivated bool) {
	ctx, cancel := context.WithTimeout(ctx, welcomeTimeout)
	defer cancel()

	if err := s.mailer.SendWelcome(ctx, sub.Email, s.tokens.UnsubscribeURL(sub), reactivated); err != nil {
		s.log.Error().Err(err).Ctx(ctx).Str("email", sub.Email).Msg("welcome e-mail not sent")
	}
}

func (s *Service) publish(ctx context.Context, routingKey string, sub models.Subscription) {
	event := messaging.SubscriptionEvent{
		ID:         sub.ID,
		Email:      sub.Email,
		Status:     string(sub.Status),
		OccurredAt: s.now(),
	}
	if sub.Status != models.StatusUnsubscribed {
		event.UnsubscribeURL = s.tokens.UnsubscribeURL(sub)
	}

	if err := s.events.PublishSubscription(ctx, routingKey, event); err != nil {
		s.log.Error().Err(err).Ctx(ctx).Str("routing_key", routingKey).Msg("event not published")
	}
}
