package subscriptions_test

import (
	"context"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"

	"github.com/Nazarious-ucu/blog-newsletter-api/internal/metrics"
	"github.com/Nazarious-ucu/blog-newsletter-api/internal/models"
	"github.com/Nazarious-ucu/blog-newsletter-api/internal/services/subscriptions"
	"github.com/Nazarious-ucu/blog-newsletter-api/pkg/messaging"
)

const (
	testSecret  = "test-secret"
	testBaseURL = "http://blog.test"
)

var fixedNow = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

// fakeRepo keeps subscriptions in memory with the same guarded-update contract as the sqlite store.
type fakeRepo struct {
	mu        sync.Mutex
	byID      map[string]models.Subscription
	writes    int
	updateErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byID: map[string]models.Subscription{}}
}

func (r *fakeRepo) seed(email string, status models.Status) models.Subscription {
	r.mu.Lock()
	defer r.mu.Unlock()

	sub := models.Subscription{
		ID:               uuid.NewString(),
		Email:            email,
		Status:           status,
		SubscriptionDate: fixedNow.Add(-48 * time.Hour),
		Source:           models.DefaultSource,
		CreatedAt:        fixedNow.Add(-48 * time.Hour),
		UpdatedAt:        fixedNow.Add(-48 * time.Hour),
	}
	if status == models.StatusUnsubscribed {
		at := fixedNow.Add(-24 * time.Hour)
		sub.UnsubscribedDate = &at
	}
	r.byID[sub.ID] = sub
	return sub
}

func (r *fakeRepo) get(id string) models.Subscription {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.byID[id]
}

func (r *fakeRepo) Create(_ context.Context, sub models.Subscription) (models.Subscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, s := range r.byID {
		if s.Email == sub.Email {
			return models.Subscription{}, models.NewConflictError("Email is already subscribed")
		}
	}
	sub.ID = uuid.NewString()
	r.byID[sub.ID] = sub
	r.writes++
	return sub, nil
}

func (r *fakeRepo) GetByEmail(_ context.Context, email string) (models.Subscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, s := range r.byID {
		if s.Email == email {
			return s, nil
		}
	}
	return models.Subscription{}, models.NewNotFoundError("Subscription not found")
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (models.Subscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.byID[id]
	if !ok {
		return models.Subscription{}, models.NewNotFoundError("Subscription not found")
	}
	return s, nil
}

func (r *fakeRepo) Update(_ context.Context, sub models.Subscription, expected models.Status) (models.Subscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.updateErr != nil {
		return models.Subscription{}, r.updateErr
	}
	current, ok := r.byID[sub.ID]
	if !ok {
		return models.Subscription{}, models.NewNotFoundError("Subscription not found")
	}
	if current.Status != expected {
		return models.Subscription{}, models.NewConflictError("Subscription was modified concurrently")
	}
	r.byID[sub.ID] = sub
	r.writes++
	return sub, nil
}

func (r *fakeRepo) Delete(_ context.Context, id string) (models.Subscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.byID[id]
	if !ok {
		return models.Subscription{}, models.NewNotFoundError("Subscription not found")
	}
	delete(r.byID, id)
	r.writes++
	return s, nil
}

func (r *fakeRepo) List(_ context.Context, f models.SubscriptionFilter) ([]models.Subscription, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var all []models.Subscription
	for _, s := range r.byID {
		if f.Status != "" && s.Status != f.Status {
			continue
		}
		if f.Search != "" && !strings.Contains(s.Email, f.Search) {
			continue
		}
		all = append(all, s)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].Email < all[j].Email
		}
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	total := len(all)
	if f.Offset >= total {
		return []models.Subscription{}, total, nil
	}
	end := f.Offset + f.Limit
	if end > total {
		end = total
	}
	return all[f.Offset:end], total, nil
}

func (r *fakeRepo) CountByStatus(_ context.Context) (models.StatusStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var st models.StatusStats
	for _, s := range r.byID {
		switch s.Status {
		case models.StatusActive:
			st.Active++
		case models.StatusInactive:
			st.Inactive++
		case models.StatusUnsubscribed:
			st.Unsubscribed++
		}
		st.Total++
	}
	return st, nil
}

type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) SendWelcome(ctx context.Context, to, unsubscribeURL string, reactivated bool) error {
	args := m.Called(ctx, to, unsubscribeURL, reactivated)
	return args.Error(0)
}

type recordingPublisher struct {
	mu     sync.Mutex
	keys   []string
	events []messaging.SubscriptionEvent
}

func (p *recordingPublisher) PublishSubscription(
	_ context.Context,
	routingKey string,
	event messaging.SubscriptionEvent,
) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.keys = append(p.keys, routingKey)
	p.events = append(p.events, event)
	return nil
}

type fixture struct {
	svc    *subscriptions.Service
	repo   *fakeRepo
	mailer *mockMailer
	events *recordingPublisher
	tokens *subscriptions.Tokens
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	f := fixture{
		repo:   newFakeRepo(),
		mailer: &mockMailer{},
		events: &recordingPublisher{},
		tokens: subscriptions.NewTokens(testSecret, testBaseURL),
	}
	f.svc = subscriptions.NewService(f.repo, f.tokens, f.mailer, f.events, zerolog.Nop(),
		metrics.NewMetrics("subscriptions_test"))
	f.svc.SetClock(func() time.Time { return fixedNow })

	t.Cleanup(func() { f.mailer.AssertExpectations(t) })
	return f
}
