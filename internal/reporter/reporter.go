package reporter

import (
	"context"
	"errors"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/Nazarious-ucu/blog-newsletter-api/internal/metrics"
	"github.com/Nazarious-ucu/blog-newsletter-api/internal/models"
)

const (
	timeoutDuration = 30 * time.Second

	jobName = "subscriber_stats"
)

type statsCounter interface {
	CountByStatus(ctx context.Context) (models.StatusStats, error)
}

// Reporter periodically publishes subscriber counts per status as gauges.
type Reporter struct {
	repo   statsCounter
	logger zerolog.Logger
	cron   *cron.Cron
	cancel context.CancelFunc
	m      *metrics.Metrics
	spec   string
}

func New(repo statsCounter, logger zerolog.Logger, spec string, m *metrics.Metrics) *Reporter {
	return &Reporter{
		repo:   repo,
		logger: logger.With().Str("component", "Reporter").Logger(),
		cron:   cron.New(cron.WithSeconds()),
		spec:   spec,
		m:      m,
	}
}

// Start refreshes the gauges once and then on every tick of the schedule.
func (r *Reporter) Start(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)

	if _, err := r.cron.AddFunc(r.spec, func() { r.Run(ctx) }); err != nil {
		cancel()
		r.logger.Error().Err(err).Str("spec", r.spec).Msg("failed to schedule stats job")
		r.m.TechnicalErrors.WithLabelValues("cron_schedule_error", "critical").Inc()
		return err
	}
	r.cancel = cancel

	r.Run(ctx)
	r.cron.Start()
	r.logger.Info().Str("spec", r.spec).Msg("stats reporter started")
	return nil
}

// Stop cancels the running job and waits for it to return.
func (r *Reporter) Stop() {
	if r.cancel == nil {
		return
	}
	r.cancel()
	<-r.cron.Stop().Done()
	r.logger.Info().Msg("stats reporter stopped")
}

func (r *Reporter) Run(ctx context.Context) {
	r.m.CronJob(jobName, func() {
		ctx, cancel := context.WithTimeout(ctx, timeoutDuration)
		defer cancel()

		stats, err := r.repo.CountByStatus(ctx)
		if err != nil {
			if !errors.Is(err, context.Canceled) {
				r.logger.Error().Err(err).Msg("failed to count subscribers")
				r.m.TechnicalErrors.WithLabelValues("count_subscribers", "warning").Inc()
			}
			return
		}

		r.m.SubscribersByStatus.WithLabelValues(string(models.StatusActive)).Set(float64(stats.Active))
		r.m.SubscribersByStatus.WithLabelValues(string(models.StatusInactive)).Set(float64(stats.Inactive))
		r.m.SubscribersByStatus.WithLabelValues(string(models.StatusUnsubscribed)).Set(float64(stats.Unsubscribed))

		r.logger.Debug().
			Int("active", stats.Active).
			Int("inactive", stats.Inactive).
			Int("unsubscribed", stats.Unsubscribed).
			Msg("subscriber gauges refreshed")
	})
}
