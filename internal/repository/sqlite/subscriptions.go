package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Nazarious-ucu/blog-newsletter-api/internal/metrics"
	"github.com/Nazarious-ucu/blog-newsletter-api/internal/models"
)

const subscriptionColumns = `id, email, status, subscription_date, unsubscribed_date,
	source, ip_address, user_agent, created_at, updated_at`

// SubscriptionRepository persists subscriptions with structured logging and metrics.
type SubscriptionRepository struct {
	DB  *sql.DB
	log zerolog.Logger
	m   *metrics.Metrics
}

func NewSubscriptionRepository(db *sql.DB, logger zerolog.Logger, m *metrics.Metrics) *SubscriptionRepository {
	logger = logger.With().Str("component", "SubscriptionRepository").Logger()
	return &SubscriptionRepository{DB: db, log: logger, m: m}
}

// Create inserts sub under a fresh ID. A duplicate email surfaces as a conflict error.
func (r *SubscriptionRepository) Create(ctx context.Context, sub models.Subscription) (models.Subscription, error) {
	start := time.Now()
	sub.ID = uuid.NewString()

	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO subscriptions (`+subscriptionColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sub.ID, sub.Email, string(sub.Status), sub.SubscriptionDate, nullTime(sub.UnsubscribedDate),
		sub.Source, nullString(sub.IPAddress), nullString(sub.UserAgent), sub.CreatedAt, sub.UpdatedAt,
	)
	dur := time.Since(start)
	if err != nil {
		if isUniqueViolation(err) {
			r.log.Warn().Ctx(ctx).Str("email", sub.Email).Msg("subscription already exists, abort create")
			r.m.BusinessErrors.WithLabelValues("subscription_exists", "warning").Inc()
			return models.Subscription{}, models.NewConflictError("Email is already subscribed")
		}
		r.log.Error().Err(err).Ctx(ctx).Dur("duration", dur).Msg("failed to insert subscription")
		r.m.TechnicalErrors.WithLabelValues("db_insert_error", "critical").Inc()
		return models.Subscription{}, err
	}

	r.log.Info().Ctx(ctx).
		Str("id", sub.ID).
		Str("email", sub.Email).
		Dur("duration", dur).
		Msg("subscription created")
	return sub, nil
}

func (r *SubscriptionRepository) GetByEmail(ctx context.Context, email string) (models.Subscription, error) {
	return r.getOne(ctx, "email", email)
}

func (r *SubscriptionRepository) GetByID(ctx context.Context, id string) (models.Subscription, error) {
	return r.getOne(ctx, "id", id)
}

func (r *SubscriptionRepository) getOne(ctx context.Context, column, value string) (models.Subscription, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT `+subscriptionColumns+` FROM subscriptions WHERE `+column+` = ?`, value)

	sub, err := scanSubscription(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Subscription{}, models.NewNotFoundError("Subscription not found")
	}
	if err != nil {
		r.log.Error().Err(err).Ctx(ctx).Str(column, value).Msg("failed to query subscription")
		r.m.TechnicalErrors.WithLabelValues("db_query_error", "critical").Inc()
		return models.Subscription{}, err
	}
	return sub, nil
}

// Update writes the mutable fields of sub, but only while the stored status still
// equals expected. Otherwise the record changed underneath the caller.
func (r *SubscriptionRepository) Update(
	ctx context.Context,
	sub models.Subscription,
	expected models.Status,
) (models.Subscription, error) {
	start := time.Now()

	res, err := r.DB.ExecContext(ctx,
		`UPDATE subscriptions
		 SET status = ?, subscription_date = ?, unsubscribed_date = ?, updated_at = ?
		 WHERE id = ? AND status = ?`,
		string(sub.Status), sub.SubscriptionDate, nullTime(sub.UnsubscribedDate), sub.UpdatedAt,
		sub.ID, string(expected),
	)
	dur := time.Since(start)
	if err != nil {
		r.log.Error().Err(err).Ctx(ctx).Str("id", sub.ID).Msg("failed to execute subscription update")
		r.m.TechnicalErrors.WithLabelValues("db_update_error", "critical").Inc()
		return models.Subscription{}, err
	}
	count, err := res.RowsAffected()
	if err != nil {
		r.m.TechnicalErrors.WithLabelValues("db_rows_error", "critical").Inc()
		return models.Subscription{}, err
	}
	if count == 0 {
		r.log.Warn().Ctx(ctx).
			Str("id", sub.ID).
			Str("expected_status", string(expected)).
			Msg("subscription changed concurrently, update skipped")
		r.m.BusinessErrors.WithLabelValues("stale_update", "warning").Inc()
		return models.Subscription{}, models.NewConflictError("Subscription was modified concurrently")
	}

	r.log.Info().Ctx(ctx).
		Str("id", sub.ID).
		Str("status", string(sub.Status)).
		Dur("duration", dur).
		Msg("subscription updated")
	return sub, nil
}

// Delete removes the subscription and returns what was stored.
func (r *SubscriptionRepository) Delete(ctx context.Context, id string) (models.Subscription, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		r.m.TechnicalErrors.WithLabelValues("db_tx_error", "critical").Inc()
		return models.Subscription{}, err
	}
	defer func() { _ = tx.Rollback() }()

	sub, err := scanSubscription(tx.QueryRowContext(ctx,
		`SELECT `+subscriptionColumns+` FROM subscriptions WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Subscription{}, models.NewNotFoundError("Subscription not found")
	}
	if err != nil {
		r.m.TechnicalErrors.WithLabelValues("db_query_error", "critical").Inc()
		return models.Subscription{}, err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM subscriptions WHERE id = ?`, id); err != nil {
		r.log.Error().Err(err).Ctx(ctx).Str("id", id).Msg("failed to delete subscription")
		r.m.TechnicalErrors.WithLabelValues("db_delete_error", "critical").Inc()
		return models.Subscription{}, err
	}
	if err := tx.Commit(); err != nil {
		r.m.TechnicalErrors.WithLabelValues("db_tx_error", "critical").Inc()
		return models.Subscription{}, err
	}

	r.log.Info().Ctx(ctx).Str("id", id).Str("email", sub.Email).Msg("subscription deleted")
	return sub, nil
}

// List returns one page of subscriptions, newest first, and the number of rows matching filter.
func (r *SubscriptionRepository) List(
	ctx context.Context,
	filter models.SubscriptionFilter,
) ([]models.Subscription, int, error) {
	start := time.Now()

	var (
		where []string
		args  []any
	)
	if filter.Status != "" {
		where = append(where, "status = ?")
		args = append(args, string(filter.Status))
	}
	if filter.Search != "" {
		where = append(where, `email LIKE ? ESCAPE '\'`)
		args = append(args, likePattern(strings.ToLower(filter.Search)))
	}
	clause := ""
	if len(where) > 0 {
		clause = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM subscriptions`+clause, args...).Scan(&total); err != nil {
		r.log.Error().Err(err).Ctx(ctx).Msg("failed to count subscriptions")
		r.m.TechnicalErrors.WithLabelValues("db_query_error", "critical").Inc()
		return nil, 0, err
	}

	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+subscriptionColumns+` FROM subscriptions`+clause+
			` ORDER BY created_at DESC, rowid DESC LIMIT ? OFFSET ?`,
		append(args, filter.Limit, filter.Offset)...,
	)
	if err != nil {
		r.log.Error().Err(err).Ctx(ctx).Msg("failed to list subscriptions")
		r.m.TechnicalErrors.WithLabelValues("db_query_error", "critical").Inc()
		return nil, 0, err
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			r.log.Error().Err(err).Ctx(ctx).Msg("failed to close rows after query")
		}
	}(rows)

	subs := make([]models.Subscription, 0, filter.Limit)
	for rows.Next() {
		sub, err := scanSubscription(rows)
		if err != nil {
			r.log.Error().Err(err).Ctx(ctx).Msg("failed to scan subscription row")
			r.m.TechnicalErrors.WithLabelValues("db_scan_error", "critical").Inc()
			return nil, 0, err
		}
		subs = append(subs, sub)
	}
	if err := rows.Err(); err != nil {
		r.m.TechnicalErrors.WithLabelValues("db_rows_error", "critical").Inc()
		return nil, 0, err
	}

	r.log.Debug().Ctx(ctx).
		Int("count", len(subs)).
		Int("total", total).
		Dur("duration", time.Since(start)).
		Msg("listed subscriptions")
	return subs, total, nil
}

// CountByStatus groups every stored subscription by status.
func (r *SubscriptionRepository) CountByStatus(ctx context.Context) (models.StatusStats, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT status, COUNT(*) FROM subscriptions GROUP BY status`)
	if err != nil {
		r.log.Error().Err(err).Ctx(ctx).Msg("failed to count subscriptions by status")
		r.m.TechnicalErrors.WithLabelValues("db_query_error", "critical").Inc()
		return models.StatusStats{}, err
	}
	defer func() { _ = rows.Close() }()

	var stats models.StatusStats
	for rows.Next() {
		var (
			status string
			count  int
		)
		if err := rows.Scan(&status, &count); err != nil {
			r.m.TechnicalErrors.WithLabelValues("db_scan_error", "critical").Inc()
			return models.StatusStats{}, err
		}
		switch models.Status(status) {
		case models.StatusActive:
			stats.Active = count
		case models.StatusInactive:
			stats.Inactive = count
		case models.StatusUnsubscribed:
			stats.Unsubscribed = count
		}
		stats.Total += count
	}
	return stats, rows.Err()
}

func scanSubscription(row scanner) (models.Subscription, error) {
	var (
		sub              models.Subscription
		status           string
		unsubscribedDate sql.NullTime
		ipAddress        sql.NullString
		userAgent        sql.NullString
	)
	err := row.Scan(&sub.ID, &sub.Email, &status, &sub.SubscriptionDate, &unsubscribedDate,
		&sub.Source, &ipAddress, &userAgent, &sub.CreatedAt, &sub.UpdatedAt)
	if err != nil {
		return models.Subscription{}, err
	}

	sub.Status = models.Status(status)
	if unsubscribedDate.Valid {
		t := unsubscribedDate.Time
		sub.UnsubscribedDate = &t
	}
	sub.IPAddress = ipAddress.String
	sub.UserAgent = userAgent.String
	return sub, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
