package cache

import (
	"context"
	"errors"
	"time"
)

type cache[T any] interface {
	Set(ctx context.Context, key string, value T, expiration time.Duration) error
	Get(ctx context.Context, key string, returnValue *T) error
	Delete(ctx context.Context, keys ...string) error
}

type metricsRecorder interface {
	RecordCache(operation string, err error)
}

// MetricsDecorator counts cache operations. A miss is recorded as operation "miss".
type MetricsDecorator[T any] struct {
	next     cache[T]
	recorder metricsRecorder
}

func NewMetricsDecorator[T any](next cache[T], recorder metricsRecorder) *MetricsDecorator[T] {
	return &MetricsDecorator[T]{next: next, recorder: recorder}
}

func (m *MetricsDecorator[T]) Set(
	ctx context.Context,
	key string,
	value T,
	expiration time.Duration,
) error {
	err := m.next.Set(ctx, key, value, expiration)
	m.recorder.RecordCache("set", err)
	return err
}

func (m *MetricsDecorator[T]) Get(
	ctx context.Context,
	key string,
	returnValue *T,
) error {
	err := m.next.Get(ctx, key, returnValue)
	switch {
	case errors.Is(err, ErrMiss):
		m.recorder.RecordCache("miss", nil)
	default:
		m.recorder.RecordCache("get", err)
	}
	return err
}

func (m *MetricsDecorator[T]) Delete(ctx context.Context, keys ...string) error {
	err := m.next.Delete(ctx, keys...)
	m.recorder.RecordCache("delete", err)
	return err
}
