package store

import (
	"context"
	"errors"
	"time"
)

type timeoutService struct {
	svc     Service
	timeout time.Duration
}

// WithTimeout bounds every call to svc by timeout. A call that runs out of
// time returns ErrTimeout.
func WithTimeout(svc Service, timeout time.Duration) Service {
	return &timeoutService{svc: svc, timeout: timeout}
}

type result struct {
	data  []byte
	names []string
	err   error
}

func (t *timeoutService) run(ctx context.Context, fn func(ctx context.Context) result) result {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	done := make(chan result, 1)
	go func() { done <- fn(ctx) }()

	select {
	case r := <-done:
		if errors.Is(r.err, context.DeadlineExceeded) {
			r.err = ErrTimeout
		}
		return r
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return result{err: ErrTimeout}
		}
		return result{err: ctx.Err()}
	}
}

func (t *timeoutService) Load(ctx context.Context, name string) ([]byte, error) {
	r := t.run(ctx, func(ctx context.Context) result {
		data, err := t.svc.Load(ctx, name)
		return result{data: data, err: err}
	})
	return r.data, r.err
}

func (t *timeoutService) Save(ctx context.Context, name string, data []byte) error {
	r := t.run(ctx, func(ctx context.Context) result {
		return result{err: t.svc.Save(ctx, name, data)}
	})
	return r.err
}

func (t *timeoutService) List(ctx context.Context) ([]string, error) {
	r := t.run(ctx, func(ctx context.Context) result {
		names, err := t.svc.List(ctx)
		return result{names: names, err: err}
	})
	return r.names, r.err
}
