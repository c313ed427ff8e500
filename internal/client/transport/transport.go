// Package transport собирает слоёный HTTP-транспорт для походов в бэкенд:
// базовый клиент, поверх него ретраи с backoff, поверх — ограничение
// одновременных запросов.
package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"net"
	"net/http"
	"strconv"
	"time"
)

type Transport interface {
	Do(req *http.Request) (*http.Response, error)
}

type Options struct {
	HTTPClient  *http.Client
	Retries     int
	Concurrency int // 0 = без лимита
	BaseDelay   time.Duration
	MaxDelay    time.Duration
	Logger      *slog.Logger
}

func Build(opts Options) (Transport, error) {
	if opts.HTTPClient == nil {
		return nil, fmt.Errorf("HTTPClient is nil")
	}
	if opts.Retries < 0 || opts.Concurrency < 0 {
		return nil, fmt.Errorf("Retries and Concurrency must be >= 0")
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.BaseDelay <= 0 {
		opts.BaseDelay = 300 * time.Millisecond
	}
	if opts.MaxDelay <= 0 {
		opts.MaxDelay = 8 * time.Second
	}

	var t Transport = &plain{client: opts.HTTPClient}

	if opts.Retries > 0 {
		t = &retrier{
			base:     t,
			attempts: opts.Retries + 1,
			delay:    opts.BaseDelay,
			maxDelay: opts.MaxDelay,
			log:      opts.Logger,
		}
	}

	if opts.Concurrency > 0 {
		t = &limiter{base: t, slots: make(chan struct{}, opts.Concurrency)}
	}

	return t, nil
}

type plain struct {
	client *http.Client
}

func (p *plain) Do(req *http.Request) (*http.Response, error) {
	return p.client.Do(req)
}

type limiter struct {
	base  Transport
	slots chan struct{}
}

func (l *limiter) Do(req *http.Request) (*http.Response, error) {
	select {
	case l.slots <- struct{}{}:
	case <-req.Context().Done():
		return nil, req.Context().Err()
	}
	defer func() { <-l.slots }()

	return l.base.Do(req)
}

type retrier struct {
	base     Transport
	attempts int
	delay    time.Duration
	maxDelay time.Duration
	log      *slog.Logger
}

func (r *retrier) Do(req *http.Request) (*http.Response, error) {
	var lastErr error

	for attempt := 1; attempt <= r.attempts; attempt++ {
		if err := req.Context().Err(); err != nil {
			return nil, err
		}

		cur, err := cloneForRetry(req)
		if err != nil {
			return nil, err
		}

		resp, err := r.base.Do(cur)

		switch {
		case err == nil && !retryableStatus(resp.StatusCode):
			return resp, nil

		case err == nil:
			// ретраябельный статус: тело дочитываем и закрываем
			_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 32*1024))
			_ = resp.Body.Close()
			lastErr = fmt.Errorf("retryable status=%d", resp.StatusCode)

			r.log.Warn("retryable status",
				"attempt", attempt,
				"max_attempts", r.attempts,
				"status", resp.StatusCode,
				"url", req.URL.String(),
			)

			if resp.StatusCode == http.StatusTooManyRequests && attempt < r.attempts {
				if d := retryAfter(resp); d > 0 {
					if err := sleepCtx(req.Context(), d); err != nil {
						return nil, err
					}
					continue
				}
			}

		default:
			if !retryableError(err) {
				return nil, err
			}
			lastErr = err

			r.log.Warn("retryable error",
				"attempt", attempt,
				"max_attempts", r.attempts,
				"err", err,
				"url", req.URL.String(),
			)
		}

		if attempt == r.attempts {
			break
		}
		if err := sleepCtx(req.Context(), backoff(r.delay, r.maxDelay, attempt)); err != nil {
			return nil, err
		}
	}

	return nil, lastErr
}

func retryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || (code >= 500 && code <= 599)
}

func retryableError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

func backoff(base, max time.Duration, attempt int) time.Duration {
	d := base << (attempt - 1)
	if d > max {
		d = max
	}
	// джиттер 0.5..1.5
	return time.Duration(float64(d) * (0.5 + rand.Float64()))
}

func retryAfter(resp *http.Response) time.Duration {
	sec, err := strconv.Atoi(resp.Header.Get("Retry-After"))
	if err != nil || sec <= 0 {
		return 0
	}
	if sec > 60 {
		sec = 60
	}
	return time.Duration(sec) * time.Second
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func cloneForRetry(req *http.Request) (*http.Request, error) {
	cloned := req.Clone(req.Context())

	if req.Body == nil || req.Body == http.NoBody {
		return cloned, nil
	}
	if req.GetBody == nil {
		return nil, fmt.Errorf("cannot retry request with body: GetBody is nil")
	}
	b, err := req.GetBody()
	if err != nil {
		return nil, fmt.Errorf("cannot retry request with body: GetBody failed: %w", err)
	}
	cloned.Body = b
	return cloned, nil
}
