package httpapi

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// QuotaHeaders names the response headers carrying the API quota.
type QuotaHeaders struct {
	Remaining string
	Reset     string
}

// Quota header dialects.
var (
	// GitHubHeaders are the headers sent by api.github.com.
	GitHubHeaders = QuotaHeaders{Remaining: "X-RateLimit-Remaining", Reset: "X-RateLimit-Reset"}

	// GitLabHeaders are the headers sent by GitLab instances.
	GitLabHeaders = QuotaHeaders{Remaining: "RateLimit-Remaining", Reset: "RateLimit-Reset"}
)

const (
	// DefaultRate is the proactive request rate per second.
	DefaultRate = 5.0

	// MinBuffer is the remaining quota below which requests wait for the reset.
	MinBuffer = 10
)

// RateLimiter throttles requests with a token bucket and pauses until the
// quota reset when the API reports that few requests remain.
type RateLimiter struct {
	mu        sync.Mutex
	headers   QuotaHeaders
	remaining int
	resetTime time.Time
	bucket    *rate.Limiter
	minBuffer int
}

// NewRateLimiter creates a limiter allowing perSecond requests.
// A non-positive rate disables proactive throttling.
func NewRateLimiter(perSecond float64, headers QuotaHeaders) *RateLimiter {
	limit := rate.Inf
	if perSecond > 0 {
		limit = rate.Limit(perSecond)
	}
	return &RateLimiter{
		headers:   headers,
		remaining: -1,
		bucket:    rate.NewLimiter(limit, 1),
		minBuffer: MinBuffer,
	}
}

// Wait blocks until it's safe to make a request.
func (r *RateLimiter) Wait(ctx context.Context) error {
	if err := r.bucket.Wait(ctx); err != nil {
		return err
	}

	r.mu.Lock()
	remaining := r.remaining
	resetTime := r.resetTime
	r.mu.Unlock()

	if remaining >= 0 && remaining < r.minBuffer && time.Now().Before(resetTime) {
		timer := time.NewTimer(time.Until(resetTime))
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}

	return nil
}

// UpdateFromResponse updates the quota from response headers.
func (r *RateLimiter) UpdateFromResponse(resp *http.Response) {
	if resp == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if v := resp.Header.Get(r.headers.Remaining); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			r.remaining = n
		}
	}
	if v := resp.Header.Get(r.headers.Reset); v != "" {
		if ts, err := strconv.ParseInt(v, 10, 64); err == nil {
			r.resetTime = time.Unix(ts, 0)
		}
	}
	if v := resp.Header.Get("Retry-After"); v != "" && resp.StatusCode == http.StatusTooManyRequests {
		if seconds, err := strconv.Atoi(v); err == nil {
			r.remaining = 0
			r.resetTime = time.Now().Add(time.Duration(seconds) * time.Second)
		}
	}
}

// Remaining returns the last reported quota, or -1 when unknown.
func (r *RateLimiter) Remaining() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.remaining
}
