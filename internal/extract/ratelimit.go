package extract

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/leefowlercu/cinemalens/internal/entities"
)

// NewLimiter returns a limiter allowing requestsPerMinute with a burst of a
// fifth of that, at least one.
func NewLimiter(requestsPerMinute int) *rate.Limiter {
	if requestsPerMinute < 1 {
		requestsPerMinute = 1
	}
	every := time.Minute / time.Duration(requestsPerMinute)
	return rate.NewLimiter(rate.Every(every), max(1, requestsPerMinute/5))
}

// RateLimited waits on a limiter before every extraction.
type RateLimited struct {
	Extractor
	limiter *rate.Limiter
}

// NewRateLimited wraps e with limiter.
func NewRateLimited(e Extractor, limiter *rate.Limiter) *RateLimited {
	return &RateLimited{Extractor: e, limiter: limiter}
}

// Extract implements Extractor.
func (r *RateLimited) Extract(ctx context.Context, query string) (*entities.Entities, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait; %w", err)
	}
	return r.Extractor.Extract(ctx, query)
}
