// SPDX-FileCopyrightText: The weather2wear authors
//
// SPDX-License-Identifier: MIT

package weather

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
)

// RateLimited wraps a Provider with a token bucket limiter so that user
// submissions cannot exceed the upstream API quota.
type RateLimited struct {
	provider Provider
	limiter  *rate.Limiter
}

var _ Provider = (*RateLimited)(nil)

// NewRateLimited returns a rate limited provider. rps is the maximum number of
// requests per second (fractional values allowed), burst the maximum burst size.
func NewRateLimited(provider Provider, rps float64, burst int) *RateLimited {
	return &RateLimited{
		provider: provider,
		limiter:  rate.NewLimiter(rate.Limit(rps), burst),
	}
}

// Name returns the name of the underlying provider
func (r *RateLimited) Name() string {
	return r.provider.Name()
}

// GetForecast fetches forecast data from the underlying provider, respecting
// the rate limit
func (r *RateLimited) GetForecast(ctx context.Context, location string) (*Data, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait canceled: %w", err)
	}
	return r.provider.GetForecast(ctx, location)
}
