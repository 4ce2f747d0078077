// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pacer spaces out calls to remote services by a fixed interval.
// The first call passes immediately; each later call waits until the
// interval has elapsed since the previous one.
package pacer

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Pacer enforces a minimum gap between consecutive calls.
// A zero interval disables pacing.
type Pacer struct {
	limiter *rate.Limiter
}

// New returns a Pacer that admits one call per interval.
func New(interval time.Duration) *Pacer {
	if interval <= 0 {
		return &Pacer{limiter: rate.NewLimiter(rate.Inf, 1)}
	}
	return &Pacer{limiter: rate.NewLimiter(rate.Every(interval), 1)}
}

// Wait blocks until the next call is allowed or ctx is done.
func (p *Pacer) Wait(ctx context.Context) error {
	if p == nil {
		return ctx.Err()
	}
	return p.limiter.Wait(ctx)
}
