package service

import (
	"context"

	"golang.org/x/time/rate"
)

// Throttle paces outbound calls of a batch. A zero rate disables pacing.
type Throttle struct {
	limiter *rate.Limiter
}

// NewThrottle creates a throttle allowing ratePerSecond calls with the given burst.
func NewThrottle(ratePerSecond float64, burst int) *Throttle {
	if ratePerSecond <= 0 {
		return &Throttle{}
	}
	if burst < 1 {
		burst = 1
	}
	return &Throttle{limiter: rate.NewLimiter(rate.Limit(ratePerSecond), burst)}
}

// Wait blocks until the next call may start or ctx is done.
func (t *Throttle) Wait(ctx context.Context) error {
	if t == nil || t.limiter == nil {
		return nil
	}
	return t.limiter.Wait(ctx)
}
