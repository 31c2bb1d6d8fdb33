package runtime

import (
	"math/rand"
	"time"
)

type Backoff struct {
	BaseDelay time.Duration
	MaxDelay  time.Duration
}

func DefaultBackoff() Backoff {
	return Backoff{
		BaseDelay: 1 * time.Second,
		MaxDelay:  30 * time.Second,
	}
}

// NextDelay computes the wait before retry number attempt (1-based) using
// exponential growth with full jitter: random in [0, base*2^(attempt-1)],
// capped at MaxDelay. Jitter spreads retries of simultaneously failing
// records so an endpoint coming back up is not hammered in lockstep.
func (b Backoff) NextDelay(attempt int, rng *rand.Rand) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	base := b.BaseDelay
	if base <= 0 {
		base = time.Second
	}
	max := b.MaxDelay
	if max <= 0 {
		max = 30 * time.Second
	}

	delay := base << (attempt - 1)
	if delay > max || delay <= 0 {
		delay = max
	}

	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return time.Duration(rng.Int63n(int64(delay) + 1))
}
