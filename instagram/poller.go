package instagram

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

// Poller retries a status check until it reports done, an attempt
// budget runs out, or the context ends.
type Poller struct {
	MaxAttempts int
	Interval    time.Duration
}

// Do invokes fn up to MaxAttempts times, sleeping Interval between
// attempts. fn returns done=true to stop successfully; an error from fn
// stops immediately.
func (p Poller) Do(ctx context.Context, fn func() (bool, error)) error {
	attempts := p.MaxAttempts
	if attempts <= 0 {
		attempts = 1
	}
	for i := 0; i < attempts; i++ {
		done, err := fn()
		if err != nil {
			return err
		}
		if done {
			return nil
		}
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(p.Interval):
		}
	}
	return errors.Errorf("status not ready after %d attempts", attempts)
}
