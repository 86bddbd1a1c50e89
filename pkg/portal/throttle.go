package portal

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/dungnt1702/NOV-RECO-sub000/pkg/serrors"
)

// throttle caps outgoing requests per period. Paged loads and exports
// otherwise fire every page back to back.
type throttle struct {
	lim *limiter.Limiter
	key string
}

// newThrottle parses a "<n>-<S|M|H>" rate. An empty rate disables it.
func newThrottle(rate, key string) (*throttle, error) {
	rate = strings.TrimSpace(rate)
	if rate == "" {
		return nil, nil
	}
	r, err := limiter.NewRateFromFormatted(rate)
	if err != nil {
		return nil, serrors.Validation("rate_limit", "INVALID_RATE_LIMIT", fmt.Sprintf("invalid rate limit: %q", rate), "Validation.Invalid")
	}
	return &throttle{lim: limiter.New(memory.NewStore(), r), key: key}, nil
}

// wait blocks until a slot is free or ctx is done.
func (t *throttle) wait(ctx context.Context) error {
	if t == nil {
		return nil
	}
	for {
		lc, err := t.lim.Get(ctx, t.key)
		if err != nil {
			return serrors.Transport("rate limit", err)
		}
		if !lc.Reached {
			return nil
		}
		d := time.Until(time.Unix(lc.Reset, 0))
		if d < 10*time.Millisecond {
			d = 10 * time.Millisecond
		}
		timer := time.NewTimer(d)
		select {
		case <-ctx.Done():
			timer.Stop()
			return serrors.Transport("rate limit wait", ctx.Err())
		case <-timer.C:
		}
	}
}
