package services

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sirupsen/logrus"

	"github.com/dungnt1702/NOV-RECO-sub000/modules/notifications/domain/notification"
	"github.com/dungnt1702/NOV-RECO-sub000/pkg/eventbus"
	"github.com/dungnt1702/NOV-RECO-sub000/pkg/logging"
)

var (
	unreadGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "chamcong",
		Subsystem: "notifications",
		Name:      "unread",
		Help:      "Unread notification count seen by the last successful poll.",
	})
	pollTicks = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "chamcong",
		Subsystem: "notifications",
		Name:      "poll_ticks_total",
		Help:      "Unread-count polls broken down by result.",
	}, []string{"result"})
)

type UnreadCounter interface {
	UnreadCount(ctx context.Context) (int, error)
}

type PollerOptions struct {
	Interval time.Duration
	Logger   *logrus.Logger
}

// Poller refreshes the unread count on a fixed interval and publishes
// UnreadChanged when it moves. A failed tick is logged and skipped.
type Poller struct {
	counter UnreadCounter
	bus     eventbus.EventBus
	opts    PollerOptions
	last    int
	seen    bool
}

func NewPoller(counter UnreadCounter, bus eventbus.EventBus, opts PollerOptions) *Poller {
	if opts.Interval <= 0 {
		opts.Interval = 30 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = logging.Nop()
	}
	return &Poller{counter: counter, bus: bus, opts: opts}
}

// Run polls once immediately, then on every tick until ctx is done.
func (p *Poller) Run(ctx context.Context) error {
	if err := p.tick(ctx); err != nil {
		return err
	}

	ticker := time.NewTicker(p.opts.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
		if err := p.tick(ctx); err != nil {
			return err
		}
	}
}

func (p *Poller) tick(ctx context.Context) error {
	if _, err := p.PollOnce(ctx); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		p.opts.Logger.WithError(err).Warn("notifications: poll tick failed")
	}
	return nil
}

// PollOnce fetches the count and publishes UnreadChanged when it differs
// from the previous successful poll (or on the first one).
func (p *Poller) PollOnce(ctx context.Context) (int, error) {
	n, err := p.counter.UnreadCount(ctx)
	if err != nil {
		pollTicks.WithLabelValues("error").Inc()
		return p.last, err
	}
	pollTicks.WithLabelValues("ok").Inc()
	unreadGauge.Set(float64(n))

	if !p.seen || n != p.last {
		prev := p.last
		p.last = n
		p.seen = true
		p.bus.Publish(&notification.UnreadChanged{Count: n, Previous: prev})
	}
	return n, nil
}
