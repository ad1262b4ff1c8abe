package gate

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/hairizuanbinnoorazman/readygate/logger"
)

// DefaultInterval is the delay between failed probes when none is configured.
const DefaultInterval = time.Second

// Config holds the retry policy of a gate.
type Config struct {
	Interval    time.Duration // constant delay between probes
	MaxAttempts int           // 0 means unlimited
	Timeout     time.Duration // 0 means wait forever
}

// Gate blocks until a target answers probes and then hands off to a command.
type Gate struct {
	target  string
	probe   Prober
	cfg     Config
	log     logger.Logger
	tracker *Tracker
	metrics *Metrics
}

// Option customises a Gate.
type Option func(*Gate)

// WithTracker makes the gate report progress to t.
func WithTracker(t *Tracker) Option {
	return func(g *Gate) {
		g.tracker = t
	}
}

// WithMetrics makes the gate update m.
func WithMetrics(m *Metrics) Option {
	return func(g *Gate) {
		g.metrics = m
	}
}

// New creates a gate for target.
func New(target string, probe Prober, cfg Config, log logger.Logger, opts ...Option) *Gate {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	g := &Gate{
		target: target,
		probe:  probe,
		cfg:    cfg,
		log:    log,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.tracker == nil {
		g.tracker = NewTracker(target)
	}
	return g
}

// Tracker returns the tracker the gate reports to.
func (g *Gate) Tracker() *Tracker {
	return g.tracker
}

func (g *Gate) retryPolicy(ctx context.Context) backoff.BackOffContext {
	var b backoff.BackOff = backoff.NewConstantBackOff(g.cfg.Interval)
	if g.cfg.MaxAttempts > 0 {
		b = backoff.WithMaxRetries(b, uint64(g.cfg.MaxAttempts-1))
	}
	return backoff.WithContext(b, ctx)
}

// Wait probes the target until it is reachable. It returns nil after the first
// successful probe, or an error wrapping ErrGaveUp once the attempt limit,
// the timeout or ctx is exhausted.
func (g *Gate) Wait(ctx context.Context) error {
	if g.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.cfg.Timeout)
		defer cancel()
	}

	var attempt int
	op := func() error {
		start := time.Now()
		err := g.probe.Check(ctx, g.target)
		g.metrics.observeProbe(time.Since(start), err)
		attempt = g.tracker.RecordAttempt(err)
		return err
	}

	notify := func(err error, next time.Duration) {
		g.log.Warn(ctx, g.target+" is unavailable - sleeping", map[string]interface{}{
			"target":   g.target,
			"attempt":  attempt,
			"error":    err.Error(),
			"retry_in": next.String(),
		})
	}

	err := backoff.RetryNotify(op, g.retryPolicy(ctx), notify)
	if err == nil {
		return nil
	}

	g.tracker.Finish(StateGaveUp)
	g.metrics.setState(StateGaveUp)
	g.log.Error(ctx, g.target+" is unavailable - giving up", map[string]interface{}{
		"target":   g.target,
		"attempts": attempt,
		"error":    err.Error(),
	})
	return fmt.Errorf("%w after %d attempts: %w", ErrGaveUp, attempt, err)
}

// Run waits for the target and then hands off to argv through runner. The
// returned code is the command's exit status. The command is never started
// unless Wait succeeded.
func (g *Gate) Run(ctx context.Context, runner Runner, argv []string) (int, error) {
	if err := g.Wait(ctx); err != nil {
		return 1, err
	}

	g.log.Info(ctx, g.target+" is up - executing command", map[string]interface{}{
		"target":   g.target,
		"command":  strings.Join(argv, " "),
		"attempts": g.tracker.Attempts(),
	})
	g.tracker.Finish(StateHandedOff)
	g.metrics.setState(StateHandedOff)

	return runner.Run(ctx, argv)
}
