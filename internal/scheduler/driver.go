package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/hamed0406/uptimeping/internal/config"
	"github.com/hamed0406/uptimeping/internal/domain"
	"github.com/hamed0406/uptimeping/internal/probe"
)

type Reporter interface {
	Report(res domain.ProbeResult)
}

// Driver runs the probe loop for a single target: probe, report, wait
// Frequency, repeat until Duration has passed or the context is cancelled.
type Driver struct {
	Logger    *zap.Logger
	Checker   probe.Checker
	Reporter  Reporter
	Target    string
	Duration  time.Duration
	Frequency time.Duration
	Timeout   time.Duration

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

func NewDriver(
	logger *zap.Logger,
	checker probe.Checker,
	reporter Reporter,
	cfg config.Config,
) *Driver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Driver{
		Logger:    logger,
		Checker:   checker,
		Reporter:  reporter,
		Target:    cfg.Target,
		Duration:  cfg.Duration,
		Frequency: cfg.Frequency,
		Timeout:   cfg.Timeout,
		now:       time.Now,
		sleep:     sleepContext,
	}
}

// Run blocks until the run is over. It returns nil once Duration has elapsed
// and ctx.Err() if ctx is cancelled first; with a zero Duration only
// cancellation ends it. A probe already in flight is never cut short.
func (d *Driver) Run(ctx context.Context) error {
	start := d.now()
	d.Logger.Info("probe_loop_started",
		zap.String("target", d.Target),
		zap.Duration("duration", d.Duration),
		zap.Duration("frequency", d.Frequency),
		zap.Duration("timeout", d.Timeout),
	)

	probes := 0
	for {
		if d.expired(start) {
			d.Logger.Info("probe_loop_finished", zap.Int("probes", probes))
			return nil
		}
		if err := ctx.Err(); err != nil {
			d.Logger.Info("probe_loop_cancelled", zap.Int("probes", probes))
			return err
		}

		d.Reporter.Report(d.probeOnce(ctx))
		probes++

		if err := d.sleep(ctx, d.Frequency); err != nil {
			d.Logger.Info("probe_loop_cancelled", zap.Int("probes", probes))
			return err
		}
	}
}

func (d *Driver) probeOnce(ctx context.Context) domain.ProbeResult {
	cctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.Timeout)
	defer cancel()
	return d.Checker.Check(cctx, d.Target)
}

// expired compares whole seconds since start against Duration. The boundary
// second itself still gets a probe.
func (d *Driver) expired(start time.Time) bool {
	if d.Duration <= 0 {
		return false
	}
	elapsed := d.now().Sub(start).Truncate(time.Second)
	return elapsed > d.Duration
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
