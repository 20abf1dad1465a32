package sweeper

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"github.com/segyhp/invoice-marketplace/internal/config"
	"github.com/segyhp/invoice-marketplace/pkg/logger"
)

const LockKey = "lock:offer-expiry-sweep"

type OfferSweeper interface {
	SweepExpired(ctx context.Context, now time.Time) (int64, error)
}

type Locker interface {
	TryLock(ctx context.Context, key, token string, ttl time.Duration) (bool, error)
	Unlock(ctx context.Context, key, token string) error
}

// Sweeper expires stale active offers on a schedule. Only one instance
// across all schedulers runs at a time.
type Sweeper struct {
	offers  OfferSweeper
	locker  Locker
	timeout time.Duration
	lockTTL time.Duration
	now     func() time.Time
}

func New(offers OfferSweeper, locker Locker, cfg *config.SchedulerConfig) *Sweeper {
	lockTTL := cfg.LockTTL
	if lockTTL <= 0 {
		lockTTL = cfg.SweepTimeout
	}

	return &Sweeper{
		offers:  offers,
		locker:  locker,
		timeout: cfg.SweepTimeout,
		lockTTL: lockTTL,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Register adds the sweep to c on schedule
func (s *Sweeper) Register(c *cron.Cron, schedule string) (cron.EntryID, error) {
	return c.AddFunc(schedule, s.Run)
}

// Run is the cron entry point. Failures are logged and never propagate.
func (s *Sweeper) Run() {
	ctx := context.WithValue(context.Background(), logger.RequestIDKey, "sweep-"+uuid.NewString())
	_, _, _ = s.RunOnce(ctx)
}

// RunOnce performs a single sweep. ran is false when another instance holds
// the lock. If the lock backend itself fails the sweep runs unguarded.
func (s *Sweeper) RunOnce(ctx context.Context) (swept int64, ran bool, err error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	token := uuid.NewString()
	acquired, err := s.locker.TryLock(ctx, LockKey, token, s.lockTTL)
	if err != nil {
		logger.Warn(ctx, "sweep lock unavailable, sweeping without it", "error", err)
		swept, err = s.sweep(ctx)
		return swept, true, err
	}
	if !acquired {
		logger.Debug(ctx, "sweep skipped, held by another scheduler")
		return 0, false, nil
	}
	defer func() {
		// The sweep context may be spent; release on a fresh one.
		unlockCtx, unlockCancel := context.WithTimeout(context.Background(), time.Second)
		defer unlockCancel()
		if unlockErr := s.locker.Unlock(unlockCtx, LockKey, token); unlockErr != nil {
			logger.Warn(ctx, "sweep lock release failed", "error", unlockErr)
		}
	}()

	swept, err = s.sweep(ctx)
	return swept, true, err
}

func (s *Sweeper) sweep(ctx context.Context) (int64, error) {
	start := time.Now()
	swept, err := s.offers.SweepExpired(ctx, s.now())
	if err != nil {
		logger.Error(ctx, "offer expiry sweep failed", "error", err)
		return 0, err
	}

	logger.Info(ctx, "offer expiry sweep completed",
		"expired", swept,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return swept, nil
}
