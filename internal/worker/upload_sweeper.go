package worker

import (
	"context"
	"time"

	"github.com/deringirish/PHMS/internal/service"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

const (
	sweeperLockName  = "upload-sweeper:leader"
	sweeperLockTTL   = 2 * time.Minute
	defaultSweepSpec = "@every 10m"
)

// ExpiredUploadSweeper is the slice of the report upload usecase the sweeper needs.
type ExpiredUploadSweeper interface {
	SweepExpired(ctx context.Context, now time.Time) (int, error)
}

// UploadSweeper periodically removes expired pending uploads and their
// stored reports. Only the instance holding the leader lock sweeps.
type UploadSweeper struct {
	log     *logrus.Logger
	spec    string
	locker  service.LockService
	sweeper ExpiredUploadSweeper
	now     func() time.Time

	cron   *cron.Cron
	cancel context.CancelFunc
}

func NewUploadSweeper(log *logrus.Logger, spec string, locker service.LockService, sweeper ExpiredUploadSweeper) *UploadSweeper {
	return &UploadSweeper{
		log:     log,
		spec:    spec,
		locker:  locker,
		sweeper: sweeper,
		now:     time.Now,
	}
}

func (w *UploadSweeper) Start(ctx context.Context) {
	runCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	c := cron.New()
	if _, err := c.AddFunc(w.spec, func() { w.RunOnce(runCtx) }); err != nil {
		w.log.Warnf("Invalid sweep schedule %q, falling back to %s: %+v", w.spec, defaultSweepSpec, err)
		c = cron.New()
		_, _ = c.AddFunc(defaultSweepSpec, func() { w.RunOnce(runCtx) })
	}
	c.Start()
	w.cron = c
	w.log.Infof("Upload sweeper started")
}

// Stop cancels any in-flight sweep and waits for it to return.
func (w *UploadSweeper) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	if w.cron != nil {
		<-w.cron.Stop().Done()
	}
}

// RunOnce performs a single sweep if the leader lock can be taken.
func (w *UploadSweeper) RunOnce(ctx context.Context) {
	acquired, token, err := w.locker.TryLock(ctx, sweeperLockName, sweeperLockTTL)
	if err != nil {
		return
	}
	if !acquired {
		w.log.Debugf("Upload sweep skipped, another instance holds the lock")
		return
	}
	defer w.locker.Unlock(context.WithoutCancel(ctx), sweeperLockName, token)

	removed, err := w.sweeper.SweepExpired(ctx, w.now())
	if err != nil {
		w.log.Warnf("Failed to sweep expired uploads: %+v", err)
		return
	}
	if removed > 0 {
		w.log.Infof("Removed %d expired pending uploads", removed)
	}
}
