package reason

import (
	"context"
	"fmt"
	"time"

	"fxconvert/internal/adapters"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const defaultRefreshInterval = 300 * time.Second

// Refresher periodically reloads the reason catalogue from the store into the cache.
type Refresher struct {
	repo     adapters.ReasonRepository
	cache    adapters.ReasonCache
	interval time.Duration
	// -----
	sched gocron.Scheduler
}

// Refresh loads all reasons once and replaces the cached catalogue.
func (r *Refresher) Refresh(ctx context.Context) error {
	reasons, err := r.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to load reasons: %w", err)
	}
	r.cache.SetAll(reasons)
	return nil
}

func (r *Refresher) Start(ctx context.Context) error {
	if err := r.Refresh(ctx); err != nil {
		return err
	}

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return err
	}
	r.sched = scheduler

	job := func(jobCtx context.Context) {
		execID := uuid.NewString()
		if refreshErr := r.Refresh(jobCtx); refreshErr != nil {
			logrus.Errorf("Reason refresh job %s failed: %v", execID, refreshErr)
			return
		}
		logrus.Debugf("Reason catalogue refreshed; execID: %s", execID)
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(r.interval),
		gocron.NewTask(job),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return err
	}

	scheduler.Start()

	go func() {
		<-ctx.Done()
		if sdErr := r.Shutdown(); sdErr != nil {
			logrus.Errorf("Reason refresher shutdown error: %v", sdErr)
		}
	}()
	return nil
}

func (r *Refresher) Shutdown() error {
	if r.sched == nil {
		return nil
	}
	err := r.sched.Shutdown()
	r.sched = nil
	return err
}

func NewRefresher(repo adapters.ReasonRepository, cache adapters.ReasonCache, interval time.Duration) *Refresher {
	if interval <= 0 {
		interval = defaultRefreshInterval
	}
	return &Refresher{repo: repo, cache: cache, interval: interval}
}
