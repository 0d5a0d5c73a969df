package feed

import (
	"context"
	"log"
	"sync"
	"time"
)

// RunLocker guards a run across replicas. Implemented by redissvc; nil means
// the in-process lock alone decides.
type RunLocker interface {
	AcquireRunLock(ttl time.Duration) (bool, error)
	ReleaseRunLock() error
	RecordRun(status string, at time.Time) error
}

// Scheduler triggers pipeline runs on a fixed interval after an initial
// startup delay. At most one run is active at a time: a tick that lands
// while a run is in flight is skipped, not queued.
type Scheduler struct {
	syncer       *Syncer
	interval     time.Duration
	initialDelay time.Duration
	locker       RunLocker

	running sync.Mutex
}

func NewScheduler(syncer *Syncer, interval, initialDelay time.Duration, locker RunLocker) *Scheduler {
	return &Scheduler{
		syncer:       syncer,
		interval:     interval,
		initialDelay: initialDelay,
		locker:       locker,
	}
}

// Start blocks until ctx is cancelled, running the pipeline after the
// initial delay and then once per interval. Run failures are logged and the
// schedule carries on.
func (s *Scheduler) Start(ctx context.Context) {
	select {
	case <-ctx.Done():
		return
	case <-time.After(s.initialDelay):
	}

	s.RunOnce()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.RunOnce()
		}
	}
}

// RunOnce performs a single guarded run. It returns false when the run was
// skipped because another run still holds a lock.
func (s *Scheduler) RunOnce() bool {
	if !s.running.TryLock() {
		log.Printf("Skipping feed sync: previous run still in progress")
		return false
	}
	defer s.running.Unlock()

	if s.locker != nil {
		ok, err := s.locker.AcquireRunLock(s.interval)
		if err != nil {
			log.Printf("Could not acquire sync lock: %v", err)
			return false
		}
		if !ok {
			log.Printf("Skipping feed sync: lock held by another instance")
			return false
		}
		defer func() {
			if err := s.locker.ReleaseRunLock(); err != nil {
				log.Printf("Could not release sync lock: %v", err)
			}
		}()
	}

	status := "ok"
	if _, err := s.syncer.Run(); err != nil {
		status = "failed"
		log.Printf("Feed sync failed: %v", err)
	}

	if s.locker != nil {
		if err := s.locker.RecordRun(status, time.Now().UTC()); err != nil {
			log.Printf("Could not record run status: %v", err)
		}
	}
	return true
}
