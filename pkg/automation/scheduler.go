package automation

import (
	"context"
	"log"
	"sync"
	"time"
)

// JobFunc runs one scheduled job.
type JobFunc func(ctx context.Context) error

type job struct {
	name   string
	kind   string
	expr   string
	tz     string
	fn     JobFunc
	nextAt time.Time
}

// Scheduler runs registered jobs on their schedules using a single
// polling loop, the same ticker/stop-channel shape as a long-lived
// background service.
type Scheduler struct {
	pollInterval time.Duration

	mu   sync.Mutex
	jobs []*job

	stop chan struct{}
	wg   sync.WaitGroup
}

// NewScheduler creates a scheduler polling at the given interval.
func NewScheduler(pollInterval time.Duration) *Scheduler {
	if pollInterval <= 0 {
		pollInterval = 15 * time.Second
	}
	return &Scheduler{
		pollInterval: pollInterval,
		stop:         make(chan struct{}),
	}
}

// AddJob registers a job. The first run is scheduled from now.
func (s *Scheduler) AddJob(name, kind, expr, tz string, fn JobFunc) error {
	next, err := NextRun(kind, expr, tz, time.Now().UTC())
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs = append(s.jobs, &job{
		name:   name,
		kind:   kind,
		expr:   expr,
		tz:     tz,
		fn:     fn,
		nextAt: next,
	})
	return nil
}

// Start begins the polling loop.
func (s *Scheduler) Start() {
	s.wg.Add(1)
	go s.loop()
}

// Stop stops the polling loop and waits for shutdown.
func (s *Scheduler) Stop() {
	close(s.stop)
	s.wg.Wait()
}

func (s *Scheduler) loop() {
	defer s.wg.Done()
	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.runDue(context.Background(), time.Now().UTC())
		case <-s.stop:
			return
		}
	}
}

func (s *Scheduler) runDue(ctx context.Context, now time.Time) {
	for _, j := range s.due(now) {
		if err := j.fn(ctx); err != nil {
			log.Printf("automation: job %s failed: %v", j.name, err)
		}
	}
}

// due collects the jobs whose next run has passed and reschedules
// them before they execute, so a slow job cannot double-fire.
func (s *Scheduler) due(now time.Time) []*job {
	s.mu.Lock()
	defer s.mu.Unlock()

	var ready []*job
	for _, j := range s.jobs {
		if j.nextAt.After(now) {
			continue
		}
		next, err := NextRun(j.kind, j.expr, j.tz, now)
		if err != nil {
			// Validated at AddJob time; only a removed timezone
			// database entry can get here.
			log.Printf("automation: cannot reschedule job %s: %v", j.name, err)
			j.nextAt = now.Add(24 * time.Hour)
		} else {
			j.nextAt = next
		}
		ready = append(ready, j)
	}
	return ready
}
