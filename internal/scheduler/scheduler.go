package scheduler

import (
	"context"
	"errors"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

var (
	ErrSchedulerClosed = errors.New("scheduler is shut down")
	ErrInvalidInterval = errors.New("interval must be positive")
)

// Handle identifies one registration of a key. Re-registering the same key
// yields a new handle, so a stale handle can never cancel its successor.
type Handle struct {
	Key string
	gen uint64
}

type entry struct {
	id  cron.EntryID
	gen uint64
}

// Scheduler runs keyed recurring jobs. A job never overlaps with itself, a
// tick that comes due while the previous one is still running is skipped.
type Scheduler struct {
	mu      sync.Mutex
	cron    *cron.Cron
	entries map[string]entry
	gen     uint64
	closing atomic.Bool
}

func New(logger zerolog.Logger) *Scheduler {
	cronLogger := zerologAdapter{logger: logger}
	c := cron.New(
		cron.WithLogger(cronLogger),
		cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
	)
	c.Start()
	return &Scheduler{
		cron:    c,
		entries: make(map[string]entry),
	}
}

// Start registers fn to run every interval under key, replacing any existing
// registration of that key. The first run happens one interval from now.
func (s *Scheduler) Start(key string, interval time.Duration, fn func(Handle)) (Handle, error) {
	if interval <= 0 {
		return Handle{}, ErrInvalidInterval
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closing.Load() {
		return Handle{}, ErrSchedulerClosed
	}

	s.removeLocked(key)
	s.gen++
	handle := Handle{Key: key, gen: s.gen}
	id := s.cron.Schedule(every(interval), cron.FuncJob(func() {
		// A tick may already be dispatched when its key is removed.
		if !s.isCurrent(handle) {
			return
		}
		fn(handle)
	}))
	s.entries[key] = entry{id: id, gen: handle.gen}
	return handle, nil
}

// Stop removes whatever is registered under key.
func (s *Scheduler) Stop(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.removeLocked(key)
}

// Cancel removes the registration only if it is still the one h refers to.
func (s *Scheduler) Cancel(h Handle) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.entries[h.Key]
	if !ok || current.gen != h.gen {
		return false
	}
	return s.removeLocked(h.Key)
}

func (s *Scheduler) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]string, 0, len(s.entries))
	for key := range s.entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Shutdown cancels every registration and waits for running jobs to return
// or ctx to expire. No job starts once Shutdown has been called.
func (s *Scheduler) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	s.closing.Store(true)
	for key := range s.entries {
		s.removeLocked(key)
	}
	s.mu.Unlock()

	stopped := s.cron.Stop()
	select {
	case <-stopped.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Scheduler) isCurrent(h Handle) bool {
	if s.closing.Load() {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.entries[h.Key]
	return ok && current.gen == h.gen
}

func (s *Scheduler) removeLocked(key string) bool {
	current, ok := s.entries[key]
	if !ok {
		return false
	}
	s.cron.Remove(current.id)
	delete(s.entries, key)
	return true
}

// every is a fixed-interval schedule. cron.Every truncates to whole seconds.
type every time.Duration

func (e every) Next(t time.Time) time.Time {
	return t.Add(time.Duration(e))
}

type zerologAdapter struct {
	logger zerolog.Logger
}

func (a zerologAdapter) Info(msg string, keysAndValues ...interface{}) {
	a.logger.Debug().Fields(keysAndValues).Msg(msg)
}

func (a zerologAdapter) Error(err error, msg string, keysAndValues ...interface{}) {
	a.logger.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
