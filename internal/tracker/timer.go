package tracker

import (
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"mastery/internal/mastery"
)

// DefaultTickInterval is how often the practice timer folds elapsed time into
// its target container.
const DefaultTickInterval = time.Second

var (
	// ErrTimerRunning is returned by Start while a previous run is active.
	ErrTimerRunning = errors.New("timer already running")

	// ErrTimerStopped is returned by Stop when no run is active.
	ErrTimerStopped = errors.New("timer not running")
)

// Timer accumulates wall-clock time into one designated container. The
// goroutine only measures elapsed deltas; every mutation goes through the
// tracker, which serializes it against manual updates. Shutdown is
// cooperative: the tick in flight when Stop is called still applies, bounded
// by the tick interval.
type Timer struct {
	tracker  *Tracker
	interval time.Duration
	logger   *zap.Logger

	mu        sync.Mutex
	target    string
	startedAt time.Time
	elapsed   time.Duration
	stop      chan struct{}
	done      chan struct{}
}

// NewTimer creates a timer bound to the tracker. interval <= 0 uses
// DefaultTickInterval.
func NewTimer(t *Tracker, interval time.Duration, logger *zap.Logger) *Timer {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Timer{tracker: t, interval: interval, logger: logger}
}

// Start begins accumulating time into the named container.
func (tm *Timer) Start(target string) error {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	if tm.stop != nil {
		return ErrTimerRunning
	}
	if _, err := tm.tracker.AddHours(target, 0); err != nil {
		return err
	}

	tm.target = target
	tm.startedAt = time.Now()
	tm.elapsed = 0
	tm.stop = make(chan struct{})
	tm.done = make(chan struct{})

	go tm.run(tm.stop, tm.done)

	tm.logger.Info("timer started", zap.String("target", target))
	return nil
}

// Stop ends the current run and waits for the loop to finish. The final
// partial tick is applied before Stop returns.
func (tm *Timer) Stop() error {
	tm.mu.Lock()
	stop, done := tm.stop, tm.done
	tm.stop = nil
	tm.done = nil
	tm.mu.Unlock()

	if stop == nil {
		return ErrTimerStopped
	}
	close(stop)
	<-done

	tm.mu.Lock()
	tm.elapsed = time.Since(tm.startedAt)
	tm.mu.Unlock()

	tm.logger.Info("timer stopped", zap.Duration("elapsed", tm.Elapsed()))
	return nil
}

// Running reports whether a run is active.
func (tm *Timer) Running() bool {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	return tm.stop != nil
}

// Target returns the container the timer is bound to.
func (tm *Timer) Target() string {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	return tm.target
}

// Elapsed returns the wall-clock duration of the current run, or of the last
// run once stopped.
func (tm *Timer) Elapsed() time.Duration {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	if tm.stop != nil {
		return time.Since(tm.startedAt)
	}
	return tm.elapsed
}

func (tm *Timer) run(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(tm.interval)
	defer ticker.Stop()

	last := time.Now()
	apply := func() {
		now := time.Now()
		delta := now.Sub(last)
		last = now
		if _, err := tm.tracker.AddHours(tm.Target(), delta.Hours()); err != nil {
			if errors.Is(err, mastery.ErrContainerNotFound) {
				// Target was deleted mid-run; stop accumulating.
				return
			}
			tm.logger.Warn("timer tick not persisted", zap.Error(err))
		}
	}

	for {
		select {
		case <-stop:
			apply()
			return
		case <-ticker.C:
			apply()
		}
	}
}
