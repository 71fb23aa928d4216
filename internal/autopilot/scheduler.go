package autopilot

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/blackjack/internal/game"
)

const (
	DefaultPlayerDelay = 500 * time.Millisecond
	DefaultStartDelay  = 300 * time.Millisecond
)

// SchedulerOption configures a Scheduler
type SchedulerOption func(*Scheduler)

// WithPlayerDelay sets the pause before an automated bet or action.
func WithPlayerDelay(d time.Duration) SchedulerOption {
	return func(s *Scheduler) { s.playerDelay = d }
}

// WithStartDelay sets the pause before dealing once everyone is ready.
func WithStartDelay(d time.Duration) SchedulerOption {
	return func(s *Scheduler) { s.startDelay = d }
}

// Scheduler watches engine snapshots and sends the planner's next event
// after a delay. A planned event is dropped if the round changed before it
// fired.
type Scheduler struct {
	mu          sync.Mutex
	engine      Sender
	planner     *Planner
	clock       quartz.Clock
	playerDelay time.Duration
	startDelay  time.Duration
	timer       *quartz.Timer
	running     bool
	logger      *log.Logger
}

// NewScheduler creates a stopped scheduler. Subscribe it to the engine and
// call Start.
func NewScheduler(engine Sender, planner *Planner, clock quartz.Clock, logger *log.Logger, opts ...SchedulerOption) *Scheduler {
	s := &Scheduler{
		engine:      engine,
		planner:     planner,
		clock:       clock,
		playerDelay: DefaultPlayerDelay,
		startDelay:  DefaultStartDelay,
		logger:      logger.WithPrefix("scheduler"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start plans from the engine's current snapshot.
func (s *Scheduler) Start() {
	s.mu.Lock()
	s.running = true
	s.mu.Unlock()
	s.OnSnapshot(s.engine.Snapshot())
}

// Stop cancels any pending event.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = false
	s.cancelLocked()
}

// OnSnapshot replaces any pending event with the plan for snap.
func (s *Scheduler) OnSnapshot(snap game.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	s.cancelLocked()

	ev, ok, err := s.planner.Next(snap)
	if err != nil {
		s.logger.Error("Planning failed", "error", err)
		return
	}
	if !ok {
		return
	}

	delay := s.playerDelay
	if ev.Type() == game.EventStartGame {
		delay = s.startDelay
	}
	version := snap.Version
	s.logger.Debug("Scheduled", "event", ev, "delay", delay, "version", version)
	s.timer = s.clock.AfterFunc(delay, func() {
		s.fire(ev, version)
	}, "scheduler", string(ev.Type()))
}

func (s *Scheduler) fire(ev game.Event, version uint64) {
	s.mu.Lock()
	stale := !s.running || s.engine.Snapshot().Version != version
	s.mu.Unlock()
	if stale {
		s.logger.Debug("Dropped stale event", "event", ev)
		return
	}

	if _, err := s.engine.Send(ev); err != nil {
		s.logger.Warn("Scheduled event rejected", "event", ev, "error", err)
	}
}

func (s *Scheduler) cancelLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
