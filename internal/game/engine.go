package game

import (
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjack/internal/count"
	"github.com/lox/blackjack/internal/deck"
)

// Observer receives a snapshot after every accepted event that changed the
// round.
type Observer interface {
	OnSnapshot(s Snapshot)
}

// ObserverFunc adapts a function to an Observer
type ObserverFunc func(s Snapshot)

func (f ObserverFunc) OnSnapshot(s Snapshot) { f(s) }

// Option configures an Engine during creation.
type Option func(*engineConfig)

type subscription struct {
	id       int
	observer Observer
}

type engineConfig struct {
	rules   Rules
	stacked []deck.Card
}

// WithRules sets the table rules. Default is DefaultRules().
func WithRules(rules Rules) Option {
	return func(c *engineConfig) {
		c.rules = rules
	}
}

// WithStackedCards puts the given cards at the front of the freshly
// shuffled shoe, in order. Used to script deals in tests.
func WithStackedCards(cards ...deck.Card) Option {
	return func(c *engineConfig) {
		c.stacked = cards
	}
}

// Engine is the round state machine. Events are applied one at a time;
// Send is safe to call from multiple goroutines.
type Engine struct {
	mu        sync.Mutex
	round     *round
	observers []subscription
	nextID    int
	logger    *log.Logger
}

// NewEngine creates an engine with a shuffled shoe and every seat holding a
// single empty hand. The RNG is required so shuffles are reproducible.
func NewEngine(rng *rand.Rand, seats []Seat, logger *log.Logger, opts ...Option) *Engine {
	if rng == nil {
		panic("rng is required for engine creation")
	}
	if len(seats) == 0 {
		panic("at least 1 seat required")
	}

	cfg := &engineConfig{rules: DefaultRules()}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.rules.Decks < 1 {
		panic("at least 1 deck required")
	}

	logger = logger.WithPrefix("engine")
	tracker := count.NewTracker()
	shoe := deck.NewShoe(rng, cfg.rules.Decks, tracker)
	shoe.Shuffle()
	if len(cfg.stacked) > 0 {
		if err := shoe.Stack(cfg.stacked...); err != nil {
			panic(fmt.Sprintf("stacking shoe: %v", err))
		}
	}

	players := make([]Player, len(seats))
	for i, s := range seats {
		players[i] = Player{
			ID:        s.ID,
			Name:      s.Name,
			Balance:   s.Balance,
			Archetype: s.Archetype,
			Hands:     []Hand{{}},
		}
	}

	return &Engine{
		round: &round{
			number:  1,
			phase:   Idle,
			shoe:    shoe,
			tracker: tracker,
			players: players,
			rules:   cfg.rules,
			logger:  logger,
		},
		logger: logger,
	}
}

// Send applies one event atomically. On success it returns the new snapshot;
// on error the round is unchanged and the returned snapshot is the current
// one.
func (e *Engine) Send(ev Event) (Snapshot, error) {
	e.mu.Lock()
	next := e.round.clone()
	changed, err := next.apply(ev)
	if err != nil {
		snap := e.round.snapshot()
		e.mu.Unlock()
		e.logger.Debug("Event rejected", "event", ev, "phase", snap.Phase, "error", err)
		return snap, fmt.Errorf("%s: %w", ev.Type(), err)
	}

	if changed {
		next.version++
		e.round = next
	}
	snap := e.round.snapshot()
	observers := append([]subscription(nil), e.observers...)
	e.mu.Unlock()

	e.logger.Debug("Event applied", "event", ev, "phase", snap.Phase, "turn", snap.Turn, "version", snap.Version)
	if changed {
		for _, sub := range observers {
			sub.observer.OnSnapshot(snap)
		}
	}
	return snap, nil
}

// Snapshot returns a deep copy of the current round.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.round.snapshot()
}

// Subscribe adds an observer and returns a function that removes it.
func (e *Engine) Subscribe(o Observer) (unsubscribe func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.nextID++
	id := e.nextID
	e.observers = append(e.observers, subscription{id: id, observer: o})
	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		for i, sub := range e.observers {
			if sub.id == id {
				e.observers = append(e.observers[:i:i], e.observers[i+1:]...)
				return
			}
		}
	}
}
