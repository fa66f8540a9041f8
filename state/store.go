// Package state is a small unidirectional state container: actions are
// reduced into a new immutable state, effects react to actions with
// follow-up actions, and subscribers receive every new state.
package state

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Action is anything dispatched to a Store. Type names follow the
// "[Feature] Verb Noun" convention.
type Action interface {
	Type() string
}

// Reducer computes the next state. It must not mutate prev or perform I/O.
type Reducer[S any] func(prev S, a Action) S

// Effect runs after an action has been reduced, with the resulting state,
// and returns follow-up actions to dispatch. Effects own all I/O.
type Effect[S any] func(ctx context.Context, a Action, s S) []Action

// Entry records one dispatched action.
type Entry struct {
	Type string    `json:"type"`
	At   time.Time `json:"at"`
}

// Option configures a Store.
type Option[S any] func(*Store[S])

// WithEffects registers effects in call order.
func WithEffects[S any](effects ...Effect[S]) Option[S] {
	return func(s *Store[S]) { s.effects = append(s.effects, effects...) }
}

// WithLogger logs every action at debug level.
func WithLogger[S any](l *zap.Logger) Option[S] {
	return func(s *Store[S]) { s.log = l }
}

// WithHistory keeps the last n actions. Zero disables history.
func WithHistory[S any](n int) Option[S] {
	return func(s *Store[S]) { s.maxAge = n }
}

const defaultMaxAge = 25

type Store[S any] struct {
	reducer Reducer[S]
	effects []Effect[S]
	log     *zap.Logger
	maxAge  int

	// chain serialises whole dispatch chains so an action and every
	// follow-up it causes are applied without interleaving.
	chain sync.Mutex

	mu      sync.RWMutex
	current S
	history []Entry
	subs    map[int]chan S
	nextSub int
}

func New[S any](initial S, reducer Reducer[S], opts ...Option[S]) *Store[S] {
	s := &Store[S]{
		reducer: reducer,
		log:     zap.NewNop(),
		maxAge:  defaultMaxAge,
		current: initial,
		subs:    make(map[int]chan S),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the current state.
func (s *Store[S]) State() S {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Dispatch reduces a, runs effects and every follow-up action they return,
// and returns the state after the whole chain settled. Concurrent
// dispatches are applied one chain at a time.
//
// Effects see ctx's values but not its cancellation, so the follow-up writes
// of a reduced action always run.
func (s *Store[S]) Dispatch(ctx context.Context, a Action) S {
	s.chain.Lock()
	defer s.chain.Unlock()

	ctx = context.WithoutCancel(ctx)

	queue := []Action{a}
	var last S
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]

		last = s.apply(next)
		for _, eff := range s.effects {
			queue = append(queue, eff(ctx, next, last)...)
		}
	}
	return last
}

func (s *Store[S]) apply(a Action) S {
	s.log.Debug("dispatch", zap.String("action", a.Type()))

	s.mu.Lock()
	s.current = s.reducer(s.current, a)
	next := s.current
	if s.maxAge > 0 {
		s.history = append(s.history, Entry{Type: a.Type(), At: time.Now()})
		if over := len(s.history) - s.maxAge; over > 0 {
			s.history = append(s.history[:0:0], s.history[over:]...)
		}
	}
	for _, ch := range s.subs {
		publish(ch, next)
	}
	s.mu.Unlock()
	return next
}

// publish delivers v without blocking. A full subscriber loses its oldest
// pending state so it always ends up with the latest one.
func publish[S any](ch chan S, v S) {
	for {
		select {
		case ch <- v:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}

// Subscribe returns a channel receiving the current state followed by every
// subsequent state. cancel closes the channel.
func (s *Store[S]) Subscribe(buffer int) (<-chan S, func()) {
	if buffer < 1 {
		buffer = 1
	}
	ch := make(chan S, buffer)

	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	ch <- s.current
	s.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			close(ch)
			s.mu.Unlock()
		})
	}
	return ch, cancel
}

// History returns the most recent actions, oldest first.
func (s *Store[S]) History() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Entry, len(s.history))
	copy(out, s.history)
	return out
}
