package store

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

// Store owns the application state. Plain actions are reduced
// synchronously under a lock; thunks run on their own goroutines and
// report back through Dispatch.
type Store struct {
	mu     sync.Mutex
	state  State
	subs   map[int]func(State)
	order  []int
	nextID int

	log    *zap.Logger
	sem    *semaphore.Weighted
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// Option configures a Store.
type Option func(*Store)

func WithLogger(l *zap.Logger) Option {
	return func(s *Store) { s.log = l }
}

// WithMaxInflight caps how many thunks run at once.
func WithMaxInflight(n int64) Option {
	return func(s *Store) {
		if n > 0 {
			s.sem = semaphore.NewWeighted(n)
		}
	}
}

func New(initial State, opts ...Option) *Store {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Store{
		state:  initial,
		subs:   map[int]func(State){},
		log:    zap.NewNop(),
		sem:    semaphore.NewWeighted(4),
		ctx:    ctx,
		cancel: cancel,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetState returns the current snapshot.
func (s *Store) GetState() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispatch reduces a, or starts it when a is a Thunk. Subscribers run
// after the reduction, outside the lock, in subscription order. Thunk
// goroutines dispatch too, so subscribers may be called concurrently and
// should read GetState when they need the latest snapshot.
func (s *Store) Dispatch(a Action) {
	if t, ok := a.(Thunk); ok {
		s.run(t)
		return
	}

	s.log.Debug("dispatch", zap.String("action", a.Type()))

	s.mu.Lock()
	s.state = Reduce(s.state, a)
	next := s.state
	subs := make([]func(State), 0, len(s.order))
	for _, id := range s.order {
		subs = append(subs, s.subs[id])
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(next)
	}
}

// Subscribe registers fn and returns a function that removes it.
func (s *Store) Subscribe(fn func(State)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.order = append(s.order, id)
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := s.subs[id]; !ok {
			return
		}
		delete(s.subs, id)
		for i, v := range s.order {
			if v == id {
				s.order = append(s.order[:i:i], s.order[i+1:]...)
				break
			}
		}
	}
}

func (s *Store) run(t Thunk) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		log := s.log.With(zap.String("thunk", t.Name), zap.String("request_id", uuid.NewString()))
		if err := s.sem.Acquire(s.ctx, 1); err != nil {
			log.Warn("thunk dropped", zap.Error(err))
			return
		}
		defer s.sem.Release(1)

		log.Debug("thunk start", zap.Any("args", t.Args))
		if err := t.Run(s.ctx, s, s.GetState); err != nil {
			log.Warn("thunk failed", zap.Error(err))
			return
		}
		log.Debug("thunk done")
	}()
}

// Wait blocks until every started thunk, including thunks started by
// other thunks, has returned.
func (s *Store) Wait() {
	s.wg.Wait()
}

// Close cancels running thunks and waits for them to return.
func (s *Store) Close() {
	s.cancel()
	s.wg.Wait()
}
