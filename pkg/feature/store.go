package feature

import (
	"context"
	"sync"
)

// Reducer is the pure transition function of a feature: given the current
// state snapshot and an action, produce the next snapshot and an effect.
type Reducer[S any] func(S, Action) (S, Effect)

// Store drives a single feature instance. Actions are processed in FIFO
// order on one goroutine, so reducer invocations never run concurrently
// against the same state tree. Effects run as independent goroutines and
// re-enter the loop through Dispatch.
type Store[S any] struct {
	mu      sync.RWMutex
	state   S
	reduce  Reducer[S]
	actions chan Action

	ctx    context.Context
	cancel context.CancelFunc

	keyMu sync.Mutex
	keyed map[string]*keyedTask

	pending   sync.WaitGroup
	closeOnce sync.Once
	closed    chan struct{}
}

type keyedTask struct {
	cancel context.CancelFunc
}

// NewStore starts a store at the initial state.
func NewStore[S any](initial S, reduce Reducer[S]) *Store[S] {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Store[S]{
		state:   initial,
		reduce:  reduce,
		actions: make(chan Action, 64),
		ctx:     ctx,
		cancel:  cancel,
		keyed:   make(map[string]*keyedTask),
		closed:  make(chan struct{}),
	}
	go s.loop()
	return s
}

// State returns the current state snapshot.
func (s *Store[S]) State() S {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Dispatch enqueues an action. Dispatching to a closed store is a no-op.
func (s *Store[S]) Dispatch(a Action) {
	select {
	case <-s.closed:
		return
	default:
	}
	select {
	case <-s.closed:
	case s.actions <- a:
	}
}

// Close cancels all in-flight effects and stops the dispatch loop.
// Queued actions still waiting are discarded.
func (s *Store[S]) Close() {
	s.closeOnce.Do(func() {
		close(s.closed)
		s.cancel()
		s.pending.Wait()
	})
}

func (s *Store[S]) loop() {
	for {
		select {
		case <-s.closed:
			return
		case a := <-s.actions:
			s.mu.Lock()
			next, eff := s.reduce(s.state, a)
			s.state = next
			s.mu.Unlock()
			s.perform(eff)
		}
	}
}

func (s *Store[S]) perform(e Effect) {
	switch e.kind {
	case kindNone:
	case kindBatch:
		for _, b := range e.batch {
			s.perform(b)
		}
	case kindCancel:
		s.cancelKey(e.key)
	case kindTask:
		s.spawn(s.ctx, e.run, nil)
	case kindCancellable:
		s.cancelKey(e.key)
		ctx, cancel := context.WithCancel(s.ctx)
		task := &keyedTask{cancel: cancel}
		s.keyMu.Lock()
		s.keyed[e.key] = task
		s.keyMu.Unlock()
		s.spawn(ctx, e.run, func() {
			s.keyMu.Lock()
			// A fresher task may own the key by now; leave it alone.
			if s.keyed[e.key] == task {
				delete(s.keyed, e.key)
			}
			s.keyMu.Unlock()
			cancel()
		})
	}
}

func (s *Store[S]) spawn(ctx context.Context, run Run, done func()) {
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		if done != nil {
			defer done()
		}
		run(ctx, s.Dispatch)
	}()
}

// Drive feeds one action through reduce and runs the resulting effects
// to completion on the calling goroutine, applying follow-up actions
// depth-first. It is the synchronous counterpart to a Store, used where
// a command wants the settled state in one call.
func Drive[S any](ctx context.Context, reduce Reducer[S], s S, a Action) S {
	next, eff := reduce(s, a)
	Perform(ctx, eff, func(follow Action) {
		next = Drive(ctx, reduce, next, follow)
	})
	return next
}

func (s *Store[S]) cancelKey(key string) {
	s.keyMu.Lock()
	task, ok := s.keyed[key]
	if ok {
		delete(s.keyed, key)
	}
	s.keyMu.Unlock()
	if ok {
		task.cancel()
	}
}
