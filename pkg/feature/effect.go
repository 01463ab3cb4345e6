// Package feature implements the unidirectional state runtime: each
// screen-level feature is a pure reducer over a state snapshot plus a
// tagged effect description for any async work. Effects run outside the
// reducer and feed results back in as follow-up actions, so state is only
// ever touched on the dispatch goroutine.
package feature

import "context"

// Action is a single user intent or event fed into a reducer. Features
// declare their own sealed action interfaces on top of this.
type Action interface{}

// Run is the body of an async effect. It may emit zero or more follow-up
// actions and must return when ctx is cancelled.
type Run func(ctx context.Context, emit func(Action))

type effectKind int

const (
	kindNone effectKind = iota
	kindTask
	kindCancellable
	kindCancel
	kindBatch
)

// Effect describes async work requested by a reducer. Effects never
// mutate state directly; they only emit actions.
type Effect struct {
	kind  effectKind
	key   string
	run   Run
	batch []Effect
}

// None is the empty effect.
func None() Effect {
	return Effect{kind: kindNone}
}

// Task runs fn as a fire-and-forget task.
func Task(fn Run) Effect {
	return Effect{kind: kindTask, run: fn}
}

// Cancellable runs fn under the given key. Starting another effect with
// the same key cancels this one first; that makes "restart in-flight
// work" safe without leaking the old task.
func Cancellable(key string, fn Run) Effect {
	return Effect{kind: kindCancellable, key: key, run: fn}
}

// Stream is a long-lived keyed effect that emits repeatedly, like a
// ticker. It shares cancellation semantics with Cancellable.
func Stream(key string, fn Run) Effect {
	return Cancellable(key, fn)
}

// Cancel stops the in-flight effect with the given key, if any.
func Cancel(key string) Effect {
	return Effect{kind: kindCancel, key: key}
}

// Batch merges several effects; None entries are dropped.
func Batch(effects ...Effect) Effect {
	kept := make([]Effect, 0, len(effects))
	for _, e := range effects {
		if e.kind != kindNone {
			kept = append(kept, e)
		}
	}
	switch len(kept) {
	case 0:
		return None()
	case 1:
		return kept[0]
	}
	return Effect{kind: kindBatch, batch: kept}
}

// Emit is a task that immediately dispatches a, used when a reducer needs
// to forward a derived action through the queue.
func Emit(a Action) Effect {
	return Task(func(_ context.Context, emit func(Action)) {
		emit(a)
	})
}

// IsNone reports whether the effect describes no work at all.
func IsNone(e Effect) bool {
	return e.kind == kindNone
}

// Perform runs an effect to completion on the calling goroutine,
// dropping Cancel entries since there is no keyed registry outside a
// Store. It exists for exercising reducers without a dispatch loop.
func Perform(ctx context.Context, e Effect, emit func(Action)) {
	switch e.kind {
	case kindNone, kindCancel:
	case kindBatch:
		for _, b := range e.batch {
			Perform(ctx, b, emit)
		}
	default:
		e.run(ctx, emit)
	}
}

// Map rewraps every action the effect emits, which is how a child
// feature's effects are lifted into the parent's action space.
func Map(e Effect, wrap func(Action) Action) Effect {
	switch e.kind {
	case kindNone, kindCancel:
		return e
	case kindBatch:
		mapped := make([]Effect, len(e.batch))
		for i, b := range e.batch {
			mapped[i] = Map(b, wrap)
		}
		return Effect{kind: kindBatch, batch: mapped}
	default:
		inner := e.run
		e.run = func(ctx context.Context, emit func(Action)) {
			inner(ctx, func(a Action) { emit(wrap(a)) })
		}
		return e
	}
}
