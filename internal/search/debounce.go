// Package search coordinates type-ahead lookups. Keystrokes arrive faster
// than the data service answers, and answers can arrive out of order; the
// debouncer stamps every accepted query with a monotonically increasing
// sequence number and silently drops any response whose sequence is no longer
// the latest, so the consumer only ever observes results for the newest query.
package search

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// FetchFunc executes one lookup. It must honor ctx cancellation: a superseded
// query gets its context canceled as soon as a newer one is accepted.
type FetchFunc[T any] func(ctx context.Context, query string) (T, error)

// Result is one delivered lookup outcome.
type Result[T any] struct {
	Seq   uint64
	Query string
	Value T
}

// Debouncer serializes rapid query submissions into at most one in-flight
// fetch, delayed by the debounce window. Safe for concurrent use.
type Debouncer[T any] struct {
	fetch   FetchFunc[T]
	wait    time.Duration
	results chan Result[T]

	mu     sync.Mutex
	seq    uint64
	timer  *time.Timer
	cancel context.CancelFunc // cancels the in-flight fetch, if any
}

// NewDebouncer builds a debouncer with the given window. Results are
// delivered on Results(); the channel is never closed.
func NewDebouncer[T any](wait time.Duration, fetch FetchFunc[T]) *Debouncer[T] {
	return &Debouncer[T]{
		fetch:   fetch,
		wait:    wait,
		results: make(chan Result[T], 1),
	}
}

// Results yields outcomes of winning queries only. A slow consumer loses
// superseded results rather than blocking the debouncer.
func (d *Debouncer[T]) Results() <-chan Result[T] { return d.results }

// Submit registers a new query. Any pending timer or in-flight fetch for an
// older query is abandoned, and the sequence is returned so callers can
// correlate a later result.
func (d *Debouncer[T]) Submit(ctx context.Context, query string) uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.seq++
	seq := d.seq

	if d.timer != nil {
		d.timer.Stop()
	}
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}

	d.timer = time.AfterFunc(d.wait, func() {
		d.fire(ctx, seq, query)
	})
	return seq
}

// Flush runs a pending query immediately, bypassing the wait. Used when the
// operator presses enter instead of continuing to type.
func (d *Debouncer[T]) Flush(ctx context.Context, query string) uint64 {
	d.mu.Lock()
	d.seq++
	seq := d.seq
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.mu.Unlock()

	d.fire(ctx, seq, query)
	return seq
}

func (d *Debouncer[T]) fire(ctx context.Context, seq uint64, query string) {
	d.mu.Lock()
	if seq != d.seq {
		// A newer submission raced past our timer.
		d.mu.Unlock()
		return
	}
	fctx, cancel := context.WithCancel(ctx)
	d.cancel = cancel
	d.mu.Unlock()

	value, err := d.fetch(fctx, query)
	if err != nil {
		if fctx.Err() == nil {
			log.Debug().Err(err).Str("query", query).Msg("search: lookup failed")
		}
		return
	}

	d.mu.Lock()
	stale := seq != d.seq
	d.mu.Unlock()
	if stale {
		// The answer arrived after a newer query was accepted; drop it.
		return
	}

	res := Result[T]{Seq: seq, Query: query, Value: value}
	select {
	case d.results <- res:
	default:
		// Evict the unconsumed older result, then deliver.
		select {
		case <-d.results:
		default:
		}
		select {
		case d.results <- res:
		default:
		}
	}
}
