package search

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebouncerDeliversLatestQuery(t *testing.T) {
	d := NewDebouncer(10*time.Millisecond, func(_ context.Context, q string) (string, error) {
		return "result:" + q, nil
	})
	ctx := context.Background()

	d.Submit(ctx, "a")
	d.Submit(ctx, "ab")
	last := d.Submit(ctx, "abc")

	select {
	case res := <-d.Results():
		assert.Equal(t, last, res.Seq)
		assert.Equal(t, "abc", res.Query)
		assert.Equal(t, "result:abc", res.Value)
	case <-time.After(time.Second):
		t.Fatal("no result delivered")
	}

	// Nothing else arrives for the superseded queries.
	select {
	case res := <-d.Results():
		t.Fatalf("unexpected extra result for %q", res.Query)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestDebouncerSequenceIsMonotonic(t *testing.T) {
	d := NewDebouncer(time.Millisecond, func(_ context.Context, q string) (string, error) {
		return q, nil
	})
	ctx := context.Background()

	var prev uint64
	for _, q := range []string{"x", "xy", "xyz"} {
		seq := d.Submit(ctx, q)
		assert.Greater(t, seq, prev)
		prev = seq
	}
}

func TestDebouncerDropsStaleResponse(t *testing.T) {
	release := make(chan struct{})
	var calls atomic.Int32
	d := NewDebouncer(time.Millisecond, func(ctx context.Context, q string) (string, error) {
		if calls.Add(1) == 1 {
			// First lookup stalls until after a newer query wins.
			select {
			case <-release:
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}
		return q, nil
	})
	ctx := context.Background()

	d.Submit(ctx, "slow")
	// Let the slow fetch start before superseding it.
	require.Eventually(t, func() bool { return calls.Load() >= 1 }, time.Second, time.Millisecond)

	winner := d.Submit(ctx, "fast")
	close(release)

	select {
	case res := <-d.Results():
		assert.Equal(t, winner, res.Seq)
		assert.Equal(t, "fast", res.Query)
	case <-time.After(time.Second):
		t.Fatal("no result delivered")
	}

	select {
	case res := <-d.Results():
		t.Fatalf("stale result leaked: %q", res.Query)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestDebouncerFlushBypassesWait(t *testing.T) {
	d := NewDebouncer(time.Hour, func(_ context.Context, q string) (string, error) {
		return q, nil
	})
	ctx := context.Background()

	d.Submit(ctx, "never-fires")
	seq := d.Flush(ctx, "now")

	select {
	case res := <-d.Results():
		assert.Equal(t, seq, res.Seq)
		assert.Equal(t, "now", res.Query)
	case <-time.After(time.Second):
		t.Fatal("flush did not deliver")
	}
}
