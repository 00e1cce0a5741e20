package field

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VoidMesh/noise/internal/testutil"
)

func newTestRegenerator(t *testing.T, interval time.Duration) *Regenerator {
	t.Helper()

	g, err := NewGenerator(Params{Step: 0.5, Extent: 2})
	require.NoError(t, err)
	return NewRegenerator(g, interval)
}

func receive(t *testing.T, ch <-chan *Field) *Field {
	t.Helper()

	select {
	case f, ok := <-ch:
		require.True(t, ok, "fields channel closed early")
		return f
	case <-time.After(10 * time.Second):
		t.Fatal("timed out waiting for a field")
		return nil
	}
}

func TestRegenerator_Trigger_NonBlocking(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	r := newTestRegenerator(t, time.Hour)

	assert.True(t, r.Trigger(), "first request is queued")
	assert.False(t, r.Trigger(), "second request is rejected while one is pending")
}

func TestRegenerator_Run(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	r := newTestRegenerator(t, time.Hour)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	first := receive(t, r.Fields())
	assert.Equal(t, 4, first.Samples)

	require.Eventually(t, r.Trigger, 5*time.Second, 10*time.Millisecond)
	second := receive(t, r.Fields())
	assert.NotEqual(t, first.ID, second.ID, "each pass produces a new field")

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("Run did not return after cancel")
	}

	// Drain anything delivered before shutdown; the channel must end closed.
	for range r.Fields() {
	}
}

func TestRegenerator_Interval(t *testing.T) {
	testutil.SkipIfShort(t, "waits on several generation passes")

	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	r := newTestRegenerator(t, 20*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	seen := map[string]bool{}
	for len(seen) < 3 {
		seen[receive(t, r.Fields()).ID] = true
	}

	cancel()
	require.NoError(t, <-done)
}

func TestRegenerator_DeliveriesAreIndependentEngines(t *testing.T) {
	testutil.SkipIfShort(t, "waits on several generation passes")

	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	r := newTestRegenerator(t, 10*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	a := receive(t, r.Fields())
	b := receive(t, r.Fields())

	// Off-lattice samples of two independent passes should not all agree.
	same := true
	for y := 0; y < a.Samples; y++ {
		for x := 0; x < a.Samples; x++ {
			if x%2 == 1 && a.At(x, y) != b.At(x, y) {
				same = false
			}
		}
	}
	assert.False(t, same)

	cancel()
	require.NoError(t, <-done)
}

func TestRegenerator_Pending(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	r := newTestRegenerator(t, time.Hour)
	assert.Zero(t, r.Pending())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	// The startup pass fills the buffer; a triggered pass then waits on it.
	require.Eventually(t, func() bool { return r.Pending() == 0 && len(r.out) == 1 },
		5*time.Second, 10*time.Millisecond)
	require.True(t, r.Trigger())
	require.Eventually(t, func() bool { return r.Pending() == 1 },
		5*time.Second, 10*time.Millisecond)

	receive(t, r.Fields())
	receive(t, r.Fields())
	require.Eventually(t, func() bool { return r.Pending() == 0 },
		5*time.Second, 10*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}

func TestRegenerator_Pending_DroppedAtShutdown(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	r := newTestRegenerator(t, time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	require.Eventually(t, func() bool { return len(r.out) == 1 }, 5*time.Second, 10*time.Millisecond)
	require.True(t, r.Trigger())
	require.Eventually(t, func() bool { return r.Pending() == 1 }, 5*time.Second, 10*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
	assert.Zero(t, r.Pending(), "unclaimed pass is dropped")
}
