package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSessionDeleter struct {
	mu    sync.Mutex
	calls []time.Time
	err   error
}

func (f *fakeSessionDeleter) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, now)
	return 3, f.err
}

func (f *fakeSessionDeleter) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func TestSweepOnce(t *testing.T) {
	fake := &fakeSessionDeleter{}
	sweeper := NewSessionSweeper(fake, time.Minute)
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.FixedZone("X", 3600))
	sweeper.now = func() time.Time { return fixed }

	removed, err := sweeper.SweepOnce(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 3, removed)
	require.Len(t, fake.calls, 1)
	assert.Equal(t, time.UTC, fake.calls[0].Location())

	fake.err = errors.New("db down")
	_, err = sweeper.SweepOnce(context.Background())
	assert.Error(t, err)
}

func TestRunStopsOnCancel(t *testing.T) {
	fake := &fakeSessionDeleter{}
	sweeper := NewSessionSweeper(fake, 5*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- sweeper.Run(ctx) }()

	assert.Eventually(t, func() bool { return fake.count() >= 2 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop")
	}
}

func TestNonPositiveIntervalUsesDefault(t *testing.T) {
	for _, interval := range []time.Duration{0, -time.Minute} {
		sweeper := NewSessionSweeper(&fakeSessionDeleter{}, interval)
		assert.Equal(t, DefaultSweepInterval, sweeper.interval)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NotPanics(t, func() {
		assert.NoError(t, NewSessionSweeper(&fakeSessionDeleter{}, 0).Run(ctx))
	})
}
