package bounded

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	pkgerrors "github.com/CrimsonX77/Aurora/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_ReturnsResultWithinCeiling(t *testing.T) {
	got, err := Run(context.Background(), time.Second, func(context.Context) (string, error) {
		return "done", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "done", got)
}

func TestRun_PropagatesErrorUnchanged(t *testing.T) {
	sentinel := errors.New("upstream refused")
	_, err := Run(context.Background(), time.Second, func(context.Context) (int, error) {
		return 0, sentinel
	})
	assert.Same(t, sentinel, err)
}

func TestRun_TimesOutAtCeilingNotAtCallDuration(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	const ceiling = 50 * time.Millisecond
	start := time.Now()
	_, err := Run(context.Background(), ceiling, func(context.Context) (string, error) {
		select {
		case <-release:
		case <-time.After(20 * ceiling):
		}
		return "late", nil
	})
	elapsed := time.Since(start)

	require.Error(t, err)
	assert.True(t, errors.Is(err, pkgerrors.ErrTimeout))
	assert.Less(t, elapsed, 10*ceiling)
	assert.GreaterOrEqual(t, elapsed, ceiling)
}

func TestRun_WorkerNotCancelledOnTimeout(t *testing.T) {
	var cancelled atomic.Bool
	finished := make(chan struct{})

	_, err := Run(context.Background(), 10*time.Millisecond, func(ctx context.Context) (int, error) {
		defer close(finished)
		select {
		case <-ctx.Done():
			cancelled.Store(true)
		case <-time.After(50 * time.Millisecond):
		}
		return 1, nil
	})
	require.Error(t, err)

	<-finished
	assert.False(t, cancelled.Load(), "worker context must outlive the ceiling")
}

func TestRun_CallerCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	release := make(chan struct{})
	defer close(release)

	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err := Run(ctx, time.Minute, func(context.Context) (int, error) {
		<-release
		return 0, nil
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_InvalidCeiling(t *testing.T) {
	called := false
	_, err := Run(context.Background(), 0, func(context.Context) (int, error) {
		called = true
		return 0, nil
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, pkgerrors.ErrConfiguration))
	assert.False(t, called)
}

func TestRun_RecoversWorkerPanic(t *testing.T) {
	_, err := Run(context.Background(), time.Second, func(context.Context) (int, error) {
		panic("boom")
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, pkgerrors.ErrProcessing))
	assert.Contains(t, err.Error(), "panic: boom")
}

func TestTimeoutError_Message(t *testing.T) {
	tests := map[time.Duration]string{
		15 * time.Second:        "conversation request timed out (15s)",
		90 * time.Second:        "conversation request timed out (90s)",
		1500 * time.Millisecond: "conversation request timed out (1.5s)",
	}
	for ceiling, want := range tests {
		err := TimeoutError(ceiling)
		assert.Contains(t, err.Error(), want)
		assert.Equal(t, pkgerrors.ErrTimeout, pkgerrors.KindOf(err))
	}
}
