// Package bounded imposes a wall-clock ceiling on a single blocking call.
//
// The call runs on its own goroutine; the caller waits for whichever comes
// first: the result, the ceiling, or cancellation of the caller's context.
// A call that outlives the ceiling is not interrupted. Its result is
// discarded when it eventually arrives.
package bounded

import (
	"context"
	"fmt"
	"time"

	pkgerrors "github.com/CrimsonX77/Aurora/pkg/errors"
	"github.com/CrimsonX77/Aurora/runtime/logger"
)

const component = "bounded"

type outcome[T any] struct {
	value T
	err   error
}

// Run calls fn exactly once and waits up to ceiling for it to finish.
// fn's result and error are returned unchanged when it completes in time.
// When the ceiling elapses first Run returns a timeout error naming the
// ceiling. fn receives a context that is not cancelled on timeout. A panic in
// fn is returned as a processing error.
func Run[T any](ctx context.Context, ceiling time.Duration, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	if ceiling <= 0 {
		return zero, pkgerrors.Configuration(component, "Run",
			fmt.Sprintf("ceiling must be positive, got %s", ceiling))
	}

	done := make(chan outcome[T], 1)
	workerCtx := context.WithoutCancel(ctx)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- outcome[T]{err: pkgerrors.Processing(component, "Run", fmt.Errorf("panic: %v", r))}
			}
		}()
		v, err := fn(workerCtx)
		done <- outcome[T]{value: v, err: err}
	}()

	timer := time.NewTimer(ceiling)
	defer timer.Stop()

	select {
	case out := <-done:
		return out.value, out.err
	case <-timer.C:
		logger.WarnContext(ctx, "abandoning call after ceiling", "ceiling", ceiling)
		return zero, TimeoutError(ceiling)
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

// TimeoutError is the error Run returns when ceiling elapses.
func TimeoutError(ceiling time.Duration) error {
	return pkgerrors.Timeout(component, "Run",
		fmt.Sprintf("conversation request timed out (%s)", formatCeiling(ceiling)))
}

// formatCeiling renders whole seconds as "15s" and anything else as time.Duration does.
func formatCeiling(d time.Duration) string {
	if d%time.Second == 0 {
		return fmt.Sprintf("%ds", int64(d/time.Second))
	}
	return d.String()
}
