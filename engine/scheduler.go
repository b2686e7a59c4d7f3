package engine

import (
	"context"
	"time"
)

// Smoothing factors for the measured tick rate. Each iteration keeps 90% of
// the previous estimate and blends in 10% of the instantaneous rate.
const (
	rateSmoothingOld = 0.9
	rateSmoothingNew = 0.1
)

// Run drives the engine at the configured target rate until the context is
// cancelled. It returns the cancellation cause.
//
// Each iteration measures the gap since the previous iteration started and
// folds it into the smoothed rate, runs one full resolution pass, then
// sleeps for whatever remains of the target period. Oversleep is carried as
// a debt that shrinks the next sleep, so the long-run average rate stays on
// target despite OS scheduling jitter. A tick that overruns its period
// clears the debt and is followed immediately by the next one; the loop
// never skips a tick and never runs two at once to catch up.
func (e *Engine) Run(ctx context.Context) error {
	e.runLock.Lock()
	defer e.runLock.Unlock()

	var (
		lastStart time.Time
		overSleep time.Duration
	)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		start := time.Now()
		e.observeRate(lastStart, start)
		lastStart = start

		e.runTick()

		e.mu.Lock()
		period := e.targetPeriod
		e.mu.Unlock()

		elapsed := time.Since(start)
		sleep := period - elapsed - overSleep

		if sleep > 0 {
			actual, err := sleepCtx(ctx, sleep)
			if err != nil {
				return err
			}
			overSleep = actual - sleep
		} else {
			overSleep = 0
		}
	}
}

// observeRate updates the smoothed measured rate from the gap between two
// consecutive loop starts. The first iteration has no gap and is skipped.
func (e *Engine) observeRate(lastStart, now time.Time) {
	if lastStart.IsZero() {
		return
	}

	gap := now.Sub(lastStart)
	if gap <= 0 {
		return
	}

	instantaneous := float64(time.Second) / float64(gap)

	e.mu.Lock()
	e.measuredRate = e.measuredRate*rateSmoothingOld +
		instantaneous*rateSmoothingNew
	e.mu.Unlock()
}

// sleepCtx sleeps for the requested duration or until the context is
// cancelled, and reports how long it actually slept.
func sleepCtx(ctx context.Context, d time.Duration) (time.Duration, error) {
	before := time.Now()

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return time.Since(before), ctx.Err()
	case <-timer.C:
		return time.Since(before), nil
	}
}
