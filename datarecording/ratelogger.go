package datarecording

import (
	"github.com/sarchlab/liveflow/engine"
)

// RateSample is one row of the tick-rate table.
type RateSample struct {
	Tick uint64
	Rate float64
}

// A RateLogger is an engine hook that records the smoothed measured tick
// rate after every tick.
type RateLogger struct {
	recorder DataRecorder
	table    string
}

// NewRateLogger creates a RateLogger writing into the given recorder. It
// creates the backing table immediately.
func NewRateLogger(recorder DataRecorder) *RateLogger {
	l := &RateLogger{
		recorder: recorder,
		table:    "tick_rate",
	}

	l.recorder.CreateTable(l.table, RateSample{})

	return l
}

// Func records a sample at every tick end.
func (l *RateLogger) Func(ctx engine.HookCtx) {
	if ctx.Pos != engine.HookPosTickEnd {
		return
	}

	stats := ctx.Item.(engine.TickStats)

	l.recorder.InsertData(l.table, RateSample{
		Tick: stats.Tick,
		Rate: stats.Rate,
	})
}
