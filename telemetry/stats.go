// Package telemetry collects per-tick engine statistics, aggregates them
// over fixed windows, times the tick phases, and writes CSV output for
// offline analysis.
package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a window of ticks.
type WindowStats struct {
	WindowStartTick int `csv:"-"`
	WindowEndTick   int `csv:"window_end"`

	// Population at window end
	Live    int `csv:"live"`
	Springs int `csv:"springs"`

	// Events during window
	Created        int `csv:"created"`
	Removed        int `csv:"removed"`
	Rejected       int `csv:"rejected"`
	SpringsCreated int `csv:"springs_created"`
	SpringsRemoved int `csv:"springs_removed"`

	// Dispatch volume during window
	SpringUpdates    int `csv:"spring_updates"`
	InteractionCalls int `csv:"interaction_calls"`
	SymmetricCalls   int `csv:"symmetric_calls"`
	BehaviorCalls    int `csv:"behavior_calls"`

	// Population distribution across the window's ticks
	PopMean float64 `csv:"pop_mean"`
	PopP10  float64 `csv:"pop_p10"`
	PopP50  float64 `csv:"pop_p50"`
	PopP90  float64 `csv:"pop_p90"`
}

// ComputeDistribution calculates mean and the 10/50/90 percentiles of the
// given samples. Returns zeros for an empty slice.
func ComputeDistribution(values []float64) (mean, p10, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	mean = stat.Mean(sorted, nil)
	p10 = stat.Quantile(0.1, stat.Empirical, sorted, nil)
	p50 = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.9, stat.Empirical, sorted, nil)
	return mean, p10, p50, p90
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", s.WindowStartTick),
		slog.Int("window_end", s.WindowEndTick),
		slog.Int("live", s.Live),
		slog.Int("springs", s.Springs),
		slog.Int("created", s.Created),
		slog.Int("removed", s.Removed),
		slog.Int("rejected", s.Rejected),
		slog.Int("spring_updates", s.SpringUpdates),
		slog.Int("interaction_calls", s.InteractionCalls),
		slog.Int("symmetric_calls", s.SymmetricCalls),
		slog.Int("behavior_calls", s.BehaviorCalls),
		slog.Float64("pop_mean", s.PopMean),
		slog.Float64("pop_p50", s.PopP50),
	)
}
