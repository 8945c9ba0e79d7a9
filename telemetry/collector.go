package telemetry

import (
	"github.com/liamegan/playground/particles"
)

// Collector accumulates engine tick stats within fixed-size windows and
// produces WindowStats when a window closes.
type Collector struct {
	windowTicks int

	windowStart int
	lastTick    particles.TickStats
	popSamples  []float64

	created          int
	removed          int
	rejected         int
	springsCreated   int
	springsRemoved   int
	springUpdates    int
	interactionCalls int
	symmetricCalls   int
	behaviorCalls    int
}

// NewCollector creates a collector closing a window every windowTicks
// ticks. A window size below 1 is clamped to 1.
func NewCollector(windowTicks int) *Collector {
	if windowTicks < 1 {
		windowTicks = 1
	}
	return &Collector{windowTicks: windowTicks}
}

// Record accumulates one tick's stats. Call once per engine Update.
func (c *Collector) Record(st particles.TickStats) {
	if c.popSamples == nil {
		c.windowStart = st.Tick
	}
	c.lastTick = st
	c.popSamples = append(c.popSamples, float64(st.Live))

	c.created += st.Committed
	c.removed += st.Removed
	c.rejected += st.Rejected
	c.springsCreated += st.SpringsCommitted
	c.springsRemoved += st.SpringsRemoved
	c.springUpdates += st.SpringUpdates
	c.interactionCalls += st.InteractionCalls
	c.symmetricCalls += st.SymmetricCalls
	c.behaviorCalls += st.BehaviorCalls
}

// WindowReady reports whether a full window has accumulated.
func (c *Collector) WindowReady() bool {
	return len(c.popSamples) >= c.windowTicks
}

// Flush closes the current window, returning its stats and resetting the
// accumulators. Flushing an empty window returns zero stats.
func (c *Collector) Flush() WindowStats {
	mean, p10, p50, p90 := ComputeDistribution(c.popSamples)

	stats := WindowStats{
		WindowStartTick:  c.windowStart,
		WindowEndTick:    c.lastTick.Tick,
		Live:             c.lastTick.Live,
		Springs:          c.lastTick.Springs,
		Created:          c.created,
		Removed:          c.removed,
		Rejected:         c.rejected,
		SpringsCreated:   c.springsCreated,
		SpringsRemoved:   c.springsRemoved,
		SpringUpdates:    c.springUpdates,
		InteractionCalls: c.interactionCalls,
		SymmetricCalls:   c.symmetricCalls,
		BehaviorCalls:    c.behaviorCalls,
		PopMean:          mean,
		PopP10:           p10,
		PopP50:           p50,
		PopP90:           p90,
	}

	*c = Collector{windowTicks: c.windowTicks}
	return stats
}
