package game

import (
	"fmt"
	"io"
	"time"

	"github.com/liamegan/playground/particles"
)

// logWriter is the destination for log output.
var logWriter io.Writer

// SetLogWriter sets the log output destination.
func SetLogWriter(w io.Writer) {
	logWriter = w
}

// Logf writes a formatted log message.
func Logf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if logWriter != nil {
		fmt.Fprintln(logWriter, msg)
	} else {
		fmt.Println(msg)
	}
}

// logPerfStats logs the rolling phase timing breakdown.
func (g *Game) logPerfStats() {
	stats := g.perf.Stats()
	if stats.Samples == 0 {
		return
	}

	Logf("=== Perf @ Tick %d ===", g.sys.Tick())
	Logf("Tick avg: %s over %d samples", stats.TickAvg.Round(time.Microsecond), stats.Samples)

	for _, phase := range []string{
		particles.PhaseCommit,
		particles.PhaseSprings,
		particles.PhaseBehaviors,
		particles.PhaseIntegrate,
		particles.PhaseCleanup,
	} {
		avg := stats.PhaseAvg[phase]
		pct := float64(0)
		if stats.TickAvg > 0 {
			pct = float64(avg) / float64(stats.TickAvg) * 100
		}
		Logf("  %-10s %10s  %5.1f%%", phase, avg.Round(time.Microsecond), pct)
	}
}

// logWorldState logs the current simulation state.
func (g *Game) logWorldState() {
	st := g.sys.LastStats()
	Logf("tick %d: %d particles, %d springs (+%d/-%d this tick, %d rejected)",
		st.Tick, st.Live, st.Springs, st.Committed, st.Removed, st.Rejected)
}
