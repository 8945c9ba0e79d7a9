package telemetry

import (
	"time"
)

// PerfSample holds timing data for a single tick.
type PerfSample struct {
	TickDuration time.Duration
	Phases       map[string]time.Duration
}

// PerfCollector tracks tick and phase timings over a rolling window. Wire
// StartPhase to the engine's phase hook, and bracket each Update with
// StartTick/EndTick.
type PerfCollector struct {
	windowSize  int
	samples     []PerfSample
	writeIndex  int
	sampleCount int

	currentPhases map[string]time.Duration
	tickStart     time.Time
	phaseStart    time.Time
	lastPhase     string
}

// NewPerfCollector creates a collector averaging over windowSize ticks.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		windowSize:    windowSize,
		samples:       make([]PerfSample, windowSize),
		currentPhases: make(map[string]time.Duration),
	}
}

// StartTick begins timing a new simulation tick.
func (p *PerfCollector) StartTick() {
	p.tickStart = time.Now()
	p.currentPhases = make(map[string]time.Duration)
	p.lastPhase = ""
}

// StartPhase begins timing a phase, ending the previous one.
func (p *PerfCollector) StartPhase(phase string) {
	now := time.Now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}
	p.phaseStart = now
	p.lastPhase = phase
}

// EndTick finishes timing the current tick and records the sample.
func (p *PerfCollector) EndTick() {
	now := time.Now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
		p.lastPhase = ""
	}

	p.samples[p.writeIndex] = PerfSample{
		TickDuration: now.Sub(p.tickStart),
		Phases:       p.currentPhases,
	}
	p.writeIndex = (p.writeIndex + 1) % p.windowSize
	if p.sampleCount < p.windowSize {
		p.sampleCount++
	}
}

// PerfStats holds averaged timings over the rolling window.
type PerfStats struct {
	TickAvg  time.Duration
	PhaseAvg map[string]time.Duration
	Samples  int
}

// Stats returns the current rolling-window averages.
func (p *PerfCollector) Stats() PerfStats {
	stats := PerfStats{PhaseAvg: make(map[string]time.Duration), Samples: p.sampleCount}
	if p.sampleCount == 0 {
		return stats
	}

	var tickTotal time.Duration
	phaseTotals := make(map[string]time.Duration)
	for i := 0; i < p.sampleCount; i++ {
		s := p.samples[i]
		tickTotal += s.TickDuration
		for phase, d := range s.Phases {
			phaseTotals[phase] += d
		}
	}

	stats.TickAvg = tickTotal / time.Duration(p.sampleCount)
	for phase, total := range phaseTotals {
		stats.PhaseAvg[phase] = total / time.Duration(p.sampleCount)
	}
	return stats
}

// PerfStatsCSV is the flattened CSV record for one perf window. Phase
// columns mirror the engine's five tick phases, in microseconds.
type PerfStatsCSV struct {
	WindowEnd   int     `csv:"window_end"`
	TickUs      float64 `csv:"tick_us"`
	CommitUs    float64 `csv:"commit_us"`
	SpringsUs   float64 `csv:"springs_us"`
	BehaviorsUs float64 `csv:"behaviors_us"`
	IntegrateUs float64 `csv:"integrate_us"`
	CleanupUs   float64 `csv:"cleanup_us"`
}

// ToCSV flattens the stats into a CSV record.
func (s PerfStats) ToCSV(windowEnd int) PerfStatsCSV {
	us := func(d time.Duration) float64 {
		return float64(d.Nanoseconds()) / 1e3
	}
	return PerfStatsCSV{
		WindowEnd:   windowEnd,
		TickUs:      us(s.TickAvg),
		CommitUs:    us(s.PhaseAvg["commit"]),
		SpringsUs:   us(s.PhaseAvg["springs"]),
		BehaviorsUs: us(s.PhaseAvg["behaviors"]),
		IntegrateUs: us(s.PhaseAvg["integrate"]),
		CleanupUs:   us(s.PhaseAvg["cleanup"]),
	}
}
