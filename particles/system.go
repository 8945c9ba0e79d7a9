package particles

import (
	"gonum.org/v1/gonum/spatial/r2"
)

// Phase names, in tick order. Passed to the phase hook for timing.
const (
	PhaseCommit    = "commit"
	PhaseSprings   = "springs"
	PhaseBehaviors = "behaviors"
	PhaseIntegrate = "integrate"
	PhaseCleanup   = "cleanup"
)

// BehaviorFunc acts on a single particle.
type BehaviorFunc func(p *Particle)

// InteractionFunc acts on a particle and its spatial neighbors. The
// neighbor slice is reused between invocations; callers must not retain it.
type InteractionFunc func(p *Particle, neighbors []*Particle)

// SymmetricInteractionFunc acts on an unordered particle pair. It is
// invoked exactly once per pair within 1-cell Chebyshev distance.
type SymmetricInteractionFunc func(a, b *Particle)

type behavior struct {
	fn     BehaviorFunc
	filter Filter
}

type interaction struct {
	fn        InteractionFunc
	self      Filter
	neighbors Filter
}

type symmetricInteraction struct {
	fn     SymmetricInteractionFunc
	filter Filter
}

// Config holds construction parameters for a System.
type Config struct {
	// Domain bounds: the grid covers [0,Width] x [0,Height].
	Width, Height float64

	// CellSize is the spatial grid cell edge length.
	CellSize float64

	// MaxParticles caps the live population for admission-controlled
	// creation. Zero means unlimited.
	MaxParticles int

	// MaxDensity caps the local cell density (occupancy / cellSize^2)
	// for admission-controlled creation. Zero means unlimited.
	MaxDensity float64

	// MaxForce clamps each particle's accumulated force magnitude before
	// integration. Zero means unclamped.
	MaxForce float64
}

// TickStats summarizes what one Update did.
type TickStats struct {
	Tick             int
	Committed        int
	SpringsCommitted int
	SpringUpdates    int
	InteractionCalls int
	SymmetricCalls   int
	BehaviorCalls    int
	Removed          int
	SpringsRemoved   int
	Rejected         int
	Live             int
	Springs          int
}

// System orchestrates the simulation: it owns the grid, the spring list,
// the registered behaviors and interactions, and the per-tick update
// algorithm. All mutation during a tick is deferred to fixed phase
// boundaries so phases 2-4 can read the live population safely.
type System struct {
	grid *Grid
	cfg  Config

	springs        []*Spring
	pendingCreate  []*Particle
	pendingSprings []*Spring

	behaviors    []behavior
	interactions []interaction
	symmetric    []symmetricInteraction

	tick      int
	rejected  int
	lastStats TickStats

	phaseHook func(phase string)

	// scratch buffer reused by the one-way interaction pass
	neighborBuf []*Particle
}

// forwardOffsets are the four neighbor cells paired with each cell during
// symmetric interaction sweeps. Together with within-cell pairs this covers
// the full 8-neighborhood while visiting each unordered cell pair once.
var forwardOffsets = [4][2]int{{1, 0}, {1, 1}, {0, 1}, {-1, 1}}

// NewSystem creates a particle system over the given domain.
func NewSystem(cfg Config) *System {
	return &System{
		grid: NewGrid(cfg.Width, cfg.Height, cfg.CellSize),
		cfg:  cfg,
	}
}

// Grid exposes the spatial grid for read-only introspection.
func (s *System) Grid() *Grid { return s.grid }

// Tick returns the number of completed updates.
func (s *System) Tick() int { return s.tick }

// Population returns the live particle count. Queued creations are not
// counted until they commit.
func (s *System) Population() int { return s.grid.Len() }

// SpringCount returns the active spring count.
func (s *System) SpringCount() int { return len(s.springs) }

// Springs returns the active spring list. The returned slice is live;
// callers must not mutate it.
func (s *System) Springs() []*Spring { return s.springs }

// LastStats returns the stats of the most recent Update.
func (s *System) LastStats() TickStats { return s.lastStats }

// SetPhaseHook installs a callback invoked at the start of each tick phase,
// for external timing. A nil hook disables it.
func (s *System) SetPhaseHook(fn func(phase string)) {
	s.phaseHook = fn
}

func (s *System) phase(name string) {
	if s.phaseHook != nil {
		s.phaseHook(name)
	}
}

// AddBehavior registers fn over particles matching the filter. Behaviors
// run in registration order, after all interactions.
func (s *System) AddBehavior(fn BehaviorFunc, filter Filter) {
	s.behaviors = append(s.behaviors, behavior{fn: fn, filter: filter})
}

// AddInteraction registers a one-way interaction: for each particle
// matching self, fn receives the particle and its neighbors matching the
// neighbor filter within a 1-cell radius, excluding itself.
func (s *System) AddInteraction(fn InteractionFunc, self, neighbors Filter) {
	s.interactions = append(s.interactions, interaction{fn: fn, self: self, neighbors: neighbors})
}

// AddSymmetricInteraction registers a pairwise interaction over particles
// matching the filter. Each unordered pair within 1-cell Chebyshev
// distance is visited exactly once per tick.
func (s *System) AddSymmetricInteraction(fn SymmetricInteractionFunc, filter Filter) {
	s.symmetric = append(s.symmetric, symmetricInteraction{fn: fn, filter: filter})
}

// CreateParticle queues a particle for insertion at the start of the next
// tick and returns it, or nil when admission control rejects the request.
//
// With allowOutside the population and density gates are bypassed and the
// position is taken as-is; an out-of-bounds position then fails grid
// insertion and the particle is dropped at commit. Without it, the request
// must pass the population cap and the density cap, and an out-of-bounds
// position under a density gate counts as maximal density; positions are
// clamped to the domain before queueing.
func (s *System) CreateParticle(pos r2.Vec, allowOutside bool) *Particle {
	if !allowOutside {
		if s.cfg.MaxParticles > 0 && s.grid.Len()+len(s.pendingCreate) >= s.cfg.MaxParticles {
			s.rejected++
			return nil
		}
		if !s.CheckPosition(pos, s.cfg.MaxDensity) {
			s.rejected++
			return nil
		}
		pos = s.grid.Clamp(pos)
	}
	p := NewParticle(pos)
	s.pendingCreate = append(s.pendingCreate, p)
	return p
}

// CreateSpring queues a spring between a and b for activation at the start
// of the next tick and returns it.
func (s *System) CreateSpring(a, b *Particle, restLength, stiffness float64) *Spring {
	sp := NewSpring(a, b, restLength, stiffness)
	s.pendingSprings = append(s.pendingSprings, sp)
	return sp
}

// Query returns particles matching the filter from the global index.
func (s *System) Query(f Filter) []*Particle {
	return s.grid.Query(f)
}

// QueryAt returns particles matching the filter within cellRadius cells of
// the cell containing at.
func (s *System) QueryAt(at r2.Vec, cellRadius int, f Filter) []*Particle {
	return s.grid.QueryAt(at, cellRadius, f)
}

// DensityAt returns the local cell density at pos.
func (s *System) DensityAt(pos r2.Vec) float64 {
	return s.grid.DensityAt(pos)
}

// CheckPosition reports whether the cell containing pos is below the given
// density cap. A non-positive cap always passes. Out-of-bounds positions
// count as maximal density and never pass a positive cap.
func (s *System) CheckPosition(pos r2.Vec, maxDensity float64) bool {
	if maxDensity <= 0 {
		return true
	}
	return s.grid.DensityAt(pos) < maxDensity
}

// Update advances the simulation one tick: commit queued creations, apply
// springs, run interactions and behaviors, integrate and re-bucket, then
// purge flagged particles and springs. Phases never reorder or skip.
func (s *System) Update() {
	s.tick++
	stats := TickStats{Tick: s.tick, Rejected: s.rejected}
	s.rejected = 0

	// Phase 1: commit queued particles and springs.
	s.phase(PhaseCommit)
	for _, p := range s.pendingCreate {
		if err := s.grid.AddParticle(p); err != nil {
			// allowOutside spawn that never entered the domain
			continue
		}
		stats.Committed++
	}
	s.pendingCreate = s.pendingCreate[:0]
	for _, sp := range s.pendingSprings {
		s.springs = append(s.springs, sp)
		sp.A.attachSpring(sp)
		sp.B.attachSpring(sp)
		stats.SpringsCommitted++
	}
	s.pendingSprings = s.pendingSprings[:0]

	// Phase 2: springs apply their force pairs. Springs flagged for
	// removal this tick still act; they are collected at cleanup.
	s.phase(PhaseSprings)
	for _, sp := range s.springs {
		sp.Update()
		stats.SpringUpdates++
	}

	// Phase 3: one-way interactions, symmetric interactions, behaviors.
	s.phase(PhaseBehaviors)
	stats.InteractionCalls = s.runInteractions()
	stats.SymmetricCalls = s.runSymmetric()
	stats.BehaviorCalls = s.runBehaviors()

	// Phase 4: integrate motion and re-bucket, per particle, using the
	// cell index captured before its integration.
	s.phase(PhaseIntegrate)
	maxForce := -1.0
	if s.cfg.MaxForce > 0 {
		maxForce = s.cfg.MaxForce
	}
	for _, p := range s.grid.particles {
		prev := p.cell
		p.Integrate(maxForce)
		s.grid.UpdateCell(p, prev)
	}

	// Phase 5: purge flagged particles, then flagged springs.
	s.phase(PhaseCleanup)
	for i := len(s.grid.particles) - 1; i >= 0; i-- {
		p := s.grid.particles[i]
		if p.removed {
			s.grid.RemoveParticle(p)
			stats.Removed++
		}
	}
	active := s.springs[:0]
	for _, sp := range s.springs {
		if sp.removed {
			sp.A.detachSpring(sp)
			sp.B.detachSpring(sp)
			stats.SpringsRemoved++
			continue
		}
		active = append(active, sp)
	}
	s.springs = active

	stats.Live = s.grid.Len()
	stats.Springs = len(s.springs)
	s.lastStats = stats
}

// runInteractions executes the one-way interaction pass.
func (s *System) runInteractions() int {
	calls := 0
	for _, reg := range s.interactions {
		selves := s.grid.Query(reg.self)
		for _, p := range selves {
			s.neighborBuf = s.neighborBuf[:0]
			for _, q := range s.grid.QueryAt(p.Pos, 1, reg.neighbors) {
				if q != p {
					s.neighborBuf = append(s.neighborBuf, q)
				}
			}
			reg.fn(p, s.neighborBuf)
			calls++
		}
	}
	return calls
}

// runSymmetric executes the pairwise interaction pass. For each cell it
// pairs the filtered members among themselves (i<j), then against the four
// forward neighbor cells, so no unordered pair is visited twice.
func (s *System) runSymmetric() int {
	calls := 0
	for _, reg := range s.symmetric {
		for row := 0; row < s.grid.rows; row++ {
			for col := 0; col < s.grid.cols; col++ {
				members := s.grid.cells[row*s.grid.cols+col].Query(reg.filter)
				if len(members) == 0 {
					continue
				}
				for i := 0; i < len(members); i++ {
					for j := i + 1; j < len(members); j++ {
						reg.fn(members[i], members[j])
						calls++
					}
				}
				for _, off := range forwardOffsets {
					other := s.grid.cellAt(col+off[0], row+off[1])
					if other == nil {
						continue
					}
					others := other.Query(reg.filter)
					for _, a := range members {
						for _, b := range others {
							reg.fn(a, b)
							calls++
						}
					}
				}
			}
		}
	}
	return calls
}

// runBehaviors executes the single-particle behavior pass.
func (s *System) runBehaviors() int {
	calls := 0
	for _, reg := range s.behaviors {
		for _, p := range s.grid.Query(reg.filter) {
			reg.fn(p)
			calls++
		}
	}
	return calls
}
