// Package particles implements a tick-driven particle simulation engine:
// point masses connected by springs, indexed by a uniform spatial grid with
// tag-based filtering, and driven by registered behavior and interaction
// functions. The System owns all state; callers advance the simulation one
// discrete tick at a time with Update.
package particles

import (
	"gonum.org/v1/gonum/spatial/r2"
)

// Particle is a mutable point mass. Position, velocity and the force
// accumulator are world-space vectors; forces accumulate between ticks and
// are consumed by Integrate.
type Particle struct {
	Pos  r2.Vec
	Vel  r2.Vec
	Mass float64

	// Static particles ignore forces and never move.
	Static bool

	// Life counts completed integration steps.
	Life int

	force   r2.Vec
	tags    map[string]struct{}
	springs []*Spring
	removed bool

	// grid is non-nil while the particle is indexed; tag mutations are
	// mirrored into the owning grid's indices through it.
	grid *Grid
	cell int
}

// NewParticle creates a particle at the given position with unit mass.
// The particle is not indexed until it is admitted by a System or Grid.
func NewParticle(pos r2.Vec) *Particle {
	return &Particle{
		Pos:  pos,
		Mass: 1,
		tags: make(map[string]struct{}),
		cell: CellOutside,
	}
}

// ApplyForce adds f to the force accumulator. No-op for static particles.
func (p *Particle) ApplyForce(f r2.Vec) {
	if p.Static {
		return
	}
	p.force = r2.Add(p.force, f)
}

// Integrate consumes the accumulated force and advances the particle one
// step. If maxForce is non-negative, the total accumulated force is clamped
// to that magnitude before dividing by mass; clamping after the division
// would change the effective acceleration cap for non-unit masses.
func (p *Particle) Integrate(maxForce float64) {
	if !p.Static {
		f := p.force
		if maxForce >= 0 {
			if m := r2.Norm(f); m > maxForce && m > 0 {
				f = r2.Scale(maxForce/m, f)
			}
		}
		// Zero mass would produce non-finite velocity; treat as no force.
		if p.Mass > 0 {
			p.Vel = r2.Add(p.Vel, r2.Scale(1/p.Mass, f))
		}
		p.Pos = r2.Add(p.Pos, p.Vel)
	}
	p.force = r2.Vec{}
	p.Life++
}

// AddTag adds a tag to the particle and mirrors it into the owning grid's
// cell and global indices.
func (p *Particle) AddTag(tag string) {
	if _, ok := p.tags[tag]; ok {
		return
	}
	p.tags[tag] = struct{}{}
	if p.grid != nil {
		p.grid.tagAdded(p, tag)
	}
}

// RemoveTag removes a tag from the particle and the owning grid's indices.
func (p *Particle) RemoveTag(tag string) {
	if _, ok := p.tags[tag]; !ok {
		return
	}
	delete(p.tags, tag)
	if p.grid != nil {
		p.grid.tagRemoved(p, tag)
	}
}

// HasTag reports whether the particle carries the given tag.
func (p *Particle) HasTag(tag string) bool {
	_, ok := p.tags[tag]
	return ok
}

// Tags returns a fresh copy of the particle's tag set.
func (p *Particle) Tags() []string {
	out := make([]string, 0, len(p.tags))
	for tag := range p.tags {
		out = append(out, tag)
	}
	return out
}

// Springs returns the particle's current spring attachments. The returned
// slice is the live attachment list; callers must not mutate it.
func (p *Particle) Springs() []*Spring {
	return p.springs
}

// Remove flags the particle for removal at the cleanup phase of the current
// tick. Once set the flag is never cleared; the particle keeps participating
// in the remainder of the tick.
func (p *Particle) Remove() {
	p.removed = true
}

// Removed reports whether the particle is flagged for removal.
func (p *Particle) Removed() bool {
	return p.removed
}

func (p *Particle) attachSpring(s *Spring) {
	p.springs = append(p.springs, s)
}

func (p *Particle) detachSpring(s *Spring) {
	for i, q := range p.springs {
		if q == s {
			p.springs = append(p.springs[:i], p.springs[i+1:]...)
			return
		}
	}
}
