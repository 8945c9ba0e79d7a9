package particles

import (
	"gonum.org/v1/gonum/spatial/r2"
)

// Spring is a Hookean link between two particles. Each Update applies a
// restoring force pair proportional to the displacement from RestLength.
type Spring struct {
	A, B       *Particle
	RestLength float64
	Stiffness  float64

	removed bool
}

// NewSpring links a and b with the given rest length and stiffness.
// The spring is inert until admitted by a System.
func NewSpring(a, b *Particle, restLength, stiffness float64) *Spring {
	return &Spring{A: a, B: b, RestLength: restLength, Stiffness: stiffness}
}

// Update applies the restoring force pair: +f to A and -f to B, where f
// points along A-B with magnitude (RestLength - d) * Stiffness. Coincident
// endpoints have no defined direction and apply no force.
func (s *Spring) Update() {
	delta := r2.Sub(s.A.Pos, s.B.Pos)
	d := r2.Norm(delta)
	if d == 0 {
		return
	}
	f := r2.Scale((s.RestLength-d)*s.Stiffness/d, delta)
	s.A.ApplyForce(f)
	s.B.ApplyForce(r2.Scale(-1, f))
}

// Other returns the endpoint that is not p, or nil if p is not an endpoint.
func (s *Spring) Other(p *Particle) *Particle {
	switch p {
	case s.A:
		return s.B
	case s.B:
		return s.A
	}
	return nil
}

// Remove flags the spring for removal at cleanup. It still applies force
// for the remainder of the tick in which it was flagged.
func (s *Spring) Remove() {
	s.removed = true
}

// Removed reports whether the spring is flagged for removal.
func (s *Spring) Removed() bool {
	return s.removed
}
