// Package scene builds demo content on top of the particle engine: stock
// force behaviors and spring-body builders. It consumes only the engine's
// public surface.
package scene

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/liamegan/playground/particles"
)

// Gravity returns a behavior applying a constant force each tick.
func Gravity(f r2.Vec) particles.BehaviorFunc {
	return func(p *particles.Particle) {
		p.ApplyForce(f)
	}
}

// Drag returns a behavior applying a force opposing velocity, scaled by
// coeff. Keeps spring bodies from oscillating forever.
func Drag(coeff float64) particles.BehaviorFunc {
	return func(p *particles.Particle) {
		p.ApplyForce(r2.Scale(-coeff, p.Vel))
	}
}

// Contain returns a behavior reflecting particles off the domain walls.
// restitution scales the reflected velocity component.
func Contain(width, height, restitution float64) particles.BehaviorFunc {
	return func(p *particles.Particle) {
		if p.Pos.X < 0 {
			p.Pos.X = 0
			p.Vel.X *= -restitution
		} else if p.Pos.X > width {
			p.Pos.X = width
			p.Vel.X *= -restitution
		}
		if p.Pos.Y < 0 {
			p.Pos.Y = 0
			p.Vel.Y *= -restitution
		} else if p.Pos.Y > height {
			p.Pos.Y = height
			p.Vel.Y *= -restitution
		}
	}
}

// Repulsion returns a symmetric interaction pushing pairs apart with a
// force falling off linearly to zero at radius. Pairs further apart than
// radius are unaffected; coincident pairs have no defined direction and
// are skipped.
func Repulsion(radius, strength float64) particles.SymmetricInteractionFunc {
	return func(a, b *particles.Particle) {
		delta := r2.Sub(a.Pos, b.Pos)
		d := r2.Norm(delta)
		if d == 0 || d >= radius {
			return
		}
		f := r2.Scale(strength*(1-d/radius)/d, delta)
		a.ApplyForce(f)
		b.ApplyForce(r2.Scale(-1, f))
	}
}

// Seek returns a one-way interaction accelerating the particle toward the
// centroid of its neighbors.
func Seek(strength float64) particles.InteractionFunc {
	return func(p *particles.Particle, neighbors []*particles.Particle) {
		if len(neighbors) == 0 {
			return
		}
		var centroid r2.Vec
		for _, n := range neighbors {
			centroid = r2.Add(centroid, n.Pos)
		}
		centroid = r2.Scale(1/float64(len(neighbors)), centroid)
		delta := r2.Sub(centroid, p.Pos)
		if d := r2.Norm(delta); d > 0 {
			p.ApplyForce(r2.Scale(strength/d, delta))
		}
	}
}
