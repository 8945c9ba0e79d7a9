package scene

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/liamegan/playground/config"
	"github.com/liamegan/playground/particles"
)

// Blob creates a ring of n particles around center, spring-connected to
// both ring neighbors and to the particle across the ring, forming a soft
// body that holds its shape. Returns the created particles; fewer than
// requested when admission control rejects some.
func Blob(sys *particles.System, center r2.Vec, n int, radius, stiffness float64, tag string) []*particles.Particle {
	if n < 3 {
		return nil
	}

	ring := make([]*particles.Particle, 0, n)
	for i := 0; i < n; i++ {
		angle := float64(i) / float64(n) * 2 * math.Pi
		pos := r2.Add(center, r2.Vec{X: math.Cos(angle) * radius, Y: math.Sin(angle) * radius})
		p := sys.CreateParticle(pos, false)
		if p == nil {
			continue
		}
		p.AddTag(tag)
		ring = append(ring, p)
	}

	// Edge springs hold the perimeter, cross springs hold the volume.
	edgeRest := 2 * radius * math.Sin(math.Pi/float64(n))
	for i := range ring {
		sys.CreateSpring(ring[i], ring[(i+1)%len(ring)], edgeRest, stiffness)
	}
	if len(ring) == n {
		for i := 0; i < n/2; i++ {
			sys.CreateSpring(ring[i], ring[(i+n/2)%n], 2*radius, stiffness)
		}
	}

	return ring
}

// Chain creates a run of links spring-connected particles from one point
// to another, with both ends static. Returns the created particles in
// order, or nil when the endpoints could not be admitted.
func Chain(sys *particles.System, from, to r2.Vec, links int, stiffness float64, tag string) []*particles.Particle {
	if links < 2 {
		return nil
	}

	step := r2.Scale(1/float64(links-1), r2.Sub(to, from))
	rest := r2.Norm(step)

	chain := make([]*particles.Particle, 0, links)
	for i := 0; i < links; i++ {
		p := sys.CreateParticle(r2.Add(from, r2.Scale(float64(i), step)), false)
		if p == nil {
			return nil
		}
		p.AddTag(tag)
		chain = append(chain, p)
	}
	chain[0].Static = true
	chain[len(chain)-1].Static = true

	for i := 0; i < len(chain)-1; i++ {
		sys.CreateSpring(chain[i], chain[i+1], rest, stiffness)
	}

	return chain
}

// Dust scatters n free particles uniformly over the domain.
func Dust(sys *particles.System, rng *rand.Rand, n int, tag string) []*particles.Particle {
	w, h := sys.Grid().Bounds()

	out := make([]*particles.Particle, 0, n)
	for i := 0; i < n; i++ {
		p := sys.CreateParticle(r2.Vec{X: rng.Float64() * w, Y: rng.Float64() * h}, false)
		if p == nil {
			continue
		}
		p.AddTag(tag)
		out = append(out, p)
	}
	return out
}

// Tags used by Populate for the demo scene.
const (
	TagBlob  = "blob"
	TagChain = "chain"
	TagDust  = "dust"
)

// Populate assembles the configured demo scene and registers its stock
// forces on the system.
func Populate(sys *particles.System, rng *rand.Rand, cfg *config.Config) {
	w, h := sys.Grid().Bounds()

	for i := 0; i < cfg.Scene.Blobs; i++ {
		center := r2.Vec{
			X: cfg.Scene.BlobRadius + rng.Float64()*(w-2*cfg.Scene.BlobRadius),
			Y: cfg.Scene.BlobRadius + rng.Float64()*(h-2*cfg.Scene.BlobRadius),
		}
		Blob(sys, center, cfg.Scene.BlobParticles, cfg.Scene.BlobRadius, cfg.Scene.BlobStiffness, TagBlob)
	}

	if cfg.Scene.ChainLinks > 0 {
		Chain(sys,
			r2.Vec{X: w * 0.25, Y: h * 0.2},
			r2.Vec{X: w * 0.75, Y: h * 0.2},
			cfg.Scene.ChainLinks, cfg.Scene.ChainStiffness, TagChain)
	}

	Dust(sys, rng, cfg.Scene.Dust, TagDust)

	sys.AddSymmetricInteraction(
		Repulsion(cfg.Forces.RepulsionRadius, cfg.Forces.RepulsionStrength),
		particles.NoFilter())
	sys.AddInteraction(
		Seek(cfg.Forces.SeekStrength),
		particles.AnyOf(TagDust), particles.AnyOf(TagDust))
	sys.AddBehavior(Gravity(r2.Vec{Y: cfg.Forces.Gravity}), particles.AnyOf(TagBlob, TagChain))
	sys.AddBehavior(Drag(cfg.Forces.Drag), particles.NoFilter())
	sys.AddBehavior(Contain(w, h, cfg.Forces.Restitution), particles.NoFilter())
}
