package particles

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func TestGridDimensions(t *testing.T) {
	tests := []struct {
		name           string
		w, h, cellSize float64
		cols, rows     int
	}{
		{"square", 200, 200, 10, 21, 21},
		{"non-divisible", 205, 95, 10, 22, 11},
		{"single cell domain", 5, 5, 10, 2, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGrid(tt.w, tt.h, tt.cellSize)
			if g.Cols() != tt.cols || g.Rows() != tt.rows {
				t.Errorf("dims = %dx%d, want %dx%d", g.Cols(), g.Rows(), tt.cols, tt.rows)
			}
		})
	}
}

func TestHashPosition(t *testing.T) {
	g := NewGrid(200, 200, 10)

	tests := []struct {
		name string
		pos  r2.Vec
		want int
	}{
		{"origin", r2.Vec{X: 0, Y: 0}, 0},
		{"first cell interior", r2.Vec{X: 9.9, Y: 9.9}, 0},
		{"second column", r2.Vec{X: 10, Y: 0}, 1},
		{"second row", r2.Vec{X: 0, Y: 10}, 21},
		{"far corner", r2.Vec{X: 200, Y: 200}, 20*21 + 20},
		{"negative x", r2.Vec{X: -1, Y: 5}, CellOutside},
		{"beyond width", r2.Vec{X: 500, Y: 5}, CellOutside},
		{"beyond height", r2.Vec{X: 5, Y: 500}, CellOutside},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.HashPosition(tt.pos); got != tt.want {
				t.Errorf("HashPosition(%+v) = %d, want %d", tt.pos, got, tt.want)
			}
		})
	}
}

func TestAddParticleOutsideBoundsFails(t *testing.T) {
	g := NewGrid(100, 100, 10)
	p := NewParticle(r2.Vec{X: -5, Y: 50})

	if err := g.AddParticle(p); err == nil {
		t.Fatal("expected error for out-of-bounds insertion")
	}
	if g.Len() != 0 {
		t.Errorf("population = %d after failed insert, want 0", g.Len())
	}
}

func TestAddParticleIndexesEverywhere(t *testing.T) {
	g := NewGrid(100, 100, 10)
	p := NewParticle(r2.Vec{X: 25, Y: 35})
	p.AddTag("a")

	if err := g.AddParticle(p); err != nil {
		t.Fatal(err)
	}

	if g.Len() != 1 {
		t.Errorf("flat list len = %d, want 1", g.Len())
	}
	if got := g.Query(AnyOf("a")); len(got) != 1 || got[0] != p {
		t.Error("particle missing from global tag index")
	}
	if got := g.QueryAt(p.Pos, 0, AnyOf("a")); len(got) != 1 || got[0] != p {
		t.Error("particle missing from its cell index")
	}
}

func TestTagMutationPropagatesToIndices(t *testing.T) {
	g := NewGrid(100, 100, 10)
	p := NewParticle(r2.Vec{X: 15, Y: 15})
	if err := g.AddParticle(p); err != nil {
		t.Fatal(err)
	}

	p.AddTag("late")
	if got := g.Query(AnyOf("late")); len(got) != 1 {
		t.Error("tag added after insertion not visible in global index")
	}
	if got := g.QueryAt(p.Pos, 0, AnyOf("late")); len(got) != 1 {
		t.Error("tag added after insertion not visible in cell index")
	}

	p.RemoveTag("late")
	if got := g.Query(AnyOf("late")); len(got) != 0 {
		t.Error("removed tag still visible in global index")
	}
	if got := g.QueryAt(p.Pos, 0, AnyOf("late")); len(got) != 0 {
		t.Error("removed tag still visible in cell index")
	}
}

func TestUpdateCellMaintainsBucketInvariant(t *testing.T) {
	g := NewGrid(100, 100, 10)
	p := NewParticle(r2.Vec{X: 5, Y: 5})
	if err := g.AddParticle(p); err != nil {
		t.Fatal(err)
	}
	p.AddTag("m")

	prev := g.HashPosition(p.Pos)
	p.Pos = r2.Vec{X: 45, Y: 45}
	g.UpdateCell(p, prev)

	if got := g.QueryAt(r2.Vec{X: 5, Y: 5}, 0, AnyOf("m")); len(got) != 0 {
		t.Error("particle still indexed in old cell")
	}
	if got := g.QueryAt(r2.Vec{X: 45, Y: 45}, 0, AnyOf("m")); len(got) != 1 {
		t.Error("particle not indexed in new cell")
	}
	if p.cell != g.HashPosition(p.Pos) {
		t.Errorf("cached cell %d != hashed cell %d", p.cell, g.HashPosition(p.Pos))
	}
}

func TestUpdateCellLeavingDomain(t *testing.T) {
	g := NewGrid(100, 100, 10)
	p := NewParticle(r2.Vec{X: 5, Y: 5})
	if err := g.AddParticle(p); err != nil {
		t.Fatal(err)
	}
	p.AddTag("m")

	prev := p.cell
	p.Pos = r2.Vec{X: -20, Y: 5}
	g.UpdateCell(p, prev)

	if got := g.QueryAt(r2.Vec{X: 5, Y: 5}, 0, AnyOf("m")); len(got) != 0 {
		t.Error("escaped particle still in old cell")
	}
	if got := g.Query(AnyOf("m")); len(got) != 1 {
		t.Error("escaped particle dropped from global index")
	}
}

func TestRemoveParticleFlagsSprings(t *testing.T) {
	g := NewGrid(100, 100, 10)
	a := NewParticle(r2.Vec{X: 10, Y: 10})
	b := NewParticle(r2.Vec{X: 20, Y: 10})
	if err := g.AddParticle(a); err != nil {
		t.Fatal(err)
	}
	if err := g.AddParticle(b); err != nil {
		t.Fatal(err)
	}
	s := NewSpring(a, b, 10, 1)
	a.attachSpring(s)
	b.attachSpring(s)

	g.RemoveParticle(a)

	if !s.Removed() {
		t.Error("spring not flagged when endpoint removed")
	}
	if g.Len() != 1 {
		t.Errorf("population = %d, want 1", g.Len())
	}
	if got := g.Query(NoFilter()); len(got) != 1 || got[0] != b {
		t.Error("global index inconsistent after removal")
	}
}

func TestQueryAtRadiusInCellUnits(t *testing.T) {
	g := NewGrid(200, 200, 10)
	near := NewParticle(r2.Vec{X: 15, Y: 5})   // adjacent cell
	far := NewParticle(r2.Vec{X: 35, Y: 5})    // 3 cells away
	center := NewParticle(r2.Vec{X: 5, Y: 5})
	for _, p := range []*Particle{near, far, center} {
		p.AddTag("a")
		if err := g.AddParticle(p); err != nil {
			t.Fatal(err)
		}
	}

	got := g.QueryAt(center.Pos, 1, AnyOf("a"))
	if !contains(got, center) || !contains(got, near) {
		t.Error("1-cell query missed center or adjacent particle")
	}
	if contains(got, far) {
		t.Error("1-cell query included particle 3 cells away")
	}

	got = g.QueryAt(center.Pos, 3, AnyOf("a"))
	if !contains(got, far) {
		t.Error("3-cell query missed particle 3 cells away")
	}
}

func TestDensityAt(t *testing.T) {
	g := NewGrid(100, 100, 10)
	for i := 0; i < 4; i++ {
		p := NewParticle(r2.Vec{X: 5, Y: 5})
		if err := g.AddParticle(p); err != nil {
			t.Fatal(err)
		}
	}

	want := 4.0 / 100.0
	if got := g.DensityAt(r2.Vec{X: 5, Y: 5}); got != want {
		t.Errorf("DensityAt = %v, want %v", got, want)
	}
	if got := g.DensityAt(r2.Vec{X: 55, Y: 55}); got != 0 {
		t.Errorf("empty cell density = %v, want 0", got)
	}
	if got := g.DensityAt(r2.Vec{X: -5, Y: 5}); !math.IsInf(got, 1) {
		t.Errorf("outside density = %v, want +Inf", got)
	}
}
