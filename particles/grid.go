package particles

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// CellOutside is the sentinel cell index for positions outside the grid.
const CellOutside = -1

// Grid partitions a bounded rectangular domain into uniform cells. Each
// cell owns a TagIndex; a global TagIndex mirrors the whole population for
// non-spatial queries.
type Grid struct {
	width    float64
	height   float64
	cellSize float64
	cols     int
	rows     int

	cells     []*TagIndex
	global    *TagIndex
	particles []*Particle
}

// NewGrid creates a grid covering [0,width] x [0,height] with uniform cells.
func NewGrid(width, height, cellSize float64) *Grid {
	cols := int(math.Ceil((width + cellSize) / cellSize))
	rows := int(math.Ceil((height + cellSize) / cellSize))

	cells := make([]*TagIndex, cols*rows)
	for i := range cells {
		cells[i] = NewTagIndex()
	}

	return &Grid{
		width:    width,
		height:   height,
		cellSize: cellSize,
		cols:     cols,
		rows:     rows,
		cells:    cells,
		global:   NewTagIndex(),
	}
}

// Cols returns the column count.
func (g *Grid) Cols() int { return g.cols }

// Rows returns the row count.
func (g *Grid) Rows() int { return g.rows }

// CellSize returns the cell edge length in world units.
func (g *Grid) CellSize() float64 { return g.cellSize }

// Bounds returns the domain dimensions.
func (g *Grid) Bounds() (width, height float64) { return g.width, g.height }

// Len returns the live particle count.
func (g *Grid) Len() int { return len(g.particles) }

// Particles returns the flat list of live particles. The returned slice is
// live; callers must not mutate it.
func (g *Grid) Particles() []*Particle { return g.particles }

// HashPosition maps a world position to a flat cell index, or CellOutside
// if it falls outside the grid.
func (g *Grid) HashPosition(pos r2.Vec) int {
	col := int(math.Floor(pos.X / g.cellSize))
	row := int(math.Floor(pos.Y / g.cellSize))
	if col < 0 || col >= g.cols || row < 0 || row >= g.rows {
		return CellOutside
	}
	return row*g.cols + col
}

// InBounds reports whether pos lies within the domain.
func (g *Grid) InBounds(pos r2.Vec) bool {
	return pos.X >= 0 && pos.X <= g.width && pos.Y >= 0 && pos.Y <= g.height
}

// Clamp returns pos clamped to the domain bounds.
func (g *Grid) Clamp(pos r2.Vec) r2.Vec {
	if pos.X < 0 {
		pos.X = 0
	} else if pos.X > g.width {
		pos.X = g.width
	}
	if pos.Y < 0 {
		pos.Y = 0
	} else if pos.Y > g.height {
		pos.Y = g.height
	}
	return pos
}

// AddParticle inserts p into the flat list, its cell's index and the global
// index. Inserting outside the domain is a precondition violation and
// returns an error; the System front door never lets one through.
func (g *Grid) AddParticle(p *Particle) error {
	idx := g.HashPosition(p.Pos)
	if idx == CellOutside {
		return fmt.Errorf("particles: position (%g, %g) outside grid bounds %gx%g", p.Pos.X, p.Pos.Y, g.width, g.height)
	}
	g.particles = append(g.particles, p)
	g.cells[idx].Add(p)
	g.global.Add(p)
	p.grid = g
	p.cell = idx
	return nil
}

// RemoveParticle removes p from its cell, the flat list and the global
// index, and flags all of its springs for removal. The springs themselves
// are collected at the next cleanup, not synchronously.
func (g *Grid) RemoveParticle(p *Particle) {
	if p.cell != CellOutside {
		g.cells[p.cell].Remove(p)
	}
	g.global.Remove(p)
	for i, q := range g.particles {
		if q == p {
			g.particles = append(g.particles[:i], g.particles[i+1:]...)
			break
		}
	}
	for _, s := range p.springs {
		s.Remove()
	}
	p.grid = nil
	p.cell = CellOutside
}

// UpdateCell re-buckets p after motion. prev is the cell index captured
// before integration. A particle that has left the domain sits in no cell
// until it moves back in; it stays in the flat list and global index.
func (g *Grid) UpdateCell(p *Particle, prev int) {
	idx := g.HashPosition(p.Pos)
	if idx == prev {
		return
	}
	if prev != CellOutside {
		g.cells[prev].Remove(p)
	}
	if idx != CellOutside {
		g.cells[idx].Add(p)
	}
	p.cell = idx
}

// Query returns all particles matching the filter from the global index.
func (g *Grid) Query(f Filter) []*Particle {
	return g.global.Query(f)
}

// QueryAt returns particles matching the filter within cellRadius cells of
// the cell containing at. The radius is in cell units, not world distance:
// a radius of 1 visits the 3x3 block around the center cell. Cells outside
// the grid are skipped.
func (g *Grid) QueryAt(at r2.Vec, cellRadius int, f Filter) []*Particle {
	centerCol := int(math.Floor(at.X / g.cellSize))
	centerRow := int(math.Floor(at.Y / g.cellSize))

	var out []*Particle
	for dr := -cellRadius; dr <= cellRadius; dr++ {
		for dc := -cellRadius; dc <= cellRadius; dc++ {
			col := centerCol + dc
			row := centerRow + dr
			if col < 0 || col >= g.cols || row < 0 || row >= g.rows {
				continue
			}
			out = g.cells[row*g.cols+col].queryInto(out, f)
		}
	}
	return out
}

// DensityAt returns the occupancy of the cell containing pos divided by
// cellSize squared. This is a cell-relative proxy tied to grid resolution,
// not a true areal density estimate, and is kept as-is because admission
// control is calibrated against it. Positions outside the domain report
// infinite density.
func (g *Grid) DensityAt(pos r2.Vec) float64 {
	idx := g.HashPosition(pos)
	if idx == CellOutside {
		return math.Inf(1)
	}
	return float64(g.cells[idx].Len()) / (g.cellSize * g.cellSize)
}

// cellAt returns the TagIndex for grid coordinates, or nil when outside.
func (g *Grid) cellAt(col, row int) *TagIndex {
	if col < 0 || col >= g.cols || row < 0 || row >= g.rows {
		return nil
	}
	return g.cells[row*g.cols+col]
}

// tagAdded mirrors a particle's new tag into its cell and the global index.
func (g *Grid) tagAdded(p *Particle, tag string) {
	if p.cell != CellOutside {
		g.cells[p.cell].addTag(p, tag)
	}
	g.global.addTag(p, tag)
}

// tagRemoved strips a tag association from the cell and global indices.
func (g *Grid) tagRemoved(p *Particle, tag string) {
	if p.cell != CellOutside {
		g.cells[p.cell].removeTag(p, tag)
	}
	g.global.removeTag(p, tag)
}
