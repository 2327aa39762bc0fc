package visibility

import "github.com/Picsou993/Projet-Immersion-Bien-Ici/pkg/grid"

// Scratch holds reusable buffers for ray casting. A Scratch is not safe for
// concurrent use; give each goroutine its own.
type Scratch struct {
	line  []grid.Point
	stamp []uint32
	gen   uint32
}

// NewScratch returns an empty Scratch.
func NewScratch() *Scratch {
	return &Scratch{}
}

// Cast marks what origin sees on g. One ray is traced to every perimeter
// cell; a ray stops at the first Blocked cell or at its target. Free cells
// crossed become Visible. It returns how many cells changed and those cells
// in discovery order. Cells that were already Visible are not counted again.
func Cast(g *grid.Grid, origin grid.Point) (int, []grid.Point) {
	var s Scratch
	return s.Cast(g, origin)
}

// Cast is the buffered form of the package-level Cast.
func (s *Scratch) Cast(g *grid.Grid, origin grid.Point) (int, []grid.Point) {
	count := 0
	var visited []grid.Point
	for _, target := range g.Perimeter() {
		s.walk(origin, target, func(p grid.Point) bool {
			switch g.At(p) {
			case grid.Blocked:
				return false
			case grid.Free:
				g.Set(p, grid.Visible)
				visited = append(visited, p)
				count++
			}
			return true
		})
	}
	return count, visited
}

// Count returns what Cast would return as its count on a copy of g, without
// copying or modifying g.
func (s *Scratch) Count(g *grid.Grid, origin grid.Point) int {
	s.nextGeneration(g.Len())
	gen := s.gen

	count := 0
	for _, target := range g.Perimeter() {
		s.walk(origin, target, func(p grid.Point) bool {
			switch g.At(p) {
			case grid.Blocked:
				return false
			case grid.Free:
				if i := g.Index(p); s.stamp[i] != gen {
					s.stamp[i] = gen
					count++
				}
			}
			return true
		})
	}
	return count
}

// nextGeneration starts a fresh overlay of n cells.
func (s *Scratch) nextGeneration(n int) {
	if len(s.stamp) != n {
		s.stamp = make([]uint32, n)
		s.gen = 0
	}
	s.gen++
	if s.gen == 0 {
		clear(s.stamp)
		s.gen = 1
	}
}

// walk visits the cells of Line(a, b) in order from a until visit returns false.
func (s *Scratch) walk(a, b grid.Point, visit func(grid.Point) bool) {
	if b.Less(a) {
		s.line = appendLine(s.line[:0], b, a)
		for i := len(s.line) - 1; i >= 0; i-- {
			if !visit(s.line[i]) {
				return
			}
		}
		return
	}
	s.line = appendLine(s.line[:0], a, b)
	for _, p := range s.line {
		if !visit(p) {
			return
		}
	}
}
