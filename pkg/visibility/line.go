// Package visibility casts line-of-sight rays across an occupancy grid.
package visibility

import (
	"slices"

	"github.com/Picsou993/Projet-Immersion-Bien-Ici/pkg/grid"
)

// Line returns the 8-connected cells between a and b, both included, ordered
// from a. The cell set does not depend on direction: the line is always
// rasterized from the row-major smaller endpoint and reversed when needed.
func Line(a, b grid.Point) []grid.Point {
	if b.Less(a) {
		pts := appendLine(nil, b, a)
		slices.Reverse(pts)
		return pts
	}
	return appendLine(nil, a, b)
}

// appendLine rasterizes a→b with integer error accumulation.
func appendLine(dst []grid.Point, a, b grid.Point) []grid.Point {
	dx := abs(b.X - a.X)
	dz := abs(b.Z - a.Z)
	sx, sz := -1, -1
	if a.X < b.X {
		sx = 1
	}
	if a.Z < b.Z {
		sz = 1
	}

	err := dx - dz
	x, z := a.X, a.Z
	for {
		dst = append(dst, grid.Point{X: x, Z: z})
		if x == b.X && z == b.Z {
			return dst
		}
		e2 := 2 * err
		if e2 > -dz {
			err -= dz
			x += sx
		}
		if e2 < dx {
			err += dx
			z += sz
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
