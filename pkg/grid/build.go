package grid

import (
	"errors"
	"fmt"
	"math"

	"github.com/Picsou993/Projet-Immersion-Bien-Ici/pkg/geo"
	"github.com/Picsou993/Projet-Immersion-Bien-Ici/pkg/scene"
)

var (
	// ErrDegenerateGrid is returned when the scene footprint yields no cells.
	ErrDegenerateGrid = errors.New("degenerate grid")
	// ErrGridTooLarge is returned when the footprint needs more cells than allowed.
	ErrGridTooLarge = errors.New("grid too large")
)

// DefaultMaxCells bounds the cell count when Build is given no limit.
const DefaultMaxCells = 4_000_000

// span returns round((|min| + |max|) / precision) along x and z as floats,
// so callers can check the size before converting to int.
func span(bounds scene.BoundingBox, precision float64) geo.Point2D {
	lo := bounds.FloorMin().Abs()
	hi := bounds.FloorMax().Abs()
	s := lo.Add(hi).Scale(1 / precision)
	return geo.Pt(math.Round(s.X), math.Round(s.Z))
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Dimensions returns the grid size for a scene footprint:
// round((|min| + |max|) / precision) along x and z. An axis whose span is not
// finite or does not fit in an int reports 0 cells.
func Dimensions(bounds scene.BoundingBox, precision float64) (xSize, zSize int) {
	s := span(bounds, precision)
	return axisCells(s.X), axisCells(s.Z)
}

func axisCells(v float64) int {
	if !finite(v) || v <= 0 || v > math.MaxInt32 {
		return 0
	}
	return int(v)
}

// CellCenter returns the world position sampled for cell p. y is always 0.
func CellCenter(bounds scene.BoundingBox, precision float64, p Point) scene.Vec3 {
	c := bounds.FloorMin().Add(geo.Pt(float64(p.X)+0.5, float64(p.Z)+0.5).Scale(precision))
	return scene.Vec3{X: c.X, Y: 0, Z: c.Z}
}

// Build rasterizes blocking boxes into an occupancy grid covering bounds.
// A cell is Blocked when any box contains its centre; the first box that does
// wins and later boxes are not tested for that cell.
//
// maxCells caps XSize × ZSize; a value <= 0 means DefaultMaxCells. The size is
// checked before anything is allocated.
func Build(bounds scene.BoundingBox, blocking []scene.BoundingBox, precision float64, maxCells int) (*Grid, error) {
	if precision <= 0 || !finite(precision) {
		return nil, fmt.Errorf("%w: precision %v", ErrDegenerateGrid, precision)
	}
	if maxCells <= 0 {
		maxCells = DefaultMaxCells
	}

	s := span(bounds, precision)
	if !finite(s.X) || !finite(s.Z) {
		return nil, fmt.Errorf("%w: footprint %v..%v is not finite at precision %v",
			ErrDegenerateGrid, bounds.Min, bounds.Max, precision)
	}
	if s.X <= 0 || s.Z <= 0 {
		return nil, fmt.Errorf("%w: %vx%v cells for bounds %v..%v at precision %v",
			ErrDegenerateGrid, s.X, s.Z, bounds.Min, bounds.Max, precision)
	}
	// Both sides are >= 1 here, so neither exceeds the product.
	if s.X*s.Z > float64(maxCells) {
		return nil, fmt.Errorf("%w: %vx%v cells at precision %v exceeds max_cells %d",
			ErrGridTooLarge, s.X, s.Z, precision, maxCells)
	}
	xSize, zSize := int(s.X), int(s.Z)

	g := New(xSize, zSize)
	for i := 0; i < xSize; i++ {
		for j := 0; j < zSize; j++ {
			p := Point{X: i, Z: j}
			center := CellCenter(bounds, precision, p)
			for _, box := range blocking {
				if box.ContainsPoint(center) {
					g.Set(p, Blocked)
					break
				}
			}
		}
	}
	return g, nil
}
