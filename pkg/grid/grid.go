// Package grid holds the occupancy grid the camera planner works on.
package grid

import (
	"fmt"
	"strings"
)

// Cell is the state of one floor cell.
type Cell uint8

const (
	Free    Cell = 0
	Blocked Cell = 1
	Camera  Cell = 2
	Visible Cell = 3
)

func (c Cell) String() string {
	switch c {
	case Free:
		return "free"
	case Blocked:
		return "blocked"
	case Camera:
		return "camera"
	case Visible:
		return "visible"
	}
	return fmt.Sprintf("cell(%d)", uint8(c))
}

// Symbol returns the one-character form used by String and Parse.
func (c Cell) Symbol() byte {
	switch c {
	case Blocked:
		return '#'
	case Camera:
		return 'C'
	case Visible:
		return '+'
	}
	return '.'
}

// Point addresses a cell by its x and z indices.
type Point struct {
	X int `json:"x"`
	Z int `json:"z"`
}

// Pt is a shorthand constructor for Point.
func Pt(x, z int) Point {
	return Point{X: x, Z: z}
}

// Less orders points row-major: x first, then z.
func (p Point) Less(q Point) bool {
	if p.X != q.X {
		return p.X < q.X
	}
	return p.Z < q.Z
}

// Grid is an XSize × ZSize occupancy grid stored row-major (x outer, z inner).
// Its dimensions never change after New.
type Grid struct {
	xSize     int
	zSize     int
	cells     []Cell
	perimeter []Point // shared by clones; never modified
}

// New creates a grid with every cell Free.
func New(xSize, zSize int) *Grid {
	if xSize < 0 {
		xSize = 0
	}
	if zSize < 0 {
		zSize = 0
	}
	return &Grid{
		xSize:     xSize,
		zSize:     zSize,
		cells:     make([]Cell, xSize*zSize),
		perimeter: buildPerimeter(xSize, zSize),
	}
}

// XSize returns the number of cells along x.
func (g *Grid) XSize() int { return g.xSize }

// ZSize returns the number of cells along z.
func (g *Grid) ZSize() int { return g.zSize }

// Len returns the total number of cells.
func (g *Grid) Len() int { return len(g.cells) }

// InBounds reports whether p addresses a cell of g.
func (g *Grid) InBounds(p Point) bool {
	return p.X >= 0 && p.X < g.xSize && p.Z >= 0 && p.Z < g.zSize
}

// Index returns the row-major index of p.
func (g *Grid) Index(p Point) int {
	return p.X*g.zSize + p.Z
}

// PointAt is the inverse of Index.
func (g *Grid) PointAt(idx int) Point {
	return Point{X: idx / g.zSize, Z: idx % g.zSize}
}

// At returns the state of the cell at p. p must be in bounds.
func (g *Grid) At(p Point) Cell {
	return g.cells[p.X*g.zSize+p.Z]
}

// Set changes the state of the cell at p. p must be in bounds.
func (g *Grid) Set(p Point, c Cell) {
	g.cells[p.X*g.zSize+p.Z] = c
}

// Clone returns an independent copy of g.
func (g *Grid) Clone() *Grid {
	c := &Grid{xSize: g.xSize, zSize: g.zSize, cells: make([]Cell, len(g.cells)), perimeter: g.perimeter}
	copy(c.cells, g.cells)
	return c
}

// CopyFrom overwrites g with the contents of src. Both grids must have the
// same dimensions.
func (g *Grid) CopyFrom(src *Grid) {
	if g.xSize != src.xSize || g.zSize != src.zSize {
		panic(fmt.Sprintf("grid: CopyFrom %dx%d into %dx%d", src.xSize, src.zSize, g.xSize, g.zSize))
	}
	copy(g.cells, src.cells)
}

// Count returns the number of cells in state c.
func (g *Grid) Count(c Cell) int {
	n := 0
	for _, v := range g.cells {
		if v == c {
			n++
		}
	}
	return n
}

// CountFree returns the number of Free cells.
func (g *Grid) CountFree() int {
	return g.Count(Free)
}

// Points returns every cell in state c in row-major order.
func (g *Grid) Points(c Cell) []Point {
	var pts []Point
	for i, v := range g.cells {
		if v == c {
			pts = append(pts, g.PointAt(i))
		}
	}
	return pts
}

// Equal reports whether both grids have the same dimensions and cells.
func (g *Grid) Equal(o *Grid) bool {
	if g.xSize != o.xSize || g.zSize != o.zSize {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

// Perimeter returns the boundary cells of g in line-of-sight target order:
// for each x, (x, 0) then (x, ZSize-1); then for each inner z, (0, z) then
// (XSize-1, z). The list is built once by New and shared with clones; it
// must not be modified.
func (g *Grid) Perimeter() []Point {
	return g.perimeter
}

func buildPerimeter(xSize, zSize int) []Point {
	if xSize == 0 || zSize == 0 {
		return nil
	}
	points := make([]Point, 0, 2*(xSize+zSize))
	for x := 0; x < xSize; x++ {
		points = append(points, Point{X: x, Z: 0})
		points = append(points, Point{X: x, Z: zSize - 1})
	}
	for z := 1; z < zSize-1; z++ {
		points = append(points, Point{X: 0, Z: z})
		points = append(points, Point{X: xSize - 1, Z: z})
	}
	return points
}

// String renders one line per x row using Cell.Symbol.
func (g *Grid) String() string {
	var b strings.Builder
	b.Grow(g.xSize * (g.zSize + 1))
	for x := 0; x < g.xSize; x++ {
		for z := 0; z < g.zSize; z++ {
			b.WriteByte(g.cells[x*g.zSize+z].Symbol())
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Parse builds a grid from the String form. Blank lines and surrounding
// whitespace are ignored; every row must have the same length.
func Parse(text string) (*Grid, error) {
	var rows []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			rows = append(rows, line)
		}
	}
	if len(rows) == 0 {
		return New(0, 0), nil
	}

	g := New(len(rows), len(rows[0]))
	for x, row := range rows {
		if len(row) != g.zSize {
			return nil, fmt.Errorf("row %d has %d cells, want %d", x, len(row), g.zSize)
		}
		for z := 0; z < len(row); z++ {
			var c Cell
			switch row[z] {
			case '.':
				c = Free
			case '#':
				c = Blocked
			case 'C':
				c = Camera
			case '+':
				c = Visible
			default:
				return nil, fmt.Errorf("row %d col %d: unknown cell symbol %q", x, z, row[z])
			}
			g.cells[x*g.zSize+z] = c
		}
	}
	return g, nil
}
