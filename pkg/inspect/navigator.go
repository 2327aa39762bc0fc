package inspect

import (
	"fmt"

	"github.com/Picsou993/Projet-Immersion-Bien-Ici/pkg/grid"
	"github.com/Picsou993/Projet-Immersion-Bien-Ici/pkg/placement"
)

// Navigator walks the per-start candidates of a search. The cursor is a start
// cell; moving it replays the greedy expansion from the new cell.
type Navigator struct {
	base   *grid.Grid
	cfg    placement.Config
	cursor grid.Point

	cand  placement.Candidate
	trace []placement.Snapshot
	ok    bool
}

// NewNavigator returns a navigator over base with the cursor on start.
func NewNavigator(base *grid.Grid, cfg placement.Config, start grid.Point) (*Navigator, error) {
	if !base.InBounds(start) {
		return nil, fmt.Errorf("%w: %v outside %dx%d grid", placement.ErrInvalidStart, start, base.XSize(), base.ZSize())
	}
	n := &Navigator{base: base, cfg: cfg}
	n.moveTo(start)
	return n, nil
}

// Cursor returns the selected start cell.
func (n *Navigator) Cursor() grid.Point { return n.cursor }

// Candidate returns the expansion from the cursor. ok is false when the
// cursor is not on a free cell.
func (n *Navigator) Candidate() (placement.Candidate, bool) { return n.cand, n.ok }

// Grid returns the candidate grid, or the base grid when the cursor cell
// cannot start an expansion.
func (n *Navigator) Grid() *grid.Grid {
	if !n.ok {
		return n.base
	}
	return n.cand.Grid
}

// Move shifts the cursor by (dx, dz), clamped to the grid, and returns the
// grid to display.
func (n *Navigator) Move(dx, dz int) *grid.Grid {
	next := grid.Pt(
		min(max(n.cursor.X+dx, 0), n.base.XSize()-1),
		min(max(n.cursor.Z+dz, 0), n.base.ZSize()-1),
	)
	if next != n.cursor {
		n.moveTo(next)
	}
	return n.Grid()
}

// Steps returns the number of cameras placed from the cursor.
func (n *Navigator) Steps() int { return len(n.trace) }

// Step returns the grid right after camera i of the current candidate.
func (n *Navigator) Step(i int) (*grid.Grid, error) {
	if !n.ok {
		return nil, fmt.Errorf("%w: %v is %s", placement.ErrInvalidStart, n.cursor, n.base.At(n.cursor))
	}
	if i < 0 || i >= len(n.trace) {
		return nil, fmt.Errorf("step %d out of range [0, %d)", i, len(n.trace))
	}
	return n.trace[i].Grid, nil
}

func (n *Navigator) moveTo(p grid.Point) {
	n.cursor = p
	cand, trace, err := placement.Replay(n.base, p, n.cfg)
	n.cand, n.trace, n.ok = cand, trace, err == nil
}
