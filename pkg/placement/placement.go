// Package placement chooses camera positions on an occupancy grid by greedy
// expansion from every free start cell.
package placement

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/Picsou993/Projet-Immersion-Bien-Ici/pkg/grid"
	"github.com/Picsou993/Projet-Immersion-Bien-Ici/pkg/visibility"
)

// ErrNoValidPlacement is returned when the grid has no free cell to start from.
var ErrNoValidPlacement = errors.New("no valid placement")

// ErrInvalidStart is returned when an expansion is asked to start on a cell
// that is out of bounds or not free.
var ErrInvalidStart = errors.New("invalid start cell")

// noCell marks the absence of an improving camera position.
var noCell = grid.Point{X: -1, Z: -1}

// Config tunes a search.
type Config struct {
	// MaxCameras caps cameras per candidate. Zero or less means no cap.
	MaxCameras int
	// Workers bounds the number of rows searched concurrently. Zero or less
	// uses GOMAXPROCS.
	Workers int
	// Progress, when set, is called after each grid row is searched.
	Progress func(done, total int)
}

func (c Config) workers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.GOMAXPROCS(0)
}

func (c Config) capReached(cameras int) bool {
	return c.MaxCameras > 0 && cameras >= c.MaxCameras
}

// Candidate is the outcome of a greedy expansion from one start cell.
type Candidate struct {
	Start   grid.Point
	Visited int // cells turned Visible, the start camera excluded
	Cameras int
	Placed  []grid.Point // camera cells in placement order
	Grid    *grid.Grid
}

// Score is the coverage per camera normalised by the free area.
func (c Candidate) Score(freeCells int) float64 {
	return score(c.Visited, c.Cameras, freeCells)
}

func score(visited, cameras, freeCells int) float64 {
	if cameras == 0 || freeCells == 0 {
		return 0
	}
	return float64(visited) / float64(cameras*freeCells)
}

// Snapshot is the candidate grid right after one camera was placed.
type Snapshot struct {
	Camera grid.Point
	Gained int
	Grid   *grid.Grid
}

// Run expands greedily from start on a copy of base.
func Run(ctx context.Context, base *grid.Grid, start grid.Point, cfg Config) (Candidate, error) {
	if err := checkStart(base, start); err != nil {
		return Candidate{}, err
	}
	return expand(ctx, base.Clone(), start, cfg, visibility.NewScratch(), nil)
}

// Replay is Run with a snapshot of the grid recorded after every camera.
func Replay(base *grid.Grid, start grid.Point, cfg Config) (Candidate, []Snapshot, error) {
	if err := checkStart(base, start); err != nil {
		return Candidate{}, nil, err
	}
	var trace []Snapshot
	c, err := expand(context.Background(), base.Clone(), start, cfg, visibility.NewScratch(),
		func(work *grid.Grid, cam grid.Point, gained int) {
			trace = append(trace, Snapshot{Camera: cam, Gained: gained, Grid: work.Clone()})
		})
	return c, trace, err
}

func checkStart(base *grid.Grid, start grid.Point) error {
	if !base.InBounds(start) {
		return fmt.Errorf("%w: %v outside %dx%d grid", ErrInvalidStart, start, base.XSize(), base.ZSize())
	}
	if c := base.At(start); c != grid.Free {
		return fmt.Errorf("%w: %v is %s", ErrInvalidStart, start, c)
	}
	return nil
}

// expand runs the greedy loop in place on work, which holds a copy of the base
// grid. Each new camera is the cell of the latest visited list that would
// reveal the most free cells; the loop ends at the camera cap or when no cell
// improves coverage.
func expand(ctx context.Context, work *grid.Grid, start grid.Point, cfg Config, s *visibility.Scratch,
	onPlace func(work *grid.Grid, cam grid.Point, gained int)) (Candidate, error) {
	c := Candidate{Start: start, Grid: work}

	cam := start
	for {
		work.Set(cam, grid.Camera)
		gained, last := s.Cast(work, cam)
		c.Visited += gained
		c.Cameras++
		c.Placed = append(c.Placed, cam)
		if onPlace != nil {
			onPlace(work, cam, gained)
		}

		if cfg.capReached(c.Cameras) {
			return c, nil
		}
		if err := ctx.Err(); err != nil {
			return c, err
		}

		next, best := noCell, 0
		for _, p := range last {
			if n := s.Count(work, p); n > best {
				next, best = p, n
			}
		}
		if next == noCell {
			return c, nil
		}
		cam = next
	}
}
