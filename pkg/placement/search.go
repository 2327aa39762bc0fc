package placement

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/Picsou993/Projet-Immersion-Bien-Ici/pkg/grid"
	"github.com/Picsou993/Projet-Immersion-Bien-Ici/pkg/visibility"
)

// Summary is the score of one start cell, without its grid.
type Summary struct {
	Start   grid.Point `json:"start"`
	Visited int        `json:"visited"`
	Cameras int        `json:"cameras"`
	Score   float64    `json:"score"`
}

// Result is the outcome of a full search.
type Result struct {
	RunID     string
	Best      Candidate
	Score     float64
	FreeCells int
	Trace     []Snapshot
	Summaries []Summary // one per free start cell, in scan order
	Elapsed   time.Duration
}

// Search expands from every free cell of base and keeps the candidate with the
// best score. Rows are searched concurrently; base is never modified. The
// first candidate in scan order wins ties.
func Search(ctx context.Context, base *grid.Grid, cfg Config) (*Result, error) {
	begin := time.Now()
	free := base.CountFree()
	if free == 0 {
		return nil, fmt.Errorf("%w: %dx%d grid has no free cell", ErrNoValidPlacement, base.XSize(), base.ZSize())
	}

	rows := make([][]Summary, base.XSize())
	var (
		mu   sync.Mutex
		done int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.workers())
	for x := range base.XSize() {
		g.Go(func() error {
			s := visibility.NewScratch()
			work := base.Clone()
			var out []Summary
			for z := range base.ZSize() {
				start := grid.Pt(x, z)
				if base.At(start) != grid.Free {
					continue
				}
				if err := gctx.Err(); err != nil {
					return err
				}
				work.CopyFrom(base)
				c, err := expand(gctx, work, start, cfg, s, nil)
				if err != nil {
					return err
				}
				out = append(out, Summary{
					Start:   start,
					Visited: c.Visited,
					Cameras: c.Cameras,
					Score:   c.Score(free),
				})
			}
			rows[x] = out

			if cfg.Progress != nil {
				mu.Lock()
				done++
				cfg.Progress(done, len(rows))
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	summaries := make([]Summary, 0, free)
	for _, row := range rows {
		summaries = append(summaries, row...)
	}
	best := 0
	for i := 1; i < len(summaries); i++ {
		if summaries[i].Score > summaries[best].Score {
			best = i
		}
	}

	winner, trace, err := Replay(base, summaries[best].Start, cfg)
	if err != nil {
		return nil, fmt.Errorf("replay %v: %w", summaries[best].Start, err)
	}

	return &Result{
		RunID:     uuid.NewString(),
		Best:      winner,
		Score:     winner.Score(free),
		FreeCells: free,
		Trace:     trace,
		Summaries: summaries,
		Elapsed:   time.Since(begin),
	}, nil
}

// Lookup returns the summary for start, if start was a free cell.
func (r *Result) Lookup(start grid.Point) (Summary, bool) {
	for _, s := range r.Summaries {
		if s.Start == start {
			return s, true
		}
	}
	return Summary{}, false
}
