package placement

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Picsou993/Projet-Immersion-Bien-Ici/pkg/grid"
)

func mustParse(t testing.TB, text string) *grid.Grid {
	t.Helper()
	g, err := grid.Parse(text)
	require.NoError(t, err)
	return g
}

// uShape is a 3x3 room with a stub wall; the open corner sees everything.
const uShape = `
	.#.
	.#.
	...
`

func TestRunGreedyAddsSecondCamera(t *testing.T) {
	base := mustParse(t, uShape)

	c, err := Run(context.Background(), base, grid.Pt(0, 0), Config{})
	require.NoError(t, err)

	assert.Equal(t, []grid.Point{grid.Pt(0, 0), grid.Pt(2, 1)}, c.Placed)
	assert.Equal(t, 2, c.Cameras)
	assert.Equal(t, 6, c.Visited)
	assert.Equal(t, 0, c.Grid.CountFree())
	assert.InDelta(t, 6.0/14.0, c.Score(base.CountFree()), 1e-12)
	assert.Equal(t, 7, base.CountFree(), "base grid must stay untouched")
}

func TestRunRespectsCap(t *testing.T) {
	base := mustParse(t, uShape)

	c, err := Run(context.Background(), base, grid.Pt(0, 0), Config{MaxCameras: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, c.Cameras)
	assert.Equal(t, 3, c.Visited)
}

func TestRunInvalidStart(t *testing.T) {
	base := mustParse(t, uShape)

	_, err := Run(context.Background(), base, grid.Pt(0, 1), Config{})
	assert.ErrorIs(t, err, ErrInvalidStart)

	_, _, err = Replay(base, grid.Pt(5, 0), Config{})
	assert.ErrorIs(t, err, ErrInvalidStart)
}

func TestReplayTrace(t *testing.T) {
	base := mustParse(t, uShape)

	c, trace, err := Replay(base, grid.Pt(0, 0), Config{})
	require.NoError(t, err)
	require.Len(t, trace, c.Cameras)

	assert.Equal(t, grid.Pt(0, 0), trace[0].Camera)
	assert.Equal(t, 3, trace[0].Gained)
	assert.Equal(t, grid.Pt(2, 1), trace[1].Camera)
	assert.Equal(t, 3, trace[1].Gained)

	// Snapshots are copies taken at each step.
	assert.Equal(t, 3, trace[0].Grid.CountFree())
	assert.True(t, trace[1].Grid.Equal(c.Grid))
}

func TestSearchBlockedRowSingleCamera(t *testing.T) {
	base := mustParse(t, `
		..#.
		..#.
		..#.
		..#.
	`)

	res, err := Search(context.Background(), base, Config{MaxCameras: 1, Workers: 2})
	require.NoError(t, err)

	assert.Equal(t, 12, res.FreeCells)
	assert.Len(t, res.Summaries, 12)
	assert.Equal(t, grid.Pt(0, 0), res.Best.Start)
	assert.Equal(t, 1, res.Best.Cameras)
	assert.Equal(t, 7, res.Best.Visited)
	assert.InDelta(t, 7.0/12.0, res.Score, 1e-12)
	assert.Equal(t, 1, res.Best.Grid.Count(grid.Camera))
	assert.Len(t, res.Trace, 1)
	assert.NotEmpty(t, res.RunID)

	for _, s := range res.Summaries {
		assert.LessOrEqual(t, s.Cameras, 1)
	}
	s, ok := res.Lookup(grid.Pt(0, 3))
	require.True(t, ok)
	assert.Equal(t, 3, s.Visited, "cells behind the wall only see their own strip")

	_, ok = res.Lookup(grid.Pt(0, 2))
	assert.False(t, ok, "blocked cells are not start cells")
}

func TestSearchOpenRoomUnbounded(t *testing.T) {
	base := grid.New(3, 3)

	res, err := Search(context.Background(), base, Config{MaxCameras: 0})
	require.NoError(t, err)

	assert.Equal(t, grid.Pt(0, 0), res.Best.Start, "equal scores resolve to the first cell scanned")
	assert.Equal(t, 1, res.Best.Cameras)
	assert.Equal(t, 8, res.Best.Visited)
	for _, s := range res.Summaries {
		assert.Equal(t, 1, s.Cameras, "start %v", s.Start)
		assert.Equal(t, 8, s.Visited, "start %v", s.Start)
	}
}

func TestSearchPrefersSingleCameraCoverage(t *testing.T) {
	base := mustParse(t, uShape)

	res, err := Search(context.Background(), base, Config{})
	require.NoError(t, err)
	assert.Equal(t, grid.Pt(2, 1), res.Best.Start)
	assert.Equal(t, 1, res.Best.Cameras)
	assert.InDelta(t, 6.0/7.0, res.Score, 1e-12)
}

func TestSearchIsolatedCell(t *testing.T) {
	base := mustParse(t, `
		###
		#.#
		###
	`)

	res, err := Search(context.Background(), base, Config{MaxCameras: 3})
	require.NoError(t, err)
	assert.Equal(t, grid.Pt(1, 1), res.Best.Start)
	assert.Equal(t, 1, res.Best.Cameras)
	assert.Zero(t, res.Best.Visited)
	assert.Zero(t, res.Score)
}

func TestSearchNoFreeCells(t *testing.T) {
	base := mustParse(t, "##\n##")
	res, err := Search(context.Background(), base, Config{})
	assert.ErrorIs(t, err, ErrNoValidPlacement)
	assert.Nil(t, res)
}

func TestSearchCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := Search(ctx, grid.New(6, 6), Config{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, res)
}

func TestSearchProgress(t *testing.T) {
	var calls []int
	cfg := Config{
		Workers:  1,
		Progress: func(done, total int) { calls = append(calls, done*10+total) },
	}
	_, err := Search(context.Background(), grid.New(3, 2), cfg)
	require.NoError(t, err)
	if diff := cmp.Diff([]int{13, 23, 33}, calls); diff != "" {
		t.Errorf("progress calls (-want +got):\n%s", diff)
	}
}

func TestSearchInvariants(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 5))
	for trial := 0; trial < 25; trial++ {
		base := grid.New(2+rng.IntN(7), 2+rng.IntN(7))
		for i := 0; i < base.Len(); i++ {
			if rng.IntN(3) == 0 {
				base.Set(base.PointAt(i), grid.Blocked)
			}
		}
		if base.CountFree() == 0 {
			continue
		}
		before := base.Clone()
		maxCameras := rng.IntN(4)

		res, err := Search(context.Background(), base, Config{MaxCameras: maxCameras, Workers: 3})
		require.NoError(t, err)
		assert.True(t, before.Equal(base), "search mutated the base grid")

		best := res.Best
		if maxCameras > 0 {
			assert.LessOrEqual(t, best.Cameras, maxCameras)
			for _, s := range res.Summaries {
				assert.LessOrEqual(t, s.Cameras, maxCameras)
			}
		}
		assert.Equal(t, best.Cameras, best.Grid.Count(grid.Camera))
		assert.Equal(t, best.Visited, best.Grid.Count(grid.Visible)+best.Cameras-1)
		assert.Equal(t, base.Points(grid.Blocked), best.Grid.Points(grid.Blocked))

		// The winner is the first summary holding the maximum score.
		first := 0
		for i, s := range res.Summaries {
			if s.Score > res.Summaries[first].Score {
				first = i
			}
		}
		assert.Equal(t, res.Summaries[first].Start, best.Start, "trial %d\n%s", trial, base)
		assert.InDelta(t, res.Summaries[first].Score, res.Score, 1e-12)

		for i := 1; i < len(res.Trace); i++ {
			assert.Positive(t, res.Trace[i].Gained, "every added camera reveals cells")
		}
	}
}

func BenchmarkSearch(b *testing.B) {
	rng := rand.New(rand.NewPCG(9, 9))
	base := grid.New(24, 24)
	for i := 0; i < base.Len(); i++ {
		if rng.IntN(5) == 0 {
			base.Set(base.PointAt(i), grid.Blocked)
		}
	}
	cfg := Config{MaxCameras: 3}
	for b.Loop() {
		if _, err := Search(context.Background(), base, cfg); err != nil {
			b.Fatal(err)
		}
	}
}
