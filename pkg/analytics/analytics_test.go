package analytics

import (
	"context"
	"math"
	"testing"

	"github.com/Picsou993/Projet-Immersion-Bien-Ici/pkg/grid"
	"github.com/Picsou993/Projet-Immersion-Bien-Ici/pkg/placement"
)

func search(t *testing.T, text string, maxCameras int) *placement.Result {
	t.Helper()
	g, err := grid.Parse(text)
	if err != nil {
		t.Fatal(err)
	}
	res, err := placement.Search(context.Background(), g, placement.Config{MaxCameras: maxCameras})
	if err != nil {
		t.Fatal(err)
	}
	return res
}

func TestAnalyzeOpenRoom(t *testing.T) {
	res := search(t, "...\n...\n...", 0)
	cov, report := Analyze(res)

	if cov.FreeCells != 9 {
		t.Errorf("FreeCells = %d, want 9", cov.FreeCells)
	}
	if cov.CoveredCells != 9 {
		t.Errorf("CoveredCells = %d, want 9", cov.CoveredCells)
	}
	if cov.CoverageRatio != 1 {
		t.Errorf("CoverageRatio = %v, want 1", cov.CoverageRatio)
	}
	if cov.Candidates != 9 {
		t.Errorf("Candidates = %d, want 9", cov.Candidates)
	}
	// Every start scores 8/9, so the spread is zero.
	if math.Abs(cov.ScoreMean-8.0/9.0) > 1e-12 || cov.ScoreStdDev > 1e-12 {
		t.Errorf("score mean/stddev = %v/%v, want 8/9 and 0", cov.ScoreMean, cov.ScoreStdDev)
	}
	if cov.ScoreMax != res.Score {
		t.Errorf("ScoreMax = %v, want %v", cov.ScoreMax, res.Score)
	}
	if len(cov.Gains) != 1 || cov.Gains[0] != 8 {
		t.Errorf("Gains = %v, want [8]", cov.Gains)
	}

	if !report.Valid || len(report.Warnings) != 0 {
		t.Errorf("expected a clean report, got %s", report.Summary)
	}
	if len(report.Info) != 1 {
		t.Errorf("expected one info finding, got %d", len(report.Info))
	}
}

func TestAnalyzeLowCoverage(t *testing.T) {
	// Two walls split the floor in thirds; one camera sees a third at best.
	res := search(t, "..#..#..\n..#..#..\n..#..#..", 1)
	cov, report := Analyze(res)

	if cov.CoverageRatio >= minCoverageRatio {
		t.Fatalf("CoverageRatio = %v, expected below %v", cov.CoverageRatio, minCoverageRatio)
	}
	if len(report.Warnings) == 0 {
		t.Fatal("expected a low coverage warning")
	}
	if report.Warnings[0].SpecPath != "planner.max_cameras" {
		t.Errorf("warning path = %q", report.Warnings[0].SpecPath)
	}
	if !report.Valid {
		t.Error("low coverage is a warning, not an error")
	}
}

func TestAnalyzeIsolatedCell(t *testing.T) {
	res := search(t, "###\n#.#\n###", 3)
	cov, report := Analyze(res)

	if cov.CoveredCells != 1 || cov.CoverageRatio != 1 {
		t.Errorf("covered = %d ratio = %v, want 1 and 1", cov.CoveredCells, cov.CoverageRatio)
	}
	if cov.ScoreStdDev != 0 || cov.ScoreMean != 0 {
		t.Errorf("single candidate should have mean 0 and no spread, got %v/%v", cov.ScoreMean, cov.ScoreStdDev)
	}
	if len(report.Warnings) != 0 {
		t.Errorf("a lone free cell is fully covered, got %d warnings", len(report.Warnings))
	}
}

func TestAnalyzeReportsUncoveredCells(t *testing.T) {
	// The strip behind the wall stays dark; the rest is well covered.
	res := search(t, "...#.\n...#.\n...#.\n...#.\n...#.\n...#.", 1)
	cov, report := Analyze(res)

	if cov.FreeCells-cov.CoveredCells <= 0 {
		t.Fatalf("expected uncovered cells, covered %d of %d", cov.CoveredCells, cov.FreeCells)
	}
	if len(cov.Uncovered) != cov.FreeCells-cov.CoveredCells {
		t.Errorf("Uncovered lists %d cells, want %d", len(cov.Uncovered), cov.FreeCells-cov.CoveredCells)
	}
	found := false
	for _, r := range report.Info {
		if r.ActualValue == cov.FreeCells-cov.CoveredCells {
			found = true
			if r.CellCount != len(cov.Uncovered) || len(r.Cells) == 0 {
				t.Errorf("finding names %d of %d cells, want all %d", len(r.Cells), r.CellCount, len(cov.Uncovered))
			}
			for _, c := range r.Cells {
				if c.Z != 4 {
					t.Errorf("uncovered cell %v is not behind the wall", c)
				}
			}
		}
	}
	if !found {
		t.Error("expected an info finding with the uncovered cell count")
	}
}
