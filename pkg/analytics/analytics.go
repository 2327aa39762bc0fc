package analytics

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/Picsou993/Projet-Immersion-Bien-Ici/pkg/grid"
	"github.com/Picsou993/Projet-Immersion-Bien-Ici/pkg/placement"
	"github.com/Picsou993/Projet-Immersion-Bien-Ici/pkg/validation"
)

// Coverage summarises how well the winning placement covers the floor.
type Coverage struct {
	FreeCells     int     `json:"free_cells"`
	CoveredCells  int     `json:"covered_cells"`
	CoverageRatio float64 `json:"coverage_ratio"`
	Cameras       int     `json:"cameras"`
	Score         float64 `json:"score"`
	Gains         []int   `json:"gains"`

	Start     grid.Point   `json:"start"`
	Uncovered []grid.Point `json:"uncovered"` // free cells no camera sees, scan order

	// Score distribution over every start cell.
	Candidates  int     `json:"candidates"`
	ScoreMean   float64 `json:"score_mean"`
	ScoreStdDev float64 `json:"score_std_dev"`
	ScoreMax    float64 `json:"score_max"`
}

// Analyze computes coverage statistics for a search result.
// Returns the statistics and a validation report.
func Analyze(res *placement.Result) (*Coverage, *validation.Report) {
	report := validation.NewReport()

	cov := &Coverage{
		FreeCells:  res.FreeCells,
		Cameras:    res.Best.Cameras,
		Score:      res.Score,
		Candidates: len(res.Summaries),
		Start:      res.Best.Start,
	}
	if g := res.Best.Grid; g != nil {
		cov.CoveredCells = g.Count(grid.Visible) + g.Count(grid.Camera)
		cov.Uncovered = g.Points(grid.Free)
	}
	if cov.FreeCells > 0 {
		cov.CoverageRatio = float64(cov.CoveredCells) / float64(cov.FreeCells)
	}
	for _, s := range res.Trace {
		cov.Gains = append(cov.Gains, s.Gained)
	}

	if len(res.Summaries) > 0 {
		scores := make([]float64, len(res.Summaries))
		for i, s := range res.Summaries {
			scores[i] = s.Score
		}
		cov.ScoreMax = floats.Max(scores)
		if len(scores) > 1 {
			cov.ScoreMean, cov.ScoreStdDev = stat.MeanStdDev(scores, nil)
		} else {
			cov.ScoreMean = scores[0]
		}
	}

	validateCoverage(cov, report)

	return cov, report
}
