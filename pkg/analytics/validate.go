package analytics

import (
	"fmt"

	"github.com/Picsou993/Projet-Immersion-Bien-Ici/pkg/grid"
	"github.com/Picsou993/Projet-Immersion-Bien-Ici/pkg/validation"
)

// minCoverageRatio is the share of free floor below which a placement is flagged.
const minCoverageRatio = 0.5

// validateCoverage runs the post-search checks.
func validateCoverage(c *Coverage, report *validation.Report) {
	validateCoverageRatio(c, report)
	validateIsolatedStart(c, report)
	validateUncovered(c, report)
}

func cells(points ...grid.Point) []validation.Cell {
	out := make([]validation.Cell, len(points))
	for i, p := range points {
		out[i] = validation.Cell{X: p.X, Z: p.Z}
	}
	return out
}

func validateCoverageRatio(c *Coverage, report *validation.Report) {
	if c.CoverageRatio < minCoverageRatio {
		report.AddWarning(validation.Result{
			Level:       validation.LevelPlacement,
			Message:     fmt.Sprintf("cameras cover %.0f%% of the free floor (%d of %d cells)", 100*c.CoverageRatio, c.CoveredCells, c.FreeCells),
			SpecPath:    "planner.max_cameras",
			ActualValue: c.CoverageRatio,
			Expected:    fmt.Sprintf(">= %.2f", minCoverageRatio),
			Suggestions: []string{
				"Increase max_cameras or set it to 0 for no cap",
				"Check that doorways are not closed by blocking objects",
			},
		}.WithCells(cells(c.Uncovered...)))
		return
	}
	report.AddInfo(validation.Result{
		Level:       validation.LevelPlacement,
		Message:     fmt.Sprintf("%d cameras cover %.0f%% of the free floor", c.Cameras, 100*c.CoverageRatio),
		SpecPath:    "planner.max_cameras",
		ActualValue: c.CoverageRatio,
	})
}

func validateIsolatedStart(c *Coverage, report *validation.Report) {
	if c.FreeCells > 1 && c.Cameras > 0 && c.CoveredCells <= 1 {
		report.AddWarning(validation.Result{
			Level:       validation.LevelPlacement,
			Message:     "the best camera sees no other cell",
			SpecPath:    "planner.precision",
			ActualValue: c.CoveredCells,
			Suggestions: []string{"Lower precision so narrow passages keep at least one free cell"},
		}.WithCells(cells(c.Start)))
	}
}

func validateUncovered(c *Coverage, report *validation.Report) {
	if missed := c.FreeCells - c.CoveredCells; missed > 0 && c.CoverageRatio >= minCoverageRatio {
		report.AddInfo(validation.Result{
			Level:       validation.LevelPlacement,
			Message:     fmt.Sprintf("%d free cells are not seen by any camera", missed),
			SpecPath:    "planner.max_cameras",
			ActualValue: missed,
		}.WithCells(cells(c.Uncovered...)))
	}
}
