package main

import (
	"fmt"

	"github.com/Picsou993/Projet-Immersion-Bien-Ici/pkg/analytics"
	"github.com/Picsou993/Projet-Immersion-Bien-Ici/pkg/grid"
	"github.com/Picsou993/Projet-Immersion-Bien-Ici/pkg/hotspot"
	"github.com/Picsou993/Projet-Immersion-Bien-Ici/pkg/placement"
	"github.com/Picsou993/Projet-Immersion-Bien-Ici/pkg/validation"
)

func printValidationReport(r *validation.Report) {
	if len(r.Errors) > 0 {
		fmt.Printf("ERRORS (%d):\n", len(r.Errors))
		for _, e := range r.Errors {
			printResult(e)
		}
		fmt.Println()
	}

	if len(r.Warnings) > 0 {
		fmt.Printf("WARNINGS (%d):\n", len(r.Warnings))
		for _, w := range r.Warnings {
			printResult(w)
		}
		fmt.Println()
	}

	if len(r.Info) > 0 {
		fmt.Printf("INFO (%d):\n", len(r.Info))
		for _, i := range r.Info {
			fmt.Printf("  [%s] %s\n", i.Level, i.Message)
			if i.CellCount > 0 {
				fmt.Printf("    %d cells, first (%d, %d)\n", i.CellCount, i.Cells[0].X, i.Cells[0].Z)
			}
		}
		fmt.Println()
	}

	if r.Valid {
		fmt.Printf("Result: VALID (%s)\n", r.Summary)
	} else {
		fmt.Printf("Result: INVALID (%s)\n", r.Summary)
	}
}

func printResult(res validation.Result) {
	fmt.Printf("  [%s] %s\n", res.Level, res.Message)
	if res.SpecPath != "" {
		fmt.Printf("    -> %s = %v\n", res.SpecPath, res.ActualValue)
	}
	if res.Expected != "" {
		fmt.Printf("    expected: %s\n", res.Expected)
	}
	if len(res.Cells) > 0 {
		fmt.Printf("    cells:")
		for _, c := range res.Cells {
			fmt.Printf(" (%d, %d)", c.X, c.Z)
		}
		if more := res.CellCount - len(res.Cells); more > 0 {
			fmt.Printf(" and %d more", more)
		}
		fmt.Println()
	}
	for _, s := range res.Suggestions {
		fmt.Printf("    * %s\n", s)
	}
}

func printCoverageReport(res *placement.Result, c *analytics.Coverage, records []hotspot.Record) {
	fmt.Printf("Camera Placement (run %s)\n", res.RunID)
	fmt.Println("==========================================")
	fmt.Println()

	fmt.Printf("%-6s %-10s %8s %24s\n", "Camera", "Cell", "Gained", "Position")
	fmt.Printf("%-6s %-10s %8s %24s\n", "------", "----------", "--------", "------------------------")
	// Records follow the grid scan order, not the placement order.
	byCell := make(map[grid.Point]hotspot.Position, len(records))
	for i, p := range res.Best.Grid.Points(grid.Camera) {
		if i < len(records) {
			byCell[p] = records[i].Position
		}
	}
	for i, snap := range res.Trace {
		pos := "-"
		if p, ok := byCell[snap.Camera]; ok {
			pos = fmt.Sprintf("(%.2f, %.2f, %.2f)", p.X, p.Y, p.Z)
		}
		cell := fmt.Sprintf("(%d, %d)", snap.Camera.X, snap.Camera.Z)
		fmt.Printf("%-6d %-10s %8d %24s\n", i, cell, snap.Gained, pos)
	}

	fmt.Println()
	fmt.Println("Summary")
	fmt.Println("-------")
	fmt.Printf("  Free cells:        %d\n", c.FreeCells)
	fmt.Printf("  Covered cells:     %d (%.1f%%)\n", c.CoveredCells, 100*c.CoverageRatio)
	fmt.Printf("  Cameras:           %d\n", c.Cameras)
	fmt.Printf("  Score:             %.4f\n", c.Score)
	fmt.Printf("  Start candidates:  %d (mean %.4f, stddev %.4f, max %.4f)\n",
		c.Candidates, c.ScoreMean, c.ScoreStdDev, c.ScoreMax)
	fmt.Printf("  Search time:       %v\n", res.Elapsed)
}
