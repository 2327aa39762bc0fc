package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/Picsou993/Projet-Immersion-Bien-Ici/pkg/grid"
	"github.com/Picsou993/Projet-Immersion-Bien-Ici/pkg/inspect"
	"github.com/Picsou993/Projet-Immersion-Bien-Ici/pkg/placement"
	"github.com/Picsou993/Projet-Immersion-Bien-Ici/pkg/planner"
)

// planFlags are the command-line overrides of the planner configuration.
type planFlags struct {
	maxCameras int
	precision  float64
	workers    int
	link       bool
	setCameras bool
}

func (f planFlags) options() planner.Options {
	opts := planner.Options{
		Precision: f.precision,
		Workers:   f.workers,
		Link:      f.link,
		Progress: func(done, total int) {
			log.Printf("searched %d/%d rows", done, total)
		},
	}
	if f.setCameras {
		n := f.maxCameras
		opts.MaxCameras = &n
	}
	return opts
}

func runPlan(ctx context.Context, projectPath string, flags planFlags) error {
	p, err := planner.Run(ctx, projectPath, flags.options())
	if errors.Is(err, planner.ErrInvalidProject) {
		printValidationReport(p.Report)
		return err
	}
	if err != nil {
		return err
	}

	printCoverageReport(p.Result, p.Coverage, p.Hotspots)
	fmt.Println()
	printValidationReport(p.Report)

	if err := p.Write(); err != nil {
		return fmt.Errorf("writing hotspot list: %w", err)
	}
	log.Printf("wrote %d cameras to %s", len(p.Hotspots), p.Spec.OutputPath())
	return nil
}

func runValidate(projectPath string) error {
	p, err := planner.Prepare(projectPath, planner.Options{})
	if p != nil && p.Report != nil {
		printValidationReport(p.Report)
	}
	if errors.Is(err, planner.ErrInvalidProject) {
		os.Exit(1)
	}
	if err != nil {
		return err
	}
	fmt.Printf("Grid: %dx%d cells, %d free\n", p.Grid.XSize(), p.Grid.ZSize(), p.Grid.CountFree())
	return nil
}

// inspectFlags select what the inspect command renders.
type inspectFlags struct {
	planFlags
	x, z   int
	step   int
	format string
	out    string
}

func runInspect(projectPath string, flags inspectFlags) error {
	p, err := planner.Prepare(projectPath, flags.options())
	if errors.Is(err, planner.ErrInvalidProject) {
		printValidationReport(p.Report)
		return err
	}
	if err != nil {
		return err
	}

	nav, err := inspect.NewNavigator(p.Grid, p.Config(), grid.Pt(flags.x, flags.z))
	if err != nil {
		return err
	}

	g := nav.Grid()
	title := fmt.Sprintf("start (%d, %d)", flags.x, flags.z)
	if cand, ok := nav.Candidate(); ok {
		fmt.Printf("Start (%d, %d): %d cameras, %d cells visible, score %.4f\n",
			cand.Start.X, cand.Start.Z, cand.Cameras, cand.Visited, cand.Score(p.Grid.CountFree()))
		if flags.step >= 0 {
			if g, err = nav.Step(flags.step); err != nil {
				return err
			}
			title = fmt.Sprintf("%s, camera %d", title, flags.step)
		}
	} else {
		fmt.Printf("Start (%d, %d) is %s; showing the base grid\n", flags.x, flags.z, p.Grid.At(nav.Cursor()))
	}

	switch flags.format {
	case "table":
		return inspect.WriteTable(os.Stdout, g)
	case "png":
		if flags.out == "" {
			return errors.New("--out is required for png")
		}
		if err := inspect.SavePNG(g, title, flags.out); err != nil {
			return err
		}
	case "html":
		if flags.out == "" {
			return inspect.RenderHTML(os.Stdout, g, title)
		}
		f, err := os.Create(flags.out)
		if err != nil {
			return err
		}
		if err := inspect.RenderHTML(f, g, title); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format %q (want table, png or html)", flags.format)
	}
	log.Printf("wrote %s", flags.out)
	return nil
}

// exitCode maps pipeline failures to process exit codes.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, planner.ErrInvalidProject):
		return 1
	case errors.Is(err, placement.ErrNoValidPlacement), errors.Is(err, grid.ErrDegenerateGrid),
		errors.Is(err, grid.ErrGridTooLarge):
		return 3
	case errors.Is(err, context.DeadlineExceeded):
		return 4
	}
	return 2
}
