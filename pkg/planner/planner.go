// Package planner runs the camera placement pipeline for a tour project:
// configuration, scene, occupancy grid, search, statistics and export.
package planner

import (
	"context"
	"errors"
	"fmt"

	"github.com/Picsou993/Projet-Immersion-Bien-Ici/pkg/analytics"
	"github.com/Picsou993/Projet-Immersion-Bien-Ici/pkg/grid"
	"github.com/Picsou993/Projet-Immersion-Bien-Ici/pkg/hotspot"
	"github.com/Picsou993/Projet-Immersion-Bien-Ici/pkg/placement"
	"github.com/Picsou993/Projet-Immersion-Bien-Ici/pkg/routing"
	"github.com/Picsou993/Projet-Immersion-Bien-Ici/pkg/scene"
	"github.com/Picsou993/Projet-Immersion-Bien-Ici/pkg/spec"
	"github.com/Picsou993/Projet-Immersion-Bien-Ici/pkg/validation"
)

// ErrInvalidProject is returned when validation finds errors. The plan's
// Report holds the findings.
var ErrInvalidProject = errors.New("invalid project")

// Options override project configuration for one run.
type Options struct {
	MaxCameras *int
	Precision  float64
	Workers    int
	Link       bool // forces planner.link_cameras on
	Progress   func(done, total int)
}

// Plan accumulates the output of each pipeline stage.
type Plan struct {
	Spec     *spec.ProjectSpec
	Scene    *scene.Scene
	Grid     *grid.Grid
	Result   *placement.Result
	Coverage *analytics.Coverage
	Hotspots []hotspot.Record
	Groups   [][]int // camera ids grouped by line of sight, when linking
	Report   *validation.Report

	progress func(done, total int)
}

// Config returns the search configuration of the plan.
func (p *Plan) Config() placement.Config {
	return placement.Config{
		MaxCameras: p.Spec.Planner.Cameras(),
		Workers:    p.Spec.Planner.Workers,
		Progress:   p.progress,
	}
}

// Load reads and validates the project configuration.
func Load(projectPath string, opts Options) (*Plan, error) {
	s, err := spec.LoadProject(projectPath)
	if err != nil {
		return nil, fmt.Errorf("loading spec: %w", err)
	}
	if opts.MaxCameras != nil {
		n := *opts.MaxCameras
		s.Planner.MaxCameras = &n
	}
	if opts.Precision != 0 {
		s.Planner.Precision = opts.Precision
	}
	if opts.Workers != 0 {
		s.Planner.Workers = opts.Workers
	}
	if opts.Link {
		s.Planner.LinkCameras = true
	}

	p := &Plan{Spec: s, Report: validation.ValidateSchema(s), progress: opts.Progress}
	if !p.Report.Valid {
		return p, fmt.Errorf("%w: %w", ErrInvalidProject, p.Report.Err())
	}
	return p, nil
}

// Prepare runs Load, then reads the scene and builds the occupancy grid.
func Prepare(projectPath string, opts Options) (*Plan, error) {
	p, err := Load(projectPath, opts)
	if err != nil {
		return p, err
	}

	p.Scene, err = scene.Load(p.Spec.ScenePath())
	if err != nil {
		return p, err
	}
	p.Report.Merge(scene.ValidateScene(p.Scene))
	if !p.Report.Valid {
		return p, fmt.Errorf("%w: %w", ErrInvalidProject, p.Report.Err())
	}

	p.Grid, err = grid.Build(p.Scene.Bounds, p.Scene.BlockingBoxes(), p.Spec.Planner.Precision, p.Spec.Planner.MaxCells)
	if err != nil {
		return p, err
	}
	return p, nil
}

// Run executes the whole pipeline except writing the hotspot list. The
// configured deadline, if any, bounds the search.
func Run(ctx context.Context, projectPath string, opts Options) (*Plan, error) {
	p, err := Prepare(projectPath, opts)
	if err != nil {
		return p, err
	}

	deadline, err := p.Spec.Planner.DeadlineDuration()
	if err != nil {
		return p, fmt.Errorf("planner.deadline: %w", err)
	}
	if deadline > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, deadline)
		defer cancel()
	}

	p.Result, err = placement.Search(ctx, p.Grid, p.Config())
	if err != nil {
		return p, err
	}

	cov, report := analytics.Analyze(p.Result)
	p.Coverage = cov
	p.Report.Merge(report)

	p.Hotspots, err = hotspot.Export(p.Result.Best.Grid, p.Scene.Bounds, p.Spec.Planner.Height())
	if err != nil {
		return p, err
	}

	if p.Spec.Planner.LinkCameras {
		if err := routing.Link(p.Result.Best.Grid, p.Hotspots); err != nil {
			return p, err
		}
		p.Groups = routing.Components(p.Hotspots)
		validateGroups(p.Groups, p.Report)
	}
	return p, nil
}

// validateGroups warns when some cameras cannot be reached from the others.
func validateGroups(groups [][]int, report *validation.Report) {
	if len(groups) <= 1 {
		return
	}
	report.AddWarning(validation.Result{
		Level:       validation.LevelPlacement,
		Message:     fmt.Sprintf("cameras form %d groups with no line of sight between them", len(groups)),
		SpecPath:    "planner.link_cameras",
		ActualValue: len(groups),
		Expected:    "1 group",
		Suggestions: []string{"Add HOTSPOT guidance points between the groups", "Raise max_cameras"},
	})
}

// Write stores the hotspot list at the configured output path.
func (p *Plan) Write() error {
	if len(p.Hotspots) == 0 {
		return fmt.Errorf("%w: nothing to write", hotspot.ErrNoCameras)
	}
	return hotspot.WriteFile(p.Spec.OutputPath(), p.Hotspots)
}
