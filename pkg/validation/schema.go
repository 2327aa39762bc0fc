package validation

import (
	"fmt"
	"math"

	"github.com/Picsou993/Projet-Immersion-Bien-Ici/pkg/spec"
)

// ValidateSchema performs schema validation on a parsed ProjectSpec.
// It checks structural correctness before any scene is loaded.
func ValidateSchema(s *spec.ProjectSpec) *Report {
	r := NewReport()

	validatePaths(s, r)
	validatePrecision(s, r)
	validateMaxCells(s, r)
	validateCameras(s, r)
	validateWorkers(s, r)
	validateDeadline(s, r)

	return r
}

func validatePaths(s *spec.ProjectSpec, r *Report) {
	if s.Scene == "" {
		r.AddError(Result{
			Level:    LevelSchema,
			Message:  "scene path must not be empty",
			SpecPath: "scene",
			Expected: "path to a scene description",
		})
	}
	if s.Output == "" {
		r.AddError(Result{
			Level:    LevelSchema,
			Message:  "output path must not be empty",
			SpecPath: "output",
			Expected: "path for the hotspot list",
		})
	}
}

func validatePrecision(s *spec.ProjectSpec, r *Report) {
	p := s.Planner.Precision
	if p <= 0 || math.IsNaN(p) || math.IsInf(p, 0) {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     fmt.Sprintf("precision %v must be a positive cell size", p),
			SpecPath:    "planner.precision",
			ActualValue: p,
			Expected:    "> 0",
		})
	}
}

func validateMaxCells(s *spec.ProjectSpec, r *Report) {
	if s.Planner.MaxCells < 0 {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     "max_cells must be >= 0",
			SpecPath:    "planner.max_cells",
			ActualValue: s.Planner.MaxCells,
			Expected:    fmt.Sprintf(">= 0 (0 uses %d)", spec.DefaultMaxCells),
		})
	}
}

func validateCameras(s *spec.ProjectSpec, r *Report) {
	if s.Planner.Cameras() <= 0 {
		r.AddInfo(Result{
			Level:       LevelSchema,
			Message:     "max_cameras <= 0: camera count per candidate is unbounded",
			SpecPath:    "planner.max_cameras",
			ActualValue: s.Planner.Cameras(),
		})
	}
	h := s.Planner.Height()
	if math.IsNaN(h) || math.IsInf(h, 0) {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     "camera_height must be a finite number",
			SpecPath:    "planner.camera_height",
			ActualValue: fmt.Sprint(h),
		})
	}
}

func validateWorkers(s *spec.ProjectSpec, r *Report) {
	if s.Planner.Workers < 0 {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     "workers must be >= 0",
			SpecPath:    "planner.workers",
			ActualValue: s.Planner.Workers,
			Expected:    ">= 0 (0 uses every CPU)",
		})
	}
}

func validateDeadline(s *spec.ProjectSpec, r *Report) {
	d, err := s.Planner.DeadlineDuration()
	if err != nil {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     fmt.Sprintf("deadline is not a duration: %v", err),
			SpecPath:    "planner.deadline",
			ActualValue: s.Planner.Deadline,
			Expected:    "Go duration such as 90s or 5m",
		})
		return
	}
	if d < 0 {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     "deadline must not be negative",
			SpecPath:    "planner.deadline",
			ActualValue: s.Planner.Deadline,
			Expected:    ">= 0",
		})
	}
}
