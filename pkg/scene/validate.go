package scene

import (
	"fmt"

	"github.com/Picsou993/Projet-Immersion-Bien-Ici/pkg/validation"
)

// ValidateScene performs structural validation on a loaded scene.
// It checks object integrity, bounds enclosure and that the floor footprint
// can produce a grid at all.
func ValidateScene(s *Scene) *validation.Report {
	r := validation.NewReport()

	if s == nil {
		r.AddError(validation.Result{
			Level:   validation.LevelScene,
			Message: "scene is nil",
		})
		return r
	}

	validateFootprint(s, r)
	validateObjectIDs(s, r)
	validateObjectBoxes(s, r)
	validateBlocking(s, r)

	return r
}

func validateFootprint(s *Scene, r *validation.Report) {
	if len(s.Objects) == 0 {
		r.AddWarning(validation.Result{
			Level:    validation.LevelScene,
			Message:  "scene has no children",
			SpecPath: "object.children",
		})
	}

	size := s.Bounds.Size()
	if s.Bounds.IsInverted() || size.X <= 0 || size.Z <= 0 {
		r.AddError(validation.Result{
			Level:       validation.LevelScene,
			Message:     fmt.Sprintf("scene floor footprint is degenerate (%.2f x %.2f)", size.X, size.Z),
			SpecPath:    "boundingBox",
			ActualValue: fmt.Sprintf("min=%v max=%v", s.Bounds.Min, s.Bounds.Max),
			Expected:    "positive extent along x and z",
			Suggestions: []string{"Add objects with bounding boxes or an explicit scene boundingBox"},
		})
	}
}

func validateObjectIDs(s *Scene, r *validation.Report) {
	seen := make(map[string]int, len(s.Objects))

	for i, o := range s.Objects {
		if o.UUID == "" {
			continue
		}
		if prev, exists := seen[o.UUID]; exists {
			r.AddError(validation.Result{
				Level:       validation.LevelScene,
				Message:     fmt.Sprintf("duplicate object uuid %q at indices %d and %d", o.UUID, prev, i),
				SpecPath:    fmt.Sprintf("object.children[%d].uuid", i),
				ActualValue: o.UUID,
			})
		}
		seen[o.UUID] = i
	}
}

func validateObjectBoxes(s *Scene, r *validation.Report) {
	tolerance := 1e-6

	for i, o := range s.Objects {
		if o.BoundingBox == nil {
			if o.UserData.Blocking {
				r.AddWarning(validation.Result{
					Level:    validation.LevelScene,
					Message:  fmt.Sprintf("blocking object %q has no bounding box and will be ignored", o.Name),
					SpecPath: fmt.Sprintf("object.children[%d].boundingBox", i),
				})
			}
			continue
		}

		b := *o.BoundingBox
		if b.IsInverted() {
			r.AddError(validation.Result{
				Level:       validation.LevelScene,
				Message:     fmt.Sprintf("object %q has an inverted bounding box", o.Name),
				SpecPath:    fmt.Sprintf("object.children[%d].boundingBox", i),
				ActualValue: fmt.Sprintf("min=%v max=%v", b.Min, b.Max),
				Expected:    "min <= max on every axis",
			})
			continue
		}

		if !o.UserData.Blocking {
			continue
		}
		if b.Min.X < s.Bounds.Min.X-tolerance || b.Max.X > s.Bounds.Max.X+tolerance ||
			b.Min.Z < s.Bounds.Min.Z-tolerance || b.Max.Z > s.Bounds.Max.Z+tolerance {
			r.AddWarning(validation.Result{
				Level:       validation.LevelScene,
				Message:     fmt.Sprintf("blocking object %q extends outside the scene bounds", o.Name),
				SpecPath:    fmt.Sprintf("object.children[%d].boundingBox", i),
				ActualValue: fmt.Sprintf("min=%v max=%v", b.Min, b.Max),
			})
		}
	}
}

func validateBlocking(s *Scene, r *validation.Report) {
	if len(s.BlockingBoxes()) == 0 {
		r.AddInfo(validation.Result{
			Level:   validation.LevelScene,
			Message: "scene has no blocking objects: every floor cell is free",
		})
	}
}
