// Package hotspot converts camera cells into the hotspot list read by the tour
// viewer, and encodes or decodes that list.
package hotspot

import (
	"errors"
	"fmt"
	"math"

	"github.com/Picsou993/Projet-Immersion-Bien-Ici/pkg/grid"
	"github.com/Picsou993/Projet-Immersion-Bien-Ici/pkg/scene"
)

// ErrNoCameras is returned when a grid holds no camera to export.
var ErrNoCameras = errors.New("no cameras to export")

// DefaultHeight is the eye height given to exported cameras.
const DefaultHeight = 3.0

// Type distinguishes viewpoints from guidance points.
type Type string

const (
	// TypeCamera is a viewpoint the viewer can teleport to.
	TypeCamera Type = "CAMERA"
	// TypeHotspot is a guidance point between two cameras.
	TypeHotspot Type = "HOTSPOT"
)

// Position is a world-space position.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Record is one entry of the hotspot list.
type Record struct {
	Type     Type     `json:"type"`
	ID       int      `json:"id"`
	Position Position `json:"position"`
	LinkedTo []int    `json:"linkedTo"`
	Camera1  *int     `json:"camera1,omitempty"`
	Camera2  *int     `json:"camera2,omitempty"`
}

// Export returns one CAMERA record per camera cell of g, scanning x then z.
// IDs count up from 0 in scan order. The position of cell (i, j) is
// min + (i, j) scaled by the bounds extent over the grid size, at the given
// height.
func Export(g *grid.Grid, bounds scene.BoundingBox, height float64) ([]Record, error) {
	if g.XSize() == 0 || g.ZSize() == 0 {
		return nil, fmt.Errorf("%w: empty grid", ErrNoCameras)
	}
	stepX := math.Abs(bounds.Max.X-bounds.Min.X) / float64(g.XSize())
	stepZ := math.Abs(bounds.Max.Z-bounds.Min.Z) / float64(g.ZSize())

	var records []Record
	for _, p := range g.Points(grid.Camera) {
		records = append(records, Record{
			Type: TypeCamera,
			ID:   len(records),
			Position: Position{
				X: bounds.Min.X + float64(p.X)*stepX,
				Y: height,
				Z: bounds.Min.Z + float64(p.Z)*stepZ,
			},
			LinkedTo: []int{},
		})
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %dx%d grid", ErrNoCameras, g.XSize(), g.ZSize())
	}
	return records, nil
}

// Cameras returns the CAMERA records of list.
func Cameras(list []Record) []Record {
	var out []Record
	for _, r := range list {
		if r.Type == TypeCamera {
			out = append(out, r)
		}
	}
	return out
}
