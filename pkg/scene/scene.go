package scene

import (
	"math"

	"github.com/Picsou993/Projet-Immersion-Bien-Ici/pkg/geo"
)

// Vec3 is a 3D vector.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// BoundingBox defines an axis-aligned bounding box.
type BoundingBox struct {
	Min Vec3 `json:"min"`
	Max Vec3 `json:"max"`
}

// ContainsPoint reports whether p lies inside the box. Faces are inclusive.
func (b BoundingBox) ContainsPoint(p Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// Union returns the smallest box enclosing both b and o.
func (b BoundingBox) Union(o BoundingBox) BoundingBox {
	return BoundingBox{
		Min: Vec3{math.Min(b.Min.X, o.Min.X), math.Min(b.Min.Y, o.Min.Y), math.Min(b.Min.Z, o.Min.Z)},
		Max: Vec3{math.Max(b.Max.X, o.Max.X), math.Max(b.Max.Y, o.Max.Y), math.Max(b.Max.Z, o.Max.Z)},
	}
}

// Size returns the extent of the box along each axis.
func (b BoundingBox) Size() Vec3 {
	return Vec3{b.Max.X - b.Min.X, b.Max.Y - b.Min.Y, b.Max.Z - b.Min.Z}
}

// IsInverted reports whether any max coordinate is below its min.
func (b BoundingBox) IsInverted() bool {
	return b.Max.X < b.Min.X || b.Max.Y < b.Min.Y || b.Max.Z < b.Min.Z
}

// FloorArea returns the XZ footprint area of the box.
func (b BoundingBox) FloorArea() float64 {
	s := b.Size()
	return s.X * s.Z
}

// FloorMin returns the min corner projected on the floor plane.
func (b BoundingBox) FloorMin() geo.Point2D {
	return geo.Pt(b.Min.X, b.Min.Z)
}

// FloorMax returns the max corner projected on the floor plane.
func (b BoundingBox) FloorMax() geo.Point2D {
	return geo.Pt(b.Max.X, b.Max.Z)
}

// UserData holds the per-object attributes the planner reads.
type UserData struct {
	Blocking bool `json:"blocking"`
}

// Object is a single child of the scene root. Only its world bounding box and
// the blocking flag matter to the planner.
type Object struct {
	UUID        string       `json:"uuid"`
	Name        string       `json:"name"`
	UserData    UserData     `json:"userData"`
	BoundingBox *BoundingBox `json:"boundingBox,omitempty"`
}

// Scene is a loaded scene description.
type Scene struct {
	Name    string      `json:"name"`
	Bounds  BoundingBox `json:"bounds"`
	Objects []Object    `json:"objects"`
}

// BlockingBoxes returns the bounding boxes of every blocking object.
func (s *Scene) BlockingBoxes() []BoundingBox {
	var boxes []BoundingBox
	for _, o := range s.Objects {
		if o.UserData.Blocking && o.BoundingBox != nil {
			boxes = append(boxes, *o.BoundingBox)
		}
	}
	return boxes
}

// computeBounds returns the union of all object boxes, or a zero box when no
// object carries one.
func computeBounds(objects []Object) BoundingBox {
	var bounds BoundingBox
	found := false
	for _, o := range objects {
		if o.BoundingBox == nil {
			continue
		}
		if !found {
			bounds = *o.BoundingBox
			found = true
			continue
		}
		bounds = bounds.Union(*o.BoundingBox)
	}
	return bounds
}
