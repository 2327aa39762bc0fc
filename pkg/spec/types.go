package spec

import (
	"path/filepath"
	"time"
)

// Defaults applied to zero-valued fields.
const (
	DefaultPrecision    = 1.0
	DefaultMaxCameras   = 3
	DefaultCameraHeight = 3.0
	DefaultMaxCells     = 4_000_000
	DefaultScene        = "scene.json"
	DefaultOutput       = "hotspots.json"
)

// ProjectSpec is the top-level configuration of a tour project.
type ProjectSpec struct {
	Scene   string     `yaml:"scene" json:"scene"`
	Output  string     `yaml:"output" json:"output"`
	Planner PlannerDef `yaml:"planner" json:"planner"`

	// dir is the project directory relative paths resolve against.
	dir string
}

// PlannerDef holds the camera placement tunables.
type PlannerDef struct {
	Precision    float64  `yaml:"precision" json:"precision"`
	MaxCameras   *int     `yaml:"max_cameras" json:"max_cameras"`     // <= 0 is unbounded
	CameraHeight *float64 `yaml:"camera_height" json:"camera_height"` // 0 puts cameras on the floor
	MaxCells     int      `yaml:"max_cells" json:"max_cells"`         // grid size cap
	Workers      int      `yaml:"workers" json:"workers"`
	Deadline     string   `yaml:"deadline" json:"deadline"`
	LinkCameras  bool     `yaml:"link_cameras" json:"link_cameras"` // fill linkedTo from line of sight
}

// ApplyDefaults fills zero-valued fields with their defaults.
func (s *ProjectSpec) ApplyDefaults() {
	if s.Scene == "" {
		s.Scene = DefaultScene
	}
	if s.Output == "" {
		s.Output = DefaultOutput
	}
	if s.Planner.Precision == 0 {
		s.Planner.Precision = DefaultPrecision
	}
	if s.Planner.MaxCameras == nil {
		n := DefaultMaxCameras
		s.Planner.MaxCameras = &n
	}
	if s.Planner.CameraHeight == nil {
		h := DefaultCameraHeight
		s.Planner.CameraHeight = &h
	}
	if s.Planner.MaxCells == 0 {
		s.Planner.MaxCells = DefaultMaxCells
	}
}

// Cameras returns the per-candidate camera cap.
func (p PlannerDef) Cameras() int {
	if p.MaxCameras == nil {
		return DefaultMaxCameras
	}
	return *p.MaxCameras
}

// Height returns the exported camera y coordinate.
func (p PlannerDef) Height() float64 {
	if p.CameraHeight == nil {
		return DefaultCameraHeight
	}
	return *p.CameraHeight
}

// DeadlineDuration parses the search deadline. An empty value means no deadline.
func (p PlannerDef) DeadlineDuration() (time.Duration, error) {
	if p.Deadline == "" {
		return 0, nil
	}
	return time.ParseDuration(p.Deadline)
}

// Dir returns the project directory the spec was loaded from.
func (s *ProjectSpec) Dir() string {
	return s.dir
}

// ScenePath resolves the scene file against the project directory.
func (s *ProjectSpec) ScenePath() string {
	return s.resolve(s.Scene)
}

// OutputPath resolves the hotspot list destination against the project directory.
func (s *ProjectSpec) OutputPath() string {
	return s.resolve(s.Output)
}

func (s *ProjectSpec) resolve(p string) string {
	if filepath.IsAbs(p) || s.dir == "" {
		return p
	}
	return filepath.Join(s.dir, p)
}
