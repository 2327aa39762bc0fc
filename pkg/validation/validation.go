package validation

import "fmt"

// Level indicates which validation stage produced the result.
type Level string

const (
	LevelSchema    Level = "schema"
	LevelScene     Level = "scene"
	LevelPlacement Level = "placement"
)

// Severity indicates how critical a validation result is.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Cell locates a finding on the occupancy grid by its x and z indices.
type Cell struct {
	X int `json:"x"`
	Z int `json:"z"`
}

// Result is a single validation finding. Placement findings name the grid
// cells they are about; Cells is capped at MaxCells entries and CellCount
// holds the full number.
type Result struct {
	Level       Level    `json:"level"`
	Severity    Severity `json:"severity"`
	Message     string   `json:"message"`
	SpecPath    string   `json:"spec_path"`
	ActualValue any      `json:"actual_value,omitempty"`
	Expected    string   `json:"expected,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
	Cells       []Cell   `json:"cells,omitempty"`
	CellCount   int      `json:"cell_count,omitempty"`
}

// MaxCells is the number of cells kept on one Result.
const MaxCells = 32

// WithCells returns r located at cells, keeping at most MaxCells of them.
func (r Result) WithCells(cells []Cell) Result {
	r.CellCount = len(cells)
	if len(cells) > MaxCells {
		cells = cells[:MaxCells]
	}
	r.Cells = append([]Cell(nil), cells...)
	return r
}

// Report is the complete validation output.
type Report struct {
	Valid    bool     `json:"valid"`
	Errors   []Result `json:"errors"`
	Warnings []Result `json:"warnings"`
	Info     []Result `json:"info"`
	Summary  string   `json:"summary"`
}

// NewReport creates an empty valid report.
func NewReport() *Report {
	return &Report{
		Valid:    true,
		Errors:   []Result{},
		Warnings: []Result{},
		Info:     []Result{},
	}
}

// AddError adds an error result and marks the report invalid.
func (r *Report) AddError(result Result) {
	result.Severity = SeverityError
	r.Errors = append(r.Errors, result)
	r.Valid = false
	r.updateSummary()
}

// AddWarning adds a warning result.
func (r *Report) AddWarning(result Result) {
	result.Severity = SeverityWarning
	r.Warnings = append(r.Warnings, result)
	r.updateSummary()
}

// AddInfo adds an informational result.
func (r *Report) AddInfo(result Result) {
	result.Severity = SeverityInfo
	r.Info = append(r.Info, result)
	r.updateSummary()
}

// Err returns nil for a valid report, otherwise an error naming the first
// error finding.
func (r *Report) Err() error {
	if r.Valid {
		return nil
	}
	if len(r.Errors) == 0 {
		return fmt.Errorf("invalid (%s)", r.Summary)
	}
	return fmt.Errorf("%s: %s (%s)", r.Errors[0].Level, r.Errors[0].Message, r.Summary)
}

// Merge combines another report into this one.
func (r *Report) Merge(other *Report) {
	r.Errors = append(r.Errors, other.Errors...)
	r.Warnings = append(r.Warnings, other.Warnings...)
	r.Info = append(r.Info, other.Info...)
	if !other.Valid {
		r.Valid = false
	}
	r.updateSummary()
}

func (r *Report) updateSummary() {
	r.Summary = fmt.Sprintf("%d errors, %d warnings, %d info",
		len(r.Errors), len(r.Warnings), len(r.Info))
}
