// Package validation collects findings about a settlement config, a live
// session or a replayed script into one report.
package validation

import (
	"fmt"

	"github.com/Yuminaga-Ten/Ease/pkg/grid"
	"github.com/Yuminaga-Ten/Ease/pkg/occupancy"
)

// Level indicates which check produced the result.
type Level string

const (
	LevelSchema      Level = "schema"      // settlement.yaml ranges and names
	LevelConsistency Level = "consistency" // occupancy against committed structures
	LevelReplay      Level = "replay"      // script expectations
)

// Severity indicates how critical a validation result is.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Result is a single validation finding. Config findings carry a Path;
// findings about the map carry the Cell and what occupies it.
type Result struct {
	Level        Level          `json:"level"`
	Severity     Severity       `json:"severity"`
	Message      string         `json:"message"`
	Path         string         `json:"path,omitempty"`
	Cell         *grid.Cell     `json:"cell,omitempty"`
	Occupant     occupancy.Kind `json:"occupant,omitempty"`
	ConflictWith occupancy.Kind `json:"conflict_with,omitempty"`
	ActualValue  any            `json:"actual_value,omitempty"`
	Expected     string         `json:"expected,omitempty"`
	Suggestions  []string       `json:"suggestions,omitempty"`
}

// AtCell returns a result located at c.
func AtCell(level Level, c grid.Cell, msg string) Result {
	return Result{Level: level, Cell: &c, Message: msg}
}

// Location names where the finding applies: the cell if set, else the path.
func (r Result) Location() string {
	if r.Cell != nil {
		return r.Cell.String()
	}
	return r.Path
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
	r := &Report{
		Valid:    true,
		Errors:   []Result{},
		Warnings: []Result{},
		Info:     []Result{},
	}
	r.updateSummary()
	return r
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

// Cells returns every map cell named by an error or warning, sorted and
// without duplicates.
func (r *Report) Cells() []grid.Cell {
	seen := make(map[grid.Cell]bool)
	var out []grid.Cell
	for _, list := range [][]Result{r.Errors, r.Warnings} {
		for _, res := range list {
			if res.Cell == nil || seen[*res.Cell] {
				continue
			}
			seen[*res.Cell] = true
			out = append(out, *res.Cell)
		}
	}
	grid.SortCells(out)
	return out
}

// Count returns how many errors and warnings the given level produced.
func (r *Report) Count(level Level) int {
	n := 0
	for _, list := range [][]Result{r.Errors, r.Warnings} {
		for _, res := range list {
			if res.Level == level {
				n++
			}
		}
	}
	return n
}

func (r *Report) updateSummary() {
	r.Summary = fmt.Sprintf("%d errors, %d warnings, %d info",
		len(r.Errors), len(r.Warnings), len(r.Info))
	if n := len(r.Cells()); n > 0 {
		r.Summary += fmt.Sprintf(" on %d cells", n)
	}
}
