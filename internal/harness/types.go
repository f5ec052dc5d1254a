package harness

import (
	"github.com/roach88/facet/internal/ir"
)

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true when every step behaved as expected and every
	// assertion held.
	Pass bool `json:"pass"`

	// Component is the uid of the component under test.
	Component string `json:"component"`

	// Trace contains every timeline event in seq order.
	Trace []ir.TimelineEvent `json:"trace"`

	// Errors contains step and assertion failures.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// Data is the component's data after the last step.
	Data ir.Object `json:"data"`

	// Render is the last rendered tree as markup, empty if never mounted.
	Render string `json:"render,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []ir.TimelineEvent{},
		Errors: []string{},
		Data:   ir.Object{},
	}
}

// AddError adds a failure message and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
