package route

import (
	"fmt"

	"github.com/uberhub/innovation-hub/backend/internal/model/facility"
)

// Priority selects what the planner optimises for.
type Priority string

const (
	PriorityDistance Priority = "distance"
	PrioritySector   Priority = "sector"
	PriorityPhase    Priority = "phase"
	PriorityBalanced Priority = "balanced"
)

// DefaultMaxStops is used when a caller does not cap the route.
const DefaultMaxStops = 10

// Valid reports whether p is a known priority.
func (p Priority) Valid() bool {
	switch p {
	case PriorityDistance, PrioritySector, PriorityPhase, PriorityBalanced:
		return true
	default:
		return false
	}
}

// Criteria describes an explicit route request.
type Criteria struct {
	Priority Priority              `json:"priority"`
	Sectors  []string              `json:"sectors,omitempty"`
	Phases   []string              `json:"phases,omitempty"`
	MaxStops int                   `json:"maxStops"`
	Start    *facility.Coordinates `json:"start,omitempty"`
}

// Validate checks the criteria before any prompt is built.
func (c Criteria) Validate() error {
	if !c.Priority.Valid() {
		return fmt.Errorf("unknown priority %q", c.Priority)
	}
	if c.MaxStops <= 0 {
		return fmt.Errorf("maxStops must be positive, got %d", c.MaxStops)
	}
	if c.Start != nil && !c.Start.Valid() {
		return fmt.Errorf("start location %v,%v is not a valid coordinate", c.Start.Lat, c.Start.Lng)
	}
	return nil
}
