// Package planner computes the field-level patches needed to bring the
// scheduling system's projects and people in line with the time-tracking
// system. Planning is pure; applying patches is the caller's concern.
package planner

import "fmt"

// Patch is a single pending PATCH write: the endpoint, the record id and
// only the fields that differ. An empty Fields map never occurs; the
// planner emits no patch when nothing differs.
type Patch struct {
	Endpoint string
	ID       int64
	Fields   map[string]any
}

// String returns a compact form for logs.
func (p Patch) String() string {
	return fmt.Sprintf("%s/%d %v", p.Endpoint, p.ID, p.Fields)
}
