package services

import (
	"sort"
)

// Change is one service that exists on both sides with different content.
type Change struct {
	ID     string  `json:"id" yaml:"id"`
	Before Service `json:"before" yaml:"before"` // Distribution copy
	After  Service `json:"after" yaml:"after"`   // Source copy, the one that wins
}

// Diff is the three-way comparison between the distribution and the union of
// source fragments, keyed by id and independent of input order.
type Diff struct {
	Added   []Service `json:"added" yaml:"added"`     // Present in sources only
	Removed []string  `json:"removed" yaml:"removed"` // Present in the distribution only
	Changed []Change  `json:"changed" yaml:"changed"` // Present in both, structurally different
}

// HasChanges reports whether the diff contains any difference.
func (d *Diff) HasChanges() bool {
	return len(d.Added) > 0 || len(d.Removed) > 0 || len(d.Changed) > 0
}

// Total returns the number of differing services.
func (d *Diff) Total() int {
	return len(d.Added) + len(d.Removed) + len(d.Changed)
}

// sort orders every slice by id so output is stable across runs.
func (d *Diff) sort() {
	sort.Slice(d.Added, func(i, j int) bool { return d.Added[i].ID < d.Added[j].ID })
	sort.Strings(d.Removed)
	sort.Slice(d.Changed, func(i, j int) bool { return d.Changed[i].ID < d.Changed[j].ID })
}
