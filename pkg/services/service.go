// Package services maintains the blockable-services catalog: editable
// per-service source fragments are reconciled against the authoritative
// distribution from the previous run, diffed, merged, regrouped into the
// category/group/service hierarchy, and published as services.json.
package services

import (
	"reflect"
)

// Service is one blockable service or category entry. The same shape is used
// for source fragments (services/<id>.yaml) and distribution entries
// (assets/services.json).
type Service struct {
	ID       string   `json:"id" yaml:"id"`                                 // Stable identifier, unique across the catalog
	Name     string   `json:"name" yaml:"name"`                             // Display name
	Category string   `json:"category" yaml:"category"`                     // Catalog category key
	Group    string   `json:"group,omitempty" yaml:"group,omitempty"`       // Optional group within the category
	Rules    []string `json:"rules" yaml:"rules"`                           // Blocking rules
	IconSVG  string   `json:"icon_svg" yaml:"icon_svg"`                     // Inline SVG markup
	Dynamic  bool     `json:"dynamic,omitempty" yaml:"dynamic,omitempty"`   // Rules are carried from the distribution, not the fragment
}

// Equal reports whether two services are structurally identical. Diffing
// compares whole records, not just ids.
func (s *Service) Equal(other *Service) bool {
	return reflect.DeepEqual(s, other)
}

// GroupKey returns the service's group, with ungrouped services placed in an
// explicit bucket so they are never dropped.
func (s *Service) GroupKey() string {
	if s.Group == "" {
		return UngroupedKey
	}
	return s.Group
}

// UngroupedKey is the bucket for services that declare no group.
const UngroupedKey = "other"
