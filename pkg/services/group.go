package services

import (
	"sort"

	"github.com/agentstation/utc"
)

// Catalog is the published grouped hierarchy: categories → groups →
// services. It has no identity of its own and is rebuilt from the merged
// service list every run.
type Catalog struct {
	TimeUpdated utc.Time   `json:"timeUpdated" yaml:"timeUpdated"`
	Categories  []Category `json:"categories" yaml:"categories"`
}

// Category is one top-level catalog bucket.
type Category struct {
	ID     string  `json:"id" yaml:"id"`
	Groups []Group `json:"groups" yaml:"groups"`
}

// Group is one group of services within a category. Services that declare no
// group land in the explicit UngroupedKey bucket.
type Group struct {
	ID       string    `json:"id" yaml:"id"`
	Services []Service `json:"services" yaml:"services"`
}

// NewCatalog regroups a flat merged service list into the published
// hierarchy. Categories, groups within each category, and services within
// each group are all sorted by id, so identical input always produces
// byte-identical output.
func NewCatalog(merged []Service, now utc.Time) *Catalog {
	byCategory := make(map[string]map[string][]Service)
	for _, svc := range merged {
		byGroup, ok := byCategory[svc.Category]
		if !ok {
			byGroup = make(map[string][]Service)
			byCategory[svc.Category] = byGroup
		}
		key := svc.GroupKey()
		byGroup[key] = append(byGroup[key], svc)
	}

	catalog := &Catalog{
		TimeUpdated: now,
		Categories:  make([]Category, 0, len(byCategory)),
	}
	for categoryID, byGroup := range byCategory {
		category := Category{
			ID:     categoryID,
			Groups: make([]Group, 0, len(byGroup)),
		}
		for groupID, svcs := range byGroup {
			sort.Slice(svcs, func(i, j int) bool { return svcs[i].ID < svcs[j].ID })
			category.Groups = append(category.Groups, Group{ID: groupID, Services: svcs})
		}
		sort.Slice(category.Groups, func(i, j int) bool {
			return category.Groups[i].ID < category.Groups[j].ID
		})
		catalog.Categories = append(catalog.Categories, category)
	}
	sort.Slice(catalog.Categories, func(i, j int) bool {
		return catalog.Categories[i].ID < catalog.Categories[j].ID
	})

	return catalog
}

// Flatten returns every service in the catalog as one flat list sorted by
// id. The distribution side of reconciliation is loaded this way.
func (c *Catalog) Flatten() []Service {
	var flat []Service
	for _, category := range c.Categories {
		for _, group := range category.Groups {
			flat = append(flat, group.Services...)
		}
	}
	sort.Slice(flat, func(i, j int) bool { return flat[i].ID < flat[j].ID })
	return flat
}
