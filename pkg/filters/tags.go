package filters

import (
	"sort"

	pkgerrors "github.com/agentstation/hostlists/pkg/errors"
)

// Tag is one entry of the shared tag registry.
type Tag struct {
	TagID   int    `json:"tagId" yaml:"tagId"`     // Numeric tag identifier
	Keyword string `json:"keyword" yaml:"keyword"` // Keyword referenced by filter descriptors, e.g. "purpose:ads"
}

// Tags is the registry's tag reference data, looked up by keyword.
type Tags []Tag

// Resolve maps descriptor tag keywords to their numeric ids, preserving
// keyword order. A keyword absent from the registry is fatal.
func (ts Tags) Resolve(keywords []string) ([]int, error) {
	ids := make([]int, 0, len(keywords))
	for _, keyword := range keywords {
		tag, ok := ts.Lookup(keyword)
		if !ok {
			return nil, pkgerrors.NewNotFoundError("tag", keyword)
		}
		ids = append(ids, tag.TagID)
	}
	return ids, nil
}

// Lookup finds a tag by keyword.
func (ts Tags) Lookup(keyword string) (Tag, bool) {
	for _, tag := range ts {
		if tag.Keyword == keyword {
			return tag, true
		}
	}
	return Tag{}, false
}

// Sorted returns a copy ordered by tag id for stable catalog output.
func (ts Tags) Sorted() Tags {
	sorted := make(Tags, len(ts))
	copy(sorted, ts)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].TagID < sorted[j].TagID
	})
	return sorted
}
