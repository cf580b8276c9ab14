package filters

import (
	"encoding/json"
	"io/fs"
	"path"

	"github.com/tidwall/gjson"

	"github.com/agentstation/hostlists/pkg/constants"
	pkgerrors "github.com/agentstation/hostlists/pkg/errors"
)

// List is one discovered filter list: its directory, descriptor, configured
// source URLs, and previously stored revision.
type List struct {
	Dir      string    // Registry-relative list directory
	Filter   Filter    // Parsed metadata.json
	Sources  []string  // Source URLs from configuration.json
	Revision *Revision // Parsed revision.json, nil when absent
}

// SourceURL resolves the published source reference: a single-source list
// points at that source, anything else points at the homepage.
func (l *List) SourceURL() string {
	if len(l.Sources) == 1 {
		return l.Sources[0]
	}
	return l.Filter.Homepage
}

// LoadList reads one list directory's metadata.json, configuration sources,
// and optional revision.json.
func LoadList(fsys fs.FS, dir string) (*List, error) {
	list := &List{Dir: dir}

	metaPath := path.Join(dir, constants.MetadataFile)
	data, err := fs.ReadFile(fsys, metaPath)
	if err != nil {
		return nil, pkgerrors.WrapIO("read", metaPath, err)
	}
	if err := json.Unmarshal(data, &list.Filter); err != nil {
		return nil, pkgerrors.WrapParse("json", metaPath, err)
	}

	sources, err := loadSources(fsys, dir)
	if err != nil {
		return nil, err
	}
	list.Sources = sources

	revision, err := loadRevision(fsys, dir)
	if err != nil {
		return nil, err
	}
	list.Revision = revision

	return list, nil
}

// loadSources extracts the source URLs from the otherwise opaque compiler
// configuration. Only sources[].source is read; everything else belongs to
// the compiler.
func loadSources(fsys fs.FS, dir string) ([]string, error) {
	configPath := path.Join(dir, constants.ConfigurationFile)
	data, err := fs.ReadFile(fsys, configPath)
	if err != nil {
		return nil, pkgerrors.WrapIO("read", configPath, err)
	}
	if !gjson.ValidBytes(data) {
		return nil, pkgerrors.NewParseError("json", configPath, "malformed compiler configuration", nil)
	}

	var sources []string
	for _, source := range gjson.GetBytes(data, "sources.#.source").Array() {
		if url := source.String(); url != "" {
			sources = append(sources, url)
		}
	}
	return sources, nil
}

// loadRevision reads revision.json when present.
func loadRevision(fsys fs.FS, dir string) (*Revision, error) {
	revPath := path.Join(dir, constants.RevisionFile)
	data, err := fs.ReadFile(fsys, revPath)
	if err != nil {
		return nil, nil // No revision yet
	}

	var revision Revision
	if err := json.Unmarshal(data, &revision); err != nil {
		return nil, pkgerrors.WrapParse("json", revPath, err)
	}
	return &revision, nil
}

// LoadRegistry discovers and loads every list under the registry's filters
// directory, in walk order.
func LoadRegistry(fsys fs.FS) ([]*List, error) {
	dirs, err := Walk(fsys, constants.FiltersDir)
	if err != nil {
		return nil, err
	}

	lists := make([]*List, 0, len(dirs))
	for _, dir := range dirs {
		list, err := LoadList(fsys, dir)
		if err != nil {
			return nil, err
		}
		lists = append(lists, list)
	}
	return lists, nil
}

// LoadTags reads the shared tag registry. A registry without a tag file has
// no tags, which is only an error once a descriptor references one.
func LoadTags(fsys fs.FS) (Tags, error) {
	tagsPath := path.Join(constants.TagsDir, constants.TagsMetadataFile)
	data, err := fs.ReadFile(fsys, tagsPath)
	if err != nil {
		return Tags{}, nil
	}

	var tags Tags
	if err := json.Unmarshal(data, &tags); err != nil {
		return nil, pkgerrors.WrapParse("json", tagsPath, err)
	}
	return tags, nil
}
