package hostlists

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"text/template"
	"time"

	"github.com/agentstation/hostlists/internal/embedded"
	"github.com/agentstation/hostlists/pkg/constants"
	pkgerrors "github.com/agentstation/hostlists/pkg/errors"
	"github.com/agentstation/hostlists/pkg/filters"
	"github.com/agentstation/hostlists/pkg/logging"
)

// ScaffoldResult describes a newly scaffolded list directory.
type ScaffoldResult struct {
	Dir string `json:"dir" yaml:"dir"` // created directory
	ID  int    `json:"id" yaml:"id"`   // assigned filter id
}

// scaffoldData feeds the embedded templates.
type scaffoldData struct {
	ID        int
	Name      string
	TimeAdded string
}

// Scaffold creates a new list directory under filters/ from the embedded
// templates, assigning the next free filter id. The directory must not
// already exist.
func (r *Registry) Scaffold(ctx context.Context, dirName, name string) (*ScaffoldResult, error) {
	logger := logging.FromContext(ctx)

	lists, err := filters.LoadRegistry(os.DirFS(r.config.dir))
	if err != nil {
		// A fresh registry has no filters tree yet; start ids from scratch.
		lists = nil
	}
	nextID := 1
	for _, list := range lists {
		if list.Filter.ID >= nextID {
			nextID = list.Filter.ID + 1
		}
	}

	dir := filepath.Join(r.config.dir, constants.FiltersDir, dirName)
	if _, err := os.Stat(dir); err == nil {
		return nil, pkgerrors.NewConfigError("scaffold", "directory already exists: "+dir, nil)
	}
	if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
		return nil, pkgerrors.WrapIO("create", dir, err)
	}

	data := scaffoldData{
		ID:        nextID,
		Name:      name,
		TimeAdded: r.config.now().Format(time.RFC3339),
	}
	files := map[string]string{
		constants.ConfigurationFile: "templates/configuration.json.tmpl",
		constants.MetadataFile:      "templates/metadata.json.tmpl",
	}
	for target, source := range files {
		if err := renderTemplate(filepath.Join(dir, target), source, data); err != nil {
			return nil, err
		}
	}

	logger.Info().
		Str("dir", dir).
		Int("filter_id", nextID).
		Msg("Scaffolded new filter list")

	return &ScaffoldResult{Dir: dir, ID: nextID}, nil
}

// renderTemplate renders one embedded template to disk.
func renderTemplate(target, source string, data scaffoldData) error {
	raw, err := embedded.FS.ReadFile(source)
	if err != nil {
		return pkgerrors.WrapIO("read", source, err)
	}
	tmpl, err := template.New(filepath.Base(source)).Parse(string(raw))
	if err != nil {
		return pkgerrors.WrapParse("template", source, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return pkgerrors.WrapParse("template", source, err)
	}
	if err := os.WriteFile(target, buf.Bytes(), constants.FilePermissions); err != nil {
		return pkgerrors.WrapIO("write", target, err)
	}
	return nil
}
