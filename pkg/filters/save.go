package filters

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/agentstation/hostlists/pkg/constants"
	pkgerrors "github.com/agentstation/hostlists/pkg/errors"
	"github.com/agentstation/hostlists/pkg/logging"
)

// Writer persists aggregation results. Every write replaces a whole file, so
// a killed process leaves the previous complete output in place.
type Writer struct {
	Root   string // registry root holding the list directories
	Assets string // published assets directory
}

// WriteIndexes writes the prod catalog to filters.json and the
// all-environments catalog to filters-dev.json under the assets directory.
func (w *Writer) WriteIndexes(prod, all *Index) error {
	if err := writeJSON(filepath.Join(w.Assets, constants.FiltersIndexFile), prod); err != nil {
		return err
	}
	return writeJSON(filepath.Join(w.Assets, constants.FiltersDevIndexFile), all)
}

// WriteCompiled persists per-list outcomes: changed lists get their
// filter.txt and revision.json rewritten in place, and every list with
// content gets its published copy under assets. Frozen lists never touch
// their own directory.
func (w *Writer) WriteCompiled(compiled []Compiled) error {
	for i := range compiled {
		c := &compiled[i]

		if c.Changed && !c.Frozen && c.Content != nil {
			dir := filepath.Join(w.Root, c.List.Dir)
			if err := writeFile(filepath.Join(dir, constants.FilterFile), c.Content); err != nil {
				return err
			}
			if err := writeJSON(filepath.Join(dir, constants.RevisionFile), c.Revision); err != nil {
				return err
			}
			logging.Debug().
				Int("filter_id", c.List.Filter.ID).
				Msg("Persisted updated filter content and revision")
		}

		if c.Content != nil {
			asset := filepath.Join(w.Assets, c.List.Filter.AssetName())
			if err := writeFile(asset, c.Content); err != nil {
				return err
			}
		}
	}
	return nil
}

// writeJSON marshals v with stable indentation and a trailing newline.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return pkgerrors.WrapParse("json", path, err)
	}
	return writeFile(path, append(data, '\n'))
}

// writeFile writes data, creating parent directories as needed.
func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), constants.DirPermissions); err != nil {
		return pkgerrors.WrapIO("create", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, constants.FilePermissions); err != nil {
		return pkgerrors.WrapIO("write", path, err)
	}
	return nil
}
