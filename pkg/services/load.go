package services

import (
	"encoding/json"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/hostlists/pkg/constants"
	pkgerrors "github.com/agentstation/hostlists/pkg/errors"
)

// LoadSources reads every source fragment under the registry's services
// directory. A fragment file holds one service or a list of them; fragments
// are flattened into one list sorted by id. Duplicate ids across fragments
// are a build error, since the catalog could not say which copy wins.
func LoadSources(fsys fs.FS) ([]Service, error) {
	var all []Service
	seen := make(map[string]string) // id -> file that declared it

	err := fs.WalkDir(fsys, constants.ServicesDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return pkgerrors.WrapIO("walk", p, err)
		}
		if d.IsDir() || !isFragmentFile(p) {
			return nil
		}

		fragment, err := loadFragment(fsys, p)
		if err != nil {
			return err
		}
		for _, svc := range fragment {
			if svc.ID == "" {
				return pkgerrors.NewValidationError("id", nil, "fragment "+p+" declares a service without an id")
			}
			if len(svc.ID) > constants.MaxIDLength {
				return pkgerrors.NewValidationError("id", svc.ID, "exceeds the maximum id length")
			}
			if prev, dup := seen[svc.ID]; dup {
				return pkgerrors.NewValidationError("id", svc.ID,
					"declared in both "+prev+" and "+p)
			}
			seen[svc.ID] = p
			all = append(all, svc)
		}
		return nil
	})
	if err != nil {
		if _, statErr := fs.Stat(fsys, constants.ServicesDir); statErr != nil {
			return nil, nil // No services tree in this registry
		}
		return nil, err
	}

	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all, nil
}

// isFragmentFile reports whether a path is a service source fragment.
func isFragmentFile(p string) bool {
	switch path.Ext(p) {
	case ".yaml", ".yml", ".json":
		return true
	}
	return false
}

// loadFragment parses one fragment file: either a single service document or
// a sequence of them. YAML parsing covers the JSON fragments too.
func loadFragment(fsys fs.FS, p string) ([]Service, error) {
	data, err := fs.ReadFile(fsys, p)
	if err != nil {
		return nil, pkgerrors.WrapIO("read", p, err)
	}

	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" {
		return nil, nil
	}

	if strings.HasPrefix(trimmed, "-") || strings.HasPrefix(trimmed, "[") {
		var list []Service
		if err := yaml.Unmarshal(data, &list); err != nil {
			return nil, pkgerrors.WrapParse("yaml", p, err)
		}
		return list, nil
	}

	var svc Service
	if err := yaml.Unmarshal(data, &svc); err != nil {
		return nil, pkgerrors.WrapParse("yaml", p, err)
	}
	return []Service{svc}, nil
}

// LoadDistribution reads the previous run's published catalog and flattens
// it for reconciliation. A missing distribution is an empty one: the first
// run builds the catalog purely from source fragments.
func LoadDistribution(fsys fs.FS, filePath string) ([]Service, error) {
	data, err := fs.ReadFile(fsys, filePath)
	if err != nil {
		return nil, nil
	}

	var catalog Catalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, pkgerrors.WrapParse("json", filePath, err)
	}
	return catalog.Flatten(), nil
}
