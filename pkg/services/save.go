package services

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/hostlists/pkg/constants"
	pkgerrors "github.com/agentstation/hostlists/pkg/errors"
	"github.com/agentstation/hostlists/pkg/logging"
)

// WriteCatalog replaces the published services.json with the grouped
// catalog. The write is whole-file: a killed process leaves the previous
// complete catalog in place.
func WriteCatalog(path string, catalog *Catalog) error {
	data, err := json.MarshalIndent(catalog, "", "  ")
	if err != nil {
		return pkgerrors.WrapParse("json", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), constants.DirPermissions); err != nil {
		return pkgerrors.WrapIO("create", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, append(data, '\n'), constants.FilePermissions); err != nil {
		return pkgerrors.WrapIO("write", path, err)
	}
	return nil
}

// RestoreFragments recreates source fragment files for services that exist
// in the distribution but lost their fragment, writing each back as
// services/<id>.yaml. The distribution is the durable record; a missing
// fragment is assumed to be an accidental deletion.
func RestoreFragments(root string, restored []Service) error {
	if len(restored) == 0 {
		return nil
	}

	dir := filepath.Join(root, constants.ServicesDir)
	if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
		return pkgerrors.WrapIO("create", dir, err)
	}

	for i := range restored {
		svc := restored[i]
		svc.Dynamic = false // Restored fragments own their rules again

		data, err := yaml.Marshal(&svc)
		if err != nil {
			return pkgerrors.WrapParse("yaml", svc.ID, err)
		}

		path := filepath.Join(dir, svc.ID+".yaml")
		if err := os.WriteFile(path, data, constants.FilePermissions); err != nil {
			return pkgerrors.WrapIO("write", path, err)
		}

		logging.Warn().
			Str("service_id", svc.ID).
			Str("path", path).
			Msg("Restored source fragment deleted upstream")
	}
	return nil
}
