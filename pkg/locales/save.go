package locales

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/agentstation/hostlists/pkg/constants"
	pkgerrors "github.com/agentstation/hostlists/pkg/errors"
)

// WriteBundle replaces the published localization catalog with the folded
// bundle. Whole-file write, same as every other published artifact.
func WriteBundle(path string, bundle *Bundle) error {
	data, err := json.MarshalIndent(bundle, "", "  ")
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
