package filters

import (
	"io/fs"
	"path"

	"github.com/agentstation/hostlists/pkg/constants"
	pkgerrors "github.com/agentstation/hostlists/pkg/errors"
)

// Walk returns every list directory under root, in lexical order. A list
// directory is any directory containing configuration.json; traversal stops
// there and never descends into a list's own subdirectories, so nested
// registries stay independent of a list's private layout.
func Walk(fsys fs.FS, root string) ([]string, error) {
	var dirs []string

	err := fs.WalkDir(fsys, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return pkgerrors.WrapIO("walk", p, err)
		}
		if !d.IsDir() {
			return nil
		}
		if _, err := fs.Stat(fsys, path.Join(p, constants.ConfigurationFile)); err == nil {
			dirs = append(dirs, p)
			return fs.SkipDir
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dirs, nil
}
