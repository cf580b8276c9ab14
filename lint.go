package hostlists

import (
	"context"
	"encoding/json"
	"io/fs"
	"os"
	"path"

	"github.com/agentstation/hostlists/pkg/constants"
	"github.com/agentstation/hostlists/pkg/filters"
	"github.com/agentstation/hostlists/pkg/locales"
	"github.com/agentstation/hostlists/pkg/logging"
	"github.com/agentstation/hostlists/pkg/services"
)

// Finding is one lint problem, tied to the file it was found in.
type Finding struct {
	Path    string `json:"path" yaml:"path"`
	Message string `json:"message" yaml:"message"`
}

// LintReport collects every problem found in a registry checkout.
type LintReport struct {
	Findings []Finding `json:"findings" yaml:"findings"`
}

// OK reports whether the registry is clean.
func (r *LintReport) OK() bool { return len(r.Findings) == 0 }

func (r *LintReport) add(path, message string) {
	r.Findings = append(r.Findings, Finding{Path: path, Message: message})
}

// Lint validates a registry checkout without writing anything: descriptor
// constraints, tag references, compiler configurations, locale key syntax,
// and service fragments. Unlike a build, lint keeps going after a problem so
// one run reports everything.
func (r *Registry) Lint(ctx context.Context) (*LintReport, error) {
	logger := logging.FromContext(ctx)
	fsys := os.DirFS(r.config.dir)
	report := &LintReport{}

	r.lintFilters(fsys, report)
	r.lintLocales(fsys, report)
	r.lintServices(fsys, report)

	logger.Info().
		Int("findings", len(report.Findings)).
		Msg("Lint complete")
	return report, nil
}

// lintFilters checks every list descriptor and its tag references.
func (r *Registry) lintFilters(fsys fs.FS, report *LintReport) {
	tags, err := filters.LoadTags(fsys)
	if err != nil {
		report.add(path.Join(constants.TagsDir, constants.TagsMetadataFile), err.Error())
		tags = filters.Tags{}
	}

	dirs, err := filters.Walk(fsys, constants.FiltersDir)
	if err != nil {
		report.add(constants.FiltersDir, err.Error())
		return
	}

	seen := make(map[int]string)
	for _, dir := range dirs {
		list, err := filters.LoadList(fsys, dir)
		if err != nil {
			report.add(dir, err.Error())
			continue
		}

		metaPath := path.Join(dir, constants.MetadataFile)
		if err := list.Filter.Validate(); err != nil {
			report.add(metaPath, err.Error())
		}
		if prev, dup := seen[list.Filter.ID]; dup {
			report.add(metaPath, "filter id already used by "+prev)
		} else {
			seen[list.Filter.ID] = dir
		}
		if _, err := tags.Resolve(list.Filter.Tags); err != nil {
			report.add(metaPath, err.Error())
		}
		if len(list.Sources) == 0 {
			report.add(path.Join(dir, constants.ConfigurationFile), "configuration declares no sources")
		}
	}
}

// lintLocales checks that every translation key carries a recognized prefix
// and parses into an id and field.
func (r *Registry) lintLocales(fsys fs.FS, report *LintReport) {
	entries, err := fs.ReadDir(fsys, constants.LocalesDir)
	if err != nil {
		return // No locales tree
	}

	files := map[string]string{
		constants.TagsLocaleFile:    locales.TagPrefix,
		constants.FiltersLocaleFile: locales.FilterPrefix,
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		for name, prefix := range files {
			filePath := path.Join(constants.LocalesDir, entry.Name(), name)
			data, err := fs.ReadFile(fsys, filePath)
			if err != nil {
				continue
			}

			var fragments []map[string]string
			if err := json.Unmarshal(data, &fragments); err != nil {
				report.add(filePath, "malformed locale file: "+err.Error())
				continue
			}
			for _, fragment := range fragments {
				for key := range fragment {
					if _, ok := locales.ParseKey(key, prefix); !ok {
						report.add(filePath, "key "+key+" does not parse as "+prefix+"<id>.<field>")
					}
				}
			}
		}
	}
}

// lintServices checks fragment parseability, duplicate ids, icon validity,
// and dynamic services against the distribution.
func (r *Registry) lintServices(fsys fs.FS, report *LintReport) {
	sources, err := services.LoadSources(fsys)
	if err != nil {
		report.add(constants.ServicesDir, err.Error())
		return
	}

	distribution, err := services.LoadDistribution(os.DirFS(r.config.assets), constants.ServicesIndexFile)
	if err != nil {
		report.add(constants.ServicesIndexFile, err.Error())
	}
	distIDs := make(map[string]bool, len(distribution))
	for _, svc := range distribution {
		distIDs[svc.ID] = true
	}

	for _, svc := range sources {
		fragment := path.Join(constants.ServicesDir, svc.ID+".yaml")
		if err := services.ValidateIcon(svc.ID, svc.IconSVG); err != nil {
			report.add(fragment, err.Error())
		}
		if svc.Dynamic && !distIDs[svc.ID] {
			report.add(fragment, "dynamic service has no distribution entry to take rules from")
		}
	}
}
