package locales

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"path"
	"sort"
	"sync"

	"golang.org/x/text/language"

	"github.com/agentstation/hostlists/pkg/constants"
	pkgerrors "github.com/agentstation/hostlists/pkg/errors"
	"github.com/agentstation/hostlists/pkg/logging"
)

// fragment is one locale directory's raw contents before folding.
type fragment struct {
	locale  string
	tags    []map[string]string
	filters []map[string]string
	err     error
}

// Load walks the registry's locales directory and folds every locale's
// translation files into one bundle. Locale directories are read
// concurrently; results are collected and folded sequentially in locale
// order so the output is deterministic. Directory names that are not valid
// language tags are skipped with a warning.
func Load(ctx context.Context, fsys fs.FS) (*Bundle, error) {
	logger := logging.FromContext(ctx)

	entries, err := fs.ReadDir(fsys, constants.LocalesDir)
	if err != nil {
		return NewBundle(), nil // No locales directory, nothing to fold
	}

	var wg sync.WaitGroup
	results := make(chan fragment, len(entries))

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		locale := entry.Name()
		if _, err := language.Parse(locale); err != nil {
			logger.Warn().
				Str("locale", locale).
				Msg("Skipping directory that is not a valid language tag")
			continue
		}

		wg.Add(1)
		go func(locale string) {
			defer wg.Done()
			results <- loadLocale(fsys, locale)
		}(locale)
	}

	wg.Wait()
	close(results)

	fragments := make([]fragment, 0, len(entries))
	var errs []error
	for result := range results {
		if result.err != nil {
			errs = append(errs, result.err)
			continue
		}
		fragments = append(fragments, result)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	sort.Slice(fragments, func(i, j int) bool {
		return fragments[i].locale < fragments[j].locale
	})

	bundle := NewBundle()
	for _, f := range fragments {
		bundle.Tags.fold(f.locale, TagPrefix, f.tags)
		bundle.Filters.fold(f.locale, FilterPrefix, f.filters)
	}

	logger.Debug().
		Int("locale_count", len(fragments)).
		Int("tag_entries", len(bundle.Tags)).
		Int("filter_entries", len(bundle.Filters)).
		Msg("Folded locale fragments")

	return bundle, nil
}

// loadLocale reads one locale directory's tags.json and filters.json.
// A missing file contributes nothing; a malformed one fails the build.
func loadLocale(fsys fs.FS, locale string) fragment {
	f := fragment{locale: locale}

	tags, err := loadFragmentFile(fsys, path.Join(constants.LocalesDir, locale, constants.TagsLocaleFile))
	if err != nil {
		f.err = err
		return f
	}
	f.tags = tags

	filters, err := loadFragmentFile(fsys, path.Join(constants.LocalesDir, locale, constants.FiltersLocaleFile))
	if err != nil {
		f.err = err
		return f
	}
	f.filters = filters

	return f
}

// loadFragmentFile parses one locale file: an array of flat objects whose
// keys carry the entity kind prefix.
func loadFragmentFile(fsys fs.FS, filePath string) ([]map[string]string, error) {
	data, err := fs.ReadFile(fsys, filePath)
	if err != nil {
		return nil, nil // Locale does not translate this kind
	}

	var entries []map[string]string
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, pkgerrors.WrapParse("json", filePath, err)
	}
	return entries, nil
}
