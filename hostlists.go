// Package hostlists builds and maintains a registry of curated network
// blocklists: it compiles per-list sources into normalized rule files,
// tracks content-hash revisions, folds locale fragments into a localized
// catalog, and reconciles the blockable-services catalog against its
// editable source fragments.
package hostlists

import (
	"context"
	"os"
	"path/filepath"

	"github.com/agentstation/hostlists/pkg/constants"
	"github.com/agentstation/hostlists/pkg/filters"
	"github.com/agentstation/hostlists/pkg/locales"
	"github.com/agentstation/hostlists/pkg/logging"
	"github.com/agentstation/hostlists/pkg/services"
)

// Registry is one hostlists registry checkout and its build pipeline.
type Registry struct {
	config *config
}

// New creates a Registry for the given options. Defaults: current directory,
// assets/ for published artifacts, the external compiler.
func New(opts ...Option) (*Registry, error) {
	c := defaultConfig()
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return &Registry{config: c}, nil
}

// Dir returns the registry root directory.
func (r *Registry) Dir() string { return r.config.dir }

// AssetsDir returns the published assets directory.
func (r *Registry) AssetsDir() string { return r.config.assets }

// BuildResult carries one full filter build round.
type BuildResult struct {
	Prod     *filters.Index     // filters.json content
	All      *filters.Index     // filters-dev.json content
	Bundle   *locales.Bundle    // filters_i18n.json content, nil when locales were skipped
	Compiled []filters.Compiled // per-list outcomes
}

// Build runs the filter pipeline: discover lists, compile every enabled one,
// update revisions, fold locales, and replace the published catalogs.
// Everything is computed before anything is written, so a failing build
// leaves the previous artifacts intact.
func (r *Registry) Build(ctx context.Context) (*BuildResult, error) {
	logger := logging.FromContext(ctx)
	fsys := os.DirFS(r.config.dir)

	lists, err := filters.LoadRegistry(fsys)
	if err != nil {
		return nil, err
	}
	for _, list := range lists {
		if err := list.Filter.Validate(); err != nil {
			return nil, err
		}
	}

	tags, err := filters.LoadTags(fsys)
	if err != nil {
		return nil, err
	}

	aggregator := filters.NewAggregator(r.config.compiler, tags,
		filters.WithBaseURL(r.config.baseURL),
		filters.WithClock(r.config.now),
	)
	aggregated, err := aggregator.Aggregate(ctx, fsys, r.config.dir, lists)
	if err != nil {
		return nil, err
	}

	result := &BuildResult{
		Prod:     aggregated.Prod,
		All:      aggregated.All,
		Compiled: aggregated.Compiled,
	}

	if !r.config.skipLocales {
		bundle, err := locales.Load(ctx, fsys)
		if err != nil {
			return nil, err
		}
		result.Bundle = bundle
	}

	// All inputs processed; only now touch the disk.
	writer := &filters.Writer{Root: r.config.dir, Assets: r.config.assets}
	if err := writer.WriteCompiled(result.Compiled); err != nil {
		return nil, err
	}
	if err := writer.WriteIndexes(result.Prod, result.All); err != nil {
		return nil, err
	}
	if result.Bundle != nil {
		i18nPath := filepath.Join(r.config.assets, constants.FiltersI18NFile)
		if err := locales.WriteBundle(i18nPath, result.Bundle); err != nil {
			return nil, err
		}
	}

	logger.Info().
		Int("filters", len(result.All.Filters)).
		Int("prod_filters", len(result.Prod.Filters)).
		Msg("Filter build complete")

	return result, nil
}

// ServicesResult carries one services pipeline round.
type ServicesResult struct {
	Catalog  *services.Catalog  // services.json content
	Diff     services.Diff      // changes against the previous distribution
	Restored []services.Service // fragments recreated from the distribution
}

// BuildServices runs the services pipeline: reconcile the source fragments
// against the published distribution, restore fragments deleted upstream,
// regroup, and replace services.json.
func (r *Registry) BuildServices(ctx context.Context) (*ServicesResult, error) {
	logger := logging.FromContext(ctx)

	sources, err := services.LoadSources(os.DirFS(r.config.dir))
	if err != nil {
		return nil, err
	}
	distribution, err := services.LoadDistribution(os.DirFS(r.config.assets), constants.ServicesIndexFile)
	if err != nil {
		return nil, err
	}

	reconciled, err := services.Reconcile(ctx, distribution, sources)
	if err != nil {
		return nil, err
	}

	if err := services.RestoreFragments(r.config.dir, reconciled.Restored); err != nil {
		return nil, err
	}

	catalog := services.NewCatalog(reconciled.Merged, r.config.now())
	if err := services.WriteCatalog(filepath.Join(r.config.assets, constants.ServicesIndexFile), catalog); err != nil {
		return nil, err
	}

	logger.Info().
		Int("services", len(reconciled.Merged)).
		Int("changes", reconciled.Diff.Total()).
		Msg("Services build complete")

	return &ServicesResult{
		Catalog:  catalog,
		Diff:     reconciled.Diff,
		Restored: reconciled.Restored,
	}, nil
}
