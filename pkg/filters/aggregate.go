package filters

import (
	"context"
	"errors"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strconv"
	"sync"

	"github.com/agentstation/utc"

	"github.com/agentstation/hostlists/pkg/compiler"
	"github.com/agentstation/hostlists/pkg/constants"
	pkgerrors "github.com/agentstation/hostlists/pkg/errors"
	"github.com/agentstation/hostlists/pkg/logging"
)

// Record is one flattened catalog entry in filters.json / filters-dev.json.
type Record struct {
	FilterID    int      `json:"filterId" yaml:"filterId"`       // Numeric list identifier
	Name        string   `json:"name" yaml:"name"`               // Display name
	Description string   `json:"description" yaml:"description"` // Short description
	Tags        []int    `json:"tags" yaml:"tags"`               // Resolved numeric tag ids
	Homepage    string   `json:"homepage" yaml:"homepage"`       // Upstream project page
	Expires     int      `json:"expires" yaml:"expires"`         // Update period in seconds
	DownloadURL string   `json:"downloadUrl" yaml:"downloadUrl"` // Published asset location
	SourceURL   string   `json:"sourceUrl" yaml:"sourceUrl"`     // Single source URL or homepage
	TimeAdded   utc.Time `json:"timeAdded" yaml:"timeAdded"`     // First publication time
	TimeUpdated utc.Time `json:"timeUpdated" yaml:"timeUpdated"` // Last content change
}

// Index is one published metadata catalog: flattened records plus the shared
// tag registry.
type Index struct {
	Filters []Record `json:"filters" yaml:"filters"`
	Tags    []Tag    `json:"tags" yaml:"tags"`
}

// Compiled carries one list's build outcome to the persistence stage.
type Compiled struct {
	List     *List
	Content  []byte   // compiled rules; nil for a frozen list with no stored output
	Revision Revision // next revision state
	Changed  bool     // content hash moved; filter.txt and revision.json need rewriting
	Frozen   bool     // disabled list, its directory is never written
}

// Result is a full aggregation round over the registry.
type Result struct {
	Prod     *Index     // environment == prod only
	All      *Index     // every environment
	Compiled []Compiled // per-list outcomes, input order
}

// Aggregator compiles every enabled list and assembles the published
// catalogs. Compile failures are fatal for the whole run; a stale catalog is
// worse than a failed build.
type Aggregator struct {
	compiler compiler.Compiler
	tags     Tags
	baseURL  string
	now      func() utc.Time
}

// AggregatorOption adjusts an Aggregator.
type AggregatorOption func(*Aggregator)

// WithBaseURL overrides the published download location for filter assets.
func WithBaseURL(base string) AggregatorOption {
	return func(a *Aggregator) {
		if base != "" {
			a.baseURL = base
		}
	}
}

// WithClock overrides the revision timestamp source.
func WithClock(now func() utc.Time) AggregatorOption {
	return func(a *Aggregator) {
		if now != nil {
			a.now = now
		}
	}
}

// NewAggregator creates an Aggregator using the given compiler and tag
// registry.
func NewAggregator(c compiler.Compiler, tags Tags, opts ...AggregatorOption) *Aggregator {
	a := &Aggregator{
		compiler: c,
		tags:     tags,
		baseURL:  constants.DefaultDownloadURLBase,
		now:      utc.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// compiledResult pairs one list's outcome with its input position.
type compiledResult struct {
	index    int
	compiled Compiled
	err      error
}

// Aggregate compiles all lists concurrently and folds them into the prod and
// all-environments catalogs. fsys is the registry tree (used to read frozen
// output); root is the same tree as an OS path for the compiler.
func (a *Aggregator) Aggregate(ctx context.Context, fsys fs.FS, root string, lists []*List) (*Result, error) {
	logger := logging.FromContext(ctx)
	logger.Info().
		Int("filter_count", len(lists)).
		Msg("Aggregating filter lists")

	// Compile all lists CONCURRENTLY, bounded by the compile semaphore.
	var wg sync.WaitGroup
	resultChan := make(chan compiledResult, len(lists))
	sem := make(chan struct{}, constants.MaxConcurrentCompiles)

	for i, list := range lists {
		wg.Add(1)
		go func(i int, l *List) {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			lctx := logging.WithFilter(ctx, strconv.Itoa(l.Filter.ID))
			compiled, err := a.compileOne(lctx, fsys, root, l)
			resultChan <- compiledResult{index: i, compiled: compiled, err: err}
		}(i, list)
	}

	wg.Wait()
	close(resultChan)

	compiled := make([]Compiled, len(lists))
	var errs []error
	for result := range resultChan {
		if result.err != nil {
			errs = append(errs, result.err)
			continue
		}
		compiled[result.index] = result.compiled
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	// Fold sequentially into the catalogs.
	prod := &Index{Filters: []Record{}, Tags: a.tags.Sorted()}
	all := &Index{Filters: []Record{}, Tags: a.tags.Sorted()}
	for i := range compiled {
		record, err := a.record(&compiled[i])
		if err != nil {
			return nil, err
		}
		all.Filters = append(all.Filters, record)
		if compiled[i].List.Filter.Environment.IsProd() {
			prod.Filters = append(prod.Filters, record)
		}
	}
	sortRecords(prod.Filters)
	sortRecords(all.Filters)

	return &Result{Prod: prod, All: all, Compiled: compiled}, nil
}

// compileOne produces one list's outcome. Disabled lists are frozen: their
// stored output and revision are reused verbatim and nothing is recompiled.
func (a *Aggregator) compileOne(ctx context.Context, fsys fs.FS, root string, list *List) (Compiled, error) {
	logger := logging.FromContext(ctx)

	if list.Filter.Disabled {
		content, err := fs.ReadFile(fsys, path.Join(list.Dir, constants.FilterFile))
		if err != nil {
			content = nil // Never compiled before being disabled
		}
		revision := Revision{TimeUpdated: a.now(), Hash: Sum(content)}
		if list.Revision != nil {
			revision = *list.Revision
		}
		logger.Debug().Msg("Skipping disabled filter list")
		return Compiled{List: list, Content: content, Revision: revision, Frozen: true}, nil
	}

	content, err := a.compiler.Compile(ctx, filepath.Join(root, list.Dir))
	if err != nil {
		return Compiled{}, pkgerrors.WrapCompile(strconv.Itoa(list.Filter.ID), err)
	}

	hash := Sum(content)
	revision, changed := Decide(list.Revision, hash, a.now())

	logger.Info().
		Bool("changed", changed).
		Int("bytes", len(content)).
		Msg("Compiled filter list")

	return Compiled{List: list, Content: content, Revision: revision, Changed: changed}, nil
}

// record flattens one outcome into a catalog entry.
func (a *Aggregator) record(c *Compiled) (Record, error) {
	filter := c.List.Filter

	tagIDs, err := a.tags.Resolve(filter.Tags)
	if err != nil {
		return Record{}, err
	}

	return Record{
		FilterID:    filter.ID,
		Name:        filter.Name,
		Description: filter.Description,
		Tags:        tagIDs,
		Homepage:    filter.Homepage,
		Expires:     filter.ExpiresSeconds(),
		DownloadURL: a.baseURL + "/" + filter.AssetName(),
		SourceURL:   c.List.SourceURL(),
		TimeAdded:   filter.TimeAdded,
		TimeUpdated: c.Revision.TimeUpdated,
	}, nil
}

func sortRecords(records []Record) {
	sort.Slice(records, func(i, j int) bool {
		return records[i].FilterID < records[j].FilterID
	})
}
