package filters_test

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"
	"time"

	"github.com/agentstation/utc"

	pkgerrors "github.com/agentstation/hostlists/pkg/errors"
	"github.com/agentstation/hostlists/pkg/filters"
)

// fakeCompiler returns canned content per list directory.
type fakeCompiler struct {
	content map[string][]byte
	err     error
}

func (f *fakeCompiler) Compile(_ context.Context, dir string) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	content, ok := f.content[dir]
	if !ok {
		return []byte("||default.example^\n"), nil
	}
	return content, nil
}

func testLists() []*filters.List {
	return []*filters.List{
		{
			Dir: "filters/104",
			Filter: filters.Filter{
				ID:          104,
				Name:        "Ads",
				Description: "Blocks ads",
				Homepage:    "https://example.org/ads",
				Environment: filters.EnvironmentProd,
				Tags:        []string{"purpose:ads"},
			},
			Sources: []string{"https://upstream.example/list.txt"},
		},
		{
			Dir: "filters/205",
			Filter: filters.Filter{
				ID:          205,
				Name:        "Experimental",
				Description: "Staging only",
				Homepage:    "https://example.org/experimental",
				Environment: "staging",
			},
		},
	}
}

func TestAggregate(t *testing.T) {
	ctx := context.Background()
	now := utc.Time{Time: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)}
	tags := filters.Tags{{TagID: 1, Keyword: "purpose:ads"}}

	aggregator := filters.NewAggregator(&fakeCompiler{}, tags,
		filters.WithBaseURL("https://cdn.example.org"),
		filters.WithClock(func() utc.Time { return now }),
	)

	result, err := aggregator.Aggregate(ctx, fstest.MapFS{}, ".", testLists())
	if err != nil {
		t.Fatalf("Aggregate() error = %v", err)
	}

	t.Run("prod partition", func(t *testing.T) {
		if len(result.Prod.Filters) != 1 || result.Prod.Filters[0].FilterID != 104 {
			t.Errorf("prod = %+v, want only 104", result.Prod.Filters)
		}
		if len(result.All.Filters) != 2 {
			t.Errorf("all catalog has %d records, want 2", len(result.All.Filters))
		}
	})

	t.Run("records carry resolved fields", func(t *testing.T) {
		record := result.Prod.Filters[0]
		if record.DownloadURL != "https://cdn.example.org/filter_104.txt" {
			t.Errorf("downloadUrl = %q", record.DownloadURL)
		}
		if record.SourceURL != "https://upstream.example/list.txt" {
			t.Errorf("sourceUrl = %q", record.SourceURL)
		}
		if len(record.Tags) != 1 || record.Tags[0] != 1 {
			t.Errorf("tags = %v, want [1]", record.Tags)
		}
		if !record.TimeUpdated.Equal(now) {
			t.Errorf("timeUpdated = %v, want %v", record.TimeUpdated, now)
		}
	})

	t.Run("first compile marks every list changed", func(t *testing.T) {
		for _, c := range result.Compiled {
			if !c.Changed {
				t.Errorf("filter %d not marked changed on first compile", c.List.Filter.ID)
			}
		}
	})

	t.Run("tags included in both catalogs", func(t *testing.T) {
		if len(result.Prod.Tags) != 1 || len(result.All.Tags) != 1 {
			t.Error("tag registry missing from a catalog")
		}
	})
}

func TestAggregateRevisionCarryOver(t *testing.T) {
	ctx := context.Background()
	first := utc.Time{Time: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)}
	later := utc.Time{Time: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)}

	comp := &fakeCompiler{content: map[string][]byte{
		"filters/104": []byte("! Last modified: run one\n||ads.example^\n"),
	}}
	lists := testLists()[:1]

	aggregator := filters.NewAggregator(comp, filters.Tags{{TagID: 1, Keyword: "purpose:ads"}},
		filters.WithClock(func() utc.Time { return first }))
	result, err := aggregator.Aggregate(ctx, fstest.MapFS{}, ".", lists)
	if err != nil {
		t.Fatal(err)
	}

	// Second round: same rules, different volatile stamp, previous revision
	// loaded from the first round.
	comp.content["filters/104"] = []byte("! Last modified: run two\n||ads.example^\n")
	revision := result.Compiled[0].Revision
	lists[0].Revision = &revision

	aggregator = filters.NewAggregator(comp, filters.Tags{{TagID: 1, Keyword: "purpose:ads"}},
		filters.WithClock(func() utc.Time { return later }))
	result, err = aggregator.Aggregate(ctx, fstest.MapFS{}, ".", lists)
	if err != nil {
		t.Fatal(err)
	}

	c := result.Compiled[0]
	if c.Changed {
		t.Error("identical rules with a new volatile stamp were marked changed")
	}
	if !c.Revision.TimeUpdated.Equal(first) {
		t.Errorf("timeUpdated = %v, want the first round's %v", c.Revision.TimeUpdated, first)
	}
}

func TestAggregateFrozenList(t *testing.T) {
	ctx := context.Background()
	now := utc.Time{Time: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)}
	stored := utc.Time{Time: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}

	lists := testLists()[:1]
	lists[0].Filter.Disabled = true
	lists[0].Revision = &filters.Revision{TimeUpdated: stored, Hash: "abc"}

	fsys := fstest.MapFS{
		"filters/104/filter.txt": &fstest.MapFile{Data: []byte("||frozen.example^\n")},
	}

	fail := &fakeCompiler{err: errors.New("must not be called")}
	aggregator := filters.NewAggregator(fail, filters.Tags{{TagID: 1, Keyword: "purpose:ads"}},
		filters.WithClock(func() utc.Time { return now }))

	result, err := aggregator.Aggregate(ctx, fsys, ".", lists)
	if err != nil {
		t.Fatalf("Aggregate() error = %v (the compiler ran for a frozen list)", err)
	}

	c := result.Compiled[0]
	if !c.Frozen {
		t.Error("disabled list not marked frozen")
	}
	if string(c.Content) != "||frozen.example^\n" {
		t.Errorf("frozen content = %q, want the stored output", c.Content)
	}
	if !c.Revision.TimeUpdated.Equal(stored) || c.Revision.Hash != "abc" {
		t.Errorf("frozen revision = %+v, want the stored one verbatim", c.Revision)
	}
}

func TestAggregateCompileFailureIsFatal(t *testing.T) {
	fail := &fakeCompiler{err: errors.New("exit status 2")}
	aggregator := filters.NewAggregator(fail, filters.Tags{{TagID: 1, Keyword: "purpose:ads"}})

	_, err := aggregator.Aggregate(context.Background(), fstest.MapFS{}, ".", testLists())
	if err == nil {
		t.Fatal("Aggregate() succeeded despite a compile failure")
	}
	if !pkgerrors.IsCompileFailed(err) {
		t.Errorf("error = %v, want a compile failure", err)
	}
	var compileErr *pkgerrors.CompileError
	if !errors.As(err, &compileErr) {
		t.Fatalf("error = %v, want a CompileError", err)
	}
	if compileErr.FilterID != "104" && compileErr.FilterID != "205" {
		t.Errorf("CompileError.FilterID = %q, want a list id", compileErr.FilterID)
	}
}

func TestAggregateMissingTagIsFatal(t *testing.T) {
	aggregator := filters.NewAggregator(&fakeCompiler{}, filters.Tags{})
	_, err := aggregator.Aggregate(context.Background(), fstest.MapFS{}, ".", testLists())
	if !pkgerrors.IsNotFound(err) {
		t.Fatalf("Aggregate() error = %v, want a not-found error for the tag", err)
	}
}
