package services

import (
	"context"
	"sort"

	pkgerrors "github.com/agentstation/hostlists/pkg/errors"
	"github.com/agentstation/hostlists/pkg/logging"
)

// Reconciliation is the outcome of comparing the distribution against the
// source fragments.
type Reconciliation struct {
	Merged   []Service // Final catalog content, sorted by id
	Diff     Diff      // Added / removed / changed, keyed by id
	Restored []Service // Distribution-only services whose fragments must be recreated
}

// Reconcile merges the authoritative distribution with the editable source
// fragments.
//
// A service present only in the sources is new. One present only in the
// distribution was deleted upstream; the distribution is the durable record,
// so the deletion is treated as accidental and the service is kept and
// queued for fragment restoration. When both sides carry a service the
// source copy wins, with dynamic fragments first taking their rules from the
// distribution.
//
// After merging, every service's icon markup is validated; a malformed icon
// fails the run naming the offending service.
func Reconcile(ctx context.Context, distribution, sources []Service) (*Reconciliation, error) {
	logger := logging.FromContext(ctx)

	distByID := make(map[string]Service, len(distribution))
	for _, svc := range distribution {
		distByID[svc.ID] = svc
	}
	sourceIDs := make(map[string]bool, len(sources))

	result := &Reconciliation{
		Merged: make([]Service, 0, len(sources)),
		Diff: Diff{
			Added:   []Service{},
			Removed: []string{},
			Changed: []Change{},
		},
	}

	for _, svc := range sources {
		sourceIDs[svc.ID] = true

		existing, inDist := distByID[svc.ID]

		if svc.Dynamic {
			// Dynamic services keep their rule set in the distribution;
			// the fragment only carries metadata.
			if !inDist {
				return nil, pkgerrors.NewNotFoundError("service", svc.ID)
			}
			svc.Rules = existing.Rules
		}

		switch {
		case !inDist:
			result.Diff.Added = append(result.Diff.Added, svc)
		case !svc.Equal(&existing):
			result.Diff.Changed = append(result.Diff.Changed, Change{
				ID:     svc.ID,
				Before: existing,
				After:  svc,
			})
		}
		result.Merged = append(result.Merged, svc)
	}

	// Distribution-only services: kept, flagged removed, fragments restored.
	for _, svc := range distribution {
		if sourceIDs[svc.ID] {
			continue
		}
		result.Diff.Removed = append(result.Diff.Removed, svc.ID)
		result.Restored = append(result.Restored, svc)
		result.Merged = append(result.Merged, svc)
	}

	sort.Slice(result.Merged, func(i, j int) bool {
		return result.Merged[i].ID < result.Merged[j].ID
	})
	sort.Slice(result.Restored, func(i, j int) bool {
		return result.Restored[i].ID < result.Restored[j].ID
	})
	result.Diff.sort()

	for i := range result.Merged {
		if err := ValidateIcon(result.Merged[i].ID, result.Merged[i].IconSVG); err != nil {
			return nil, err
		}
	}

	logger.Info().
		Int("merged", len(result.Merged)).
		Int("added", len(result.Diff.Added)).
		Int("removed", len(result.Diff.Removed)).
		Int("changed", len(result.Diff.Changed)).
		Msg("Reconciled services against distribution")

	return result, nil
}
