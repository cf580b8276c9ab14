package filters_test

import (
	"testing"
	"time"

	"github.com/agentstation/utc"

	"github.com/agentstation/hostlists/pkg/filters"
)

func TestSum(t *testing.T) {
	t.Run("identical content hashes identically", func(t *testing.T) {
		content := []byte("||ads.example^\n||tracker.example^\n")
		if filters.Sum(content) != filters.Sum(content) {
			t.Error("same content produced different hashes")
		}
	})

	t.Run("volatile lines are ignored", func(t *testing.T) {
		first := []byte("! Title: Test\n! Last modified: 2024-01-01T00:00:00Z\n||ads.example^\n")
		second := []byte("! Title: Test\n! Last modified: 2025-06-15T12:30:00Z\n||ads.example^\n")
		if filters.Sum(first) != filters.Sum(second) {
			t.Error("hash changed when only the volatile stamp differed")
		}
	})

	t.Run("hash comment spelling is also volatile", func(t *testing.T) {
		first := []byte("# Last modified: Mon Jan 01 2024\n0.0.0.0 ads.example\n")
		second := []byte("# Last modified: Sun Jun 15 2025\n0.0.0.0 ads.example\n")
		if filters.Sum(first) != filters.Sum(second) {
			t.Error("hash changed when only the volatile stamp differed")
		}
	})

	t.Run("indented volatile lines are ignored", func(t *testing.T) {
		first := []byte("  ! Last modified: 2024-01-01\n||ads.example^\n")
		second := []byte("||ads.example^\n")
		if filters.Sum(first) != filters.Sum(second) {
			t.Error("indented volatile line affected the hash")
		}
	})

	t.Run("rule changes change the hash", func(t *testing.T) {
		first := []byte("||ads.example^\n")
		second := []byte("||ads.example^\n||new.example^\n")
		if filters.Sum(first) == filters.Sum(second) {
			t.Error("different rule content produced the same hash")
		}
	})

	t.Run("line endings do not affect the hash", func(t *testing.T) {
		lf := []byte("||ads.example^\n||tracker.example^\n")
		crlf := []byte("||ads.example^\r\n||tracker.example^\r\n")
		if filters.Sum(lf) != filters.Sum(crlf) {
			t.Error("CRLF content hashed differently from LF content")
		}
	})
}

func TestDecide(t *testing.T) {
	now := utc.Time{Time: time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)}
	earlier := utc.Time{Time: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}

	t.Run("no previous revision counts as changed", func(t *testing.T) {
		revision, changed := filters.Decide(nil, "abc", now)
		if !changed {
			t.Error("expected changed for missing previous revision")
		}
		if revision.Hash != "abc" || !revision.TimeUpdated.Equal(now) {
			t.Errorf("revision = %+v, want hash abc at %v", revision, now)
		}
	})

	t.Run("differing hash refreshes the timestamp", func(t *testing.T) {
		previous := &filters.Revision{TimeUpdated: earlier, Hash: "old"}
		revision, changed := filters.Decide(previous, "new", now)
		if !changed {
			t.Error("expected changed for differing hash")
		}
		if !revision.TimeUpdated.Equal(now) {
			t.Errorf("TimeUpdated = %v, want %v", revision.TimeUpdated, now)
		}
	})

	t.Run("matching hash preserves the timestamp", func(t *testing.T) {
		previous := &filters.Revision{TimeUpdated: earlier, Hash: "same"}
		revision, changed := filters.Decide(previous, "same", now)
		if changed {
			t.Error("expected unchanged for matching hash")
		}
		if !revision.TimeUpdated.Equal(earlier) {
			t.Errorf("TimeUpdated = %v, want preserved %v", revision.TimeUpdated, earlier)
		}
	})

	t.Run("second run is a no-op", func(t *testing.T) {
		content := []byte("||ads.example^\n")
		hash := filters.Sum(content)

		first, changed := filters.Decide(nil, hash, earlier)
		if !changed {
			t.Fatal("first run should report changed")
		}

		second, changed := filters.Decide(&first, hash, now)
		if changed {
			t.Error("second run with identical content should not report changed")
		}
		if !second.TimeUpdated.Equal(first.TimeUpdated) {
			t.Errorf("TimeUpdated drifted on identical content: %v -> %v", first.TimeUpdated, second.TimeUpdated)
		}
	})
}
