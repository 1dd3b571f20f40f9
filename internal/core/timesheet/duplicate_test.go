package timesheet

import (
	"testing"
	"time"
)

func TestClassifyConflict(t *testing.T) {
	t.Parallel()

	existing := []*GridSummary{
		{
			ID:          "grid-1",
			StoreID:     "store-1",
			PeriodStart: date(2025, time.January, 1),
			PeriodEnd:   date(2025, time.January, 15),
		},
	}

	cases := []struct {
		name  string
		start time.Time
		end   time.Time
		want  ConflictType
	}{
		{"identical period", date(2025, time.January, 1), date(2025, time.January, 15), ConflictExactPeriod},
		{"intersecting period", date(2025, time.January, 10), date(2025, time.January, 20), ConflictOverlappingPeriod},
		{"touching boundary", date(2025, time.January, 15), date(2025, time.January, 25), ConflictOverlappingPeriod},
		{"same calendar month", date(2025, time.January, 20), date(2025, time.January, 25), ConflictSameMonth},
		{"different month", date(2025, time.February, 1), date(2025, time.February, 15), ConflictNone},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := classifyConflict(tc.start, tc.end, existing)
			if got.ConflictType != tc.want {
				t.Fatalf("classifyConflict = %s, want %s", got.ConflictType, tc.want)
			}
			if tc.want == ConflictNone {
				if got.HasDuplicate || got.Existing != nil {
					t.Fatalf("no-conflict result should be empty: %+v", got)
				}
				return
			}
			if !got.HasDuplicate || got.Existing == nil || got.Existing.ID != "grid-1" {
				t.Fatalf("conflict result should carry the existing summary: %+v", got)
			}
		})
	}
}

func TestClassifyConflict_PicksHighestPriority(t *testing.T) {
	t.Parallel()

	existing := []*GridSummary{
		{ID: "same-month", PeriodStart: date(2025, time.January, 20), PeriodEnd: date(2025, time.January, 25)},
		{ID: "exact", PeriodStart: date(2025, time.January, 1), PeriodEnd: date(2025, time.January, 15)},
		{ID: "overlap", PeriodStart: date(2025, time.January, 10), PeriodEnd: date(2025, time.January, 18)},
	}

	got := classifyConflict(date(2025, time.January, 1), date(2025, time.January, 15), existing)
	if got.ConflictType != ConflictExactPeriod || got.Existing.ID != "exact" {
		t.Fatalf("expected exact_period with the exact row, got %+v", got)
	}
}

func TestDuplicateWindow_CoversPeriodMonths(t *testing.T) {
	t.Parallel()

	from, to := duplicateWindow(date(2025, time.January, 28), date(2025, time.February, 3))
	if DateKey(from) != "2025-01-01" {
		t.Fatalf("window start = %s, want 2025-01-01", DateKey(from))
	}
	if DateKey(to) != "2025-02-28" {
		t.Fatalf("window end = %s, want 2025-02-28", DateKey(to))
	}
}
