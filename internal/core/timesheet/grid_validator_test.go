package timesheet

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func gridFixture() *Grid {
	return &Grid{
		StoreID:     "store-1",
		ZoneID:      "zone-1",
		PeriodStart: date(2025, time.January, 1),
		PeriodEnd:   date(2025, time.January, 15),
		Entries: []*Entry{
			{
				EmployeeID:  "emp-1",
				DisplayName: "Ana Pop",
				Cells: map[string]*DayCell{
					"2025-01-02": {TimeInterval: "10-12", Hours: 2},
				},
			},
		},
	}
}

func TestValidateGrid_SetupErrorsSuppressCellChecks(t *testing.T) {
	t.Parallel()

	grid := gridFixture()
	grid.StoreID = ""
	grid.Entries[0].Cells["2025-01-03"] = &DayCell{TimeInterval: "broken"}

	v := ValidateGrid(ValidateGridInput{Grid: grid, Catalog: testCatalog()})
	if v.Valid {
		t.Fatalf("expected invalid result")
	}
	if len(v.SetupErrors) == 0 {
		t.Fatalf("expected setup errors")
	}
	if len(v.Errors) != 0 || len(v.Warnings) != 0 {
		t.Fatalf("setup errors and cell issues must never both be populated: %+v", v)
	}
}

func TestValidateGrid_PeriodTooLong(t *testing.T) {
	t.Parallel()

	grid := gridFixture()
	grid.PeriodEnd = date(2025, time.February, 5)
	grid.Entries[0].Cells["2025-01-03"] = &DayCell{TimeInterval: "broken"}

	v := ValidateGrid(ValidateGridInput{Grid: grid, Catalog: testCatalog()})
	if v.Valid {
		t.Fatalf("expected invalid result")
	}
	if len(v.SetupErrors) != 1 || v.SetupErrors[0].Field != "period" {
		t.Fatalf("expected one period setup error, got %+v", v.SetupErrors)
	}
	if len(v.Errors) != 0 {
		t.Fatalf("cell errors must not be computed for >31 day periods, got %+v", v.Errors)
	}
}

func TestValidateGrid_StartMustPrecedeEnd(t *testing.T) {
	t.Parallel()

	grid := gridFixture()
	grid.PeriodEnd = grid.PeriodStart

	v := ValidateGrid(ValidateGridInput{Grid: grid, Catalog: testCatalog()})
	if len(v.SetupErrors) != 1 || v.SetupErrors[0].Field != "period" {
		t.Fatalf("expected period setup error, got %+v", v.SetupErrors)
	}
}

func TestValidateGrid_CollectsAllIssues(t *testing.T) {
	t.Parallel()

	grid := gridFixture()
	grid.Entries = []*Entry{
		{
			EmployeeID:  "emp-1",
			DisplayName: "Ana Pop",
			Cells: map[string]*DayCell{
				"2025-01-02": {TimeInterval: "broken"},
				"2025-01-03": {Status: "CO", Hours: 4},
				"2025-01-04": {Hours: 8}, // Saturday
			},
		},
		{
			EmployeeID:  "emp-2",
			DisplayName: "Ion Rus",
			Cells: map[string]*DayCell{
				"2025-01-06": {Status: "DP", Hours: 12},
				"2025-01-07": {Status: "DP"},
			},
		},
	}

	v := ValidateGrid(ValidateGridInput{Grid: grid, Catalog: testCatalog()})
	if v.Valid {
		t.Fatalf("expected invalid result")
	}
	if len(v.Errors) != 3 {
		t.Fatalf("expected 3 blocking errors, got %d: %+v", len(v.Errors), v.Errors)
	}
	if len(v.Warnings) != 1 {
		t.Fatalf("expected 1 warning, got %d: %+v", len(v.Warnings), v.Warnings)
	}
	if len(v.Infos) != 1 {
		t.Fatalf("expected 1 weekend info, got %d: %+v", len(v.Infos), v.Infos)
	}
}

func TestValidateGrid_DateOutsidePeriod(t *testing.T) {
	t.Parallel()

	grid := gridFixture()
	grid.Entries[0].Cells["2025-02-01"] = &DayCell{Hours: 4}

	v := ValidateGrid(ValidateGridInput{Grid: grid, Catalog: testCatalog()})
	if v.Valid {
		t.Fatalf("expected invalid result")
	}
	found := false
	for _, issue := range v.Errors {
		if issue.Date == "2025-02-01" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected an error for the out-of-period date, got %+v", v.Errors)
	}
}

func TestValidateGrid_DelegationRestrictions(t *testing.T) {
	t.Parallel()

	grid := gridFixture()
	grid.Entries[0].Cells = map[string]*DayCell{
		"2025-01-05": {Hours: 4},
		"2025-01-10": {Hours: 4},
	}
	restrictions := RestrictionSet{"emp-1": date(2025, time.January, 8)}

	v := ValidateGrid(ValidateGridInput{Grid: grid, Catalog: testCatalog(), Restrictions: restrictions})
	if len(v.Errors) != 1 {
		t.Fatalf("expected exactly one delegation error, got %+v", v.Errors)
	}
	if v.Errors[0].Date != "2025-01-10" {
		t.Fatalf("restriction applied to wrong date: %+v", v.Errors[0])
	}
}

func TestGrid_DateRange(t *testing.T) {
	t.Parallel()

	grid := &Grid{PeriodStart: date(2025, time.January, 30), PeriodEnd: date(2025, time.February, 2)}
	got := grid.DateRange()
	if len(got) != 4 {
		t.Fatalf("expected 4 days, got %d", len(got))
	}
	if DateKey(got[0]) != "2025-01-30" || DateKey(got[3]) != "2025-02-02" {
		t.Fatalf("unexpected range bounds: %s .. %s", DateKey(got[0]), DateKey(got[3]))
	}
}
