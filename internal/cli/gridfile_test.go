package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ogurasousui/timesheet-core/internal/core/timesheet"
)

func writeGridFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "grid.json")
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("write grid file: %v", err)
	}
	return path
}

func TestReadGridFile_Success(t *testing.T) {
	t.Parallel()

	path := writeGridFile(t, `{
  "store_id": "store-1",
  "zone_id": "zone-9",
  "period_start": "2025-01-01",
  "period_end": "2025-01-15",
  "entries": {
    "emp-2": {
      "display_name": "Bob",
      "cells": {
        "2025-01-03": {"status": "CO"}
      }
    },
    "emp-1": {
      "display_name": "Alice",
      "position": "cashier",
      "cells": {
        "2025-01-02": {"interval": "9:30-17:00"},
        "2025-01-04": {"interval": "10-18", "hours": 7.5, "notes": "short break"}
      }
    }
  }
}`)

	grid, err := readGridFile(path)
	if err != nil {
		t.Fatalf("readGridFile returned error: %v", err)
	}

	if grid.StoreID != "store-1" || grid.ZoneID != "zone-9" {
		t.Fatalf("unexpected grid identity: %+v", grid)
	}
	if timesheet.DateKey(grid.PeriodStart) != "2025-01-01" || timesheet.DateKey(grid.PeriodEnd) != "2025-01-15" {
		t.Fatalf("unexpected period: %v .. %v", grid.PeriodStart, grid.PeriodEnd)
	}

	if len(grid.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(grid.Entries))
	}
	if grid.Entries[0].EmployeeID != "emp-1" || grid.Entries[1].EmployeeID != "emp-2" {
		t.Fatalf("entries should be sorted by employee id: %s, %s", grid.Entries[0].EmployeeID, grid.Entries[1].EmployeeID)
	}

	cell := grid.Entries[0].Cells["2025-01-02"]
	if cell == nil {
		t.Fatal("expected cell for 2025-01-02")
	}
	if cell.StartTime != "09:30" || cell.EndTime != "17:00" {
		t.Fatalf("interval should fill start/end, got %q-%q", cell.StartTime, cell.EndTime)
	}
	if cell.Hours != 7.5 {
		t.Fatalf("hours should derive from interval, got %v", cell.Hours)
	}

	explicit := grid.Entries[0].Cells["2025-01-04"]
	if explicit.Hours != 7.5 {
		t.Fatalf("explicit hours must win over the interval, got %v", explicit.Hours)
	}
	if explicit.Notes != "short break" {
		t.Fatalf("unexpected notes: %q", explicit.Notes)
	}

	status := grid.Entries[1].Cells["2025-01-03"]
	if status.Status != "CO" || status.Hours != 0 {
		t.Fatalf("unexpected status cell: %+v", status)
	}
}

func TestReadGridFile_KeepsUnparsableInterval(t *testing.T) {
	t.Parallel()

	path := writeGridFile(t, `{
  "store_id": "store-1",
  "period_start": "2025-01-01",
  "period_end": "2025-01-05",
  "entries": {
    "emp-1": {
      "cells": {
        "2025-01-02": {"interval": "not-a-time"}
      }
    }
  }
}`)

	grid, err := readGridFile(path)
	if err != nil {
		t.Fatalf("readGridFile returned error: %v", err)
	}

	cell := grid.Entries[0].Cells["2025-01-02"]
	if cell.TimeInterval != "not-a-time" {
		t.Fatalf("raw interval must be preserved, got %q", cell.TimeInterval)
	}
	if cell.StartTime != "" || cell.Hours != 0 {
		t.Fatalf("unparsable interval must not derive values: %+v", cell)
	}
}

func TestReadGridFile_Errors(t *testing.T) {
	t.Parallel()

	if _, err := readGridFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected error for missing file")
	}

	badJSON := writeGridFile(t, `{`)
	if _, err := readGridFile(badJSON); err == nil {
		t.Fatal("expected error for malformed json")
	}

	badDate := writeGridFile(t, `{"store_id":"s","period_start":"01/02/2025","period_end":"2025-01-05","entries":{}}`)
	if _, err := readGridFile(badDate); err == nil {
		t.Fatal("expected error for malformed period_start")
	}
}
