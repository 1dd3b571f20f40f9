package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/ogurasousui/timesheet-core/internal/core/timesheet"
)

// gridFile は timesheetctl が受け付けるグリッドファイルの JSON 形式です。
type gridFile struct {
	StoreID     string                   `json:"store_id"`
	ZoneID      string                   `json:"zone_id,omitempty"`
	PeriodStart string                   `json:"period_start"`
	PeriodEnd   string                   `json:"period_end"`
	Entries     map[string]gridFileEntry `json:"entries"`
}

type gridFileEntry struct {
	DisplayName string                  `json:"display_name,omitempty"`
	Position    string                  `json:"position,omitempty"`
	Cells       map[string]gridFileCell `json:"cells"`
}

type gridFileCell struct {
	Interval string  `json:"interval,omitempty"`
	Hours    float64 `json:"hours,omitempty"`
	Status   string  `json:"status,omitempty"`
	Notes    string  `json:"notes,omitempty"`
}

// readGridFile はグリッドファイルを読み込んでドメインのグリッドへ
// 変換します。時間帯文字列が正しく解析できる場合は開始・終了と
// 時間数を補完します。解析できない文字列はそのまま保持し、
// 検証段階でエラーとして報告させます。
func readGridFile(path string) (*timesheet.Grid, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read grid file: %w", err)
	}

	var file gridFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse grid file %s: %w", path, err)
	}

	grid := &timesheet.Grid{
		StoreID: file.StoreID,
		ZoneID:  file.ZoneID,
	}
	if file.PeriodStart != "" {
		start, err := timesheet.ParseDateKey(file.PeriodStart)
		if err != nil {
			return nil, fmt.Errorf("parse period_start %q: %w", file.PeriodStart, err)
		}
		grid.PeriodStart = start
	}
	if file.PeriodEnd != "" {
		end, err := timesheet.ParseDateKey(file.PeriodEnd)
		if err != nil {
			return nil, fmt.Errorf("parse period_end %q: %w", file.PeriodEnd, err)
		}
		grid.PeriodEnd = end
	}

	employeeIDs := make([]string, 0, len(file.Entries))
	for id := range file.Entries {
		employeeIDs = append(employeeIDs, id)
	}
	sort.Strings(employeeIDs)

	for _, id := range employeeIDs {
		fileEntry := file.Entries[id]
		entry := &timesheet.Entry{
			EmployeeID:  id,
			DisplayName: fileEntry.DisplayName,
			Position:    fileEntry.Position,
			Cells:       make(map[string]*timesheet.DayCell, len(fileEntry.Cells)),
		}
		for dateKey, fileCell := range fileEntry.Cells {
			cell := &timesheet.DayCell{
				TimeInterval: fileCell.Interval,
				Hours:        fileCell.Hours,
				Status:       fileCell.Status,
				Notes:        fileCell.Notes,
			}
			if cell.TimeInterval != "" {
				if span, err := timesheet.ParseTimeInterval(cell.TimeInterval); err == nil {
					cell.StartTime = span.Start
					cell.EndTime = span.End
					if cell.Hours == 0 {
						cell.Hours = span.Hours
					}
				}
			}
			entry.Cells[dateKey] = cell
		}
		grid.Entries = append(grid.Entries, entry)
	}

	return grid, nil
}
