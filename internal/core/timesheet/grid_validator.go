package timesheet

import (
	"fmt"
	"time"

	"github.com/ogurasousui/timesheet-core/internal/core/absence"
)

// RestrictionSet は従業員ごとの委任開始日です。該当日以降のセルは
// 編集できません。
type RestrictionSet map[string]time.Time

// Restricted は従業員が指定日に編集制限下にあるかを返します。
func (r RestrictionSet) Restricted(employeeID string, date time.Time) bool {
	if len(r) == 0 {
		return false
	}
	from, ok := r[employeeID]
	if !ok {
		return false
	}
	return !NormalizeDate(date).Before(NormalizeDate(from))
}

// GridValidation はグリッド検証の集約結果です。SetupErrors が
// 存在する場合、Errors/Warnings/Infos は常に空です。
type GridValidation struct {
	Valid       bool
	Errors      []CellIssue
	Warnings    []CellIssue
	Infos       []CellIssue
	SetupErrors []SetupError
}

// ValidateGridInput はグリッド検証への入力です。
type ValidateGridInput struct {
	Grid         *Grid
	Catalog      absence.Catalog
	Restrictions RestrictionSet
}

// ValidateGrid は設定前提を検証し、通過した場合のみ全セルを
// CellValidator へかけます。問題は fail-fast せず全件収集します。
func ValidateGrid(in ValidateGridInput) *GridValidation {
	v := &GridValidation{}

	if setupErrors := checkSetup(in.Grid); len(setupErrors) > 0 {
		v.SetupErrors = setupErrors
		return v
	}

	grid := in.Grid
	dates := grid.DateRange()
	allowed := make(map[string]time.Time, len(dates))
	for _, d := range dates {
		allowed[DateKey(d)] = d
	}

	for _, entry := range grid.Entries {
		if entry == nil {
			continue
		}
		for key := range entry.Cells {
			if _, ok := allowed[key]; !ok {
				v.Errors = append(v.Errors, CellIssue{
					EmployeeID: entry.EmployeeID,
					Date:       key,
					Severity:   SeverityError,
					Message:    fmt.Sprintf("date %s is outside the grid period", key),
				})
			}
		}
		for _, date := range dates {
			key := DateKey(date)
			cell, ok := entry.Cells[key]
			if !ok {
				continue
			}
			result := ValidateCell(CellContext{
				TimeInterval:         cell.TimeInterval,
				Status:               cell.Status,
				Hours:                cell.Hours,
				Catalog:              in.Catalog,
				Weekend:              isWeekend(date),
				DelegationRestricted: in.Restrictions.Restricted(entry.EmployeeID, date),
			})
			if result.Message == "" {
				continue
			}
			issue := CellIssue{
				EmployeeID: entry.EmployeeID,
				Date:       key,
				Severity:   result.Severity,
				Message:    result.Message,
			}
			switch result.Severity {
			case SeverityError:
				v.Errors = append(v.Errors, issue)
			case SeverityWarning:
				v.Warnings = append(v.Warnings, issue)
			default:
				v.Infos = append(v.Infos, issue)
			}
		}
	}

	v.Valid = len(v.Errors) == 0
	return v
}

// checkSetup はストア選択・エントリ有無・期間の妥当性を検証します。
func checkSetup(grid *Grid) []SetupError {
	if grid == nil {
		return []SetupError{{Field: "grid", Message: "grid is required"}}
	}

	var errs []SetupError
	if grid.StoreID == "" {
		errs = append(errs, SetupError{Field: "store", Message: "a store must be selected"})
	}
	if len(grid.Entries) == 0 {
		errs = append(errs, SetupError{Field: "entries", Message: "at least one employee entry is required"})
	}
	switch {
	case grid.PeriodStart.IsZero() || grid.PeriodEnd.IsZero():
		errs = append(errs, SetupError{Field: "period", Message: "start and end dates are required"})
	case !NormalizeDate(grid.PeriodStart).Before(NormalizeDate(grid.PeriodEnd)):
		errs = append(errs, SetupError{Field: "period", Message: "start date must be before end date"})
	case grid.PeriodDays() > MaxPeriodDays:
		errs = append(errs, SetupError{
			Field:   "period",
			Message: fmt.Sprintf("period must not exceed %d days", MaxPeriodDays),
		})
	}
	return errs
}

func isWeekend(date time.Time) bool {
	wd := date.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
