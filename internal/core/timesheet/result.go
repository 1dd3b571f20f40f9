package timesheet

import (
	"fmt"
	"sort"
	"time"
)

// SaveOutcome は従業員単位の保存結果です。
type SaveOutcome string

const (
	SaveOutcomeCreated SaveOutcome = "created"
	SaveOutcomeUpdated SaveOutcome = "updated"
)

// EmployeeSaveResult は 1 従業員分の保存結果です。
type EmployeeSaveResult struct {
	EmployeeID  string
	DisplayName string
	Outcome     SaveOutcome
}

// SaveResult は保存呼び出し全体の結果です。検証失敗・重複衝突・
// ストレージ障害もすべてこの 1 つの形に包まれ、呼び出し側は
// 失敗原因によらず同じ型で分岐できます。
type SaveResult struct {
	Success       bool
	SessionID     string
	GridID        string
	Created       bool
	Title         string
	TotalHours    float64
	EmployeeCount int
	Employees     []EmployeeSaveResult
	Validation    *GridValidation
	Duplicate     *DuplicationCheckResult
	Errors        []string
}

func validationFailureResult(sessionID string, validation *GridValidation) *SaveResult {
	result := &SaveResult{SessionID: sessionID, Validation: validation}
	for _, e := range validation.SetupErrors {
		result.Errors = append(result.Errors, fmt.Sprintf("%s: %s", e.Field, e.Message))
	}
	for _, e := range validation.Errors {
		result.Errors = append(result.Errors, fmt.Sprintf("%s %s: %s", e.EmployeeID, e.Date, e.Message))
	}
	return result
}

func duplicateFailureResult(sessionID string, dup *DuplicationCheckResult) *SaveResult {
	return &SaveResult{
		SessionID: sessionID,
		Duplicate: dup,
		Errors: []string{
			fmt.Sprintf("a grid for this store conflicts with the requested period (%s)", dup.ConflictType),
		},
	}
}

func storageFailureResult(sessionID string, err error) *SaveResult {
	return &SaveResult{
		SessionID: sessionID,
		Errors:    []string{fmt.Sprintf("storage failure: %v", err)},
	}
}

func cancelledResult(sessionID string) *SaveResult {
	return &SaveResult{
		SessionID: sessionID,
		Errors:    []string{"save was cancelled"},
	}
}

// employeeOutcomes は候補ペイロードの各従業員について、既存行に
// 存在したかどうかで created / updated を決めます。
func employeeOutcomes(candidate, existing map[string]*StoredEmployee) []EmployeeSaveResult {
	out := make([]EmployeeSaveResult, 0, len(candidate))
	for id, emp := range candidate {
		outcome := SaveOutcomeCreated
		if _, ok := existing[id]; ok {
			outcome = SaveOutcomeUpdated
		}
		out = append(out, EmployeeSaveResult{
			EmployeeID:  id,
			DisplayName: emp.DisplayName,
			Outcome:     outcome,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EmployeeID < out[j].EmployeeID })
	return out
}

// buildTitle は期間の月・年と従業員数からタイトルを導出します。
func buildTitle(periodStart time.Time, employeeCount int) string {
	noun := "employees"
	if employeeCount == 1 {
		noun = "employee"
	}
	return fmt.Sprintf("Timesheet %s %d (%d %s)", periodStart.Month(), periodStart.Year(), employeeCount, noun)
}
