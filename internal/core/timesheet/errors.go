package timesheet

import "errors"

var (
	ErrNilGrid           = errors.New("timesheet: grid is required")
	ErrStoreRequired     = errors.New("timesheet: store is required")
	ErrGridNotFound      = errors.New("timesheet: grid not found")
	ErrDuplicatePeriod   = errors.New("timesheet: grid already exists for store and period")
	ErrInvalidPeriod     = errors.New("timesheet: invalid period")
	ErrSaveInProgress    = errors.New("timesheet: save already in progress")
	ErrInvalidTransition = errors.New("timesheet: invalid session state transition")
	ErrCancelNotAllowed  = errors.New("timesheet: cancel not allowed in current state")
	ErrIntervalFormat    = errors.New("timesheet: unparsable time interval")
	ErrIntervalZero      = errors.New("timesheet: time interval has zero duration")
	ErrIntervalTooShort  = errors.New("timesheet: time interval shorter than 30 minutes")
	ErrIntervalTooLong   = errors.New("timesheet: time interval longer than 16 hours")
)

// Severity はセル検証結果の深刻度です。
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// CellIssue は従業員と日付に紐づく検証結果です。エラーは保存を
// ブロックし、警告・情報はブロックしません。
type CellIssue struct {
	EmployeeID string
	Date       string
	Severity   Severity
	Message    string
}

// SetupError はグリッド設定段階の問題です。設定エラーが 1 件でも
// あればセル単位の検証は一切行われません。
type SetupError struct {
	Field   string
	Message string
}
