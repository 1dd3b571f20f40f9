package timesheet

import (
	"errors"
	"fmt"

	"github.com/ogurasousui/timesheet-core/internal/core/absence"
)

// CellOutcome はセル検証の三値結果です。カタログ未ロード時の
// ステータス照合は真偽では表現できないため明示的な第三状態を持ちます。
type CellOutcome string

const (
	OutcomeValid          CellOutcome = "valid"
	OutcomeInvalid        CellOutcome = "invalid"
	OutcomePendingCatalog CellOutcome = "pending_catalog"
)

// CellContext は 1 セル検証への入力です。
type CellContext struct {
	TimeInterval string
	Status       string
	Hours        float64
	Catalog      absence.Catalog
	Weekend      bool
	// DelegationRestricted はこの日付時点で従業員が他店舗へ
	// 委任済みであることを示します。
	DelegationRestricted bool
}

// CellResult は 1 セル検証の結果です。
type CellResult struct {
	Outcome  CellOutcome
	Severity Severity
	Message  string
}

func validResult() CellResult {
	return CellResult{Outcome: OutcomeValid}
}

func invalidResult(message string) CellResult {
	return CellResult{Outcome: OutcomeInvalid, Severity: SeverityError, Message: message}
}

const maxPartialAbsenceHours = 8

// ValidateCell は 1 セルを固定優先順のルールで検証します。
// 最初に失敗したルールで確定し、後続ルールは評価されません。
func ValidateCell(c CellContext) CellResult {
	hasStatus := c.Status != "" && c.Status != DefaultStatus
	hasInterval := c.TimeInterval != ""

	// 1. 委任制限。以降の全ルールを短絡します。
	if c.DelegationRestricted {
		if c.Hours > 0 || hasInterval || hasStatus {
			return invalidResult("cannot edit after delegation")
		}
		return validResult()
	}

	// 2. 時間帯の書式と長さ。空は有効です。
	if hasInterval {
		if _, err := ParseTimeInterval(c.TimeInterval); err != nil {
			return invalidResult(intervalMessage(c.TimeInterval, err))
		}
	}

	if hasStatus {
		typ, known := c.Catalog.Find(c.Status)
		switch {
		case known && !typ.RequiresHours:
			// 3. 終日不在と労働時間の両立は不可。
			if c.Hours > 0 || hasInterval {
				return invalidResult(fmt.Sprintf("cannot combine working hours with %s", typ.DisplayName))
			}
		case known && typ.RequiresHours:
			// 4. 部分欠勤は時間数が必須。8 時間超は警告扱い。
			if c.Hours <= 0 {
				return invalidResult(fmt.Sprintf("%s requires explicit hours", typ.DisplayName))
			}
			if c.Hours > maxPartialAbsenceHours {
				return CellResult{
					Outcome:  OutcomeValid,
					Severity: SeverityWarning,
					Message:  fmt.Sprintf("%s with more than %d hours", typ.DisplayName, maxPartialAbsenceHours),
				}
			}
		default:
			// 5. ステータス照合。カタログが空なら保留扱いでブロックしません。
			if c.Catalog.Empty() {
				return CellResult{
					Outcome:  OutcomePendingCatalog,
					Severity: SeverityInfo,
					Message:  fmt.Sprintf("status %q pending catalog load", c.Status),
				}
			}
			return invalidResult(fmt.Sprintf("unknown status %q", c.Status))
		}
	}

	// 6. 週末労働は有効だが情報として通知します。
	if c.Weekend && c.Hours > 0 {
		return CellResult{
			Outcome:  OutcomeValid,
			Severity: SeverityInfo,
			Message:  "working hours on a weekend",
		}
	}

	return validResult()
}

func intervalMessage(raw string, err error) string {
	switch {
	case errors.Is(err, ErrIntervalZero):
		return fmt.Sprintf("interval %q has zero duration", raw)
	case errors.Is(err, ErrIntervalTooShort):
		return fmt.Sprintf("interval %q is shorter than 30 minutes", raw)
	case errors.Is(err, ErrIntervalTooLong):
		return fmt.Sprintf("interval %q is longer than 16 hours", raw)
	default:
		return fmt.Sprintf("unparsable time interval %q", raw)
	}
}
