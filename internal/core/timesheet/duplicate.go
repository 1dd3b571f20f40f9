package timesheet

import "time"

// ConflictType は候補期間と既存永続グリッドの関係です。
type ConflictType string

const (
	ConflictNone              ConflictType = "none"
	ConflictExactPeriod       ConflictType = "exact_period"
	ConflictOverlappingPeriod ConflictType = "overlapping_period"
	ConflictSameMonth         ConflictType = "same_month"
)

// DuplicationCheckResult は重複判定の結果です。衝突がある場合は
// 呼び出し側が既存グリッドの編集・期間変更・強制作成を選択できる
// よう既存行の要約を保持します。
type DuplicationCheckResult struct {
	HasDuplicate bool
	ConflictType ConflictType
	Existing     *GridSummary
}

// classifyConflict は既存グリッド群に対する候補期間の衝突を
// exact_period > overlapping_period > same_month の優先順で分類します。
func classifyConflict(candStart, candEnd time.Time, existing []*GridSummary) DuplicationCheckResult {
	candStart = NormalizeDate(candStart)
	candEnd = NormalizeDate(candEnd)

	best := DuplicationCheckResult{ConflictType: ConflictNone}
	for _, summary := range existing {
		if summary == nil {
			continue
		}
		conflict := relatePeriods(candStart, candEnd, NormalizeDate(summary.PeriodStart), NormalizeDate(summary.PeriodEnd))
		if rankConflict(conflict) > rankConflict(best.ConflictType) {
			best = DuplicationCheckResult{HasDuplicate: true, ConflictType: conflict, Existing: summary}
		}
		if best.ConflictType == ConflictExactPeriod {
			break
		}
	}
	return best
}

func relatePeriods(candStart, candEnd, existingStart, existingEnd time.Time) ConflictType {
	switch {
	case candStart.Equal(existingStart) && candEnd.Equal(existingEnd):
		return ConflictExactPeriod
	case !candStart.After(existingEnd) && !existingStart.After(candEnd):
		return ConflictOverlappingPeriod
	case sameMonth(candStart, existingStart):
		return ConflictSameMonth
	default:
		return ConflictNone
	}
}

func rankConflict(c ConflictType) int {
	switch c {
	case ConflictExactPeriod:
		return 3
	case ConflictOverlappingPeriod:
		return 2
	case ConflictSameMonth:
		return 1
	default:
		return 0
	}
}

func sameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

// duplicateWindow は重複分類に必要な検索範囲を返します。候補期間と
// その開始・終了月の全体を覆います。
func duplicateWindow(candStart, candEnd time.Time) (from, to time.Time) {
	candStart = NormalizeDate(candStart)
	candEnd = NormalizeDate(candEnd)
	from = time.Date(candStart.Year(), candStart.Month(), 1, 0, 0, 0, 0, time.UTC)
	to = time.Date(candEnd.Year(), candEnd.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, -1)
	return from, to
}
