package timesheet

import (
	"time"
)

// DateKeyLayout はセルの日付キー書式です。
const DateKeyLayout = "2006-01-02"

// DefaultStatus は未設定セルのステータス番兵値です。
const DefaultStatus = "unset"

// MaxPeriodDays はグリッド期間の上限（日数、両端含む）です。
const MaxPeriodDays = 31

// Grid は 1 店舗・1 期間・複数従業員の勤怠グリッドです。
// 永続化の同一性キーは (StoreID, PeriodStart, PeriodEnd) で、
// キーごとに正規の永続行は高々 1 つです。
type Grid struct {
	StoreID     string
	ZoneID      string
	PeriodStart time.Time
	PeriodEnd   time.Time
	Entries     []*Entry
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Entry は 1 従業員分の行です。Cells のキーはグリッド期間内の
// 日付キー（DateKeyLayout）の部分集合です。
type Entry struct {
	EmployeeID  string
	DisplayName string
	Position    string
	Cells       map[string]*DayCell
}

// DayCell は 1 従業員・1 日分のセルです。
type DayCell struct {
	TimeInterval string
	StartTime    string
	EndTime      string
	Hours        float64
	Status       string
	Notes        string
}

// Empty はセルが永続化対象外（時間なし・既定ステータス・メモなし）
// かどうかを返します。空セルは永続ペイロードから除外されます。
func (c *DayCell) Empty() bool {
	if c == nil {
		return true
	}
	if c.Hours != 0 || c.TimeInterval != "" || c.Notes != "" {
		return false
	}
	return c.Status == "" || c.Status == DefaultStatus
}

// NormalizeDate は時刻・タイムゾーン起因のずれを避けるため、
// 日付のみの UTC 表現へ正規化します。
func NormalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DateKey は正規化済み日付のキー文字列を返します。
func DateKey(t time.Time) string {
	return NormalizeDate(t).Format(DateKeyLayout)
}

// ParseDateKey は日付キーを UTC の日付へ変換します。
func ParseDateKey(key string) (time.Time, error) {
	return time.ParseInLocation(DateKeyLayout, key, time.UTC)
}

// PeriodDays は両端を含む期間日数を返します。期間が不正な場合は 0 です。
func (g *Grid) PeriodDays() int {
	start := NormalizeDate(g.PeriodStart)
	end := NormalizeDate(g.PeriodEnd)
	if end.Before(start) {
		return 0
	}
	return int(end.Sub(start).Hours()/24) + 1
}

// DateRange は期間内の全日付（両端含む、日付のみ UTC）を返します。
func (g *Grid) DateRange() []time.Time {
	days := g.PeriodDays()
	if days <= 0 {
		return nil
	}
	out := make([]time.Time, 0, days)
	d := NormalizeDate(g.PeriodStart)
	for i := 0; i < days; i++ {
		out = append(out, d.AddDate(0, 0, i))
	}
	return out
}

// StoredGrid は永続化されたグリッド行です。Employees は従業員ごとの
// スパースなセル集合で、空セルは含まれません。
type StoredGrid struct {
	ID            string
	StoreID       string
	ZoneID        string
	PeriodStart   time.Time
	PeriodEnd     time.Time
	Title         string
	TotalHours    float64
	EmployeeCount int
	Employees     map[string]*StoredEmployee
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// StoredEmployee は永続ペイロード内の 1 従業員分です。
type StoredEmployee struct {
	DisplayName string                 `json:"display_name"`
	Position    string                 `json:"position,omitempty"`
	Days        map[string]*StoredCell `json:"days"`
}

// StoredCell は永続ペイロード内の 1 セル分です。
type StoredCell struct {
	TimeInterval string  `json:"interval,omitempty"`
	StartTime    string  `json:"start,omitempty"`
	EndTime      string  `json:"end,omitempty"`
	Hours        float64 `json:"hours,omitempty"`
	Status       string  `json:"status,omitempty"`
	Notes        string  `json:"notes,omitempty"`
}

// GridSummary は重複判定の提示用に使う永続グリッドの要約です。
type GridSummary struct {
	ID            string
	StoreID       string
	PeriodStart   time.Time
	PeriodEnd     time.Time
	TotalHours    float64
	EmployeeCount int
	CreatedAt     time.Time
}

// serializeEntries はメモリ上のグリッドをスパースな永続表現へ
// 変換します。空セルおよび空になった従業員は省かれます。
func serializeEntries(entries []*Entry) map[string]*StoredEmployee {
	out := make(map[string]*StoredEmployee, len(entries))
	for _, entry := range entries {
		if entry == nil || entry.EmployeeID == "" {
			continue
		}
		days := make(map[string]*StoredCell)
		for key, cell := range entry.Cells {
			if cell.Empty() {
				continue
			}
			status := cell.Status
			if status == DefaultStatus {
				status = ""
			}
			days[key] = &StoredCell{
				TimeInterval: cell.TimeInterval,
				StartTime:    cell.StartTime,
				EndTime:      cell.EndTime,
				Hours:        cell.Hours,
				Status:       status,
				Notes:        cell.Notes,
			}
		}
		if len(days) == 0 {
			continue
		}
		out[entry.EmployeeID] = &StoredEmployee{
			DisplayName: entry.DisplayName,
			Position:    entry.Position,
			Days:        days,
		}
	}
	return out
}

// mergeEmployees は候補のセルを既存ペイロードへマージします。
// 同一キーのセルは候補側が上書きし、それ以外の既存キーは保持されます。
func mergeEmployees(existing, candidate map[string]*StoredEmployee) map[string]*StoredEmployee {
	merged := make(map[string]*StoredEmployee, len(existing)+len(candidate))
	for id, emp := range existing {
		days := make(map[string]*StoredCell, len(emp.Days))
		for key, cell := range emp.Days {
			copied := *cell
			days[key] = &copied
		}
		merged[id] = &StoredEmployee{DisplayName: emp.DisplayName, Position: emp.Position, Days: days}
	}
	for id, emp := range candidate {
		target, ok := merged[id]
		if !ok {
			target = &StoredEmployee{Days: make(map[string]*StoredCell, len(emp.Days))}
			merged[id] = target
		}
		target.DisplayName = emp.DisplayName
		target.Position = emp.Position
		for key, cell := range emp.Days {
			copied := *cell
			target.Days[key] = &copied
		}
	}
	return merged
}

// recomputeTotals はマージ後のペイロードから合計時間と従業員数を
// 再計算します。
func recomputeTotals(employees map[string]*StoredEmployee) (totalHours float64, employeeCount int) {
	for _, emp := range employees {
		if len(emp.Days) == 0 {
			continue
		}
		employeeCount++
		for _, cell := range emp.Days {
			totalHours += cell.Hours
		}
	}
	return totalHours, employeeCount
}
