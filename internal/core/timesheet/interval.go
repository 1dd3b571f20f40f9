package timesheet

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	minShiftMinutes = 30
	maxShiftMinutes = 16 * 60
	minutesPerDay   = 24 * 60
)

// IntervalSpan は自由記述の時間帯を解釈した結果です。
type IntervalSpan struct {
	Start string
	End   string
	Hours float64
}

// ParseTimeInterval は "10-12" や "9:30-17:00" 形式の時間帯を解釈します。
// 数値上の終了が開始より前の場合は日跨ぎとして +24h で補正します。
// 長さは (0, 16] 時間かつ 30 分以上でなければなりません。
func ParseTimeInterval(raw string) (*IntervalSpan, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: empty interval", ErrIntervalFormat)
	}

	parts := strings.Split(trimmed, "-")
	if len(parts) != 2 {
		return nil, fmt.Errorf("%w: %q", ErrIntervalFormat, raw)
	}

	startMin, err := parseClock(parts[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrIntervalFormat, raw)
	}
	endMin, err := parseClock(parts[1])
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrIntervalFormat, raw)
	}

	duration := endMin - startMin
	if duration < 0 {
		duration += minutesPerDay
	}
	switch {
	case duration == 0:
		return nil, fmt.Errorf("%w: %q", ErrIntervalZero, raw)
	case duration < minShiftMinutes:
		return nil, fmt.Errorf("%w: %q", ErrIntervalTooShort, raw)
	case duration > maxShiftMinutes:
		return nil, fmt.Errorf("%w: %q", ErrIntervalTooLong, raw)
	}

	return &IntervalSpan{
		Start: formatClock(startMin),
		End:   formatClock(endMin),
		Hours: float64(duration) / 60,
	}, nil
}

// parseClock は "10" または "10:30" を 0 時からの分数に変換します。
func parseClock(raw string) (int, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, fmt.Errorf("empty clock value")
	}

	hourPart := trimmed
	minutePart := ""
	if idx := strings.IndexByte(trimmed, ':'); idx >= 0 {
		hourPart = trimmed[:idx]
		minutePart = trimmed[idx+1:]
	}

	hour, err := strconv.Atoi(hourPart)
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("invalid hour %q", hourPart)
	}

	minute := 0
	if minutePart != "" {
		minute, err = strconv.Atoi(minutePart)
		if err != nil || minute < 0 || minute > 59 {
			return 0, fmt.Errorf("invalid minute %q", minutePart)
		}
	}

	return hour*60 + minute, nil
}

func formatClock(minutes int) string {
	minutes %= minutesPerDay
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
