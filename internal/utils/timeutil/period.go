package timeutil

import (
	"fmt"
	"time"
)

// ===================== 结算周期 =====================

// FormatPeriod 结算周期编码，格式 YYYYMM
func FormatPeriod(t time.Time) string {
	return t.UTC().Format("200601")
}

// ParsePeriod 解析 YYYYMM 周期编码，返回该月第一天零点（UTC）
func ParsePeriod(period string) (time.Time, error) {
	t, err := time.Parse("200601", period)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid period %q: %w", period, err)
	}
	return t, nil
}

// PeriodEnd 周期结束时刻（下月第一天零点）
func PeriodEnd(period string) (time.Time, error) {
	start, err := ParsePeriod(period)
	if err != nil {
		return time.Time{}, err
	}
	return start.AddDate(0, 1, 0), nil
}
