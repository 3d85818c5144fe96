package util

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// ParseDate 解析 YYYY-MM-DD，返回 UTC 零点，避免时区影响按天比较
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateFormat, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

func FormatDate(t time.Time) string {
	return t.Format(DateFormat)
}

// Today 返回 now 在 loc 时区下的日历日期（UTC 零点表示）
func Today(now time.Time, loc *time.Location) time.Time {
	if loc != nil {
		now = now.In(loc)
	}
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween 两个日期相差的整天数
func DaysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}

var tableNamePattern = regexp.MustCompile(`^[a-z][a-z0-9_]{2,63}$`)

// ValidTableName 班级课程表名只允许小写字母、数字和下划线
func ValidTableName(name string) bool {
	return tableNamePattern.MatchString(name)
}
