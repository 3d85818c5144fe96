package scheduler

import (
	"errors"
	"time"
)

// ErrNoMatchingWeekday 一周内找不到目标星期，只会在星期集合为空或非法时出现
var ErrNoMatchingWeekday = errors.New("no matching weekday within seven days")

// NextOccurrence 返回严格晚于 from、且星期属于 days 的最近日期，最多向后找 7 天
func NextOccurrence(from time.Time, days []time.Weekday) (time.Time, error) {
	for i := 1; i <= 7; i++ {
		d := from.AddDate(0, 0, i)
		if containsWeekday(days, d.Weekday()) {
			return d, nil
		}
	}
	return time.Time{}, ErrNoMatchingWeekday
}
