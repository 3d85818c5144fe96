// Package scheduler 课表调整的纯计算部分：上课日识别、日期推算、周次/课次重排。
// 不做任何读写，调用方负责取数和落库。
package scheduler

import (
	"cohort_backend/internal/model"
	"strings"
	"time"
)

var weekdayByName = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// DefaultPattern 识别不到常规上课日时使用：周一、三、五
var DefaultPattern = []time.Weekday{time.Monday, time.Wednesday, time.Friday}

// ContestDays 比赛课可以排在任意工作日
var ContestDays = []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday}

// ParseWeekday 星期名转 time.Weekday，忽略大小写和首尾空白
func ParseWeekday(name string) (time.Weekday, bool) {
	d, ok := weekdayByName[strings.ToLower(strings.TrimSpace(name))]
	return d, ok
}

// DetectDayPattern 从非比赛课中按首次出现顺序收集上课日
func DetectDayPattern(sessions []model.ClassSession) []time.Weekday {
	seen := make(map[time.Weekday]bool)
	var pattern []time.Weekday

	for _, s := range sessions {
		if s.IsContest() {
			continue
		}
		d, ok := ParseWeekday(s.Day)
		if !ok || seen[d] {
			continue
		}
		seen[d] = true
		pattern = append(pattern, d)
	}

	if len(pattern) == 0 {
		return append([]time.Weekday(nil), DefaultPattern...)
	}
	return pattern
}

// PatternNames 用于接口输出
func PatternNames(days []time.Weekday) []string {
	names := make([]string, len(days))
	for i, d := range days {
		names[i] = d.String()
	}
	return names
}

func containsWeekday(days []time.Weekday, d time.Weekday) bool {
	for _, x := range days {
		if x == d {
			return true
		}
	}
	return false
}
