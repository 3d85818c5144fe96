package scheduler

import (
	"cohort_backend/internal/model"
	"cohort_backend/internal/util"
	"fmt"
	"sort"
	"time"
)

// Numbering 重排后的周次/课次
type Numbering struct {
	ID            int  `json:"id"`
	WeekNumber    int  `json:"week_number"`
	SessionNumber int  `json:"session_number"`
	Changed       bool `json:"-"`
}

// Renumber 按滚动周重排：每周从该周第一节课的日期起算 7 天，
// 距周首日 >= 7 天的课开启新的一周，课次从 1 重新计数。
// sessions 需按日期升序。日期无法解析时返回 util.ErrCorruptSchedule。
func Renumber(sessions []model.ClassSession) ([]Numbering, error) {
	result := make([]Numbering, 0, len(sessions))
	if len(sessions) == 0 {
		return result, nil
	}

	week, pos := 1, 0
	var weekStart time.Time

	for i, s := range sessions {
		date, err := util.ParseDate(s.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: session %d: %v", util.ErrCorruptSchedule, s.ID, err)
		}

		if i == 0 {
			weekStart = date
		} else if util.DaysBetween(weekStart, date) >= 7 {
			week++
			pos = 0
			weekStart = date
		}
		pos++

		result = append(result, Numbering{
			ID:            s.ID,
			WeekNumber:    week,
			SessionNumber: pos,
			Changed:       s.WeekNumber != week || s.SessionNumber != pos,
		})
	}

	return result, nil
}

// SortByDate 按日期稳定排序，同一天保持原有顺序
func SortByDate(sessions []model.ClassSession) {
	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].Date < sessions[j].Date
	})
}

// ChangedOnly 只保留需要写库的条目
func ChangedOnly(numbering []Numbering) []Numbering {
	changed := make([]Numbering, 0, len(numbering))
	for _, n := range numbering {
		if n.Changed {
			changed = append(changed, n)
		}
	}
	return changed
}
