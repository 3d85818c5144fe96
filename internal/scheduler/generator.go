package scheduler

import (
	"cohort_backend/internal/model"
	"cohort_backend/internal/util"
	"time"
)

// Generate 建班时生成初始课表：从 start 当天（若是上课日）或之后第一个上课日开始，
// 依次排 count 节课，并按滚动周编号。
func Generate(start time.Time, days []time.Weekday, count int) ([]model.ClassSession, error) {
	sessions := make([]model.ClassSession, 0, count)
	if count <= 0 {
		return sessions, nil
	}

	date := start
	if !containsWeekday(days, start.Weekday()) {
		next, err := NextOccurrence(start, days)
		if err != nil {
			return nil, err
		}
		date = next
	}

	for i := 0; i < count; i++ {
		if i > 0 {
			next, err := NextOccurrence(date, days)
			if err != nil {
				return nil, err
			}
			date = next
		}
		sessions = append(sessions, model.ClassSession{
			ID:   i + 1,
			Date: util.FormatDate(date),
			Day:  date.Weekday().String(),
		})
	}

	numbering, err := Renumber(sessions)
	if err != nil {
		return nil, err
	}
	for i, n := range numbering {
		sessions[i].WeekNumber = n.WeekNumber
		sessions[i].SessionNumber = n.SessionNumber
	}

	return sessions, nil
}
