package scheduler

import (
	"cohort_backend/internal/model"
	"cohort_backend/internal/util"
	"fmt"
	"time"
)

// DateChange 一节课的新日期
type DateChange struct {
	ID   int
	Date time.Time
	Day  string
}

func (c DateChange) DateString() string {
	return util.FormatDate(c.Date)
}

// ShiftPlan 调课计算结果，Changes 第一项为被调整的课
type ShiftPlan struct {
	TargetIndex int
	Target      model.ClassSession
	Pattern     []time.Weekday
	Changes     []DateChange
}

// PlanShift 把 targetID 移到 newDate，并顺延其后的所有课程。
// sessions 必须按 (week_number, session_number) 排好序，"其后"以这个顺序为准，
// 而不是按日期。之前的课程保持不变。
func PlanShift(sessions []model.ClassSession, targetID int, newDate time.Time) (*ShiftPlan, error) {
	targetIndex := -1
	for i, s := range sessions {
		if s.ID == targetID {
			targetIndex = i
			break
		}
	}
	if targetIndex < 0 {
		return nil, fmt.Errorf("%w: id %d", util.ErrSessionNotFound, targetID)
	}

	pattern := DetectDayPattern(sessions)

	changes := make([]DateChange, 0, len(sessions)-targetIndex)
	changes = append(changes, DateChange{
		ID:   targetID,
		Date: newDate,
		Day:  newDate.Weekday().String(),
	})

	prev := newDate
	for _, s := range sessions[targetIndex+1:] {
		days := pattern
		if s.IsContest() {
			days = ContestDays
		}

		next, err := NextOccurrence(prev, days)
		if err != nil {
			return nil, fmt.Errorf("project session %d: %w", s.ID, err)
		}

		changes = append(changes, DateChange{
			ID:   s.ID,
			Date: next,
			Day:  next.Weekday().String(),
		})
		prev = next
	}

	return &ShiftPlan{
		TargetIndex: targetIndex,
		Target:      sessions[targetIndex],
		Pattern:     pattern,
		Changes:     changes,
	}, nil
}
