package scheduler

import (
	"cohort_backend/internal/model"
	"cohort_backend/internal/util"
)

// PreviewRow 调课预览中的一行
type PreviewRow struct {
	ID          int    `json:"id"`
	OldWeek     int    `json:"oldWeek"`
	OldSession  int    `json:"oldSession"`
	NewWeek     int    `json:"newWeek"`
	NewSession  int    `json:"newSession"`
	SessionType string `json:"session_type"`
	SubjectName string `json:"subject_name"`
	OldDate     string `json:"oldDate"`
	OldDay      string `json:"oldDay"`
	NewDate     string `json:"newDate"`
	NewDay      string `json:"newDay"`
}

// SimulateShift 不落库地模拟整表重排：之前的课保持原日期，被调整及之后的课用新日期，
// 合并后按日期重排周次。只返回被调整的课及其后的课（原顺序）。
func SimulateShift(sessions []model.ClassSession, plan *ShiftPlan) ([]PreviewRow, error) {
	simulated := make([]model.ClassSession, len(sessions))
	copy(simulated, sessions)

	for i, change := range plan.Changes {
		s := &simulated[plan.TargetIndex+i]
		s.Date = change.DateString()
		s.Day = change.Day
	}

	SortByDate(simulated)
	numbering, err := Renumber(simulated)
	if err != nil {
		return nil, err
	}

	byID := make(map[int]Numbering, len(numbering))
	for _, n := range numbering {
		byID[n.ID] = n
	}

	rows := make([]PreviewRow, 0, len(plan.Changes))
	for i, change := range plan.Changes {
		old := sessions[plan.TargetIndex+i]
		n := byID[change.ID]
		rows = append(rows, PreviewRow{
			ID:          old.ID,
			OldWeek:     old.WeekNumber,
			OldSession:  old.SessionNumber,
			NewWeek:     n.WeekNumber,
			NewSession:  n.SessionNumber,
			SessionType: old.SessionType,
			SubjectName: old.SubjectName,
			OldDate:     old.Date,
			OldDay:      old.Day,
			NewDate:     util.FormatDate(change.Date),
			NewDay:      change.Day,
		})
	}

	return rows, nil
}
