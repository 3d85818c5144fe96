package scheduler

import (
	"cohort_backend/internal/model"
	"cohort_backend/internal/util"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// monWedCohort 周一、周三上课，11-13 为一节周五比赛课
func monWedCohort() []model.ClassSession {
	return []model.ClassSession{
		{ID: 1, WeekNumber: 1, SessionNumber: 1, Date: "2026-11-02", Day: "Monday", SessionType: "regular", SubjectName: "Intro"},
		{ID: 2, WeekNumber: 1, SessionNumber: 2, Date: "2026-11-04", Day: "Wednesday", SessionType: "regular", SubjectName: "Arrays"},
		{ID: 3, WeekNumber: 2, SessionNumber: 1, Date: "2026-11-09", Day: "Monday", SessionType: "regular", SubjectName: "Sorting"},
		{ID: 4, WeekNumber: 2, SessionNumber: 2, Date: "2026-11-11", Day: "Wednesday", SessionType: "regular", SubjectName: "Searching"},
		{ID: 5, WeekNumber: 2, SessionNumber: 3, Date: "2026-11-13", Day: "Friday", SessionType: "contest", SubjectName: "Weekly Contest"},
		{ID: 6, WeekNumber: 3, SessionNumber: 1, Date: "2026-11-16", Day: "Monday", SessionType: "regular", SubjectName: "Graphs"},
		{ID: 7, WeekNumber: 3, SessionNumber: 2, Date: "2026-11-18", Day: "Wednesday", SessionType: "regular", SubjectName: "Trees"},
	}
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := util.ParseDate(s)
	require.NoError(t, err)
	return d
}
