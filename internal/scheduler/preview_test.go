package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulateShift(t *testing.T) {
	sessions := monWedCohort()

	plan, err := PlanShift(sessions, 3, mustDate(t, "2026-11-10"))
	require.NoError(t, err)

	rows, err := SimulateShift(sessions, plan)
	require.NoError(t, err)
	require.Len(t, rows, 5)

	assert.Equal(t, PreviewRow{
		ID: 3, OldWeek: 2, OldSession: 1, NewWeek: 2, NewSession: 1,
		SessionType: "regular", SubjectName: "Sorting",
		OldDate: "2026-11-09", OldDay: "Monday", NewDate: "2026-11-10", NewDay: "Tuesday",
	}, rows[0])

	// 第二周从 11-10 起算，11-16 仍在窗口内
	assert.Equal(t, 6, rows[3].ID)
	assert.Equal(t, 3, rows[3].OldWeek)
	assert.Equal(t, 2, rows[3].NewWeek)
	assert.Equal(t, 4, rows[3].NewSession)

	assert.Equal(t, 7, rows[4].ID)
	assert.Equal(t, 3, rows[4].NewWeek)
	assert.Equal(t, 1, rows[4].NewSession)
}

func TestSimulateShift_DoesNotMutateInput(t *testing.T) {
	sessions := monWedCohort()

	plan, err := PlanShift(sessions, 1, mustDate(t, "2026-11-03"))
	require.NoError(t, err)

	_, err = SimulateShift(sessions, plan)
	require.NoError(t, err)
	assert.Equal(t, monWedCohort(), sessions)
}

func TestSimulateShift_EarlierRowsGiveContext(t *testing.T) {
	sessions := monWedCohort()

	// 最后一节移到 11-19，距第三周首日 11-16 只有 3 天
	plan, err := PlanShift(sessions, 7, mustDate(t, "2026-11-19"))
	require.NoError(t, err)

	rows, err := SimulateShift(sessions, plan)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 3, rows[0].NewWeek)
	assert.Equal(t, 2, rows[0].NewSession)
	assert.Equal(t, "Thursday", rows[0].NewDay)
}
