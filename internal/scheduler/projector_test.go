package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextOccurrence(t *testing.T) {
	monWed := []time.Weekday{time.Monday, time.Wednesday}

	tests := []struct {
		name string
		from string
		days []time.Weekday
		want string
	}{
		{name: "tuesday to next wednesday", from: "2026-11-03", days: monWed, want: "2026-11-04"},
		{name: "wednesday to next monday", from: "2026-11-04", days: monWed, want: "2026-11-09"},
		{name: "same weekday is a full week later", from: "2026-11-02", days: []time.Weekday{time.Monday}, want: "2026-11-09"},
		{name: "contest after friday skips weekend", from: "2026-11-06", days: ContestDays, want: "2026-11-09"},
		{name: "crosses month boundary", from: "2026-11-30", days: []time.Weekday{time.Tuesday}, want: "2026-12-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from := mustDate(t, tt.from)
			got, err := NextOccurrence(from, tt.days)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Format("2006-01-02"))
			assert.True(t, got.After(from))
		})
	}
}

func TestNextOccurrence_NoMatch(t *testing.T) {
	from := mustDate(t, "2026-11-02")

	_, err := NextOccurrence(from, nil)
	assert.ErrorIs(t, err, ErrNoMatchingWeekday)

	_, err = NextOccurrence(from, []time.Weekday{time.Weekday(9)})
	assert.ErrorIs(t, err, ErrNoMatchingWeekday)
}
