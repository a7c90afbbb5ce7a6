package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"naver-booking-notifier/models"
)

var testRef = time.Date(2026, 3, 1, 8, 0, 0, 0, KST)

func TestResolveAppointment(t *testing.T) {
	cases := []struct {
		input      string
		wantHour   int
		wantMinute int
	}{
		{"오후 12:00", 12, 0},
		{"오전 12:00", 0, 0},
		{"오후 1:05", 13, 5},
		{"오전 11:59", 11, 59},
		{"오전 1:00", 1, 0},
		{"오후 11:15", 23, 15},
	}
	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ResolveAppointment(tc.input, testRef)
			require.NoError(t, err)
			assert.Equal(t, tc.wantHour, got.Hour())
			assert.Equal(t, tc.wantMinute, got.Minute())
			// Same KST date as the reference.
			assert.Equal(t, testRef.Year(), got.Year())
			assert.Equal(t, testRef.Month(), got.Month())
			assert.Equal(t, testRef.Day(), got.Day())
		})
	}
}

func TestResolveAppointmentRejectsBadInput(t *testing.T) {
	for _, input := range []string{
		"", "15:15", "PM 3:15", "오후 13:00", "오후 0:30", "오후 3:75", "오후3:15a",
	} {
		t.Run(input, func(t *testing.T) {
			_, err := ResolveAppointment(input, testRef)
			var pe *models.ParseError
			require.ErrorAs(t, err, &pe)
		})
	}
}

func TestResolveAppointmentRoundTrip(t *testing.T) {
	// Formatting the resolved hour back to 12-hour form reproduces the input.
	for _, input := range []string{"오전 12:00", "오전 7:45", "오후 12:00", "오후 9:05"} {
		resolved, err := ResolveAppointment(input, testRef)
		require.NoError(t, err)
		assert.Equal(t, input, to12Hour(resolved))
	}
}

func to12Hour(t time.Time) string {
	marker := "오전"
	hour := t.Hour()
	if hour >= 12 {
		marker = "오후"
		if hour > 12 {
			hour -= 12
		}
	} else if hour == 0 {
		hour = 12
	}
	return fmt.Sprintf("%s %d:%02d", marker, hour, t.Minute())
}

func TestReminderWindow(t *testing.T) {
	appointment := time.Date(2026, 3, 1, 15, 0, 0, 0, KST)
	lead := 60 * time.Minute
	margin := 120 * time.Second

	now := time.Date(2026, 3, 1, 10, 0, 0, 0, KST)
	win := ReminderWindow(appointment, lead, margin, now)
	assert.True(t, win.Feasible)
	assert.Equal(t, time.Date(2026, 3, 1, 14, 0, 0, 0, KST), win.ScheduledAt)
	assert.Equal(t, 4*time.Hour, win.Remaining)

	// Too close to the scheduled instant.
	now = time.Date(2026, 3, 1, 13, 58, 30, 0, KST)
	win = ReminderWindow(appointment, lead, margin, now)
	assert.False(t, win.Feasible)
	assert.Equal(t, 90*time.Second, win.Remaining)
}

func TestReminderWindowFeasibilityIsMonotonicInNow(t *testing.T) {
	appointment := time.Date(2026, 3, 1, 15, 0, 0, 0, KST)
	lead := 30 * time.Minute
	margin := 120 * time.Second

	flips := 0
	prev := true
	for offset := -10 * time.Minute; offset <= 10*time.Minute; offset += 10 * time.Second {
		now := appointment.Add(-lead - margin).Add(offset)
		feasible := ReminderWindow(appointment, lead, margin, now).Feasible
		if feasible != prev {
			flips++
			assert.False(t, feasible, "feasibility must only flip from true to false")
		}
		prev = feasible
	}
	assert.Equal(t, 1, flips)
}

func TestFormatBookingDate(t *testing.T) {
	ref := time.Date(2026, 3, 1, 8, 0, 0, 0, KST)
	assert.Equal(t, "3월 1일 오후 3:15", FormatBookingDate("오후 3:15", ref))

	// A UTC reference still formats on the KST calendar date.
	utcRef := time.Date(2026, 2, 28, 16, 30, 0, 0, time.UTC) // 2026-03-01 01:30 KST
	assert.Equal(t, "3월 1일 오전 9:00", FormatBookingDate("오전 9:00", utcRef))
}

func TestResolveAppointmentUsesKSTDate(t *testing.T) {
	// 2026-02-28 16:30 UTC is already 03-01 in KST; the appointment must land
	// on the KST date.
	utcRef := time.Date(2026, 2, 28, 16, 30, 0, 0, time.UTC)
	got, err := ResolveAppointment("오전 9:00", utcRef)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 1, 9, 0, 0, 0, KST), got)
}
