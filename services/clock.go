// services/clock.go
package services

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"naver-booking-notifier/models"
)

// KST is the business timezone. Every "now" and every date boundary is
// computed here, never in the host zone.
var KST = time.FixedZone("KST", 9*60*60)

type Clock interface {
	Now() time.Time
}

type kstClock struct{}

func (kstClock) Now() time.Time { return time.Now().In(KST) }

func NewClock() Clock { return kstClock{} }

var timeOfDayPattern = regexp.MustCompile(`^(오전|오후)\s+(\d{1,2}):(\d{2})$`)

// ResolveAppointment turns a dashboard time like "오후 3:15" into an absolute
// KST timestamp on ref's date. 오전 12 is midnight, 오후 12 is noon.
func ResolveAppointment(timeOfDay string, ref time.Time) (time.Time, error) {
	m := timeOfDayPattern.FindStringSubmatch(strings.TrimSpace(timeOfDay))
	if m == nil {
		return time.Time{}, &models.ParseError{Input: timeOfDay}
	}
	hour, _ := strconv.Atoi(m[2])
	minute, _ := strconv.Atoi(m[3])
	if hour < 1 || hour > 12 || minute > 59 {
		return time.Time{}, &models.ParseError{Input: timeOfDay}
	}
	if m[1] == "오전" {
		if hour == 12 {
			hour = 0
		}
	} else if hour != 12 {
		hour += 12
	}
	ref = ref.In(KST)
	return time.Date(ref.Year(), ref.Month(), ref.Day(), hour, minute, 0, 0, KST), nil
}

// FormatBookingDate renders the message variable "3월 1일 오후 3:15".
func FormatBookingDate(timeOfDay string, ref time.Time) string {
	ref = ref.In(KST)
	return fmt.Sprintf("%d월 %d일 %s", int(ref.Month()), ref.Day(), timeOfDay)
}

// Window is the scheduling decision for one reminder.
type Window struct {
	ScheduledAt time.Time
	Feasible    bool
	Remaining   time.Duration
}

// ReminderWindow places the reminder lead before the appointment and refuses
// anything closer than minMargin to now. The provider fires near-future
// schedules immediately instead of honoring the delay, so the margin is not
// optional.
func ReminderWindow(appointment time.Time, lead, minMargin time.Duration, now time.Time) Window {
	scheduledAt := appointment.Add(-lead)
	remaining := scheduledAt.Sub(now)
	return Window{
		ScheduledAt: scheduledAt,
		Feasible:    remaining >= minMargin,
		Remaining:   remaining,
	}
}
