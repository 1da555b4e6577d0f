package alerts

import (
	"fmt"

	"github.com/Veraticus/contas-em-dia/internal/calendar"
	"github.com/Veraticus/contas-em-dia/internal/model"
)

// ScheduleMatcher decides whether a reminder's recurrence rule matches a day.
// Each frequency has its own implementation.
type ScheduleMatcher interface {
	Matches(r model.Reminder, today calendar.Date) bool
}

// DailyMatcher matches every day.
type DailyMatcher struct{}

// Matches always returns true.
func (DailyMatcher) Matches(model.Reminder, calendar.Date) bool {
	return true
}

// WeeklyMatcher matches when the reminder's weekday is today's weekday.
type WeeklyMatcher struct{}

// Matches compares DayOfWeek (0 = Sunday) with today.
func (WeeklyMatcher) Matches(r model.Reminder, today calendar.Date) bool {
	return r.DayOfWeek != nil && *r.DayOfWeek == int(today.Weekday())
}

// MonthlyMatcher matches when the reminder's day of month is today's.
// A reminder on the 31st does not fire in shorter months.
type MonthlyMatcher struct{}

// Matches compares DayOfMonth with today.
func (MonthlyMatcher) Matches(r model.Reminder, today calendar.Date) bool {
	return r.DayOfMonth != nil && *r.DayOfMonth == today.Day
}

// MatcherFor returns the matcher for a frequency.
func MatcherFor(frequency model.Frequency) (ScheduleMatcher, error) {
	switch frequency {
	case model.FrequencyDaily:
		return DailyMatcher{}, nil
	case model.FrequencyWeekly:
		return WeeklyMatcher{}, nil
	case model.FrequencyMonthly:
		return MonthlyMatcher{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", model.ErrInvalidFrequency, frequency)
	}
}

// Fires reports whether r is active and scheduled for today. Reminders with
// an unknown frequency never fire.
func Fires(r model.Reminder, today calendar.Date) bool {
	if !r.IsActive {
		return false
	}
	m, err := MatcherFor(r.Frequency)
	if err != nil {
		return false
	}
	return m.Matches(r, today)
}
