package model

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Frequency is the recurrence rule of a reminder.
type Frequency string

const (
	// FrequencyDaily fires every day.
	FrequencyDaily Frequency = "daily"
	// FrequencyWeekly fires on one day of the week.
	FrequencyWeekly Frequency = "weekly"
	// FrequencyMonthly fires on one day of the month.
	FrequencyMonthly Frequency = "monthly"
)

// DefaultReminderTime is used when no time is given.
const DefaultReminderTime = "09:00"

// Reminder validation errors.
var (
	ErrEmptyTitle        = errors.New("reminder title cannot be empty")
	ErrInvalidFrequency  = errors.New("invalid reminder frequency")
	ErrInvalidDayOfWeek  = errors.New("day of week must be between 0 (Sunday) and 6 (Saturday)")
	ErrInvalidDayOfMonth = errors.New("day of month must be between 1 and 31")
	ErrInvalidTime       = errors.New("time must be HH:MM")
)

// ParseFrequency accepts "daily", "weekly" or "monthly" in any case.
func ParseFrequency(s string) (Frequency, error) {
	f := Frequency(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidFrequency, s)
	}
}

// Reminder is a recurring notification rule. It is not linked to any
// transaction; Amount is informational only.
type Reminder struct {
	Amount     *decimal.Decimal `json:"amount,omitempty"`
	DayOfWeek  *int             `json:"dayOfWeek,omitempty"`
	DayOfMonth *int             `json:"dayOfMonth,omitempty"`
	ID         string           `json:"id"`
	Title      string           `json:"title"`
	Frequency  Frequency        `json:"frequency"`
	Time       string           `json:"time"`
	IsActive   bool             `json:"isActive"`
}

// ReminderInput carries the user-supplied fields of a new reminder.
type ReminderInput struct {
	Amount     *decimal.Decimal
	Title      string
	Frequency  Frequency
	Time       string
	DayOfWeek  int
	DayOfMonth int
}

// NewReminder validates input and builds an active reminder with a fresh ID.
// Only the day field matching the frequency is kept.
func NewReminder(in ReminderInput) (Reminder, error) {
	r := Reminder{
		ID:        uuid.NewString(),
		Title:     strings.TrimSpace(in.Title),
		Frequency: in.Frequency,
		Time:      strings.TrimSpace(in.Time),
		IsActive:  true,
	}
	if r.Time == "" {
		r.Time = DefaultReminderTime
	}
	if in.Amount != nil && !in.Amount.IsZero() {
		amount := *in.Amount
		r.Amount = &amount
	}

	switch in.Frequency {
	case FrequencyWeekly:
		day := in.DayOfWeek
		r.DayOfWeek = &day
	case FrequencyMonthly:
		day := in.DayOfMonth
		r.DayOfMonth = &day
	}

	if err := r.Validate(); err != nil {
		return Reminder{}, err
	}
	return r, nil
}

// Validate checks the reminder invariants.
func (r Reminder) Validate() error {
	if r.ID == "" {
		return ErrMissingID
	}
	if r.Title == "" {
		return ErrEmptyTitle
	}
	if r.Amount != nil && !r.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if _, err := time.Parse("15:04", r.Time); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTime, r.Time)
	}

	switch r.Frequency {
	case FrequencyDaily:
	case FrequencyWeekly:
		if r.DayOfWeek == nil || *r.DayOfWeek < 0 || *r.DayOfWeek > 6 {
			return ErrInvalidDayOfWeek
		}
	case FrequencyMonthly:
		if r.DayOfMonth == nil || *r.DayOfMonth < 1 || *r.DayOfMonth > 31 {
			return ErrInvalidDayOfMonth
		}
	default:
		return fmt.Errorf("%w: %q", ErrInvalidFrequency, r.Frequency)
	}
	return nil
}

// Clone returns a deep copy of r.
func (r Reminder) Clone() Reminder {
	if r.Amount != nil {
		amount := *r.Amount
		r.Amount = &amount
	}
	if r.DayOfWeek != nil {
		day := *r.DayOfWeek
		r.DayOfWeek = &day
	}
	if r.DayOfMonth != nil {
		day := *r.DayOfMonth
		r.DayOfMonth = &day
	}
	return r
}

// CloneReminders deep-copies a slice of reminders.
func CloneReminders(reminders []Reminder) []Reminder {
	if reminders == nil {
		return nil
	}
	out := make([]Reminder, len(reminders))
	for i, r := range reminders {
		out[i] = r.Clone()
	}
	return out
}
