// Package alerts derives the in-app notification banners: overdue bills,
// bills due soon, and reminders scheduled for today.
//
// Derive is pure. It sends nothing and remembers nothing between calls, so
// the same inputs always produce the same alerts.
package alerts

import (
	"github.com/Veraticus/contas-em-dia/internal/calendar"
	"github.com/Veraticus/contas-em-dia/internal/classification"
	"github.com/Veraticus/contas-em-dia/internal/model"
)

// Alerts groups everything that needs the user's attention today.
type Alerts struct {
	Overdue []model.Transaction
	DueSoon []model.Transaction
	Firing  []model.Reminder
}

// Empty reports whether there is nothing to show.
func (a Alerts) Empty() bool {
	return a.Count() == 0
}

// Count is the total number of alert entries.
func (a Alerts) Count() int {
	return len(a.Overdue) + len(a.DueSoon) + len(a.Firing)
}

// Derive scans unpaid expenses and active reminders against today. Input
// order is preserved in every list.
func Derive(txns []model.Transaction, reminders []model.Reminder, today calendar.Date) Alerts {
	var a Alerts
	for _, t := range txns {
		switch classification.ClassifyDeadline(t, today) {
		case classification.Overdue:
			a.Overdue = append(a.Overdue, t.Clone())
		case classification.DueSoon:
			a.DueSoon = append(a.DueSoon, t.Clone())
		}
	}
	for _, r := range reminders {
		if Fires(r, today) {
			a.Firing = append(a.Firing, r.Clone())
		}
	}
	return a
}
