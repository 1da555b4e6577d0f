// Package classification derives the temporal status of transactions (where
// their date sits relative to today and how urgent an unpaid bill is) and
// guesses categories for imported statement lines.
package classification

import (
	"github.com/Veraticus/contas-em-dia/internal/calendar"
	"github.com/Veraticus/contas-em-dia/internal/model"
)

// DueSoonWindow is the number of days after today, inclusive, in which an
// unpaid expense counts as due soon.
const DueSoonWindow = 3

// TimeClass places a date relative to today.
type TimeClass int

// TimeClass values.
const (
	Past TimeClass = iota
	Today
	Future
)

func (c TimeClass) String() string {
	switch c {
	case Past:
		return "past"
	case Today:
		return "today"
	case Future:
		return "future"
	default:
		return "unknown"
	}
}

// Deadline is the urgency of an unpaid expense.
type Deadline int

// Deadline values.
const (
	None Deadline = iota
	DueSoon
	Overdue
)

func (d Deadline) String() string {
	switch d {
	case None:
		return "none"
	case DueSoon:
		return "due_soon"
	case Overdue:
		return "overdue"
	default:
		return "unknown"
	}
}

// ClassifyTime compares date with today.
func ClassifyTime(date, today calendar.Date) TimeClass {
	switch date.Compare(today) {
	case 1:
		return Future
	case -1:
		return Past
	default:
		return Today
	}
}

// ClassifyDeadline returns the urgency of txn on today. Income and paid
// expenses are always None.
func ClassifyDeadline(txn model.Transaction, today calendar.Date) Deadline {
	if !txn.IsPendingExpense() {
		return None
	}
	return deadlineFor(today.DaysUntil(txn.EffectiveDueDate()))
}

func deadlineFor(diffDays int) Deadline {
	switch {
	case diffDays < 0:
		return Overdue
	case diffDays <= DueSoonWindow:
		return DueSoon
	default:
		return None
	}
}

// Status bundles every temporal fact the presentation layer shows for a
// transaction.
type Status struct {
	Time     TimeClass
	Deadline Deadline
	// DaysUntilDue is measured to the effective due date; negative when late.
	// Only meaningful for pending expenses.
	DaysUntilDue int
	Pending      bool
}

// Describe computes the Status of txn on today.
func Describe(txn model.Transaction, today calendar.Date) Status {
	s := Status{
		Time:     ClassifyTime(txn.Date, today),
		Deadline: ClassifyDeadline(txn, today),
		Pending:  txn.IsPendingExpense(),
	}
	if s.Pending {
		s.DaysUntilDue = today.DaysUntil(txn.EffectiveDueDate())
	}
	return s
}

// Label is the Portuguese status shown next to a transaction.
func (s Status) Label(kind model.TransactionType) string {
	switch {
	case kind == model.TypeIncome:
		return "Recebido"
	case s.Deadline == Overdue:
		return "Atrasado"
	case s.Deadline == DueSoon:
		return "Vence em breve"
	case s.Pending:
		return "Pendente"
	default:
		return "Pago"
	}
}
