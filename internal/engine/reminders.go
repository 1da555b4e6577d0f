package engine

import (
	"context"
	"fmt"

	"github.com/Veraticus/contas-em-dia/internal/common"
	"github.com/Veraticus/contas-em-dia/internal/model"
	"github.com/Veraticus/contas-em-dia/internal/storage"
)

// AddReminder validates in and appends the new reminder.
func (e *Engine) AddReminder(ctx context.Context, in model.ReminderInput) (model.Reminder, error) {
	r, err := model.NewReminder(in)
	if err != nil {
		return model.Reminder{}, err
	}

	err = e.mutate(ctx, func(next *storage.State) error {
		next.Reminders = append(next.Reminders, r)
		return nil
	}, e.saveReminders)
	if err != nil {
		return model.Reminder{}, err
	}
	return r.Clone(), nil
}

// RemoveReminder deletes the reminder with the given id.
func (e *Engine) RemoveReminder(ctx context.Context, id string) error {
	return e.mutate(ctx, func(next *storage.State) error {
		i := indexOfReminder(next.Reminders, id)
		if i < 0 {
			return reminderNotFound(id)
		}
		next.Reminders = append(next.Reminders[:i], next.Reminders[i+1:]...)
		return nil
	}, e.saveReminders)
}

// ToggleReminder flips whether a reminder is active.
func (e *Engine) ToggleReminder(ctx context.Context, id string) (model.Reminder, error) {
	var updated model.Reminder
	err := e.mutate(ctx, func(next *storage.State) error {
		i := indexOfReminder(next.Reminders, id)
		if i < 0 {
			return reminderNotFound(id)
		}
		next.Reminders[i].IsActive = !next.Reminders[i].IsActive
		updated = next.Reminders[i].Clone()
		return nil
	}, e.saveReminders)
	if err != nil {
		return model.Reminder{}, err
	}
	return updated, nil
}

// SaveProfile validates and stores the user profile.
func (e *Engine) SaveProfile(ctx context.Context, p model.UserProfile) (model.UserProfile, error) {
	if err := p.Validate(); err != nil {
		return model.UserProfile{}, err
	}
	err := e.mutate(ctx, func(next *storage.State) error {
		next.Profile = p
		return nil
	}, e.saveProfile)
	if err != nil {
		return model.UserProfile{}, err
	}
	return p, nil
}

func indexOfReminder(reminders []model.Reminder, id string) int {
	for i, r := range reminders {
		if r.ID == id {
			return i
		}
	}
	return -1
}

func reminderNotFound(id string) error {
	return fmt.Errorf("reminder %s: %w", id, common.ErrNotFound)
}
