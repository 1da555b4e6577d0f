package model

import (
	"errors"
	"strings"
)

// Default category labels. The labels are user-facing text; nothing depends
// on their exact spelling beyond membership in the default set.
const (
	CategoryFood          = "Alimentação"
	CategoryTransport     = "Transporte"
	CategoryHousing       = "Moradia"
	CategoryUtilities     = "Contas (Luz/Água)"
	CategoryEntertainment = "Lazer"
	CategoryHealth        = "Saúde"
	CategorySalary        = "Salário"
	CategoryInvestment    = "Investimento"
	CategoryOther         = "Outros"
)

var (
	// ErrEmptyCategory is returned for blank category labels.
	ErrEmptyCategory = errors.New("category name cannot be empty")
	// ErrCategoryNotFound is returned when renaming a label that is not in the set.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrCategoryExists is returned when renaming onto a label already in the set.
	ErrCategoryExists = errors.New("category already exists")
)

var defaultCategories = []string{
	CategoryFood,
	CategoryTransport,
	CategoryHousing,
	CategoryUtilities,
	CategoryEntertainment,
	CategoryHealth,
	CategorySalary,
	CategoryInvestment,
	CategoryOther,
}

// DefaultCategories returns a fresh copy of the initial category set.
func DefaultCategories() []string {
	return append([]string(nil), defaultCategories...)
}

// IsDefaultCategory reports whether name belongs to the initial set.
func IsDefaultCategory(name string) bool {
	return containsCategory(defaultCategories, name)
}

// AddCategory returns the set with name appended. Adding a label that is
// already present returns the set unchanged and false.
func AddCategory(set []string, name string) ([]string, bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return set, false, ErrEmptyCategory
	}
	if containsCategory(set, name) {
		return set, false, nil
	}
	out := make([]string, 0, len(set)+1)
	out = append(out, set...)
	return append(out, name), true, nil
}

// RemoveCategory returns the set without name. Transactions are not
// touched: any that still reference name become orphaned.
func RemoveCategory(set []string, name string) ([]string, bool) {
	out := make([]string, 0, len(set))
	removed := false
	for _, c := range set {
		if c == name {
			removed = true
			continue
		}
		out = append(out, c)
	}
	return out, removed
}

// RenameCategory replaces oldName with newName in the set and in every
// transaction whose category equals oldName. It returns new slices and the
// number of transactions updated; the inputs are not modified.
func RenameCategory(set []string, txns []Transaction, oldName, newName string) ([]string, []Transaction, int, error) {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return nil, nil, 0, ErrEmptyCategory
	}
	if !containsCategory(set, oldName) {
		return nil, nil, 0, ErrCategoryNotFound
	}
	if newName != oldName && containsCategory(set, newName) {
		return nil, nil, 0, ErrCategoryExists
	}

	nextSet := make([]string, len(set))
	for i, c := range set {
		if c == oldName {
			c = newName
		}
		nextSet[i] = c
	}

	nextTxns := CloneTransactions(txns)
	updated := 0
	for i := range nextTxns {
		if nextTxns[i].Category == oldName {
			nextTxns[i].Category = newName
			updated++
		}
	}
	return nextSet, nextTxns, updated, nil
}

// OrphanedCategories lists, in first-seen order, category strings referenced
// by transactions but absent from set.
func OrphanedCategories(txns []Transaction, set []string) []string {
	seen := make(map[string]bool)
	var orphans []string
	for _, t := range txns {
		if t.Category == "" || seen[t.Category] {
			continue
		}
		seen[t.Category] = true
		if !containsCategory(set, t.Category) {
			orphans = append(orphans, t.Category)
		}
	}
	return orphans
}

func containsCategory(set []string, name string) bool {
	for _, c := range set {
		if c == name {
			return true
		}
	}
	return false
}
