package llm

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/contas-em-dia/internal/calendar"
	"github.com/Veraticus/contas-em-dia/internal/model"
	"github.com/shopspring/decimal"
)

// Bill parsing errors.
var (
	ErrNoBillAmount = errors.New("bill has no usable amount")
	ErrNoBillDate   = errors.New("bill has no usable date")
)

// cleanMarkdownWrapper strips a ```json fence around a reply.
func cleanMarkdownWrapper(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "```") {
		return content
	}
	content = strings.TrimPrefix(content, "```")
	if nl := strings.IndexByte(content, '\n'); nl >= 0 {
		content = content[nl+1:]
	} else {
		content = strings.TrimPrefix(content, "json")
	}
	content = strings.TrimSuffix(strings.TrimSpace(content), "```")
	return strings.TrimSpace(content)
}

// flexAmount accepts 12.5, "12.5", "12,50" and "R$ 1.234,56".
type flexAmount struct {
	decimal.Decimal
	set bool
}

func (a *flexAmount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	if data[0] != '"' {
		if err := a.Decimal.UnmarshalJSON(data); err != nil {
			return err
		}
		a.set = true
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	d, err := parseLooseAmount(s)
	if err != nil {
		return err
	}
	a.Decimal, a.set = d, true
	return nil
}

func parseLooseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "R$"))
	s = strings.ReplaceAll(s, " ", "")
	if strings.Contains(s, ",") {
		// Brazilian format: dots group thousands, comma marks decimals.
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	return decimal.NewFromString(s)
}

type billPayload struct {
	Description string     `json:"description"`
	Date        string     `json:"date"`
	DueDate     string     `json:"dueDate"`
	Category    string     `json:"category"`
	Amount      flexAmount `json:"amount"`
}

// parseBillDraft turns a model reply into a draft expense. A missing due
// date defaults to the issue date; a category outside categories becomes
// Outros when that is available.
func parseBillDraft(content string, categories []string) (*model.BillDraft, error) {
	var p billPayload
	if err := json.Unmarshal([]byte(cleanMarkdownWrapper(content)), &p); err != nil {
		return nil, fmt.Errorf("failed to parse bill JSON: %w", err)
	}

	if !p.Amount.set || !p.Amount.IsPositive() {
		return nil, ErrNoBillAmount
	}

	date, err := calendar.Parse(p.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoBillDate, err)
	}

	draft := &model.BillDraft{
		Description: strings.TrimSpace(p.Description),
		Amount:      p.Amount.Decimal,
		Date:        date,
		Category:    pickCategory(strings.TrimSpace(p.Category), categories),
		Type:        model.TypeExpense,
	}

	due := date
	if p.DueDate != "" {
		if parsed, err := calendar.Parse(p.DueDate); err == nil {
			due = parsed
		}
	}
	draft.DueDate = &due
	return draft, nil
}

func pickCategory(name string, categories []string) string {
	for _, c := range categories {
		if c == name {
			return name
		}
	}
	for _, c := range categories {
		if strings.EqualFold(c, name) {
			return c
		}
	}
	for _, c := range categories {
		if c == model.CategoryOther {
			return c
		}
	}
	return name
}
