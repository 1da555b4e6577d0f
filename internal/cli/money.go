package cli

import (
	"fmt"
	"strings"

	"github.com/Veraticus/contas-em-dia/internal/calendar"
	"github.com/Veraticus/contas-em-dia/internal/model"
	"github.com/shopspring/decimal"
)

// FormatBRL renders an amount as Brazilian reais: R$ 1.234,56.
func FormatBRL(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}

	fixed := amount.StringFixed(2)
	intPart, frac, _ := strings.Cut(fixed, ".")

	var grouped strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			grouped.WriteByte('.')
		}
		grouped.WriteRune(r)
	}
	return sign + "R$ " + grouped.String() + "," + frac
}

// FormatSigned prefixes income with + and expenses with -.
func FormatSigned(t model.Transaction) string {
	if t.Type == model.TypeIncome {
		return "+" + FormatBRL(t.Amount)
	}
	return "-" + FormatBRL(t.Amount)
}

// FormatDate renders a date as DD/MM/YYYY.
func FormatDate(d calendar.Date) string {
	if d.IsZero() {
		return ""
	}
	return fmt.Sprintf("%02d/%02d/%04d", d.Day, int(d.Month), d.Year)
}

// ParseBRL accepts 1234.56, 1234,56 and R$ 1.234,56.
func ParseBRL(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "R$"))
	s = strings.ReplaceAll(s, " ", "")
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	return decimal.NewFromString(s)
}
