package classification

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/Veraticus/contas-em-dia/internal/model"
)

// Rule maps descriptions matching Regex onto Category. An empty Type
// matches both incomes and expenses.
type Rule struct {
	Name     string
	Category string
	Regex    string
	Type     model.TransactionType
	Priority int
}

type compiledRule struct {
	re *regexp.Regexp
	Rule
}

// Categorizer assigns categories to imported transactions by description.
// It is immutable after construction and safe for concurrent use.
type Categorizer struct {
	rules []compiledRule
}

// NewCategorizer compiles rules, case-insensitively, checking higher
// priorities first.
func NewCategorizer(rules []Rule) (*Categorizer, error) {
	compiled := make([]compiledRule, 0, len(rules))
	for _, r := range rules {
		expr := r.Regex
		if !strings.HasPrefix(expr, "(?i)") {
			expr = "(?i)" + expr
		}
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("failed to compile rule %s: %w", r.Name, err)
		}
		compiled = append(compiled, compiledRule{Rule: r, re: re})
	}

	sort.SliceStable(compiled, func(i, j int) bool {
		return compiled[i].Priority > compiled[j].Priority
	})
	return &Categorizer{rules: compiled}, nil
}

// Match returns the first rule matching t.
func (c *Categorizer) Match(t model.Transaction) (Rule, bool) {
	for _, r := range c.rules {
		if r.Type != "" && r.Type != t.Type {
			continue
		}
		if r.re.MatchString(t.Description) {
			return r.Rule, true
		}
	}
	return Rule{}, false
}

// Categorize rewrites the category of each transaction a rule matches,
// skipping rules whose category is not in allowed. It returns how many
// transactions changed.
func (c *Categorizer) Categorize(txns []model.Transaction, allowed []string) int {
	permitted := make(map[string]bool, len(allowed))
	for _, name := range allowed {
		permitted[name] = true
	}

	changed := 0
	for i := range txns {
		r, ok := c.Match(txns[i])
		if !ok || !permitted[r.Category] || txns[i].Category == r.Category {
			continue
		}
		txns[i].Category = r.Category
		changed++
	}
	return changed
}
