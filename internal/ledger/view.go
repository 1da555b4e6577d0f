package ledger

import "github.com/Veraticus/contas-em-dia/internal/model"

// DefaultPageSize is the number of rows added by each LoadMore.
const DefaultPageSize = 20

// Page is the visible slice of a filtered ledger.
type Page struct {
	Items         []model.Transaction
	FilteredCount int
	HasMore       bool
}

// View holds the filter and paging state of one ledger screen. The zero
// value is not usable; call NewView.
type View struct {
	filters  Filters
	pageSize int
	limit    int
}

// NewView creates a view showing one page. A non-positive pageSize selects
// DefaultPageSize.
func NewView(pageSize int) *View {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &View{
		filters:  Filters{Type: TypeAll},
		pageSize: pageSize,
		limit:    pageSize,
	}
}

// SetStartDate sets the inclusive lower bound. Empty clears it.
func (v *View) SetStartDate(date string) {
	v.filters.StartDate = date
}

// SetEndDate sets the inclusive upper bound. Empty clears it.
func (v *View) SetEndDate(date string) {
	v.filters.EndDate = date
}

// SetTypeFilter sets the type predicate.
func (v *View) SetTypeFilter(f TypeFilter) {
	if f == "" {
		f = TypeAll
	}
	v.filters.Type = f
}

// LoadMore grows the visible window by one page.
func (v *View) LoadMore() {
	v.limit += v.pageSize
}

// ClearFilters resets every predicate and shrinks the window to one page.
func (v *View) ClearFilters() {
	v.filters = Filters{Type: TypeAll}
	v.limit = v.pageSize
}

// Filters returns the current predicates.
func (v *View) Filters() Filters {
	return v.filters
}

// Limit is the current window size.
func (v *View) Limit() int {
	return v.limit
}

// PageSize is the window increment.
func (v *View) PageSize() int {
	return v.pageSize
}

// IsFiltered reports whether any predicate is active.
func (v *View) IsFiltered() bool {
	return !v.filters.IsZero()
}

// Window filters and sorts txns and returns the first Limit rows.
func (v *View) Window(txns []model.Transaction) Page {
	filtered := Apply(txns, v.filters)
	page := Page{
		FilteredCount: len(filtered),
		HasMore:       len(filtered) > v.limit,
	}
	if page.HasMore {
		filtered = filtered[:v.limit]
	}
	page.Items = filtered
	return page
}
