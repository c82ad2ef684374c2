package core

import "time"

// FilterMode selects which expenses are included in the active view.
type FilterMode string

const (
	FilterAll   FilterMode = "all"
	FilterWeek  FilterMode = "week"
	FilterMonth FilterMode = "month"
)

// ParseFilterMode maps a query-string value to a filter mode.
// Unknown or empty values fall back to FilterAll.
func ParseFilterMode(s string) FilterMode {
	switch FilterMode(s) {
	case FilterWeek:
		return FilterWeek
	case FilterMonth:
		return FilterMonth
	default:
		return FilterAll
	}
}

// Matches reports whether an expense dated by the given ISO string falls
// inside the window anchored at now. Weeks run Monday through Sunday.
// Malformed or empty dates never match WEEK or MONTH; ALL matches anything.
func (f FilterMode) Matches(date string, now time.Time) bool {
	if f == FilterAll {
		return true
	}
	d, err := ParseDate(date)
	if err != nil {
		return false
	}
	switch f {
	case FilterWeek:
		// Monday of the current week: time.Weekday is 0=Sunday, so the
		// +6 mod 7 offset keeps Sunday inside the week that started the
		// previous Monday rather than opening a new one.
		offset := (int(now.Weekday()) + 6) % 7
		monday := time.Date(now.Year(), now.Month(), now.Day()-offset, 0, 0, 0, 0, now.Location())
		sunday := monday.AddDate(0, 0, 6)
		day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, now.Location())
		return !day.Before(monday) && !day.After(sunday)
	case FilterMonth:
		return d.Year() == now.Year() && d.Month() == now.Month()
	default:
		return false
	}
}

// Filter returns the expenses matching the mode at the given instant.
// Input order is preserved. FilterAll returns the input unchanged.
func (f FilterMode) Filter(expenses []Expense, now time.Time) []Expense {
	if f == FilterAll {
		return expenses
	}
	out := make([]Expense, 0, len(expenses))
	for _, e := range expenses {
		if f.Matches(e.Date, now) {
			out = append(out, e)
		}
	}
	return out
}
