package core

// FallbackCategory labels expenses whose category is somehow empty when
// they reach aggregation. They are kept under this bucket, never dropped.
const FallbackCategory = "Uncategorized"

// CategoryTotal represents an amount aggregated by category name.
type CategoryTotal struct {
	Name   string
	Amount Money
}

// Summary is the aggregate view over a filtered set of expenses.
type Summary struct {
	Total      Money
	ByCategory []CategoryTotal
}

// Aggregate reduces expenses to a grand total plus per-category subtotals.
// Categories appear in ByCategory in order of first encounter, which
// governs display order. Category names are matched verbatim: no trimming,
// no case folding.
func Aggregate(expenses []Expense) Summary {
	var s Summary
	index := make(map[string]int, len(expenses))
	for _, e := range expenses {
		s.Total.Cents += e.Amount.Cents
		name := e.Category
		if name == "" {
			name = FallbackCategory
		}
		i, ok := index[name]
		if !ok {
			i = len(s.ByCategory)
			index[name] = i
			s.ByCategory = append(s.ByCategory, CategoryTotal{Name: name})
		}
		s.ByCategory[i].Amount.Cents += e.Amount.Cents
	}
	return s
}
