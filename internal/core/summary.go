package core

import "sort"

// MonthTotal aggregates one calendar month of entries.
type MonthTotal struct {
	Month   string // YYYY-MM
	Income  Money
	Expense Money
	Net     Money
}

// Balance sums income minus expense over the given entries. The result
// may be negative.
func Balance(entries []Entry) Money {
	var cents int64
	for _, e := range entries {
		if e.Type == Expense {
			cents -= e.Amount.Cents
		} else {
			cents += e.Amount.Cents
		}
	}
	return Money{Cents: cents}
}

// MonthlySummary groups entries by year-month and sums income and
// expense per group, most recent month first. An entry whose date does
// not yield a month keys under the current month so totals are never
// silently dropped.
func MonthlySummary(entries []Entry) []MonthTotal {
	totals := make(map[string]*MonthTotal)
	for _, e := range entries {
		key := monthKey(e.Date)
		mt, ok := totals[key]
		if !ok {
			mt = &MonthTotal{Month: key}
			totals[key] = mt
		}
		if e.Type == Expense {
			mt.Expense.Cents += e.Amount.Cents
		} else {
			mt.Income.Cents += e.Amount.Cents
		}
	}

	months := make([]string, 0, len(totals))
	for m := range totals {
		months = append(months, m)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(months)))

	out := make([]MonthTotal, 0, len(months))
	for _, m := range months {
		mt := totals[m]
		mt.Net = Money{Cents: mt.Income.Cents - mt.Expense.Cents}
		out = append(out, *mt)
	}
	return out
}

func monthKey(date string) string {
	if _, err := ParseDay(date); err != nil {
		return Today()[:7]
	}
	return date[:7]
}

// Categories returns the distinct categories present in the entries,
// in first-seen order. The presentation layer uses it to build its
// filter choices.
func Categories(entries []Entry) []string {
	seen := make(map[string]struct{}, len(entries))
	var out []string
	for _, e := range entries {
		if _, ok := seen[e.Category]; ok {
			continue
		}
		seen[e.Category] = struct{}{}
		out = append(out, e.Category)
	}
	return out
}
