package core

import "time"

// CategoryAll matches every category.
const CategoryAll = "all"

// Criteria selects a subset of entries. Zero-value fields are unset;
// set fields compose conjunctively.
type Criteria struct {
	Start    string // inclusive lower bound, YYYY-MM-DD
	End      string // inclusive upper bound, YYYY-MM-DD
	Category string // exact match; empty or CategoryAll matches everything
}

// Select returns the entries matching c, preserving input order. Bounds
// are compared as local calendar dates; the end bound extends to the
// last instant of its day so an entry dated exactly End is included.
// A bound that does not parse as a date is treated as unset.
func Select(entries []Entry, c Criteria) []Entry {
	var start, end time.Time
	haveStart, haveEnd := false, false
	if c.Start != "" {
		if t, err := ParseDay(c.Start); err == nil {
			start, haveStart = t, true
		}
	}
	if c.End != "" {
		if t, err := ParseDay(c.End); err == nil {
			end, haveEnd = t.Add(24*time.Hour-time.Second), true
		}
	}
	anyCategory := c.Category == "" || c.Category == CategoryAll

	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if haveStart || haveEnd {
			day, err := ParseDay(e.Date)
			if err != nil {
				continue
			}
			if haveStart && day.Before(start) {
				continue
			}
			if haveEnd && day.After(end) {
				continue
			}
		}
		if !anyCategory && e.Category != c.Category {
			continue
		}
		out = append(out, e)
	}
	return out
}
