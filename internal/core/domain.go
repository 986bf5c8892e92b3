package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Income  EntryType = "income"
	Expense EntryType = "expense"
)

const (
	// DefaultName labels entries that were stored without one.
	DefaultName = "Unnamed"
	// DefaultCategory is the reserved category for uncategorized entries.
	DefaultCategory = "Uncategorized"

	// DayLayout is the calendar-date form every entry date conforms to.
	DayLayout = "2006-01-02"
)

type (
	EntryType string

	// Entry is a single dated, categorized income or expense record.
	// Amount is always a magnitude; the sign of its effect on the
	// balance comes from Type.
	Entry struct {
		ID       int64
		Name     string
		Amount   Money
		Type     EntryType
		Date     string // YYYY-MM-DD, local calendar date
		Category string
	}
)

var (
	ErrEmptyName     = errors.New("empty name")
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidDate   = errors.New("invalid date")
	ErrEmptyCategory = errors.New("empty category")
)

// ParseType maps the literal "expense" to Expense and anything else to Income.
func ParseType(s string) EntryType {
	if s == string(Expense) {
		return Expense
	}
	return Income
}

// ParseDay interprets s as a local calendar date at midnight.
func ParseDay(s string) (time.Time, error) {
	return time.ParseInLocation(DayLayout, s, time.Local)
}

// Today returns the current local date in YYYY-MM-DD form.
func Today() string {
	return time.Now().Format(DayLayout)
}

// Validate checks an entry against the rules the presentation layer must
// enforce before an add: non-empty name, positive amount, well-formed date,
// non-empty category. Entries normalized from an old snapshot may
// legitimately fail this (e.g. a defaulted zero amount) and are still kept.
func (e Entry) Validate() error {
	if strings.TrimSpace(e.Name) == "" {
		return ErrEmptyName
	}
	if e.Amount.Cents <= 0 {
		return ErrInvalidAmount
	}
	if _, err := ParseDay(e.Date); err != nil {
		return ErrInvalidDate
	}
	if strings.TrimSpace(e.Category) == "" {
		return ErrEmptyCategory
	}
	return nil
}
