package core

import (
	"encoding/json"
	"math"
	"math/rand"
	"strconv"
	"strings"
	"time"
)

// RawRecord is one loosely typed persisted record. Snapshots written by
// older versions (or corrupted by hand) may carry wrong types or miss
// fields entirely; normalization repairs each field independently.
type RawRecord map[string]any

// DecodeRecords parses a persisted blob into raw records. Anything that
// is not a JSON array of objects decodes to nil: a corrupted snapshot
// degrades to an empty ledger instead of failing startup.
func DecodeRecords(blob []byte) []RawRecord {
	var records []RawRecord
	if err := json.Unmarshal(blob, &records); err != nil {
		return nil
	}
	return records
}

// Normalize converts raw records into well-formed entries. It is total:
// no input shape makes it fail. Missing or malformed fields take their
// defaults (fresh id, "Unnamed", zero amount, income, current date,
// "Uncategorized"). Record order is preserved.
func Normalize(records []RawRecord) []Entry {
	entries := make([]Entry, 0, len(records))
	seen := make(map[int64]bool, len(records))
	for _, r := range records {
		e := normalizeRecord(r)
		if e.ID == 0 || seen[e.ID] {
			e.ID = freshID(seen)
		}
		seen[e.ID] = true
		entries = append(entries, e)
	}
	return entries
}

func normalizeRecord(r RawRecord) Entry {
	var e Entry

	if id, ok := numericField(r, "id"); ok {
		e.ID = int64(id)
	}

	if name, ok := r["name"].(string); ok && strings.TrimSpace(name) != "" {
		e.Name = name
	} else {
		e.Name = DefaultName
	}

	if amount, ok := numericField(r, "amount"); ok {
		e.Amount = MoneyFromFloat(amount)
	}

	typ, _ := r["type"].(string)
	e.Type = ParseType(typ)

	if date, ok := r["date"].(string); ok {
		if _, err := ParseDay(date); err == nil {
			e.Date = date
		}
	}
	if e.Date == "" {
		e.Date = Today()
	}

	if category, ok := r["category"].(string); ok && strings.TrimSpace(category) != "" {
		e.Category = category
	} else {
		e.Category = DefaultCategory
	}

	return e
}

// numericField coerces a record field the way loosely typed storage
// demands: JSON numbers pass through, numeric strings parse, everything
// else is not a number.
func numericField(r RawRecord, key string) (float64, bool) {
	switch v := r[key].(type) {
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, false
		}
		return v, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// NewID generates an identifier from the current time plus a random
// offset. Uniqueness against a known id set is the caller's concern;
// see freshID.
func NewID() int64 {
	return time.Now().UnixMilli()*1000 + rand.Int63n(1000)
}

func freshID(seen map[int64]bool) int64 {
	id := NewID()
	for id == 0 || seen[id] {
		id = NewID()
	}
	return id
}
