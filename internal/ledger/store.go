package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"tally/internal/core"
)

// Store holds the ordered entry sequence. Insertion order is display
// order. It is single-writer by design: every mutation persists the
// full sequence before returning, and nothing else holds a mutable
// reference to the entries.
type Store struct {
	snapshots SnapshotStore
	entries   []core.Entry
}

func NewStore(snapshots SnapshotStore) *Store {
	return &Store{snapshots: snapshots}
}

// Load reads the persisted snapshot and normalizes it into the in-memory
// sequence. A missing or malformed snapshot yields an empty ledger; only
// a failing read from the adapter itself is an error.
func (s *Store) Load(ctx context.Context) error {
	blob, err := s.snapshots.Read(ctx)
	if err != nil {
		return fmt.Errorf("read snapshot: %w", err)
	}
	if blob == nil {
		s.entries = nil
		slog.InfoContext(ctx, "No snapshot found, starting empty", "key", SnapshotKey)
		return nil
	}

	records := core.DecodeRecords(blob)
	if records == nil && len(blob) > 0 {
		slog.WarnContext(ctx, "Snapshot malformed, resetting to empty ledger",
			"key", SnapshotKey, "bytes", len(blob))
	}
	s.entries = core.Normalize(records)

	slog.InfoContext(ctx, "Ledger loaded", "key", SnapshotKey, "entries", len(s.entries))
	return nil
}

// Add creates an entry with a fresh id and appends it. The name is
// trimmed, the amount reduced to its magnitude and a blank category
// defaulted; the presentation layer validates before calling, the store
// re-normalizes anyway. The full sequence is persisted before returning.
func (s *Store) Add(ctx context.Context, name string, amount core.Money, typ core.EntryType, date, category string) (core.Entry, error) {
	if amount.Cents < 0 {
		amount.Cents = -amount.Cents
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = core.DefaultName
	}
	category = strings.TrimSpace(category)
	if category == "" {
		category = core.DefaultCategory
	}
	if typ != core.Expense {
		typ = core.Income
	}
	if _, err := core.ParseDay(date); err != nil {
		date = core.Today()
	}

	e := core.Entry{
		ID:       s.freshID(),
		Name:     name,
		Amount:   amount,
		Type:     typ,
		Date:     date,
		Category: category,
	}
	prev := s.entries
	s.entries = append(s.entries, e)

	if err := s.Save(ctx); err != nil {
		s.entries = prev
		return core.Entry{}, err
	}
	slog.InfoContext(ctx, "Entry added",
		"id", e.ID, "name", e.Name, "amount", e.Amount.String(), "type", string(e.Type))
	return e, nil
}

// Delete removes the entry with the given id, if present, and persists
// the result. Deleting an unknown id is a no-op, not an error.
func (s *Store) Delete(ctx context.Context, id int64) error {
	idx := -1
	for i, e := range s.entries {
		if e.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		slog.DebugContext(ctx, "Delete of unknown id ignored", "id", id)
		return nil
	}
	prev := s.entries
	s.entries = append(append([]core.Entry(nil), s.entries[:idx]...), s.entries[idx+1:]...)

	if err := s.Save(ctx); err != nil {
		s.entries = prev
		return err
	}
	slog.InfoContext(ctx, "Entry deleted", "id", id)
	return nil
}

// Save serializes the full sequence and overwrites the snapshot.
func (s *Store) Save(ctx context.Context) error {
	blob, err := marshalSnapshot(s.entries)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := s.snapshots.Write(ctx, blob); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// Entries returns a copy of the entry sequence. Consumers never see the
// backing slice.
func (s *Store) Entries() []core.Entry {
	return append([]core.Entry(nil), s.entries...)
}

// freshID generates an id not present in the current sequence.
func (s *Store) freshID() int64 {
	for {
		id := core.NewID()
		if id == 0 {
			continue
		}
		taken := false
		for _, e := range s.entries {
			if e.ID == id {
				taken = true
				break
			}
		}
		if !taken {
			return id
		}
	}
}

// record is the persisted snapshot form of one entry. It matches the
// loosely typed shape the normalizer accepts, so save(load()) round-trips.
type record struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Amount   float64 `json:"amount"`
	Type     string  `json:"type"`
	Date     string  `json:"date"`
	Category string  `json:"category"`
}

func marshalSnapshot(entries []core.Entry) ([]byte, error) {
	records := make([]record, len(entries))
	for i, e := range entries {
		records[i] = record{
			ID:       e.ID,
			Name:     e.Name,
			Amount:   e.Amount.Float(),
			Type:     string(e.Type),
			Date:     e.Date,
			Category: e.Category,
		}
	}
	return json.Marshal(records)
}
