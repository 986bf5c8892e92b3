package ledger

import (
	"context"
	"errors"
	"testing"

	"tally/internal/core"
)

// memSnapshots is an in-memory SnapshotStore for tests.
type memSnapshots struct {
	blob     []byte
	writeErr error
	writes   int
}

func (m *memSnapshots) Read(context.Context) ([]byte, error) {
	return m.blob, nil
}

func (m *memSnapshots) Write(_ context.Context, blob []byte) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	m.blob = blob
	m.writes++
	return nil
}

func TestLoadMissingSnapshotStartsEmpty(t *testing.T) {
	store := NewStore(&memSnapshots{})
	if err := store.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := store.Entries(); len(got) != 0 {
		t.Fatalf("expected empty ledger, got %+v", got)
	}
}

func TestLoadMalformedSnapshotResetsEmpty(t *testing.T) {
	cases := []string{"not json at all", `{"id":1}`, "42"}
	for _, blob := range cases {
		store := NewStore(&memSnapshots{blob: []byte(blob)})
		if err := store.Load(context.Background()); err != nil {
			t.Fatalf("%q: load should not fail, got %v", blob, err)
		}
		if got := store.Entries(); len(got) != 0 {
			t.Fatalf("%q: expected empty ledger, got %+v", blob, got)
		}
	}
}

func TestAddNormalizesAndPersists(t *testing.T) {
	snaps := &memSnapshots{}
	store := NewStore(snaps)
	ctx := context.Background()
	if err := store.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}

	e, err := store.Add(ctx, "  Coffee  ", core.Money{Cents: -450}, "transfer", "2024-01-10", "  ")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if e.ID == 0 {
		t.Fatalf("expected a fresh id")
	}
	if e.Name != "Coffee" {
		t.Fatalf("expected trimmed name, got %q", e.Name)
	}
	if e.Amount.Cents != 450 {
		t.Fatalf("expected magnitude 450, got %d", e.Amount.Cents)
	}
	if e.Type != core.Income {
		t.Fatalf("unknown type should normalize to income, got %s", e.Type)
	}
	if e.Category != core.DefaultCategory {
		t.Fatalf("blank category should default, got %q", e.Category)
	}
	if snaps.writes != 1 {
		t.Fatalf("expected one snapshot write, got %d", snaps.writes)
	}

	got := store.Entries()
	if len(got) != 1 || got[0].ID != e.ID {
		t.Fatalf("entry not appended: %+v", got)
	}
}

func TestAddInvalidDateDefaultsToToday(t *testing.T) {
	store := NewStore(&memSnapshots{})
	e, err := store.Add(context.Background(), "x", core.Money{Cents: 1}, core.Income, "garbage", "c")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if e.Date != core.Today() {
		t.Fatalf("expected today, got %q", e.Date)
	}
}

func TestAddPropagatesWriteFailure(t *testing.T) {
	boom := errors.New("disk full")
	store := NewStore(&memSnapshots{writeErr: boom})
	if _, err := store.Add(context.Background(), "x", core.Money{Cents: 1}, core.Income, "2024-01-01", "c"); !errors.Is(err, boom) {
		t.Fatalf("expected write error, got %v", err)
	}
}

func TestDeleteRemovesAndIgnoresUnknown(t *testing.T) {
	snaps := &memSnapshots{}
	store := NewStore(snaps)
	ctx := context.Background()

	a, _ := store.Add(ctx, "a", core.Money{Cents: 100}, core.Income, "2024-01-01", "c")
	b, _ := store.Add(ctx, "b", core.Money{Cents: 200}, core.Expense, "2024-01-02", "c")

	if err := store.Delete(ctx, a.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	got := store.Entries()
	if len(got) != 1 || got[0].ID != b.ID {
		t.Fatalf("unexpected entries after delete: %+v", got)
	}

	writesBefore := snaps.writes
	if err := store.Delete(ctx, 999999); err != nil {
		t.Fatalf("delete of unknown id should be a no-op, got %v", err)
	}
	if snaps.writes != writesBefore {
		t.Fatalf("no-op delete should not persist")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	snaps := &memSnapshots{}
	store := NewStore(snaps)
	ctx := context.Background()

	first, _ := store.Add(ctx, "Salary", core.Money{Cents: 10000}, core.Income, "2024-01-05", "Salary")
	second, _ := store.Add(ctx, `Coffee "Break"`, core.Money{Cents: 450}, core.Expense, "2024-01-10", "Food")

	reloaded := NewStore(snaps)
	if err := reloaded.Load(ctx); err != nil {
		t.Fatalf("reload: %v", err)
	}
	got := reloaded.Entries()
	want := []core.Entry{first, second}
	if len(got) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("entry %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
}

func TestEntriesReturnsCopy(t *testing.T) {
	store := NewStore(&memSnapshots{})
	store.Add(context.Background(), "a", core.Money{Cents: 100}, core.Income, "2024-01-01", "c")

	got := store.Entries()
	got[0].Name = "mutated"
	if store.Entries()[0].Name != "a" {
		t.Fatalf("consumer mutation leaked into the store")
	}
}
