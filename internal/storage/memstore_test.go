package storage

import (
	"context"
	"errors"
	"testing"

	"outlay/internal/core"
)

func TestMemoryStoreSemanticsMatchSQLite(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	id1, err := store.Create(ctx, core.Expense{Amount: core.Money{Cents: 100}, Category: "A", Date: "2025-06-18"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	id2, err := store.Create(ctx, core.Expense{Amount: core.Money{Cents: 200}, Category: "B", Date: "2025-06-18"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if id2 <= id1 {
		t.Fatalf("ids must be monotonically increasing: %d then %d", id1, id2)
	}

	all, _ := store.ListAll(ctx)
	if len(all) != 2 || all[0].ID != id2 || all[1].ID != id1 {
		t.Fatalf("expected newest-first listing, got %+v", all)
	}

	if err := store.Update(ctx, core.Expense{ID: id1, Amount: core.Money{Cents: 150}, Category: "A", Date: "2025-06-19"}); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, err := store.Get(ctx, id1)
	if err != nil || got.Amount.Cents != 150 || got.Date != "2025-06-19" {
		t.Fatalf("update not applied: %+v, %v", got, err)
	}

	if err := store.Delete(ctx, id1); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Get(ctx, id1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := store.Update(ctx, core.Expense{ID: 42}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown update, got %v", err)
	}
	if err := store.Delete(ctx, 42); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown delete, got %v", err)
	}
}
