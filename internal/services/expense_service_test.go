package services

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"outlay/internal/core"
	applog "outlay/internal/log"
	"outlay/internal/storage"
)

// countingStore wraps the memory store and records mutation calls so tests
// can assert that invalid submissions never reach the store.
type countingStore struct {
	*storage.MemoryStore
	creates int
	updates int
	deletes int
}

func (c *countingStore) Create(ctx context.Context, e core.Expense) (int64, error) {
	c.creates++
	return c.MemoryStore.Create(ctx, e)
}

func (c *countingStore) Update(ctx context.Context, e core.Expense) error {
	c.updates++
	return c.MemoryStore.Update(ctx, e)
}

func (c *countingStore) Delete(ctx context.Context, id int64) error {
	c.deletes++
	return c.MemoryStore.Delete(ctx, id)
}

func newTestService() (*ExpenseService, *countingStore) {
	store := &countingStore{MemoryStore: storage.NewMemoryStore()}
	svc := NewExpenseService(store)
	svc.now = func() time.Time {
		// Wednesday; week runs 2025-06-16 through 2025-06-22.
		return time.Date(2025, 6, 18, 12, 0, 0, 0, time.Local)
	}
	return svc, store
}

func TestCreateRejectsInvalidInput(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	cases := []ExpenseInput{
		{Amount: "", Category: "Food"},
		{Amount: "abc", Category: "Food"},
		{Amount: "0", Category: "Food"},
		{Amount: "-5", Category: "Food"},
		{Amount: "10", Category: ""},
		{Amount: "10", Category: "   "},
		{Amount: "10", Category: "Food", Date: "18-06-2025"},
	}
	for i, in := range cases {
		if _, err := svc.Create(ctx, in); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
	if store.creates != 0 {
		t.Fatalf("invalid input reached the store %d times", store.creates)
	}
}

func TestUpdateRejectsInvalidInput(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	id, err := svc.Create(ctx, ExpenseInput{Amount: "10", Category: "Food"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	store.updates = 0

	if err := svc.Update(ctx, id, ExpenseInput{Amount: "0", Category: "Food"}); err == nil {
		t.Fatal("expected error for zero amount")
	}
	if err := svc.Update(ctx, id, ExpenseInput{Amount: "10", Category: " "}); err == nil {
		t.Fatal("expected error for blank category")
	}
	if store.updates != 0 {
		t.Fatalf("invalid input reached the store %d times", store.updates)
	}
}

func TestCreateStampsTodayWhenDateEmpty(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	id, err := svc.Create(ctx, ExpenseInput{Amount: "12.34", Category: " Food ", Note: " lunch "})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	e, err := svc.Get(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if e.Date != "2025-06-18" {
		t.Fatalf("date = %q, want 2025-06-18", e.Date)
	}
	if e.Category != "Food" || e.Note != "lunch" {
		t.Fatalf("expected trimmed fields, got %+v", e)
	}
	if e.Amount.Cents != 1234 {
		t.Fatalf("amount = %d, want 1234", e.Amount.Cents)
	}
}

func TestUpdateUnknownID(t *testing.T) {
	svc, _ := newTestService()
	err := svc.Update(context.Background(), 999, ExpenseInput{Amount: "10", Category: "Food"})
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestOverviewPipeline(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	seed := []ExpenseInput{
		{Amount: "10", Category: "Food", Date: "2025-06-18"}, // this week
		{Amount: "5", Category: "Food", Date: "2025-06-02"},  // this month only
		{Amount: "3", Category: "Rent", Date: "2025-05-31"},  // older
	}
	for _, in := range seed {
		if _, err := svc.Create(ctx, in); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	all, err := svc.Overview(ctx, core.FilterAll)
	if err != nil {
		t.Fatalf("overview all: %v", err)
	}
	if len(all.Expenses) != 3 || all.Summary.Total.Cents != 1800 {
		t.Fatalf("all: %d expenses, total %d", len(all.Expenses), all.Summary.Total.Cents)
	}

	week, err := svc.Overview(ctx, core.FilterWeek)
	if err != nil {
		t.Fatalf("overview week: %v", err)
	}
	if len(week.Expenses) != 1 || week.Summary.Total.Cents != 1000 {
		t.Fatalf("week: %d expenses, total %d", len(week.Expenses), week.Summary.Total.Cents)
	}

	month, err := svc.Overview(ctx, core.FilterMonth)
	if err != nil {
		t.Fatalf("overview month: %v", err)
	}
	if len(month.Expenses) != 2 || month.Summary.Total.Cents != 1500 {
		t.Fatalf("month: %d expenses, total %d", len(month.Expenses), month.Summary.Total.Cents)
	}
}

func TestOverviewReflectsMutationsImmediately(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	id, err := svc.Create(ctx, ExpenseInput{Amount: "10", Category: "Food", Date: "2025-06-18"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Warm the cache.
	if _, err := svc.Overview(ctx, core.FilterAll); err != nil {
		t.Fatalf("overview: %v", err)
	}

	if err := svc.Delete(ctx, id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	o, err := svc.Overview(ctx, core.FilterAll)
	if err != nil {
		t.Fatalf("overview after delete: %v", err)
	}
	if len(o.Expenses) != 0 {
		t.Fatalf("cache served a stale overview: %+v", o.Expenses)
	}
}

// Entering edit mode only reads; resetting the form must leave the store
// untouched.
func TestEditThenCancelDoesNotMutate(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	id, err := svc.Create(ctx, ExpenseInput{Amount: "10", Category: "Food", Date: "2025-06-18"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	before, _ := svc.Get(ctx, id)
	store.updates, store.deletes = 0, 0

	// Edit mode is just a Get to prefill the form; cancelling issues no
	// further calls.
	if _, err := svc.Get(ctx, id); err != nil {
		t.Fatalf("get: %v", err)
	}

	after, _ := svc.Get(ctx, id)
	if before != after {
		t.Fatalf("record changed: %+v vs %+v", before, after)
	}
	if store.updates != 0 || store.deletes != 0 {
		t.Fatalf("edit-then-cancel mutated the store: %d updates, %d deletes", store.updates, store.deletes)
	}
}

// A successful create logs exactly one record at this layer, tagged with
// the shared field and component names.
func TestCreateLogsOneRecordWithSharedFields(t *testing.T) {
	svc, _ := newTestService()

	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	defer slog.SetDefault(prev)

	if _, err := svc.Create(context.Background(), ExpenseInput{Amount: "10", Category: "Food", Date: "2025-06-18"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	out := buf.String()
	if got := strings.Count(out, "Expense created"); got != 1 {
		t.Fatalf("expected 1 log record, got %d: %s", got, out)
	}
	for _, attr := range []string{
		applog.FieldComponent + "=" + applog.ComponentExpense,
		applog.FieldOperation + "=create",
		applog.FieldCategory + "=Food",
	} {
		if !strings.Contains(out, attr) {
			t.Fatalf("log record missing %q: %s", attr, out)
		}
	}
}
