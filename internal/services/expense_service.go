package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"outlay/internal/cache"
	"outlay/internal/core"
	applog "outlay/internal/log"
)

// Store is the persistence collaborator the service depends on. Both the
// SQLite repository and the in-memory store satisfy it.
type Store interface {
	Create(ctx context.Context, e core.Expense) (int64, error)
	ListAll(ctx context.Context) ([]core.Expense, error)
	Get(ctx context.Context, id int64) (core.Expense, error)
	Update(ctx context.Context, e core.Expense) error
	Delete(ctx context.Context, id int64) error
}

// ExpenseInput carries raw form values. Parsing and validation happen here
// so invalid submissions never reach the store.
type ExpenseInput struct {
	Amount   string
	Category string
	Note     string
	Date     string
}

// Overview is the derived view for one filter mode: the filtered expense
// list plus its aggregation. Recomputed from a full reload on every request.
type Overview struct {
	Mode     core.FilterMode
	Expenses []core.Expense
	Summary  core.Summary
}

// ExpenseService owns validation and the reload-filter-aggregate pipeline.
// The store is the single source of truth; the overview cache is a derived
// view purged on every mutation.
type ExpenseService struct {
	store Store
	cache *cache.TTLCache[Overview]
	now   func() time.Time
}

func NewExpenseService(store Store) *ExpenseService {
	return NewExpenseServiceWithTTL(store, time.Minute)
}

// NewExpenseServiceWithTTL lets callers tune how long a cached overview
// may be served before it is recomputed.
func NewExpenseServiceWithTTL(store Store, ttl time.Duration) *ExpenseService {
	return &ExpenseService{
		store: store,
		cache: cache.NewTTLCache[Overview](ttl),
		now:   time.Now,
	}
}

// parseInput turns raw form values into a validated expense. The returned
// expense has no ID; callers set it for updates.
func (s *ExpenseService) parseInput(in ExpenseInput) (core.Expense, error) {
	cents, err := core.ParseDecimalToCents(in.Amount)
	if err != nil {
		return core.Expense{}, err
	}

	category := strings.TrimSpace(in.Category)
	if category == "" {
		return core.Expense{}, core.ErrEmptyCategory
	}

	date := strings.TrimSpace(in.Date)
	if date == "" {
		// Blank date means "today" at the moment of submission.
		date = core.Today(s.now())
	} else if _, err := core.ParseDate(date); err != nil {
		return core.Expense{}, core.ErrInvalidDate
	}

	return core.Expense{
		Amount:   core.Money{Cents: cents},
		Category: category,
		Note:     strings.TrimSpace(in.Note),
		Date:     date,
	}, nil
}

// Create validates the input and persists a new expense.
func (s *ExpenseService) Create(ctx context.Context, in ExpenseInput) (int64, error) {
	e, err := s.parseInput(in)
	if err != nil {
		return 0, err
	}

	id, err := s.store.Create(ctx, e)
	if err != nil {
		return 0, fmt.Errorf("create expense: %w", err)
	}
	s.cache.Purge()

	slog.InfoContext(ctx, "Expense created",
		applog.FieldExpenseID, id,
		applog.FieldAmountCents, e.Amount.Cents,
		applog.FieldCategory, e.Category,
		applog.FieldDate, e.Date,
		applog.FieldComponent, applog.ComponentExpense,
		applog.FieldOperation, "create")

	return id, nil
}

// Update validates the input and replaces all mutable fields of the
// expense with the given id. Unknown ids fail with storage.ErrNotFound.
func (s *ExpenseService) Update(ctx context.Context, id int64, in ExpenseInput) error {
	e, err := s.parseInput(in)
	if err != nil {
		return err
	}
	e.ID = id

	if err := s.store.Update(ctx, e); err != nil {
		return fmt.Errorf("update expense: %w", err)
	}
	s.cache.Purge()

	slog.InfoContext(ctx, "Expense updated",
		applog.FieldExpenseID, id,
		applog.FieldAmountCents, e.Amount.Cents,
		applog.FieldCategory, e.Category,
		applog.FieldDate, e.Date,
		applog.FieldComponent, applog.ComponentExpense,
		applog.FieldOperation, "update")

	return nil
}

// Delete removes the expense with the given id.
func (s *ExpenseService) Delete(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	s.cache.Purge()

	slog.InfoContext(ctx, "Expense deleted",
		applog.FieldExpenseID, id,
		applog.FieldComponent, applog.ComponentExpense,
		applog.FieldOperation, "delete")

	return nil
}

// Get retrieves a single expense, used to prefill the edit form.
func (s *ExpenseService) Get(ctx context.Context, id int64) (core.Expense, error) {
	return s.store.Get(ctx, id)
}

// Overview reloads the full record set, filters it for the mode, and
// aggregates the result. Every mutation purges the cache, so within one
// interaction cycle this always reflects the latest successful write.
func (s *ExpenseService) Overview(ctx context.Context, mode core.FilterMode) (Overview, error) {
	if o, ok := s.cache.Get(string(mode)); ok {
		return o, nil
	}

	all, err := s.store.ListAll(ctx)
	if err != nil {
		return Overview{}, fmt.Errorf("load expenses: %w", err)
	}

	filtered := mode.Filter(all, s.now())
	o := Overview{
		Mode:     mode,
		Expenses: filtered,
		Summary:  core.Aggregate(filtered),
	}
	s.cache.Set(string(mode), o)
	return o, nil
}

// CleanExpiredCache drops expired overview entries; wired to the server's
// periodic maintenance ticker.
func (s *ExpenseService) CleanExpiredCache() int {
	return s.cache.CleanExpired()
}
