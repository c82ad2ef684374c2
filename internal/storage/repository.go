package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"outlay/internal/core"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when an update or delete references an id that
// does not exist. Callers must not treat these as no-ops.
var ErrNotFound = errors.New("expense not found")

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Create inserts a new expense and returns its assigned id.
func (r *SQLiteRepository) Create(ctx context.Context, e core.Expense) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO expenses (amount_cents, category, note, date) VALUES (?, ?, ?, ?)`,
		e.Amount.Cents, e.Category, e.Note, e.Date)
	if err != nil {
		return 0, fmt.Errorf("create expense: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read inserted id: %w", err)
	}
	return id, nil
}

// ListAll returns every expense, most recently created first.
func (r *SQLiteRepository) ListAll(ctx context.Context) ([]core.Expense, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, amount_cents, category, note, date FROM expenses ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []core.Expense
	for rows.Next() {
		var e core.Expense
		if err := rows.Scan(&e.ID, &e.Amount.Cents, &e.Category, &e.Note, &e.Date); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expenses: %w", err)
	}
	return expenses, nil
}

// Get retrieves a single expense by id.
func (r *SQLiteRepository) Get(ctx context.Context, id int64) (core.Expense, error) {
	var e core.Expense
	err := r.db.QueryRowContext(ctx,
		`SELECT id, amount_cents, category, note, date FROM expenses WHERE id = ?`, id).
		Scan(&e.ID, &e.Amount.Cents, &e.Category, &e.Note, &e.Date)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Expense{}, fmt.Errorf("get expense %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return core.Expense{}, fmt.Errorf("get expense %d: %w", id, err)
	}
	return e, nil
}

// Update replaces all mutable fields of the expense with e.ID atomically.
func (r *SQLiteRepository) Update(ctx context.Context, e core.Expense) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE expenses SET amount_cents = ?, category = ?, note = ?, date = ? WHERE id = ?`,
		e.Amount.Cents, e.Category, e.Note, e.Date, e.ID)
	if err != nil {
		return fmt.Errorf("update expense %d: %w", e.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update expense %d: %w", e.ID, err)
	}
	if n == 0 {
		return fmt.Errorf("update expense %d: %w", e.ID, ErrNotFound)
	}
	return nil
}

// Delete removes the expense with the given id.
func (r *SQLiteRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete expense %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete expense %d: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("delete expense %d: %w", id, ErrNotFound)
	}
	return nil
}
