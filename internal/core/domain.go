package core

import (
	"errors"
	"strings"
	"time"
)

// DateLayout is the wire format for expense dates (ISO calendar date).
const DateLayout = "2006-01-02"

type (
	Money struct {
		Cents int64
	}

	Expense struct {
		ID       int64
		Amount   Money
		Category string
		Note     string // optional
		Date     string // YYYY-MM-DD, required
	}
)

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrEmptyCategory = errors.New("empty category")
	ErrInvalidDate   = errors.New("invalid date")
)

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// ParseDate parses an ISO YYYY-MM-DD date string.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// Today returns the given instant's local date in ISO YYYY-MM-DD form.
func Today(now time.Time) string {
	return now.Format(DateLayout)
}

func (e Expense) Validate() error {
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(e.Category) == "" {
		return ErrEmptyCategory
	}
	if _, err := ParseDate(e.Date); err != nil {
		return ErrInvalidDate
	}
	return nil
}
