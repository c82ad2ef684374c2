package http

import (
	"errors"
	"log/slog"
	"net/http"

	"outlay/internal/core"
	applog "outlay/internal/log"
	"outlay/internal/storage"
)

type categoryView struct {
	Name    string
	Amount  string
	Percent int // bar width relative to the largest category
}

type expenseView struct {
	ID       int64
	Amount   string
	Category string
	Note     string
	Date     string
}

type formView struct {
	Editing  bool
	ID       int64
	Amount   string
	Category string
	Note     string
	Date     string
}

type overviewView struct {
	Mode       core.FilterMode
	Total      string
	Categories []categoryView
	Expenses   []expenseView
	Form       formView
}

// handleOverview renders the overview partial: filter buttons, totals,
// the category bar chart, the expense list, and the add/edit form.
func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	if resp := RequireMethod(r, http.MethodGet); resp != nil {
		resp.Write(w)
		return
	}

	if s.templates == nil {
		slog.ErrorContext(r.Context(), "Templates not loaded")
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	mode := core.ParseFilterMode(r.URL.Query().Get("filter"))

	o, err := s.service.Overview(r.Context(), mode)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to build overview",
			applog.FieldFilterMode, mode,
			applog.FieldError, err,
			applog.FieldComponent, applog.ComponentHTTP)
		InternalServerError("Error loading expenses").Write(w)
		return
	}

	view := overviewView{
		Mode:  o.Mode,
		Total: formatAmount(o.Summary.Total),
		Form:  formView{},
	}

	var maxCents int64
	for _, c := range o.Summary.ByCategory {
		if c.Amount.Cents > maxCents {
			maxCents = c.Amount.Cents
		}
	}
	for _, c := range o.Summary.ByCategory {
		percent := 0
		if maxCents > 0 {
			percent = int(c.Amount.Cents * 100 / maxCents)
		}
		view.Categories = append(view.Categories, categoryView{
			Name:    c.Name,
			Amount:  formatAmount(c.Amount),
			Percent: percent,
		})
	}

	for _, e := range o.Expenses {
		view.Expenses = append(view.Expenses, expenseView{
			ID:       e.ID,
			Amount:   formatAmount(e.Amount),
			Category: e.Category,
			Note:     e.Note,
			Date:     e.Date,
		})
	}

	// Edit mode prefills the form from the stored record; it reads only.
	if v := r.URL.Query().Get("edit"); v != "" {
		id, ok := parseID(v)
		if !ok {
			BadRequestError("Invalid expense id").Write(w)
			return
		}
		e, err := s.service.Get(r.Context(), id)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				NotFoundError("Expense not found").Write(w)
				return
			}
			InternalServerError("Error loading expense").Write(w)
			return
		}
		view.Form = formView{
			Editing:  true,
			ID:       e.ID,
			Amount:   e.Amount.Format(),
			Category: e.Category,
			Note:     e.Note,
			Date:     e.Date,
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, "overview", view); err != nil {
		slog.ErrorContext(r.Context(), "Overview template failed", applog.FieldError, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
