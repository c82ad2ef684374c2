package http

import (
	"errors"
	"log/slog"
	"net/http"

	applog "outlay/internal/log"
	"outlay/internal/storage"
)

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	if resp := RequirePOST(r); resp != nil {
		resp.Write(w)
		return
	}
	if resp := ParseFormOrFail(r); resp != nil {
		slog.ErrorContext(r.Context(), "Parse form error",
			applog.FieldMethod, r.Method,
			applog.FieldPath, r.URL.Path)
		resp.Write(w)
		return
	}

	in := expenseInputFromForm(r.Form)
	if _, err := s.service.Create(r.Context(), in); err != nil {
		// Validation failures refuse the write; nothing was persisted.
		slog.WarnContext(r.Context(), "Expense rejected",
			applog.FieldError, err,
			applog.FieldComponent, applog.ComponentHTTP,
			applog.FieldOperation, "create")
		UnprocessableEntityError("Invalid expense: " + err.Error()).Write(w)
		return
	}

	NewHTMXResponse().
		TriggerFormReset().
		TriggerOverviewRefresh().
		TriggerSuccessNotification("Expense added").
		Write(w)
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	if resp := RequirePOST(r); resp != nil {
		resp.Write(w)
		return
	}
	if resp := ParseFormOrFail(r); resp != nil {
		resp.Write(w)
		return
	}

	id, ok := parseID(r.Form.Get("id"))
	if !ok {
		BadRequestError("Missing or invalid expense id").Write(w)
		return
	}

	in := expenseInputFromForm(r.Form)
	if err := s.service.Update(r.Context(), id, in); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			NotFoundError("Expense not found").Write(w)
			return
		}
		slog.WarnContext(r.Context(), "Expense update rejected",
			applog.FieldExpenseID, id,
			applog.FieldError, err,
			applog.FieldComponent, applog.ComponentHTTP,
			applog.FieldOperation, "update")
		UnprocessableEntityError("Invalid expense: " + err.Error()).Write(w)
		return
	}

	NewHTMXResponse().
		TriggerFormReset().
		TriggerOverviewRefresh().
		TriggerSuccessNotification("Changes saved").
		Write(w)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	if resp := RequirePOST(r); resp != nil {
		resp.Write(w)
		return
	}
	if resp := ParseFormOrFail(r); resp != nil {
		resp.Write(w)
		return
	}

	id, ok := parseID(r.Form.Get("id"))
	if !ok {
		BadRequestError("Missing or invalid expense id").Write(w)
		return
	}

	if err := s.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			NotFoundError("Expense not found").Write(w)
			return
		}
		slog.ErrorContext(r.Context(), "Failed to delete expense",
			applog.FieldExpenseID, id,
			applog.FieldError, err,
			applog.FieldComponent, applog.ComponentHTTP,
			applog.FieldOperation, "delete")
		InternalServerError("Error deleting expense").Write(w)
		return
	}

	NewHTMXResponse().
		TriggerOverviewRefresh().
		TriggerSuccessNotification("Expense deleted").
		Write(w)
}
