// Package http provides the HTTP server and handler implementations.
//
// This file implements utilities for parsing and validating request data,
// consolidating the form parsing and method guards shared by the handlers.
package http

import (
	"net/http"
	"net/url"
	"strings"

	"outlay/internal/services"
)

// RequireMethod checks if the request method matches the expected method(s).
// Returns an error response builder if the method doesn't match.
func RequireMethod(r *http.Request, methods ...string) *HTMXResponseBuilder {
	for _, m := range methods {
		if r.Method == m {
			return nil
		}
	}
	return MethodNotAllowedError(strings.Join(methods, ", "))
}

// RequirePOST is a convenience function for POST-only handlers.
func RequirePOST(r *http.Request) *HTMXResponseBuilder {
	return RequireMethod(r, http.MethodPost)
}

// ParseFormOrFail parses the request form and returns an error response on failure.
// Returns nil on success.
func ParseFormOrFail(r *http.Request) *HTMXResponseBuilder {
	if err := r.ParseForm(); err != nil {
		return BadRequestError("Invalid request format")
	}
	return nil
}

// expenseInputFromForm collects the raw expense fields, sanitized but not
// yet validated; validation belongs to the service.
func expenseInputFromForm(form url.Values) services.ExpenseInput {
	return services.ExpenseInput{
		Amount:   sanitizeInput(form.Get("amount")),
		Category: sanitizeInput(form.Get("category")),
		Note:     sanitizeInput(form.Get("note")),
		Date:     sanitizeInput(form.Get("date")),
	}
}
