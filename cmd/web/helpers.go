package main

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/noble-hunt/AXLE-sub000/internal/errors"
	"github.com/noble-hunt/AXLE-sub000/internal/generation"
)

type errorResponse struct {
	Error string `json:"error"`
}

func (app *application) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		app.logger.LogAttrs(r.Context(), slog.LevelError, "encode response", errors.SlogError(err))
	}
}

func (app *application) serverError(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.LogAttrs(r.Context(), slog.LevelError, "server error", errors.SlogError(err))
	app.writeJSON(w, r, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
}

// serviceError maps the generation sentinels to HTTP status codes. Anything
// unrecognised is a server error.
func (app *application) serviceError(w http.ResponseWriter, r *http.Request, err error) {
	var status int
	switch {
	case errors.Is(err, generation.ErrInvalidRequest),
		errors.Is(err, generation.ErrUnsupportedStyle),
		errors.Is(err, generation.ErrSchemaInvalid):
		status = http.StatusBadRequest
	case errors.Is(err, generation.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, generation.ErrSelectionInfeasible),
		errors.Is(err, generation.ErrBudgetInfeasible),
		errors.Is(err, generation.ErrPolicyViolation):
		status = http.StatusUnprocessableEntity
	default:
		app.serverError(w, r, err)
		return
	}

	app.logger.LogAttrs(r.Context(), slog.LevelInfo, "request rejected",
		slog.Int("status_code", status), errors.SlogError(err))
	app.writeJSON(w, r, status, errorResponse{Error: err.Error()})
}

// decodeJSON decodes the request body into v and rejects unknown fields.
// On failure it sends the 400 response itself and returns false.
func (app *application) decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		app.writeJSON(w, r, http.StatusBadRequest, errorResponse{Error: "malformed request body: " + err.Error()})
		return false
	}
	return true
}
