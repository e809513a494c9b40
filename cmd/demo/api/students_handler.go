package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/orishu/turbocache/internal/apperr"
	"github.com/orishu/turbocache/internal/students"
)

// StudentsHandler exposes the students.Service as a small REST surface.
type StudentsHandler struct {
	svc *students.Service
}

// NewStudentsHandler returns a handler backed by svc.
func NewStudentsHandler(svc *students.Service) *StudentsHandler {
	return &StudentsHandler{svc: svc}
}

// List handles GET /students.
func (h *StudentsHandler) List(w http.ResponseWriter, r *http.Request) {
	rows, err := h.svc.List(r.Context())
	if err != nil {
		apperr.RespondWithError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(rows)
}

// Get handles GET /students/{id}.
func (h *StudentsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		apperr.RespondWithError(w, r, err)
		return
	}

	row, err := h.svc.Get(r.Context(), id)
	if err != nil {
		apperr.RespondWithError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(row)
}

type renameRequest struct {
	Name string `json:"name"`
}

// Rename handles PUT /students/{id}.
func (h *StudentsHandler) Rename(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		apperr.RespondWithError(w, r, err)
		return
	}

	var req renameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apperr.RespondWithError(w, r, apperr.NewInvalidInput("malformed request body"))
		return
	}

	if err := h.svc.Rename(r.Context(), id, req.Name); err != nil {
		apperr.RespondWithError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func parseID(r *http.Request) (int32, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, apperr.NewInvalidInput("invalid student id %q", raw)
	}
	return int32(id), nil
}
