package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/openbracket/tourneyops/internal/model"
)

// ListAssignments handles GET /events/{eventID}/divisions/{divisionID}/assignments
// Returns all assignments in the division, most recent first, enriched with
// user identities.
func (h *Handler) ListAssignments(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "eventID")
	divisionID := chi.URLParam(r, "divisionID")

	assignments, err := h.svc.Assignments.List(r.Context(), eventID, divisionID)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	// Return an empty array rather than null for better client compatibility.
	if assignments == nil {
		assignments = []model.EnrichedAssignment{}
	}
	writeJSON(w, http.StatusOK, assignments)
}

// CreateAssignment handles POST /events/{eventID}/divisions/{divisionID}/assignments
// Assigns the named user, or auto-selects the earliest unplaced registrant
// when the body names none. An empty body is allowed.
func (h *Handler) CreateAssignment(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "eventID")
	divisionID := chi.URLParam(r, "divisionID")

	var req model.AssignRequest
	if r.ContentLength > 0 {
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
			return
		}
	}

	assignment, err := h.svc.Assignments.Assign(r.Context(), eventID, divisionID, req.UserID)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, assignment)
}

// DeleteAssignment handles DELETE /events/{eventID}/divisions/{divisionID}/assignments?assignmentId=...
// The assignment must belong to the event and division in the path.
func (h *Handler) DeleteAssignment(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "eventID")
	divisionID := chi.URLParam(r, "divisionID")

	assignmentID := r.URL.Query().Get("assignmentId")
	if assignmentID == "" {
		writeError(w, http.StatusBadRequest, "assignmentId is required")
		return
	}

	if err := h.svc.Assignments.Unassign(r.Context(), eventID, divisionID, assignmentID); err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, model.OKResponse{OK: true})
}

// PromoteAssignment handles POST /events/{eventID}/divisions/{divisionID}/assignments/promote
// Moves the oldest waitlisted registrant into an open slot.
func (h *Handler) PromoteAssignment(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "eventID")
	divisionID := chi.URLParam(r, "divisionID")

	assignment, err := h.svc.Assignments.PromoteNext(r.Context(), eventID, divisionID)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, assignment)
}
