package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/openbracket/tourneyops/internal/model"
)

// CreateEvent handles POST /events
func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req model.CreateEventRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	event, err := h.svc.Events.Create(r.Context(), req)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, event)
}

// ListEvents handles GET /events
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.svc.Events.List(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	if events == nil {
		events = []model.Event{}
	}
	writeJSON(w, http.StatusOK, events)
}

// GetEvent handles GET /events/{eventID}
func (h *Handler) GetEvent(w http.ResponseWriter, r *http.Request) {
	event, err := h.svc.Events.Get(r.Context(), chi.URLParam(r, "eventID"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, event)
}

// CreateDivision handles POST /events/{eventID}/divisions
func (h *Handler) CreateDivision(w http.ResponseWriter, r *http.Request) {
	var req model.CreateDivisionRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	division, err := h.svc.Divisions.Create(r.Context(), chi.URLParam(r, "eventID"), req)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, division)
}

// ListDivisions handles GET /events/{eventID}/divisions
func (h *Handler) ListDivisions(w http.ResponseWriter, r *http.Request) {
	divisions, err := h.svc.Divisions.ListByEvent(r.Context(), chi.URLParam(r, "eventID"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	if divisions == nil {
		divisions = []model.Division{}
	}
	writeJSON(w, http.StatusOK, divisions)
}

// DeleteDivision handles DELETE /events/{eventID}/divisions/{divisionID}
func (h *Handler) DeleteDivision(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "eventID")
	divisionID := chi.URLParam(r, "divisionID")

	if err := h.svc.Divisions.Delete(r.Context(), eventID, divisionID); err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, model.OKResponse{OK: true})
}

// Register handles POST /events/{eventID}/registrations
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	reg, err := h.svc.Registration.Register(r.Context(), chi.URLParam(r, "eventID"), req)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, reg)
}

// ListRegistrations handles GET /events/{eventID}/registrations
func (h *Handler) ListRegistrations(w http.ResponseWriter, r *http.Request) {
	regs, err := h.svc.Registration.ListByEvent(r.Context(), chi.URLParam(r, "eventID"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	if regs == nil {
		regs = []model.Registration{}
	}
	writeJSON(w, http.StatusOK, regs)
}

// CreateUser handles POST /users
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req model.CreateUserRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		var vErrs validator.ValidationErrors
		if errors.As(err, &vErrs) {
			writeError(w, http.StatusBadRequest, "invalid request body: "+vErrs.Error())
			return
		}
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	user, err := h.svc.Users.Create(r.Context(), req)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}
