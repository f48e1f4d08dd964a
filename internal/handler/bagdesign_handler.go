package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/openbracket/tourneyops/internal/model"
)

// SubmitBagDesign handles POST /events/{eventID}/bag-designs
func (h *Handler) SubmitBagDesign(w http.ResponseWriter, r *http.Request) {
	var req model.CreateBagDesignRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	design, err := h.svc.Approvals.Submit(r.Context(), chi.URLParam(r, "eventID"), req)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, design)
}

// ListBagDesigns handles GET /events/{eventID}/bag-designs
func (h *Handler) ListBagDesigns(w http.ResponseWriter, r *http.Request) {
	designs, err := h.svc.Approvals.ListByEvent(r.Context(), chi.URLParam(r, "eventID"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	if designs == nil {
		designs = []model.BagDesign{}
	}
	writeJSON(w, http.StatusOK, designs)
}

// ApproveBagDesign handles POST /bag-designs/{designID}/approve
// A one-way transition; the production webhook fires on success.
func (h *Handler) ApproveBagDesign(w http.ResponseWriter, r *http.Request) {
	design, err := h.svc.Approvals.Approve(r.Context(), chi.URLParam(r, "designID"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, design)
}
