package handler

import (
	"net/http"

	"github.com/avolkov/pos-admin/internal/middleware"
	"github.com/avolkov/pos-admin/internal/model"
)

func adminFromContext(r *http.Request) (*model.AdminUser, bool) {
	p, ok := middleware.PrincipalFromContext(r.Context())
	if !ok || p.Kind != model.PrincipalAdmin || p.Admin == nil {
		return nil, false
	}
	return p.Admin, true
}

// ListAllBusinesses returns every business for the admin dashboard; an
// optional ?status= query filters by approval state.
func (h *Handler) ListAllBusinesses(w http.ResponseWriter, r *http.Request) {
	var status *model.BusinessStatus
	if q := r.URL.Query().Get("status"); q != "" {
		s := model.BusinessStatus(q)
		switch s {
		case model.BusinessStatusPending, model.BusinessStatusApproved, model.BusinessStatusRejected:
			status = &s
		default:
			h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "unknown status filter"})
			return
		}
	}

	businesses, err := h.service.ListBusinesses(r.Context(), status)
	if err != nil {
		h.writeError(w, err)
		return
	}

	resp := make([]businessResponse, 0, len(businesses))
	for i := range businesses {
		resp = append(resp, toBusinessResponse(&businesses[i]))
	}

	h.writeJSON(w, http.StatusOK, resp)
}

// ApproveBusiness moves a business to approved on behalf of the current admin.
func (h *Handler) ApproveBusiness(w http.ResponseWriter, r *http.Request) {
	admin, ok := adminFromContext(r)
	if !ok {
		h.writeJSON(w, http.StatusForbidden, errorResponse{Error: "admin access required"})
		return
	}

	id, err := idParam(r, "id")
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid id"})
		return
	}

	b, err := h.service.ApproveBusiness(r.Context(), id, admin.ID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, toBusinessResponse(b))
}

// RejectBusiness moves a business to rejected; for an approved business this
// acts as revocation.
func (h *Handler) RejectBusiness(w http.ResponseWriter, r *http.Request) {
	admin, ok := adminFromContext(r)
	if !ok {
		h.writeJSON(w, http.StatusForbidden, errorResponse{Error: "admin access required"})
		return
	}

	id, err := idParam(r, "id")
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid id"})
		return
	}

	b, err := h.service.RejectBusiness(r.Context(), id, admin.ID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, toBusinessResponse(b))
}

// DeleteBusiness hard-deletes a business with all of its products and transactions.
func (h *Handler) DeleteBusiness(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid id"})
		return
	}

	if err := h.service.DeleteBusiness(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AdminStats returns business counts by status.
func (h *Handler) AdminStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.AdminStats(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, stats)
}
