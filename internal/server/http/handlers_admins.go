package http

import (
	"net/http"

	"github.com/dmitrijs2005/catalogadmin/internal/server/models"
)

type adminResponse struct {
	Message string        `json:"message"`
	Admin   *models.Admin `json:"admin"`
}

func (h *Handler) createAdmin(w http.ResponseWriter, r *http.Request) {
	var req createAdminRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(r.Context(), w, h.logger, err)
		return
	}
	if err := req.Validate(); err != nil {
		writeError(r.Context(), w, h.logger, err)
		return
	}

	a, err := h.admins.Create(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		writeError(r.Context(), w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, adminResponse{Message: "admin created", Admin: a})
}

func (h *Handler) listAdmins(w http.ResponseWriter, r *http.Request) {
	list, err := h.admins.List(r.Context())
	if err != nil {
		writeError(r.Context(), w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *Handler) getAdmin(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(r.Context(), w, h.logger, err)
		return
	}
	a, err := h.admins.Get(r.Context(), id)
	if err != nil {
		writeError(r.Context(), w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (h *Handler) updateAdmin(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(r.Context(), w, h.logger, err)
		return
	}

	var req updateAdminRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(r.Context(), w, h.logger, err)
		return
	}
	req.normalize()
	if err := req.Validate(); err != nil {
		writeError(r.Context(), w, h.logger, err)
		return
	}

	a, err := h.admins.Update(r.Context(), id, req.Username, req.Email)
	if err != nil {
		writeError(r.Context(), w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, adminResponse{Message: "admin updated", Admin: a})
}

func (h *Handler) deleteAdmin(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(r.Context(), w, h.logger, err)
		return
	}
	if err := h.admins.Delete(r.Context(), id); err != nil {
		writeError(r.Context(), w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, messageBody{Message: "admin deleted"})
}
