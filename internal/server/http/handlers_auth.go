package http

import (
	"net/http"
	"strings"

	"github.com/dmitrijs2005/catalogadmin/internal/common"
	"github.com/dmitrijs2005/catalogadmin/internal/server/auth"
	"github.com/dmitrijs2005/catalogadmin/internal/server/models"
	"github.com/dmitrijs2005/catalogadmin/internal/server/services"
)

type loginResponse struct {
	Token    string    `json:"token"`
	UserType auth.Role `json:"userType"`
}

type profileResponse struct {
	Message string        `json:"message"`
	Admin   *models.Admin `json:"admin"`
	Token   string        `json:"token,omitempty"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(r.Context(), w, h.logger, err)
		return
	}
	if err := req.Validate(); err != nil {
		writeError(r.Context(), w, h.logger, err)
		return
	}

	res, err := h.auth.Login(r.Context(), req.identifier(), req.Password)
	if err != nil {
		writeError(r.Context(), w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{Token: res.Token, UserType: res.Role})
}

func (h *Handler) getProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.IdentityFrom(r.Context())
	if !ok {
		writeError(r.Context(), w, h.logger, common.ErrTokenMissing)
		return
	}

	admin, err := h.auth.Profile(r.Context(), id.ID)
	if err != nil {
		writeError(r.Context(), w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, admin)
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.IdentityFrom(r.Context())
	if !ok {
		writeError(r.Context(), w, h.logger, common.ErrTokenMissing)
		return
	}

	var req profileRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(r.Context(), w, h.logger, err)
		return
	}
	req.normalize()
	if err := req.Validate(); err != nil {
		writeError(r.Context(), w, h.logger, err)
		return
	}
	if req.Email != nil {
		e := strings.ToLower(*req.Email)
		req.Email = &e
	}

	res, err := h.auth.UpdateProfile(r.Context(), id.ID, services.ProfileUpdate{
		Username:        req.Username,
		Email:           req.Email,
		NewPassword:     req.NewPassword,
		CurrentPassword: req.CurrentPassword,
	})
	if err != nil {
		writeError(r.Context(), w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, profileResponse{
		Message: "profile updated",
		Admin:   res.Admin,
		Token:   res.Token,
	})
}
