package http

import (
	"net/http"
)

func (h *Handler) reply(w http.ResponseWriter, r *http.Request, status int, v any, err error) {
	if err != nil {
		writeError(r.Context(), w, h.logger, err)
		return
	}
	writeJSON(w, status, v)
}

// withID parses the {id} URL parameter before calling fn.
func (h *Handler) withID(fn func(w http.ResponseWriter, r *http.Request, id int64)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r)
		if err != nil {
			writeError(r.Context(), w, h.logger, err)
			return
		}
		fn(w, r, id)
	}
}

// --- products ---

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	list, err := h.catalog.ListProducts(r.Context())
	h.reply(w, r, http.StatusOK, list, err)
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request, id int64) {
	p, err := h.catalog.GetProduct(r.Context(), id)
	h.reply(w, r, http.StatusOK, p, err)
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	in, err := h.readProduct(r)
	if err != nil {
		writeError(r.Context(), w, h.logger, err)
		return
	}
	p, err := h.catalog.CreateProduct(r.Context(), in)
	h.reply(w, r, http.StatusCreated, p, err)
}

func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request, id int64) {
	in, err := h.readProduct(r)
	if err != nil {
		writeError(r.Context(), w, h.logger, err)
		return
	}
	p, err := h.catalog.UpdateProduct(r.Context(), id, in)
	h.reply(w, r, http.StatusOK, p, err)
}

func (h *Handler) deleteProduct(w http.ResponseWriter, r *http.Request, id int64) {
	err := h.catalog.DeleteProduct(r.Context(), id)
	h.reply(w, r, http.StatusOK, messageBody{Message: "product deleted"}, err)
}

// --- instruments ---

func (h *Handler) listInstruments(w http.ResponseWriter, r *http.Request) {
	list, err := h.catalog.ListInstruments(r.Context())
	h.reply(w, r, http.StatusOK, list, err)
}

func (h *Handler) getInstrument(w http.ResponseWriter, r *http.Request, id int64) {
	i, err := h.catalog.GetInstrument(r.Context(), id)
	h.reply(w, r, http.StatusOK, i, err)
}

func (h *Handler) createInstrument(w http.ResponseWriter, r *http.Request) {
	in, err := h.readInstrument(r)
	if err != nil {
		writeError(r.Context(), w, h.logger, err)
		return
	}
	i, err := h.catalog.CreateInstrument(r.Context(), in)
	h.reply(w, r, http.StatusCreated, i, err)
}

func (h *Handler) updateInstrument(w http.ResponseWriter, r *http.Request, id int64) {
	in, err := h.readInstrument(r)
	if err != nil {
		writeError(r.Context(), w, h.logger, err)
		return
	}
	i, err := h.catalog.UpdateInstrument(r.Context(), id, in)
	h.reply(w, r, http.StatusOK, i, err)
}

func (h *Handler) deleteInstrument(w http.ResponseWriter, r *http.Request, id int64) {
	err := h.catalog.DeleteInstrument(r.Context(), id)
	h.reply(w, r, http.StatusOK, messageBody{Message: "instrument deleted"}, err)
}

// --- professors ---

func (h *Handler) listProfessors(w http.ResponseWriter, r *http.Request) {
	list, err := h.catalog.ListProfessors(r.Context())
	h.reply(w, r, http.StatusOK, list, err)
}

func (h *Handler) getProfessor(w http.ResponseWriter, r *http.Request, id int64) {
	p, err := h.catalog.GetProfessor(r.Context(), id)
	h.reply(w, r, http.StatusOK, p, err)
}

func (h *Handler) createProfessor(w http.ResponseWriter, r *http.Request) {
	in, err := h.readProfessor(r)
	if err != nil {
		writeError(r.Context(), w, h.logger, err)
		return
	}
	p, err := h.catalog.CreateProfessor(r.Context(), in)
	h.reply(w, r, http.StatusCreated, p, err)
}

func (h *Handler) updateProfessor(w http.ResponseWriter, r *http.Request, id int64) {
	in, err := h.readProfessor(r)
	if err != nil {
		writeError(r.Context(), w, h.logger, err)
		return
	}
	p, err := h.catalog.UpdateProfessor(r.Context(), id, in)
	h.reply(w, r, http.StatusOK, p, err)
}

func (h *Handler) deleteProfessor(w http.ResponseWriter, r *http.Request, id int64) {
	err := h.catalog.DeleteProfessor(r.Context(), id)
	h.reply(w, r, http.StatusOK, messageBody{Message: "professor deleted"}, err)
}
