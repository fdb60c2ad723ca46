package http

import (
	"encoding/json"
	"net/http"

	"github.com/pagesmith/pagesmith/internal/logger"
	"github.com/pagesmith/pagesmith/models"
)

func (h *Handler) createCategory(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var category models.MutCategory
	if err := json.NewDecoder(r.Body).Decode(&category); err != nil {
		log.Err(err).Str("func", "*Handler.createCategory").Msg("invalid JSON was passed")
		h.respondError(w, r, ErrInvalidJSON)
		return
	}

	if err := h.services.CategoryService.Create(r.Context(), category); err != nil {
		log.Err(err).Str("func", "*Handler.createCategory").Msg("error creating category")
		h.respondError(w, r, err)
		return
	}

	h.respond(w, r, http.StatusCreated, category)
}

func (h *Handler) getCategory(w http.ResponseWriter, r *http.Request) {
	id, err := idFromRequest(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	category, err := h.services.CategoryService.GetByID(r.Context(), id)
	if err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.getCategory").Msg("error getting category")
		h.respondError(w, r, err)
		return
	}

	h.respond(w, r, http.StatusOK, category)
}

func (h *Handler) updateCategory(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	id, err := idFromRequest(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	var category models.MutCategory
	if err := json.NewDecoder(r.Body).Decode(&category); err != nil {
		log.Err(err).Str("func", "*Handler.updateCategory").Msg("invalid JSON was passed")
		h.respondError(w, r, ErrInvalidJSON)
		return
	}

	if err := h.services.CategoryService.Update(r.Context(), id, category); err != nil {
		log.Err(err).Str("func", "*Handler.updateCategory").Msg("error updating category")
		h.respondError(w, r, err)
		return
	}

	h.respond(w, r, http.StatusOK, category)
}

func (h *Handler) deleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := idFromRequest(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	if err := h.services.CategoryService.Delete(r.Context(), id); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.deleteCategory").Msg("error deleting category")
		h.respondError(w, r, err)
		return
	}

	h.respond(w, r, http.StatusOK, id)
}
