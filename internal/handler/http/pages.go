package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/pagesmith/pagesmith/internal/logger"
	"github.com/pagesmith/pagesmith/models"
)

// idFromRequest parses the {id} path parameter.
func idFromRequest(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, ErrInvalidID
	}
	return id, nil
}

func (h *Handler) createPage(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var page models.MutPage
	if err := json.NewDecoder(r.Body).Decode(&page); err != nil {
		log.Err(err).Str("func", "*Handler.createPage").Msg("invalid JSON was passed")
		h.respondError(w, r, ErrInvalidJSON)
		return
	}

	if err := h.services.PageService.Create(r.Context(), page); err != nil {
		log.Err(err).Str("func", "*Handler.createPage").Msg("error creating page")
		h.respondError(w, r, err)
		return
	}

	h.respond(w, r, http.StatusCreated, page)
}

func (h *Handler) listPages(w http.ResponseWriter, r *http.Request) {
	pages, err := h.services.PageService.List(r.Context())
	if err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.listPages").Msg("error listing pages")
		h.respondError(w, r, err)
		return
	}

	h.respond(w, r, http.StatusOK, pages)
}

func (h *Handler) getPage(w http.ResponseWriter, r *http.Request) {
	id, err := idFromRequest(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	page, err := h.services.PageService.GetByID(r.Context(), id)
	if err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.getPage").Msg("error getting page")
		h.respondError(w, r, err)
		return
	}

	h.respond(w, r, http.StatusOK, page)
}

// getPageJoinModules serves the page together with every module that
// belongs to it, flat and categorized alike.
func (h *Handler) getPageJoinModules(w http.ResponseWriter, r *http.Request) {
	id, err := idFromRequest(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	page, err := h.services.PageService.GetWithModules(r.Context(), id)
	if err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.getPageJoinModules").Msg("error joining page with modules")
		h.respondError(w, r, err)
		return
	}

	h.respond(w, r, http.StatusOK, page)
}

func (h *Handler) updatePage(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	id, err := idFromRequest(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	var page models.MutPage
	if err := json.NewDecoder(r.Body).Decode(&page); err != nil {
		log.Err(err).Str("func", "*Handler.updatePage").Msg("invalid JSON was passed")
		h.respondError(w, r, ErrInvalidJSON)
		return
	}

	if err := h.services.PageService.Update(r.Context(), id, page); err != nil {
		log.Err(err).Str("func", "*Handler.updatePage").Msg("error updating page")
		h.respondError(w, r, err)
		return
	}

	h.respond(w, r, http.StatusOK, page)
}

func (h *Handler) deletePage(w http.ResponseWriter, r *http.Request) {
	id, err := idFromRequest(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	if err := h.services.PageService.Delete(r.Context(), id); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.deletePage").Msg("error deleting page")
		h.respondError(w, r, err)
		return
	}

	h.respond(w, r, http.StatusOK, id)
}
