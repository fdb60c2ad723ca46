package http

import (
	"encoding/json"
	"net/http"

	"github.com/pagesmith/pagesmith/internal/logger"
	"github.com/pagesmith/pagesmith/models"
)

func (h *Handler) createModule(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var module models.MutModule
	if err := json.NewDecoder(r.Body).Decode(&module); err != nil {
		log.Err(err).Str("func", "*Handler.createModule").Msg("invalid JSON was passed")
		h.respondError(w, r, ErrInvalidJSON)
		return
	}

	if err := h.services.ModuleService.Create(r.Context(), module); err != nil {
		log.Err(err).Str("func", "*Handler.createModule").Msg("error creating module")
		h.respondError(w, r, err)
		return
	}

	h.respond(w, r, http.StatusCreated, module)
}

// listModules serves flat modules only; categorized modules are listed
// per category or through the page join.
func (h *Handler) listModules(w http.ResponseWriter, r *http.Request) {
	modules, err := h.services.ModuleService.List(r.Context())
	if err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.listModules").Msg("error listing modules")
		h.respondError(w, r, err)
		return
	}

	h.respond(w, r, http.StatusOK, modules)
}

func (h *Handler) getModule(w http.ResponseWriter, r *http.Request) {
	id, err := idFromRequest(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	module, err := h.services.ModuleService.GetByID(r.Context(), id)
	if err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.getModule").Msg("error getting module")
		h.respondError(w, r, err)
		return
	}

	h.respond(w, r, http.StatusOK, module)
}

func (h *Handler) listModulesByCategory(w http.ResponseWriter, r *http.Request) {
	id, err := idFromRequest(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	modules, err := h.services.ModuleService.ListByCategory(r.Context(), id)
	if err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.listModulesByCategory").Msg("error listing modules by category")
		h.respondError(w, r, err)
		return
	}

	h.respond(w, r, http.StatusOK, modules)
}

func (h *Handler) updateModule(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	id, err := idFromRequest(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	var module models.MutModule
	if err := json.NewDecoder(r.Body).Decode(&module); err != nil {
		log.Err(err).Str("func", "*Handler.updateModule").Msg("invalid JSON was passed")
		h.respondError(w, r, ErrInvalidJSON)
		return
	}

	if err := h.services.ModuleService.Update(r.Context(), id, module); err != nil {
		log.Err(err).Str("func", "*Handler.updateModule").Msg("error updating module")
		h.respondError(w, r, err)
		return
	}

	h.respond(w, r, http.StatusOK, module)
}

func (h *Handler) deleteModule(w http.ResponseWriter, r *http.Request) {
	id, err := idFromRequest(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	if err := h.services.ModuleService.Delete(r.Context(), id); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.deleteModule").Msg("error deleting module")
		h.respondError(w, r, err)
		return
	}

	h.respond(w, r, http.StatusOK, id)
}
