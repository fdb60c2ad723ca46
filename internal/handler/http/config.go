package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pagesmith/pagesmith/internal/config"
	"github.com/pagesmith/pagesmith/internal/logger"
	"github.com/pagesmith/pagesmith/models"
)

// Database-backed key/value configuration.

func (h *Handler) listConfig(w http.ResponseWriter, r *http.Request) {
	entries, err := h.services.ConfigService.List(r.Context())
	if err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.listConfig").Msg("error listing config entries")
		h.respondError(w, r, err)
		return
	}

	h.respond(w, r, http.StatusOK, entries)
}

func (h *Handler) getConfigEntry(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	entry, err := h.services.ConfigService.Get(r.Context(), key)
	if err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.getConfigEntry").Msg("error getting config entry")
		h.respondError(w, r, err)
		return
	}

	h.respond(w, r, http.StatusOK, entry)
}

// putConfigEntry upserts one entry. The key comes from the path; a key
// inside the body is ignored.
func (h *Handler) putConfigEntry(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var entry models.ConfigEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		log.Err(err).Str("func", "*Handler.putConfigEntry").Msg("invalid JSON was passed")
		h.respondError(w, r, ErrInvalidJSON)
		return
	}
	if key := chi.URLParam(r, "key"); key != "" {
		entry.Key = key
	}

	if err := h.services.ConfigService.Put(r.Context(), entry); err != nil {
		log.Err(err).Str("func", "*Handler.putConfigEntry").Msg("error upserting config entry")
		h.respondError(w, r, err)
		return
	}

	h.respond(w, r, http.StatusOK, entry)
}

func (h *Handler) deleteConfigEntry(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	if err := h.services.ConfigService.Delete(r.Context(), key); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.deleteConfigEntry").Msg("error deleting config entry")
		h.respondError(w, r, err)
		return
	}

	h.respond(w, r, http.StatusOK, key)
}

// File-backed server configuration (the JSON config file the server was
// started with).

func (h *Handler) readLocalConfig(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	if h.jsonConfigPath == "" {
		h.respondError(w, r, ErrNoLocalConfig)
		return
	}

	cfg, err := config.ReadJSONFile(h.jsonConfigPath)
	if err != nil {
		log.Err(err).Str("func", "*Handler.readLocalConfig").Msg("error reading config file")
		h.respondError(w, r, err)
		return
	}

	h.respond(w, r, http.StatusOK, cfg)
}

func (h *Handler) updateLocalConfig(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	if h.jsonConfigPath == "" {
		h.respondError(w, r, ErrNoLocalConfig)
		return
	}

	var cfg config.StructuredJSONConfig
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		log.Err(err).Str("func", "*Handler.updateLocalConfig").Msg("invalid JSON was passed")
		h.respondError(w, r, ErrInvalidJSON)
		return
	}

	if err := config.WriteJSONFile(h.jsonConfigPath, &cfg); err != nil {
		log.Err(err).Str("func", "*Handler.updateLocalConfig").Msg("error writing config file")
		h.respondError(w, r, err)
		return
	}

	// changes take effect on the next restart
	h.respond(w, r, http.StatusOK, cfg)
}
