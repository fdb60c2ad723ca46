package http

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/pagesmith/pagesmith/internal/logger"
	"github.com/pagesmith/pagesmith/internal/store"
)

// displayPage serves the public site: it resolves the request path to a
// page, composes the render-ready view and executes the page's template
// (named by the page's url_name). Unknown paths render the configured
// not-found template with a 404 instead of a JSON error.
func (h *Handler) displayPage(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	view, err := h.services.PageService.ResolveByURL(r.Context(), r.URL.Path)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.renderNotFound(w, r)
			return
		}
		log.Err(err).Str("func", "*Handler.displayPage").Msg("error resolving page")
		h.respondError(w, r, err)
		return
	}

	// render into a buffer first so a template failure can still
	// produce a clean error response
	var buf bytes.Buffer
	if err := h.registry.Render(&buf, view.Page.URLName, view); err != nil {
		log.Err(err).Str("template", view.Page.URLName).Msg("error rendering page template")
		h.respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		log.Err(err).Msg("error writing rendered page")
	}
}

func (h *Handler) renderNotFound(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var buf bytes.Buffer
	if err := h.registry.Render(&buf, h.notFoundTemplate, nil); err != nil {
		log.Err(err).Str("template", h.notFoundTemplate).Msg("error rendering not-found template")
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	if _, err := buf.WriteTo(w); err != nil {
		log.Err(err).Msg("error writing rendered page")
	}
}
