package http

import (
	"net/http"

	"github.com/pagesmith/pagesmith/internal/logger"
	"github.com/pagesmith/pagesmith/internal/utils"
	"github.com/pagesmith/pagesmith/models"
)

// respond writes the uniform success envelope: the status code repeated
// in the body next to the payload.
func (h *Handler) respond(w http.ResponseWriter, r *http.Request, statusCode int, payload any) {
	log := logger.FromRequest(r)

	if _, err := utils.WriteJSON(w, models.Response{Code: statusCode, Message: payload}, statusCode); err != nil {
		log.Err(err).Msg("error writing response")
	}
}

// respondError maps err onto an HTTP status and writes the uniform
// error envelope. Internal errors are not echoed to the client.
func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)

	statusCode := statusFromError(err)

	message := err.Error()
	if statusCode == http.StatusInternalServerError {
		message = "unknown internal error"
	}

	if _, err := utils.WriteJSON(w, models.ErrorResponse{
		Code:    statusCode,
		Error:   http.StatusText(statusCode),
		Message: message,
	}, statusCode); err != nil {
		log.Err(err).Msg("error writing error response")
	}
}
