package http

import (
	"errors"
	"net/http"

	"github.com/pagesmith/pagesmith/internal/render"
	"github.com/pagesmith/pagesmith/internal/service"
	"github.com/pagesmith/pagesmith/internal/store"
)

var errorStatusMap = map[error]int{
	ErrInvalidJSON:   http.StatusBadRequest,
	ErrInvalidID:     http.StatusBadRequest,
	ErrMissingToken:  http.StatusUnauthorized,
	ErrNoLocalConfig: http.StatusNotFound,

	service.ErrInvalidDataProvided:     http.StatusBadRequest,
	service.ErrWrongPassword:           http.StatusUnauthorized,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,
	service.ErrNotLoggedIn:             http.StatusUnauthorized,
	service.ErrRootAlreadyClaimed:      http.StatusForbidden,
	service.ErrNotResourceOwner:        http.StatusForbidden,
	service.ErrTokenCreationFailed:     http.StatusInternalServerError,

	store.ErrNotFound:      http.StatusNotFound,
	store.ErrUsernameTaken: http.StatusConflict,

	store.ErrBuildingSQLQuery:   http.StatusInternalServerError,
	store.ErrExecutingQuery:     http.StatusInternalServerError,
	store.ErrExecutingStatement: http.StatusInternalServerError,
	store.ErrScanningRow:        http.StatusInternalServerError,
	store.ErrScanningRows:       http.StatusInternalServerError,

	render.ErrTemplateNotFound: http.StatusNotFound,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
