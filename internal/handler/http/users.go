package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/pagesmith/pagesmith/internal/logger"
	"github.com/pagesmith/pagesmith/internal/service"
	"github.com/pagesmith/pagesmith/internal/utils"
	"github.com/pagesmith/pagesmith/models"
)

// authCookieTTL bounds the browser session; the token itself expires on
// its own schedule and is re-checked against the store on every
// mutating request.
const authCookieTTL = time.Hour

// setAuthCookie attaches the session token to the response, both as the
// auth cookie for browsers and as an Authorization header for API
// clients.
func setAuthCookie(w http.ResponseWriter, token models.Token) {
	http.SetCookie(w, &http.Cookie{
		Name:     authCookieName,
		Value:    token.SignedString,
		Path:     "/",
		Expires:  time.Now().Add(authCookieTTL),
		HttpOnly: true,
	})
	w.Header().Set("Authorization", fmt.Sprintf("Bearer %s", token.SignedString))
}

// clearAuthCookie expires the auth cookie immediately.
func clearAuthCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     authCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var user models.MutUser
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		log.Err(err).Str("func", "*Handler.createUser").Msg("invalid JSON was passed")
		h.respondError(w, r, ErrInvalidJSON)
		return
	}

	registeredUser, err := h.services.AuthService.Register(r.Context(), user)
	if err != nil {
		log.Err(err).Str("func", "*Handler.createUser").Msg("error registering user")
		h.respondError(w, r, err)
		return
	}

	h.respond(w, r, http.StatusCreated, registeredUser)
}

// login verifies credentials and opens a session: the issued token is
// stored on the account, set as the auth cookie and echoed in the
// Authorization header.
//
// Claiming the bootstrap root account answers 202 instead of 200, the
// same way the account's provisional state is signalled to admin tools.
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var user models.MutUser
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		log.Err(err).Str("func", "*Handler.login").Msg("invalid JSON was passed")
		h.respondError(w, r, ErrInvalidJSON)
		return
	}

	token, claimed, err := h.services.AuthService.Login(r.Context(), user)
	if err != nil {
		log.Err(err).Str("func", "*Handler.login").Msg("login failed")
		h.respondError(w, r, err)
		return
	}

	statusCode := http.StatusOK
	if claimed {
		statusCode = http.StatusAccepted
	}

	setAuthCookie(w, token)
	h.respond(w, r, statusCode, "logged in")
}

// logout revokes the session: the stored token is cleared so every
// previously issued token stops authenticating, and the cookie is
// expired.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	username, ok := utils.GetUsernameFromContext(r.Context())
	if !ok {
		log.Error().Str("func", "*Handler.logout").Msg("no authenticated username in context")
		h.respondError(w, r, service.ErrNotLoggedIn)
		return
	}

	if err := h.services.AuthService.Logout(r.Context(), username); err != nil {
		log.Err(err).Str("func", "*Handler.logout").Msg("error revoking session")
		h.respondError(w, r, err)
		return
	}

	clearAuthCookie(w)
	h.respond(w, r, http.StatusOK, "logged out")
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	id, err := idFromRequest(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	user, err := h.services.AuthService.GetUser(r.Context(), id)
	if err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.getUser").Msg("error getting user")
		h.respondError(w, r, err)
		return
	}

	h.respond(w, r, http.StatusOK, user)
}

// updateUser overwrites the caller's own credentials and rotates the
// session token, since tokens carry the username as subject.
func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	id, err := idFromRequest(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	var user models.MutUser
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		log.Err(err).Str("func", "*Handler.updateUser").Msg("invalid JSON was passed")
		h.respondError(w, r, ErrInvalidJSON)
		return
	}

	actor, ok := utils.GetUsernameFromContext(r.Context())
	if !ok {
		log.Error().Str("func", "*Handler.updateUser").Msg("no authenticated username in context")
		h.respondError(w, r, service.ErrNotLoggedIn)
		return
	}

	token, err := h.services.AuthService.UpdateUser(r.Context(), id, actor, user)
	if err != nil {
		log.Err(err).Str("func", "*Handler.updateUser").Msg("error updating user")
		h.respondError(w, r, err)
		return
	}

	setAuthCookie(w, token)
	h.respond(w, r, http.StatusOK, models.User{ID: id, Username: user.Username})
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := idFromRequest(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	if err := h.services.AuthService.DeleteUser(r.Context(), id); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.deleteUser").Msg("error deleting user")
		h.respondError(w, r, err)
		return
	}

	h.respond(w, r, http.StatusOK, id)
}
