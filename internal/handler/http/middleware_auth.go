package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/pagesmith/pagesmith/internal/logger"
	"github.com/pagesmith/pagesmith/internal/utils"
)

// authCookieName is the cookie the login endpoint sets and the auth
// middleware reads. The same token also travels in the Authorization
// header for API clients.
const authCookieName = "auth"

// restrictedMethods lists the HTTP methods that require authentication.
// Reads are public: the display route and every GET endpoint work
// without a session.
var restrictedMethods = map[string]struct{}{
	http.MethodPost:   {},
	http.MethodPut:    {},
	http.MethodDelete: {},
}

// auth is an HTTP middleware that enforces session-token authentication
// on mutating requests.
//
// Requests with a method outside restrictedMethods pass through
// untouched. For the rest the middleware extracts the token from the
// auth cookie or the Authorization header, validates it via
// [service.AuthService.Authenticate] — which includes the verbatim
// comparison against the stored session token — and stores the
// authenticated username in the request context under
// [utils.UsernameCtxKey].
//
// The login route is mounted outside this middleware; everything else
// under /v1 goes through it.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, restricted := restrictedMethods[r.Method]; !restricted {
			next.ServeHTTP(w, r)
			return
		}

		log := logger.FromRequest(r)

		tokenString, err := tokenFromRequest(r)
		if err != nil {
			log.Err(err).Msg("mutating request without a token")
			h.respondError(w, r, err)
			return
		}

		ctx := r.Context()
		user, err := h.services.AuthService.Authenticate(ctx, tokenString)
		if err != nil {
			log.Err(err).Msg("request authentication failed")
			h.respondError(w, r, err)
			return
		}

		// downstream handlers read the username instead of re-parsing the token
		ctx = context.WithValue(ctx, utils.UsernameCtxKey, user.Username)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// tokenFromRequest extracts the session token, preferring the auth
// cookie and falling back to the Authorization header. The header is
// accepted both bare and with a "Bearer " scheme prefix.
func tokenFromRequest(r *http.Request) (string, error) {
	if cookie, err := r.Cookie(authCookieName); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}

	authHeader := strings.TrimSpace(r.Header.Get("Authorization"))
	if authHeader == "" {
		return "", ErrMissingToken
	}

	if strings.Contains(authHeader, " ") {
		return utils.ParseBearerToken(authHeader)
	}

	return authHeader, nil
}
