package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-file-keeper/internal/logger"
	"github.com/MKhiriev/go-file-keeper/internal/utils"
)

// auth is an HTTP middleware that enforces JWT-based authentication.
//
// It inspects the incoming "Authorization" header, extracts the bearer token,
// validates it via [service.AuthService.ParseToken], and on success stores
// the authenticated user's ID in the request context via [utils.WithUserID]
// before delegating to the next handler. The request-scoped logger is
// replaced with a child carrying the user id.
//
// Rejections:
//   - The "Authorization" header is absent or blank: 403
//     ([ErrEmptyAuthorizationHeader]).
//   - The header is not "Bearer <token>" (any other scheme included) or the
//     token is empty: 401 ([ErrInvalidAuthorizationHeader] or [ErrEmptyToken]).
//   - The token has expired or is otherwise invalid: 401.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := strings.TrimSpace(r.Header.Get("Authorization"))
		if authHeader == "" {
			log.Err(ErrEmptyAuthorizationHeader).Send()
			writeError(w, r, ErrEmptyAuthorizationHeader)
			return
		}

		tokenString, err := getTokenFromAuthHeader(authHeader)
		if err != nil {
			log.Err(err).Send()
			writeError(w, r, err)
			return
		}

		ctx := r.Context()
		token, err := h.services.AuthService.ParseToken(ctx, tokenString)
		if err != nil {
			log.Err(err).Msg("error occurred during parsing token")
			writeError(w, r, err)
			return
		}

		ctx = utils.WithUserID(ctx, token.UserID)
		ctx = log.WithUserID(token.UserID).WithContext(ctx)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// getTokenFromAuthHeader extracts the token from a "Bearer <token>" header
// value, translating parse failures into the transport errors: any other
// shape or scheme is [ErrInvalidAuthorizationHeader], a missing token is
// [ErrEmptyToken].
func getTokenFromAuthHeader(authHeader string) (string, error) {
	token, err := utils.ParseBearerToken(authHeader)
	switch {
	case errors.Is(err, utils.ErrEmptyBearerToken):
		return "", ErrEmptyToken
	case err != nil:
		return "", ErrInvalidAuthorizationHeader
	}

	return token, nil
}
