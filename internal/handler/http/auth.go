package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/go-file-keeper/internal/app"
	"github.com/MKhiriev/go-file-keeper/internal/logger"
	"github.com/MKhiriev/go-file-keeper/internal/utils"
	"github.com/MKhiriev/go-file-keeper/models"
)

// maxJSONBodySize bounds account request bodies.
const maxJSONBodySize = 1 << 20

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request models.RegisterRequest
	if err := decodeJSON(w, r, &request); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		writeError(w, r, ErrInvalidJSON)
		return
	}

	registeredUser, err := h.services.AuthService.RegisterUser(ctx, request)
	if err != nil {
		log.Err(err).Str("username", request.Username).Msg("user registration failed")
		writeError(w, r, err)
		return
	}

	h.writeToken(w, r, registeredUser, app.MsgRegistered)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request models.LoginRequest
	if err := decodeJSON(w, r, &request); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		writeError(w, r, ErrInvalidJSON)
		return
	}

	foundUser, err := h.services.AuthService.Login(ctx, request)
	if err != nil {
		log.Err(err).Str("username", request.Username).Msg("login failed")
		writeError(w, r, err)
		return
	}

	log.Debug().Int64("id", foundUser.UserID).Msg("user successfully logged in")

	h.writeToken(w, r, foundUser, app.MsgLoginSuccessful)
}

func (h *Handler) resetPassword(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var request models.ResetPasswordRequest
	if err := decodeJSON(w, r, &request); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		writeError(w, r, ErrInvalidJSON)
		return
	}

	if err := h.services.AuthService.ResetPassword(r.Context(), request); err != nil {
		log.Err(err).Msg("password reset failed")
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.MessageResponse{Message: app.MsgPasswordReset}, http.StatusOK)
}

// writeToken issues a token for user and returns it both in the
// Authorization header and in the JSON body.
func (h *Handler) writeToken(w http.ResponseWriter, r *http.Request, user models.User, message string) {
	token, err := h.services.AuthService.CreateToken(r.Context(), user)
	if err != nil {
		logger.FromRequest(r).Err(err).Msg("creation of token failed")
		writeError(w, r, err)
		return
	}

	w.Header().Set("Authorization", utils.BearerScheme+" "+token.SignedString)
	utils.WriteJSON(w, models.TokenResponse{Message: message, Token: token.SignedString}, http.StatusOK)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBodySize)).Decode(dst)
}
