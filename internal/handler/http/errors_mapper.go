package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-file-keeper/internal/app"
	"github.com/MKhiriev/go-file-keeper/internal/logger"
	"github.com/MKhiriev/go-file-keeper/internal/service"
	"github.com/MKhiriev/go-file-keeper/internal/store"
	"github.com/MKhiriev/go-file-keeper/internal/utils"
)

var errorStatusMap = map[error]int{
	ErrEmptyAuthorizationHeader:   http.StatusForbidden,
	ErrInvalidAuthorizationHeader: http.StatusUnauthorized,
	ErrEmptyToken:                 http.StatusUnauthorized,
	ErrInvalidJSON:                http.StatusBadRequest,
	ErrNoFileUploaded:             http.StatusBadRequest,
	ErrInvalidFileID:              http.StatusBadRequest,
	ErrFileTooLarge:               http.StatusRequestEntityTooLarge,

	service.ErrInvalidDataProvided: http.StatusBadRequest,
	service.ErrWrongPassword:       http.StatusUnauthorized,
	service.ErrTokenIsExpired:      http.StatusUnauthorized,
	service.ErrTokenIsInvalid:      http.StatusUnauthorized,
	service.ErrForbidden:           http.StatusForbidden,
	service.ErrStorageUnavailable:  http.StatusServiceUnavailable,

	store.ErrUsernameAlreadyExists: http.StatusConflict,
	store.ErrEmailAlreadyExists:    http.StatusConflict,
	store.ErrNoUserWasFound:        http.StatusNotFound,
	store.ErrBlobNotFound:          http.StatusNotFound,
}

// statusFromError returns the HTTP status of err together with the sentinel
// it matched. Unknown errors map to 500 and a nil sentinel.
func statusFromError(err error) (int, error) {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status, target
		}
	}
	return http.StatusInternalServerError, nil
}

// writeError maps err to a status and writes the {"error": ...} body.
//
// The body carries the matched sentinel's message only, so driver or file
// system details never reach the client. Validation failures are the
// exception: their full chain names the offending field.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, target := statusFromError(err)

	message := app.MsgInternalServerError
	switch {
	case target == nil:
		logger.FromRequest(r).Err(err).Msg("unexpected error")
	case errors.Is(target, service.ErrInvalidDataProvided):
		message = err.Error()
	default:
		message = target.Error()
	}

	utils.WriteError(w, message, status)
}
