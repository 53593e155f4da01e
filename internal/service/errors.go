package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrWrongPassword       = errors.New("wrong password")

	ErrTokenCreationFailed = errors.New("token creation failed")
	ErrTokenIsExpired      = errors.New("token is expired")
	ErrTokenIsInvalid      = errors.New("token is invalid")

	// ErrForbidden covers both a missing file and a file owned by someone
	// else. Callers must not be able to tell the two apart.
	ErrForbidden = errors.New("access denied")

	ErrUploadFailed = errors.New("file upload failed")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
	ErrStorageUnavailable    = errors.New("storage unavailable")
)
