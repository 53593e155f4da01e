package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyUsername   = errors.New("username is required")
	ErrInvalidUsername = errors.New("invalid username")
	ErrEmptyEmail      = errors.New("email is required")
	ErrInvalidEmail    = errors.New("invalid email")
	ErrEmptyPassword   = errors.New("password is required")
	ErrPasswordTooLong = errors.New("password is too long")
	ErrInvalidUserID   = errors.New("invalid user ID")
	ErrEmptyFileName   = errors.New("file name is required")
	ErrFileNameTooLong = errors.New("file name is too long")
	ErrInvalidFileSize = errors.New("invalid file size")
)
