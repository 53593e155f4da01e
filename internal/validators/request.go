package validators

import (
	"context"
	"net/mail"
	"strings"
	"unicode"

	"github.com/MKhiriev/go-file-keeper/models"
)

// Field name constants used to restrict validation to a subset of fields.
const (
	FieldUsername    = "username"
	FieldEmail       = "email"
	FieldPassword    = "password"
	FieldNewPassword = "new_password"
	FieldUserID      = "user_id"
	FieldFileName    = "file_name"
	FieldSize        = "size"
)

const (
	// maxPasswordLength is the bcrypt input limit in bytes.
	maxPasswordLength = 72
	maxUsernameLength = 64
	maxFileNameLength = 255
)

// RequestValidator implements Validator for the account and upload
// requests: RegisterRequest, LoginRequest, ResetPasswordRequest and
// UploadRequest. Value and pointer forms are accepted.
type RequestValidator struct {
}

func NewRequestValidator() Validator {
	return &RequestValidator{}
}

// Validate dispatches on the dynamic type of obj. Returns ErrUnsupportedType
// for anything else. When fields is empty every field of the request is
// checked.
func (v *RequestValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.RegisterRequest:
		return v.validateRegisterRequest(value, fields...)
	case *models.RegisterRequest:
		return v.validateRegisterRequest(*value, fields...)

	case models.LoginRequest:
		return v.validateLoginRequest(value, fields...)
	case *models.LoginRequest:
		return v.validateLoginRequest(*value, fields...)

	case models.ResetPasswordRequest:
		return v.validateResetPasswordRequest(value, fields...)
	case *models.ResetPasswordRequest:
		return v.validateResetPasswordRequest(*value, fields...)

	case models.UploadRequest:
		return v.validateUploadRequest(value, fields...)
	case *models.UploadRequest:
		return v.validateUploadRequest(*value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *RequestValidator) validateRegisterRequest(request models.RegisterRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUsername, FieldEmail, FieldPassword}
	}

	for _, f := range fields {
		var err error
		switch f {
		case FieldUsername:
			err = validateUsername(request.Username)
		case FieldEmail:
			err = validateEmail(request.Email)
		case FieldPassword:
			err = validatePassword(request.Password)
		default:
			err = ErrUnknownField
		}
		if err != nil {
			return err
		}
	}

	return nil
}

// validateLoginRequest only checks presence: the username format rules apply
// to new accounts, and a login attempt with a malformed name simply finds
// no user.
func (v *RequestValidator) validateLoginRequest(request models.LoginRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUsername, FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldUsername:
			if request.Username == "" {
				return ErrEmptyUsername
			}
		case FieldPassword:
			if err := validatePassword(request.Password); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *RequestValidator) validateResetPasswordRequest(request models.ResetPasswordRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEmail, FieldNewPassword}
	}

	for _, f := range fields {
		var err error
		switch f {
		case FieldEmail:
			err = validateEmail(request.Email)
		case FieldNewPassword:
			err = validatePassword(request.NewPassword)
		default:
			err = ErrUnknownField
		}
		if err != nil {
			return err
		}
	}

	return nil
}

func (v *RequestValidator) validateUploadRequest(request models.UploadRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUserID, FieldFileName, FieldSize}
	}

	for _, f := range fields {
		switch f {
		case FieldUserID:
			if request.UserID <= 0 {
				return ErrInvalidUserID
			}
		case FieldFileName:
			if strings.TrimSpace(request.FileName) == "" {
				return ErrEmptyFileName
			}
			if len(request.FileName) > maxFileNameLength {
				return ErrFileNameTooLong
			}
		case FieldSize:
			if request.Size < 0 {
				return ErrInvalidFileSize
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func validateUsername(username string) error {
	if username == "" {
		return ErrEmptyUsername
	}
	if len(username) > maxUsernameLength {
		return ErrInvalidUsername
	}
	for _, r := range username {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return ErrInvalidUsername
		}
	}

	return nil
}

// validateEmail accepts a bare RFC 5322 address. Display-name forms such as
// "Bob <bob@example.com>" are rejected.
func validateEmail(email string) error {
	if email == "" {
		return ErrEmptyEmail
	}

	address, err := mail.ParseAddress(email)
	if err != nil || address.Address != email {
		return ErrInvalidEmail
	}

	return nil
}

func validatePassword(password string) error {
	if password == "" {
		return ErrEmptyPassword
	}
	if len(password) > maxPasswordLength {
		return ErrPasswordTooLong
	}

	return nil
}
