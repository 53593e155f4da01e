package models

// TokenResponse is returned by register and login.
type TokenResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

// MessageResponse is returned by operations that only report an outcome.
type MessageResponse struct {
	Message string `json:"message"`
}

// UploadResponse is returned by POST /upload.
type UploadResponse struct {
	Message string `json:"message"`
	FileID  int64  `json:"file_id"`
}

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error string `json:"error"`
}
