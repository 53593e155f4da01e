package models

// RegisterRequest is the body of POST /register.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the body of POST /login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ResetPasswordRequest is the body of POST /reset-password.
// The account is located by email, not by username.
type ResetPasswordRequest struct {
	Email       string `json:"email"`
	NewPassword string `json:"newPassword"`
}

// UploadRequest carries the metadata of a multipart upload. The content itself
// is streamed separately and never buffered in this struct.
type UploadRequest struct {
	UserID      int64
	FileName    string
	ContentType string
	Size        int64
}
