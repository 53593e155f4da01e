// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/go-file-keeper/internal/config"
	"github.com/MKhiriev/go-file-keeper/internal/logger"
	"github.com/MKhiriev/go-file-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestAdapter creates an httpServerAdapter pointed at the test server.
func newTestAdapter(t *testing.T, serverURL string) *httpServerAdapter {
	t.Helper()
	adapterCfg := config.ClientAdapter{HTTPAddress: serverURL, RequestTimeout: 5 * time.Second}

	a, err := NewHTTPServerAdapter(adapterCfg, logger.Nop())
	require.NoError(t, err)
	return a.(*httpServerAdapter)
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

// ── NewHTTPServerAdapter ────────────────────────────────────────────────────

func TestNewHTTPServerAdapter_EmptyAddress(t *testing.T) {
	_, err := NewHTTPServerAdapter(config.ClientAdapter{HTTPAddress: "  "}, logger.Nop())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyAddress)
}

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"localhost:5001", "http://localhost:5001"},
		{"http://localhost:5001/", "http://localhost:5001"},
		{"https://files.example.com", "https://files.example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// ── Register / Login ────────────────────────────────────────────────────────

func TestRegister_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/register", r.URL.Path)

		var req models.RegisterRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "alice", req.Username)
		assert.Equal(t, "alice@example.com", req.Email)

		w.Header().Set("Authorization", "Bearer header-token")
		writeJSON(t, w, http.StatusOK, models.TokenResponse{Message: "User registered", Token: "header-token"})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	token, err := a.Register(context.Background(), models.RegisterRequest{
		Username: "alice", Email: "alice@example.com", Password: "secret",
	})

	require.NoError(t, err)
	assert.Equal(t, "header-token", token)
	assert.Equal(t, "header-token", a.Token())
}

func TestRegister_Conflict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusConflict, models.ErrorResponse{Error: "username already exists"})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.Register(context.Background(), models.RegisterRequest{Username: "alice"})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConflict)
	assert.Contains(t, err.Error(), "username already exists")
	assert.Empty(t, a.Token())
}

func TestLogin_TokenFromBodyWhenHeaderMissing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/login", r.URL.Path)
		writeJSON(t, w, http.StatusOK, models.TokenResponse{Message: "Login successful", Token: "body-token"})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	token, err := a.Login(context.Background(), models.LoginRequest{Username: "alice", Password: "secret"})

	require.NoError(t, err)
	assert.Equal(t, "body-token", token)
	assert.Equal(t, "body-token", a.Token())
}

func TestLogin_NoToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, models.MessageResponse{Message: "ok"})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.Login(context.Background(), models.LoginRequest{Username: "alice", Password: "secret"})

	assert.ErrorIs(t, err, ErrNoToken)
}

func TestLogin_StatusMapping(t *testing.T) {
	tests := []struct {
		status  int
		wantErr error
	}{
		{http.StatusBadRequest, ErrBadRequest},
		{http.StatusUnauthorized, ErrUnauthorized},
		{http.StatusNotFound, ErrNotFound},
		{http.StatusInternalServerError, ErrInternalServerError},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				writeJSON(t, w, tt.status, models.ErrorResponse{Error: "nope"})
			}))
			defer srv.Close()

			a := newTestAdapter(t, srv.URL)
			_, err := a.Login(context.Background(), models.LoginRequest{Username: "alice", Password: "x"})

			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestResetPassword_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/reset-password", r.URL.Path)

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "alice@example.com", req["email"])
		assert.Equal(t, "n3w", req["newPassword"])

		writeJSON(t, w, http.StatusOK, models.MessageResponse{Message: "Password reset successful"})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	err := a.ResetPassword(context.Background(), models.ResetPasswordRequest{Email: "alice@example.com", NewPassword: "n3w"})

	require.NoError(t, err)
}

// ── Upload / List ───────────────────────────────────────────────────────────

func TestUpload_SendsMultipartWithToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/upload", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		content, _ := io.ReadAll(file)

		assert.Equal(t, "notes.txt", header.Filename)
		assert.Equal(t, "hello", string(content))

		writeJSON(t, w, http.StatusOK, models.UploadResponse{Message: "File uploaded successfully", FileID: 7})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetToken(" tok ")

	id, err := a.Upload(context.Background(), "notes.txt", strings.NewReader("hello"))

	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
}

func TestUpload_TooLarge(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusRequestEntityTooLarge, models.ErrorResponse{Error: "file is too large"})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.Upload(context.Background(), "big.bin", strings.NewReader("x"))

	assert.ErrorIs(t, err, ErrPayloadTooLarge)
}

func TestList_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/files", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":1,"file_name":"a.txt"},{"id":2,"file_name":"b.txt"}]`))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	files, err := a.List(context.Background())

	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, int64(1), files[0].FileID)
	assert.Equal(t, "b.txt", files[1].FileName)
}

func TestList_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusUnauthorized, models.ErrorResponse{Error: "token is expired"})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.List(context.Background())

	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Contains(t, err.Error(), "token is expired")
}

// ── Download / Delete / Version ─────────────────────────────────────────────

func TestDownload_StreamsBodyAndFileName(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/download/42", r.URL.Path)
		w.Header().Set("Content-Disposition", `attachment; filename="report.pdf"`)
		_, _ = w.Write([]byte("%PDF-1.7"))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	var buf bytes.Buffer

	name, err := a.Download(context.Background(), 42, &buf)

	require.NoError(t, err)
	assert.Equal(t, "report.pdf", name)
	assert.Equal(t, "%PDF-1.7", buf.String())
}

func TestDownload_Forbidden(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusForbidden, models.ErrorResponse{Error: "access denied"})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	var buf bytes.Buffer

	_, err := a.Download(context.Background(), 1, &buf)

	assert.ErrorIs(t, err, ErrForbidden)
	assert.Zero(t, buf.Len(), "error body must not leak into dst")
}

func TestDelete_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/delete/3", r.URL.Path)
		writeJSON(t, w, http.StatusOK, models.MessageResponse{Message: "File deleted successfully"})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)

	require.NoError(t, a.Delete(context.Background(), 3))
}

func TestVersion_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("v1.2.0\n"))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	v, err := a.Version(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "v1.2.0", v)
}

// ── mapHTTPStatus ───────────────────────────────────────────────────────────

func TestMapHTTPStatus(t *testing.T) {
	assert.NoError(t, mapHTTPStatus(http.StatusOK, nil))
	assert.NoError(t, mapHTTPStatus(http.StatusNoContent, nil))

	err := mapHTTPStatus(http.StatusTeapot, nil)
	require.Error(t, err)
	assert.Equal(t, "http 418: I'm a teapot", err.Error())

	err = mapHTTPStatus(http.StatusBadGateway, []byte("upstream down"))
	assert.ErrorIs(t, err, ErrBadGateway)
	assert.Contains(t, err.Error(), "upstream down")
}

func TestFileNameFromDisposition(t *testing.T) {
	assert.Equal(t, "a b.txt", fileNameFromDisposition(`inline; filename="a b.txt"`))
	assert.Equal(t, "", fileNameFromDisposition(""))
	assert.Equal(t, "", fileNameFromDisposition("attachment"))
}
