package client

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/MKhiriev/go-file-keeper/internal/adapter"
	"github.com/MKhiriev/go-file-keeper/internal/logger"
	"github.com/MKhiriev/go-file-keeper/internal/mock"
	"github.com/MKhiriev/go-file-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// ── Helpers ──────────────────────────────────────────────────────────────────

type testApp struct {
	app    *App
	server *mock.MockServerAdapter
	tokens TokenStore
	stdout *bytes.Buffer
}

func newTestApp(t *testing.T, stdin string) testApp {
	t.Helper()

	ctrl := gomock.NewController(t)
	server := mock.NewMockServerAdapter(ctrl)
	tokens := NewFileTokenStore(filepath.Join(t.TempDir(), "token"))
	stdout := &bytes.Buffer{}

	a := newApp(server, tokens, models.NewAppBuildInfo("v0.1.0", "2026-10-16", "abc123"),
		strings.NewReader(stdin), stdout, logger.Nop())

	return testApp{app: a, server: server, tokens: tokens, stdout: stdout}
}

func loggedIn(t *testing.T, ta testApp) {
	t.Helper()
	require.NoError(t, ta.tokens.Save("saved-token"))
	ta.server.EXPECT().SetToken("saved-token")
}

// ── Run ──────────────────────────────────────────────────────────────────────

func TestRun_NoCommand(t *testing.T) {
	ta := newTestApp(t, "")

	err := ta.app.Run(context.Background(), nil)

	assert.ErrorIs(t, err, ErrMissingArgument)
	assert.Contains(t, ta.stdout.String(), "usage:")
}

func TestRun_Help(t *testing.T) {
	ta := newTestApp(t, "")

	require.NoError(t, ta.app.Run(context.Background(), []string{"help"}))
	assert.Contains(t, ta.stdout.String(), "upload [-name NAME] PATH")
}

func TestRun_UnknownCommand(t *testing.T) {
	ta := newTestApp(t, "")

	err := ta.app.Run(context.Background(), []string{"share"})
	assert.ErrorIs(t, err, ErrUnknownCommand)
}

func TestRun_AuthedCommandWithoutToken(t *testing.T) {
	ta := newTestApp(t, "")

	err := ta.app.Run(context.Background(), []string{"list"})
	assert.ErrorIs(t, err, ErrNotLoggedIn)
}

// ── Account commands ─────────────────────────────────────────────────────────

func TestRegister_SavesToken(t *testing.T) {
	ta := newTestApp(t, "")
	ta.server.EXPECT().
		Register(gomock.Any(), models.RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "secret"}).
		Return("new-token", nil)

	err := ta.app.Run(context.Background(), []string{"register", "-username", "alice", "-email", "alice@example.com", "-password", "secret"})
	require.NoError(t, err)

	token, err := ta.tokens.Load()
	require.NoError(t, err)
	assert.Equal(t, "new-token", token)
	assert.Contains(t, ta.stdout.String(), "Registered and logged in")
}

func TestRegister_MissingFlags(t *testing.T) {
	ta := newTestApp(t, "")

	err := ta.app.Run(context.Background(), []string{"register", "-username", "alice"})
	assert.ErrorIs(t, err, ErrMissingArgument)
}

func TestLogin_ReadsPasswordFromStdin(t *testing.T) {
	ta := newTestApp(t, "piped-secret\n")
	ta.server.EXPECT().
		Login(gomock.Any(), models.LoginRequest{Username: "alice", Password: "piped-secret"}).
		Return("login-token", nil)

	require.NoError(t, ta.app.Run(context.Background(), []string{"login", "-username", "alice"}))

	token, err := ta.tokens.Load()
	require.NoError(t, err)
	assert.Equal(t, "login-token", token)
}

func TestLogin_WrongPasswordKeepsOldToken(t *testing.T) {
	ta := newTestApp(t, "")
	require.NoError(t, ta.tokens.Save("old"))
	ta.server.EXPECT().Login(gomock.Any(), gomock.Any()).Return("", adapter.ErrUnauthorized)

	err := ta.app.Run(context.Background(), []string{"login", "-username", "alice", "-password", "bad"})
	assert.ErrorIs(t, err, adapter.ErrUnauthorized)

	token, _ := ta.tokens.Load()
	assert.Equal(t, "old", token)
}

func TestLogout_ClearsToken(t *testing.T) {
	ta := newTestApp(t, "")
	require.NoError(t, ta.tokens.Save("tok"))

	require.NoError(t, ta.app.Run(context.Background(), []string{"logout"}))

	token, _ := ta.tokens.Load()
	assert.Empty(t, token)
	assert.Contains(t, ta.stdout.String(), "Logged out")
}

func TestResetPassword(t *testing.T) {
	ta := newTestApp(t, "")
	ta.server.EXPECT().
		ResetPassword(gomock.Any(), models.ResetPasswordRequest{Email: "alice@example.com", NewPassword: "fresh"}).
		Return(nil)

	require.NoError(t, ta.app.Run(context.Background(), []string{"reset-password", "-email", "alice@example.com", "-password", "fresh"}))
	assert.Contains(t, ta.stdout.String(), "Password reset successfully")
}

// ── File commands ────────────────────────────────────────────────────────────

func TestUpload(t *testing.T) {
	ta := newTestApp(t, "")
	loggedIn(t, ta)

	path := filepath.Join(t.TempDir(), "report.pdf")
	require.NoError(t, os.WriteFile(path, []byte("pdf bytes"), 0o600))

	ta.server.EXPECT().Upload(gomock.Any(), "report.pdf", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, content io.Reader) (int64, error) {
			data, err := io.ReadAll(content)
			require.NoError(t, err)
			assert.Equal(t, "pdf bytes", string(data))
			return 12, nil
		})

	require.NoError(t, ta.app.Run(context.Background(), []string{"upload", path}))
	assert.Contains(t, ta.stdout.String(), "File uploaded (id 12)")
}

func TestUpload_CustomName(t *testing.T) {
	ta := newTestApp(t, "")
	loggedIn(t, ta)

	path := filepath.Join(t.TempDir(), "a.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))
	ta.server.EXPECT().Upload(gomock.Any(), "renamed.txt", gomock.Any()).Return(int64(1), nil)

	require.NoError(t, ta.app.Run(context.Background(), []string{"upload", "-name", "renamed.txt", path}))
}

func TestList(t *testing.T) {
	ta := newTestApp(t, "")
	loggedIn(t, ta)
	ta.server.EXPECT().List(gomock.Any()).Return([]models.UploadedFile{
		{FileID: 1, FileName: "a.txt"},
		{FileID: 22, FileName: "photo.png"},
	}, nil)

	require.NoError(t, ta.app.Run(context.Background(), []string{"list"}))

	out := ta.stdout.String()
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "a.txt")
	assert.Contains(t, out, "22")
	assert.Contains(t, out, "photo.png")
}

func TestList_Empty(t *testing.T) {
	ta := newTestApp(t, "")
	loggedIn(t, ta)
	ta.server.EXPECT().List(gomock.Any()).Return(nil, nil)

	require.NoError(t, ta.app.Run(context.Background(), []string{"list"}))
	assert.Contains(t, ta.stdout.String(), "No files uploaded yet")
}

func TestDownload_WritesOutput(t *testing.T) {
	ta := newTestApp(t, "")
	loggedIn(t, ta)

	dir := t.TempDir()
	output := filepath.Join(dir, "copy.txt")

	ta.server.EXPECT().Download(gomock.Any(), int64(3), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ int64, dst io.Writer) (string, error) {
			_, err := dst.Write([]byte("contents"))
			return "notes.txt", err
		})

	require.NoError(t, ta.app.Run(context.Background(), []string{"download", "-o", output, "3"}))

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "contents", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file must not be left behind")
}

func TestDownload_FailureLeavesNothing(t *testing.T) {
	ta := newTestApp(t, "")
	loggedIn(t, ta)

	dir := t.TempDir()
	ta.server.EXPECT().Download(gomock.Any(), int64(3), gomock.Any()).Return("", adapter.ErrForbidden)

	err := ta.app.Run(context.Background(), []string{"download", "-o", filepath.Join(dir, "x"), "3"})
	assert.ErrorIs(t, err, adapter.ErrForbidden)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDownload_InvalidID(t *testing.T) {
	ta := newTestApp(t, "")
	loggedIn(t, ta)

	err := ta.app.Run(context.Background(), []string{"download", "abc"})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestDelete(t *testing.T) {
	ta := newTestApp(t, "")
	loggedIn(t, ta)
	ta.server.EXPECT().Delete(gomock.Any(), int64(5)).Return(nil)

	require.NoError(t, ta.app.Run(context.Background(), []string{"delete", "5"}))
	assert.Contains(t, ta.stdout.String(), "File deleted successfully")
}

func TestVersion(t *testing.T) {
	ta := newTestApp(t, "")
	ta.server.EXPECT().Version(gomock.Any()).Return("v1.0.0", nil)

	require.NoError(t, ta.app.Run(context.Background(), []string{"version"}))

	out := ta.stdout.String()
	assert.Contains(t, out, "Build version: v0.1.0")
	assert.Contains(t, out, "Server version: v1.0.0")
}

func TestLocalFileName(t *testing.T) {
	tests := []struct {
		serverName string
		want       string
	}{
		{"notes.txt", "notes.txt"},
		{"../../etc/passwd", "passwd"},
		{"", "file-7"},
		{"..", "file-7"},
		{"/", "file-7"},
	}

	for _, tt := range tests {
		t.Run(tt.serverName, func(t *testing.T) {
			assert.Equal(t, tt.want, localFileName(tt.serverName, 7))
		})
	}
}
