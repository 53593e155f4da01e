package http

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/MKhiriev/go-file-keeper/internal/adapter"
	"github.com/MKhiriev/go-file-keeper/internal/config"
	"github.com/MKhiriev/go-file-keeper/internal/logger"
	"github.com/MKhiriev/go-file-keeper/internal/service"
	"github.com/MKhiriev/go-file-keeper/internal/store"
	"github.com/MKhiriev/go-file-keeper/internal/utils"
	"github.com/MKhiriev/go-file-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	e2eSignKey = "e2e-secret"
	e2eIssuer  = "go-file-keeper-test"
)

type e2eEnv struct {
	server   *httptest.Server
	storages *store.Storages
}

// newE2EEnv runs the full router over a migrated SQLite database and a
// local blob directory.
func newE2EEnv(t *testing.T) *e2eEnv {
	t.Helper()

	ctx := context.Background()
	dir := t.TempDir()

	storages, err := store.NewStorages(ctx, config.Storage{
		DB:    config.DB{DSN: "file:" + filepath.Join(dir, "e2e.db") + "?_foreign_keys=on"},
		Files: config.Files{UploadDir: filepath.Join(dir, "uploads")},
	}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { storages.Close() })

	services, err := service.NewServices(storages, config.StructuredConfig{
		App: config.App{
			TokenSignKey:     e2eSignKey,
			TokenIssuer:      e2eIssuer,
			TokenDuration:    time.Hour,
			PasswordHashCost: bcrypt.MinCost,
			Version:          "e2e",
		},
	}, models.NewAppBuildInfo("", "", ""), logger.Nop())
	require.NoError(t, err)

	h := NewHandler(services, config.Server{MaxUploadSize: 1 << 20}, logger.Nop())
	server := httptest.NewServer(h.Init())
	t.Cleanup(server.Close)

	return &e2eEnv{server: server, storages: storages}
}

func (e *e2eEnv) client(t *testing.T) adapter.ServerAdapter {
	t.Helper()

	client, err := adapter.NewHTTPServerAdapter(config.ClientAdapter{
		HTTPAddress:    e.server.URL,
		RequestTimeout: 5 * time.Second,
	}, logger.Nop())
	require.NoError(t, err)
	return client
}

func (e *e2eEnv) register(t *testing.T, username string) adapter.ServerAdapter {
	t.Helper()

	client := e.client(t)
	_, err := client.Register(context.Background(), models.RegisterRequest{
		Username: username,
		Email:    username + "@example.com",
		Password: username + "-password",
	})
	require.NoError(t, err)
	return client
}

func TestE2E_RegisterTokenAuthorizesProtectedRoutes(t *testing.T) {
	env := newE2EEnv(t)
	ctx := context.Background()

	alice := env.register(t, "alice")
	require.NotEmpty(t, alice.Token())

	files, err := alice.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestE2E_Login(t *testing.T) {
	env := newE2EEnv(t)
	ctx := context.Background()
	env.register(t, "alice")

	client := env.client(t)
	token, err := client.Login(ctx, models.LoginRequest{Username: "alice", Password: "alice-password"})
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	_, err = client.List(ctx)
	assert.NoError(t, err)

	other := env.client(t)
	_, err = other.Login(ctx, models.LoginRequest{Username: "alice", Password: "wrong"})
	assert.ErrorIs(t, err, adapter.ErrUnauthorized)
	assert.Empty(t, other.Token())

	_, err = other.Login(ctx, models.LoginRequest{Username: "nobody", Password: "x"})
	assert.ErrorIs(t, err, adapter.ErrNotFound)
}

func TestE2E_ExpiredTokenIsRejected(t *testing.T) {
	env := newE2EEnv(t)

	expired, err := utils.GenerateJWTToken(e2eIssuer, 1, -time.Minute, e2eSignKey)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodGet, env.server.URL+"/files", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+expired.SignedString)

	resp, err := env.server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestE2E_OwnershipIsEnforced(t *testing.T) {
	env := newE2EEnv(t)
	ctx := context.Background()

	alice := env.register(t, "alice")
	bob := env.register(t, "bob")

	fileID, err := alice.Upload(ctx, "secret.txt", bytes.NewReader([]byte("alice only")))
	require.NoError(t, err)

	var sink bytes.Buffer
	_, err = bob.Download(ctx, fileID, &sink)
	assert.ErrorIs(t, err, adapter.ErrForbidden)
	assert.Zero(t, sink.Len())

	assert.ErrorIs(t, bob.Delete(ctx, fileID), adapter.ErrForbidden)

	bobFiles, err := bob.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, bobFiles)

	name, err := alice.Download(ctx, fileID, &sink)
	require.NoError(t, err)
	assert.Equal(t, "secret.txt", name)
	assert.Equal(t, "alice only", sink.String())
}

func TestE2E_DeleteRemovesFileAndBlob(t *testing.T) {
	env := newE2EEnv(t)
	ctx := context.Background()

	alice := env.register(t, "alice")
	fileID, err := alice.Upload(ctx, "a.txt", bytes.NewReader([]byte("x")))
	require.NoError(t, err)

	blobs, err := env.storages.BlobStorage.List(ctx)
	require.NoError(t, err)
	require.Len(t, blobs, 1)

	require.NoError(t, alice.Delete(ctx, fileID))

	files, err := alice.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, files)

	blobs, err = env.storages.BlobStorage.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, blobs)

	assert.ErrorIs(t, alice.Delete(ctx, fileID), adapter.ErrForbidden)
}

func TestE2E_UploadDownloadRoundTrip(t *testing.T) {
	env := newE2EEnv(t)
	ctx := context.Background()

	content := make([]byte, 64<<10)
	for i := range content {
		content[i] = byte(i * 31)
	}

	alice := env.register(t, "alice")
	fileID, err := alice.Upload(ctx, "data.bin", bytes.NewReader(content))
	require.NoError(t, err)

	files, err := alice.List(ctx)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, fileID, files[0].FileID)
	assert.Equal(t, "data.bin", files[0].FileName)

	var got bytes.Buffer
	_, err = alice.Download(ctx, fileID, &got)
	require.NoError(t, err)
	assert.Equal(t, content, got.Bytes())
}

func TestE2E_DuplicateUsernameConflicts(t *testing.T) {
	env := newE2EEnv(t)
	ctx := context.Background()
	env.register(t, "alice")

	_, err := env.client(t).Register(ctx, models.RegisterRequest{
		Username: "alice",
		Email:    "another@example.com",
		Password: "other-password",
	})
	assert.ErrorIs(t, err, adapter.ErrConflict)

	// the original credentials still work
	_, err = env.client(t).Login(ctx, models.LoginRequest{Username: "alice", Password: "alice-password"})
	assert.NoError(t, err)
	_, err = env.client(t).Login(ctx, models.LoginRequest{Username: "alice", Password: "other-password"})
	assert.ErrorIs(t, err, adapter.ErrUnauthorized)
}

func TestE2E_ResetPassword(t *testing.T) {
	env := newE2EEnv(t)
	ctx := context.Background()
	env.register(t, "alice")

	client := env.client(t)
	require.NoError(t, client.ResetPassword(ctx, models.ResetPasswordRequest{Email: "alice@example.com", NewPassword: "fresh"}))

	_, err := client.Login(ctx, models.LoginRequest{Username: "alice", Password: "alice-password"})
	assert.ErrorIs(t, err, adapter.ErrUnauthorized)
	_, err = client.Login(ctx, models.LoginRequest{Username: "alice", Password: "fresh"})
	assert.NoError(t, err)
}
