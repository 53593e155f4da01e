package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeEntry(t *testing.T, data []byte) map[string]any {
	t.Helper()

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(data), &entry))
	return entry
}

func TestNewLogger_EntryShape(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger("go-file-server")
	l.Logger = l.Output(&buf)

	l.Info().Msg("upload stored")

	entry := decodeEntry(t, buf.Bytes())
	assert.Equal(t, "go-file-server", entry["role"])
	assert.Equal(t, "upload stored", entry["message"])
	assert.Contains(t, entry, "time")
	assert.Contains(t, entry["func"], "TestNewLogger_EntryShape")
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}

func TestNewClientLogger_WritesToFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "logs", "client.log")

	l := NewClientLogger("go-file-client", logPath)
	l.Info().Msg("token saved")

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)

	entry := decodeEntry(t, data)
	assert.Equal(t, "go-file-client", entry["role"])
	assert.Equal(t, "token saved", entry["message"])
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}

func TestOpenClientLog_FallsBackToStderr(t *testing.T) {
	assert.Same(t, os.Stderr, openClientLog(""))

	// a regular file where the log directory should be
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))
	assert.Same(t, os.Stderr, openClientLog(filepath.Join(blocker, "client.log")))
}

func TestNop_DiscardsOutput(t *testing.T) {
	var buf bytes.Buffer
	l := Nop()
	l.Logger = l.Output(&buf)

	l.Info().Msg("dropped")

	assert.Empty(t, buf.String())
}

func TestGetChildLogger_KeepsParentFieldsAndIsolatesNewOnes(t *testing.T) {
	var buf bytes.Buffer
	parent := &Logger{zerolog.New(&buf).With().Str("role", "go-file-server").Logger()}

	child := parent.GetChildLogger()
	require.NotSame(t, parent, child)
	child.UpdateContext(func(c zerolog.Context) zerolog.Context {
		return c.Str("trace_id", "abc")
	})

	child.Info().Msg("child")
	entry := decodeEntry(t, buf.Bytes())
	assert.Equal(t, "go-file-server", entry["role"])
	assert.Equal(t, "abc", entry["trace_id"])

	buf.Reset()
	parent.Info().Msg("parent")
	assert.NotContains(t, decodeEntry(t, buf.Bytes()), "trace_id")
}

func TestWithUserID_AddsField(t *testing.T) {
	var buf bytes.Buffer
	parent := &Logger{zerolog.New(&buf)}

	parent.WithUserID(42).Info().Msg("authorized")

	assert.EqualValues(t, 42, decodeEntry(t, buf.Bytes())["user_id"])
}

func TestFromContext(t *testing.T) {
	require.NotNil(t, FromContext(context.Background()))

	var buf bytes.Buffer
	stored := zerolog.New(&buf).With().Str("trace_id", "t-1").Logger()
	ctx := stored.WithContext(context.Background())

	FromContext(ctx).Info().Msg("from context")

	assert.Equal(t, "t-1", decodeEntry(t, buf.Bytes())["trace_id"])
}

func TestFromRequest(t *testing.T) {
	require.NotNil(t, FromRequest(httptest.NewRequest(http.MethodGet, "/files", nil)))

	var buf bytes.Buffer
	stored := zerolog.New(&buf).With().Str("trace_id", "t-2").Logger()
	req := httptest.NewRequest(http.MethodGet, "/files", nil)
	req = req.WithContext(stored.WithContext(req.Context()))

	FromRequest(req).Info().Msg("from request")

	assert.Equal(t, "t-2", decodeEntry(t, buf.Bytes())["trace_id"])
}
