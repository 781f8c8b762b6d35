package middleware_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/gdg-garage/diet-forms/internal/auth"
	"github.com/gdg-garage/diet-forms/internal/middleware"
)

func logRequest(t *testing.T, status int, ctx context.Context) map[string]any {
	t.Helper()
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	h := middleware.RequestLogger(logger)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}),
	)

	req := httptest.NewRequest(http.MethodPut, "/session/form", nil).WithContext(ctx)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, status, rec.Code)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestRequestLogger_Fields(t *testing.T) {
	sessionID := uuid.New()
	ctx := context.WithValue(context.Background(), chimiddleware.RequestIDKey, "test-req-id")
	ctx = context.WithValue(ctx, auth.SessionIDKey, sessionID)

	entry := logRequest(t, http.StatusNoContent, ctx)

	require.Equal(t, "INFO", entry["level"])
	require.Equal(t, "PUT", entry["method"])
	require.Equal(t, "/session/form", entry["path"])
	require.EqualValues(t, http.StatusNoContent, entry["status"])
	require.Equal(t, "test-req-id", entry["request_id"])
	require.Equal(t, sessionID.String(), entry["session_id"])
	require.NotNil(t, entry["duration_ms"])
}

func TestRequestLogger_ServerErrorsLogAtError(t *testing.T) {
	entry := logRequest(t, http.StatusInternalServerError, context.Background())

	require.Equal(t, "ERROR", entry["level"])
	require.NotContains(t, entry, "session_id")
}
