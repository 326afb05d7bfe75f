package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulseboard/dashgen/internal/events"
	"github.com/pulseboard/dashgen/internal/explorer"
	"github.com/pulseboard/dashgen/internal/proposal"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	st, err := events.NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	ctx := context.Background()
	require.NoError(t, st.Migrate(ctx))

	for i := 0; i < 12; i++ {
		require.NoError(t, st.InsertEvent(ctx, events.Event{
			ID:        fmt.Sprintf("ev-%d", i),
			TenantID:  "t1",
			Type:      "workflow.completed",
			Labels:    map[string]any{"status": "success"},
			State:     map[string]any{"duration_ms": float64(900 + i)},
			Timestamp: time.Date(2026, 8, 1, 10, 0, i, 0, time.UTC),
		}))
	}

	eng := proposal.NewEngine(st, explorer.New(nil, explorer.Config{}), neutralGenerator{}, proposal.Config{})
	return newRouter(eng)
}

func TestHealthEndpoint(t *testing.T) {
	r := newTestRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestProposalsEndpoint(t *testing.T) {
	r := newTestRouter(t)

	body := `{"tenant_id":"t1","workflow_name":"Daily Lead Sync","platform_type":"n8n"}`
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/proposals", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code)

	var res proposal.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.True(t, res.Success)
	assert.NotEmpty(t, res.Proposals)
	assert.NotEmpty(t, res.Payload.GeneratedAt)
}

func TestProposalsEndpointRejectsMissingFields(t *testing.T) {
	r := newTestRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/proposals", strings.NewReader(`{"tenant_id":"t1"}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/proposals", strings.NewReader(`not json`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
