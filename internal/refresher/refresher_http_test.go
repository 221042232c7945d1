package refresher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"go.dfds.cloud/codespaces-dashboard-refresher/internal/api"
	"go.dfds.cloud/codespaces-dashboard-refresher/internal/render"
	"go.dfds.cloud/codespaces-dashboard-refresher/internal/view"
)

const (
	goodStats      = `{"total_commits": 152, "avg_developers": 17.4, "total_codespace_hours": 1803.27, "cost_estimate": 324.59}`
	goodGovernance = `{
		"policies": {"machine_types": ["2-core", "4-core"], "idle_timeout_minutes": 30, "max_retention_days": 7, "require_sso": true, "allowed_extensions": ["ms-python.python"]},
		"compliance": {"total_codespaces": 50, "active_codespaces": 8, "compliant_codespaces": 47, "policy_violations": 0, "last_audit": "2026-10-19T12:00:00"},
		"cost_controls": {"monthly_budget": 5000, "current_spend": 1234.56, "projected_spend": 2890.45, "per_user_limit": 500}
	}`
)

// backend serves the good payloads until bad bodies are swapped in.
type backend struct {
	stats      atomic.Value
	governance atomic.Value
	status     atomic.Int32
}

func newHTTPRefresher(t *testing.T) (*Refresher, *view.Store, *backend) {
	t.Helper()
	b := &backend{}
	b.stats.Store(goodStats)
	b.governance.Store(goodGovernance)
	b.status.Store(http.StatusOK)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(int(b.status.Load()))
		switch r.URL.Path {
		case api.StatsPath:
			w.Write([]byte(b.stats.Load().(string)))
		case api.GovernancePath:
			w.Write([]byte(b.governance.Load().(string)))
		}
	}))
	t.Cleanup(srv.Close)

	store := view.NewStore()
	client := api.NewClient(srv.URL, time.Second, zap.NewNop())
	return New(client, store, render.NewRenderer(time.UTC), PolicyAllow), store, b
}

func refreshBoth(t *testing.T, r *Refresher) (Result, Result) {
	t.Helper()
	return r.RefreshStats(context.Background()), r.RefreshGovernance(context.Background())
}

func TestRefreshOverHTTP(t *testing.T) {
	r, store, _ := newHTTPRefresher(t)

	stats, gov := refreshBoth(t, r)

	require.Equal(t, OutcomeOK, stats.Outcome)
	require.Equal(t, OutcomeOK, gov.Outcome)
	assert.NotEmpty(t, stats.RequestID)
	assert.Equal(t, "1803.3h", slot(t, store, view.CodespaceHours))
	assert.Equal(t, "$324.59", slot(t, store, view.CostEstimate))
	assert.Contains(t, slot(t, store, view.PoliciesList), "Machine Types: 2-core, 4-core")
}

func TestRefreshOverHTTP_StaleOnMalformedPayload(t *testing.T) {
	tests := []struct {
		name       string
		stats      string
		governance string
	}{
		{"null bodies", `null`, `null`},
		{"empty objects", `{}`, `{}`},
		{"not json", `<html>oops</html>`, `<html>oops</html>`},
		{"missing hours and policies", `{"total_commits": 1, "avg_developers": 1, "cost_estimate": 1}`,
			`{"compliance": {"total_codespaces": 1, "active_codespaces": 1, "compliant_codespaces": 1, "policy_violations": 0}, "cost_controls": {"monthly_budget": 1, "current_spend": 1, "projected_spend": 1, "per_user_limit": 1}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, store, b := newHTTPRefresher(t)
			refreshBoth(t, r)
			before, version := store.Snapshot()

			b.stats.Store(tt.stats)
			b.governance.Store(tt.governance)
			stats, gov := refreshBoth(t, r)

			assert.Equal(t, OutcomeDecode, stats.Outcome)
			assert.Equal(t, OutcomeDecode, gov.Outcome)
			after, afterVersion := store.Snapshot()
			assert.Equal(t, version, afterVersion)
			assert.Equal(t, before, after)
			assert.Equal(t, "1803.3h", after[view.CodespaceHours])
		})
	}
}

func TestRefreshOverHTTP_StaleOnServerError(t *testing.T) {
	r, store, b := newHTTPRefresher(t)
	refreshBoth(t, r)
	before, version := store.Snapshot()

	b.status.Store(http.StatusServiceUnavailable)
	stats, gov := refreshBoth(t, r)

	assert.Equal(t, OutcomeStatus, stats.Outcome)
	assert.Equal(t, OutcomeStatus, gov.Outcome)
	after, afterVersion := store.Snapshot()
	assert.Equal(t, version, afterVersion)
	assert.Equal(t, before, after)
}

func TestRefreshOverHTTP_UnreachableBackend(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	store := view.NewStore()
	r := New(api.NewClient(url, time.Second, zap.NewNop()), store, render.NewRenderer(time.UTC), PolicyAllow)

	stats, gov := refreshBoth(t, r)

	assert.Equal(t, OutcomeNetwork, stats.Outcome)
	assert.Equal(t, OutcomeNetwork, gov.Outcome)
	assert.Zero(t, store.Version())
}
