package evaluate_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/passguard/passguard/internal/breach"
	"github.com/passguard/passguard/internal/handler"
	evaluateHandler "github.com/passguard/passguard/internal/handler/evaluate"
	prometheusHandler "github.com/passguard/passguard/internal/handler/prometheus"
	"github.com/passguard/passguard/internal/middleware"
	"github.com/passguard/passguard/internal/policy"
	"github.com/passguard/passguard/internal/router"
	"github.com/passguard/passguard/internal/service/evaluator"
	"github.com/passguard/passguard/pkg/metrics"
)

func newTestEngine(t *testing.T) (*gin.Engine, *prometheus.Registry) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dictionary := map[string]struct{}{"password": {}}
	blacklist := map[string]struct{}{"breachedpw": {}}

	checker := breach.NewChecker(blacklist, nil, zerolog.Nop())
	svc := evaluator.NewService(policy.Default(), dictionary, checker, zerolog.Nop())

	registry := prometheus.NewRegistry()
	m := metrics.New("passguard", registry)

	r := router.NewRouter(router.Config{
		MaxBodyBytes: 1 << 20,
		CORS:         middleware.DefaultCORSConfig(),
	}, evaluateHandler.NewHandler(svc, m), prometheusHandler.New(registry), handler.NewHandler())
	r.Setup()
	return r.Engine(), registry
}

func postEvaluate(t *testing.T, engine *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/evaluate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

type evaluateResponse struct {
	Status string `json:"status"`
	Data   struct {
		Score           int      `json:"score"`
		Strength        string   `json:"strength"`
		EntropyBits     float64  `json:"entropy_bits"`
		Issues          []string `json:"issues"`
		Recommendations []string `json:"recommendations"`
		IsBreached      bool     `json:"is_breached"`
	} `json:"data"`
}

func TestEvaluateEndpoint(t *testing.T) {
	engine, _ := newTestEngine(t)

	w := postEvaluate(t, engine, `{"password": "K9#mVzL2@qRwX7tP"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp evaluateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, 85, resp.Data.Score)
	assert.Equal(t, "Very Strong", resp.Data.Strength)
	assert.Equal(t, []string{"No major issues detected"}, resp.Data.Issues)
	assert.False(t, resp.Data.IsBreached)
}

func TestEvaluateEndpointWithIdentity(t *testing.T) {
	engine, _ := newTestEngine(t)

	w := postEvaluate(t, engine, `{"password": "johnsmith123", "username": "johnsmith", "email": "john@example.com"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp evaluateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Data.Issues, "Password contains username: 'johnsmith'")
}

func TestEvaluateEndpointBreached(t *testing.T) {
	engine, _ := newTestEngine(t)

	w := postEvaluate(t, engine, `{"password": "breachedpw"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp evaluateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Zero(t, resp.Data.Score)
	assert.True(t, resp.Data.IsBreached)
}

func TestEvaluateEndpointMissingPassword(t *testing.T) {
	engine, _ := newTestEngine(t)

	w := postEvaluate(t, engine, `{"username": "john"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp middleware.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Message, "password is required")
}

func TestEvaluateEndpointMalformedJSON(t *testing.T) {
	engine, _ := newTestEngine(t)

	w := postEvaluate(t, engine, `{"password": `)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp middleware.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Message, "invalid request body")
}

func TestEvaluateEndpointOversizedBody(t *testing.T) {
	gin.SetMode(gin.TestMode)

	checker := breach.NewChecker(nil, nil, zerolog.Nop())
	svc := evaluator.NewService(policy.Default(), nil, checker, zerolog.Nop())
	registry := prometheus.NewRegistry()
	m := metrics.New("passguard", registry)

	r := router.NewRouter(router.Config{MaxBodyBytes: 64},
		evaluateHandler.NewHandler(svc, m), nil, handler.NewHandler())
	r.Setup()

	body := `{"password": "` + strings.Repeat("x", 128) + `"}`
	w := postEvaluate(t, r.Engine(), body)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestHealthEndpoint(t *testing.T) {
	engine, _ := newTestEngine(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"healthy"`)
	assert.Contains(t, w.Body.String(), `"service":"password-evaluator"`)
}

func TestMetricsEndpointObservesEvaluations(t *testing.T) {
	engine, registry := newTestEngine(t)

	postEvaluate(t, engine, `{"password": "K9#mVzL2@qRwX7tP"}`)
	postEvaluate(t, engine, `{"password": "breachedpw"}`)

	families, err := registry.Gather()
	require.NoError(t, err)

	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["passguard_evaluations_total"])
	assert.True(t, names["passguard_breach_checks_total"])
	assert.True(t, names["passguard_evaluation_duration_seconds"])

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `passguard_evaluations_total{strength="Very Strong"} 1`)
	assert.Contains(t, body, `passguard_breach_checks_total{outcome="breached"} 1`)
}
