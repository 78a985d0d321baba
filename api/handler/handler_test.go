package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/use-agent/sitegrade/analyzer"
	"github.com/use-agent/sitegrade/api/handler"
	"github.com/use-agent/sitegrade/config"
	"github.com/use-agent/sitegrade/fetcher"
	"github.com/use-agent/sitegrade/insights"
	"github.com/use-agent/sitegrade/models"
	"github.com/use-agent/sitegrade/schemafaq"
	"github.com/use-agent/sitegrade/session"
	"github.com/use-agent/sitegrade/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newStores(t *testing.T) (*session.Store, *store.SQLiteStore) {
	t.Helper()
	results, err := store.OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { results.Close() })
	return session.NewStore(time.Hour), results
}

func completedResult(sessionID string) *models.AnalysisResult {
	return &models.AnalysisResult{
		URL:          "https://example.com",
		SessionID:    sessionID,
		OverallScore: 88,
		SchemaFaqAnalysis: models.SchemaFaqAnalysis{
			CategoryLabel: models.CategoryBoth,
		},
		Insights: models.Insights{
			Recommendations: []models.Recommendation{
				{Title: "Keep Up the Good Work", Description: "All good.", Priority: models.PriorityLow, Impact: "Low"},
			},
		},
		CreatedAt: time.Now().UTC(),
	}
}

func errorBody(t *testing.T, w *httptest.ResponseRecorder) models.ErrorResponse {
	t.Helper()
	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	return resp
}

func TestAnalyze_AcceptsValidURL(t *testing.T) {
	target := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body><h1>hi</h1></body></html>"))
	}))
	defer target.Close()

	sessions, results := newStores(t)
	an := analyzer.New(
		fetcher.New(config.FetcherConfig{Timeout: 5 * time.Second, MaxRedirects: 5, MaxBodySize: 1 << 20}),
		schemafaq.New(10),
		insights.NewGenerator(nil, config.InsightsConfig{}),
		sessions, results,
		config.AnalyzerConfig{Deadline: 30 * time.Second},
		config.WebhookConfig{},
	)

	r := gin.New()
	r.POST("/analyze", handler.Analyze(an))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/analyze",
		strings.NewReader(`{"url": "`+target.URL+`"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusAccepted, w.Code)

	var resp models.AnalyzeAccepted
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.SessionID)
	assert.Equal(t, models.StatusPending, resp.Status)

	_, ok := sessions.Get(resp.SessionID)
	assert.True(t, ok)
}

func TestAnalyze_RejectsInvalidInput(t *testing.T) {
	r := gin.New()
	r.POST("/analyze", handler.Analyze(nil))

	tests := []struct {
		name string
		body string
	}{
		{"missing url", `{}`},
		{"not json", `url=example.com`},
		{"invalid url", `{"url": "not a url"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/analyze", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, models.ErrCodeInvalidInput, errorBody(t, w).Error.Code)
		})
	}
}

func TestProgress(t *testing.T) {
	sessions, _ := newStores(t)
	sess := sessions.Create("https://example.com")
	sessions.Update(sess.ID, models.StatusRunning, 55, "Scoring quality dimensions...")

	r := gin.New()
	r.GET("/analyze/:id/progress", handler.Progress(sessions))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/analyze/"+sess.ID+"/progress", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var resp models.ProgressResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, models.StatusRunning, resp.Status)
	assert.Equal(t, 55, resp.Progress)
	assert.Equal(t, "Scoring quality dimensions...", resp.Message)
}

func TestProgress_UnknownSession(t *testing.T) {
	sessions, _ := newStores(t)

	r := gin.New()
	r.GET("/analyze/:id/progress", handler.Progress(sessions))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/analyze/nope/progress", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, models.ErrCodeSessionNotFound, errorBody(t, w).Error.Code)
}

func TestResult_Completed(t *testing.T) {
	sessions, results := newStores(t)
	sess := sessions.Create("https://example.com")
	sessions.Complete(sess.ID, completedResult(sess.ID))

	r := gin.New()
	r.GET("/analyze/:id/result", handler.Result(sessions, results))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/analyze/"+sess.ID+"/result", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var resp models.AnalysisResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 88, resp.OverallScore)
}

func TestResult_NotReady(t *testing.T) {
	sessions, results := newStores(t)
	sess := sessions.Create("https://example.com")
	sessions.Update(sess.ID, models.StatusRunning, 35, "Extracting page content...")

	r := gin.New()
	r.GET("/analyze/:id/result", handler.Result(sessions, results))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/analyze/"+sess.ID+"/result", nil))

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, models.ErrCodeResultNotReady, errorBody(t, w).Error.Code)
}

func TestResult_FallsBackToStoreAfterEviction(t *testing.T) {
	sessions, results := newStores(t)
	require.NoError(t, results.Put(context.Background(), completedResult("evicted-sess")))

	r := gin.New()
	r.GET("/analyze/:id/result", handler.Result(sessions, results))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/analyze/evicted-sess/result", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var resp models.AnalysisResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "evicted-sess", resp.SessionID)
}

func TestResult_Unknown(t *testing.T) {
	sessions, results := newStores(t)

	r := gin.New()
	r.GET("/analyze/:id/result", handler.Result(sessions, results))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/analyze/ghost/result", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, models.ErrCodeSessionNotFound, errorBody(t, w).Error.Code)
}

func TestExport_CSV(t *testing.T) {
	sessions, results := newStores(t)
	sess := sessions.Create("https://example.com")
	sessions.Complete(sess.ID, completedResult(sess.ID))

	r := gin.New()
	r.GET("/analyze/:id/export", handler.Export(sessions, results))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/analyze/"+sess.ID+"/export?format=csv", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), sess.ID+".csv")
	assert.Contains(t, w.Body.String(), "dimension,score,issues")
}

func TestExport_UnknownFormat(t *testing.T) {
	sessions, results := newStores(t)
	sess := sessions.Create("https://example.com")
	sessions.Complete(sess.ID, completedResult(sess.ID))

	r := gin.New()
	r.GET("/analyze/:id/export", handler.Export(sessions, results))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/analyze/"+sess.ID+"/export?format=pdf", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, models.ErrCodeInvalidInput, errorBody(t, w).Error.Code)
}

func TestListAnalyses(t *testing.T) {
	_, results := newStores(t)
	ctx := context.Background()
	base := time.Date(2026, 8, 10, 8, 0, 0, 0, time.UTC)

	for i, id := range []string{"first", "second", "third"} {
		result := completedResult(id)
		result.CreatedAt = base.Add(time.Duration(i) * time.Hour)
		require.NoError(t, results.Put(ctx, result))
	}

	r := gin.New()
	r.GET("/analyses", handler.ListAnalyses(results))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/analyses?limit=2", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Analyses []models.ResultSummary `json:"analyses"`
		Count    int                    `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Count)
	require.Len(t, resp.Analyses, 2)
	assert.Equal(t, "third", resp.Analyses[0].SessionID)
}

func TestListAnalyses_BadLimit(t *testing.T) {
	_, results := newStores(t)

	r := gin.New()
	r.GET("/analyses", handler.ListAnalyses(results))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/analyses?limit=abc", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealth(t *testing.T) {
	sessions, results := newStores(t)
	sessions.Create("https://example.com")

	r := gin.New()
	r.GET("/health", handler.Health(sessions, results, time.Now().Add(-time.Minute)))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var resp models.HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, 1, resp.ActiveSessions)
	assert.Equal(t, 0, resp.StoredAnalyses)
	assert.Equal(t, handler.Version, resp.Version)
	assert.NotEmpty(t, resp.Uptime)
}
