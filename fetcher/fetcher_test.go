package fetcher

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/use-agent/sitegrade/config"
	"github.com/use-agent/sitegrade/models"
)

func testConfig() config.FetcherConfig {
	return config.FetcherConfig{
		Timeout:      5 * time.Second,
		MaxRedirects: 5,
		MaxBodySize:  10 * 1024 * 1024,
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"example.com", "https://example.com"},
		{"  example.com  ", "https://example.com"},
		{"http://example.com", "http://example.com"},
		{"https://example.com/path", "https://example.com/path"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.in), "input %q", tt.in)
	}
}

func TestFetch(t *testing.T) {
	const page = "<html><body><h1>hello</h1></body></html>"

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.Header.Get("User-Agent"), "Chrome")
		fmt.Fprint(w, page)
	}))
	defer srv.Close()

	got, err := New(testConfig()).Fetch(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.Equal(t, page, got.RawMarkup)
	assert.Equal(t, http.StatusOK, got.StatusCode)
	assert.Equal(t, len(page), got.ContentSize)
	assert.Greater(t, got.ResponseTime, time.Duration(0))
	assert.Equal(t, srv.URL, got.FinalURL)
}

func TestFetch_FollowsRedirectsAndReportsFinalURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/start" {
			http.Redirect(w, r, "/landed", http.StatusMovedPermanently)
			return
		}
		fmt.Fprint(w, "<html></html>")
	}))
	defer srv.Close()

	got, err := New(testConfig()).Fetch(context.Background(), srv.URL+"/start")
	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/landed", got.FinalURL)
}

func TestFetch_RedirectLimit(t *testing.T) {
	var hops int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hops++
		http.Redirect(w, r, fmt.Sprintf("/hop-%d", hops), http.StatusFound)
	}))
	defer srv.Close()

	cfg := testConfig()
	cfg.MaxRedirects = 3

	_, err := New(cfg).Fetch(context.Background(), srv.URL)
	require.Error(t, err)

	var aerr *models.AnalysisError
	require.True(t, errors.As(err, &aerr))
	assert.Equal(t, models.ErrCodeTooManyRedirects, aerr.Code)
}

func TestFetch_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := New(testConfig()).Fetch(context.Background(), srv.URL)
	require.Error(t, err)

	var aerr *models.AnalysisError
	require.True(t, errors.As(err, &aerr))
	assert.Equal(t, models.ErrCodeFetchStatus, aerr.Code)
	assert.Equal(t, "Website returned an error page", aerr.UserMessage())
}

func TestFetch_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	cfg := testConfig()
	cfg.Timeout = 50 * time.Millisecond

	_, err := New(cfg).Fetch(context.Background(), srv.URL)
	require.Error(t, err)

	var aerr *models.AnalysisError
	require.True(t, errors.As(err, &aerr))
	assert.Equal(t, models.ErrCodeFetchTimeout, aerr.Code)
}

func TestFetch_ConnectionRefused(t *testing.T) {
	// Bind and immediately close to get a port with nothing listening.
	srv := httptest.NewServer(http.NotFoundHandler())
	deadURL := srv.URL
	srv.Close()

	_, err := New(testConfig()).Fetch(context.Background(), deadURL)
	require.Error(t, err)

	var aerr *models.AnalysisError
	require.True(t, errors.As(err, &aerr))
	assert.Equal(t, models.ErrCodeFetchConnection, aerr.Code)
	assert.Equal(t, "Could not reach this website", aerr.UserMessage())
}

func TestFetch_BodySizeCap(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for i := 0; i < 1000; i++ {
			fmt.Fprint(w, "0123456789")
		}
	}))
	defer srv.Close()

	cfg := testConfig()
	cfg.MaxBodySize = 100

	got, err := New(cfg).Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, 100, got.ContentSize)
}
