package fetcher

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/use-agent/sitegrade/config"
	"github.com/use-agent/sitegrade/models"
)

const chromeUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"

var errTooManyRedirects = errors.New("redirect limit reached")

// Fetcher retrieves the raw markup and transport metrics for a target URL.
// It issues exactly one GET per call; retry policy belongs to the caller.
type Fetcher struct {
	cfg    config.FetcherConfig
	client *http.Client
}

// New creates a Fetcher with a Chrome TLS fingerprint (utls) and a bounded
// redirect chain.
func New(cfg config.FetcherConfig) *Fetcher {
	transport := &http.Transport{
		DialTLSContext: dialTLSChrome,
	}

	return &Fetcher{
		cfg: cfg,
		client: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= cfg.MaxRedirects {
					return errTooManyRedirects
				}
				return nil
			},
		},
	}
}

// Normalize prefixes https:// when the URL carries no scheme.
func Normalize(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return raw
	}
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		return "https://" + raw
	}
	return raw
}

// Fetch retrieves the URL and returns the raw markup plus transport metrics.
// Failures are classified into the fetch error taxonomy: timeout, connection,
// too-many-redirects, or bad status.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*models.FetchedPage, error) {
	target := Normalize(rawURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, models.NewAnalysisError(models.ErrCodeInvalidInput, "invalid URL", err)
	}
	req.Header.Set("User-Agent", chromeUA)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, classifyFetchError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.cfg.MaxBodySize))
	elapsed := time.Since(start)
	if err != nil {
		return nil, classifyFetchError(err)
	}

	if resp.StatusCode >= 400 {
		return nil, models.NewAnalysisError(models.ErrCodeFetchStatus,
			"target returned HTTP "+resp.Status, nil)
	}

	finalURL := target
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}

	return &models.FetchedPage{
		FinalURL:     finalURL,
		StatusCode:   resp.StatusCode,
		RawMarkup:    string(body),
		ResponseTime: elapsed,
		ContentSize:  len(body),
	}, nil
}

// classifyFetchError maps transport errors to the fetch error taxonomy.
func classifyFetchError(err error) *models.AnalysisError {
	switch {
	case errors.Is(err, errTooManyRedirects):
		return models.NewAnalysisError(models.ErrCodeTooManyRedirects, "too many redirects", err)
	case errors.Is(err, context.DeadlineExceeded):
		return models.NewAnalysisError(models.ErrCodeFetchTimeout, "fetch timed out", err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return models.NewAnalysisError(models.ErrCodeFetchTimeout, "fetch timed out", err)
	}

	return models.NewAnalysisError(models.ErrCodeFetchConnection, "could not connect to target", err)
}
