// Package analyzer orchestrates one analysis job per session: fetch →
// extract → score → classify → recommend → persist, with pollable progress
// at every stage boundary.
package analyzer

import (
	"context"
	"log/slog"
	"time"

	"github.com/use-agent/sitegrade/config"
	"github.com/use-agent/sitegrade/extractor"
	"github.com/use-agent/sitegrade/fetcher"
	"github.com/use-agent/sitegrade/insights"
	"github.com/use-agent/sitegrade/models"
	"github.com/use-agent/sitegrade/schemafaq"
	"github.com/use-agent/sitegrade/session"
	"github.com/use-agent/sitegrade/store"
	"github.com/use-agent/sitegrade/webhook"
)

// Progress checkpoints at stage boundaries. Monotonic by construction; the
// session store additionally drops any backwards update.
const (
	progressFetchStarted   = 15
	progressExtractStarted = 35
	progressScoringStarted = 55
	progressClassified     = 75
	progressInsights       = 90
)

// Analyzer runs analysis jobs. It is the sole writer of session status,
// progress, and message; every other stage is a pure function over the
// fetched page.
type Analyzer struct {
	fetcher    *fetcher.Fetcher
	classifier *schemafaq.Classifier
	generator  *insights.Generator
	sessions   *session.Store
	results    store.ResultStore
	cfg        config.AnalyzerConfig
	hook       config.WebhookConfig
}

// New creates an Analyzer.
func New(
	f *fetcher.Fetcher,
	classifier *schemafaq.Classifier,
	generator *insights.Generator,
	sessions *session.Store,
	results store.ResultStore,
	cfg config.AnalyzerConfig,
	hook config.WebhookConfig,
) *Analyzer {
	return &Analyzer{
		fetcher:    f,
		classifier: classifier,
		generator:  generator,
		sessions:   sessions,
		results:    results,
		cfg:        cfg,
		hook:       hook,
	}
}

// Start creates a pending session for the URL and launches the analysis in
// the background. It returns immediately with the session snapshot.
func (a *Analyzer) Start(url string) *models.AnalysisSession {
	sess := a.sessions.Create(url)
	go a.run(sess.ID, url)
	return sess
}

// run executes one analysis job to a terminal state. A hard deadline bounds
// the whole job so progress always terminates, and a recover guard turns
// panics into an errored session instead of a crashed process.
func (a *Analyzer) run(sessionID, url string) {
	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.Deadline)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			slog.Error("analysis panicked", "session_id", sessionID, "url", url, "panic", r)
			a.fail(sessionID, url, "Analysis failed, please try again")
		}
	}()

	start := time.Now()
	slog.Info("analysis started", "session_id", sessionID, "url", url)

	// Stage 1: fetch.
	a.sessions.Update(sessionID, models.StatusRunning, progressFetchStarted, "Fetching website content...")
	page, err := a.fetcher.Fetch(ctx, url)
	if err != nil {
		slog.Warn("fetch failed", "session_id", sessionID, "url", url, "error", err)
		a.fail(sessionID, url, userMessage(err))
		return
	}

	// Stage 2: extract.
	a.sessions.Update(sessionID, models.StatusRunning, progressExtractStarted, "Extracting page content...")
	content := extractor.Extract(page.RawMarkup, page.FinalURL)

	// Stage 3: score. The four scorers are pure functions over the same
	// immutable inputs, so they run concurrently in no particular order.
	a.sessions.Update(sessionID, models.StatusRunning, progressScoringStarted, "Scoring quality dimensions...")
	dims := scoreDimensions(content, page)

	// Stage 4: schema/FAQ classification.
	faq := a.classifier.Classify(page.RawMarkup)
	faqScore := schemafaq.Score(faq)
	a.sessions.Update(sessionID, models.StatusRunning, progressClassified, "Classifying structured data and FAQ...")

	// Stage 5: recommendations. Never fails; falls back internally.
	a.sessions.Update(sessionID, models.StatusRunning, progressInsights, "Generating recommendations...")
	recs := a.generator.Generate(ctx, insights.Input{
		URL:            page.FinalURL,
		Content:        content,
		Performance:    dims.performance,
		SEO:            dims.seo,
		Technical:      dims.technical,
		Accessibility:  dims.accessibility,
		SchemaFaq:      faq,
		SchemaFaqScore: faqScore,
	})

	// Stage 6: assemble and persist.
	result := &models.AnalysisResult{
		URL:               page.FinalURL,
		SessionID:         sessionID,
		OverallScore:      scorerOverall(dims, faqScore),
		Performance:       dims.performance,
		SEO:               dims.seo,
		Technical:         dims.technical,
		Accessibility:     dims.accessibility,
		SchemaFaqScore:    faqScore,
		SchemaFaqAnalysis: faq,
		ParsedContent:     *content,
		Insights:          recs,
		CreatedAt:         time.Now().UTC(),
	}

	if err := a.results.Put(ctx, result); err != nil {
		slog.Error("result persistence failed", "session_id", sessionID, "error", err)
		a.fail(sessionID, url, "Analysis failed, please try again")
		return
	}

	a.sessions.Complete(sessionID, result)
	slog.Info("analysis completed",
		"session_id", sessionID,
		"url", page.FinalURL,
		"overall_score", result.OverallScore,
		"category", faq.CategoryLabel,
		"duration", time.Since(start).Round(time.Millisecond),
	)

	if a.hook.URL != "" {
		webhook.DeliverAsync(a.hook.URL, a.hook.Secret, &webhook.Event{
			Type:      "analysis.completed",
			SessionID: sessionID,
			Timestamp: time.Now().Unix(),
			Data: models.ResultSummary{
				SessionID:    sessionID,
				URL:          result.URL,
				OverallScore: result.OverallScore,
				Category:     faq.CategoryLabel,
				CreatedAt:    result.CreatedAt,
			},
		})
	}
}

// fail moves the session to its terminal error state and fires the failure
// webhook. Partial results are discarded, never persisted.
func (a *Analyzer) fail(sessionID, url, message string) {
	a.sessions.Fail(sessionID, message)
	if a.hook.URL != "" {
		webhook.DeliverAsync(a.hook.URL, a.hook.Secret, &webhook.Event{
			Type:      "analysis.failed",
			SessionID: sessionID,
			Timestamp: time.Now().Unix(),
			Data:      map[string]string{"url": url, "message": message},
		})
	}
}

// userMessage maps internal errors to the short, non-technical text stored
// in session state.
func userMessage(err error) string {
	if aerr, ok := err.(*models.AnalysisError); ok {
		return aerr.UserMessage()
	}
	return "Analysis failed, please try again"
}
